package binary

import (
	"github.com/klauspost/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Checksum returns the CRC-32C of data. It seals the superblock and every
// group header.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Fletcher32 returns the Fletcher-32 sum the checksum filter appends to data
// blocks. Data is read as little-endian 16-bit words; an odd trailing byte
// is the low half of a final word.
func Fletcher32(data []byte) uint32 {
	var lo, hi uint32
	for len(data) > 0 {
		word := uint32(data[0])
		if len(data) > 1 {
			word |= uint32(data[1]) << 8
			data = data[2:]
		} else {
			data = data[1:]
		}
		lo = (lo + word) % 65535
		hi = (hi + lo) % 65535
	}
	return hi<<16 | lo
}
