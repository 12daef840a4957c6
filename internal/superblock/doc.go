// Package superblock reads and writes the container's superblock.
//
// The superblock sits at offset 0 and is the entry point for a file. Its
// first 16 bytes are independent of the encoding parameters:
//
//	0   signature     0x89 N C G \r \n 0x1a \n
//	8   version       uint8
//	9   byte order    uint8 (0 little-endian, 1 big-endian)
//	10  offset size   uint8 (2, 4, or 8)
//	11  length size   uint8 (2, 4, or 8)
//	12  flags         uint8 (reserved)
//	13  reserved      3 bytes
//
// The remainder uses the byte order and sizes declared above:
//
//	root group header address   offset
//	end-of-file address         offset
//	next dimension id           uint32
//	checksum                    uint32, CRC-32C over every preceding byte
//
// The superblock is written last when a file is synced, so a torn write is
// caught by its checksum on the next open.
package superblock
