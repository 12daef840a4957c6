package superblock

import (
	"encoding/binary"

	binpkg "github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Write writes the superblock at the current writer position.
// Returns the total bytes written.
func (sb *Superblock) Write(w *binpkg.Writer) (int64, error) {
	// Buffer the superblock so the checksum can be computed first
	buf := binpkg.NewBuffer(sb.Size())
	bw := binpkg.NewWriter(buf, sb.Config())

	if err := bw.WriteBytes(Signature); err != nil {
		return 0, err
	}
	order := uint8(orderLittle)
	if sb.ByteOrder == binary.BigEndian {
		order = orderBig
	}
	if err := bw.WriteBytes([]byte{Version, order, sb.OffsetSize, sb.LengthSize}); err != nil {
		return 0, err
	}
	// Flags and reserved bytes
	if err := bw.WriteZeros(4); err != nil {
		return 0, err
	}
	if err := bw.WriteOffset(sb.RootGroupAddress); err != nil {
		return 0, err
	}
	if err := bw.WriteOffset(sb.EOFAddress); err != nil {
		return 0, err
	}
	if err := bw.WriteUint32(sb.NextDimID); err != nil {
		return 0, err
	}
	if err := bw.WriteUint32(binpkg.Checksum(buf.Bytes())); err != nil {
		return 0, err
	}

	if err := w.WriteBytes(buf.Bytes()); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}
