// Package binary provides the low-level encoding used by the container format:
// byte-order aware fixed-width integers, variable-width offsets and lengths,
// length-prefixed names, and the checksums that guard metadata and data blocks.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidSize is returned when an invalid offset or length size is specified.
	ErrInvalidSize = errors.New("invalid offset/length size: must be 2, 4, or 8")

	// ErrNameTooLong is returned when a name does not fit its 16-bit length prefix.
	ErrNameTooLong = errors.New("name exceeds 65535 bytes")
)

// Config holds the encoding parameters recorded in the superblock.
type Config struct {
	ByteOrder  binary.ByteOrder
	OffsetSize int // 2, 4, or 8 bytes
	LengthSize int // 2, 4, or 8 bytes
}

// DefaultConfig returns little-endian encoding with 8-byte offsets and lengths.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.LittleEndian,
		OffsetSize: 8,
		LengthSize: 8,
	}
}

// Validate reports whether the offset and length sizes are supported.
func (c Config) Validate() error {
	if !validSize(c.OffsetSize) || !validSize(c.LengthSize) {
		return fmt.Errorf("%w: offset=%d length=%d", ErrInvalidSize, c.OffsetSize, c.LengthSize)
	}
	if c.ByteOrder == nil {
		return errors.New("byte order not set")
	}
	return nil
}

func validSize(n int) bool {
	return n == 2 || n == 4 || n == 8
}

// Reader decodes values from an io.ReaderAt, tracking its own position.
type Reader struct {
	r   io.ReaderAt
	cfg Config
	pos int64
}

// NewReader creates a reader positioned at offset 0.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{r: r, cfg: cfg}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{r: r.r, cfg: r.cfg, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Config returns the encoding parameters of the reader.
func (r *Reader) Config() Config {
	return r.cfg
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read == n {
		// ReaderAt may report io.EOF together with a full read at the end of input.
		err = nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.cfg.ByteOrder.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.cfg.ByteOrder.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.cfg.ByteOrder.Uint64(buf), nil
}

// ReadUintN reads an unsigned integer of n bytes (1, 2, 4, or 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return decodeUint(r.cfg.ByteOrder, buf), nil
}

// ReadOffset reads a file offset using the configured offset size.
func (r *Reader) ReadOffset() (uint64, error) {
	return r.ReadUintN(r.cfg.OffsetSize)
}

// ReadLength reads a length value using the configured length size.
func (r *Reader) ReadLength() (uint64, error) {
	return r.ReadUintN(r.cfg.LengthSize)
}

// ReadName reads a name stored as a 16-bit byte count followed by the bytes.
func (r *Reader) ReadName() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

func decodeUint(order binary.ByteOrder, buf []byte) uint64 {
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	}
	var val uint64
	if order == binary.BigEndian {
		for _, b := range buf {
			val = val<<8 | uint64(b)
		}
		return val
	}
	for i := len(buf) - 1; i >= 0; i-- {
		val = val<<8 | uint64(buf[i])
	}
	return val
}
