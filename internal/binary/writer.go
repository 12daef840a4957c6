package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrOverflow is returned when a value is too large for its field.
var ErrOverflow = errors.New("value does not fit in field")

// Writer encodes values into an io.WriterAt, tracking its own position.
type Writer struct {
	w   io.WriterAt
	cfg Config
	pos int64
}

// NewWriter creates a writer positioned at offset 0.
func NewWriter(w io.WriterAt, cfg Config) *Writer {
	return &Writer{w: w, cfg: cfg}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{w: w.w, cfg: w.cfg, pos: offset}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Config returns the encoding parameters of the writer.
func (w *Writer) Config() Config {
	return w.cfg
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	buf := make([]byte, 2)
	w.cfg.ByteOrder.PutUint16(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.cfg.ByteOrder.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.cfg.ByteOrder.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteUintN writes an unsigned integer of n bytes (1, 2, 4, or 8).
func (w *Writer) WriteUintN(v uint64, n int) error {
	if n < 8 && v>>(8*uint(n)) != 0 {
		return fmt.Errorf("%w: %d in %d bytes", ErrOverflow, v, n)
	}
	buf := make([]byte, n)
	encodeUint(w.cfg.ByteOrder, buf, v)
	return w.WriteBytes(buf)
}

// WriteOffset writes a file offset using the configured offset size.
func (w *Writer) WriteOffset(v uint64) error {
	return w.WriteUintN(v, w.cfg.OffsetSize)
}

// WriteLength writes a length value using the configured length size.
func (w *Writer) WriteLength(v uint64) error {
	return w.WriteUintN(v, w.cfg.LengthSize)
}

// WriteName writes a 16-bit byte count followed by the name bytes.
func (w *Writer) WriteName(name string) error {
	if len(name) > math.MaxUint16 {
		return ErrNameTooLong
	}
	if err := w.WriteUint16(uint16(len(name))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(name))
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteBytes(make([]byte, n))
}

// NameSize returns the encoded size of a name.
func NameSize(name string) int {
	return 2 + len(name)
}

func encodeUint(order binary.ByteOrder, buf []byte, v uint64) {
	switch len(buf) {
	case 1:
		buf[0] = uint8(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, v)
	default:
		n := len(buf)
		for i := 0; i < n; i++ {
			shift := 8 * i
			if order == binary.BigEndian {
				buf[n-1-i] = byte(v >> shift)
			} else {
				buf[i] = byte(v >> shift)
			}
		}
	}
}

// Buffer is a growable in-memory io.WriterAt and io.ReaderAt. It is used to
// stage a structure before its checksum is known.
type Buffer struct {
	buf []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// NewBufferFrom creates a buffer holding data. The buffer takes ownership
// of the slice.
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// WriteAt implements io.WriterAt, growing the buffer as needed.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(b.buf) {
		if end > cap(b.buf) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		} else {
			b.buf = b.buf[:end]
		}
	}
	copy(b.buf[off:], p)
	return len(p), nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes returns the buffered bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}
