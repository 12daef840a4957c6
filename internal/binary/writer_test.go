package binary

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			cfg := Config{ByteOrder: order, OffsetSize: 4, LengthSize: 8}
			buf := NewBuffer(64)
			w := NewWriter(buf, cfg)

			require.NoError(t, w.WriteUint8(7))
			require.NoError(t, w.WriteUint16(0xBEEF))
			require.NoError(t, w.WriteUint32(0xCAFEBABE))
			require.NoError(t, w.WriteUint64(1<<40+3))
			require.NoError(t, w.WriteOffset(0x1234))
			require.NoError(t, w.WriteLength(99))
			require.NoError(t, w.WriteName("temperature"))
			require.NoError(t, w.WriteZeros(3))
			assert.Equal(t, int64(1+2+4+8+4+8+NameSize("temperature")+3), w.Pos())
			assert.Equal(t, int(w.Pos()), buf.Len())

			r := NewReader(buf, cfg)
			v8, _ := r.ReadUint8()
			v16, _ := r.ReadUint16()
			v32, _ := r.ReadUint32()
			v64, _ := r.ReadUint64()
			off, _ := r.ReadOffset()
			length, _ := r.ReadLength()
			name, err := r.ReadName()
			require.NoError(t, err)

			assert.Equal(t, uint8(7), v8)
			assert.Equal(t, uint16(0xBEEF), v16)
			assert.Equal(t, uint32(0xCAFEBABE), v32)
			assert.Equal(t, uint64(1<<40+3), v64)
			assert.Equal(t, uint64(0x1234), off)
			assert.Equal(t, uint64(99), length)
			assert.Equal(t, "temperature", name)
		})
	}
}

func TestWriterUintNOddWidth(t *testing.T) {
	buf := NewBuffer(0)
	w := NewWriter(buf, DefaultConfig())
	require.NoError(t, w.WriteUintN(0x030201, 3))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, buf.Bytes())
}

func TestWriterUintNOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OffsetSize = 2
	w := NewWriter(NewBuffer(0), cfg)
	require.NoError(t, w.WriteOffset(0xffff))
	assert.ErrorIs(t, w.WriteOffset(0x10000), ErrOverflow)
}

func TestWriterNameTooLong(t *testing.T) {
	w := NewWriter(NewBuffer(0), DefaultConfig())
	err := w.WriteName(strings.Repeat("x", 1<<16))
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestBufferWriteAtGrows(t *testing.T) {
	buf := NewBuffer(0)
	_, err := buf.WriteAt([]byte{0xAA}, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, buf.Len())

	// Writing behind the end overwrites in place.
	_, err = buf.WriteAt([]byte{0x01, 0x02}, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, buf.Len())
	assert.Equal(t, byte(0xAA), buf.Bytes()[10])

	p := make([]byte, 4)
	n, err := buf.ReadAt(p, 9)
	assert.Equal(t, 2, n)
	assert.Error(t, err)
}

func TestWriterAt(t *testing.T) {
	buf := NewBuffer(0)
	w := NewWriter(buf, DefaultConfig())
	require.NoError(t, w.At(4).WriteUint32(0x01020304))
	assert.Equal(t, int64(0), w.Pos())
	assert.Equal(t, []byte{0, 0, 0, 0, 0x04, 0x03, 0x02, 0x01}, buf.Bytes())
}
