package filter

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// sample returns n little-endian int32 values that compress well.
func sample(n int) []byte {
	buf := make([]byte, 0, 4*n)
	for i := 0; i < n; i++ {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(i/8))
	}
	return buf
}

func TestShuffle(t *testing.T) {
	f := NewShuffle([]uint32{2})
	in := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	enc, err := f.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0x05, 0x02, 0x04, 0x06}, enc)

	dec, err := f.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, in, dec)

	_, err = f.Encode([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestShuffleSingleByteIsIdentity(t *testing.T) {
	f := NewShuffle(nil)
	in := []byte("abc")
	enc, err := f.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, in, enc)
}

func TestCodecsRoundTrip(t *testing.T) {
	raw := sample(4096)
	tests := []struct {
		name string
		f    Filter
	}{
		{"deflate", NewDeflate([]uint32{6})},
		{"deflate default", NewDeflate(nil)},
		{"lz4", NewLZ4(nil)},
		{"zstd", NewZstd(nil)},
		{"zstd level 19", NewZstd([]uint32{19})},
		{"fletcher32", NewFletcher32(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := tt.f.Encode(raw)
			require.NoError(t, err)
			if tt.f.ID() != message.FilterFletcher32 {
				assert.Less(t, len(enc), len(raw))
			}
			dec, err := tt.f.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, raw, dec)
		})
	}
}

func TestIncompressibleBlocksStoredRaw(t *testing.T) {
	raw := []byte{0x9e, 0x11, 0x47}
	for _, f := range []Filter{NewLZ4(nil), NewZstd(nil)} {
		enc, err := f.Encode(raw)
		require.NoError(t, err)
		assert.Equal(t, blockHeaderSize+len(raw), len(enc))
		assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(enc[4:]))

		dec, err := f.Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, raw, dec)

		_, err = f.Decode(enc[:4])
		assert.Error(t, err)
	}
}

func TestFletcher32DetectsCorruption(t *testing.T) {
	f := NewFletcher32(nil)
	enc, err := f.Encode([]byte("some data block"))
	require.NoError(t, err)

	enc[2] ^= 0xFF
	_, err = f.Decode(enc)
	assert.ErrorContains(t, err, "checksum mismatch")

	_, err = f.Decode([]byte{1, 2})
	assert.Error(t, err)
}

func TestPipelineOrder(t *testing.T) {
	fp := &message.FilterPipeline{Filters: []message.FilterInfo{
		{ID: message.FilterShuffle},
		{ID: message.FilterDeflate, ClientData: []uint32{9}},
		{ID: message.FilterFletcher32},
	}}
	p, err := NewPipeline(fp, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	raw := sample(1000)
	stored, err := p.Encode(raw)
	require.NoError(t, err)

	// The checksum is applied last, so it covers the compressed bytes.
	body := stored[:len(stored)-4]
	_, err = NewFletcher32(nil).Decode(stored)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(body, raw))

	back, err := p.Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestPipelineUnknownFilters(t *testing.T) {
	optional := &message.FilterPipeline{Filters: []message.FilterInfo{
		{ID: 999, Flags: 1},
		{ID: message.FilterLZ4},
	}}
	p, err := NewPipeline(optional, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())

	required := &message.FilterPipeline{Filters: []message.FilterInfo{{ID: 999}}}
	_, err = NewPipeline(required, 8)
	assert.ErrorContains(t, err, "unsupported filter ID")
}

func TestEmptyPipeline(t *testing.T) {
	p, err := NewPipeline(nil, 4)
	require.NoError(t, err)
	assert.True(t, p.Empty())

	in := []byte{1, 2, 3}
	out, err := p.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
