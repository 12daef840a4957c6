package superblock

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binpkg "github.com/robert-malhotra/go-netcdf/internal/binary"
)

func writeSuperblock(t *testing.T, sb *Superblock) *binpkg.Buffer {
	t.Helper()
	buf := binpkg.NewBuffer(0)
	n, err := sb.Write(binpkg.NewWriter(buf, sb.Config()))
	require.NoError(t, err)
	require.Equal(t, int64(sb.Size()), n)
	return buf
}

func TestWriteRead(t *testing.T) {
	configs := []binpkg.Config{
		binpkg.DefaultConfig(),
		{ByteOrder: binary.BigEndian, OffsetSize: 4, LengthSize: 2},
		{ByteOrder: binary.LittleEndian, OffsetSize: 2, LengthSize: 8},
	}
	for _, cfg := range configs {
		sb := New(cfg)
		sb.RootGroupAddress = 200
		sb.EOFAddress = 300
		sb.NextDimID = 7

		got, err := Read(writeSuperblock(t, sb))
		require.NoError(t, err)
		assert.Equal(t, sb, got)
		assert.Equal(t, cfg, got.Config())
	}
}

func TestReadRejects(t *testing.T) {
	sb := New(binpkg.DefaultConfig())
	sb.RootGroupAddress = uint64(sb.Size())
	sb.EOFAddress = 1000
	valid := writeSuperblock(t, sb).Bytes()

	corrupt := func(i int, b byte) []byte {
		out := append([]byte(nil), valid...)
		out[i] = b
		return out
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotContainer},
		{"short", valid[:5], ErrNotContainer},
		{"signature", corrupt(1, 'H'), ErrNotContainer},
		{"version", corrupt(8, 2), ErrUnsupportedVersion},
		{"byte order", corrupt(9, 7), ErrInvalidSuperblock},
		{"offset size", corrupt(10, 3), ErrInvalidSuperblock},
		{"checksum", corrupt(20, valid[20]^0xFF), ErrChecksumMismatch},
		{"truncated", valid[:len(valid)-2], ErrInvalidSuperblock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(binpkg.NewBufferFrom(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadRejectsBadRootAddress(t *testing.T) {
	sb := New(binpkg.DefaultConfig())
	sb.RootGroupAddress = 4
	sb.EOFAddress = 100
	_, err := Read(writeSuperblock(t, sb))
	assert.ErrorIs(t, err, ErrInvalidSuperblock)
}
