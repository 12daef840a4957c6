package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid returns a rows x cols byte array whose element (r, c) is r*16+c.
func grid(rows, cols int) []byte {
	out := make([]byte, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[r*cols+c] = byte(r*16 + c)
		}
	}
	return out
}

func TestGatherHyperslab(t *testing.T) {
	dims := []uint64{3, 4}
	sel := Selection{Start: []uint64{1, 1}, Count: []uint64{2, 2}}
	got := Gather(grid(3, 4), dims, sel, 1)
	assert.Equal(t, []byte{0x11, 0x12, 0x21, 0x22}, got)
}

func TestGatherStrided(t *testing.T) {
	dims := []uint64{3, 4}
	sel := Selection{Start: []uint64{0, 1}, Count: []uint64{2, 2}, Stride: []uint64{2, 2}}
	got := Gather(grid(3, 4), dims, sel, 1)
	assert.Equal(t, []byte{0x01, 0x03, 0x21, 0x23}, got)
	ext, err := sel.Extent()
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 4}, ext)
}

func TestScatterLeavesSurroundingsUntouched(t *testing.T) {
	dims := []uint64{3, 4}
	array := make([]byte, 3*4*2)
	sel := Selection{Start: []uint64{1, 2}, Count: []uint64{2, 1}}
	Scatter(array, dims, sel, 2, []byte{0xAA, 0xAB, 0xBA, 0xBB})

	for i := 0; i < 12; i++ {
		elem := array[2*i : 2*i+2]
		switch i {
		case 1*4 + 2:
			assert.Equal(t, []byte{0xAA, 0xAB}, elem)
		case 2*4 + 2:
			assert.Equal(t, []byte{0xBA, 0xBB}, elem)
		default:
			assert.Equal(t, []byte{0, 0}, elem, "element %d", i)
		}
	}
	assert.Equal(t, []byte{0xAA, 0xAB, 0xBA, 0xBB}, Gather(array, dims, sel, 2))
}

func TestScalar(t *testing.T) {
	array := []byte{0, 0, 0, 0}
	Scatter(array, nil, Selection{}, 4, []byte{1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3, 4}, Gather(array, nil, Selection{}, 4))
	n, err := NumElements(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestThreeDimensions(t *testing.T) {
	dims := []uint64{2, 3, 4}
	array := make([]byte, 24)
	for i := range array {
		array[i] = byte(i)
	}
	sel := Selection{Start: []uint64{1, 0, 3}, Count: []uint64{1, 3, 1}}
	assert.Equal(t, []byte{15, 19, 23}, Gather(array, dims, sel, 1))
}

func TestEmptySelection(t *testing.T) {
	sel := Selection{Start: []uint64{2, 0}, Count: []uint64{0, 4}}
	assert.Empty(t, Gather(grid(3, 4), []uint64{3, 4}, sel, 1))
	ext, err := sel.Extent()
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 4}, ext)
}

func TestResize(t *testing.T) {
	old := grid(2, 2)
	got := Resize(old, []uint64{2, 2}, []uint64{3, 3}, 1, []byte{0xFF})
	assert.Equal(t, []byte{
		0x00, 0x01, 0xFF,
		0x10, 0x11, 0xFF,
		0xFF, 0xFF, 0xFF,
	}, got)

	fresh := Resize(nil, nil, []uint64{2}, 2, []byte{7, 8})
	assert.Equal(t, []byte{7, 8, 7, 8}, fresh)
}

func TestValidate(t *testing.T) {
	require.NoError(t, All([]uint64{3, 4}).Validate(2))
	assert.Error(t, Selection{Start: []uint64{0}, Count: []uint64{1, 1}}.Validate(2))
	assert.Error(t, Selection{Start: []uint64{0}, Count: []uint64{1}, Stride: []uint64{0}}.Validate(1))
	assert.Error(t, Selection{Start: []uint64{0}, Count: []uint64{1}, Stride: []uint64{1, 1}}.Validate(1))
}

func TestFill(t *testing.T) {
	dst := make([]byte, 7)
	Fill(dst, []byte{1, 2})
	assert.Equal(t, []byte{1, 2, 1, 2, 1, 2, 1}, dst)
}

func TestOverflow(t *testing.T) {
	huge := []uint64{1 << 32, 1 << 32}
	_, err := NumElements(huge)
	assert.ErrorIs(t, err, ErrOverflow)

	// A zero length wins over an overflowing prefix.
	n, err := NumElements([]uint64{1 << 32, 1 << 32, 0})
	require.NoError(t, err)
	assert.Zero(t, n)

	size, err := ByteSize([]uint64{1 << 20, 4}, 8)
	require.NoError(t, err)
	assert.Equal(t, 1<<25, size)
	_, err = ByteSize([]uint64{1 << 62}, 8)
	assert.ErrorIs(t, err, ErrOverflow)

	tests := []struct {
		name string
		sel  Selection
	}{
		{"start at max", Selection{Start: []uint64{math.MaxUint64}, Count: []uint64{1}}},
		{"count past max", Selection{Start: []uint64{2}, Count: []uint64{math.MaxUint64}}},
		{"stride past max", Selection{Start: []uint64{0}, Count: []uint64{3}, Stride: []uint64{1 << 63}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sel.Extent()
			assert.ErrorIs(t, err, ErrOverflow)
		})
	}

	ext, err := Selection{Start: []uint64{math.MaxUint64 - 1}, Count: []uint64{1}}.Extent()
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64}, ext)
}
