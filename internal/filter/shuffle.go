package filter

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Shuffle implements the byte shuffle filter.
// This filter rearranges bytes to improve compression by grouping
// similar byte positions together (e.g., all MSBs, then all next bytes, etc.).
type Shuffle struct {
	elemSize int
}

// NewShuffle creates a new shuffle filter.
// Client data: [0] = element size in bytes
func NewShuffle(clientData []uint32) *Shuffle {
	elemSize := 1
	if len(clientData) > 0 && clientData[0] > 0 {
		elemSize = int(clientData[0])
	}
	return &Shuffle{elemSize: elemSize}
}

func (f *Shuffle) ID() uint16 {
	return message.FilterShuffle
}

// Encode groups byte j of every element together.
// Output is organized as: [all byte 0s][all byte 1s]...[all byte N-1s]
func (f *Shuffle) Encode(input []byte) ([]byte, error) {
	if f.elemSize <= 1 || len(input) < f.elemSize {
		return input, nil
	}
	if len(input)%f.elemSize != 0 {
		return nil, fmt.Errorf("shuffle: %d bytes is not a multiple of element size %d", len(input), f.elemSize)
	}

	numElems := len(input) / f.elemSize
	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[j*numElems+i] = input[i*f.elemSize+j]
		}
	}
	return output, nil
}

// Decode reverses the shuffle transformation.
func (f *Shuffle) Decode(input []byte) ([]byte, error) {
	if f.elemSize <= 1 {
		return input, nil
	}

	numBytes := len(input)
	numElems := numBytes / f.elemSize

	if numElems == 0 {
		return input, nil
	}

	output := make([]byte, numBytes)

	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			// In shuffled format, byte j of all elements is at offset j*numElems
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}

	return output, nil
}

// SetElementSize sets the element size for the shuffle filter.
// The pipeline stores no size, so it is supplied per variable.
func (f *Shuffle) SetElementSize(size int) {
	if size > 0 {
		f.elemSize = size
	}
}
