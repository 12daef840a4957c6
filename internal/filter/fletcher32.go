package filter

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Fletcher32Filter implements the Fletcher-32 checksum filter.
// The checksum is stored little-endian as the last 4 bytes of the block.
type Fletcher32Filter struct{}

// NewFletcher32 creates a new Fletcher-32 filter.
func NewFletcher32([]uint32) *Fletcher32Filter {
	return &Fletcher32Filter{}
}

func (f *Fletcher32Filter) ID() uint16 {
	return message.FilterFletcher32
}

// Encode appends the checksum of input.
func (f *Fletcher32Filter) Encode(input []byte) ([]byte, error) {
	out := make([]byte, len(input), len(input)+4)
	copy(out, input)
	return binary.LittleEndian.AppendUint32(out, binpkg.Fletcher32(input)), nil
}

// Decode verifies the Fletcher-32 checksum and returns the data without it.
func (f *Fletcher32Filter) Decode(input []byte) ([]byte, error) {
	if len(input) < 4 {
		return nil, fmt.Errorf("fletcher32: input too short for checksum")
	}

	data := input[:len(input)-4]
	storedChecksum := binary.LittleEndian.Uint32(input[len(input)-4:])
	computedChecksum := binpkg.Fletcher32(data)

	if storedChecksum != computedChecksum {
		return nil, fmt.Errorf("fletcher32: checksum mismatch (stored=0x%08x, computed=0x%08x)",
			storedChecksum, computedChecksum)
	}

	return data, nil
}
