package filter

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Filter is the interface implemented by all filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() uint16

	// Encode transforms raw data to its stored form.
	Encode(input []byte) ([]byte, error)

	// Decode transforms stored data back to raw form.
	Decode(input []byte) ([]byte, error)
}

// Registry maps filter IDs to filter constructors.
var Registry = map[uint16]func([]uint32) Filter{
	message.FilterDeflate:    func(cd []uint32) Filter { return NewDeflate(cd) },
	message.FilterShuffle:    func(cd []uint32) Filter { return NewShuffle(cd) },
	message.FilterFletcher32: func(cd []uint32) Filter { return NewFletcher32(cd) },
	message.FilterLZ4:        func(cd []uint32) Filter { return NewLZ4(cd) },
	message.FilterZstd:       func(cd []uint32) Filter { return NewZstd(cd) },
}

// New creates a filter from a FilterInfo.
func New(info message.FilterInfo) (Filter, error) {
	constructor, ok := Registry[info.ID]
	if !ok {
		if info.IsOptional() {
			return nil, nil // Optional filter not available
		}
		return nil, fmt.Errorf("unsupported filter ID: %d", info.ID)
	}
	return constructor(info.ClientData), nil
}
