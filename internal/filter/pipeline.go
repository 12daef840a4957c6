package filter

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Pipeline is the ordered list of filters applied to data blocks.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a filter pipeline from a FilterPipeline message.
// elemSize is the element size of the variable the pipeline serves; it
// configures any shuffle filter.
func NewPipeline(fp *message.FilterPipeline, elemSize int) (*Pipeline, error) {
	if fp == nil || len(fp.Filters) == 0 {
		return &Pipeline{}, nil
	}

	p := &Pipeline{
		filters: make([]Filter, 0, len(fp.Filters)),
	}

	for _, info := range fp.Filters {
		f, err := New(info)
		if err != nil {
			return nil, fmt.Errorf("creating filter %d: %w", info.ID, err)
		}
		if f == nil {
			continue
		}
		if s, ok := f.(*Shuffle); ok {
			s.SetElementSize(elemSize)
		}
		p.filters = append(p.filters, f)
	}

	return p, nil
}

// Encode applies the filters in order.
func (p *Pipeline) Encode(input []byte) ([]byte, error) {
	data := input
	for _, f := range p.filters {
		var err error
		data, err = f.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %d encode: %w", f.ID(), err)
		}
	}
	return data, nil
}

// Decode applies the filters in reverse order.
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	data := input
	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %d decode: %w", p.filters[i].ID(), err)
		}
	}
	return data, nil
}

// Empty returns true if the pipeline has no filters.
func (p *Pipeline) Empty() bool {
	return len(p.filters) == 0
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}
