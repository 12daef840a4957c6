package message

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Filter IDs. The compressors outside the first range use their registered
// HDF5 plugin numbers.
const (
	FilterDeflate    uint16 = 1     // DEFLATE (zlib)
	FilterShuffle    uint16 = 2     // Byte shuffle
	FilterFletcher32 uint16 = 3     // Fletcher32 checksum
	FilterLZ4        uint16 = 32004 // LZ4 block
	FilterZstd       uint16 = 32015 // Zstandard
)

const filterPipelineVersion = 1

// FilterInfo describes a single filter in the pipeline.
type FilterInfo struct {
	ID         uint16   // Filter identifier
	Flags      uint16   // Filter flags (bit 0: optional)
	ClientData []uint32 // Filter parameters
}

// IsOptional returns true if this filter is optional.
func (f *FilterInfo) IsOptional() bool {
	return f.Flags&0x01 != 0
}

// FilterPipeline lists the filters applied to data blocks, in encoding order.
type FilterPipeline struct {
	Filters []FilterInfo
}

func (m *FilterPipeline) Type() Type { return TypeFilterPipeline }

// HasFilter returns true if the pipeline contains the given filter ID.
func (m *FilterPipeline) HasFilter(id uint16) bool {
	for _, f := range m.Filters {
		if f.ID == id {
			return true
		}
	}
	return false
}

// HasCompression returns true if the pipeline has any compression filter.
func (m *FilterPipeline) HasCompression() bool {
	for _, f := range m.Filters {
		switch f.ID {
		case FilterDeflate, FilterLZ4, FilterZstd:
			return true
		}
	}
	return false
}

func (m *FilterPipeline) Serialize(w *binary.Writer) error {
	if len(m.Filters) > 0xFF {
		return fmt.Errorf("filter pipeline: %d filters", len(m.Filters))
	}
	if err := w.WriteUint8(filterPipelineVersion); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(m.Filters))); err != nil {
		return err
	}
	for _, f := range m.Filters {
		if err := w.WriteUint16(f.ID); err != nil {
			return err
		}
		if err := w.WriteUint16(f.Flags); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(len(f.ClientData))); err != nil {
			return err
		}
		for _, cd := range f.ClientData {
			if err := w.WriteUint32(cd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *FilterPipeline) SerializedSize(binary.Config) int {
	size := 2
	for _, f := range m.Filters {
		size += 6 + 4*len(f.ClientData)
	}
	return size
}

func parseFilterPipeline(r *binary.Reader) (*FilterPipeline, error) {
	version, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != filterPipelineVersion {
		return nil, fmt.Errorf("unsupported filter pipeline version %d", version)
	}
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	fp := &FilterPipeline{Filters: make([]FilterInfo, n)}
	for i := range fp.Filters {
		f := &fp.Filters[i]
		if f.ID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if f.Flags, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		ncd, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		f.ClientData = make([]uint32, ncd)
		for j := range f.ClientData {
			if f.ClientData[j], err = r.ReadUint32(); err != nil {
				return nil, fmt.Errorf("filter %d client data: %w", f.ID, err)
			}
		}
	}
	return fp, nil
}
