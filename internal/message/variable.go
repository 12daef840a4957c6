package message

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Variable describes one variable and where its data block lives.
//
// DataAddress is zero when the variable holds no data yet. StoredSize is the
// size of the block on disk after filtering; RawSize is the decoded size.
type Variable struct {
	ID          uint32
	Name        string
	DataType    uint8
	DimIDs      []uint32
	DataAddress uint64
	StoredSize  uint64
	RawSize     uint64
}

func (m *Variable) Type() Type { return TypeVariable }

// HasData reports whether a data block was written for the variable.
func (m *Variable) HasData() bool {
	return m.DataAddress != 0 && m.StoredSize > 0
}

// Serialize layout:
//
//	id           uint32
//	data type    uint8
//	rank         uint16
//	dim ids      rank x uint32
//	data address offset-size
//	stored size  length-size
//	raw size     length-size
//	name         uint16 count + bytes
func (m *Variable) Serialize(w *binary.Writer) error {
	if len(m.DimIDs) > 0xFFFF {
		return fmt.Errorf("variable %q: rank %d too large", m.Name, len(m.DimIDs))
	}
	if err := w.WriteUint32(m.ID); err != nil {
		return err
	}
	if err := w.WriteUint8(m.DataType); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(len(m.DimIDs))); err != nil {
		return err
	}
	for _, id := range m.DimIDs {
		if err := w.WriteUint32(id); err != nil {
			return err
		}
	}
	if err := w.WriteOffset(m.DataAddress); err != nil {
		return err
	}
	if err := w.WriteLength(m.StoredSize); err != nil {
		return err
	}
	if err := w.WriteLength(m.RawSize); err != nil {
		return err
	}
	return w.WriteName(m.Name)
}

func (m *Variable) SerializedSize(cfg binary.Config) int {
	return 4 + 1 + 2 + 4*len(m.DimIDs) + cfg.OffsetSize + 2*cfg.LengthSize + binary.NameSize(m.Name)
}

func parseVariable(r *binary.Reader) (*Variable, error) {
	m := &Variable{}
	var err error
	if m.ID, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if m.DataType, err = r.ReadUint8(); err != nil {
		return nil, err
	}
	rank, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	m.DimIDs = make([]uint32, rank)
	for i := range m.DimIDs {
		if m.DimIDs[i], err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	if m.DataAddress, err = r.ReadOffset(); err != nil {
		return nil, err
	}
	if m.StoredSize, err = r.ReadLength(); err != nil {
		return nil, err
	}
	if m.RawSize, err = r.ReadLength(); err != nil {
		return nil, err
	}
	if m.Name, err = r.ReadName(); err != nil {
		return nil, err
	}
	return m, nil
}
