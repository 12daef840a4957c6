package message

import (
	"github.com/robert-malhotra/go-netcdf/internal/binary"
)

const dimFlagUnlimited = 0x01

// Dimension describes one axis owned by a group.
type Dimension struct {
	ID        uint32
	Name      string
	Length    uint64 // current length; for unlimited dimensions the record count
	Unlimited bool
}

func (m *Dimension) Type() Type { return TypeDimension }

// Serialize layout:
//
//	id       uint32
//	flags    uint8 (bit 0: unlimited)
//	length   length-size
//	name     uint16 count + bytes
func (m *Dimension) Serialize(w *binary.Writer) error {
	var flags uint8
	if m.Unlimited {
		flags |= dimFlagUnlimited
	}
	if err := w.WriteUint32(m.ID); err != nil {
		return err
	}
	if err := w.WriteUint8(flags); err != nil {
		return err
	}
	if err := w.WriteLength(m.Length); err != nil {
		return err
	}
	return w.WriteName(m.Name)
}

func (m *Dimension) SerializedSize(cfg binary.Config) int {
	return 4 + 1 + cfg.LengthSize + binary.NameSize(m.Name)
}

func parseDimension(r *binary.Reader) (*Dimension, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	flags, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	return &Dimension{
		ID:        id,
		Name:      name,
		Length:    length,
		Unlimited: flags&dimFlagUnlimited != 0,
	}, nil
}
