package message

import (
	"github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Link names a child group and points at its object header.
type Link struct {
	Name          string
	ObjectAddress uint64
}

func (m *Link) Type() Type { return TypeLink }

func (m *Link) Serialize(w *binary.Writer) error {
	if err := w.WriteOffset(m.ObjectAddress); err != nil {
		return err
	}
	return w.WriteName(m.Name)
}

func (m *Link) SerializedSize(cfg binary.Config) int {
	return cfg.OffsetSize + binary.NameSize(m.Name)
}

func parseLink(r *binary.Reader) (*Link, error) {
	addr, err := r.ReadOffset()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadName()
	if err != nil {
		return nil, err
	}
	return &Link{Name: name, ObjectAddress: addr}, nil
}
