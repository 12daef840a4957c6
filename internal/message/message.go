package message

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Type identifies a header message.
type Type uint16

// Header message types
const (
	TypeNIL            Type = 0x0000
	TypeDimension      Type = 0x0001
	TypeVariable       Type = 0x0003
	TypeLink           Type = 0x0006
	TypeFilterPipeline Type = 0x000B
)

func (t Type) String() string {
	switch t {
	case TypeNIL:
		return "nil"
	case TypeDimension:
		return "dimension"
	case TypeVariable:
		return "variable"
	case TypeLink:
		return "link"
	case TypeFilterPipeline:
		return "filter pipeline"
	}
	return fmt.Sprintf("message(0x%04x)", uint16(t))
}

// Message is the interface implemented by all header messages.
type Message interface {
	Type() Type
	// Serialize writes the message body to w.
	Serialize(w *binary.Writer) error
	// SerializedSize returns the size of the body in bytes.
	SerializedSize(cfg binary.Config) int
}

// Parse decodes the body of a message of the given type.
func Parse(typ Type, data []byte, cfg binary.Config) (Message, error) {
	r := binary.NewReader(bytes.NewReader(data), cfg)
	var (
		msg Message
		err error
	)
	switch typ {
	case TypeDimension:
		msg, err = parseDimension(r)
	case TypeVariable:
		msg, err = parseVariable(r)
	case TypeLink:
		msg, err = parseLink(r)
	case TypeFilterPipeline:
		msg, err = parseFilterPipeline(r)
	default:
		return &Unknown{typ: typ, data: data}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s message: %w", typ, err)
	}
	return msg, nil
}

// Unknown represents an unrecognized message type. It is written back
// unchanged.
type Unknown struct {
	typ  Type
	data []byte
}

func (m *Unknown) Type() Type   { return m.typ }
func (m *Unknown) Data() []byte { return m.data }

func (m *Unknown) Serialize(w *binary.Writer) error {
	return w.WriteBytes(m.data)
}

func (m *Unknown) SerializedSize(binary.Config) int {
	return len(m.data)
}
