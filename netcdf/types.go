package netcdf

import (
	"github.com/robert-malhotra/go-netcdf/internal/dtype"
)

// Type is the element type tag of a variable.
type Type = dtype.Type

// Element type tags.
const (
	NotAType   = dtype.NotAType
	TypeByte   = dtype.TypeByte   // int8
	TypeChar   = dtype.TypeChar   // Char
	TypeShort  = dtype.TypeShort  // int16
	TypeInt    = dtype.TypeInt    // int32
	TypeFloat  = dtype.TypeFloat  // float32
	TypeDouble = dtype.TypeDouble // float64
	TypeUByte  = dtype.TypeUByte  // uint8
	TypeUShort = dtype.TypeUShort // uint16
	TypeUInt   = dtype.TypeUInt   // uint32
	TypeInt64  = dtype.TypeInt64  // int64
	TypeUInt64 = dtype.TypeUInt64 // uint64
	TypeString = dtype.TypeString // no element type; cannot be stored
)

// Char is the element type of character variables.
type Char = dtype.Char

// Element is the set of Go types that variables can be read into and
// written from.
type Element = dtype.Element

// ParseType returns the tag named s, as printed by Type.String.
func ParseType(s string) (Type, error) {
	return dtype.ParseType(s)
}
