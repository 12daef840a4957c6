package dtype

import (
	"fmt"
	"reflect"
)

// Type is an element type tag. Values follow the NetCDF external type
// numbering so tags are stable on disk.
type Type int

const (
	NotAType Type = iota
	TypeByte
	TypeChar
	TypeShort
	TypeInt
	TypeFloat
	TypeDouble
	TypeUByte
	TypeUShort
	TypeUInt
	TypeInt64
	TypeUInt64
	TypeString
)

// MaxAtomic is the largest tag with a fixed-size representation.
const MaxAtomic = TypeUInt64

var typeNames = [...]string{
	NotAType:   "not_a_type",
	TypeByte:   "byte",
	TypeChar:   "char",
	TypeShort:  "short",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeDouble: "double",
	TypeUByte:  "unsigned byte",
	TypeUShort: "unsigned short",
	TypeUInt:   "unsigned int",
	TypeInt64:  "int64",
	TypeUInt64: "unsigned int64",
	TypeString: "string",
}

var typeSizes = [...]int{
	TypeByte:   1,
	TypeChar:   1,
	TypeShort:  2,
	TypeInt:    4,
	TypeFloat:  4,
	TypeDouble: 8,
	TypeUByte:  1,
	TypeUShort: 2,
	TypeUInt:   4,
	TypeInt64:  8,
	TypeUInt64: 8,
}

func (t Type) String() string {
	if !t.Known() && t != NotAType {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// Size returns the storage size of one element, or 0 for tags without a
// fixed-size representation.
func (t Type) Size() int {
	if !t.Atomic() {
		return 0
	}
	return typeSizes[t]
}

// Atomic reports whether t is a fixed-size numeric or character type.
func (t Type) Atomic() bool {
	return t >= TypeByte && t <= MaxAtomic
}

// Known reports whether t is any tag this package defines, including String.
func (t Type) Known() bool {
	return t >= TypeByte && t <= TypeString
}

// ParseType returns the tag whose name is s.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if Type(i) != NotAType && name == s {
			return Type(i), nil
		}
	}
	return NotAType, fmt.Errorf("unknown element type %q", s)
}

// GoType returns the Go element type for t.
func GoType(t Type) (reflect.Type, error) {
	switch t {
	case TypeByte:
		return reflect.TypeFor[int8](), nil
	case TypeChar:
		return reflect.TypeFor[Char](), nil
	case TypeShort:
		return reflect.TypeFor[int16](), nil
	case TypeInt:
		return reflect.TypeFor[int32](), nil
	case TypeFloat:
		return reflect.TypeFor[float32](), nil
	case TypeDouble:
		return reflect.TypeFor[float64](), nil
	case TypeUByte:
		return reflect.TypeFor[uint8](), nil
	case TypeUShort:
		return reflect.TypeFor[uint16](), nil
	case TypeUInt:
		return reflect.TypeFor[uint32](), nil
	case TypeInt64:
		return reflect.TypeFor[int64](), nil
	case TypeUInt64:
		return reflect.TypeFor[uint64](), nil
	default:
		return nil, fmt.Errorf("no Go element type for %s", t)
	}
}
