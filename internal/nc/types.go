package nc

import "github.com/robert-malhotra/go-netcdf/internal/dtype"

// Type is an external type tag.
type Type = dtype.Type

// Type tags, numbered as in the NetCDF C library.
const (
	NotAType   = dtype.NotAType
	TypeByte   = dtype.TypeByte
	TypeChar   = dtype.TypeChar
	TypeShort  = dtype.TypeShort
	TypeInt    = dtype.TypeInt
	TypeFloat  = dtype.TypeFloat
	TypeDouble = dtype.TypeDouble
	TypeUByte  = dtype.TypeUByte
	TypeUShort = dtype.TypeUShort
	TypeUInt   = dtype.TypeUInt
	TypeInt64  = dtype.TypeInt64
	TypeUInt64 = dtype.TypeUInt64
	TypeString = dtype.TypeString
)

// Char is the element type of TypeChar variables.
type Char = dtype.Char
