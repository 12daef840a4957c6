// Package dtype defines the element type tags understood by the engine and
// the mapping between those tags and Go element types.
//
// # Type Mapping
//
//	Tag         | Go type | Size | Name
//	------------|---------|------|-----------------
//	TypeByte    | int8    | 1    | byte
//	TypeChar    | Char    | 1    | char
//	TypeShort   | int16   | 2    | short
//	TypeInt     | int32   | 4    | int
//	TypeFloat   | float32 | 4    | float
//	TypeDouble  | float64 | 8    | double
//	TypeUByte   | uint8   | 1    | unsigned byte
//	TypeUShort  | uint16  | 2    | unsigned short
//	TypeUInt    | uint32  | 4    | unsigned int
//	TypeInt64   | int64   | 8    | int64
//	TypeUInt64  | uint64  | 8    | unsigned int64
//	TypeString  | (none)  | -    | string
//
// TypeString can be named but carries no fixed-size element, so no Go type maps
// to it and the engine refuses to define variables of that type.
//
// # Encoding
//
// Variable data is held as raw bytes in the container's byte order. [Encode]
// and [Decode] move values between typed slices and that representation;
// [FillBytes] returns the pattern used for elements that were never written.
package dtype
