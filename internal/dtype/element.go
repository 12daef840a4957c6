package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Char is the Go element type for character data. It is distinct from uint8
// so that character and unsigned byte variables cannot be confused.
type Char byte

// Element is the set of Go types that can be stored in a variable.
type Element interface {
	int8 | Char | int16 | int32 | float32 | float64 |
		uint8 | uint16 | uint32 | int64 | uint64
}

// TypeOf returns the tag that corresponds to the element type T.
func TypeOf[T Element]() Type {
	var zero T
	switch any(zero).(type) {
	case int8:
		return TypeByte
	case Char:
		return TypeChar
	case int16:
		return TypeShort
	case int32:
		return TypeInt
	case float32:
		return TypeFloat
	case float64:
		return TypeDouble
	case uint8:
		return TypeUByte
	case uint16:
		return TypeUShort
	case uint32:
		return TypeUInt
	case int64:
		return TypeInt64
	case uint64:
		return TypeUInt64
	}
	return NotAType
}

// Encode writes src into dst using order. dst must hold at least
// len(src)*TypeOf[T]().Size() bytes.
func Encode[T Element](order binary.ByteOrder, dst []byte, src []T) error {
	if c, ok := any(src).([]Char); ok {
		if len(dst) < len(c) {
			return fmt.Errorf("encode: buffer of %d bytes too small for %d chars", len(dst), len(c))
		}
		for i, v := range c {
			dst[i] = byte(v)
		}
		return nil
	}
	if _, err := binary.Encode(dst, order, src); err != nil {
		return fmt.Errorf("encode %s: %w", TypeOf[T](), err)
	}
	return nil
}

// Decode fills dst from the encoded elements in src.
func Decode[T Element](order binary.ByteOrder, dst []T, src []byte) error {
	if c, ok := any(dst).([]Char); ok {
		if len(src) < len(c) {
			return fmt.Errorf("decode: %d bytes too short for %d chars", len(src), len(c))
		}
		for i := range c {
			c[i] = Char(src[i])
		}
		return nil
	}
	if _, err := binary.Decode(src, order, dst); err != nil {
		return fmt.Errorf("decode %s: %w", TypeOf[T](), err)
	}
	return nil
}

// Default fill values, identical to the NetCDF library defaults.
var fillValues = [...]any{
	TypeByte:   int8(-127),
	TypeChar:   uint8(0),
	TypeShort:  int16(-32767),
	TypeInt:    int32(-2147483647),
	TypeFloat:  float32(9.9692099683868690e+36),
	TypeDouble: float64(9.9692099683868690e+36),
	TypeUByte:  uint8(math.MaxUint8),
	TypeUShort: uint16(math.MaxUint16),
	TypeUInt:   uint32(math.MaxUint32),
	TypeInt64:  int64(-9223372036854775806),
	TypeUInt64: uint64(18446744073709551614),
}

// FillBytes returns the encoded default fill value for one element of t.
func FillBytes(t Type, order binary.ByteOrder) ([]byte, error) {
	if !t.Atomic() {
		return nil, fmt.Errorf("no fill value for %s", t)
	}
	return binary.Append(nil, order, fillValues[t])
}
