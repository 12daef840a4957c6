package dtype

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		size int
	}{
		{TypeByte, "byte", 1},
		{TypeChar, "char", 1},
		{TypeShort, "short", 2},
		{TypeInt, "int", 4},
		{TypeFloat, "float", 4},
		{TypeDouble, "double", 8},
		{TypeUByte, "unsigned byte", 1},
		{TypeUShort, "unsigned short", 2},
		{TypeUInt, "unsigned int", 4},
		{TypeInt64, "int64", 8},
		{TypeUInt64, "unsigned int64", 8},
		{TypeString, "string", 0},
		{NotAType, "not_a_type", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.size, tt.typ.Size())
		})
	}
	assert.Equal(t, "type(99)", Type(99).String())
}

func TestParseType(t *testing.T) {
	for typ := TypeByte; typ <= TypeString; typ++ {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("not_a_type")
	assert.Error(t, err)
	_, err = ParseType("complex")
	assert.Error(t, err)
}

func TestTypeOfMatchesGoType(t *testing.T) {
	check := func(typ Type, want Type, goType reflect.Type) {
		t.Helper()
		assert.Equal(t, want, typ)
		got, err := GoType(typ)
		require.NoError(t, err)
		assert.Equal(t, goType, got)
	}
	check(TypeOf[int8](), TypeByte, reflect.TypeFor[int8]())
	check(TypeOf[Char](), TypeChar, reflect.TypeFor[Char]())
	check(TypeOf[int16](), TypeShort, reflect.TypeFor[int16]())
	check(TypeOf[int32](), TypeInt, reflect.TypeFor[int32]())
	check(TypeOf[float32](), TypeFloat, reflect.TypeFor[float32]())
	check(TypeOf[float64](), TypeDouble, reflect.TypeFor[float64]())
	check(TypeOf[uint8](), TypeUByte, reflect.TypeFor[uint8]())
	check(TypeOf[uint16](), TypeUShort, reflect.TypeFor[uint16]())
	check(TypeOf[uint32](), TypeUInt, reflect.TypeFor[uint32]())
	check(TypeOf[int64](), TypeInt64, reflect.TypeFor[int64]())
	check(TypeOf[uint64](), TypeUInt64, reflect.TypeFor[uint64]())

	_, err := GoType(TypeString)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			in := []float64{1.5, -2, math.Pi}
			buf := make([]byte, 24)
			require.NoError(t, Encode(order, buf, in))
			out := make([]float64, 3)
			require.NoError(t, Decode(order, out, buf))
			assert.Equal(t, in, out)

			chars := []Char("hello")
			cbuf := make([]byte, 5)
			require.NoError(t, Encode(order, cbuf, chars))
			assert.Equal(t, []byte("hello"), cbuf)
			back := make([]Char, 5)
			require.NoError(t, Decode(order, back, cbuf))
			assert.Equal(t, chars, back)
		})
	}
}

func TestEncodeByteOrder(t *testing.T) {
	buf := make([]byte, 4)
	require.NoError(t, Encode(binary.BigEndian, buf, []int32{1}))
	assert.Equal(t, []byte{0, 0, 0, 1}, buf)
	require.NoError(t, Encode(binary.LittleEndian, buf, []int32{1}))
	assert.Equal(t, []byte{1, 0, 0, 0}, buf)
}

func TestEncodeShortBuffer(t *testing.T) {
	assert.Error(t, Encode(binary.LittleEndian, make([]byte, 3), []int32{1}))
	assert.Error(t, Encode(binary.LittleEndian, make([]byte, 1), []Char("ab")))
	assert.Error(t, Decode(binary.LittleEndian, make([]int16, 2), make([]byte, 3)))
}

func TestFillBytes(t *testing.T) {
	b, err := FillBytes(TypeInt, binary.LittleEndian)
	require.NoError(t, err)
	out := make([]int32, 1)
	require.NoError(t, Decode(binary.LittleEndian, out, b))
	assert.Equal(t, int32(-2147483647), out[0])

	b, err = FillBytes(TypeChar, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)

	for typ := TypeByte; typ <= MaxAtomic; typ++ {
		b, err := FillBytes(typ, binary.BigEndian)
		require.NoError(t, err, typ.String())
		assert.Len(t, b, typ.Size(), typ.String())
	}

	_, err = FillBytes(TypeString, binary.LittleEndian)
	assert.Error(t, err)
}
