package layout

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"
)

// ErrOverflow reports an element count, index or byte size that does not
// fit the integer type holding it.
var ErrOverflow = errors.New("layout: size overflow")

// Selection addresses elements of an array, one entry per dimension.
// A nil Stride means every stride is 1. A rank-0 selection addresses the
// single element of a scalar.
type Selection struct {
	Start  []uint64
	Count  []uint64
	Stride []uint64
}

// All returns the selection covering every element of an array of the given
// shape.
func All(dims []uint64) Selection {
	return Selection{
		Start: make([]uint64, len(dims)),
		Count: append([]uint64(nil), dims...),
	}
}

// Rank returns the number of dimensions the selection addresses.
func (s Selection) Rank() int {
	return len(s.Start)
}

func (s Selection) stride(d int) uint64 {
	if s.Stride == nil {
		return 1
	}
	return s.Stride[d]
}

// NumElements returns the number of selected elements.
func (s Selection) NumElements() (uint64, error) {
	return NumElements(s.Count)
}

// Extent returns, per dimension, one past the last addressed index. A
// dimension with a zero count has extent Start. It fails with ErrOverflow
// when an index past the last one is not representable.
func (s Selection) Extent() ([]uint64, error) {
	ext := make([]uint64, len(s.Start))
	for d := range s.Start {
		if s.Count[d] == 0 {
			ext[d] = s.Start[d]
			continue
		}
		hi, span := bits.Mul64(s.Count[d]-1, s.stride(d))
		last, carry := bits.Add64(s.Start[d], span, 0)
		if hi != 0 || carry != 0 || last == math.MaxUint64 {
			return nil, fmt.Errorf("%w: dimension %d: start %d count %d stride %d",
				ErrOverflow, d, s.Start[d], s.Count[d], s.stride(d))
		}
		ext[d] = last + 1
	}
	return ext, nil
}

// Validate checks the selection's shape against an array of rank dims.
func (s Selection) Validate(rank int) error {
	if len(s.Start) != rank || len(s.Count) != rank {
		return fmt.Errorf("selection rank %d/%d, array rank %d", len(s.Start), len(s.Count), rank)
	}
	if s.Stride != nil {
		if len(s.Stride) != rank {
			return fmt.Errorf("stride rank %d, array rank %d", len(s.Stride), rank)
		}
		for d, st := range s.Stride {
			if st == 0 {
				return fmt.Errorf("stride of dimension %d is zero", d)
			}
		}
	}
	return nil
}

// NumElements returns the product of dims, 1 for a scalar.
func NumElements(dims []uint64) (uint64, error) {
	if slices.Contains(dims, 0) {
		return 0, nil
	}
	n := uint64(1)
	for _, d := range dims {
		hi, lo := bits.Mul64(n, d)
		if hi != 0 {
			return 0, fmt.Errorf("%w: %v elements", ErrOverflow, dims)
		}
		n = lo
	}
	return n, nil
}

// ByteSize returns the size in bytes of an array of shape dims, failing
// with ErrOverflow when it does not fit in an int.
func ByteSize(dims []uint64, elemSize int) (int, error) {
	n, err := NumElements(dims)
	if err != nil {
		return 0, err
	}
	if n > uint64(math.MaxInt)/uint64(elemSize) {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, n, elemSize)
	}
	return int(n) * elemSize, nil
}

// count is NumElements for shapes already known to fit.
func count(dims []uint64) uint64 {
	n := uint64(1)
	for _, d := range dims {
		n *= d
	}
	return n
}

// rowStrides returns the byte distance between consecutive indices of each
// dimension of a row-major array.
func rowStrides(dims []uint64, elemSize uint64) []uint64 {
	strides := make([]uint64, len(dims))
	if len(dims) == 0 {
		return strides
	}
	strides[len(dims)-1] = elemSize
	for d := len(dims) - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * dims[d+1]
	}
	return strides
}

// Gather copies the selected elements of array, whose shape is dims, into a
// new dense buffer in row-major selection order. The selection must lie
// inside dims.
func Gather(array []byte, dims []uint64, sel Selection, elemSize int) []byte {
	out := make([]byte, count(sel.Count)*uint64(elemSize))
	walk(array, out, dims, sel, uint64(elemSize), false)
	return out
}

// Scatter copies the dense buffer data into the selected elements of array.
func Scatter(array []byte, dims []uint64, sel Selection, elemSize int, data []byte) {
	walk(array, data, dims, sel, uint64(elemSize), true)
}

func walk(array, dense []byte, dims []uint64, sel Selection, elemSize uint64, scatter bool) {
	if len(dims) == 0 {
		if scatter {
			copy(array[:elemSize], dense)
		} else {
			copy(dense, array[:elemSize])
		}
		return
	}
	if count(sel.Count) == 0 {
		return
	}
	w := &walker{
		array:      array,
		dense:      dense,
		sel:        sel,
		elemSize:   elemSize,
		srcStrides: rowStrides(dims, elemSize),
		dstStrides: rowStrides(sel.Count, elemSize),
		scatter:    scatter,
	}
	w.copyDim(0, 0, 0)
}

type walker struct {
	array, dense []byte
	sel          Selection
	elemSize     uint64
	srcStrides   []uint64
	dstStrides   []uint64
	scatter      bool
}

func (w *walker) move(arrayOff, denseOff, n uint64) {
	if w.scatter {
		copy(w.array[arrayOff:arrayOff+n], w.dense[denseOff:denseOff+n])
	} else {
		copy(w.dense[denseOff:denseOff+n], w.array[arrayOff:arrayOff+n])
	}
}

func (w *walker) copyDim(dim int, arrayOff, denseOff uint64) {
	last := dim == len(w.srcStrides)-1
	stride := w.sel.stride(dim)
	base := arrayOff + w.sel.Start[dim]*w.srcStrides[dim]

	if last && stride == 1 {
		// Innermost dimension - copy contiguously
		w.move(base, denseOff, w.sel.Count[dim]*w.elemSize)
		return
	}

	for i := uint64(0); i < w.sel.Count[dim]; i++ {
		a := base + i*stride*w.srcStrides[dim]
		d := denseOff + i*w.dstStrides[dim]
		if last {
			w.move(a, d, w.elemSize)
			continue
		}
		w.copyDim(dim+1, a, d)
	}
}

// Resize returns a buffer of shape newDims holding the elements of old
// (shape oldDims) that fit, with every other element set to fill. The
// caller checks newDims with ByteSize first.
func Resize(old []byte, oldDims, newDims []uint64, elemSize int, fill []byte) []byte {
	out := make([]byte, count(newDims)*uint64(elemSize))
	Fill(out, fill)
	if len(old) == 0 {
		return out
	}

	overlap := make([]uint64, len(newDims))
	for d := range newDims {
		overlap[d] = min(oldDims[d], newDims[d])
	}
	sel := Selection{Start: make([]uint64, len(newDims)), Count: overlap}
	Scatter(out, newDims, sel, elemSize, Gather(old, oldDims, sel, elemSize))
	return out
}

// Fill copies pattern over dst until dst is full.
func Fill(dst, pattern []byte) {
	if len(pattern) == 0 || len(dst) == 0 {
		return
	}
	n := copy(dst, pattern)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}
