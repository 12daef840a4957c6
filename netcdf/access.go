package netcdf

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/dtype"
	"github.com/robert-malhotra/go-netcdf/internal/layout"
	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// accessor binds an element type to its tag and the engine's entry points
// for the four access patterns.
type accessor[T Element] struct {
	typ Type

	putVar  func(ncid, varid int, data []T) error
	getVar  func(ncid, varid int, dst []T) error
	putVara func(ncid, varid int, start, count []uint64, data []T) error
	getVara func(ncid, varid int, start, count []uint64, dst []T) error
	putVar1 func(ncid, varid int, index []uint64, value T) error
	getVar1 func(ncid, varid int, index []uint64) (T, error)
	putVars func(ncid, varid int, start, count, stride []uint64, data []T) error
	getVars func(ncid, varid int, start, count, stride []uint64, dst []T) error
}

func accessorFor[T Element]() accessor[T] {
	return accessor[T]{
		typ:     dtype.TypeOf[T](),
		putVar:  nc.PutVar[T],
		getVar:  nc.GetVar[T],
		putVara: nc.PutVara[T],
		getVara: nc.GetVara[T],
		putVar1: nc.PutVar1[T],
		getVar1: nc.GetVar1[T],
		putVars: nc.PutVars[T],
		getVars: nc.GetVars[T],
	}
}

// bind checks that v is open and holds T, and switches to data mode.
func bind[T Element](v *Variable) (accessor[T], error) {
	acc := accessorFor[T]()
	if err := v.h.check(); err != nil {
		return acc, err
	}
	if acc.typ != v.typ {
		return acc, &TypeMismatchError{Variable: v.path, Requested: acc.typ, Declared: v.typ}
	}
	return acc, v.h.mode.EnterData()
}

// Write stores data as the whole variable. len(data) must equal v.Size().
func Write[T Element](v *Variable, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkLen(len(data)); err != nil {
		return err
	}
	return v.h.fail("write "+v.path, acc.putVar(v.parentID, v.id, data))
}

// Read loads the whole variable into data. len(data) must equal v.Size().
func Read[T Element](v *Variable, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkLen(len(data)); err != nil {
		return err
	}
	return v.h.fail("read "+v.path, acc.getVar(v.parentID, v.id, data))
}

// WriteSlab stores data in the hyperslab at starts with extent counts.
// Writing past the end of an unlimited dimension extends it.
func WriteSlab[T Element](v *Variable, starts, counts []uint64, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkSlab(starts, counts, nil, len(data), true); err != nil {
		return err
	}
	return v.h.fail("write "+v.path, acc.putVara(v.parentID, v.id, starts, counts, data))
}

// ReadSlab loads the hyperslab at starts with extent counts into data.
func ReadSlab[T Element](v *Variable, starts, counts []uint64, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkSlab(starts, counts, nil, len(data), false); err != nil {
		return err
	}
	return v.h.fail("read "+v.path, acc.getVara(v.parentID, v.id, starts, counts, data))
}

// WriteStrided stores data at every strides[i]-th index of the hyperslab.
func WriteStrided[T Element](v *Variable, starts, counts, strides []uint64, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkSlab(starts, counts, strides, len(data), true); err != nil {
		return err
	}
	return v.h.fail("write "+v.path, acc.putVars(v.parentID, v.id, starts, counts, strides, data))
}

// ReadStrided loads every strides[i]-th index of the hyperslab into data.
func ReadStrided[T Element](v *Variable, starts, counts, strides []uint64, data []T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if err := v.checkSlab(starts, counts, strides, len(data), false); err != nil {
		return err
	}
	return v.h.fail("read "+v.path, acc.getVars(v.parentID, v.id, starts, counts, strides, data))
}

// WriteValue stores the value of a scalar variable.
func WriteValue[T Element](v *Variable, value T) error {
	acc, err := bind[T](v)
	if err != nil {
		return err
	}
	if v.Rank() != 0 {
		return fmt.Errorf("%w: %s has rank %d", ErrNotScalar, v.path, v.Rank())
	}
	return v.h.fail("write "+v.path, acc.putVar1(v.parentID, v.id, nil, value))
}

// ReadValue loads the value of a scalar variable.
func ReadValue[T Element](v *Variable) (T, error) {
	var zero T
	acc, err := bind[T](v)
	if err != nil {
		return zero, err
	}
	if v.Rank() != 0 {
		return zero, fmt.Errorf("%w: %s has rank %d", ErrNotScalar, v.path, v.Rank())
	}
	value, err := acc.getVar1(v.parentID, v.id, nil)
	if err != nil {
		return zero, v.h.fail("read "+v.path, err)
	}
	return value, nil
}

func (v *Variable) checkLen(n int) error {
	size, err := v.Size()
	if err != nil {
		return err
	}
	if uint64(n) != size {
		return fmt.Errorf("%w: %s has %d elements, got %d", ErrShapeMismatch, v.path, size, n)
	}
	return nil
}

// checkSlab validates a selection against the current shape. On write an
// unlimited dimension may be addressed past its end.
func (v *Variable) checkSlab(starts, counts, strides []uint64, n int, write bool) error {
	rank := v.Rank()
	if len(starts) != rank || len(counts) != rank || (strides != nil && len(strides) != rank) {
		return fmt.Errorf("%w: %s has rank %d, got starts %d, counts %d", ErrRankMismatch,
			v.path, rank, len(starts), len(counts))
	}
	want, err := layout.NumElements(counts)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIndexOutOfRange, v.path, err)
	}
	if uint64(n) != want {
		return fmt.Errorf("%w: selection of %d elements, got %d", ErrShapeMismatch, want, n)
	}
	shape, err := v.Shape()
	if err != nil {
		return err
	}
	for i := range rank {
		stride := uint64(1)
		if strides != nil {
			stride = strides[i]
		}
		if stride == 0 {
			return fmt.Errorf("%w: dimension %s", ErrInvalidStride, v.dims[i].Name)
		}
		if write && v.dims[i].Unlimited {
			continue
		}
		if !inRange(starts[i], counts[i], stride, shape[i]) {
			return fmt.Errorf("%w: %s dimension %s: start %d count %d stride %d, length %d",
				ErrIndexOutOfRange, v.path, v.dims[i].Name, starts[i], counts[i], stride, shape[i])
		}
	}
	// Unlimited dimensions were skipped on write; the grown length must
	// still be representable.
	sel := layout.Selection{Start: starts, Count: counts, Stride: strides}
	if _, err := sel.Extent(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIndexOutOfRange, v.path, err)
	}
	return nil
}

// inRange reports whether the last index addressed by start, count and
// stride lies below length.
func inRange(start, count, stride, length uint64) bool {
	if count == 0 {
		return start <= length
	}
	if start >= length {
		return false
	}
	return (count - 1) <= (length-1-start)/stride
}
