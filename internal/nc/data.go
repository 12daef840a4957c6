package nc

import (
	"slices"

	"github.com/robert-malhotra/go-netcdf/internal/dtype"
	"github.com/robert-malhotra/go-netcdf/internal/layout"
)

// Element is the set of Go types the data functions accept.
type Element = dtype.Element

// PutVar writes the whole variable. len(data) must equal the product of
// the current dimension lengths.
func PutVar[T Element](ncid, varid int, data []T) error {
	return do(ncid, func(ds *dataset, g *group) error {
		v, err := g.variable(varid)
		if err != nil {
			return err
		}
		return put(ds, v, layout.All(ds.shape(v)), data)
	})
}

// GetVar reads the whole variable into dst.
func GetVar[T Element](ncid, varid int, dst []T) error {
	return do(ncid, func(ds *dataset, g *group) error {
		v, err := g.variable(varid)
		if err != nil {
			return err
		}
		return get(ds, v, layout.All(ds.shape(v)), dst)
	})
}

// PutVara writes the hyperslab described by start and count.
func PutVara[T Element](ncid, varid int, start, count []uint64, data []T) error {
	return PutVars(ncid, varid, start, count, nil, data)
}

// GetVara reads the hyperslab described by start and count.
func GetVara[T Element](ncid, varid int, start, count []uint64, dst []T) error {
	return GetVars(ncid, varid, start, count, nil, dst)
}

// PutVar1 writes one element. index is empty for a scalar.
func PutVar1[T Element](ncid, varid int, index []uint64, value T) error {
	return PutVars(ncid, varid, index, ones(len(index)), nil, []T{value})
}

// GetVar1 reads one element. index is empty for a scalar.
func GetVar1[T Element](ncid, varid int, index []uint64) (T, error) {
	dst := make([]T, 1)
	err := GetVars(ncid, varid, index, ones(len(index)), nil, dst)
	return dst[0], err
}

// PutVars writes every stride-th element of the hyperslab. A nil stride
// means a stride of 1 in every dimension.
func PutVars[T Element](ncid, varid int, start, count, stride []uint64, data []T) error {
	return do(ncid, func(ds *dataset, g *group) error {
		v, err := g.variable(varid)
		if err != nil {
			return err
		}
		return put(ds, v, layout.Selection{Start: start, Count: count, Stride: stride}, data)
	})
}

// GetVars reads every stride-th element of the hyperslab.
func GetVars[T Element](ncid, varid int, start, count, stride []uint64, dst []T) error {
	return do(ncid, func(ds *dataset, g *group) error {
		v, err := g.variable(varid)
		if err != nil {
			return err
		}
		return get(ds, v, layout.Selection{Start: start, Count: count, Stride: stride}, dst)
	})
}

func ones(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// checkSelection validates sel against v and returns the shape v must have
// for the access. Unlimited dimensions grow on write.
func (ds *dataset) checkSelection(v *variable, sel layout.Selection, n int, write bool) ([]uint64, error) {
	if err := sel.Validate(len(v.dimIDs)); err != nil {
		if sel.Stride != nil && len(sel.Stride) == len(v.dimIDs) && slices.Contains(sel.Stride, 0) {
			return nil, wrap(ErrStride, err, "variable %q", v.name)
		}
		return nil, wrap(ErrInval, err, "variable %q", v.name)
	}
	want, err := sel.NumElements()
	if err != nil {
		return nil, wrap(ErrEdge, err, "variable %q", v.name)
	}
	if uint64(n) != want {
		return nil, wrap(ErrInval, nil, "variable %q: buffer holds %d elements, selection %d",
			v.name, n, want)
	}
	ext, err := sel.Extent()
	if err != nil {
		return nil, wrap(ErrEdge, err, "variable %q", v.name)
	}

	shape := ds.shape(v)
	for d, id := range v.dimIDs {
		if write && ds.dims[id].unlimited {
			if sel.Count[d] > 0 {
				shape[d] = max(shape[d], ext[d])
			}
			continue
		}
		if sel.Start[d] > shape[d] || (sel.Count[d] > 0 && sel.Start[d] == shape[d]) {
			return nil, wrap(ErrInvalCoords, nil, "variable %q: start %d of dimension %d, length %d",
				v.name, sel.Start[d], d, shape[d])
		}
		if ext[d] > shape[d] {
			return nil, wrap(ErrEdge, nil, "variable %q: dimension %d reaches %d, length %d",
				v.name, d, ext[d], shape[d])
		}
	}
	return shape, nil
}

func checkType[T Element](v *variable) error {
	if t := dtype.TypeOf[T](); t != v.typ {
		return wrap(ErrBadType, nil, "variable %q is %s, not %s", v.name, v.typ, t)
	}
	return nil
}

func put[T Element](ds *dataset, v *variable, sel layout.Selection, data []T) error {
	if ds.defineMode {
		return ErrInDefine
	}
	if !ds.writable {
		return ErrPerm
	}
	if err := checkType[T](v); err != nil {
		return err
	}
	shape, err := ds.checkSelection(v, sel, len(data), true)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if err := ds.ensureData(v, shape); err != nil {
		return err
	}
	for d, id := range v.dimIDs {
		if dm := ds.dims[id]; shape[d] > dm.length {
			dm.length = shape[d]
		}
	}
	buf := make([]byte, len(data)*v.typ.Size())
	if err := dtype.Encode(ds.cfg.ByteOrder, buf, data); err != nil {
		return wrap(ErrBadType, err, "variable %q", v.name)
	}
	layout.Scatter(v.data, v.shape, sel, v.typ.Size(), buf)
	ds.dirty = true

	if ds.share {
		return ds.flush()
	}
	return nil
}

func get[T Element](ds *dataset, v *variable, sel layout.Selection, dst []T) error {
	if ds.defineMode {
		return ErrInDefine
	}
	if err := checkType[T](v); err != nil {
		return err
	}
	shape, err := ds.checkSelection(v, sel, len(dst), false)
	if err != nil {
		return err
	}
	n := uint64(len(dst))
	if n == 0 {
		return nil
	}

	var buf []byte
	if v.data == nil {
		if buf, err = ds.fillBuffer(v, n); err != nil {
			return err
		}
	} else {
		if err := ds.ensureData(v, shape); err != nil {
			return err
		}
		buf = layout.Gather(v.data, v.shape, sel, v.typ.Size())
	}
	if err := dtype.Decode(ds.cfg.ByteOrder, dst, buf); err != nil {
		return wrap(ErrBadType, err, "variable %q", v.name)
	}
	return nil
}
