package netcdf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-netcdf/internal/layout"
	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// Variable is a named, typed array over an ordered list of dimensions.
// Its type and dimensions are fixed; the lengths of unlimited dimensions
// are read from the file on every Shape call.
type Variable struct {
	h        *handle
	id       int
	parentID int
	name     string
	path     string
	typ      Type
	dims     []Dimension
}

// newVariable loads variable varid of group g.
func newVariable(h *handle, g *Group, varid int) (*Variable, error) {
	name, typ, dimIDs, err := nc.InqVar(g.id, varid)
	if err != nil {
		return nil, h.fail("inquire variable", err)
	}
	v := &Variable{
		h:        h,
		id:       varid,
		parentID: g.id,
		name:     name,
		path:     joinPath(g.FullPath(), name),
		typ:      typ,
		dims:     make([]Dimension, len(dimIDs)),
	}
	for i, id := range dimIDs {
		dname, size, err := nc.InqDim(g.id, id)
		if err != nil {
			return nil, h.fail("inquire dimension", err)
		}
		v.dims[i] = Dimension{ID: id, Name: dname, Size: size, Unlimited: g.isUnlimited(id)}
	}
	return v, nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// ID returns the engine id of the variable within its group.
func (v *Variable) ID() int { return v.id }

// Path returns the absolute path of the variable.
func (v *Variable) Path() string { return v.path }

// Type returns the element type tag.
func (v *Variable) Type() Type { return v.typ }

// Rank returns the number of dimensions, 0 for a scalar.
func (v *Variable) Rank() int { return len(v.dims) }

// Dimensions returns the variable's dimensions as loaded.
func (v *Variable) Dimensions() []Dimension {
	return slices.Clone(v.dims)
}

// Shape returns the current length of each dimension.
func (v *Variable) Shape() ([]uint64, error) {
	if err := v.h.check(); err != nil {
		return nil, err
	}
	shape := make([]uint64, len(v.dims))
	for i, d := range v.dims {
		if !d.Unlimited {
			shape[i] = d.Size
			continue
		}
		_, size, err := nc.InqDim(v.parentID, d.ID)
		if err != nil {
			return nil, v.h.fail("inquire dimension", err)
		}
		shape[i] = size
	}
	return shape, nil
}

// Size returns the number of elements, the product of Shape.
func (v *Variable) Size() (uint64, error) {
	shape, err := v.Shape()
	if err != nil {
		return 0, err
	}
	n, err := layout.NumElements(shape)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTooLarge, v.path, err)
	}
	return n, nil
}

func (v *Variable) String() string {
	names := make([]string, len(v.dims))
	for i, d := range v.dims {
		names[i] = d.Name
	}
	if len(names) == 0 {
		return fmt.Sprintf("%s %s ;", v.typ, v.name)
	}
	return fmt.Sprintf("%s %s(%s) ;", v.typ, v.name, strings.Join(names, ", "))
}
