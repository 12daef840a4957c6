package netcdf

import (
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// childLoader enumerates one kind of child in the engine: how many there
// are, their ids, and how to load one.
type childLoader[T any] struct {
	kind    string
	count   func(ncid int) (int, error)
	ids     func(ncid int) ([]int, error)
	resolve func(id int) (T, error)
	add     func(T)
}

// load runs the count, enumerate, resolve passes for one kind of child.
func (l childLoader[T]) load(h *handle, ncid int) error {
	n, err := l.count(ncid)
	if err != nil {
		return h.fail("count "+l.kind, err)
	}
	ids, err := l.ids(ncid)
	if err != nil {
		return h.fail("list "+l.kind, err)
	}
	if len(ids) != n {
		return fmt.Errorf("netcdf: group %d lists %d %s, count is %d", ncid, len(ids), l.kind, n)
	}
	for _, id := range ids {
		child, err := l.resolve(id)
		if err != nil {
			return err
		}
		l.add(child)
	}
	return nil
}

// loadChildren populates g from the engine: dimensions, then the unlimited
// flags, then variables, then subgroups.
func (g *Group) loadChildren() error {
	dims := childLoader[Dimension]{
		kind:  "dimensions",
		count: nc.InqNDims,
		ids:   func(ncid int) ([]int, error) { return nc.InqDimIDs(ncid, false) },
		resolve: func(id int) (Dimension, error) {
			name, size, err := nc.InqDim(g.id, id)
			if err != nil {
				return Dimension{}, g.h.fail("inquire dimension", err)
			}
			return Dimension{ID: id, Name: name, Size: size}, nil
		},
		add: g.addDim,
	}
	unlimited := childLoader[int]{
		kind:    "unlimited dimensions",
		count:   nc.InqNUnlimDims,
		ids:     nc.InqUnlimDims,
		resolve: func(id int) (int, error) { return id, nil },
		add:     g.markUnlimited,
	}
	vars := childLoader[*Variable]{
		kind:    "variables",
		count:   nc.InqNVars,
		ids:     nc.InqVarIDs,
		resolve: func(id int) (*Variable, error) { return newVariable(g.h, g, id) },
		add:     g.addVar,
	}
	groups := childLoader[*Group]{
		kind:    "groups",
		count:   nc.InqNGrps,
		ids:     nc.InqGrps,
		resolve: func(id int) (*Group, error) { return newGroup(g.h, g, id) },
		add:     g.addGroup,
	}

	if err := dims.load(g.h, g.id); err != nil {
		return err
	}
	if err := unlimited.load(g.h, g.id); err != nil {
		return err
	}
	if err := vars.load(g.h, g.id); err != nil {
		return err
	}
	return groups.load(g.h, g.id)
}
