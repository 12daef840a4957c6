package netcdf

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// Group is a named container of dimensions, variables and groups. Its
// children are loaded once, when the group is constructed; afterwards only
// the Add methods change them.
type Group struct {
	h      *handle
	id     int
	name   string
	parent *Group

	dims     map[string]Dimension
	dimNames []string
	vars     map[string]*Variable
	varNames []string
	groups   map[string]*Group
	grpNames []string
}

// newGroup loads group id and, recursively, its children. The root group
// has a nil parent and an empty name.
func newGroup(h *handle, parent *Group, id int) (*Group, error) {
	g := &Group{
		h:      h,
		id:     id,
		parent: parent,
		dims:   make(map[string]Dimension),
		vars:   make(map[string]*Variable),
		groups: make(map[string]*Group),
	}
	if parent != nil {
		name, err := nc.InqGrpName(id)
		if err != nil {
			return nil, h.fail("inquire group", err)
		}
		g.name = name
	}
	if err := g.loadChildren(); err != nil {
		return nil, err
	}
	return g, nil
}

// Name returns the group name, "" for the root group.
func (g *Group) Name() string { return g.name }

// ID returns the engine id of the group.
func (g *Group) ID() int { return g.id }

// Parent returns the enclosing group, nil for the root group.
func (g *Group) Parent() *Group { return g.parent }

// FullPath returns the absolute path of the group, "/" for the root group.
func (g *Group) FullPath() string {
	if g.parent == nil {
		return "/"
	}
	return joinPath(g.parent.FullPath(), g.name)
}

func (g *Group) addDim(d Dimension) {
	g.dims[d.Name] = d
	g.dimNames = append(g.dimNames, d.Name)
}

func (g *Group) markUnlimited(id int) {
	for name, d := range g.dims {
		if d.ID == id {
			d.Unlimited = true
			g.dims[name] = d
			return
		}
	}
}

func (g *Group) addVar(v *Variable) {
	g.vars[v.name] = v
	g.varNames = append(g.varNames, v.name)
}

func (g *Group) addGroup(child *Group) {
	g.groups[child.name] = child
	g.grpNames = append(g.grpNames, child.name)
}

// isUnlimited reports whether dimension id, defined in g or an ancestor, is
// unlimited.
func (g *Group) isUnlimited(id int) bool {
	for cur := g; cur != nil; cur = cur.parent {
		for _, d := range cur.dims {
			if d.ID == id {
				return d.Unlimited
			}
		}
	}
	return false
}

// visibleDim looks a dimension up in g, then in its ancestors.
func (g *Group) visibleDim(name string) (Dimension, bool) {
	for cur := g; cur != nil; cur = cur.parent {
		if d, ok := cur.dims[name]; ok {
			return d, true
		}
	}
	return Dimension{}, false
}

func (g *Group) logger() logrus.FieldLogger {
	return g.h.log.WithField("group", g.FullPath())
}

// AddDimension defines a dimension of fixed size.
func (g *Group) AddDimension(name string, size uint64) (Dimension, error) {
	if size == 0 {
		return Dimension{}, fmt.Errorf("%w: %q", ErrInvalidSize, name)
	}
	return g.defineDimension(name, size)
}

// AddUnlimitedDimension defines a dimension that grows as records are
// written.
func (g *Group) AddUnlimitedDimension(name string) (Dimension, error) {
	return g.defineDimension(name, nc.Unlimited)
}

func (g *Group) defineDimension(name string, size uint64) (Dimension, error) {
	if err := g.h.check(); err != nil {
		return Dimension{}, err
	}
	if err := g.h.mode.EnterDefine(); err != nil {
		return Dimension{}, err
	}
	id, err := nc.DefDim(g.id, name, size)
	if err != nil {
		return Dimension{}, g.abandon(g.h.fail("define dimension "+name, err))
	}
	d := Dimension{ID: id, Name: name, Size: size, Unlimited: size == nc.Unlimited}
	g.addDim(d)
	g.logger().WithFields(logrus.Fields{"name": name, "id": id, "size": size}).Debug("added dimension")
	return d, g.h.sync()
}

// AddVariable defines a variable of type typ over the named dimensions,
// which must be defined in g or one of its ancestors. No dimensions define
// a scalar.
func (g *Group) AddVariable(name string, dimNames []string, typ Type) (*Variable, error) {
	if err := g.h.check(); err != nil {
		return nil, err
	}
	ids := make([]int, len(dimNames))
	for i, dn := range dimNames {
		d, ok := g.visibleDim(dn)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUndefinedDimension, dn, g.FullPath())
		}
		ids[i] = d.ID
	}
	if err := g.h.mode.EnterDefine(); err != nil {
		return nil, err
	}
	id, err := nc.DefVar(g.id, name, typ, ids)
	if err != nil {
		return nil, g.abandon(g.h.fail("define variable "+name, err))
	}
	v, err := newVariable(g.h, g, id)
	if err != nil {
		return nil, g.abandon(err)
	}
	g.addVar(v)
	g.logger().WithFields(logrus.Fields{"name": name, "id": id, "type": typ.String()}).Debug("added variable")
	return v, g.h.sync()
}

// AddGroup defines a subgroup.
func (g *Group) AddGroup(name string) (*Group, error) {
	if err := g.h.check(); err != nil {
		return nil, err
	}
	if err := g.h.mode.EnterDefine(); err != nil {
		return nil, err
	}
	id, err := nc.DefGrp(g.id, name)
	if err != nil {
		return nil, g.abandon(g.h.fail("define group "+name, err))
	}
	child, err := newGroup(g.h, g, id)
	if err != nil {
		return nil, g.abandon(err)
	}
	g.addGroup(child)
	g.logger().WithFields(logrus.Fields{"name": name, "id": id}).Debug("added group")
	return child, g.h.sync()
}

// abandon returns a failed definition's error after leaving define mode.
func (g *Group) abandon(err error) error {
	return errors.Join(err, g.h.sync())
}

// Dimension returns the dimension defined in g under name.
func (g *Group) Dimension(name string) (Dimension, error) {
	if err := g.h.check(); err != nil {
		return Dimension{}, err
	}
	d, ok := g.dims[name]
	if !ok {
		return Dimension{}, fmt.Errorf("%w: dimension %q in %s", ErrNameNotFound, name, g.FullPath())
	}
	return d, nil
}

// Variable returns the variable defined in g under name.
func (g *Group) Variable(name string) (*Variable, error) {
	if err := g.h.check(); err != nil {
		return nil, err
	}
	v, ok := g.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: variable %q in %s", ErrNameNotFound, name, g.FullPath())
	}
	return v, nil
}

// Group returns the direct subgroup name.
func (g *Group) Group(name string) (*Group, error) {
	if err := g.h.check(); err != nil {
		return nil, err
	}
	child, ok := g.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: group %q in %s", ErrNameNotFound, name, g.FullPath())
	}
	return child, nil
}

// HasDimension reports whether g defines a dimension called name.
func (g *Group) HasDimension(name string) bool {
	_, ok := g.dims[name]
	return ok
}

// HasVariable reports whether g defines a variable called name.
func (g *Group) HasVariable(name string) bool {
	_, ok := g.vars[name]
	return ok
}

// HasGroup reports whether g has a direct subgroup called name.
func (g *Group) HasGroup(name string) bool {
	_, ok := g.groups[name]
	return ok
}

// DimensionNames returns the names of g's dimensions in definition order.
func (g *Group) DimensionNames() []string { return slices.Clone(g.dimNames) }

// VariableNames returns the names of g's variables in definition order.
func (g *Group) VariableNames() []string { return slices.Clone(g.varNames) }

// GroupNames returns the names of g's subgroups in definition order.
func (g *Group) GroupNames() []string { return slices.Clone(g.grpNames) }

// Sync leaves define mode and flushes pending changes. Calling it when
// nothing changed is harmless.
func (g *Group) Sync() error {
	if err := g.h.check(); err != nil {
		return err
	}
	return g.h.sync()
}
