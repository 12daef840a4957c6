package nc

import "github.com/sirupsen/logrus"

// DefDim defines a dimension in the group and returns its id. A length of
// Unlimited defines a growable record dimension.
func DefDim(ncid int, name string, length uint64) (int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) (int, error) {
		if !ds.defineMode {
			return 0, ErrNotInDefine
		}
		if err := checkName(name); err != nil {
			return 0, err
		}
		if g.nameInUse(name, true) {
			return 0, wrap(ErrNameInUse, nil, "dimension %q", name)
		}
		if uint64(ds.nextDimID) >= 1<<31 {
			return 0, wrap(ErrNoMem, nil, "dimension ids exhausted")
		}
		d := &dim{id: ds.nextDimID, name: name, length: length, unlimited: length == Unlimited}
		ds.nextDimID++
		ds.dims[d.id] = d
		g.dims = append(g.dims, d)
		ds.dirty = true

		ds.log.WithFields(logrus.Fields{
			"group": g.fullName(), "name": name, "id": d.id, "length": length,
		}).Debug("defined dimension")
		return d.id, nil
	})
}

// DefVar defines a variable of type xtype over the given dimensions, which
// must be visible from the group, and returns its id. An empty dimids
// defines a scalar.
func DefVar(ncid int, name string, xtype Type, dimids []int) (int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) (int, error) {
		if !ds.defineMode {
			return 0, ErrNotInDefine
		}
		if err := checkName(name); err != nil {
			return 0, err
		}
		if !xtype.Atomic() {
			return 0, wrap(ErrBadType, nil, "variable %q of type %s", name, xtype)
		}
		for _, id := range dimids {
			if g.visibleDim(id) == nil {
				return 0, wrap(ErrBadDim, nil, "variable %q: dimension %d", name, id)
			}
		}
		if g.nameInUse(name, false) {
			return 0, wrap(ErrNameInUse, nil, "variable %q", name)
		}
		v := &variable{
			id:     len(g.vars),
			name:   name,
			typ:    xtype,
			dimIDs: append([]int{}, dimids...),
		}
		g.vars = append(g.vars, v)
		ds.dirty = true

		ds.log.WithFields(logrus.Fields{
			"group": g.fullName(), "name": name, "id": v.id, "type": xtype.String(),
		}).Debug("defined variable")
		return v.id, nil
	})
}

// DefGrp defines a subgroup and returns its id.
func DefGrp(ncid int, name string) (int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) (int, error) {
		if !ds.defineMode {
			return 0, ErrNotInDefine
		}
		if err := checkName(name); err != nil {
			return 0, err
		}
		if g.nameInUse(name, false) {
			return 0, wrap(ErrNameInUse, nil, "group %q", name)
		}
		child, err := ds.addGroup(g, name)
		if err != nil {
			return 0, err
		}
		ds.dirty = true

		ds.log.WithFields(logrus.Fields{
			"group": g.fullName(), "name": name,
		}).Debug("defined group")
		return ds.ncid(child), nil
	})
}
