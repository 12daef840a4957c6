package nc

import "slices"

// InqNDims returns the number of dimensions defined in the group.
func InqNDims(ncid int) (int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (int, error) {
		return len(g.dims), nil
	})
}

// InqDimIDs returns the ids of the dimensions defined in the group, and in
// its ancestors when includeParents is set.
func InqDimIDs(ncid int, includeParents bool) ([]int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) ([]int, error) {
		var ids []int
		for cur := g; cur != nil; cur = cur.parent {
			for _, d := range cur.dims {
				ids = append(ids, d.id)
			}
			if !includeParents {
				break
			}
		}
		slices.Sort(ids)
		return ids, nil
	})
}

// InqNUnlimDims returns the number of unlimited dimensions defined in the
// group.
func InqNUnlimDims(ncid int) (int, error) {
	ids, err := InqUnlimDims(ncid)
	return len(ids), err
}

// InqUnlimDims returns the ids of the unlimited dimensions defined in the
// group.
func InqUnlimDims(ncid int) ([]int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) ([]int, error) {
		var ids []int
		for _, d := range g.dims {
			if d.unlimited {
				ids = append(ids, d.id)
			}
		}
		return ids, nil
	})
}

// InqNVars returns the number of variables in the group.
func InqNVars(ncid int) (int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (int, error) {
		return len(g.vars), nil
	})
}

// InqVarIDs returns the ids of the variables in the group.
func InqVarIDs(ncid int) ([]int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) ([]int, error) {
		ids := make([]int, len(g.vars))
		for i, v := range g.vars {
			ids[i] = v.id
		}
		return ids, nil
	})
}

// InqNGrps returns the number of direct subgroups.
func InqNGrps(ncid int) (int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (int, error) {
		return len(g.children), nil
	})
}

// InqGrps returns the ids of the direct subgroups in definition order.
func InqGrps(ncid int) ([]int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) ([]int, error) {
		ids := make([]int, len(g.children))
		for i, c := range g.children {
			ids[i] = ds.ncid(c)
		}
		return ids, nil
	})
}

// InqNAtts returns the number of group attributes. Attributes are not
// stored, so it is always zero.
func InqNAtts(ncid int) (int, error) {
	return inGroup(ncid, func(*dataset, *group) (int, error) {
		return 0, nil
	})
}

// InqDim returns the name and current length of a dimension visible from
// the group. The length of an unlimited dimension is its record count.
func InqDim(ncid, dimid int) (string, uint64, error) {
	type result struct {
		name   string
		length uint64
	}
	r, err := inGroup(ncid, func(_ *dataset, g *group) (result, error) {
		d := g.visibleDim(dimid)
		if d == nil {
			return result{}, ErrBadDim
		}
		return result{d.name, d.length}, nil
	})
	return r.name, r.length, err
}

// InqDimID looks a dimension up by name in the group and its ancestors.
func InqDimID(ncid int, name string) (int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (int, error) {
		for cur := g; cur != nil; cur = cur.parent {
			for _, d := range cur.dims {
				if d.name == name {
					return d.id, nil
				}
			}
		}
		return 0, ErrBadDim
	})
}

// InqVar returns the name, type and dimension ids of a variable.
func InqVar(ncid, varid int) (string, Type, []int, error) {
	type result struct {
		name   string
		typ    Type
		dimIDs []int
	}
	r, err := inGroup(ncid, func(_ *dataset, g *group) (result, error) {
		v, err := g.variable(varid)
		if err != nil {
			return result{}, err
		}
		return result{v.name, v.typ, slices.Clone(v.dimIDs)}, nil
	})
	return r.name, r.typ, r.dimIDs, err
}

// InqVarID looks a variable up by name in the group.
func InqVarID(ncid int, name string) (int, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (int, error) {
		for _, v := range g.vars {
			if v.name == name {
				return v.id, nil
			}
		}
		return 0, ErrNotVar
	})
}

// InqGrpName returns the name of the group, "/" for the root group.
func InqGrpName(ncid int) (string, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (string, error) {
		if g.parent == nil {
			return "/", nil
		}
		return g.name, nil
	})
}

// InqGrpFullName returns the absolute path of the group.
func InqGrpFullName(ncid int) (string, error) {
	return inGroup(ncid, func(_ *dataset, g *group) (string, error) {
		return g.fullName(), nil
	})
}

// InqGrpParent returns the id of the parent group. The root group has none
// and fails with ErrNoGrp.
func InqGrpParent(ncid int) (int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) (int, error) {
		if g.parent == nil {
			return 0, ErrNoGrp
		}
		return ds.ncid(g.parent), nil
	})
}

// InqGrpID looks a direct subgroup up by name.
func InqGrpID(ncid int, name string) (int, error) {
	return inGroup(ncid, func(ds *dataset, g *group) (int, error) {
		for _, c := range g.children {
			if c.name == name {
				return ds.ncid(c), nil
			}
		}
		return 0, ErrNoGrp
	})
}
