package netcdf

import "errors"

// WalkFunc is called for each object during traversal.
// path is the full path to the object and obj is either *Group or
// *Variable. Return nil to continue, SkipGroup from a group to skip its
// contents, or any other error to stop.
type WalkFunc func(path string, obj any) error

// SkipGroup can be returned by a WalkFunc for a group to skip its
// variables and subgroups.
var SkipGroup = errors.New("skip this group")

// ErrStopWalk can be returned by a WalkFunc to end the walk without an
// error.
var ErrStopWalk = errors.New("walk stopped")

// Walk visits g and everything below it depth first: a group, then its
// variables in definition order, then its subgroups.
//
// Example:
//
//	err := netcdf.Walk(f.Root(), func(path string, obj any) error {
//	    switch o := obj.(type) {
//	    case *netcdf.Group:
//	        fmt.Println("group", path)
//	    case *netcdf.Variable:
//	        fmt.Println("variable", path, o.Type())
//	    }
//	    return nil
//	})
func Walk(g *Group, fn WalkFunc) error {
	if err := g.h.check(); err != nil {
		return err
	}
	err := walkGroup(g, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

// Walk is shorthand for Walk(g, fn).
func (g *Group) Walk(fn WalkFunc) error {
	return Walk(g, fn)
}

func walkGroup(g *Group, fn WalkFunc) error {
	if err := fn(g.FullPath(), g); err != nil {
		if errors.Is(err, SkipGroup) {
			return nil
		}
		return err
	}
	for _, name := range g.varNames {
		v := g.vars[name]
		if err := fn(v.Path(), v); err != nil {
			return err
		}
	}
	for _, name := range g.grpNames {
		if err := walkGroup(g.groups[name], fn); err != nil {
			return err
		}
	}
	return nil
}
