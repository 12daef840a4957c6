package netcdf

import (
	"fmt"
	"strings"
)

// SplitPath splits a path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "foo//bar/" -> []string{"foo", "bar"}
func SplitPath(path string) []string {
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no trailing slash.
func CleanPath(path string) string {
	return "/" + strings.Join(SplitPath(path), "/")
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// GroupByPath returns the group at path, relative to g. An empty path or
// "/" is g itself.
func (g *Group) GroupByPath(path string) (*Group, error) {
	if err := g.h.check(); err != nil {
		return nil, err
	}
	cur := g
	for _, name := range SplitPath(path) {
		next, err := cur.Group(name)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", path, err)
		}
		cur = next
	}
	return cur, nil
}

// VariableByPath returns the variable at path, relative to g, such as
// "forecast/hourly/wind".
func (g *Group) VariableByPath(path string) (*Variable, error) {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q names no variable", ErrInvalidPath, path)
	}
	parent, err := g.GroupByPath(strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return nil, err
	}
	v, err := parent.Variable(parts[len(parts)-1])
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	return v, nil
}
