package nc

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/dtype"
	"github.com/robert-malhotra/go-netcdf/internal/filter"
	"github.com/robert-malhotra/go-netcdf/internal/fs"
	"github.com/robert-malhotra/go-netcdf/internal/layout"
	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// dataset is one open file.
type dataset struct {
	mu sync.Mutex

	index  int
	path   string
	file   fs.File
	log    logrus.FieldLogger
	closed bool

	writable   bool
	share      bool
	locked     bool
	defineMode bool
	dirty      bool

	cfg       binary.Config
	pipeline  *message.FilterPipeline
	pipelines map[int]*filter.Pipeline // by element size

	groups    []*group // by group index
	dims      map[int]*dim
	nextDimID int
}

type group struct {
	index    int
	name     string
	parent   *group
	dims     []*dim // definition order
	vars     []*variable
	children []*group
}

type dim struct {
	id        int
	name      string
	length    uint64 // current record count when unlimited
	unlimited bool
}

type variable struct {
	id     int
	name   string
	typ    dtype.Type
	dimIDs []int

	// data holds the values in row-major order with shape `shape`. A nil
	// buffer means nothing was written and every element reads as fill.
	data  []byte
	shape []uint64
}

func newDataset(path string, file fs.File, log logrus.FieldLogger) *dataset {
	ds := &dataset{
		path:      path,
		file:      file,
		log:       log.WithField("path", path),
		pipelines: make(map[int]*filter.Pipeline),
		dims:      make(map[int]*dim),
	}
	return ds
}

func (ds *dataset) ncid(g *group) int {
	return ds.index<<groupBits | g.index
}

func (ds *dataset) root() *group {
	return ds.groups[rootGroupIdx]
}

func (ds *dataset) addGroup(parent *group, name string) (*group, error) {
	if len(ds.groups) >= maxGroups {
		return nil, wrap(ErrInval, nil, "too many groups")
	}
	g := &group{index: len(ds.groups), name: name, parent: parent}
	ds.groups = append(ds.groups, g)
	if parent != nil {
		parent.children = append(parent.children, g)
	}
	return g, nil
}

// fullName returns the absolute path of g, "/" for the root group.
func (g *group) fullName() string {
	if g.parent == nil {
		return "/"
	}
	var parts []string
	for cur := g; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}

// visibleDim finds a dimension defined in g or one of its ancestors.
func (g *group) visibleDim(id int) *dim {
	for cur := g; cur != nil; cur = cur.parent {
		for _, d := range cur.dims {
			if d.id == id {
				return d
			}
		}
	}
	return nil
}

func (g *group) variable(varid int) (*variable, error) {
	if varid < 0 || varid >= len(g.vars) {
		return nil, ErrNotVar
	}
	return g.vars[varid], nil
}

// nameInUse reports whether name is taken in g's dimension namespace (dims)
// or its shared variable and group namespace.
func (g *group) nameInUse(name string, dims bool) bool {
	if dims {
		for _, d := range g.dims {
			if d.name == name {
				return true
			}
		}
		return false
	}
	for _, v := range g.vars {
		if v.name == name {
			return true
		}
	}
	for _, c := range g.children {
		if c.name == name {
			return true
		}
	}
	return false
}

func checkName(name string) error {
	if len(name) > MaxNameLen {
		return wrap(ErrMaxName, nil, "name of %d bytes", len(name))
	}
	if name == "" || !utf8.ValidString(name) || strings.ContainsAny(name, "/\x00") {
		return wrap(ErrBadName, nil, "name %q", name)
	}
	return nil
}

// shape returns the current length of each of v's dimensions.
func (ds *dataset) shape(v *variable) []uint64 {
	shape := make([]uint64, len(v.dimIDs))
	for i, id := range v.dimIDs {
		shape[i] = ds.dims[id].length
	}
	return shape
}

// ensureData lays v's buffer out with the given shape, filling elements
// that were never written.
func (ds *dataset) ensureData(v *variable, shape []uint64) error {
	if v.data != nil && slices.Equal(v.shape, shape) {
		return nil
	}
	size := v.typ.Size()
	if _, err := layout.ByteSize(shape, size); err != nil {
		return wrap(ErrNoMem, err, "variable %q", v.name)
	}
	fill, err := dtype.FillBytes(v.typ, ds.cfg.ByteOrder)
	if err != nil {
		return wrap(ErrBadType, err, "variable %q", v.name)
	}
	v.data = layout.Resize(v.data, v.shape, shape, size, fill)
	v.shape = slices.Clone(shape)
	return nil
}

// fillBuffer returns n encoded fill values of v's type.
func (ds *dataset) fillBuffer(v *variable, n uint64) ([]byte, error) {
	fill, err := dtype.FillBytes(v.typ, ds.cfg.ByteOrder)
	if err != nil {
		return nil, wrap(ErrBadType, err, "variable %q", v.name)
	}
	out := make([]byte, n*uint64(v.typ.Size()))
	layout.Fill(out, fill)
	return out, nil
}

func (ds *dataset) pipelineFor(elemSize int) (*filter.Pipeline, error) {
	if p, ok := ds.pipelines[elemSize]; ok {
		return p, nil
	}
	p, err := filter.NewPipeline(ds.pipeline, elemSize)
	if err != nil {
		return nil, wrap(ErrStorage, err, "building filter pipeline")
	}
	ds.pipelines[elemSize] = p
	return p, nil
}
