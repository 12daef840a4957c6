package nc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/alloc"
	"github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/dtype"
	"github.com/robert-malhotra/go-netcdf/internal/layout"
	"github.com/robert-malhotra/go-netcdf/internal/message"
	"github.com/robert-malhotra/go-netcdf/internal/object"
	"github.com/robert-malhotra/go-netcdf/internal/superblock"
)

// headerAlignment is the alignment of group headers in the file.
const headerAlignment = 8

// pendingBlock is a variable data block waiting to be read at load time.
type pendingBlock struct {
	v    *variable
	path string
	msg  *message.Variable
}

// loader reads the tree of group headers below the root.
type loader struct {
	ds      *dataset
	r       *binary.Reader
	space   *alloc.Allocator
	eof     uint64
	visited map[uint64]bool
	blocks  []pendingBlock
}

// load reads the whole container into memory.
func (ds *dataset) load() error {
	sb, err := superblock.Read(ds.file)
	if err != nil {
		return loadError(ds.path, err)
	}
	ds.cfg = sb.Config()
	ds.nextDimID = int(sb.NextDimID)

	l := &loader{
		ds:      ds,
		r:       binary.NewReader(ds.file, ds.cfg),
		space:   alloc.New(uint64(sb.Size())),
		eof:     sb.EOFAddress,
		visited: make(map[uint64]bool),
	}
	root, err := ds.addGroup(nil, "")
	if err != nil {
		return err
	}
	if err := l.loadGroup(root, sb.RootGroupAddress); err != nil {
		return loadError(ds.path, err)
	}
	for _, b := range l.blocks {
		if err := l.loadBlock(b); err != nil {
			return loadError(ds.path, err)
		}
	}

	if err := l.space.Validate(); err != nil {
		return loadError(ds.path, err)
	}
	if eof := l.space.EOFAddr(); eof > sb.EOFAddress {
		return loadError(ds.path, fmt.Errorf("structures end at 0x%x past recorded EOF 0x%x", eof, sb.EOFAddress))
	}

	ds.log.WithFields(logrus.Fields{
		"groups":     len(ds.groups),
		"dimensions": len(ds.dims),
		"regions":    l.space.Stats().TotalAllocations,
	}).Debug("loaded container")
	return nil
}

func (l *loader) loadGroup(g *group, addr uint64) error {
	if l.visited[addr] {
		return fmt.Errorf("group header at 0x%x is linked twice", addr)
	}
	l.visited[addr] = true

	hdr, err := object.Read(l.r, addr)
	if err != nil {
		return err
	}
	path := g.fullName()
	l.space.Reserve(addr, hdr.Size, "header "+path)

	if fp, ok := hdr.GetMessage(message.TypeFilterPipeline).(*message.FilterPipeline); ok {
		if g.parent != nil {
			return fmt.Errorf("group %s: filter pipeline outside the root group", path)
		}
		l.ds.pipeline = fp
	}

	for _, m := range hdr.GetMessages(message.TypeDimension) {
		dm := m.(*message.Dimension)
		id := int(dm.ID)
		if _, dup := l.ds.dims[id]; dup || id >= l.ds.nextDimID {
			return fmt.Errorf("group %s: bad dimension id %d", path, id)
		}
		if checkName(dm.Name) != nil || g.nameInUse(dm.Name, true) {
			return fmt.Errorf("group %s: bad dimension name %q", path, dm.Name)
		}
		d := &dim{id: id, name: dm.Name, length: dm.Length, unlimited: dm.Unlimited}
		l.ds.dims[id] = d
		g.dims = append(g.dims, d)
	}

	for _, m := range hdr.GetMessages(message.TypeVariable) {
		vm := m.(*message.Variable)
		if int(vm.ID) != len(g.vars) {
			return fmt.Errorf("group %s: variable %q has id %d, expected %d", path, vm.Name, vm.ID, len(g.vars))
		}
		if checkName(vm.Name) != nil || g.nameInUse(vm.Name, false) {
			return fmt.Errorf("group %s: bad variable name %q", path, vm.Name)
		}
		typ := dtype.Type(vm.DataType)
		if !typ.Atomic() {
			return fmt.Errorf("group %s: variable %q has bad type %d", path, vm.Name, vm.DataType)
		}
		v := &variable{id: len(g.vars), name: vm.Name, typ: typ, dimIDs: make([]int, len(vm.DimIDs))}
		for i, id := range vm.DimIDs {
			if g.visibleDim(int(id)) == nil {
				return fmt.Errorf("group %s: variable %q uses unknown dimension %d", path, vm.Name, id)
			}
			v.dimIDs[i] = int(id)
		}
		g.vars = append(g.vars, v)
		if vm.HasData() {
			l.blocks = append(l.blocks, pendingBlock{v: v, path: path, msg: vm})
		}
	}

	for _, m := range hdr.GetMessages(message.TypeLink) {
		link := m.(*message.Link)
		if checkName(link.Name) != nil || g.nameInUse(link.Name, false) {
			return fmt.Errorf("group %s: bad group name %q", path, link.Name)
		}
		child, err := l.ds.addGroup(g, link.Name)
		if err != nil {
			return err
		}
		if err := l.loadGroup(child, link.ObjectAddress); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadBlock(b pendingBlock) error {
	v, vm := b.v, b.msg
	tag := fmt.Sprintf("data %s/%s", b.path, v.name)
	size := v.typ.Size()
	shape := l.ds.shape(v)
	want, err := layout.ByteSize(shape, size)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if vm.RawSize != uint64(want) {
		return fmt.Errorf("%s: %d bytes stored, shape needs %d", tag, vm.RawSize, want)
	}

	if vm.StoredSize > l.eof || vm.DataAddress > l.eof-vm.StoredSize {
		return fmt.Errorf("%s: block at 0x%x+%d past EOF", tag, vm.DataAddress, vm.StoredSize)
	}
	l.space.Reserve(vm.DataAddress, vm.StoredSize, tag)
	stored, err := l.r.At(int64(vm.DataAddress)).ReadBytes(int(vm.StoredSize))
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	p, err := l.ds.pipelineFor(size)
	if err != nil {
		return err
	}
	raw, err := p.Decode(stored)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if uint64(len(raw)) != vm.RawSize {
		return fmt.Errorf("%s: decoded %d bytes, expected %d", tag, len(raw), vm.RawSize)
	}
	v.data = raw
	v.shape = shape
	return nil
}

// region is a block of bytes placed in the file by flush.
type region struct {
	addr uint64
	data []byte
}

// flush lays the whole tree out again and rewrites the file in place. The
// superblock goes last, after everything it points at.
func (ds *dataset) flush() error {
	sb := superblock.New(ds.cfg)
	sb.NextDimID = uint32(ds.nextDimID)
	space := alloc.New(uint64(sb.Size()))

	var regions []region
	rootAddr, err := ds.layoutGroup(ds.root(), space, &regions)
	if err != nil {
		return err
	}
	sb.RootGroupAddress = rootAddr
	sb.EOFAddress = space.EOFAddr()

	for _, r := range regions {
		if _, err := ds.file.WriteAt(r.data, int64(r.addr)); err != nil {
			return wrap(ErrIO, err, "writing %s", ds.path)
		}
	}
	if err := ds.file.Truncate(int64(sb.EOFAddress)); err != nil {
		return wrap(ErrIO, err, "truncating %s", ds.path)
	}
	if _, err := sb.Write(binary.NewWriter(ds.file, ds.cfg)); err != nil {
		return wrap(ErrIO, err, "writing superblock of %s", ds.path)
	}
	if err := ds.file.Sync(); err != nil {
		return wrap(ErrIO, err, "syncing %s", ds.path)
	}
	ds.dirty = false

	stats := space.Stats()
	ds.log.WithFields(logrus.Fields{
		"eof":        sb.EOFAddress,
		"regions":    stats.TotalAllocations,
		"bytes":      stats.TotalBytesAlloc,
		"compressed": ds.pipeline != nil && ds.pipeline.HasCompression(),
	}).Debug("flushed container")
	return nil
}

// layoutGroup places g's data blocks, then its children, then its own
// header, and returns the header address.
func (ds *dataset) layoutGroup(g *group, space *alloc.Allocator, regions *[]region) (uint64, error) {
	path := g.fullName()
	var msgs []message.Message
	if g.parent == nil && ds.pipeline != nil && len(ds.pipeline.Filters) > 0 {
		msgs = append(msgs, ds.pipeline)
	}
	for _, d := range g.dims {
		msgs = append(msgs, &message.Dimension{
			ID:        uint32(d.id),
			Name:      d.name,
			Length:    d.length,
			Unlimited: d.unlimited,
		})
	}

	for _, v := range g.vars {
		vm := &message.Variable{
			ID:       uint32(v.id),
			Name:     v.name,
			DataType: uint8(v.typ),
			DimIDs:   make([]uint32, len(v.dimIDs)),
		}
		for i, id := range v.dimIDs {
			vm.DimIDs[i] = uint32(id)
		}
		if v.data != nil {
			if err := ds.ensureData(v, ds.shape(v)); err != nil {
				return 0, err
			}
			p, err := ds.pipelineFor(v.typ.Size())
			if err != nil {
				return 0, err
			}
			stored, err := p.Encode(v.data)
			if err != nil {
				return 0, wrap(ErrStorage, err, "encoding %s/%s", path, v.name)
			}
			if len(stored) > 0 {
				vm.DataAddress = space.AllocTagged(uint64(len(stored)), "data "+path+"/"+v.name)
				vm.StoredSize = uint64(len(stored))
				vm.RawSize = uint64(len(v.data))
				*regions = append(*regions, region{addr: vm.DataAddress, data: stored})
			}
		}
		msgs = append(msgs, vm)
	}

	for _, c := range g.children {
		addr, err := ds.layoutGroup(c, space, regions)
		if err != nil {
			return 0, err
		}
		msgs = append(msgs, &message.Link{Name: c.name, ObjectAddress: addr})
	}

	hdr, err := object.Encode(ds.cfg, msgs)
	if err != nil {
		return 0, wrap(ErrStorage, err, "encoding header of %s", path)
	}
	addr := space.AllocAligned(uint64(len(hdr)), headerAlignment, "header "+path)
	*regions = append(*regions, region{addr: addr, data: hdr})
	return addr, nil
}
