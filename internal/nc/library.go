package nc

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/fs"
	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Open and create mode flags.
const (
	NoWrite   = 0x0000 // Open read-only
	Write     = 0x0001 // Open for writing
	Clobber   = 0x0000 // Create: overwrite an existing file
	NoClobber = 0x0004 // Create: fail if the file exists
	Share     = 0x0800 // Flush after every data write
)

// Unlimited is the length passed to DefDim for a growable dimension.
const Unlimited = 0

// MaxNameLen is the longest name, in bytes, of a dimension, variable or group.
const MaxNameLen = 256

const (
	groupBits    = 16
	maxGroups    = 1 << groupBits
	maxDatasets  = 1 << 14
	groupIDMask  = maxGroups - 1
	rootGroupIdx = 0
)

// ErrFileLocked is returned when another writer holds the file.
var ErrFileLocked = errors.New("file is locked by another writer")

// Option configures Create and Open.
type Option func(*options)

type options struct {
	fs      fs.FileSystem
	cfg     binary.Config
	filters []message.FilterInfo
	log     logrus.FieldLogger
}

func defaultOptions() *options {
	return &options{
		fs:  fs.Default,
		cfg: binary.DefaultConfig(),
		log: logrus.StandardLogger(),
	}
}

// WithFS sets the file system files are opened through.
func WithFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithEncoding sets the byte order and offset/length sizes of a new file.
// Ignored by Open, which uses the file's own encoding.
func WithEncoding(cfg binary.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithFilters sets the data block filter pipeline of a new file.
// Ignored by Open.
func WithFilters(filters ...message.FilterInfo) Option {
	return func(o *options) {
		o.filters = append([]message.FilterInfo(nil), filters...)
	}
}

// WithLogger sets the logger for engine events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// library is the table of open datasets.
type library struct {
	mu       sync.Mutex
	datasets map[int]*dataset
	next     int
}

var lib = &library{datasets: make(map[int]*dataset), next: 1}

func (l *library) register(ds *dataset) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.datasets) >= maxDatasets-1 {
		return 0, wrap(ErrNoMem, nil, "too many open files")
	}
	for {
		idx := l.next
		l.next++
		if l.next >= maxDatasets {
			l.next = 1
		}
		if _, used := l.datasets[idx]; !used {
			ds.index = idx
			l.datasets[idx] = ds
			return idx << groupBits, nil
		}
	}
}

func (l *library) release(ds *dataset) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.datasets[ds.index] == ds {
		delete(l.datasets, ds.index)
	}
}

func (l *library) lookup(ncid int) (*dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ds, ok := l.datasets[ncid>>groupBits]
	if !ok || ncid < 0 {
		return nil, ErrBadID
	}
	return ds, nil
}

// inDataset runs fn with the dataset of ncid locked.
func inDataset[R any](ncid int, fn func(ds *dataset) (R, error)) (R, error) {
	var zero R
	ds, err := lib.lookup(ncid)
	if err != nil {
		return zero, err
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.closed {
		return zero, ErrBadID
	}
	return fn(ds)
}

// inGroup runs fn with the dataset of ncid locked and its group resolved.
func inGroup[R any](ncid int, fn func(ds *dataset, g *group) (R, error)) (R, error) {
	return inDataset(ncid, func(ds *dataset) (R, error) {
		var zero R
		idx := ncid & groupIDMask
		if idx >= len(ds.groups) {
			return zero, ErrBadGrpID
		}
		return fn(ds, ds.groups[idx])
	})
}

// do adapts an operation without a result to inGroup.
func do(ncid int, fn func(ds *dataset, g *group) error) error {
	_, err := inGroup(ncid, func(ds *dataset, g *group) (struct{}, error) {
		return struct{}{}, fn(ds, g)
	})
	return err
}
