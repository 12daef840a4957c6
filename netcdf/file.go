package netcdf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// CreationMode says what Create does when the file exists.
type CreationMode int

const (
	Clobber   CreationMode = iota // Overwrite an existing file
	NoClobber                     // Fail if the file exists
)

// OpenMode says how Open accesses the file.
type OpenMode int

const (
	ReadOnly       OpenMode = iota // Read only
	OpenWrite                      // Read and write
	OpenShare                      // Read only; the file is loaded whole at Open, as with ReadOnly
	OpenWriteShare                 // Read and write, every data write is flushed
)

func (m OpenMode) flags() (int, error) {
	switch m {
	case ReadOnly:
		return nc.NoWrite, nil
	case OpenWrite:
		return nc.Write, nil
	case OpenShare:
		return nc.Share, nil
	case OpenWriteShare:
		return nc.Write | nc.Share, nil
	}
	return 0, fmt.Errorf("unknown open mode %d", int(m))
}

// rootGroup lets File embed *Group without the field name hiding the
// promoted Group method.
type rootGroup = Group

// File is an open file. It is its root group and owns the handle every
// Group and Variable obtained from it shares.
type File struct {
	*rootGroup
	h *handle
}

// Create creates a file and loads its (empty) root group. The file starts
// in define mode.
func Create(path string, mode CreationMode, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	engineOpts, err := o.engineOptions(true)
	if err != nil {
		return nil, fmt.Errorf("netcdf: create %s: %w", path, err)
	}

	cmode := nc.Clobber
	if mode == NoClobber {
		cmode = nc.NoClobber
	}
	ncid, err := nc.Create(path, cmode, engineOpts...)
	if err != nil {
		return nil, newIOError("create", path, err)
	}
	return build(ncid, path, o.log, logrus.Fields{"op": "create", "clobber": mode == Clobber})
}

// Open opens an existing file and loads its whole group tree. The file
// starts in data mode.
func Open(path string, mode OpenMode, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	omode, err := mode.flags()
	if err != nil {
		return nil, fmt.Errorf("netcdf: open %s: %w", path, err)
	}
	engineOpts, err := o.engineOptions(false)
	if err != nil {
		return nil, fmt.Errorf("netcdf: open %s: %w", path, err)
	}

	ncid, err := nc.Open(path, omode, engineOpts...)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	return build(ncid, path, o.log, logrus.Fields{"op": "open", "mode": int(mode)})
}

func build(ncid int, path string, log logrus.FieldLogger, fields logrus.Fields) (*File, error) {
	h, err := newHandle(ncid, path, log)
	if err != nil {
		return nil, err
	}
	root, err := newGroup(h, nil, ncid)
	if err != nil {
		_ = h.close()
		return nil, err
	}
	h.log.WithFields(fields).WithField("mode", h.mode.Mode().String()).Debug("file ready")
	return &File{rootGroup: root, h: h}, nil
}

// Root returns the root group.
func (f *File) Root() *Group {
	return f.rootGroup
}

// Path returns the path the file was created or opened with.
func (f *File) Path() string {
	return f.h.path
}

// Mode returns the current access mode.
func (f *File) Mode() Mode {
	return f.h.mode.Mode()
}

// ModeController returns the controller that switches the file between
// define and data mode.
func (f *File) ModeController() *ModeController {
	return f.h.mode
}

// Close flushes pending changes and closes the file. Further operations on
// the file and on every Group and Variable obtained from it fail with
// ErrClosed. Closing twice is a no-op.
func (f *File) Close() error {
	return f.h.close()
}
