package nc

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/filter"
	"github.com/robert-malhotra/go-netcdf/internal/message"
	"github.com/robert-malhotra/go-netcdf/internal/superblock"
)

// Create creates a new file in define mode and returns the id of its root
// group. cmode is Clobber or NoClobber, optionally combined with Share.
func Create(path string, cmode int, opts ...Option) (int, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.cfg.Validate(); err != nil {
		return 0, wrap(ErrInval, err, "create %s", path)
	}
	if _, err := filter.NewPipeline(&message.FilterPipeline{Filters: o.filters}, 1); err != nil {
		return 0, wrap(ErrInval, err, "create %s", path)
	}

	flags := os.O_RDWR | os.O_CREATE
	if cmode&NoClobber != 0 {
		flags |= os.O_EXCL
	}
	file, err := o.fs.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return 0, wrap(ErrExist, err, "create %s", path)
		}
		return 0, wrap(ErrIO, err, "create %s", path)
	}

	ds := newDataset(path, file, o.log)
	ds.writable = true
	ds.share = cmode&Share != 0
	ds.defineMode = true
	ds.dirty = true
	ds.cfg = o.cfg
	if len(o.filters) > 0 {
		ds.pipeline = &message.FilterPipeline{Filters: o.filters}
	}
	if _, err := ds.addGroup(nil, ""); err != nil {
		file.Close()
		return 0, err
	}

	if err := lockFile(file); err != nil {
		file.Close()
		return 0, wrap(ErrIO, err, "create %s", path)
	}
	ds.locked = true
	// The lock is held, so clobbering cannot disturb another writer.
	if err := file.Truncate(0); err != nil {
		ds.abandon()
		return 0, wrap(ErrIO, err, "create %s", path)
	}
	if err := ds.flush(); err != nil {
		ds.abandon()
		return 0, err
	}

	ncid, err := lib.register(ds)
	if err != nil {
		ds.abandon()
		return 0, err
	}
	ds.log.WithField("ncid", ncid).Debug("created dataset")
	return ncid, nil
}

// Open opens an existing file in data mode and returns the id of its root
// group. omode is NoWrite or Write, optionally combined with Share.
func Open(path string, omode int, opts ...Option) (int, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	writable := omode&Write != 0
	flags := os.O_RDONLY
	if writable {
		flags = os.O_RDWR
	}
	file, err := o.fs.OpenFile(path, flags, 0)
	if err != nil {
		return 0, wrap(ErrIO, err, "open %s", path)
	}

	ds := newDataset(path, file, o.log)
	ds.writable = writable
	ds.share = omode&Share != 0

	if writable {
		if err := lockFile(file); err != nil {
			file.Close()
			return 0, wrap(ErrIO, err, "open %s", path)
		}
		ds.locked = true
	}

	if err := ds.load(); err != nil {
		ds.abandon()
		return 0, err
	}

	ncid, err := lib.register(ds)
	if err != nil {
		ds.abandon()
		return 0, err
	}
	ds.log.WithFields(logrus.Fields{"ncid": ncid, "writable": writable}).Debug("opened dataset")
	return ncid, nil
}

// abandon releases the file of a dataset that never became visible.
func (ds *dataset) abandon() {
	if ds.locked {
		_ = unlockFile(ds.file)
	}
	_ = ds.file.Close()
}

// Close leaves define mode if needed, writes pending changes and releases
// the file. The id is invalid afterwards even when an error is returned.
func Close(ncid int) error {
	ds, err := lib.lookup(ncid)
	if err != nil {
		return err
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.closed {
		return ErrBadID
	}
	ds.closed = true
	lib.release(ds)

	ds.defineMode = false
	var errs []error
	if ds.writable && ds.dirty {
		errs = append(errs, ds.flush())
	}
	if ds.locked {
		if err := unlockFile(ds.file); err != nil {
			errs = append(errs, wrap(ErrIO, err, "unlock %s", ds.path))
		}
	}
	if err := ds.file.Close(); err != nil {
		errs = append(errs, wrap(ErrIO, err, "close %s", ds.path))
	}
	ds.groups = nil
	ds.dims = nil
	ds.log.Debug("closed dataset")
	return errors.Join(errs...)
}

// Sync writes pending changes to disk. It fails with ErrInDefine in define
// mode.
func Sync(ncid int) error {
	_, err := inDataset(ncid, func(ds *dataset) (struct{}, error) {
		if ds.defineMode {
			return struct{}{}, ErrInDefine
		}
		if ds.writable && ds.dirty {
			return struct{}{}, ds.flush()
		}
		return struct{}{}, nil
	})
	return err
}

// Redef enters define mode.
func Redef(ncid int) error {
	_, err := inDataset(ncid, func(ds *dataset) (struct{}, error) {
		if !ds.writable {
			return struct{}{}, ErrPerm
		}
		if ds.defineMode {
			return struct{}{}, ErrInDefine
		}
		ds.defineMode = true
		ds.log.Debug("entered define mode")
		return struct{}{}, nil
	})
	return err
}

// Enddef leaves define mode and writes the new structure.
func Enddef(ncid int) error {
	_, err := inDataset(ncid, func(ds *dataset) (struct{}, error) {
		if !ds.defineMode {
			return struct{}{}, ErrNotInDefine
		}
		ds.defineMode = false
		ds.log.Debug("left define mode")
		if ds.dirty {
			return struct{}{}, ds.flush()
		}
		return struct{}{}, nil
	})
	return err
}

// InqDefineMode reports whether the file is in define mode.
func InqDefineMode(ncid int) (bool, error) {
	return inDataset(ncid, func(ds *dataset) (bool, error) {
		return ds.defineMode, nil
	})
}

// InqPath returns the path the file was created or opened with.
func InqPath(ncid int) (string, error) {
	return inDataset(ncid, func(ds *dataset) (string, error) {
		return ds.path, nil
	})
}

func loadError(path string, err error) error {
	if errors.Is(err, superblock.ErrNotContainer) {
		return wrap(ErrNotNC, err, "open %s", path)
	}
	return wrap(ErrStorage, err, "open %s", path)
}
