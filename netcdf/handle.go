package netcdf

import (
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// handleState is the part of a handle the cleanup closes. It must not refer
// back to the handle, or the handle would never become unreachable.
type handleState struct {
	mu   sync.Mutex
	ncid int
	open bool
}

// close closes the engine file once. It reports whether this call closed it.
func (s *handleState) close() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return false, nil
	}
	s.open = false
	return true, nc.Close(s.ncid)
}

// handle is the open engine file shared by a File and every Group and
// Variable derived from it. It is closed exactly once: by Close, or by a
// cleanup after the last holder becomes unreachable.
type handle struct {
	state   *handleState
	path    string
	mode    *ModeController
	log     logrus.FieldLogger
	cleanup runtime.Cleanup
}

func newHandle(ncid int, path string, log logrus.FieldLogger) (*handle, error) {
	mode, err := newModeController(ncid)
	if err != nil {
		_ = nc.Close(ncid)
		return nil, newIOError("inquire mode", path, err)
	}
	h := &handle{
		state: &handleState{ncid: ncid, open: true},
		path:  path,
		mode:  mode,
		log:   log.WithField("path", path),
	}
	hlog := h.log
	h.cleanup = runtime.AddCleanup(h, func(s *handleState) {
		if closed, err := s.close(); closed {
			hlog.WithError(err).Warn("file was not closed; closed by cleanup")
		}
	}, h.state)
	return h, nil
}

func (h *handle) ncid() int {
	return h.state.ncid
}

// check fails with ErrClosed once the handle is closed.
func (h *handle) check() error {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if !h.state.open {
		return ErrClosed
	}
	return nil
}

// close is idempotent. Closing flushes buffered changes.
func (h *handle) close() error {
	closed, err := h.state.close()
	h.cleanup.Stop()
	if !closed {
		return nil
	}
	if err != nil {
		return newIOError("close", h.path, err)
	}
	h.log.Debug("closed file")
	return nil
}

// fail wraps an engine error for op.
func (h *handle) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	return newIOError(op, h.path, err)
}

// sync leaves define mode and flushes pending changes.
func (h *handle) sync() error {
	if err := h.mode.EnterData(); err != nil {
		return err
	}
	return h.fail("sync", nc.Sync(h.ncid()))
}
