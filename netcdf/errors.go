// Package netcdf provides a typed, hierarchical array store: files hold a
// tree of groups, and groups hold named dimensions, typed variables and
// further groups.
package netcdf

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// Common errors
var (
	ErrNameNotFound       = errors.New("name not found")
	ErrUndefinedDimension = fmt.Errorf("undefined dimension: %w", ErrNameNotFound)
	ErrTypeMismatch       = errors.New("element type mismatch")
	ErrClosed             = errors.New("file is closed")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrRankMismatch       = errors.New("rank mismatch")
	ErrShapeMismatch      = errors.New("data length does not match shape")
	ErrNotScalar          = errors.New("variable is not a scalar")
	ErrInvalidStride      = errors.New("stride must be at least 1")
	ErrInvalidSize        = errors.New("fixed dimension needs a positive size")
	ErrInvalidPath        = errors.New("invalid path")
	ErrNotClassic         = errors.New("not representable in the classic format")
	ErrTooLarge           = errors.New("element count does not fit in memory")
)

// IOError is a failure reported by the storage engine.
type IOError struct {
	Op   string // operation, e.g. "open" or "define variable"
	Path string // file path
	Code int    // engine status code
	Msg  string // engine status message
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("netcdf: %s %s: %s (code %d)", e.Op, e.Path, e.Msg, e.Code)
}

func (e *IOError) Unwrap() error { return e.Err }

func newIOError(op, path string, err error) *IOError {
	code := nc.Code(err)
	return &IOError{Op: op, Path: path, Code: int(code), Msg: nc.Strerror(code), Err: err}
}

// TypeMismatchError reports an access with an element type other than the
// variable's declared type. It matches ErrTypeMismatch.
type TypeMismatchError struct {
	Variable  string
	Requested Type
	Declared  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("netcdf: variable %q holds %s, not %s", e.Variable, e.Declared, e.Requested)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ModeTransitionError reports an engine failure while switching between
// define and data mode.
type ModeTransitionError struct {
	Target Mode
	Code   int
	Msg    string
	Err    error
}

func (e *ModeTransitionError) Error() string {
	return fmt.Sprintf("netcdf: entering %s mode: %s (code %d)", e.Target, e.Msg, e.Code)
}

func (e *ModeTransitionError) Unwrap() error { return e.Err }
