package nc

import (
	"errors"
	"fmt"
)

// Status is an engine status code. Values follow the NetCDF numbering.
type Status int

const (
	NoErr          Status = 0
	ErrBadID       Status = -33  // Not a valid ID
	ErrExist       Status = -35  // File exists and NoClobber was requested
	ErrInval       Status = -36  // Invalid argument
	ErrPerm        Status = -37  // Write to read-only file
	ErrNotInDefine Status = -38  // Operation not allowed in data mode
	ErrInDefine    Status = -39  // Operation not allowed in define mode
	ErrInvalCoords Status = -40  // Index exceeds dimension bound
	ErrNameInUse   Status = -42  // String match to name in use
	ErrBadType     Status = -45  // Not a valid data type or type mismatch
	ErrBadDim      Status = -46  // Invalid dimension id or name
	ErrUnlimPos    Status = -47  // Unlimited dimension in the wrong index
	ErrNotVar      Status = -49  // Variable not found
	ErrNotNC       Status = -51  // Not a container file
	ErrMaxName     Status = -53  // Name too long
	ErrEdge        Status = -57  // Start+count exceeds dimension bound
	ErrStride      Status = -58  // Illegal stride
	ErrBadName     Status = -59  // Name contains illegal characters
	ErrNoMem       Status = -61  // Memory allocation failure
	ErrIO          Status = -68  // Generic I/O error
	ErrStorage     Status = -101 // Container structure is corrupt
	ErrBadGrpID    Status = -116 // Bad group id
	ErrNoGrp       Status = -125 // No group found
)

var statusText = map[Status]string{
	NoErr:          "No error",
	ErrBadID:       "NetCDF: Not a valid ID",
	ErrExist:       "NetCDF: File exists && NC_NOCLOBBER",
	ErrInval:       "NetCDF: Invalid argument",
	ErrPerm:        "NetCDF: Write to read only",
	ErrNotInDefine: "NetCDF: Operation not allowed in data mode",
	ErrInDefine:    "NetCDF: Operation not allowed in define mode",
	ErrInvalCoords: "NetCDF: Index exceeds dimension bound",
	ErrNameInUse:   "NetCDF: String match to name in use",
	ErrBadType:     "NetCDF: Not a valid data type or _FillValue type mismatch",
	ErrBadDim:      "NetCDF: Invalid dimension ID or name",
	ErrUnlimPos:    "NetCDF: NC_UNLIMITED in the wrong index",
	ErrNotVar:      "NetCDF: Variable not found",
	ErrNotNC:       "NetCDF: Unknown file format",
	ErrMaxName:     "NetCDF: Name too long",
	ErrEdge:        "NetCDF: Start+count exceeds dimension bound",
	ErrStride:      "NetCDF: Illegal stride",
	ErrBadName:     "NetCDF: Name contains illegal characters",
	ErrNoMem:       "NetCDF: Memory allocation (malloc) failure",
	ErrIO:          "NetCDF: I/O failure",
	ErrStorage:     "NetCDF: Storage layer error",
	ErrBadGrpID:    "NetCDF: Bad group ID",
	ErrNoGrp:       "NetCDF: No group found",
}

// Strerror returns the message for a status code.
func Strerror(s Status) string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return fmt.Sprintf("Unknown Error %d", int(s))
}

func (s Status) Error() string {
	return Strerror(s)
}

// Code extracts the status carried by err. It returns NoErr for nil and
// ErrIO for errors that carry no status.
func Code(err error) Status {
	if err == nil {
		return NoErr
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return ErrIO
}

// statusError attaches a status to an underlying cause so that both can be
// matched with errors.Is.
type statusError struct {
	status Status
	msg    string
	err    error
}

func (e *statusError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", e.status, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.status, e.msg, e.err)
}

func (e *statusError) Unwrap() []error {
	if e.err == nil {
		return []error{e.status}
	}
	return []error{e.status, e.err}
}

func wrap(status Status, err error, format string, args ...any) error {
	return &statusError{status: status, msg: fmt.Sprintf(format, args...), err: err}
}
