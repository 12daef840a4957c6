package netcdf

import (
	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// Mode is the access mode of an open file. Structural changes need define
// mode, data transfer needs data mode.
type Mode int

const (
	ModeData Mode = iota
	ModeDefine
)

func (m Mode) String() string {
	if m == ModeDefine {
		return "define"
	}
	return "data"
}

// ModeController tracks the mode of one open file and switches it on
// behalf of structural and data operations.
type ModeController struct {
	ncid int
	mode Mode
}

// newModeController starts from the mode the engine reports.
func newModeController(ncid int) (*ModeController, error) {
	define, err := nc.InqDefineMode(ncid)
	if err != nil {
		return nil, err
	}
	m := &ModeController{ncid: ncid, mode: ModeData}
	if define {
		m.mode = ModeDefine
	}
	return m, nil
}

// Mode returns the current mode.
func (m *ModeController) Mode() Mode {
	return m.mode
}

// EnterDefine switches to define mode. Being in define mode already is not
// an error.
func (m *ModeController) EnterDefine() error {
	if m.mode == ModeDefine {
		return nil
	}
	return m.transition(ModeDefine, nc.Redef(m.ncid), nc.ErrInDefine)
}

// EnterData switches to data mode. Being in data mode already is not an
// error.
func (m *ModeController) EnterData() error {
	if m.mode == ModeData {
		return nil
	}
	return m.transition(ModeData, nc.Enddef(m.ncid), nc.ErrNotInDefine)
}

// transition records target unless err is a failure other than benign.
func (m *ModeController) transition(target Mode, err error, benign nc.Status) error {
	if err != nil && nc.Code(err) != benign {
		code := nc.Code(err)
		return &ModeTransitionError{Target: target, Code: int(code), Msg: nc.Strerror(code), Err: err}
	}
	m.mode = target
	return nil
}
