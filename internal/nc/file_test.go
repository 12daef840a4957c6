package nc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-netcdf/internal/fs"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.nc")
}

// createFile creates a file and closes it when the test ends unless the
// test closed it itself.
func createFile(t *testing.T, opts ...Option) (string, int) {
	t.Helper()
	path := tempPath(t)
	ncid, err := Create(path, Clobber, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(ncid) })
	return path, ncid
}

func requireStatus(t *testing.T, want Status, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, Code(err), "error: %v", err)
	assert.ErrorIs(t, err, want)
}

func TestCreateStartsInDefineMode(t *testing.T) {
	_, ncid := createFile(t)

	define, err := InqDefineMode(ncid)
	require.NoError(t, err)
	assert.True(t, define)

	require.NoError(t, Enddef(ncid))
	define, err = InqDefineMode(ncid)
	require.NoError(t, err)
	assert.False(t, define)
}

func TestCreateWritesEmptyContainer(t *testing.T) {
	path := tempPath(t)
	ncid, err := Create(path, NoClobber)
	require.NoError(t, err)

	// The container is readable before the creator closes it.
	other, err := Open(path, NoWrite)
	require.NoError(t, err)
	n, err := InqNVars(other)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, Close(other))

	require.NoError(t, Close(ncid))
}

func TestOpenStartsInDataMode(t *testing.T) {
	path, ncid := createFile(t)
	require.NoError(t, Close(ncid))

	ncid, err := Open(path, Write)
	require.NoError(t, err)
	defer Close(ncid)

	define, err := InqDefineMode(ncid)
	require.NoError(t, err)
	assert.False(t, define)

	got, err := InqPath(ncid)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestCreateNoClobber(t *testing.T) {
	path, ncid := createFile(t)
	_, err := DefDim(ncid, "x", 4)
	require.NoError(t, err)
	require.NoError(t, Close(ncid))

	_, err = Create(path, NoClobber)
	requireStatus(t, ErrExist, err)

	ncid, err = Create(path, Clobber)
	require.NoError(t, err)
	n, err := InqNDims(ncid)
	require.NoError(t, err)
	assert.Zero(t, n, "clobbered file keeps no dimensions")
	require.NoError(t, Close(ncid))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.nc"), NoWrite)
	requireStatus(t, ErrIO, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpenNotContainer(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"short", "CDF"},
		{"text", strings.Repeat("not a container file ", 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempPath(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Open(path, NoWrite)
			requireStatus(t, ErrNotNC, err)
		})
	}
}

func TestOpenCorrupted(t *testing.T) {
	build := func(t *testing.T) string {
		path, ncid := createFile(t)
		x, err := DefDim(ncid, "x", 3)
		require.NoError(t, err)
		v, err := DefVar(ncid, "v", TypeInt, []int{x})
		require.NoError(t, err)
		require.NoError(t, Enddef(ncid))
		require.NoError(t, PutVar(ncid, v, []int32{1, 2, 3}))
		require.NoError(t, Close(ncid))
		return path
	}
	flip := func(t *testing.T, path string, offset func(size int) int) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[offset(len(data))] ^= 0xff
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	t.Run("superblock", func(t *testing.T) {
		path := build(t)
		flip(t, path, func(int) int { return 20 })
		_, err := Open(path, NoWrite)
		requireStatus(t, ErrStorage, err)
	})
	t.Run("root header", func(t *testing.T) {
		path := build(t)
		flip(t, path, func(size int) int { return size - 1 })
		_, err := Open(path, NoWrite)
		requireStatus(t, ErrStorage, err)
	})
	t.Run("truncated", func(t *testing.T) {
		path := build(t)
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.NoError(t, os.Truncate(path, info.Size()-8))
		_, err = Open(path, NoWrite)
		requireStatus(t, ErrStorage, err)
	})
}

func TestModeRules(t *testing.T) {
	_, ncid := createFile(t)
	x, err := DefDim(ncid, "x", 2)
	require.NoError(t, err)
	v, err := DefVar(ncid, "v", TypeDouble, []int{x})
	require.NoError(t, err)

	requireStatus(t, ErrInDefine, Redef(ncid))
	requireStatus(t, ErrInDefine, Sync(ncid))
	requireStatus(t, ErrInDefine, PutVar(ncid, v, []float64{1, 2}))
	requireStatus(t, ErrInDefine, GetVar(ncid, v, make([]float64, 2)))

	require.NoError(t, Enddef(ncid))
	requireStatus(t, ErrNotInDefine, Enddef(ncid))
	_, err = DefDim(ncid, "y", 2)
	requireStatus(t, ErrNotInDefine, err)
	_, err = DefVar(ncid, "w", TypeDouble, nil)
	requireStatus(t, ErrNotInDefine, err)
	_, err = DefGrp(ncid, "g")
	requireStatus(t, ErrNotInDefine, err)

	require.NoError(t, Sync(ncid))
	require.NoError(t, Sync(ncid))
	require.NoError(t, Redef(ncid))
	_, err = DefDim(ncid, "y", 2)
	require.NoError(t, err)
	require.NoError(t, Enddef(ncid))
}

func TestReadOnly(t *testing.T) {
	path, ncid := createFile(t)
	v, err := DefVar(ncid, "s", TypeShort, nil)
	require.NoError(t, err)
	require.NoError(t, Close(ncid))

	ncid, err = Open(path, NoWrite)
	require.NoError(t, err)
	defer Close(ncid)

	requireStatus(t, ErrPerm, Redef(ncid))
	requireStatus(t, ErrPerm, PutVar1(ncid, v, nil, int16(7)))

	got, err := GetVar1[int16](ncid, v, nil)
	require.NoError(t, err)
	assert.Equal(t, int16(-32767), got, "unwritten scalar reads the fill value")
}

func TestCloseInvalidatesID(t *testing.T) {
	path := tempPath(t)
	ncid, err := Create(path, Clobber)
	require.NoError(t, err)
	require.NoError(t, Close(ncid))

	requireStatus(t, ErrBadID, Close(ncid))
	_, err = InqNVars(ncid)
	requireStatus(t, ErrBadID, err)
	_, err = InqDefineMode(ncid)
	requireStatus(t, ErrBadID, err)
}

func TestCloseLeavesDefineMode(t *testing.T) {
	path := tempPath(t)
	ncid, err := Create(path, Clobber)
	require.NoError(t, err)
	_, err = DefDim(ncid, "time", Unlimited)
	require.NoError(t, err)
	require.NoError(t, Close(ncid), "close from define mode commits the definitions")

	ncid, err = Open(path, NoWrite)
	require.NoError(t, err)
	defer Close(ncid)
	ids, err := InqUnlimDims(ncid)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestBadIDs(t *testing.T) {
	_, ncid := createFile(t)

	_, err := InqNDims(-1)
	requireStatus(t, ErrBadID, err)
	_, err = InqNDims(ncid + maxGroups*(maxDatasets-1))
	requireStatus(t, ErrBadID, err)
	_, err = InqNDims(ncid + 42)
	requireStatus(t, ErrBadGrpID, err)
}

func TestInjectedFaults(t *testing.T) {
	tests := []struct {
		name  string
		fault fs.Fault
	}{
		{"open", fs.Fault{FailOnOpen: true, FailAfterBytes: -1}},
		{"write", fs.Fault{FailAfterBytes: 0}},
		{"truncate", fs.Fault{FailOnTruncate: true, FailAfterBytes: -1}},
		{"sync", fs.Fault{FailOnSync: true, FailAfterBytes: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faulty := fs.NewFaultyFS(nil)
			faulty.AddRule("bad.nc", tt.fault)

			_, err := Create(filepath.Join(t.TempDir(), "bad.nc"), Clobber, WithFS(faulty))
			requireStatus(t, ErrIO, err)
			assert.ErrorIs(t, err, fs.ErrInjected)

			ncid, err := Create(filepath.Join(t.TempDir(), "good.nc"), Clobber, WithFS(faulty))
			require.NoError(t, err)
			require.NoError(t, Close(ncid))
		})
	}
}

func TestCloseReportsFlushFailure(t *testing.T) {
	faulty := fs.NewFaultyFS(nil)
	path := filepath.Join(t.TempDir(), "late.nc")
	ncid, err := Create(path, Clobber, WithFS(faulty))
	require.NoError(t, err)
	_, err = DefDim(ncid, "x", 1)
	require.NoError(t, err)

	// Rules only affect files opened after AddRule.
	require.NoError(t, Close(ncid))
	faulty.AddRule("late.nc", fs.Fault{FailOnSync: true, FailAfterBytes: -1})
	ncid, err = Open(path, Write, WithFS(faulty))
	require.NoError(t, err)
	require.NoError(t, Redef(ncid))
	_, err = DefDim(ncid, "y", 1)
	require.NoError(t, err)

	requireStatus(t, ErrIO, Close(ncid))
	requireStatus(t, ErrBadID, Close(ncid))
}

func TestStrerror(t *testing.T) {
	assert.Equal(t, "NetCDF: Not a valid ID", Strerror(ErrBadID))
	assert.Equal(t, "No error", Strerror(NoErr))
	assert.Equal(t, "Unknown Error -9999", Strerror(Status(-9999)))
	assert.Equal(t, NoErr, Code(nil))
	assert.Equal(t, ErrIO, Code(errors.New("plain")))
}
