//go:build unix

package nc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondWriterIsLockedOut(t *testing.T) {
	path, ncid := createFile(t)
	require.NoError(t, Enddef(ncid))

	_, err := Open(path, Write)
	requireStatus(t, ErrIO, err)
	assert.ErrorIs(t, err, ErrFileLocked)

	_, err = Create(path, Clobber)
	assert.ErrorIs(t, err, ErrFileLocked)

	reader, err := Open(path, NoWrite)
	require.NoError(t, err, "readers do not take the lock")
	require.NoError(t, Close(reader))

	require.NoError(t, Close(ncid))
	writer, err := Open(path, Write)
	require.NoError(t, err)
	require.NoError(t, Close(writer))
}
