//go:build unix

package nc

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/robert-malhotra/go-netcdf/internal/fs"
)

// lockFile takes an exclusive advisory lock on f without blocking.
func lockFile(f fs.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if errors.Is(err, unix.EWOULDBLOCK) {
		return ErrFileLocked
	}
	if err != nil {
		return fmt.Errorf("flock: %w", err)
	}
	return nil
}

func unlockFile(f fs.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
