//go:build !unix

package nc

import "github.com/robert-malhotra/go-netcdf/internal/fs"

// Writers are not locked on this platform.
func lockFile(fs.File) error   { return nil }
func unlockFile(fs.File) error { return nil }
