// Package nc is the storage engine behind the netcdf package. It exposes a
// narrow call interface modelled on the NetCDF C library: files and groups
// are addressed by integer ids, every call returns an error that carries a
// [Status], and structural changes are only accepted in define mode.
//
// An id packs the file and group: ncid = fileIndex<<16 | groupIndex, where
// group 0 is the root group. Dimension ids are unique per file; variable ids
// are unique per group.
//
// Files are stored in a checksummed container (see the superblock and object
// packages). The whole tree, data included, is loaded at Open and written
// back in place on Sync, Enddef and Close when something changed. Writers
// hold an exclusive advisory lock on the file for as long as it is open.
package nc
