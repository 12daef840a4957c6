// Package alloc manages file space while a container is laid out.
//
// Data blocks and group headers must be placed at distinct file offsets.
// An [Allocator] hands out append-only regions starting after the
// superblock and records each one, so the writer can report how the file
// was used and the reader can check that the regions it found do not
// overlap.
//
// # Usage
//
//	a := alloc.New(superblockSize)
//	addr := a.AllocTagged(uint64(len(block)), "data /temperature")
//	hdr := a.AllocAligned(uint64(len(header)), 8)
//	eof := a.EOFAddr()
package alloc
