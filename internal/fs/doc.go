// Package fs provides the filesystem abstraction used by the engine, so
// that I/O failures can be injected in tests.
//
//   - [File]: an open file with positional read/write, sync and truncate
//   - [FileSystem]: opens, stats and removes files
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that fails writes, syncs or closes on demand
//
// Production code uses fs.Default:
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests inject a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".nc", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
package fs
