// Package message encodes and decodes the records stored in group object
// headers.
//
// A group header is a list of typed messages. Each message type has a fixed
// layout built from the primitives in the binary package, so sizes follow
// the offset and length widths recorded in the superblock.
//
// # Message Types
//
//   - Dimension (0x0001): one axis owned by the group. See [Dimension].
//   - Variable (0x0003): one variable with its dimension ids and the location
//     of its data block. See [Variable].
//   - Link (0x0006): a named child group and the address of its header.
//     See [Link].
//   - Filter Pipeline (0x000B): the filters applied to every data block in
//     the file. Stored in the root group only. See [FilterPipeline].
//
// Unrecognized types are kept as [Unknown] so headers written by a newer
// version can still be read.
package message
