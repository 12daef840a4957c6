// Package layout copies rectangular and strided selections in and out of
// row-major arrays held as raw bytes.
//
// A variable's data is one contiguous buffer whose shape is the current
// length of each of its dimensions, last dimension varying fastest. A
// [Selection] names a start, count and stride per dimension; [Gather] reads
// the selected elements into a dense buffer and [Scatter] writes a dense
// buffer back. [Resize] re-lays a buffer when a dimension grows, filling
// new elements with a fill pattern.
package layout
