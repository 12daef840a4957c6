// Package filter implements the data block filter pipeline.
//
// Every variable's data block passes through the same pipeline on its way
// to disk. Filters run in declaration order when encoding and in reverse
// order when decoding.
//
// # Supported Filters
//
//   - DEFLATE (ID 1): zlib compression via [Deflate], backed by
//     github.com/klauspost/compress/zlib.
//
//   - Shuffle (ID 2): byte shuffling via [Shuffle]. Groups byte i of every
//     element together so that the compressors that follow see longer runs.
//
//   - Fletcher32 (ID 3): a 32-bit checksum appended to each block via
//     [Fletcher32Filter]. Decoding fails when the checksum does not match.
//
//   - LZ4 (ID 32004): LZ4 block compression via [LZ4].
//
//   - Zstandard (ID 32015): zstd compression via [Zstd].
//
// Unknown filters marked optional are skipped; any other unknown filter
// makes the pipeline unusable.
//
// # Filter Pipeline
//
//	pipeline, err := filter.NewPipeline(pipelineMsg, elemSize)
//	stored, err := pipeline.Encode(raw)
//	raw, err = pipeline.Decode(stored)
package filter
