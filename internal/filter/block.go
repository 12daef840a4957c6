package filter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// Compressed blocks carry a small header:
// [UncompressedSize uint32][CompressedSize uint32][Data...]
// A CompressedSize of 0 means the block is stored uncompressed.
const blockHeaderSize = 8

var errBlockTooSmall = errors.New("block too small for header")

func frameBlock(raw, compressed []byte) []byte {
	stored := compressed
	if len(compressed) == 0 || len(compressed) >= len(raw) {
		stored = nil
	}
	payload := raw
	if stored != nil {
		payload = stored
	}
	out := make([]byte, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(stored)))
	copy(out[blockHeaderSize:], payload)
	return out
}

// unframeBlock returns the payload, the expected raw size and whether the
// payload is compressed.
func unframeBlock(data []byte) ([]byte, uint32, bool, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, false, errBlockTooSmall
	}
	rawSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	if compressedSize == 0 {
		if uint32(len(data)-blockHeaderSize) < rawSize {
			return nil, 0, false, errors.New("block data too small")
		}
		return data[blockHeaderSize : blockHeaderSize+rawSize], rawSize, false, nil
	}
	if uint32(len(data)-blockHeaderSize) < compressedSize {
		return nil, 0, false, errors.New("compressed block data too small")
	}
	return data[blockHeaderSize : blockHeaderSize+compressedSize], rawSize, true, nil
}

// LZ4 implements LZ4 block compression.
type LZ4 struct{}

// NewLZ4 creates a new LZ4 filter. It takes no client data.
func NewLZ4([]uint32) *LZ4 {
	return &LZ4{}
}

func (f *LZ4) ID() uint16 {
	return message.FilterLZ4
}

func (f *LZ4) Encode(input []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(input)))
	n, err := lz4.CompressBlock(input, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return frameBlock(input, compressed[:n]), nil
}

func (f *LZ4) Decode(input []byte) ([]byte, error) {
	payload, rawSize, compressed, err := unframeBlock(input)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if !compressed {
		return payload, nil
	}
	result := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(payload, result)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if uint32(n) != rawSize {
		return nil, errors.New("lz4: decompressed size mismatch")
	}
	return result, nil
}

// Decoders are pooled; encoders are pooled per level.
var (
	zstdEncoderPools sync.Map // zstd.EncoderLevel -> *sync.Pool
	zstdDecoderPool  sync.Pool
)

func getZstdEncoder(level zstd.EncoderLevel) (*zstd.Encoder, *sync.Pool, error) {
	v, _ := zstdEncoderPools.LoadOrStore(level, &sync.Pool{})
	pool := v.(*sync.Pool)
	if enc, ok := pool.Get().(*zstd.Encoder); ok {
		return enc, pool, nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, nil, err
	}
	return enc, pool, nil
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if dec, ok := zstdDecoderPool.Get().(*zstd.Decoder); ok {
		return dec, nil
	}
	return zstd.NewReader(nil)
}

// Zstd implements Zstandard compression.
type Zstd struct {
	level zstd.EncoderLevel
}

// NewZstd creates a new Zstandard filter.
// Client data: [0] = compression level (1-22, or default if empty)
func NewZstd(clientData []uint32) *Zstd {
	level := zstd.SpeedDefault
	if len(clientData) > 0 && clientData[0] > 0 {
		level = zstd.EncoderLevelFromZstd(int(clientData[0]))
	}
	return &Zstd{level: level}
}

func (f *Zstd) ID() uint16 {
	return message.FilterZstd
}

func (f *Zstd) Encode(input []byte) ([]byte, error) {
	enc, pool, err := getZstdEncoder(f.level)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer pool.Put(enc)
	return frameBlock(input, enc.EncodeAll(input, nil)), nil
}

func (f *Zstd) Decode(input []byte) ([]byte, error) {
	payload, rawSize, compressed, err := unframeBlock(input)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if !compressed {
		return payload, nil
	}
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer zstdDecoderPool.Put(dec)

	decoded, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if uint32(len(decoded)) != rawSize {
		return nil, errors.New("zstd: decompressed size mismatch")
	}
	return decoded, nil
}
