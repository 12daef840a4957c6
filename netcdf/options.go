package netcdf

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"

	ibinary "github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/fs"
	"github.com/robert-malhotra/go-netcdf/internal/message"
	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// Codec selects the compressor applied to variable data.
type Codec int

const (
	CodecNone Codec = iota
	CodecDeflate
	CodecLZ4
	CodecZstd
)

var codecNames = map[Codec]string{
	CodecNone:    "none",
	CodecDeflate: "deflate",
	CodecLZ4:     "lz4",
	CodecZstd:    "zstd",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("codec(%d)", int(c))
}

// ParseCodec returns the codec named s. The empty string means CodecNone.
func ParseCodec(s string) (Codec, error) {
	if s == "" {
		return CodecNone, nil
	}
	for c, name := range codecNames {
		if name == s {
			return c, nil
		}
	}
	return CodecNone, fmt.Errorf("unknown codec %q", s)
}

// Option configures Create and Open. Storage options only apply to Create;
// an opened file keeps the settings it was created with.
type Option func(*options)

type options struct {
	codec      Codec
	level      int
	shuffle    bool
	checksum   bool
	byteOrder  binary.ByteOrder
	offsetSize int
	log        logrus.FieldLogger
	fs         fs.FileSystem
}

func defaultOptions() *options {
	return &options{
		byteOrder:  binary.LittleEndian,
		offsetSize: 8,
		log:        logrus.StandardLogger(),
	}
}

// WithCompression compresses variable data with codec. level is passed to
// deflate (1-9) and zstd (1-22); 0 selects the codec's default.
func WithCompression(codec Codec, level int) Option {
	return func(o *options) {
		o.codec = codec
		o.level = level
	}
}

// WithShuffle byte-shuffles variable data before compression.
func WithShuffle() Option {
	return func(o *options) {
		o.shuffle = true
	}
}

// WithChecksum protects variable data with a Fletcher-32 checksum.
func WithChecksum() Option {
	return func(o *options) {
		o.checksum = true
	}
}

// WithByteOrder sets the byte order of stored values.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.byteOrder = order
		}
	}
}

// WithOffsetSize sets the size in bytes for file offsets (2, 4, or 8).
func WithOffsetSize(size int) Option {
	return func(o *options) {
		if size == 2 || size == 4 || size == 8 {
			o.offsetSize = size
		}
	}
}

// WithLogger sets the logger for lifecycle and structure events, which are
// logged at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func withFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// filters returns the filter pipeline the options describe.
func (o *options) filters() ([]message.FilterInfo, error) {
	var filters []message.FilterInfo
	if o.shuffle {
		filters = append(filters, message.FilterInfo{ID: message.FilterShuffle})
	}
	switch o.codec {
	case CodecNone:
	case CodecDeflate:
		if o.level < 0 || o.level > 9 {
			return nil, fmt.Errorf("deflate level %d out of range 0-9", o.level)
		}
		level := o.level
		if level == 0 {
			level = 6
		}
		filters = append(filters, message.FilterInfo{ID: message.FilterDeflate, ClientData: []uint32{uint32(level)}})
	case CodecLZ4:
		filters = append(filters, message.FilterInfo{ID: message.FilterLZ4})
	case CodecZstd:
		if o.level < 0 || o.level > 22 {
			return nil, fmt.Errorf("zstd level %d out of range 0-22", o.level)
		}
		filters = append(filters, message.FilterInfo{ID: message.FilterZstd, ClientData: []uint32{uint32(o.level)}})
	default:
		return nil, fmt.Errorf("unknown codec %d", int(o.codec))
	}
	if o.checksum {
		filters = append(filters, message.FilterInfo{ID: message.FilterFletcher32})
	}
	return filters, nil
}

// engineOptions translates the options for the engine.
func (o *options) engineOptions(create bool) ([]nc.Option, error) {
	opts := []nc.Option{nc.WithLogger(o.log)}
	if o.fs != nil {
		opts = append(opts, nc.WithFS(o.fs))
	}
	if !create {
		return opts, nil
	}
	filters, err := o.filters()
	if err != nil {
		return nil, err
	}
	cfg := ibinary.DefaultConfig()
	cfg.ByteOrder = o.byteOrder
	cfg.OffsetSize = o.offsetSize
	return append(opts, nc.WithEncoding(cfg), nc.WithFilters(filters...)), nil
}
