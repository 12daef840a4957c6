package superblock

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-netcdf/internal/binary"
)

// Signature identifies a container file.
var Signature = []byte{0x89, 'N', 'C', 'G', '\r', '\n', 0x1a, '\n'}

// Version is the superblock format version written by this package.
const Version = 1

const prefixSize = 16

const (
	orderLittle = 0
	orderBig    = 1
)

// Errors
var (
	ErrNotContainer       = errors.New("not a container file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported superblock version")
	ErrInvalidSuperblock  = errors.New("invalid superblock structure")
	ErrChecksumMismatch   = errors.New("superblock checksum mismatch")
)

// Superblock contains the file-level metadata.
type Superblock struct {
	Version uint8

	// ByteOrder is the byte order of every multi-byte value in the file
	ByteOrder binary.ByteOrder

	// OffsetSize is the number of bytes used for file offsets (2, 4, or 8)
	OffsetSize uint8

	// LengthSize is the number of bytes used for lengths (2, 4, or 8)
	LengthSize uint8

	// RootGroupAddress is the address of the root group object header
	RootGroupAddress uint64

	// EOFAddress is the end-of-file address (logical EOF)
	EOFAddress uint64

	// NextDimID is the id the next defined dimension receives. Dimension
	// ids are unique per file and never reused.
	NextDimID uint32
}

// New creates a superblock for the given encoding parameters.
func New(cfg binpkg.Config) *Superblock {
	return &Superblock{
		Version:    Version,
		ByteOrder:  cfg.ByteOrder,
		OffsetSize: uint8(cfg.OffsetSize),
		LengthSize: uint8(cfg.LengthSize),
	}
}

// Config returns the encoding parameters declared by the superblock.
func (sb *Superblock) Config() binpkg.Config {
	return binpkg.Config{
		ByteOrder:  sb.ByteOrder,
		OffsetSize: int(sb.OffsetSize),
		LengthSize: int(sb.LengthSize),
	}
}

// Size returns the encoded size of the superblock, which is also the first
// address available for data.
func (sb *Superblock) Size() int {
	return prefixSize + 2*int(sb.OffsetSize) + 4 + 4
}

// Read parses the superblock at offset 0.
func Read(r io.ReaderAt) (*Superblock, error) {
	prefix := make([]byte, prefixSize)
	if n, err := r.ReadAt(prefix, 0); n < prefixSize {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, ErrNotContainer
		}
		return nil, fmt.Errorf("reading superblock: %w", err)
	}
	if string(prefix[:8]) != string(Signature) {
		return nil, ErrNotContainer
	}

	sb := &Superblock{
		Version:    prefix[8],
		OffsetSize: prefix[10],
		LengthSize: prefix[11],
	}
	if sb.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, sb.Version)
	}
	switch prefix[9] {
	case orderLittle:
		sb.ByteOrder = binary.LittleEndian
	case orderBig:
		sb.ByteOrder = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: byte order flag %d", ErrInvalidSuperblock, prefix[9])
	}
	cfg := sb.Config()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}

	br := binpkg.NewReader(r, cfg)
	raw, err := br.ReadBytes(sb.Size() - 4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}
	stored, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}
	if computed := binpkg.Checksum(raw); computed != stored {
		return nil, fmt.Errorf("%w (stored=0x%08x, computed=0x%08x)", ErrChecksumMismatch, stored, computed)
	}

	fr := br.At(prefixSize)
	if sb.RootGroupAddress, err = fr.ReadOffset(); err != nil {
		return nil, err
	}
	if sb.EOFAddress, err = fr.ReadOffset(); err != nil {
		return nil, err
	}
	if sb.NextDimID, err = fr.ReadUint32(); err != nil {
		return nil, err
	}

	if sb.RootGroupAddress < uint64(sb.Size()) || sb.RootGroupAddress >= sb.EOFAddress {
		return nil, fmt.Errorf("%w: root group address 0x%x outside [0x%x, 0x%x)",
			ErrInvalidSuperblock, sb.RootGroupAddress, sb.Size(), sb.EOFAddress)
	}
	return sb, nil
}
