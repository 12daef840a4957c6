package object

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// SignatureGroup marks the start of a group object header.
var SignatureGroup = []byte{'G', 'H', 'D', 'R'}

// Version is the header version written by this package.
const Version = 1

// prefixSize covers signature, version, flags, count and body size.
const prefixSize = 4 + 1 + 1 + 2 + 4

// messageHeaderSize covers the type and size fields of one message.
const messageHeaderSize = 2 + 4

// Errors
var (
	ErrInvalidHeader      = errors.New("invalid object header")
	ErrUnsupportedVersion = errors.New("unsupported object header version")
	ErrChecksumMismatch   = errors.New("object header checksum mismatch")
)

// Header is a parsed group object header.
type Header struct {
	Version uint8

	// Address is the file address where this header was found
	Address uint64

	// Size is the encoded size of the header including its checksum
	Size uint64

	Messages []message.Message
}

// Read parses a group header at the given address.
func Read(r *binary.Reader, address uint64) (*Header, error) {
	hr := r.At(int64(address))

	prefix, err := hr.ReadBytes(prefixSize)
	if err != nil {
		return nil, fmt.Errorf("reading object header at %d: %w", address, err)
	}
	if string(prefix[:4]) != string(SignatureGroup) {
		return nil, fmt.Errorf("%w: bad signature at address %d", ErrInvalidHeader, address)
	}
	version := prefix[4]
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	order := r.Config().ByteOrder
	count := int(order.Uint16(prefix[6:]))
	bodySize := int(order.Uint32(prefix[8:]))

	rest, err := hr.ReadBytes(bodySize + 4)
	if err != nil {
		return nil, fmt.Errorf("reading object header body at %d: %w", address, err)
	}
	body := rest[:bodySize]

	sum := binary.Checksum(append(append([]byte(nil), prefix...), body...))
	if stored := order.Uint32(rest[bodySize:]); stored != sum {
		return nil, fmt.Errorf("%w at address %d (stored=0x%08x, computed=0x%08x)",
			ErrChecksumMismatch, address, stored, sum)
	}

	h := &Header{
		Version:  version,
		Address:  address,
		Size:     uint64(prefixSize + bodySize + 4),
		Messages: make([]message.Message, 0, count),
	}

	offset := 0
	for i := 0; i < count; i++ {
		if offset+messageHeaderSize > len(body) {
			return nil, fmt.Errorf("%w: message %d truncated", ErrInvalidHeader, i)
		}
		typ := message.Type(order.Uint16(body[offset:]))
		size := int(order.Uint32(body[offset+2:]))
		offset += messageHeaderSize
		if offset+size > len(body) {
			return nil, fmt.Errorf("%w: message %d (%s) overruns header", ErrInvalidHeader, i, typ)
		}

		msg, err := message.Parse(typ, body[offset:offset+size], r.Config())
		if err != nil {
			return nil, fmt.Errorf("header at %d: %w", address, err)
		}
		h.Messages = append(h.Messages, msg)
		offset += size
	}

	return h, nil
}

// GetMessage returns the first message of the given type, or nil if not found.
func (h *Header) GetMessage(typ message.Type) message.Message {
	for _, msg := range h.Messages {
		if msg.Type() == typ {
			return msg
		}
	}
	return nil
}

// GetMessages returns all messages of the given type, in header order.
func (h *Header) GetMessages(typ message.Type) []message.Message {
	var result []message.Message
	for _, msg := range h.Messages {
		if msg.Type() == typ {
			result = append(result, msg)
		}
	}
	return result
}
