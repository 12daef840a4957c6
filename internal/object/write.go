package object

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-netcdf/internal/binary"
	"github.com/robert-malhotra/go-netcdf/internal/message"
)

// EncodedSize returns the size of the header that Encode would produce.
func EncodedSize(cfg binary.Config, messages []message.Message) int {
	size := prefixSize + 4
	for _, msg := range messages {
		size += messageHeaderSize + msg.SerializedSize(cfg)
	}
	return size
}

// Encode builds a complete header, checksum included. The header is
// buffered so the checksum can be computed before anything reaches the
// file.
func Encode(cfg binary.Config, messages []message.Message) ([]byte, error) {
	if len(messages) > math.MaxUint16 {
		return nil, fmt.Errorf("object header: %d messages exceeds limit", len(messages))
	}
	total := EncodedSize(cfg, messages)
	bodySize := total - prefixSize - 4
	if uint64(bodySize) > math.MaxUint32 {
		return nil, fmt.Errorf("object header: body of %d bytes exceeds limit", bodySize)
	}

	buf := binary.NewBuffer(total)
	bw := binary.NewWriter(buf, cfg)

	if err := bw.WriteBytes(SignatureGroup); err != nil {
		return nil, err
	}
	if err := bw.WriteUint8(Version); err != nil {
		return nil, err
	}
	if err := bw.WriteUint8(0); err != nil {
		return nil, err
	}
	if err := bw.WriteUint16(uint16(len(messages))); err != nil {
		return nil, err
	}
	if err := bw.WriteUint32(uint32(bodySize)); err != nil {
		return nil, err
	}

	for _, msg := range messages {
		if err := writeMessage(bw, msg); err != nil {
			return nil, fmt.Errorf("writing %s message: %w", msg.Type(), err)
		}
	}

	if err := bw.WriteUint32(binary.Checksum(buf.Bytes())); err != nil {
		return nil, err
	}
	if buf.Len() != total {
		return nil, fmt.Errorf("object header: wrote %d bytes, expected %d", buf.Len(), total)
	}
	return buf.Bytes(), nil
}

// WriteHeader encodes the header and writes it at the writer's position.
// Returns the total bytes written.
func WriteHeader(w *binary.Writer, messages []message.Message) (int64, error) {
	data, err := Encode(w.Config(), messages)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func writeMessage(w *binary.Writer, msg message.Message) error {
	size := msg.SerializedSize(w.Config())
	if err := w.WriteUint16(uint16(msg.Type())); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(size)); err != nil {
		return err
	}
	start := w.Pos()
	if err := msg.Serialize(w); err != nil {
		return err
	}
	if written := int(w.Pos() - start); written != size {
		return fmt.Errorf("serialized %d bytes, declared %d", written, size)
	}
	return nil
}
