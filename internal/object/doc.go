// Package object reads and writes group object headers.
//
// Each group in a container is stored as one header:
//
//	signature  "GHDR"
//	version    uint8
//	flags      uint8 (reserved)
//	count      uint16, number of messages
//	body size  uint32, bytes of message data that follow
//	messages   count x { type uint16, size uint32, body }
//	checksum   uint32, CRC-32C over every preceding byte
//
// Message bodies are encoded by the message package. A header whose
// checksum does not match is rejected with [ErrChecksumMismatch].
package object
