package schema_registry

import (
	"encoding/binary"
	"fmt"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// MagicByte marks the start of every framed message.
const MagicByte = 0x0

// frameLen is the size of the magic byte plus the big-endian schema ID.
const frameLen = 5

// EncodeFrame prepends the registry wire frame to a field payload.
// Format: [magic_byte][schema_id], schema_id big-endian over 4 bytes.
func EncodeFrame(schemaID int, payload []byte) []byte {
	out := make([]byte, frameLen, frameLen+len(payload))
	out[0] = MagicByte
	binary.BigEndian.PutUint32(out[1:], uint32(schemaID))
	return append(out, payload...)
}

// DecodeFrame splits a framed message into its schema ID and field payload.
// A short header or wrong magic byte fails with a MalformedMessageError.
func DecodeFrame(data []byte) (int, []byte, error) {
	if len(data) < frameLen {
		return 0, nil, &schema.MalformedMessageError{
			Offset: len(data),
			Reason: fmt.Sprintf("message too short: expected at least %d bytes, got %d", frameLen, len(data)),
		}
	}
	if data[0] != MagicByte {
		return 0, nil, &schema.MalformedMessageError{
			Offset: 0,
			Reason: fmt.Sprintf("invalid magic byte: expected 0x%x, got 0x%x", MagicByte, data[0]),
		}
	}
	return int(binary.BigEndian.Uint32(data[1:frameLen])), data[frameLen:], nil
}
