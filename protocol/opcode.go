// Package protocol implements the byte level framing shared by the nettest
// client and server. Every unit on the wire starts with a one byte opcode and
// the opcode alone decides how many payload bytes follow.
package protocol

type Opcode uint8

const (
	OpData       Opcode = 0
	OpRequest    Opcode = 1
	OpEnd        Opcode = 2
	OpPing       Opcode = 3
	OpDisconnect Opcode = 255
)

// BufferSize is the size of the filler payload following OpData. Both peers
// must use the same value since there is no length field on the wire; a
// mismatch silently desynchronizes the stream. Do not change it without
// changing every deployed peer.
const BufferSize = 16 * 1024

// RequestSize is the payload size of OpRequest, a big endian uint64 holding
// milliseconds.
const RequestSize = 8

// FrameSize is the size of one OpData unit including its opcode.
const FrameSize = 1 + BufferSize

func (op Opcode) String() string {
	switch op {
	case OpData:
		return "Data"
	case OpRequest:
		return "Request"
	case OpEnd:
		return "End"
	case OpPing:
		return "Ping"
	case OpDisconnect:
		return "Disconnect"
	}
	return "Unknown"
}

// PayloadSize returns the number of bytes that follow op on the wire.
// Unknown opcodes carry no payload.
func PayloadSize(op Opcode) int {
	switch op {
	case OpData:
		return BufferSize
	case OpRequest:
		return RequestSize
	}
	return 0
}
