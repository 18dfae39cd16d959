package tcp

import "errors"

// ErrUnexpectedReply is returned when the server answers with an opcode the
// exchange does not allow.
var ErrUnexpectedReply = errors.New("unexpected reply from server")
