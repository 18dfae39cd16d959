package client

import (
	"errors"

	"weavelab.xyz/nettest/client/tcp"
)

var (
	ErrNotImplemented  = errors.New("test not implemented")
	ErrUnexpectedReply = tcp.ErrUnexpectedReply
)
