package server

import (
	"context"
	"net"
)

type Handler interface {
	HandleConn(context.Context, net.Conn)
}
