package server

import (
	"net"
	"strconv"
	"time"

	"weavelab.xyz/nettest/nettest"
)

type Config struct {
	IPVersion nettest.IPVersion
	LocalIP   net.IP
	LocalPort int

	// Integrity enables the simulated MAC digest over every received chunk.
	Integrity bool
	// IdleTimeout bounds the wait for the next opcode. Zero waits forever.
	IdleTimeout time.Duration
}

// Addr is the listen address; a nil LocalIP binds every interface.
func (c Config) Addr() string {
	host := ""
	if c.LocalIP != nil {
		host = c.LocalIP.String()
	}
	return net.JoinHostPort(host, strconv.Itoa(c.LocalPort))
}
