package tcp

import (
	"bufio"
	"net"

	"golang.org/x/time/rate"

	"weavelab.xyz/nettest/protocol"
)

// Tests runs probe exchanges over one established connection. Exchanges
// must not overlap; a Tests value is not safe for concurrent use.
type Tests struct {
	conn    net.Conn
	r       *bufio.Reader
	chunk   []byte
	frame   []byte
	limiter *rate.Limiter
}

// NewTests wraps conn. bwRate caps upload in bits/s; zero leaves it
// unlimited.
func NewTests(conn net.Conn, bwRate uint64) *Tests {
	t := &Tests{
		conn:  conn,
		r:     bufio.NewReaderSize(conn, protocol.FrameSize),
		chunk: make([]byte, protocol.BufferSize),
		frame: protocol.NewDataFrame(),
	}
	if bwRate > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(float64(bwRate)/8), protocol.FrameSize)
	}
	return t
}

// Disconnect asks the server to end the session and closes the stream.
func (t *Tests) Disconnect() error {
	err := protocol.WriteOpcode(t.conn, protocol.OpDisconnect)
	if cerr := t.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
