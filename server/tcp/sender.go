package tcp

import (
	"net"
	"sync/atomic"
	"time"

	"weavelab.xyz/nettest/metric"
	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/session"
)

// sender is the write half of a connection. It services duration requests
// one at a time, streaming data frames until the requested time has passed
// and then writing a single end marker.
type sender struct {
	conn     net.Conn
	queue    *requestQueue
	session  *session.Conn
	logger   nettest.Logger
	metrics  *metric.Metrics
	frame    []byte
	stopping atomic.Bool
	done     chan struct{}

	// pending counts requests accepted but not yet answered with an end
	// marker. lastWrite is the UnixNano time of the latest outbound frame.
	pending   atomic.Int64
	lastWrite atomic.Int64
}

func newSender(conn net.Conn, sess *session.Conn, logger nettest.Logger, m *metric.Metrics) *sender {
	s := &sender{
		conn:    conn,
		queue:   newRequestQueue(),
		session: sess,
		logger:  logger,
		metrics: m,
		frame:   protocol.NewDataFrame(),
		done:    make(chan struct{}),
	}
	s.lastWrite.Store(time.Now().UnixNano())
	return s
}

func (s *sender) run() {
	defer close(s.done)
	err := s.serve()
	// a write failing because the reader tore the connection down is a
	// normal shutdown
	if err != nil && !s.stopping.Load() {
		s.logger.Error("Error while writing to connection from %s: %v", s.session.RemoteAddr, err)
	}
}

func (s *sender) serve() error {
	for {
		ms, ok := s.queue.pop()
		if !ok {
			return nil
		}
		err := s.stream(time.Duration(ms) * time.Millisecond)
		s.pending.Add(-1)
		if err != nil {
			return err
		}
	}
}

func (s *sender) stream(d time.Duration) error {
	start := time.Now()
	for {
		if err := protocol.WriteFrame(s.conn, s.frame); err != nil {
			return err
		}
		s.lastWrite.Store(time.Now().UnixNano())
		s.session.AddBytesOut(protocol.BufferSize)
		s.metrics.BytesOut(protocol.BufferSize)
		if time.Since(start) >= d {
			break
		}
	}
	s.metrics.Streamed(time.Since(start))
	return protocol.WriteOpcode(s.conn, protocol.OpEnd)
}

// request queues a stream of ms milliseconds.
func (s *sender) request(ms uint64) {
	s.pending.Add(1)
	if !s.queue.push(ms) {
		s.pending.Add(-1)
	}
}

// quietFor reports how long the sender has had nothing to do. It is zero
// while a request is queued or streaming.
func (s *sender) quietFor() time.Duration {
	if s.pending.Load() > 0 {
		return 0
	}
	return time.Since(time.Unix(0, s.lastWrite.Load()))
}

// stop closes the request queue. Pending requests are dropped and an
// in-flight stream ends at its next write once the connection is closed.
func (s *sender) stop() {
	s.stopping.Store(true)
	s.queue.close()
}
