package tcp

import (
	"bufio"
	"context"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"

	"weavelab.xyz/nettest/metric"
	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/server"
	"weavelab.xyz/nettest/session"
)

type Handler struct {
	logger      nettest.Logger
	metrics     *metric.Metrics
	integrity   bool
	idleTimeout time.Duration
}

func NewHandler(logger nettest.Logger, cfg *server.Config, m *metric.Metrics) Handler {
	return Handler{
		logger:      logger,
		metrics:     m,
		integrity:   cfg.Integrity,
		idleTimeout: cfg.IdleTimeout,
	}
}

// HandleConn serves one client until it disconnects, the stream fails or
// ctx is cancelled. Both goroutines of the connection have exited when it
// returns.
func (h Handler) HandleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	h.logger.Info("Incoming connection from %s", remote)
	sess := session.Register(remote)
	defer session.Unregister(sess)
	h.metrics.ConnOpened()

	s := newSender(conn, sess, h.logger, h.metrics)
	go s.run()

	stopWatch := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	err := h.handle(conn, sess, s)
	stopWatch()

	s.stop()
	_ = conn.Close()
	<-s.done

	if err != nil && ctx.Err() != nil {
		err = nil
	}
	h.metrics.ConnClosed(err)
	if err != nil {
		h.logger.Error("Error while reading from connection from %s: %v", remote, err)
		return
	}
	h.logger.Info("Connection from %s closed", remote)
}

// handle runs the opcode loop. It returns nil on a disconnect request or when
// the peer closes the stream between opcodes.
func (h Handler) handle(conn net.Conn, sess *session.Conn, s *sender) error {
	r := bufio.NewReaderSize(conn, protocol.FrameSize)
	chunk := make([]byte, protocol.BufferSize)
	var mac *integrityHash
	if h.integrity {
		var err error
		if mac, err = newIntegrityHash(); err != nil {
			return err
		}
	}
	for {
		op, err := h.readOpcode(conn, r, s)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		h.metrics.Opcode(op)

		switch op {
		case protocol.OpData:
			if err := protocol.ReadChunk(r, chunk); err != nil {
				return err
			}
			sess.AddBytesIn(protocol.BufferSize)
			h.metrics.BytesIn(protocol.BufferSize)
			if mac != nil && mac.match(chunk) {
				h.metrics.IntegrityMatch()
				h.logger.Info("Integrity digest of chunk from %s starts with 0x%02x", sess.RemoteAddr, integrityMagic)
			}
		case protocol.OpRequest:
			ms, err := protocol.ReadMillis(r)
			if err != nil {
				return err
			}
			sess.AddRequest()
			s.request(ms)
		case protocol.OpEnd:
			// only meaningful to a client
		case protocol.OpPing:
			sess.AddPing()
			if err := protocol.WriteOpcode(conn, protocol.OpPing); err != nil {
				return err
			}
		case protocol.OpDisconnect:
			return nil
		default:
			h.logger.Debug("Ignoring unknown opcode %d from %s", op, sess.RemoteAddr)
		}
	}
}

// readOpcode waits for the next opcode. With an idle timeout set, an expired
// deadline only ends the connection when neither side has moved data for the
// whole timeout; a client waiting on a download is silent but not idle.
func (h Handler) readOpcode(conn net.Conn, r *bufio.Reader, s *sender) (protocol.Opcode, error) {
	for {
		if h.idleTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(h.idleTimeout)); err != nil {
				return 0, err
			}
		}
		op, err := protocol.ReadOpcode(r)
		if err != nil && h.idleTimeout > 0 && errors.Is(err, os.ErrDeadlineExceeded) && s.quietFor() < h.idleTimeout {
			continue
		}
		return op, err
	}
}
