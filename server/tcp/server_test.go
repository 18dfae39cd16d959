package tcp

import (
	"bufio"
	"context"
	"io"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/server"
)

func startServer(t *testing.T, cfg *server.Config) (string, *recordingLogger, context.CancelFunc, <-chan error) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := &recordingLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- ServeListener(ctx, l, NewHandler(logger, cfg, nil))
	}()
	t.Cleanup(cancel)
	return l.Addr().String(), logger, cancel, errs
}

func TestServerDownload(t *testing.T) {
	addr, _, _, _ := startServer(t, &server.Config{})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, protocol.WriteRequest(conn, 200*time.Millisecond))
	start := time.Now()

	r := bufio.NewReader(conn)
	chunk := make([]byte, protocol.BufferSize)
	var bytes uint64
	for {
		op, err := protocol.ReadOpcode(r)
		require.NoError(t, err)
		if op == protocol.OpEnd {
			break
		}
		require.Equal(t, protocol.OpData, op)
		require.NoError(t, protocol.ReadChunk(r, chunk))
		bytes += protocol.BufferSize
	}
	elapsed := time.Since(start)

	require.Positive(t, bytes)
	require.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
	rate := float64(bytes) * 8 / elapsed.Seconds()
	require.False(t, math.IsInf(rate, 0) || math.IsNaN(rate))
	require.Positive(t, rate)

	// the end marker is written once and nothing follows it
	require.NoError(t, protocol.WriteOpcode(conn, protocol.OpPing))
	op, err := protocol.ReadOpcode(r)
	require.NoError(t, err)
	require.Equal(t, protocol.OpPing, op)
	require.Zero(t, r.Buffered())
}

func TestServerImmediateDisconnect(t *testing.T) {
	addr, logger, _, _ := startServer(t, &server.Config{})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	require.NoError(t, protocol.WriteOpcode(conn, protocol.OpDisconnect))

	_, err = io.ReadAll(conn)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return logger.has("info", "Connection from")
	}, 2*time.Second, 10*time.Millisecond)
	require.Zero(t, logger.count("error"))
}

func TestServerHandlesConnectionsIndependently(t *testing.T) {
	addr, _, _, _ := startServer(t, &server.Config{})

	busy, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer busy.Close()
	require.NoError(t, protocol.WriteRequest(busy, time.Hour))
	go func() {
		_, _ = io.Copy(io.Discard, busy)
	}()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, protocol.WriteOpcode(conn, protocol.OpPing))
	op, err := protocol.ReadOpcode(conn)
	require.NoError(t, err)
	require.Equal(t, protocol.OpPing, op)
}

func TestServeListenerStopsOnCancel(t *testing.T) {
	addr, _, cancel, errs := startServer(t, &server.Config{})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, protocol.WriteOpcode(conn, protocol.OpPing))
	_, err = protocol.ReadOpcode(conn)
	require.NoError(t, err)

	cancel()
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeListener did not return")
	}

	// cancellation also tears down live connections
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = io.ReadAll(conn)
	require.NoError(t, err)
}
