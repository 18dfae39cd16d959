package tcp

import (
	"context"
	"io"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/server"
	srvtcp "weavelab.xyz/nettest/server/tcp"
)

type discardLogger struct{}

func (discardLogger) Error(string, ...interface{})                           {}
func (discardLogger) Info(string, ...interface{})                            {}
func (discardLogger) Debug(string, ...interface{})                           {}
func (discardLogger) TestResult(nettest.TestType, bool, string, interface{}) {}

// dialServer starts a real server on a loopback port and connects to it.
func dialServer(t *testing.T, bwRate uint64) *Tests {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = srvtcp.ServeListener(ctx, l, srvtcp.NewHandler(discardLogger{}, &server.Config{}, nil))
	}()

	conn, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewTests(conn, bwRate)
}

// fakeServer runs fn against the far end of an in-memory pipe.
func fakeServer(t *testing.T, fn func(conn net.Conn)) *Tests {
	t.Helper()
	client, srv := net.Pipe()
	go func() {
		defer srv.Close()
		fn(srv)
	}()
	t.Cleanup(func() { _ = client.Close() })
	return NewTests(client, 0)
}

func TestPing(t *testing.T) {
	tests := dialServer(t, 0)

	p, err := tests.Ping(5)
	require.NoError(t, err)
	require.Len(t, p.Raw, 5)
	require.Positive(t, p.Avg)
	require.LessOrEqual(t, p.Min, p.Max)

	_, err = tests.Ping(0)
	require.Error(t, err)
}

func TestPingUnexpectedReply(t *testing.T) {
	tests := fakeServer(t, func(conn net.Conn) {
		var b [1]byte
		_, _ = io.ReadFull(conn, b[:])
		_, _ = conn.Write([]byte{byte(protocol.OpEnd)})
	})

	_, err := tests.DoPing()
	require.ErrorIs(t, err, ErrUnexpectedReply)
}

func TestDownload(t *testing.T) {
	tests := dialServer(t, 0)

	p, err := tests.Download(200 * time.Millisecond)
	require.NoError(t, err)
	require.Positive(t, p.Bytes)
	require.Zero(t, p.Bytes%protocol.BufferSize)
	require.GreaterOrEqual(t, p.Elapsed, 150*time.Millisecond)
	require.False(t, math.IsInf(p.BitsPerSecond, 0) || math.IsNaN(p.BitsPerSecond))
	require.Positive(t, p.BitsPerSecond)

	// the stream is back in sync after the end marker
	_, err = tests.DoPing()
	require.NoError(t, err)
}

func TestDownloadIgnoresUnknownOpcodes(t *testing.T) {
	tests := fakeServer(t, func(conn net.Conn) {
		_, _ = io.ReadFull(conn, make([]byte, 1+protocol.RequestSize))
		_, _ = conn.Write([]byte{7, byte(protocol.OpPing)})
		_, _ = conn.Write(protocol.NewDataFrame())
		_, _ = conn.Write([]byte{byte(protocol.OpEnd)})
	})

	p, err := tests.Download(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, uint64(protocol.BufferSize), p.Bytes)
}

func TestDownloadTruncated(t *testing.T) {
	tests := fakeServer(t, func(conn net.Conn) {
		_, _ = io.ReadFull(conn, make([]byte, 1+protocol.RequestSize))
		_, _ = conn.Write(protocol.NewDataFrame()[:100])
	})

	_, err := tests.Download(time.Millisecond)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDownloadServerGone(t *testing.T) {
	tests := fakeServer(t, func(conn net.Conn) {
		_, _ = io.ReadFull(conn, make([]byte, 1+protocol.RequestSize))
	})

	_, err := tests.Download(time.Millisecond)
	require.Error(t, err)
}

func TestUpload(t *testing.T) {
	tests := dialServer(t, 0)

	p, err := tests.Upload(context.Background(), 200*time.Millisecond)
	require.NoError(t, err)
	require.Positive(t, p.Bytes)
	require.GreaterOrEqual(t, p.Elapsed, 200*time.Millisecond)
	require.Positive(t, p.BitsPerSecond)

	_, err = tests.DoPing()
	require.NoError(t, err)
}

func TestUploadRateCap(t *testing.T) {
	// ten frames per second
	tests := dialServer(t, 10*8*protocol.FrameSize)

	p, err := tests.Upload(context.Background(), 300*time.Millisecond)
	require.NoError(t, err)
	require.LessOrEqual(t, p.Bytes, uint64(6*protocol.BufferSize))
}

func TestUploadCancelled(t *testing.T) {
	tests := dialServer(t, 8*protocol.FrameSize)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tests.Upload(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDisconnect(t *testing.T) {
	got := make(chan []byte, 1)
	tests := fakeServer(t, func(conn net.Conn) {
		b, _ := io.ReadAll(conn)
		got <- b
	})

	require.NoError(t, tests.Disconnect())
	select {
	case b := <-got:
		require.Equal(t, []byte{byte(protocol.OpDisconnect)}, b)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not see the disconnect")
	}
}
