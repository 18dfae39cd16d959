package tools

import (
	"context"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"weavelab.xyz/nettest/nettest"
)

// DialTimeout bounds connection establishment.
const DialTimeout = 5 * time.Second

// Dial opens the test connection to the server.
func (t *Tools) Dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout: DialTimeout,
		Control: func(network, address string, rc syscall.RawConn) error {
			var sockErr error
			err := rc.Control(func(fd uintptr) {
				sockErr = setSockTTL(fd, int(t.TTL), t.IPVersion)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	conn, err := dialer.DialContext(ctx, nettest.TCPVersion(t.IPVersion), t.DialAddr())
	if err != nil {
		return nil, fmt.Errorf("error dialing remote: %w", err)
	}
	if err := t.setConnOptions(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return conn, nil
}

// setConnOptions applies the options that x/net can set on an open
// connection. TTL is only handled here where the socket layer did not.
func (t *Tools) setConnOptions(conn net.Conn) error {
	if t.IPVersion == nettest.IPv4 {
		c := ipv4.NewConn(conn)
		if t.ToS != 0 {
			if err := c.SetTOS(int(t.ToS)); err != nil {
				return fmt.Errorf("failed to set TOS to %d: %w", t.ToS, err)
			}
		}
		if t.TTL != 0 && !sockTTL {
			if err := c.SetTTL(int(t.TTL)); err != nil {
				return fmt.Errorf("failed to set TTL to %d: %w", t.TTL, err)
			}
		}
		return nil
	}

	c := ipv6.NewConn(conn)
	if t.ToS != 0 {
		if err := c.SetTrafficClass(int(t.ToS)); err != nil {
			return fmt.Errorf("failed to set traffic class to %d: %w", t.ToS, err)
		}
	}
	if t.TTL != 0 && !sockTTL {
		if err := c.SetHopLimit(int(t.TTL)); err != nil {
			return fmt.Errorf("failed to set hop limit to %d: %w", t.TTL, err)
		}
	}
	return nil
}
