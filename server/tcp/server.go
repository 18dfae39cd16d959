package tcp

import (
	"context"
	"errors"
	"net"
	"time"

	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/server"
)

// Listen binds the address described by cfg.
func Listen(cfg *server.Config) (net.Listener, error) {
	return net.Listen(nettest.TCPVersion(cfg.IPVersion), cfg.Addr())
}

func Serve(ctx context.Context, cfg *server.Config, h Handler) error {
	l, err := Listen(cfg)
	if err != nil {
		return err
	}
	h.logger.Info("Listening on %s (integrity simulation: %v)", l.Addr(), cfg.Integrity)
	return ServeListener(ctx, l, h)
}

// ServeListener accepts on l and runs each connection on its own goroutine
// until ctx is done. The listener is closed on return; live connections are
// left to their handlers.
func ServeListener(ctx context.Context, l net.Listener, h server.Handler) error {
	defer l.Close()

	conns := make(chan net.Conn, 1)
	acceptErr := make(chan error, 1)

	go func() {
		// https://golang.org/src/net/http/server.go?s=99574:99629#L3152
		var tempDelay time.Duration // how long to sleep on accept failure
		for {
			conn, err := l.Accept()
			// If Temporary try again... otherwise bail
			if err != nil {
				if ne, ok := err.(net.Error); ok && ne.Temporary() {
					if tempDelay == 0 {
						tempDelay = 5 * time.Millisecond
					} else {
						tempDelay *= 2
					}

					if max := 1 * time.Second; tempDelay > max {
						tempDelay = max
					}
					time.Sleep(tempDelay)
					continue
				}
				acceptErr <- err
				return
			}
			tempDelay = 0
			select {
			case conns <- conn:
			case <-ctx.Done():
				_ = conn.Close()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-acceptErr:
			if errors.Is(err, net.ErrClosed) && ctx.Err() != nil {
				return nil
			}
			return err
		case conn := <-conns:
			go h.HandleConn(ctx, conn)
		}
	}
}
