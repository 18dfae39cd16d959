package client

import (
	"context"
	"net"

	"github.com/pkg/errors"

	"weavelab.xyz/nettest/client/tcp"
	"weavelab.xyz/nettest/client/tools"
	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/session"
)

// Progress is told about each test as it runs. The client UI prints
// "Testing ping... done, 0.42 ms" from these calls.
type Progress interface {
	Start(tt nettest.TestType)
	Done(tt nettest.TestType, result session.TestResult)
}

type Client struct {
	NetTools *tools.Tools

	Params   nettest.ClientParams
	Logger   nettest.Logger
	Progress Progress
}

func NewClient(logger nettest.Logger, progress Progress, params nettest.ClientParams, ipVersion nettest.IPVersion, remote string, port uint16) (*Client, error) {
	t, err := tools.NewTools(ipVersion, remote, port, params.TTL, params.ToS)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize network tools")
	}

	return &Client{
		NetTools: t,
		Params:   params,
		Logger:   logger,
		Progress: progress,
	}, nil
}

// RunTests connects once and runs tests in order over that connection. The
// first failure ends the run and is returned. Cancelling ctx closes the
// connection, which fails the running test.
func (c Client) RunTests(ctx context.Context, tests []nettest.TestType) error {
	c.Logger.Info("Using destination: %s, ip: %s, port: %d", c.NetTools.RemoteHostname, c.NetTools.RemoteIP, c.NetTools.RemotePort)
	conn, err := c.NetTools.Dial(ctx)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s", c.NetTools.DialAddr())
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	t := tcp.NewTests(conn, c.Params.BwRate)
	for _, tt := range tests {
		if c.Progress != nil {
			c.Progress.Start(tt)
		}
		result := c.runTest(ctx, t, tt)
		if c.Progress != nil {
			c.Progress.Done(tt, result)
		}
		c.report(tt, conn, result)
		if !result.Success {
			return errors.Wrapf(result.Error, "%s test", tt)
		}
	}

	if err := t.Disconnect(); err != nil {
		c.Logger.Debug("Error while disconnecting from %s: %v", conn.RemoteAddr(), err)
	}
	return nil
}

func (c Client) runTest(ctx context.Context, t *tcp.Tests, tt nettest.TestType) session.TestResult {
	var (
		body interface{}
		err  error
	)
	switch tt {
	case nettest.TestTypePing:
		body, err = t.Ping(c.Params.RttCount)
	case nettest.TestTypeDownload:
		body, err = t.Download(c.Params.Duration)
	case nettest.TestTypeUpload:
		body, err = t.Upload(ctx, c.Params.Duration)
	default:
		err = errors.Wrapf(ErrNotImplemented, "%s", tt)
	}
	if err != nil {
		return session.TestResult{Success: false, Error: err}
	}
	return session.TestResult{Success: true, Body: body}
}

func (c Client) report(tt nettest.TestType, conn net.Conn, result session.TestResult) {
	if result.Success {
		c.Logger.TestResult(tt, true, conn.RemoteAddr().String(), result.Body)
		return
	}
	c.Logger.TestResult(tt, false, conn.RemoteAddr().String(), result.Error)
}
