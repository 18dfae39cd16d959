package log

import (
	"context"
	"fmt"
	"sync/atomic"

	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/ui/server"
)

// TuiLogger routes messages into the message and error panes of the server
// UI.
type TuiLogger struct {
	ui     server.ServerUI
	ll     LogLevel
	active atomic.Bool
}

func NewTuiLogger(ll LogLevel, ui server.ServerUI) *TuiLogger {
	return &TuiLogger{
		ui: ui,
		ll: ll,
	}
}

func (l *TuiLogger) Init(ctx context.Context) {
	l.active.Store(true)
	go func() {
		<-ctx.Done()
		l.active.Store(false)
	}()
}

func (l *TuiLogger) Error(format string, args ...interface{}) {
	if l.active.Load() {
		l.ui.AddErrorMsg(fmt.Sprintf(format, args...))
	}
}

func (l *TuiLogger) Info(format string, args ...interface{}) {
	if l.ll <= LevelInfo && l.active.Load() {
		l.ui.AddInfoMsg(fmt.Sprintf(format, args...))
	}
}

func (l *TuiLogger) Debug(format string, args ...interface{}) {
	if l.ll == LevelDebug && l.active.Load() {
		l.ui.AddInfoMsg(fmt.Sprintf(format, args...))
	}
}

func (l *TuiLogger) TestResult(tt nettest.TestType, success bool, remote string, result interface{}) {
	// do nothing
}
