package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"weavelab.xyz/nettest/nettest"
)

// STDOutLogger writes human readable lines to a terminal.
type STDOutLogger struct {
	zl zerolog.Logger
}

func NewSTDOutLogger(ll LogLevel) *STDOutLogger {
	return NewConsoleLogger(os.Stdout, ll, false)
}

func NewConsoleLogger(w io.Writer, ll LogLevel, noColor bool) *STDOutLogger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: noColor}
	return &STDOutLogger{
		zl: zerolog.New(cw).Level(ll.zerolog()).With().Timestamp().Logger(),
	}
}

func (l *STDOutLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *STDOutLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *STDOutLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

var NoDetails StaticStringer

type StaticStringer string

func (s StaticStringer) String() string {
	if s == "" {
		return "UNKNOWN DETAILS"
	}
	return string(s)
}

func (l *STDOutLogger) TestResult(tt nettest.TestType, success bool, remote string, body interface{}) {
	var result fmt.Stringer
	switch b := body.(type) {
	case fmt.Stringer:
		result = b
	case error:
		result = StaticStringer(b.Error())
	default:
		result = NoDetails
	}
	l.zl.Info().
		Str("test", tt.String()).
		Str("status", resultStatus(success)).
		Str("remote", remote).
		Msg(result.String())
}
