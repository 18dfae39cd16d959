package log

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"weavelab.xyz/nettest/nettest"
)

// JSONLogger appends one JSON object per line to a file.
type JSONLogger struct {
	logFile *os.File
	zl      zerolog.Logger
}

func NewJSONLogger(filename string, ll LogLevel) (*JSONLogger, error) {
	if filename == "" {
		return nil, errors.New("filename required")
	}
	logFile, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("unable to open the log file (%s): %w", filename, err)
	}

	return &JSONLogger{
		logFile: logFile,
		zl:      zerolog.New(logFile).Level(ll.zerolog()).With().Timestamp().Logger(),
	}, nil
}

func (l *JSONLogger) Close() error {
	return l.logFile.Close()
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *JSONLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *JSONLogger) TestResult(tt nettest.TestType, success bool, remote string, result interface{}) {
	e := l.zl.Log().
		Str("type", "TestResult").
		Str("test", tt.String()).
		Bool("success", success).
		Str("remote", remote)
	if err, ok := result.(error); ok {
		e = e.AnErr("details", err)
	} else {
		e = e.Interface("details", result)
	}
	e.Send()
}
