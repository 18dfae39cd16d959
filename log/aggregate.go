package log

import (
	"weavelab.xyz/nettest/nettest"
)

type AggregateLogger struct {
	loggers []nettest.Logger
}

func NewAggregateLogger(loggers ...nettest.Logger) *AggregateLogger {
	return &AggregateLogger{loggers: loggers}
}

func (l *AggregateLogger) Error(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Error(format, args...)
	}
}

func (l *AggregateLogger) Info(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Info(format, args...)
	}
}

func (l *AggregateLogger) Debug(format string, args ...interface{}) {
	for _, logger := range l.loggers {
		logger.Debug(format, args...)
	}
}

func (l *AggregateLogger) TestResult(tt nettest.TestType, success bool, remote string, result interface{}) {
	for _, logger := range l.loggers {
		logger.TestResult(tt, success, remote, result)
	}
}
