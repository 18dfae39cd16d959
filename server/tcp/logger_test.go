package tcp

import (
	"fmt"
	"strings"
	"sync"

	"weavelab.xyz/nettest/nettest"
)

type logLine struct {
	level string
	msg   string
}

// recordingLogger keeps every line for later inspection.
type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level: level, msg: fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }
func (l *recordingLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *recordingLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }

func (l *recordingLogger) TestResult(nettest.TestType, bool, string, interface{}) {}

func (l *recordingLogger) has(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if line.level == level && strings.Contains(line.msg, substr) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if line.level == level {
			n++
		}
	}
	return n
}
