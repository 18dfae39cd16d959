package nettest

// Logger is implemented by every sink in the log package. Format arguments
// follow fmt.Sprintf.
type Logger interface {
	Error(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	TestResult(tt TestType, success bool, remote string, result interface{})
}
