package session

type TestResult struct {
	Success bool
	Error   error
	Body    interface{}
}
