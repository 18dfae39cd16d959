package nettest

import (
	"fmt"
	"strings"
)

type TestType uint32

const (
	TestTypeServer TestType = iota
	TestTypePing
	TestTypeDownload
	TestTypeUpload
	TestTypeUnknown
)

// AllTests is the order a client runs tests in when none are selected.
var AllTests = []TestType{TestTypePing, TestTypeDownload, TestTypeUpload}

func (t TestType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t TestType) String() string {
	switch t {
	case TestTypeServer:
		return "Server"
	case TestTypePing:
		return "Ping"
	case TestTypeDownload:
		return "Download"
	case TestTypeUpload:
		return "Upload"
	}
	return "UNKNOWN"
}

func ParseTestType(s string) TestType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S", "SERVER":
		return TestTypeServer
	case "PI", "PING":
		return TestTypePing
	case "D", "DOWN", "DOWNLOAD":
		return TestTypeDownload
	case "U", "UP", "UPLOAD":
		return TestTypeUpload
	}
	return TestTypeUnknown
}

// ParseTestList parses a comma separated list such as "ping,upload".
// Duplicates are dropped, order is kept.
func ParseTestList(s string) ([]TestType, error) {
	if strings.TrimSpace(s) == "" {
		return AllTests, nil
	}
	seen := make(map[TestType]bool)
	out := make([]TestType, 0, len(AllTests))
	for _, raw := range strings.Split(s, ",") {
		tt := ParseTestType(raw)
		if tt == TestTypeUnknown || tt == TestTypeServer {
			return nil, fmt.Errorf("invalid test type: %q", raw)
		}
		if seen[tt] {
			continue
		}
		seen[tt] = true
		out = append(out, tt)
	}
	return out, nil
}
