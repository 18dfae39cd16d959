package client

import (
	"fmt"
	"io"
	"strings"

	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/session"
)

// UI prints one progress line per test.
type UI struct {
	w                 io.Writer
	ShowLatencyDetail bool
}

func NewUI(w io.Writer, latencyDetail bool) *UI {
	return &UI{
		w:                 w,
		ShowLatencyDetail: latencyDetail,
	}
}

func (u *UI) Start(tt nettest.TestType) {
	fmt.Fprintf(u.w, "Testing %s... ", strings.ToLower(tt.String()))
}

func (u *UI) Done(tt nettest.TestType, result session.TestResult) {
	if !result.Success {
		fmt.Fprintln(u.w, "failed")
		return
	}
	switch tt {
	case nettest.TestTypePing:
		u.PrintLatency(result)
	case nettest.TestTypeDownload, nettest.TestTypeUpload:
		u.PrintBandwidth(result)
	default:
		u.printUnknownResultType()
	}
}
