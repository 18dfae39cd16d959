package client

import (
	"fmt"

	"weavelab.xyz/nettest/session"
	"weavelab.xyz/nettest/session/payloads"
	"weavelab.xyz/nettest/ui"
)

func (u *UI) PrintLatency(result session.TestResult) {
	switch r := result.Body.(type) {
	case payloads.LatencyPayload:
		fmt.Fprintf(u.w, "done, %s\n", ui.FormatMillis(r.AvgMillis()))
		if u.ShowLatencyDetail {
			u.printLatencyDivider()
			u.printLatencyHeader()
			fmt.Fprintf(u.w, "%s\n", r)
			u.printLatencyDivider()
		}
	default:
		u.printUnknownResultType()
	}
}

func (u *UI) printLatencyDivider() {
	fmt.Fprintln(u.w, "---------------------------------------------------------------------------------------------------")
}

func (u *UI) printLatencyHeader() {
	fmt.Fprintf(u.w, "%9s %9s %9s %9s %9s %9s %9s %9s %9s %9s\n", "Avg", "Min", "50%", "90%", "95%", "99%", "99.9%", "99.99%", "Max", "Jitter")
}
