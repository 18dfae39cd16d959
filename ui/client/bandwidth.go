package client

import (
	"fmt"

	"weavelab.xyz/nettest/session"
	"weavelab.xyz/nettest/session/payloads"
	"weavelab.xyz/nettest/ui"
)

func (u *UI) PrintBandwidth(result session.TestResult) {
	switch r := result.Body.(type) {
	case payloads.BandwidthPayload:
		fmt.Fprintf(u.w, "done, %s\n", ui.FormatSpeed(r.BitsPerSecond))
	default:
		u.printUnknownResultType()
	}
}
