package server

import (
	"strconv"

	"weavelab.xyz/nettest/session"
	"weavelab.xyz/nettest/ui"
)

var resultHeader = []string{"RemoteAddress", "Rx Bits/s", "Tx Bits/s", "Pings", "Requests"}

// connRows snapshots every live connection as display rows and resets the
// per interval counters.
func connRows(seconds uint64) (rows [][]string, sumIn, sumOut uint64) {
	for _, c := range session.GetConns() {
		in, out := c.SwapInterval()
		in /= seconds
		out /= seconds
		sumIn += in
		sumOut += out
		rows = append(rows, []string{
			ui.TruncateStringFromStart(c.RemoteAddr, 21),
			ui.BytesToRate(in),
			ui.BytesToRate(out),
			strconv.FormatUint(c.Pings(), 10),
			strconv.FormatUint(c.Requests(), 10),
		})
	}
	if len(rows) > 1 {
		rows = append(rows, []string{"[SUM]", ui.BytesToRate(sumIn), ui.BytesToRate(sumOut), "", ""})
	}
	return rows, sumIn, sumOut
}
