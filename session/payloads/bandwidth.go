package payloads

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"weavelab.xyz/nettest/ui"
)

// BandwidthPayload is the outcome of one download or upload test.
type BandwidthPayload struct {
	Bytes         uint64
	Elapsed       time.Duration
	BitsPerSecond float64
}

func NewBandwidth(bytes uint64, elapsed time.Duration) BandwidthPayload {
	return BandwidthPayload{
		Bytes:         bytes,
		Elapsed:       elapsed,
		BitsPerSecond: Rate(bytes, elapsed.Seconds()),
	}
}

// Rate is bytes*8/seconds with no rounding.
func Rate(bytes uint64, seconds float64) float64 {
	return float64(bytes) * 8 / seconds
}

func (p BandwidthPayload) String() string {
	return fmt.Sprintf("%s in %s (%s)", ui.FormatSpeed(p.BitsPerSecond), ui.DurationToString(p.Elapsed), humanize.Bytes(p.Bytes))
}
