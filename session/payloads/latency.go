package payloads

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"weavelab.xyz/nettest/ui"
)

type LatencyPayload struct {
	Raw    []time.Duration
	Jitter time.Duration
	Avg    time.Duration
	Min    time.Duration
	Max    time.Duration
	P50    time.Duration
	P90    time.Duration
	P95    time.Duration
	P99    time.Duration
	P999   time.Duration
	P9999  time.Duration
}

func (p LatencyPayload) String() string {
	cols := []time.Duration{p.Avg, p.Min, p.P50, p.P90, p.P95, p.P99, p.P999, p.P9999, p.Max, p.Jitter}
	var b strings.Builder
	for i, d := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%9s", ui.DurationToString(d))
	}
	return b.String()
}

// AvgMillis is the mean round trip in fractional milliseconds.
func (p LatencyPayload) AvgMillis() float64 {
	return float64(p.Avg) / float64(time.Millisecond)
}

// NewLatencies summarises round trip samples in the order they were taken.
// Jitter is the mean absolute change between consecutive samples. The slice
// is sorted in place.
func NewLatencies(latencies []time.Duration) LatencyPayload {
	n := len(latencies)
	if n == 0 {
		return LatencyPayload{}
	}

	var sum, change time.Duration
	for i, d := range latencies {
		sum += d
		if i > 0 {
			change += absDuration(d - latencies[i-1])
		}
	}
	var jitter time.Duration
	if n > 1 {
		jitter = change / time.Duration(n-1)
	}

	slices.Sort(latencies)
	at := func(pct float64) time.Duration {
		return latencies[percentileIndex(n, pct)]
	}
	return LatencyPayload{
		Raw:    latencies,
		Jitter: jitter,
		Avg:    sum / time.Duration(n),
		Min:    latencies[0],
		Max:    latencies[n-1],
		P50:    at(50),
		P90:    at(90),
		P95:    at(95),
		P99:    at(99),
		P999:   at(99.9),
		P9999:  at(99.99),
	}
}

// percentileIndex is the nearest rank below pct, never negative.
func percentileIndex(count int, pct float64) int {
	return max(int(float64(count)*pct/100)-1, 0)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
