package nettest

import "time"

type ClientParams struct {
	Duration time.Duration
	RttCount uint32
	BwRate   uint64 // upload cap in bits/s, 0 means unlimited
	ToS      uint8
	TTL      uint8
}
