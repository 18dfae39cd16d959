package tcp

import (
	"time"

	"github.com/pkg/errors"

	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/session/payloads"
)

// Ping runs count echo exchanges and summarises their round trip times.
func (t *Tests) Ping(count uint32) (payloads.LatencyPayload, error) {
	if count == 0 {
		return payloads.LatencyPayload{}, errors.New("ping count must be positive")
	}
	latencies := make([]time.Duration, 0, count)
	for i := uint32(0); i < count; i++ {
		rtt, err := t.DoPing()
		if err != nil {
			return payloads.LatencyPayload{}, errors.Wrapf(err, "ping %d of %d", i+1, count)
		}
		latencies = append(latencies, rtt)
	}
	return payloads.NewLatencies(latencies), nil
}

// DoPing times a single echo.
func (t *Tests) DoPing() (time.Duration, error) {
	t0 := time.Now()
	if err := protocol.WriteOpcode(t.conn, protocol.OpPing); err != nil {
		return 0, err
	}
	if err := t.expectPing(); err != nil {
		return 0, err
	}
	return time.Since(t0), nil
}

func (t *Tests) expectPing() error {
	op, err := protocol.ReadOpcode(t.r)
	if err != nil {
		return errors.Wrap(err, "reading ping reply")
	}
	if op != protocol.OpPing {
		return errors.Wrapf(ErrUnexpectedReply, "got %s waiting for ping", op)
	}
	return nil
}
