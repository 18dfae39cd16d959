package tcp

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weavelab.xyz/nettest/protocol"
	"weavelab.xyz/nettest/session/payloads"
)

// Download asks the server to stream for d and counts what arrives until the
// end marker.
func (t *Tests) Download(d time.Duration) (payloads.BandwidthPayload, error) {
	if err := protocol.WriteRequest(t.conn, d); err != nil {
		return payloads.BandwidthPayload{}, err
	}
	start := time.Now()

	var bytes uint64
	for {
		op, err := protocol.ReadOpcode(t.r)
		if err != nil {
			return payloads.BandwidthPayload{}, errors.Wrap(err, "reading opcode")
		}
		switch op {
		case protocol.OpData:
			if err := protocol.ReadChunk(t.r, t.chunk); err != nil {
				return payloads.BandwidthPayload{}, err
			}
			bytes += protocol.BufferSize
		case protocol.OpEnd:
			return payloads.NewBandwidth(bytes, time.Since(start)), nil
		}
	}
}

// Upload sends data frames for d, then an end marker followed by a ping.
// The server handles opcodes in order, so the echo arrives only after every
// chunk has been consumed.
func (t *Tests) Upload(ctx context.Context, d time.Duration) (payloads.BandwidthPayload, error) {
	var bytes uint64
	start := time.Now()
	for {
		if t.limiter != nil {
			if err := t.limiter.WaitN(ctx, protocol.FrameSize); err != nil {
				return payloads.BandwidthPayload{}, errors.Wrap(err, "waiting for send budget")
			}
		}
		if err := protocol.WriteFrame(t.conn, t.frame); err != nil {
			return payloads.BandwidthPayload{}, err
		}
		bytes += protocol.BufferSize
		if time.Since(start) >= d {
			break
		}
	}

	if err := protocol.WriteOpcode(t.conn, protocol.OpEnd); err != nil {
		return payloads.BandwidthPayload{}, err
	}
	if err := protocol.WriteOpcode(t.conn, protocol.OpPing); err != nil {
		return payloads.BandwidthPayload{}, err
	}
	if err := t.expectPing(); err != nil {
		return payloads.BandwidthPayload{}, err
	}
	return payloads.NewBandwidth(bytes, time.Since(start)), nil
}
