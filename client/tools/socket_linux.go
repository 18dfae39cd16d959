//go:build linux

package tools

import (
	"fmt"

	"golang.org/x/sys/unix"

	"weavelab.xyz/nettest/nettest"
)

// sockTTL reports whether TTL is set before connect.
const sockTTL = true

func setSockTTL(fd uintptr, ttl int, ipVersion nettest.IPVersion) error {
	if ttl == 0 {
		return nil
	}
	if ipVersion == nettest.IPv4 {
		return setSockOptInt(fd, unix.IPPROTO_IP, unix.IP_TTL, ttl)
	}
	return setSockOptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_UNICAST_HOPS, ttl)
}

func setSockOptInt(fd uintptr, level, opt, val int) error {
	err := unix.SetsockoptInt(int(fd), level, opt, val)
	if err != nil {
		return fmt.Errorf("failed to set socket option (%v) to value (%v): %w", opt, val, err)
	}
	return nil
}
