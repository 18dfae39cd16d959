package tools

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"weavelab.xyz/nettest/nettest"
)

// Tools holds the resolved server address and the socket options applied
// to every dialed connection.
type Tools struct {
	IPVersion nettest.IPVersion

	RemoteIP       net.IP
	RemotePort     uint16
	RemoteHostname string
	RemoteRaw      string

	TTL uint8
	ToS uint8
}

// NewTools resolves remote, which is a hostname or IP literal optionally
// followed by a port. Without one, port is used. ipVersion restricts which
// addresses a DNS lookup may return.
func NewTools(ipVersion nettest.IPVersion, remote string, port uint16, ttl, tos uint8) (*Tools, error) {
	hostname, rPort, err := splitRemote(remote, port)
	if err != nil {
		return nil, fmt.Errorf("error parsing server host and port (%s): %w", remote, err)
	}
	ip, err := lookupIP(ipVersion, hostname)
	if err != nil {
		return nil, fmt.Errorf("error resolving server (%s): %w", remote, err)
	}

	version := nettest.IPv6
	if ip.To4() != nil {
		version = nettest.IPv4
	}
	return &Tools{
		IPVersion:      version,
		RemoteIP:       ip,
		RemotePort:     rPort,
		RemoteHostname: hostname,
		RemoteRaw:      remote,
		TTL:            ttl,
		ToS:            tos,
	}, nil
}

// DialAddr is the host:port the tools connect to.
func (t *Tools) DialAddr() string {
	return net.JoinHostPort(t.RemoteIP.String(), strconv.Itoa(int(t.RemotePort)))
}

func splitRemote(remote string, port uint16) (string, uint16, error) {
	if remote == "" {
		return "", 0, fmt.Errorf("empty server address: %w", os.ErrInvalid)
	}
	if ip := net.ParseIP(remote); ip != nil {
		return remote, port, nil
	}
	host, p, err := net.SplitHostPort(remote)
	if err != nil {
		// no port present
		return remote, port, nil
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse port: %w", err)
	}
	return host, uint16(n), nil
}

func lookupIP(version nettest.IPVersion, remote string) (net.IP, error) {
	if ip := net.ParseIP(remote); ip != nil {
		if !versionAllows(version, ip) {
			return nil, fmt.Errorf("%s is not an %s address: %w", remote, version, os.ErrInvalid)
		}
		return ip, nil
	}

	ips, err := net.LookupIP(remote)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup IP address for the server: %v. Error: %w", remote, err)
	}
	for _, ip := range ips {
		if versionAllows(version, ip) {
			return ip, nil
		}
	}
	return nil, fmt.Errorf("unable to resolve the given server: %v to an %s address: %w", remote, version, os.ErrNotExist)
}

func versionAllows(version nettest.IPVersion, ip net.IP) bool {
	switch version {
	case nettest.IPv4:
		return ip.To4() != nil
	case nettest.IPv6:
		return ip.To4() == nil && ip.To16() != nil
	}
	return true
}
