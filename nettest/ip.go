package nettest

type IPVersion int

const (
	IPAny IPVersion = -1
	IPv4  IPVersion = 4
	IPv6  IPVersion = 6
)

func (v IPVersion) String() string {
	switch v {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return "IPAny"
}

func TCPVersion(v IPVersion) string {
	if v == IPv4 {
		return "tcp4"
	} else if v == IPv6 {
		return "tcp6"
	}
	return "tcp"
}
