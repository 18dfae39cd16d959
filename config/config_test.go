package config

import (
	"bytes"
	"flag"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weavelab.xyz/nettest/nettest"
)

func parse(args ...string) error {
	fs := flag.NewFlagSet("nettest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return Parse(fs, args)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nettest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestServerDefaults(t *testing.T) {
	require.NoError(t, parse("-s"))
	require.True(t, IsServer)
	require.Equal(t, uint16(DefaultPort), Port)
	require.True(t, LocalIP.Equal(net.IPv4zero))
	require.Equal(t, nettest.IPAny, IPVersion)
	require.False(t, Integrity)
	require.Zero(t, IdleTimeout)
	require.Equal(t, "nettests.log", OutputFile)
}

func TestServerLongFlags(t *testing.T) {
	require.NoError(t, parse("-server", "-port", "6000", "-bind", "127.0.0.1", "-mac", "-idle", "30s"))
	require.Equal(t, uint16(6000), Port)
	require.True(t, LocalIP.Equal(net.ParseIP("127.0.0.1")))
	require.True(t, Integrity)
	require.Equal(t, 30*time.Second, IdleTimeout)
}

func TestServerIPv6DefaultBind(t *testing.T) {
	require.NoError(t, parse("-s", "-6"))
	require.Equal(t, nettest.IPv6, IPVersion)
	require.True(t, LocalIP.Equal(net.IPv6unspecified))

	require.Error(t, parse("-s", "-4", "-b", "::1"))
	require.Error(t, parse("-s", "-b", "nowhere"))
}

func TestServerRejectsClientFlags(t *testing.T) {
	err := parse("-s", "-t", "5", "-tests", "ping")
	require.ErrorContains(t, err, "-t")
	require.ErrorContains(t, err, "-tests")

	// long form of a client flag is caught under its short name
	require.ErrorContains(t, parse("-s", "-time", "5"), "-t")
}

func TestClientDefaults(t *testing.T) {
	require.NoError(t, parse("-c", "example.net"))
	require.False(t, IsServer)
	require.Equal(t, "example.net", ClientDest)
	require.Equal(t, 10*time.Second, Duration)
	require.Equal(t, nettest.AllTests, Tests)
	require.Equal(t, DefaultRttCount, Iterations)
	require.Zero(t, BandwidthRate)
	require.Equal(t, "nettestc.log", OutputFile)

	p := ClientParams()
	require.Equal(t, uint32(DefaultRttCount), p.RttCount)
	require.Equal(t, 10*time.Second, p.Duration)
}

func TestClientFlags(t *testing.T) {
	require.NoError(t, parse("-client", "10.0.0.1", "-time", "3", "-tests", "upload,ping", "-rate", "100M", "-tos", "16", "-ttl", "32", "-i", "5"))
	require.Equal(t, 3*time.Second, Duration)
	require.Equal(t, []nettest.TestType{nettest.TestTypeUpload, nettest.TestTypePing}, Tests)
	require.Equal(t, uint64(100*1000*1000), BandwidthRate)

	p := ClientParams()
	require.Equal(t, uint8(16), p.ToS)
	require.Equal(t, uint8(32), p.TTL)
	require.Equal(t, uint32(5), p.RttCount)
}

func TestClientValidation(t *testing.T) {
	require.Error(t, parse())
	require.Error(t, parse("-c", "h", "-t", "0"))
	require.Error(t, parse("-c", "h", "-tests", "traceroute"))
	require.Error(t, parse("-c", "h", "-rate", "fast"))
	require.Error(t, parse("-c", "h", "-tos", "256"))
	require.Error(t, parse("-c", "h", "-i", "0"))
	require.Error(t, parse("-c", "h", "-p", "70000"))
	require.Error(t, parse("-c", "h", "extra"))
	require.ErrorContains(t, parse("-c", "h", "-ui"), "-ui")
	require.ErrorContains(t, parse("-c", "h", "-mac"), "-m")
}

func TestHelp(t *testing.T) {
	require.ErrorIs(t, parse("-h"), flag.ErrHelp)
	require.ErrorIs(t, parse("-help"), flag.ErrHelp)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, "port: 6000\ntests: [ping, download]\ntime: 2\ndebug: true\n")

	require.NoError(t, parse("-c", "h", "-config", path, "-t", "4"))
	require.Equal(t, uint16(6000), Port)
	require.Equal(t, []nettest.TestType{nettest.TestTypePing, nettest.TestTypeDownload}, Tests)
	require.True(t, Debug)
	// the command line wins over the file
	require.Equal(t, 4*time.Second, Duration)
}

func TestConfigFileSharedBetweenModes(t *testing.T) {
	path := writeConfig(t, "idle: 1m\ntests: ping\nport: 7000\n")

	require.NoError(t, parse("-s", "-config", path))
	require.Equal(t, time.Minute, IdleTimeout)
	require.Equal(t, uint16(7000), Port)
}

func TestConfigFileErrors(t *testing.T) {
	require.Error(t, parse("-c", "h", "-config", filepath.Join(t.TempDir(), "missing.yaml")))
	require.ErrorContains(t, parse("-c", "h", "-config", writeConfig(t, "colour: blue\n")), "colour")
	require.Error(t, parse("-c", "h", "-config", writeConfig(t, "port: [\n")))
	require.Error(t, parse("-c", "h", "-config", writeConfig(t, "port:\n  nested: 1\n")))
	require.Error(t, parse("-c", "h", "-config", writeConfig(t, "idle: soon\n")))
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)
	for _, f := range []string{"-s [server]", "-c [client]", "-m [mac]", "-t [time]", "-p [port]", "-b [bind]", "-h [help]"} {
		require.Contains(t, buf.String(), f)
	}
}
