package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/ui"
)

var Version = "UNKNOWN"

const (
	DefaultPort     = 5001
	DefaultBind     = "0.0.0.0"
	DefaultSeconds  = 10
	DefaultRttCount = 20
)

var (
	NoOutput   bool
	OutputFile string
	Debug      bool
	UseIPv4    bool
	UseIPv6    bool
	IPVersion  nettest.IPVersion
	Port       uint16
	IsServer   bool
	ConfigFile string

	// Server Only
	LocalIP     net.IP
	Integrity   bool
	IdleTimeout time.Duration
	ShowUI      bool
	MetricsAddr string

	// Client Only
	ClientDest    string
	Duration      time.Duration
	Iterations    int
	Tests         []nettest.TestType
	BandwidthRate uint64
	TOS           int
	TTL           int
)

// aliases pairs each short flag with its long form. Both names write the
// same variable.
var aliases = map[string]string{
	"s": "server",
	"c": "client",
	"m": "mac",
	"t": "time",
	"p": "port",
	"b": "bind",
}

// raw holds flag values that are validated after parsing.
type raw struct {
	port    int
	bind    string
	seconds int
	tests   string
	rate    string
}

// Init parses the process command line.
func Init() error {
	flag.Usage = func() { Usage() }
	return Parse(flag.CommandLine, os.Args[1:])
}

// Parse registers the flags on fs, parses args, applies defaults from the
// -config file to flags not given on the command line and validates the
// result.
func Parse(fs *flag.FlagSet, args []string) error {
	var r raw
	fs.BoolVar(&NoOutput, "no", false, "")
	fs.StringVar(&OutputFile, "o", "", "")
	fs.BoolVar(&Debug, "debug", false, "")
	fs.BoolVar(&UseIPv4, "4", false, "")
	fs.BoolVar(&UseIPv6, "6", false, "")
	fs.StringVar(&ConfigFile, "config", "", "")
	for _, name := range []string{"s", "server"} {
		fs.BoolVar(&IsServer, name, false, "")
	}
	for _, name := range []string{"p", "port"} {
		fs.IntVar(&r.port, name, DefaultPort, "")
	}

	for _, name := range []string{"b", "bind"} {
		fs.StringVar(&r.bind, name, DefaultBind, "")
	}
	for _, name := range []string{"m", "mac"} {
		fs.BoolVar(&Integrity, name, false, "")
	}
	fs.DurationVar(&IdleTimeout, "idle", 0, "")
	fs.BoolVar(&ShowUI, "ui", false, "")
	fs.StringVar(&MetricsAddr, "metrics", "", "")

	for _, name := range []string{"c", "client"} {
		fs.StringVar(&ClientDest, name, "", "")
	}
	for _, name := range []string{"t", "time"} {
		fs.IntVar(&r.seconds, name, DefaultSeconds, "")
	}
	fs.IntVar(&Iterations, "i", DefaultRttCount, "")
	fs.StringVar(&r.tests, "tests", "", "")
	fs.StringVar(&r.rate, "rate", "", "")
	fs.IntVar(&TOS, "tos", 0, "")
	fs.IntVar(&TTL, "ttl", 0, "")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	cmdline := setFlags(fs)
	if ConfigFile != "" {
		if err := applyFile(fs, ConfigFile, cmdline); err != nil {
			return err
		}
	}

	if r.port <= 0 || r.port > 65535 {
		return fmt.Errorf("invalid port: %d", r.port)
	}
	Port = uint16(r.port)

	if (!UseIPv4 && !UseIPv6) || (UseIPv4 && UseIPv6) {
		IPVersion = nettest.IPAny
	} else if UseIPv6 {
		IPVersion = nettest.IPv6
	} else {
		IPVersion = nettest.IPv4
	}

	if IPVersion == nettest.IPv6 && r.bind == DefaultBind {
		r.bind = "::"
	}
	LocalIP = net.ParseIP(r.bind)
	if LocalIP == nil || (IPVersion == nettest.IPv4 && LocalIP.To4() == nil) || (IPVersion == nettest.IPv6 && LocalIP.To4() != nil) {
		return fmt.Errorf("invalid ip address: %s", r.bind)
	}

	if OutputFile == "" {
		if IsServer {
			OutputFile = "nettests.log"
		} else {
			OutputFile = "nettestc.log"
		}
	}

	if IsServer {
		return validateServerArgs(cmdline)
	}

	if r.seconds <= 0 {
		return fmt.Errorf("invalid test duration: %ds", r.seconds)
	}
	Duration = time.Duration(r.seconds) * time.Second

	BandwidthRate = 0
	tests, err := nettest.ParseTestList(r.tests)
	if err != nil {
		return err
	}
	Tests = tests

	if r.rate != "" {
		BandwidthRate = ui.UnitToNumber(r.rate)
		if BandwidthRate == 0 {
			return fmt.Errorf("invalid rate: %s", r.rate)
		}
	}
	return validateClientArgs(cmdline)
}

// ClientParams collects the client settings.
func ClientParams() nettest.ClientParams {
	return nettest.ClientParams{
		Duration: Duration,
		RttCount: uint32(Iterations),
		BwRate:   BandwidthRate,
		ToS:      uint8(TOS),
		TTL:      uint8(TTL),
	}
}

// setFlags returns the names given on the command line, each alias pair
// counted under both names.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		for short, long := range aliases {
			if f.Name == short {
				set[long] = true
			} else if f.Name == long {
				set[short] = true
			}
		}
	})
	return set
}

func validateServerArgs(set map[string]bool) error {
	invalidFlags := make([]string, 0)
	for _, name := range []string{"c", "t", "i", "tests", "rate", "tos", "ttl"} {
		if set[name] {
			invalidFlags = append(invalidFlags, "-"+name)
		}
	}
	if len(invalidFlags) > 0 {
		return fmt.Errorf("invalid command, %s can only be used in client (\"-c\") mode", invalidFlags)
	}
	return nil
}

func validateClientArgs(set map[string]bool) error {
	if ClientDest == "" {
		return errors.New("invalid command, either \"-s\" or \"-c\" must be specified")
	}
	invalidFlags := make([]string, 0)
	for _, name := range []string{"m", "b", "idle", "ui", "metrics"} {
		if set[name] {
			invalidFlags = append(invalidFlags, "-"+name)
		}
	}
	if len(invalidFlags) > 0 {
		return fmt.Errorf("invalid command, %s can only be used in server (\"-s\") mode", invalidFlags)
	}
	if Iterations <= 0 {
		return fmt.Errorf("invalid ping sample count: %d", Iterations)
	}
	if TOS < 0 || TOS > 255 {
		return fmt.Errorf("invalid tos: %d", TOS)
	}
	if TTL < 0 || TTL > 255 {
		return fmt.Errorf("invalid ttl: %d", TTL)
	}
	return nil
}
