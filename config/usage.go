package config

import (
	"fmt"
	"io"
	"os"
)

// Usage prints the command-line usage text
func Usage() {
	usage(os.Stdout)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "nettest measures latency and throughput between a client and a server.")
	fmt.Fprintln(w, "Every short flag may also be given in the long form shown in brackets.")

	fmt.Fprintln(w, "\nCommon Parameters")
	fmt.Fprintln(w, "================================================================================")
	printFlagUsage(w, "h [help]", "", "Help")
	printFlagUsage(w, "p [port]", "<number>", "Port the server listens on and the client connects to.",
		fmt.Sprintf("Default: %d", DefaultPort))
	printFlagUsage(w, "no", "", "Disable logging to file. Logging to file is enabled by default.")
	printFlagUsage(w, "o", "<filename>", "Name of log file. By default, following file names are used:",
		"Server mode: 'nettests.log'",
		"Client mode: 'nettestc.log'")
	printFlagUsage(w, "debug", "", "Enable debug information in logging output.")
	printFlagUsage(w, "4", "", "Use only IP v4 version")
	printFlagUsage(w, "6", "", "Use only IP v6 version")
	printFlagUsage(w, "config", "<filename>", "YAML file of flag defaults, keyed by flag name.",
		"Flags given on the command line take precedence.")

	fmt.Fprintln(w, "\nMode: Server")
	fmt.Fprintln(w, "================================================================================")
	fmt.Fprintln(w, "In this mode, nettest runs as a server, allowing multiple clients to run")
	fmt.Fprintln(w, "tests against it.")
	printFlagUsage(w, "s [server]", "", "Run in server mode.")
	printFlagUsage(w, "b [bind]", "<address>", "Bind to specified local IP address.",
		"Default: "+DefaultBind)
	printFlagUsage(w, "m [mac]", "", "Compute a keyed digest of every received chunk.")
	printFlagUsage(w, "idle", "<duration>", "Close connections that send nothing for this long.",
		"Default: 0 - Never")
	printFlagUsage(w, "ui", "", "Show output in text UI.")
	printFlagUsage(w, "metrics", "<address>", "Serve Prometheus metrics on <address>/metrics.",
		"Default: <empty> - Disabled")

	fmt.Fprintln(w, "\nMode: Client")
	fmt.Fprintln(w, "================================================================================")
	fmt.Fprintln(w, "In this mode, nettest connects to a nettest server and runs tests in order")
	fmt.Fprintln(w, "over a single connection.")
	printFlagUsage(w, "c [client]", "<server>", "Run in client mode and connect to <server>.",
		"Server is specified using name, FQDN or IP address.")
	printFlagUsage(w, "t [time]", "<seconds>", "Duration of the download and upload tests.",
		fmt.Sprintf("Default: %d", DefaultSeconds))
	printFlagUsage(w, "i", "<number>", "Number of ping round trips.",
		fmt.Sprintf("Default: %d", DefaultRttCount))
	printFlagUsage(w, "tests", "<list>", "Comma separated tests to run (\"ping\", \"download\", \"upload\").",
		"Default: ping,download,upload")
	printFlagUsage(w, "rate", "<rate>",
		"Upload only Bits per second (format: <num>[K | M | G])",
		"Default: 0 - Unlimited",
		"Examples: 100 (100bits/s), 1M (1Mbits/s).")
	printFlagUsage(w, "tos", "<number>",
		"Specifies 8-bit value to use in IPv4 TOS field or IPv6 Traffic Class field.")
	printFlagUsage(w, "ttl", "<number>", "Specifies the IPv4 TTL or IPv6 hop limit.")
}

func printFlagUsage(w io.Writer, flag, info string, helptext ...string) {
	fmt.Fprintf(w, "\t-%s %s\n", flag, info)
	for _, help := range helptext {
		fmt.Fprintf(w, "\t\t%s\n", help)
	}
}
