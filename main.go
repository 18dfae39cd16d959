package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"weavelab.xyz/nettest/client"
	"weavelab.xyz/nettest/config"
	"weavelab.xyz/nettest/log"
	"weavelab.xyz/nettest/metric"
	"weavelab.xyz/nettest/nettest"
	"weavelab.xyz/nettest/server"
	"weavelab.xyz/nettest/server/tcp"
	cUi "weavelab.xyz/nettest/ui/client"
	serverUi "weavelab.xyz/nettest/ui/server"
)

func main() {
	err := config.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please use \"nettest -h\" for complete list of command line arguments.\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	ll := log.LevelInfo
	if config.Debug {
		ll = log.LevelDebug
	}

	var code int
	if config.IsServer {
		code = runServer(ctx, ll)
	} else {
		code = runClient(ctx, ll)
	}
	stop()
	os.Exit(code)
}

func runServer(ctx context.Context, ll log.LogLevel) int {
	term := serverUi.NewUI(config.ShowUI, "nettest server (Version: "+config.Version+")")
	defer term.Close()

	loggers := make([]nettest.Logger, 0, 2)
	if term.IsTui() {
		tl := log.NewTuiLogger(ll, term.Terminal)
		tl.Init(ctx)
		loggers = append(loggers, tl)
	} else {
		loggers = append(loggers, log.NewSTDOutLogger(ll))
	}
	if !config.NoOutput {
		jl, err := log.NewJSONLogger(config.OutputFile, ll)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer jl.Close()
		loggers = append(loggers, jl)
	}
	logger := log.NewAggregateLogger(loggers...)

	var m *metric.Metrics
	if config.MetricsAddr != "" {
		m = metric.New()
		go func() {
			if err := m.Serve(ctx, config.MetricsAddr); err != nil {
				logger.Error("Metrics endpoint on %s stopped: %v", config.MetricsAddr, err)
			}
		}()
	}

	cfg := server.Config{
		IPVersion:   config.IPVersion,
		LocalIP:     config.LocalIP,
		LocalPort:   int(config.Port),
		Integrity:   config.Integrity,
		IdleTimeout: config.IdleTimeout,
	}
	term.Display(ctx)
	if err := tcp.Serve(ctx, &cfg, tcp.NewHandler(logger, &cfg, m)); err != nil {
		term.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("Shutting down")
	return 0
}

func runClient(ctx context.Context, ll log.LogLevel) int {
	// progress lines own stdout, so only problems reach the terminal
	consoleLevel := log.LevelError
	if ll == log.LevelDebug {
		consoleLevel = log.LevelDebug
	}
	loggers := []nettest.Logger{log.NewConsoleLogger(os.Stderr, consoleLevel, false)}
	if !config.NoOutput {
		jl, err := log.NewJSONLogger(config.OutputFile, ll)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer jl.Close()
		loggers = append(loggers, jl)
	}
	logger := log.NewAggregateLogger(loggers...)

	term := cUi.NewUI(os.Stdout, config.Debug)
	c, err := client.NewClient(logger, term, config.ClientParams(), config.IPVersion, config.ClientDest, config.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during test: %v\n", err)
		return 1
	}
	if err := c.RunTests(ctx, config.Tests); err != nil {
		fmt.Fprintf(os.Stderr, "Error during test: %v\n", err)
		return 1
	}
	return 0
}
