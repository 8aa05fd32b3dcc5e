// feedtui is a terminal dashboard that polls news, stocks, sports, feeds,
// GitHub, Spotify and YouTube on independent schedules and hosts a companion that
// levels up while you use it.
//
// Usage:
//
//	feedtui [flags]
//	feedtui companion [--format text|json|yaml]
//	feedtui version
//
// Flags:
//
//	--config string        Path to configuration file (default: search path)
//	--verbose              Enable debug logging
//	--metrics-addr string  Serve Prometheus metrics on this address
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Build metadata, set with -ldflags. The version itself is host.Version:
//
//	-X gitlab.com/tinyland/lab/feedtui/pkg/host.Version=1.2.3
var (
	commit = "dev"
	date   = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "feedtui: %v\n", err)
		os.Exit(1)
	}
}
