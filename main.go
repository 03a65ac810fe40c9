package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminservice "charide/cmd/admin_service"
	driverservice "charide/cmd/driver_service"
	passengerservice "charide/cmd/passenger_service"
	"charide/internal/cli"
)

func main() {
	// quick path for global help
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		cli.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	// parse mode and collect the remaining args for that mode
	mode, svcArgs, err := cli.ParseMode(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch mode {

	case cli.ModePassenger:
		maxConc := parseServiceFlags(cli.ModePassenger, svcArgs, 150)
		if err := passengerservice.Run(ctx, maxConc); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	case cli.ModeDriver:
		maxConc := parseServiceFlags(cli.ModeDriver, svcArgs, 200)
		if err := driverservice.Run(ctx, maxConc); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	case cli.ModeAdmin:
		maxConc := parseServiceFlags(cli.ModeAdmin, svcArgs, 50)
		if err := adminservice.Run(ctx, maxConc); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	// tiny delay to let deferred logs flush on very fast exits
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
}

// parseServiceFlags parses the per-mode flags and exits on bad input.
func parseServiceFlags(mode string, args []string, defaultMaxConc int) int {
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	maxConc := fs.Int("max-concurrent", defaultMaxConc, "Maximum number of concurrent HTTP requests to process")
	cli.AttachUsage(fs, mode)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	if *maxConc < 1 {
		fmt.Fprintln(os.Stderr, "Error: --max-concurrent must be >= 1")
		fs.Usage()
		os.Exit(2)
	}
	return *maxConc
}
