package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ModePassenger = "passenger-service"
	ModeDriver    = "driver-service"
	ModeAdmin     = "admin-service"
)

// isKnownMode checks if the provided mode name is known.
func isKnownMode(s string) (string, bool) {
	switch s {
	case ModePassenger, "passenger", "p":
		return ModePassenger, true
	case ModeDriver, "driver", "d":
		return ModeDriver, true
	case ModeAdmin, "admin", "a":
		return ModeAdmin, true
	default:
		return "", false
	}
}

// ParseMode supports:
//
//	--mode=<value>
//	<value> (subcommand shorthand), e.g., `passenger-service --max-concurrent=150`
func ParseMode(args []string) (string, []string, error) {
	var mode string
	var out []string

	for i := range args {
		arg := args[i]
		if after, ok := strings.CutPrefix(arg, "--mode="); ok {
			mode = after
			continue
		}

		if mode == "" {
			if m, ok := isKnownMode(arg); ok {
				mode = m
				continue
			}
		}
		out = append(out, arg)
	}

	if mode == "" {
		return "", out, errors.New("no mode specified: use --mode=<service>")
	}

	if m, ok := isKnownMode(mode); ok {
		mode = m
	}

	return mode, out, nil
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, "\033[36m") // cyan

	fmt.Fprintln(w, `Usage:
  ./charide --mode=<service> [flags]

Services (modes):
  passenger-service            Passenger portal API: booking, payment, history
  driver-service               Driver portal API: requests feed, accept, progress
  admin-service                Admin portal API: moderation, stats, inbox

Examples:
  ./charide --mode=passenger-service --max-concurrent=150
  ./charide --mode=driver-service --max-concurrent=200
  ./charide --mode=admin-service --max-concurrent=50`)

	fmt.Fprint(w, "\033[0m") // reset
}

// AttachUsage wires a concise per-mode usage to a FlagSet.
func AttachUsage(fs *flag.FlagSet, mode string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ./charide --mode=%s [flags]\n", mode)
		fs.PrintDefaults()
	}
}
