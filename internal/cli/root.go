// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogama/fetcher"
	"github.com/spf13/cobra"
)

type options struct {
	configPath      string
	baseURL         string
	timeout         time.Duration
	headers         []string
	data            string
	query           string
	count           int
	rate            float64
	requestIDHeader string
	http2           bool
	noColor         bool
	verbose         bool
}

// NewRootCmd creates the fetch command.
func NewRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "fetch [flags] METHOD URL",
		Short: "Send an HTTP request with a timeout and classify the outcome",
		Long: `fetch sends one HTTP request, or several with --count, and reports
whether it succeeded or failed by response, timeout, abort or network.

The response body is written to standard output. Progress and errors
go to standard error.

Examples:
  # Simple GET with a 2 second timeout
  fetch -t 2s GET https://example.com/api/items

  # POST JSON and extract a field from the response
  fetch -H 'Content-Type: application/json' -d '{"name":"x"}' \
    --query id POST https://example.com/api/items

  # Fire 100 calls at 20 per second and print latency percentiles
  fetch -n 100 --rate 20 GET /health --base-url https://example.com`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "Config file (default "+DefaultConfigFile+" if present)")
	flags.StringVar(&o.baseURL, "base-url", "", "Base URL prepended to URL")
	flags.DurationVarP(&o.timeout, "timeout", "t", 0, "Timeout of each call (default 11s)")
	flags.StringArrayVarP(&o.headers, "header", "H", nil, "Request header as 'Name: value' (repeatable)")
	flags.StringVarP(&o.data, "data", "d", "", "Request body, or @file to read it from a file (@- for stdin)")
	flags.StringVar(&o.query, "query", "", "gjson path to extract from a JSON response body")
	flags.IntVarP(&o.count, "count", "n", 1, "Number of calls to send")
	flags.Float64Var(&o.rate, "rate", 0, "Maximum calls per second (0 for no limit)")
	flags.StringVar(&o.requestIDHeader, "request-id-header", "", "Header to carry a fresh UUID on each call")
	flags.BoolVar(&o.http2, "http2", false, "Enable HTTP/2 on the transport")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Trace request and response headers")

	return cmd
}

// Execute runs the fetch command with the process arguments and returns
// the exit code. An interrupt signal aborts the call in flight.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !fetcher.IsException(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		if ExitCode(err) == ExitUsage {
			fmt.Fprintln(cmd.ErrOrStderr(), "Run 'fetch --help' for usage.")
		}
	}
	return ExitCode(err)
}

func parseMethod(s string) fetcher.Method {
	return fetcher.Method(strings.ToUpper(s))
}
