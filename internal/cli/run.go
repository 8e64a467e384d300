// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gogama/fetcher"
	"github.com/gogama/fetcher/request"
	"github.com/gogama/fetcher/timeout"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// settings are the options after the config file and the flags have
// been combined.
type settings struct {
	baseURL         string
	timeout         time.Duration
	header          http.Header
	rate            float64
	requestIDHeader string
	http2           bool
	noColor         bool
	verbose         bool
}

func resolve(cmd *cobra.Command, o *options) (*settings, error) {
	fc, err := LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	s := &settings{
		baseURL:         fc.BaseURL,
		header:          fc.Header(),
		rate:            fc.Rate,
		requestIDHeader: fc.RequestIDHeader,
		http2:           getBool(fc.HTTP2, false),
		noColor:         getBool(fc.NoColor, false),
		verbose:         getBool(fc.Verbose, false),
	}
	if s.timeout, err = fc.TimeoutDuration(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		s.baseURL = o.baseURL
	}
	if flags.Changed("timeout") {
		if o.timeout <= 0 {
			return nil, fmt.Errorf("invalid timeout %s: must be positive", o.timeout)
		}
		s.timeout = o.timeout
	}
	if flags.Changed("rate") {
		s.rate = o.rate
	}
	if s.rate < 0 {
		return nil, fmt.Errorf("invalid rate %v: must not be negative", s.rate)
	}
	if flags.Changed("request-id-header") {
		s.requestIDHeader = o.requestIDHeader
	}
	if flags.Changed("http2") {
		s.http2 = o.http2
	}
	if flags.Changed("no-color") {
		s.noColor = o.noColor
	}
	if flags.Changed("verbose") {
		s.verbose = o.verbose
	}
	if o.count < 1 {
		return nil, fmt.Errorf("invalid count %d: must be at least 1", o.count)
	}

	return s, nil
}

func newHTTPClient(s *settings) (*http.Client, error) {
	// A fresh transport speaks HTTP/1.1 only, since it has a custom
	// dialer, until HTTP/2 is configured on it.
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if s.http2 {
		if err := http2.ConfigureTransport(tr); err != nil {
			return nil, fmt.Errorf("failed to enable HTTP/2: %w", err)
		}
	}
	return &http.Client{Transport: tr}, nil
}

func newFetcher(s *settings, r *reporter) (*fetcher.Fetcher, error) {
	client, err := newHTTPClient(s)
	if err != nil {
		return nil, err
	}

	config := fetcher.Config{
		BaseURL:         s.baseURL,
		HTTPDoer:        client,
		RequestIDHeader: s.requestIDHeader,
		Options:         request.Options{Header: s.header},
	}
	if s.timeout > 0 {
		config.Timeout = timeout.Fixed(s.timeout)
	}
	if s.rate > 0 {
		config.Limiter = rate.NewLimiter(rate.Limit(s.rate), 1)
	}
	if s.verbose {
		config.Handlers = r.handlers()
	}

	return fetcher.New(config), nil
}

func run(cmd *cobra.Command, args []string, o *options) error {
	s, err := resolve(cmd, o)
	if err != nil {
		return err
	}

	call := &fetcher.CallOptions{Options: request.Options{Header: make(http.Header)}}
	if err = ParseHeaders(call.Header, o.headers); err != nil {
		return err
	}
	if o.data != "" {
		if call.Body, err = ReadData(o.data, cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read request body: %w", err)
		}
	}

	r := newReporter(cmd.ErrOrStderr(), s.noColor)
	f, err := newFetcher(s, r)
	if err != nil {
		return err
	}
	defer f.CloseIdleConnections()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	method := parseMethod(args[0])
	st := newStats()
	var last error
	for n := 1; n <= o.count; n++ {
		start := time.Now()
		resp, err := f.Do(ctx, method, args[1], call)
		d := time.Since(start)
		st.record(d, err)
		r.result(n, d, resp, err)

		last = err
		if o.count == 1 {
			if werr := writeBody(cmd.OutOrStdout(), resp, err, o.query); werr != nil {
				return werr
			}
		} else {
			discardBody(resp, err)
		}

		if ex, ok := fetcher.AsException(err); ok && ex.Reason == fetcher.ReasonAbort {
			break
		}
	}

	if o.count > 1 {
		r.summary(st)
	}
	return last
}

// writeBody writes the body of a successful response, or of a response
// failure, to w. Other failures have no body.
func writeBody(w io.Writer, resp *http.Response, err error, query string) error {
	if err != nil {
		ex, ok := fetcher.AsException(err)
		if !ok || ex.Response == nil {
			return nil
		}
		resp = ex.Response
	}

	if query != "" {
		result, qerr := fetcher.GetJSON(resp, query)
		if qerr != nil {
			return &exitError{code: ExitNetwork, err: qerr}
		}
		if !result.Exists() {
			return &exitError{code: ExitResponse, err: fmt.Errorf("query %q matched nothing", query)}
		}
		_, _ = fmt.Fprintln(w, result.String())
		return nil
	}

	if resp.Body == nil {
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if _, cerr := io.Copy(w, resp.Body); cerr != nil && !errors.Is(cerr, context.Canceled) {
		return &exitError{code: ExitNetwork, err: fmt.Errorf("failed to read response body: %w", cerr)}
	}
	return nil
}

func discardBody(resp *http.Response, err error) {
	if ex, ok := fetcher.AsException(err); ok {
		resp = ex.Response
	}
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
