// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/gogama/fetcher"
	"github.com/gogama/fetcher/request"
)

// A reporter writes human readable call outcomes to the error stream,
// keeping the output stream for response bodies.
type reporter struct {
	w      io.Writer
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
}

func newReporter(w io.Writer, noColor bool) *reporter {
	color.NoColor = noColor
	return &reporter{
		w:      w,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}
}

// handlers returns the event handlers which trace each call when the
// verbose flag is set.
func (r *reporter) handlers() *fetcher.HandlerGroup {
	g := &fetcher.HandlerGroup{}
	g.PushBack(fetcher.BeforeSend, fetcher.HandlerFunc(r.beforeSend))
	g.PushBack(fetcher.AfterTimeout, fetcher.HandlerFunc(r.afterCancel))
	g.PushBack(fetcher.AfterAbort, fetcher.HandlerFunc(r.afterCancel))
	g.PushBack(fetcher.AfterSend, fetcher.HandlerFunc(r.afterSend))
	return g
}

func (r *reporter) beforeSend(_ fetcher.Event, e *request.Execution) {
	req := e.Request
	_, _ = r.cyan.Fprintf(r.w, "> %s %s\n", req.Method, req.URL)
	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range req.Header[k] {
			_, _ = fmt.Fprintf(r.w, "> %s: %s\n", k, v)
		}
	}
	_, _ = fmt.Fprintf(r.w, "> (timeout %s)\n", e.Timeout)
}

func (r *reporter) afterCancel(evt fetcher.Event, e *request.Execution) {
	what := "aborted"
	if evt == fetcher.AfterTimeout {
		what = "timed out"
	}
	_, _ = r.yellow.Fprintf(r.w, "! %s after %s\n", what, time.Since(e.Start).Round(time.Millisecond))
}

func (r *reporter) afterSend(_ fetcher.Event, e *request.Execution) {
	if e.Response == nil {
		return
	}
	_, _ = r.cyan.Fprintf(r.w, "< %s %s\n", e.Response.Proto, e.Response.Status)
	keys := make([]string, 0, len(e.Response.Header))
	for k := range e.Response.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range e.Response.Header[k] {
			_, _ = fmt.Fprintf(r.w, "< %s: %s\n", k, v)
		}
	}
}

// result reports the outcome of call number n, which took d.
func (r *reporter) result(n int, d time.Duration, resp *http.Response, err error) {
	d = d.Round(time.Microsecond)
	if err == nil {
		_, _ = fmt.Fprintf(r.w, "%s #%d %s in %s\n", r.green.Sprint("✓"), n, resp.Status, d)
		return
	}

	ex, ok := fetcher.AsException(err)
	if !ok {
		_, _ = fmt.Fprintf(r.w, "%s #%d %v\n", r.red.Sprint("✗"), n, err)
		return
	}

	switch ex.Reason {
	case fetcher.ReasonResponse:
		_, _ = fmt.Fprintf(r.w, "%s #%d %s %s in %s\n", r.red.Sprint("✗"), n, r.bold.Sprint(ex.Reason), ex.Response.Status, d)
	case fetcher.ReasonTimeout, fetcher.ReasonAbort:
		_, _ = fmt.Fprintf(r.w, "%s #%d %s after %s\n", r.yellow.Sprint("✗"), n, r.bold.Sprint(ex.Reason), d)
	default:
		_, _ = fmt.Fprintf(r.w, "%s #%d %s %v (transient: %s)\n", r.red.Sprint("✗"), n, r.bold.Sprint(ex.Reason), ex.Err, ex.Transient())
	}
}

// summary prints the aggregate of several calls.
func (r *reporter) summary(s *stats) {
	_, _ = r.bold.Fprintln(r.w, "\nSummary")
	_, _ = fmt.Fprintf(r.w, "  calls:    %d\n", s.total())
	_, _ = fmt.Fprintf(r.w, "  ok:       %s\n", r.green.Sprint(s.ok))
	for _, reason := range fetcher.Reasons() {
		if n := s.failures[reason]; n > 0 {
			_, _ = fmt.Fprintf(r.w, "  %-9s %s\n", reason.String()+":", r.red.Sprint(n))
		}
	}
	if s.total() == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.w, "  latency:  min %s  p50 %s  p90 %s  p99 %s  max %s\n",
		s.min(), s.percentile(50), s.percentile(90), s.percentile(99), s.max())
}
