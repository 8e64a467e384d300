// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/gogama/fetcher"
)

const maxLatencyUs = 60_000_000

// stats aggregates the outcomes and latencies of repeated calls. It is
// only used from the goroutine running the command.
type stats struct {
	// Latencies in microseconds, 1us to 60s, 3 significant digits.
	hist     *hdrhistogram.Histogram
	ok       int
	failures map[fetcher.Reason]int
}

func newStats() *stats {
	return &stats{
		hist:     hdrhistogram.New(1, maxLatencyUs, 3),
		failures: make(map[fetcher.Reason]int),
	}
}

func (s *stats) record(d time.Duration, err error) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}
	_ = s.hist.RecordValue(us)

	if err == nil {
		s.ok++
	} else if ex, ok := fetcher.AsException(err); ok {
		s.failures[ex.Reason]++
	} else {
		s.failures[fetcher.ReasonNetwork]++
	}
}

func (s *stats) total() int {
	return int(s.hist.TotalCount())
}

func (s *stats) percentile(q float64) time.Duration {
	return time.Duration(s.hist.ValueAtQuantile(q)) * time.Microsecond
}

func (s *stats) min() time.Duration {
	return time.Duration(s.hist.Min()) * time.Microsecond
}

func (s *stats) max() time.Duration {
	return time.Duration(s.hist.Max()) * time.Microsecond
}
