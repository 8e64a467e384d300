// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gogama/fetcher"
	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	s := newStats()
	for i := 1; i <= 100; i++ {
		s.record(time.Duration(i)*time.Millisecond, nil)
	}
	s.record(time.Hour, &fetcher.Exception{Reason: fetcher.ReasonTimeout})
	s.record(0, &fetcher.Exception{Reason: fetcher.ReasonResponse})
	s.record(time.Millisecond, errors.New("plain"))

	assert.Equal(t, 103, s.total())
	assert.Equal(t, 100, s.ok)
	assert.Equal(t, map[fetcher.Reason]int{
		fetcher.ReasonTimeout:  1,
		fetcher.ReasonResponse: 1,
		fetcher.ReasonNetwork:  1,
	}, s.failures)
	assert.Equal(t, time.Microsecond, s.min())
	assert.InDelta(t, float64(time.Minute), float64(s.max()), float64(100*time.Millisecond))
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.percentile(50)), float64(2*time.Millisecond))
	assert.InDelta(t, float64(98*time.Millisecond), float64(s.percentile(97)), float64(3*time.Millisecond))

	var buf bytes.Buffer
	newReporter(&buf, true).summary(s)
	out := buf.String()
	assert.Contains(t, out, "calls:    103")
	assert.Contains(t, out, "TIMEOUT:")
	assert.Contains(t, out, "p99")
	assert.NotContains(t, out, "ABORT:")
}
