// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/fetcher/request"
)

// A Policy decides the timeout of a fetcher call.
//
// The timeout counter starts just before the request is sent. If it
// fires before the transport settles, the call is cancelled and fails
// with a timeout reason. A zero or negative timeout cancels the call
// immediately.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the call described by e. Only
	// the Plan field of e is set when Timeout is called.
	Timeout(e *request.Execution) time.Duration
}

// Default is the timeout used by DefaultPolicy.
const Default = 11 * time.Second

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 11 seconds on each call.
var DefaultPolicy Policy = Fixed(Default)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that always returns d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (d fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(d)
}

// The Func type is an adapter to allow the use of ordinary functions as
// timeout policies, for example to give slow endpoints more time:
//
//	p := timeout.Func(func(e *request.Execution) time.Duration {
//		if strings.HasSuffix(e.Plan.URL, "/export") {
//			return time.Minute
//		}
//		return timeout.Default
//	})
type Func func(e *request.Execution) time.Duration

// Timeout calls f(e).
func (f Func) Timeout(e *request.Execution) time.Duration {
	return f(e)
}
