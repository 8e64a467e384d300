// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"
)

// An Execution represents the state of a single dispatch of a Plan.
//
// The fetcher creates one Execution per call, updates it as the call
// progresses, and hands it to timeout policies and event handlers.
// Policies and handlers may store their own data on it using SetValue
// and Value, but should otherwise treat its exported fields as
// read-only. The exception is the BeforeDispatch and BeforeSend events,
// where handlers may adjust the Plan or Request (for example to sign
// the request).
//
// An Execution is only ever touched by the goroutine that called the
// fetcher, so handlers need no locking to read it.
type Execution struct {
	// Plan is the merged request being dispatched. It is never nil.
	Plan *Plan

	// Start is the time the dispatch started. It is zero until the
	// timeout counter starts, and constant thereafter.
	Start time.Time

	// End is the time the dispatch ended. It is zero until the call
	// has settled.
	End time.Time

	// Timeout is the effective timeout for the call, as returned by
	// the timeout policy in force.
	Timeout time.Duration

	// Request is the HTTP request handed to the transport. It is nil
	// until the request is built, and stays nil if building it failed.
	Request *http.Request

	// Response is the HTTP response returned by the transport. It is
	// nil if the transport returned an error. A response with a status
	// code of 400 or above is still recorded here.
	Response *http.Response

	// Err is the error the call will return, or nil for success. Once
	// the execution has ended, it is the same value returned to the
	// caller.
	Err error

	data context.Context
}

// StatusCode returns the status code of the HTTP response, or zero if
// there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers, or a nil header if there
// is no response. A nil header is safe for read-only operations.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// SetValue allows event handlers and policies to store arbitrary data
// in the execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
