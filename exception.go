// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/fetcher/transient"
)

// A Reason says why a fetcher call failed. Exactly one reason is
// attached to every failed call.
//
// The underlying value is a stable short code ("0" to "3") which is
// convenient for logs and metrics tags. Use String for the name.
type Reason string

const (
	// ReasonTimeout means the call's timeout counter fired before the
	// transport settled.
	ReasonTimeout Reason = "0"
	// ReasonAbort means the caller's context was cancelled before the
	// transport settled.
	ReasonAbort Reason = "1"
	// ReasonResponse means the transport returned a response with a
	// status code of 400 or above.
	ReasonResponse Reason = "2"
	// ReasonNetwork means the transport failed without the timeout or
	// the caller's context having fired, for example because of a DNS
	// failure or a refused connection.
	ReasonNetwork Reason = "3"
)

var reasonNames = map[Reason]string{
	ReasonTimeout:  "TIMEOUT",
	ReasonAbort:    "ABORT",
	ReasonResponse: "RESPONSE",
	ReasonNetwork:  "NETWORK",
}

// Reasons returns every failure reason in code order.
func Reasons() []Reason {
	return []Reason{ReasonTimeout, ReasonAbort, ReasonResponse, ReasonNetwork}
}

// Code returns the stable short code of the reason.
func (r Reason) Code() string {
	return string(r)
}

// String returns the name of the reason: TIMEOUT, ABORT, RESPONSE or
// NETWORK.
func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "Reason(" + string(r) + ")"
}

// An Exception is the error returned by every failed fetcher call.
//
// If Reason is ReasonResponse, Status and Response are set and Err is
// nil. The response body has not been read, so it can still be parsed,
// and the caller is responsible for closing it. For every other reason,
// Err holds the error raised by the transport (or by building the
// request) and Response is nil.
type Exception struct {
	Reason   Reason
	Status   int
	Response *http.Response
	Err      error
}

// Error implements the error interface.
func (e *Exception) Error() string {
	if e.Reason == ReasonResponse {
		return fmt.Sprintf("fetcher: fetch error (%s): status %d", e.Reason, e.Status)
	}
	return fmt.Sprintf("fetcher: fetch error (%s): %v", e.Reason, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *Exception) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call failed because its timeout fired.
func (e *Exception) Timeout() bool {
	return e.Reason == ReasonTimeout
}

// Transient returns the transience category of the failure. A timeout
// is transient.Timeout and an abort is transient.Not, regardless of the
// underlying error. A response failure is categorized by status code,
// and a network failure by its underlying error.
func (e *Exception) Transient() transient.Category {
	switch e.Reason {
	case ReasonTimeout:
		return transient.Timeout
	case ReasonAbort:
		return transient.Not
	case ReasonResponse:
		return transient.CategorizeStatus(e.Status)
	default:
		return transient.Categorize(e.Err)
	}
}

// IsException reports whether err is, or wraps, an *Exception.
func IsException(err error) bool {
	_, ok := AsException(err)
	return ok
}

// AsException finds the first *Exception in err's chain.
func AsException(err error) (*Exception, bool) {
	var e *Exception
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
