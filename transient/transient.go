// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"net"
	"net/http"
	"syscall"
)

// A Category is the transience category of a failure, as reported by
// Categorize and CategorizeStatus.
//
// The category Not means a retry is very unlikely to succeed. Every
// other category means a retry has some prospect of success.
type Category int

const (
	// Not indicates any non-transient failure.
	Not Category = iota
	// Timeout indicates a timeout, either the fetcher's own or one
	// reported by the network stack.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED). The service may be restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active TCP
	// connection (syscall.ECONNRESET).
	ConnReset
	// DNS indicates a temporary name resolution failure. A name that
	// does not exist is Not transient.
	DNS
	// Status indicates an HTTP response whose status code asks the
	// client to come back later: 429, 502, 503 and 504.
	Status
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"DNS",
	"Status",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient, both give Not.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. It never checks Temporary(), whose semantics aren't
// entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary && !dnsErr.IsNotFound {
		return DNS
	}

	return Not
}

// CategorizeStatus returns Status for the HTTP status codes that invite
// a retry and Not for every other code.
func CategorizeStatus(code int) Category {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return Status
	default:
		return Not
	}
}

type hasTimeout interface {
	Timeout() bool
}
