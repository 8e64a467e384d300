// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/gogama/fetcher"
)

// Exit codes of the fetch command.
const (
	ExitSuccess  = 0
	ExitResponse = 1
	ExitTimeout  = 2
	ExitAbort    = 3
	ExitNetwork  = 4
	ExitUsage    = 64
)

var reasonExitCodes = map[fetcher.Reason]int{
	fetcher.ReasonResponse: ExitResponse,
	fetcher.ReasonTimeout:  ExitTimeout,
	fetcher.ReasonAbort:    ExitAbort,
	fetcher.ReasonNetwork:  ExitNetwork,
}

// An exitError carries an explicit exit code for an error which is not
// a fetcher exception.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode maps the error returned by the fetch command to its process
// exit code. Errors which are neither fetcher exceptions nor carry their
// own code are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	if ex, ok := fetcher.AsException(err); ok {
		if code, ok := reasonExitCodes[ex.Reason]; ok {
			return code
		}
	}

	return ExitUsage
}
