// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gogama/fetcher/request"
	"github.com/gogama/fetcher/timeout"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	nilCtxMsg  = "fetcher: nil context"
	nilRespMsg = "fetcher: HTTPDoer returned nil response and nil error"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
//
// The fetcher relies on the HTTPDoer honoring the request context:
// a timeout or abort only takes effect once the HTTPDoer notices the
// context is done and returns.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// Config holds the settings a Fetcher is created from. Its zero value
// is a valid configuration.
type Config struct {
	// BaseURL is prepended to the path or URL of every call by plain
	// string concatenation. It may be empty.
	BaseURL string

	// Timeout decides the timeout of each call that does not override
	// it. If Timeout is nil, timeout.DefaultPolicy (11 seconds) is used.
	Timeout timeout.Policy

	// Options holds the default request options, including default
	// headers. Per-call options are merged over these with
	// request.Merge.
	request.Options

	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// Limiter, if not nil, is waited on before each request is sent.
	// The wait counts against the call's timeout and can be aborted
	// like the send itself.
	Limiter *rate.Limiter

	// RequestIDHeader, if not empty, names a header which is set to a
	// fresh random UUID on each call, unless the call already sets it.
	RequestIDHeader string
}

// CallOptions holds the per-call overrides of a Fetcher's Config.
type CallOptions struct {
	// Timeout overrides the fetcher's timeout policy for this call.
	Timeout timeout.Policy

	// Options are merged over the fetcher's default options.
	request.Options
}

var emptyHandlers = HandlerGroup{}

// A Fetcher sends HTTP requests under a shared base configuration,
// enforcing a timeout on each call, honoring the caller's context, and
// reporting every failure as an *Exception.
//
// A Fetcher is immutable once created and safe for concurrent use by
// multiple goroutines. Concurrent calls share nothing but the
// configuration.
type Fetcher struct {
	baseURL         string
	timeout         timeout.Policy
	defaults        request.Options
	doer            HTTPDoer
	handlers        *HandlerGroup
	limiter         *rate.Limiter
	requestIDHeader string
}

// New creates a Fetcher from config. The header and option values in
// config are copied, so later changes to config do not affect the
// Fetcher. New does no I/O and cannot fail.
func New(config Config) *Fetcher {
	f := &Fetcher{
		baseURL:         config.BaseURL,
		timeout:         config.Timeout,
		defaults:        config.Options.Clone(),
		doer:            config.HTTPDoer,
		handlers:        config.Handlers,
		limiter:         config.Limiter,
		requestIDHeader: config.RequestIDHeader,
	}
	if f.timeout == nil {
		f.timeout = timeout.DefaultPolicy
	}
	if f.doer == nil {
		f.doer = http.DefaultClient
	}
	if f.handlers == nil {
		f.handlers = &emptyHandlers
	}
	return f
}

// Do sends one HTTP request and classifies the outcome.
//
// The request URL is the fetcher's BaseURL followed by url. Headers
// and options are the fetcher's defaults merged with opts, which may
// be nil. The method is not validated.
//
// The call is cancelled when either its timeout fires or ctx is done,
// whichever happens first. The first of the two to fire decides the
// failure reason; the transport sees a single cancellation either way.
// A response that the transport returns after either of them fired is
// closed and the call fails with that reason.
//
// On success, the transport's response is returned as is, with status
// code below 400 and body unread. The caller must close the body.
//
// On failure, the response is nil and the error is an *Exception:
//
// • ReasonTimeout or ReasonAbort if the transport failed after the
// timeout fired or ctx was done, respectively;
//
// • ReasonNetwork if the transport failed for any other reason,
// including a URL that cannot be parsed;
//
// • ReasonResponse if the transport returned a response with status
// code 400 or above. The response is carried in the Exception with its
// body unread.
//
// Do never retries. Do panics if ctx is nil.
func (f *Fetcher) Do(ctx context.Context, method Method, url string, opts *CallOptions) (*http.Response, error) {
	if ctx == nil {
		panic(nilCtxMsg)
	}

	var call CallOptions
	if opts != nil {
		call = *opts
	}

	p := request.NewPlan(string(method), f.baseURL+url, request.Merge(f.defaults, call.Options))
	if f.requestIDHeader != "" && p.Header.Get(f.requestIDHeader) == "" {
		p.Header.Set(f.requestIDHeader, uuid.NewString())
	}
	e := &request.Execution{Plan: p}

	timeoutPolicy := call.Timeout
	if timeoutPolicy == nil {
		timeoutPolicy = f.timeout
	}

	f.handlers.run(BeforeDispatch, e)
	e.Timeout = timeoutPolicy.Timeout(e)
	e.Start = time.Now()
	f.send(ctx, e)
	e.End = time.Now()
	f.handlers.run(AfterDispatch, e)

	if e.Err != nil {
		return nil, e.Err
	}
	return e.Response, nil
}

func (f *Fetcher) send(ctx context.Context, e *request.Execution) {
	// The send context keeps ctx's values but is only ever cancelled
	// through cancel, after the reason has been tagged.
	sendCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var tag reasonTag
	timer := time.AfterFunc(e.Timeout, func() {
		tag.set(ReasonTimeout)
		cancel()
	})
	stop := context.AfterFunc(ctx, func() {
		tag.set(ReasonAbort)
		cancel()
	})

	resp, err := f.roundTrip(sendCtx, e)
	timerStopped := timer.Stop()
	listenerStopped := stop()

	// A response that arrives after the timeout or ctx fired is
	// discarded: its body would be read through a cancelled context.
	if err == nil && (!timerStopped || !listenerStopped) {
		<-sendCtx.Done()
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		resp, err = nil, sendCtx.Err()
	}

	if err != nil {
		cancel()
		reason, ok := tag.get()
		if !ok {
			reason = ReasonNetwork
		}
		e.Err = &Exception{Reason: reason, Err: err}
		switch reason {
		case ReasonTimeout:
			f.handlers.run(AfterTimeout, e)
		case ReasonAbort:
			f.handlers.run(AfterAbort, e)
		}
		f.handlers.run(AfterSend, e)
		return
	}

	// sendCtx is not cancelled here: the body is read through it.
	e.Response = resp
	if resp.StatusCode >= 400 {
		e.Err = &Exception{
			Reason:   ReasonResponse,
			Status:   resp.StatusCode,
			Response: resp,
		}
	}
	f.handlers.run(AfterSend, e)
}

func (f *Fetcher) roundTrip(ctx context.Context, e *request.Execution) (*http.Response, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := e.Plan.ToRequest(ctx)
	if err != nil {
		return nil, err
	}
	e.Request = req
	f.handlers.run(BeforeSend, e)

	resp, err := f.doer.Do(e.Request)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New(nilRespMsg)
	}
	return resp, nil
}

// CloseIdleConnections invokes the same method on the fetcher's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (f *Fetcher) CloseIdleConnections() {
	if ic, ok := f.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
