// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gogama/fetcher/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do sends one HTTP request and classifies the outcome. Fetcher
// implements the Doer interface, and any other Doer implementation must
// behave substantially the same as Fetcher.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, method Method, url string, opts *CallOptions) (*http.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups Do with the one-verb shortcut
// methods and CloseIdleConnections.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Get(ctx context.Context, url string) (*http.Response, error)
	Head(ctx context.Context, url string) (*http.Response, error)
	Delete(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error)
	Put(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error)
	Patch(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error)
	PostForm(ctx context.Context, url string, data url.Values) (*http.Response, error)
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL.
func Get(ctx context.Context, d Doer, url string) (*http.Response, error) {
	return d.Do(ctx, MethodGet, url, nil)
}

// Head uses the specified Doer to issue a HEAD to the specified URL.
func Head(ctx context.Context, d Doer, url string) (*http.Response, error) {
	return d.Do(ctx, MethodHead, url, nil)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL.
func Delete(ctx context.Context, d Doer, url string) (*http.Response, error) {
	return d.Do(ctx, MethodDelete, url, nil)
}

// Post uses the specified Doer to issue a POST to the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser. An unsupported body, or a reader that
// fails, gives a plain error and no request is sent.
func Post(ctx context.Context, d Doer, url, contentType string, body interface{}) (*http.Response, error) {
	return withBody(ctx, d, MethodPost, url, contentType, body)
}

// Put uses the specified Doer to issue a PUT to the specified URL. The
// body parameter is treated as in Post.
func Put(ctx context.Context, d Doer, url, contentType string, body interface{}) (*http.Response, error) {
	return withBody(ctx, d, MethodPut, url, contentType, body)
}

// Patch uses the specified Doer to issue a PATCH to the specified URL.
// The body parameter is treated as in Post.
func Patch(ctx context.Context, d Doer, url, contentType string, body interface{}) (*http.Response, error) {
	return withBody(ctx, d, MethodPatch, url, contentType, body)
}

// PostForm uses the specified Doer to issue a POST to the specified URL,
// with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func PostForm(ctx context.Context, d Doer, url string, data url.Values) (*http.Response, error) {
	return Post(ctx, d, url, "application/x-www-form-urlencoded", data.Encode())
}

func withBody(ctx context.Context, d Doer, method Method, url, contentType string, body interface{}) (*http.Response, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	opts := &CallOptions{
		Options: request.Options{
			Header: http.Header{"Content-Type": {contentType}},
			Body:   b,
		},
	}
	return d.Do(ctx, method, url, opts)
}

// Get issues a GET to the specified URL. See the package function Get.
func (f *Fetcher) Get(ctx context.Context, url string) (*http.Response, error) {
	return Get(ctx, f, url)
}

// Head issues a HEAD to the specified URL.
func (f *Fetcher) Head(ctx context.Context, url string) (*http.Response, error) {
	return Head(ctx, f, url)
}

// Delete issues a DELETE to the specified URL.
func (f *Fetcher) Delete(ctx context.Context, url string) (*http.Response, error) {
	return Delete(ctx, f, url)
}

// Post issues a POST to the specified URL. See the package function
// Post for the accepted body types.
func (f *Fetcher) Post(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Post(ctx, f, url, contentType, body)
}

// Put issues a PUT to the specified URL.
func (f *Fetcher) Put(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Put(ctx, f, url, contentType, body)
}

// Patch issues a PATCH to the specified URL.
func (f *Fetcher) Patch(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Patch(ctx, f, url, contentType, body)
}

// PostForm issues a form POST to the specified URL.
func (f *Fetcher) PostForm(ctx context.Context, url string, data url.Values) (*http.Response, error) {
	return PostForm(ctx, f, url, data)
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("fetcher: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, method Method, url string, opts *CallOptions) (*http.Response, error) {
	return i.doer.Do(ctx, method, url, opts)
}

func (i inflated) Get(ctx context.Context, url string) (*http.Response, error) {
	return Get(ctx, i.doer, url)
}

func (i inflated) Head(ctx context.Context, url string) (*http.Response, error) {
	return Head(ctx, i.doer, url)
}

func (i inflated) Delete(ctx context.Context, url string) (*http.Response, error) {
	return Delete(ctx, i.doer, url)
}

func (i inflated) Post(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Post(ctx, i.doer, url, contentType, body)
}

func (i inflated) Put(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Put(ctx, i.doer, url, contentType, body)
}

func (i inflated) Patch(ctx context.Context, url, contentType string, body interface{}) (*http.Response, error) {
	return Patch(ctx, i.doer, url, contentType, body)
}

func (i inflated) PostForm(ctx context.Context, url string, data url.Values) (*http.Response, error) {
	return PostForm(ctx, i.doer, url, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
