// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "fetcher/request: nil context"
)

// A Plan is the merged, fully resolved description of one outgoing
// HTTP request: the fetcher's base URL joined with the call's path,
// and the fetcher's default options merged with the call's overrides.
//
// The field structure of Plan mirrors the client-side fields of the
// lower-level http.Request, except that URL is kept as an unparsed
// string and the body is pre-buffered. The URL is only parsed when the
// Plan is converted into an http.Request by ToRequest, so a malformed
// address surfaces as a send-time error rather than a construction
// error.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). It is
	// forwarded to the transport without validation. An empty string
	// means GET.
	Method string

	// URL is the unparsed target address.
	URL string

	// Header contains the request header fields to be sent. It is
	// never nil for a Plan created by NewPlan.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent.
	Body []byte

	// Query contains query parameters added to the URL's own query
	// string when the request is built.
	Query urlpkg.Values

	// Host optionally overrides the Host header to send. If empty, the
	// host part of URL is sent.
	Host string

	// Cookies are written into a single Cookie header when the request
	// is built.
	Cookies []*http.Cookie

	// TransferEncoding lists the transfer encodings from outermost to
	// innermost.
	TransferEncoding []string
}

// NewPlan returns a new Plan for the given method and URL, taking every
// other field from a deep copy of opts. Changes to the plan never reach
// opts.
func NewPlan(method, url string, opts Options) *Plan {
	c := opts.Clone()
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	return &Plan{
		Method:           method,
		URL:              url,
		Header:           c.Header,
		Body:             c.Body,
		Query:            c.Query,
		Host:             c.Host,
		Cookies:          c.Cookies,
		TransferEncoding: c.TransferEncoding,
	}
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (p *Plan) SetBasicAuth(username, password string) {
	r := http.Request{Header: p.Header}
	r.SetBasicAuth(username, password)
}

// ToRequest creates the HTTP request corresponding to the plan. The
// context of the new request is set to ctx, which may not be nil.
//
// An error is returned if ctx is nil or the plan's URL cannot be
// parsed. The method is copied verbatim, so an invalid method is only
// reported by the transport that receives the request.
func (p *Plan) ToRequest(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	u, err := urlpkg.Parse(p.URL)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	if len(p.Query) > 0 {
		q := u.Query()
		for k, vs := range p.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = u
	r.Header = p.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(p.Body) > 0 {
		body := p.Body
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}
	for _, c := range p.Cookies {
		r.AddCookie(c)
	}
	r.TransferEncoding = p.TransferEncoding
	r.Host = p.Host
	return r, nil
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
