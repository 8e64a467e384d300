// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"net/url"
)

// Options holds the request options which can be given both as
// fetcher-wide defaults and as per-call overrides.
//
// Use Merge to combine defaults with overrides. Header is merged key by
// key; every other field is replaced wholesale by a non-zero override.
type Options struct {
	// Header contains request header fields. When merging, a key in
	// the override replaces all values for the same canonical key in
	// the defaults.
	Header http.Header

	// Body is the pre-buffered request body. A nil body means no body
	// is sent. Use BodyBytes to convert a string or io.Reader.
	Body []byte

	// Query contains query parameters appended to the URL's existing
	// query string.
	Query url.Values

	// Host optionally overrides the Host header to send. If empty, the
	// host from the URL is sent.
	Host string

	// Cookies are added to the request in a single Cookie header.
	Cookies []*http.Cookie

	// TransferEncoding lists the transfer encodings from outermost to
	// innermost. An empty list denotes the "identity" encoding.
	TransferEncoding []string
}

// Merge returns the combination of base and override. Header values
// are merged per canonical key with override winning; every other
// field of override replaces the base field if it is non-zero.
//
// Neither argument is modified and the result shares no header map
// with either of them.
func Merge(base, override Options) Options {
	m := base
	m.Header = mergeHeader(base.Header, override.Header)
	if override.Body != nil {
		m.Body = override.Body
	}
	if override.Query != nil {
		m.Query = override.Query
	}
	if override.Host != "" {
		m.Host = override.Host
	}
	if override.Cookies != nil {
		m.Cookies = override.Cookies
	}
	if override.TransferEncoding != nil {
		m.TransferEncoding = override.TransferEncoding
	}
	return m
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	c := o
	c.Header = o.Header.Clone()
	if o.Body != nil {
		c.Body = append([]byte(nil), o.Body...)
	}
	if o.Query != nil {
		c.Query = make(url.Values, len(o.Query))
		for k, vs := range o.Query {
			c.Query[k] = append([]string(nil), vs...)
		}
	}
	if o.Cookies != nil {
		c.Cookies = make([]*http.Cookie, len(o.Cookies))
		for i, ck := range o.Cookies {
			ck2 := *ck
			c.Cookies[i] = &ck2
		}
	}
	if o.TransferEncoding != nil {
		c.TransferEncoding = append([]string(nil), o.TransferEncoding...)
	}
	return c
}

func mergeHeader(base, override http.Header) http.Header {
	h := make(http.Header, len(base)+len(override))
	for k, vs := range base {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	for k, vs := range override {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return h
}
