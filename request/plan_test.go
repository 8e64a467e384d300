// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	t.Run("zero options", func(t *testing.T) {
		p := NewPlan("GET", "https://example.com/x", Options{})
		require.NotNil(t, p)
		assert.Equal(t, "GET", p.Method)
		assert.Equal(t, "https://example.com/x", p.URL)
		assert.NotNil(t, p.Header)
		assert.Empty(t, p.Header)
		assert.Nil(t, p.Body)
	})
	t.Run("method not validated", func(t *testing.T) {
		p := NewPlan("NOT A METHOD", "::bad::", Options{})
		require.NotNil(t, p)
		assert.Equal(t, "NOT A METHOD", p.Method)
		assert.Equal(t, "::bad::", p.URL)
	})
	t.Run("header copied", func(t *testing.T) {
		h := http.Header{"Foo": {"bar"}}
		p := NewPlan("POST", "test", Options{Header: h, Body: []byte("baz"), Host: "h"})
		p.Header.Set("Foo", "changed")
		assert.Equal(t, "bar", h.Get("Foo"))
		assert.Equal(t, []byte("baz"), p.Body)
		assert.Equal(t, "h", p.Host)
	})
	t.Run("options copied", func(t *testing.T) {
		opts := Options{
			Body:             []byte("baz"),
			Query:            url.Values{"a": {"1"}},
			Cookies:          []*http.Cookie{{Name: "c", Value: "1"}},
			TransferEncoding: []string{"chunked"},
		}
		p := NewPlan("POST", "test", opts)
		p.Body[0] = 'g'
		p.Query.Add("sig", "x")
		p.Cookies[0].Value = "2"
		p.Cookies = append(p.Cookies, &http.Cookie{Name: "d"})
		p.TransferEncoding[0] = "identity"
		assert.Equal(t, []byte("baz"), opts.Body)
		assert.Equal(t, url.Values{"a": {"1"}}, opts.Query)
		assert.Equal(t, []*http.Cookie{{Name: "c", Value: "1"}}, opts.Cookies)
		assert.Equal(t, []string{"chunked"}, opts.TransferEncoding)
	})
}

func TestPlan_SetBasicAuth(t *testing.T) {
	p := NewPlan("GET", "test", Options{})
	p.SetBasicAuth("Aladdin", "open sesame")
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", p.Header.Get("Authorization"))
}

func TestPlan_ToRequest(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		p := NewPlan("GET", "test", Options{})
		var ctx context.Context
		r, err := p.ToRequest(ctx)
		assert.Nil(t, r)
		assert.EqualError(t, err, nilCtxMsg)
	})
	t.Run("bad url", func(t *testing.T) {
		p := NewPlan("GET", "http://[::1", Options{})
		r, err := p.ToRequest(context.Background())
		assert.Nil(t, r)
		assert.Error(t, err)
	})
	t.Run("method copied verbatim", func(t *testing.T) {
		for _, m := range []string{"HEAD", "", "BOGUS METHOD"} {
			p := NewPlan(m, "test", Options{})
			r, err := p.ToRequest(context.Background())
			require.NoError(t, err)
			assert.Equal(t, m, r.Method)
		}
	})
	t.Run("context", func(t *testing.T) {
		p := NewPlan("PUT", "test", Options{})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		r, err := p.ToRequest(ctx)
		require.NoError(t, err)
		assert.Same(t, ctx, r.Context())
	})
	t.Run("empty port removed", func(t *testing.T) {
		p := NewPlan("GET", "http://example.com:/foo", Options{})
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "example.com", r.URL.Host)
	})
	t.Run("query appended", func(t *testing.T) {
		p := NewPlan("GET", "http://example.com/foo?a=1", Options{
			Query: url.Values{"a": {"2"}, "b": {"3"}},
		})
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, r.URL.Query()["a"])
		assert.Equal(t, "3", r.URL.Query().Get("b"))
		assert.Equal(t, "http://example.com/foo?a=1", p.URL)
	})
	t.Run("header cloned", func(t *testing.T) {
		p := NewPlan("GET", "test", Options{
			Header:  http.Header{"X-Foo": {"bar"}},
			Cookies: []*http.Cookie{{Name: "ham", Value: "eggs"}, {Name: "spam", Value: "spam"}},
		})
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "bar", r.Header.Get("X-Foo"))
		assert.Equal(t, "ham=eggs; spam=spam", r.Header.Get("Cookie"))
		assert.Empty(t, p.Header.Get("Cookie"))
	})
	t.Run("host and transfer encoding", func(t *testing.T) {
		p := NewPlan("POST", "http://example.com", Options{
			Host:             "other.example.com",
			TransferEncoding: []string{"chunked"},
		})
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "other.example.com", r.Host)
		assert.Equal(t, []string{"chunked"}, r.TransferEncoding)
	})
	t.Run("body empty", func(t *testing.T) {
		for _, b := range [][]byte{nil, {}} {
			p := NewPlan("DELETE", "test", Options{Body: b})
			r, err := p.ToRequest(context.Background())
			require.NoError(t, err)
			assert.Nil(t, r.Body)
			assert.Nil(t, r.GetBody)
			assert.Equal(t, int64(0), r.ContentLength)
		}
	})
	t.Run("body not empty", func(t *testing.T) {
		p := NewPlan("POST", "test", Options{Body: []byte("foo")})
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), r.ContentLength)
		require.NotNil(t, r.Body)
		require.NotNil(t, r.GetBody)
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "foo", string(b))
		rc, err := r.GetBody()
		require.NoError(t, err)
		b, err = io.ReadAll(rc)
		assert.NoError(t, err)
		assert.Equal(t, "foo", string(b))
	})
	t.Run("independent requests", func(t *testing.T) {
		p := NewPlan("GET", "http://example.com", Options{})
		r1, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		r2, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.NotSame(t, r1, r2)
		r1.Header.Set("X-Only", "r1")
		assert.Empty(t, r2.Header.Get("X-Only"))
		assert.True(t, strings.HasPrefix(r2.URL.String(), "http://example.com"))
	})
}
