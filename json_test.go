// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func jsonResponse(body string) (*http.Response, *closeTracker) {
	c := &closeTracker{Reader: strings.NewReader(body)}
	return &http.Response{StatusCode: 200, Body: c}, c
}

type errReader struct{}

func (errReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestParseJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		resp, c := jsonResponse(`{"foo":"bar","n":[1,2]}`)
		var v struct {
			Foo string
			N   []int
		}
		require.NoError(t, ParseJSON(resp, &v))
		assert.Equal(t, "bar", v.Foo)
		assert.Equal(t, []int{1, 2}, v.N)
		assert.True(t, c.closed)
	})
	t.Run("invalid JSON", func(t *testing.T) {
		resp, c := jsonResponse(`<html>`)
		var v interface{}
		err := ParseJSON(resp, &v)
		assert.Error(t, err)
		assert.False(t, IsException(err))
		assert.True(t, c.closed)
	})
	t.Run("read error", func(t *testing.T) {
		resp := &http.Response{Body: io.NopCloser(errReader{})}
		var v interface{}
		assert.EqualError(t, ParseJSON(resp, &v), "read failed")
	})
	t.Run("nil response", func(t *testing.T) {
		var v interface{}
		assert.EqualError(t, ParseJSON(nil, &v), "fetcher: nil response")
	})
}

func TestGetJSON(t *testing.T) {
	t.Run("path", func(t *testing.T) {
		resp, c := jsonResponse(`{"items":[{"id":7},{"id":9}]}`)
		r, err := GetJSON(resp, "items.1.id")
		require.NoError(t, err)
		assert.Equal(t, int64(9), r.Int())
		assert.True(t, c.closed)
	})
	t.Run("missing path", func(t *testing.T) {
		resp, _ := jsonResponse(`{"a":1}`)
		r, err := GetJSON(resp, "b")
		require.NoError(t, err)
		assert.False(t, r.Exists())
	})
	t.Run("invalid JSON", func(t *testing.T) {
		resp, _ := jsonResponse(`{"a":`)
		_, err := GetJSON(resp, "a")
		assert.EqualError(t, err, "fetcher: invalid JSON in response body")
	})
}
