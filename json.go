// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// ParseJSON reads the whole body of resp, closes it, and unmarshals it
// into v as encoding/json does.
//
// resp may come from a successful call or from an *Exception with
// ReasonResponse. No schema validation is performed. A body that is not
// valid JSON gives the decoder's error, which is not an *Exception.
func ParseJSON(resp *http.Response, v interface{}) error {
	b, err := readBody(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// GetJSON reads the whole body of resp, closes it, and returns the value
// at the given gjson path. A body that is not valid JSON is an error; a
// path that matches nothing gives a Result whose Exists method reports
// false.
//
// See https://github.com/tidwall/gjson for the path syntax.
func GetJSON(resp *http.Response, path string) (gjson.Result, error) {
	b, err := readBody(resp)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, errors.New("fetcher: invalid JSON in response body")
	}
	return gjson.GetBytes(b, path), nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("fetcher: nil response")
	}
	if resp.Body == nil {
		return nil, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}
