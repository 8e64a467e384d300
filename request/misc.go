// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

const badBodyTypeMsg = "fetcher/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body parameter to a byte slice for use
// as Options.Body.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. A nil body gives a nil slice. A reader is
// read to the end, and closed if it is an io.ReadCloser; a read or close
// failure gives a nil slice and the error. Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
