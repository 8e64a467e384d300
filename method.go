// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

// A Method is an HTTP request method.
//
// The fetcher does not validate methods: a value outside the constants
// below is handed to the transport as is, and any complaint comes back
// as a ReasonNetwork failure.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// Methods returns the standard HTTP methods.
func Methods() []Method {
	return []Method{
		MethodGet,
		MethodHead,
		MethodPost,
		MethodPut,
		MethodDelete,
		MethodConnect,
		MethodOptions,
		MethodTrace,
		MethodPatch,
	}
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}
