// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types describing one HTTP call made by a
fetcher: Options (mergeable request options), Plan (the merged request)
and Execution (the state of a dispatch).

Options are given twice, once as fetcher-wide defaults and once per
call. Merge combines them: headers are merged per key with the per-call
value winning, and every other non-zero per-call field replaces the
default.

	opts := request.Merge(defaults, request.Options{
		Header: http.Header{"Accept": {"application/json"}},
	})
	p := request.NewPlan("GET", "https://example.com/items", opts)

A Plan keeps its URL unparsed. It becomes an http.Request only when
ToRequest is called with the context that controls the send, so a
malformed URL is reported at send time like any other transport error.

Execution is the record handed to timeout policies and event handlers
while a call is in flight. You will typically not allocate Execution
values yourself.
*/
package request
