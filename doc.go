// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fetcher provides an HTTP dispatcher which enforces a timeout on
every call, honors the caller's context, and reports every failure as
a single typed error.

Create a Fetcher once and reuse it:

	f := fetcher.New(fetcher.Config{
		BaseURL: "https://api.example.com",
		Timeout: timeout.Fixed(5 * time.Second),
		Options: request.Options{
			Header: http.Header{"Accept": {"application/json"}},
		},
	})
	resp, err := f.Do(ctx, fetcher.MethodGet, "/items", nil)

Per-call options override the defaults. Headers are merged key by key
with the call winning; other options are replaced wholesale:

	resp, err := f.Do(ctx, fetcher.MethodPost, "/items", &fetcher.CallOptions{
		Timeout: timeout.Fixed(30 * time.Second),
		Options: request.Options{
			Header: http.Header{"Content-Type": {"application/json"}},
			Body:   payload,
		},
	})

A call fails with an *Exception carrying one of four reasons. Branch on
the reason to decide what to do, for example whether to retry:

	resp, err := f.Get(ctx, "/items")
	if ex, ok := fetcher.AsException(err); ok {
		switch ex.Reason {
		case fetcher.ReasonTimeout:
			// The timeout fired first.
		case fetcher.ReasonAbort:
			// ctx was cancelled first.
		case fetcher.ReasonResponse:
			var problem Problem
			_ = fetcher.ParseJSON(ex.Response, &problem)
		case fetcher.ReasonNetwork:
			// DNS, connection and other transport failures.
		}
	}

A status code of 400 or above is a failure. A successful response is
returned exactly as the transport produced it and the caller must close
its body, for example with ParseJSON.

For control over how requests are sent, set a custom HTTPDoer, such as
a configured http.Client or a test double. To hook into each call, for
example to log or to sign requests, install a handler:

	handlers := &fetcher.HandlerGroup{}
	handlers.PushBack(fetcher.AfterDispatch, fetcher.HandlerFunc(
		func(_ fetcher.Event, e *request.Execution) {
			log.Printf("%s %s in %s: %v", e.Plan.Method, e.Plan.URL, e.Duration(), e.Err)
		}),
	)

Package fetcher never retries, pools, caches or streams on its own;
those concerns belong to the HTTPDoer or the caller. Package transient
helps callers that want to build their own retry decisions.
*/
package fetcher
