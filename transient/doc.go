// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the failures of a fetcher call as
// transient or non-transient. The fetcher never retries, so this is the
// raw material for a caller's own retry or backoff decision, and for
// other purposes such as bucketing error metrics.
//
// Package transient depends only on the standard library.
package transient
