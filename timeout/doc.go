// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for choosing the timeout of a fetcher
// call. A policy may be set once on the fetcher and overridden per call.
// When neither is set, DefaultPolicy applies.
package timeout
