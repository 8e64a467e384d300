// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import "sync/atomic"

// A reasonTag records the reason of whichever cancellation source
// fires first during one call. Later writes are ignored.
type reasonTag struct {
	p atomic.Pointer[Reason]
}

func (t *reasonTag) set(r Reason) bool {
	return t.p.CompareAndSwap(nil, &r)
}

func (t *reasonTag) get() (Reason, bool) {
	if p := t.p.Load(); p != nil {
		return *p, true
	}
	return "", false
}
