// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Fetcher to extend it with custom
// functionality such as logging, metrics or request signing.
//
// Every event of a call is fired on the goroutine that called the
// fetcher, in the order listed below.
type Event int

const (
	// BeforeDispatch identifies the event that occurs before the call
	// starts, after the options have been merged.
	//
	// When the fetcher fires BeforeDispatch, only the execution's plan
	// is set. Handlers may modify the plan, and the timeout policy has
	// not been consulted yet.
	BeforeDispatch Event = iota
	// BeforeSend identifies the event that occurs after the HTTP
	// request has been built and just before it is handed to the
	// HTTPDoer.
	//
	// BeforeSend handlers may modify the execution's request, for
	// example to sign it. BeforeSend does not fire if the request could
	// not be built, or if the call was cancelled while waiting on the
	// rate limiter.
	BeforeSend
	// AfterTimeout identifies the event that occurs after a call failed
	// because its timeout fired.
	//
	// When the fetcher fires AfterTimeout, the execution's error is an
	// *Exception with reason ReasonTimeout.
	AfterTimeout
	// AfterAbort identifies the event that occurs after a call failed
	// because the caller's context was done.
	//
	// When the fetcher fires AfterAbort, the execution's error is an
	// *Exception with reason ReasonAbort.
	AfterAbort
	// AfterSend identifies the event that occurs once the transport has
	// settled and the outcome has been classified, regardless of the
	// outcome.
	//
	// When the fetcher fires AfterSend, either the execution's response
	// or its error or both are set. Both are set only for a response
	// with status code 400 or above.
	AfterSend
	// AfterDispatch identifies the event that occurs after the call
	// ends.
	//
	// When the fetcher fires AfterDispatch, the execution is in the
	// same state it was in during AfterSend EXCEPT that the end time is
	// set.
	AfterDispatch
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeDispatch",
	"BeforeSend",
	"AfterTimeout",
	"AfterAbort",
	"AfterSend",
	"AfterDispatch",
}

// Events returns a slice containing all events which can occur during
// a call, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeDispatch,
		BeforeSend,
		AfterTimeout,
		AfterAbort,
		AfterSend,
		AfterDispatch,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
