// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetcher

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gogama/fetcher/request"
	"github.com/stretchr/testify/mock"
)

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockHTTPDoerWithCloseIdleConnections struct {
	mockHTTPDoer
}

func newMockHTTPDoerWithCloseIdleConnections(t *testing.T) *mockHTTPDoerWithCloseIdleConnections {
	m := &mockHTTPDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(ctx context.Context, method Method, url string, opts *CallOptions) (*http.Response, error) {
	args := m.Called(ctx, method, url, opts)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockTimeoutPolicy struct {
	mock.Mock
}

func newMockTimeoutPolicy(t *testing.T) *mockTimeoutPolicy {
	m := &mockTimeoutPolicy{}
	m.Test(t)
	return m
}

func (m *mockTimeoutPolicy) Timeout(e *request.Execution) time.Duration {
	args := m.Called(e)
	return args.Get(0).(time.Duration)
}

func (g *HandlerGroup) mock(evt Event) *mockHandler {
	var m *mockHandler
	if len(g.handlers) <= int(evt) || len(g.handlers[evt]) < 1 {
		m = &mockHandler{}
		g.PushBack(evt, m)
		return m
	}

	for _, h := range g.handlers[evt] {
		if m, ok := h.(*mockHandler); ok {
			return m
		}
	}

	m = &mockHandler{}
	g.PushBack(evt, m)
	return m
}

func (g *HandlerGroup) assertExpectations(t *testing.T) {
	if g.handlers == nil {
		return
	}

	for _, evt := range Events() {
		handlers := g.handlers[evt]
		for _, h := range handlers {
			if m, ok := h.(*mockHandler); ok {
				m.AssertExpectations(t)
			}
		}
	}
}

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(evt Event, e *request.Execution) {
	m.Called(evt, e)
}

type trace struct {
	calls []string
}

func (g *HandlerGroup) addTraceHandlers() *trace {
	tr := &trace{}
	f := func(evt Event, _ *request.Execution) {
		tr.calls = append(tr.calls, evt.Name())
	}
	h := HandlerFunc(f)
	for _, evt := range Events() {
		g.PushBack(evt, h)
	}
	return tr
}

// waitForCancel makes a mock HTTPDoer behave like a transport that
// honors cancellation: it blocks until the request context is done and
// returns its error.
func waitForCancel(args mock.Arguments) {
	req := args.Get(0).(*http.Request)
	<-req.Context().Done()
}
