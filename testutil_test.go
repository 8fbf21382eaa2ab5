// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/request"
	"github.com/codonnell/httpremote/transport"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// outcome records the callbacks of one transmit.
type outcome struct {
	lock      sync.Mutex
	updates   []Update
	completes []*request.Response
	errs      []*Error
	order     []string
	done      chan struct{}
	closeOnce sync.Once
}

func newOutcome() *outcome {
	return &outcome{done: make(chan struct{})}
}

func (o *outcome) callbacks() Callbacks {
	cb := o.terminalOnly()
	cb.OnUpdate = func(u Update) {
		o.lock.Lock()
		defer o.lock.Unlock()
		o.updates = append(o.updates, u)
		o.order = append(o.order, "update:"+u.Phase.Name())
	}
	return cb
}

func (o *outcome) terminalOnly() Callbacks {
	return Callbacks{
		OnComplete: func(r *request.Response) {
			o.lock.Lock()
			o.completes = append(o.completes, r)
			o.order = append(o.order, "complete")
			o.lock.Unlock()
			o.closeOnce.Do(func() { close(o.done) })
		},
		OnError: func(err *Error) {
			o.lock.Lock()
			o.errs = append(o.errs, err)
			o.order = append(o.order, "error")
			o.lock.Unlock()
			o.closeOnce.Do(func() { close(o.done) })
		},
	}
}

func (o *outcome) note(s string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.order = append(o.order, s)
}

func (o *outcome) wait(t *testing.T) {
	select {
	case <-o.done:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for terminal callback")
	}
}

func (o *outcome) finished() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

func (o *outcome) phases() []Phase {
	o.lock.Lock()
	defer o.lock.Unlock()
	var ps []Phase
	for _, u := range o.updates {
		ps = append(ps, u.Phase)
	}
	return ps
}

func (o *outcome) complete(t *testing.T) *request.Response {
	o.lock.Lock()
	defer o.lock.Unlock()
	require.Len(t, o.completes, 1)
	require.Empty(t, o.errs)
	return o.completes[0]
}

func (o *outcome) err(t *testing.T) *Error {
	o.lock.Lock()
	defer o.lock.Unlock()
	require.Len(t, o.errs, 1)
	require.Empty(t, o.completes)
	return o.errs[0]
}

type mockFactory struct {
	mock.Mock
}

func newMockFactory(t *testing.T) *mockFactory {
	m := &mockFactory{}
	m.Test(t)
	return m
}

func (m *mockFactory) Create() transport.Primitive {
	args := m.Called()
	return args.Get(0).(transport.Primitive)
}

// mockPrimitive is a testify mock of a transport primitive. Handlers
// installed with Listen are kept so a test can emit signals from a Run
// function.
type mockPrimitive struct {
	mock.Mock
	handlers transport.HandlerGroup
}

func newMockPrimitive(t *testing.T) *mockPrimitive {
	m := &mockPrimitive{}
	m.Test(t)
	return m
}

func (m *mockPrimitive) emit(sig transport.Signal) {
	m.handlers.Run(transport.Event{Signal: sig})
}

func (m *mockPrimitive) EnableProgressEvents() {
	m.Called()
}

func (m *mockPrimitive) Listen(sig transport.Signal, h transport.Handler) {
	m.handlers.PushBack(sig, h)
}

func (m *mockPrimitive) Send(ctx context.Context, url, method string, body []byte, header http.Header) {
	m.Called(ctx, url, method, body, header)
}

func (m *mockPrimitive) Abort() {
	m.Called()
}

func (m *mockPrimitive) Dispose() {
	m.Called()
}

func (m *mockPrimitive) ResponseBody() []byte {
	args := m.Called()
	b, _ := args.Get(0).([]byte)
	return b
}

func (m *mockPrimitive) ResponseHeader() http.Header {
	args := m.Called()
	h, _ := args.Get(0).(http.Header)
	return h
}

func (m *mockPrimitive) StatusCode() int {
	return m.Called().Int(0)
}

func (m *mockPrimitive) StatusText() string {
	return m.Called().String(0)
}

func (m *mockPrimitive) LastErrorCode() errcode.Code {
	return m.Called().Get(0).(errcode.Code)
}

func (m *mockPrimitive) LastError() string {
	return m.Called().String(0)
}

// postHoc installs expectations for the post-hoc state getters.
func (m *mockPrimitive) postHoc(status int, body []byte, code errcode.Code, text string) {
	m.On("ResponseBody").Return(body).Maybe()
	m.On("ResponseHeader").Return(http.Header{}).Maybe()
	m.On("StatusCode").Return(status).Maybe()
	m.On("StatusText").Return(http.StatusText(status)).Maybe()
	m.On("LastErrorCode").Return(code).Maybe()
	m.On("LastError").Return(text).Maybe()
}
