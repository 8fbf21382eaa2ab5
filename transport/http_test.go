// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/timeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTP(t *testing.T) {
	t.Run("success", testHTTPSuccess)
	t.Run("http error", testHTTPError)
	t.Run("base url", testHTTPBaseURL)
	t.Run("progress", testHTTPProgress)
	t.Run("abort in flight", testHTTPAbortInFlight)
	t.Run("abort before send", testHTTPAbortBeforeSend)
	t.Run("context cancel", testHTTPContextCancel)
	t.Run("timeout", testHTTPTimeout)
	t.Run("exception", testHTTPException)
	t.Run("dispose", testHTTPDispose)
	t.Run("send twice", testHTTPSendTwice)
	t.Run("http2", testHTTP2)
	t.Run("close idle connections", testHTTPCloseIdleConnections)
}

func testHTTPSuccess(t *testing.T) {
	t.Parallel()

	for _, server := range servers {
		t.Run(serverName(server), func(t *testing.T) {
			f := &HTTP{Doer: server.Client()}
			p := f.Create()
			rec := newRecorder(p)
			header := http.Header{"Content-Type": {"text/plain"}}

			p.Send(context.Background(), serverInstruction{StatusCode: 200, Body: "42"}.url(server), "POST", []byte("ping"), header)
			rec.wait(t)

			assert.Equal(t, []Signal{Complete, Success}, rec.signals())
			assert.Equal(t, 200, p.StatusCode())
			assert.Equal(t, "OK", p.StatusText())
			assert.Equal(t, []byte("42"), p.ResponseBody())
			assert.Equal(t, errcode.None, p.LastErrorCode())
			assert.Empty(t, p.LastError())
			assert.Equal(t, "POST", p.ResponseHeader().Get("X-Method"))
			assert.Equal(t, "text/plain", p.ResponseHeader().Get("X-Content-Type"))
		})
	}
}

func testHTTPError(t *testing.T) {
	t.Parallel()

	f := &HTTP{Doer: httpServer.Client()}
	p := f.Create()
	rec := newRecorder(p)

	p.Send(context.Background(), serverInstruction{StatusCode: 404, Body: "nope"}.url(httpServer), "POST", nil, nil)
	rec.wait(t)

	assert.Equal(t, []Signal{Complete, Error}, rec.signals())
	assert.Equal(t, 404, p.StatusCode())
	assert.Equal(t, "Not Found", p.StatusText())
	assert.Equal(t, []byte("nope"), p.ResponseBody())
	assert.Equal(t, errcode.HTTPError, p.LastErrorCode())
	assert.Equal(t, "404 Not Found", p.LastError())
}

func testHTTPBaseURL(t *testing.T) {
	t.Parallel()

	f := &HTTP{Doer: httpServer.Client(), BaseURL: httpServer.URL + "/ignored"}
	p := f.Create()
	rec := newRecorder(p)

	p.Send(context.Background(), serverInstruction{Body: "based"}.path(), "PUT", nil, nil)
	rec.wait(t)

	assert.Equal(t, []Signal{Complete, Success}, rec.signals())
	assert.Equal(t, []byte("based"), p.ResponseBody())
	assert.Equal(t, "PUT", p.ResponseHeader().Get("X-Method"))

	t.Run("bad base", func(t *testing.T) {
		p := (&HTTP{BaseURL: "http://[::1"}).Create()
		rec := newRecorder(p)
		p.Send(context.Background(), "/api", "POST", nil, nil)
		rec.wait(t)
		assert.Equal(t, []Signal{Complete, Error}, rec.signals())
		assert.Equal(t, errcode.Exception, p.LastErrorCode())
	})
}

func testHTTPProgress(t *testing.T) {
	t.Parallel()

	body := bytes.Repeat([]byte("x"), 256*1024)
	t.Run("enabled", func(t *testing.T) {
		f := &HTTP{Doer: httpServer.Client()}
		p := f.Create()
		p.EnableProgressEvents()
		rec := newRecorder(p)

		p.Send(context.Background(), serverInstruction{Echo: true}.url(httpServer), "POST", body, nil)
		rec.wait(t)

		sigs := rec.signals()
		require.GreaterOrEqual(t, len(sigs), 4)
		assert.Equal(t, []Signal{Complete, Success}, sigs[len(sigs)-2:])
		var up, down []Event
		for _, e := range rec.events() {
			switch e.Signal {
			case UploadProgress:
				assert.Empty(t, down, "upload progress after download progress")
				up = append(up, e)
			case DownloadProgress:
				down = append(down, e)
			}
		}
		require.NotEmpty(t, up)
		require.NotEmpty(t, down)
		assert.Equal(t, int64(len(body)), up[len(up)-1].Loaded)
		assert.Equal(t, int64(len(body)), up[len(up)-1].Total)
		assert.Equal(t, int64(len(body)), down[len(down)-1].Loaded)
		assert.Equal(t, body, p.ResponseBody())
	})
	t.Run("disabled", func(t *testing.T) {
		f := &HTTP{Doer: httpServer.Client()}
		p := f.Create()
		rec := newRecorder(p)

		p.Send(context.Background(), serverInstruction{Echo: true}.url(httpServer), "POST", body, nil)
		rec.wait(t)

		assert.Equal(t, []Signal{Complete, Success}, rec.signals())
	})
}

func testHTTPAbortInFlight(t *testing.T) {
	t.Parallel()

	for _, server := range servers {
		t.Run(serverName(server), func(t *testing.T) {
			f := &HTTP{Doer: server.Client()}
			p := f.Create()
			rec := newRecorder(p)

			p.Send(context.Background(), serverInstruction{HeaderPause: time.Minute}.url(server), "POST", nil, nil)
			time.Sleep(10 * time.Millisecond)
			p.Abort()
			rec.wait(t)
			p.Abort()

			assert.Equal(t, []Signal{Complete, Error}, rec.signals())
			assert.Equal(t, errcode.Abort, p.LastErrorCode())
			assert.Equal(t, errcode.ErrAborted.Error(), p.LastError())
			assert.Equal(t, 0, p.StatusCode())
		})
	}
}

func testHTTPAbortBeforeSend(t *testing.T) {
	t.Parallel()

	doer := newMockHTTPDoer(t)
	p := (&HTTP{Doer: doer}).Create()
	rec := newRecorder(p)

	p.Abort()
	p.Send(context.Background(), "/api", "POST", nil, nil)
	rec.wait(t)

	doer.AssertNotCalled(t, "Do", mock.Anything)
	assert.Equal(t, []Signal{Complete, Error}, rec.signals())
	assert.Equal(t, errcode.Abort, p.LastErrorCode())
}

func testHTTPContextCancel(t *testing.T) {
	t.Parallel()

	f := &HTTP{Doer: httpServer.Client()}
	p := f.Create()
	rec := newRecorder(p)
	ctx, cancel := context.WithCancel(context.Background())

	p.Send(ctx, serverInstruction{HeaderPause: time.Minute}.url(httpServer), "POST", nil, nil)
	time.Sleep(10 * time.Millisecond)
	cancel()
	rec.wait(t)

	assert.Equal(t, []Signal{Complete, Error}, rec.signals())
	assert.Equal(t, errcode.Abort, p.LastErrorCode())
}

func testHTTPTimeout(t *testing.T) {
	t.Parallel()

	for _, server := range servers {
		t.Run(serverName(server), func(t *testing.T) {
			f := &HTTP{Doer: server.Client(), TimeoutPolicy: timeout.Fixed(25 * time.Millisecond)}
			p := f.Create()
			rec := newRecorder(p)

			p.Send(context.Background(), serverInstruction{HeaderPause: time.Minute}.url(server), "POST", nil, nil)
			rec.wait(t)

			assert.Equal(t, []Signal{Complete, Error}, rec.signals())
			assert.Equal(t, errcode.Timeout, p.LastErrorCode())
			assert.NotEmpty(t, p.LastError())
		})
	}
}

func testHTTPException(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		code errcode.Code
	}{
		{"refused", syscall.ECONNREFUSED, errcode.Exception},
		{"generic", errors.New("the network is on fire"), errcode.Exception},
		{"timeout", syscall.ETIMEDOUT, errcode.Timeout},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			doer := newMockHTTPDoer(t)
			doer.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				return r.URL.String() == "http://example.com/api" && r.Method == "POST"
			})).Return(nil, testCase.err).Once()
			p := (&HTTP{Doer: doer}).Create()
			rec := newRecorder(p)

			p.Send(context.Background(), "http://example.com/api", "POST", []byte("x"), nil)
			rec.wait(t)

			doer.AssertExpectations(t)
			assert.Equal(t, []Signal{Complete, Error}, rec.signals())
			assert.Equal(t, testCase.code, p.LastErrorCode())
			assert.Equal(t, testCase.err.Error(), p.LastError())
			assert.Nil(t, p.ResponseBody())
			assert.Nil(t, p.ResponseHeader())
		})
	}
}

func testHTTPDispose(t *testing.T) {
	t.Parallel()

	t.Run("in flight", func(t *testing.T) {
		doer := newMockHTTPDoer(t)
		returned := make(chan struct{})
		doer.On("Do", mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(*http.Request).Context().Done()
			}).
			Return(nil, context.Canceled).Once()
		p := (&HTTP{Doer: doer}).Create()
		rec := newRecorder(p)

		p.Send(context.Background(), "http://example.com/api", "POST", nil, nil)
		p.Dispose()
		p.Dispose()
		go func() {
			for {
				if p.LastErrorCode() != errcode.None {
					close(returned)
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()
		select {
		case <-returned:
		case <-time.After(5 * time.Second):
			t.Fatal("primitive never finished")
		}
		p.Abort()

		assert.Empty(t, rec.signals())
		assert.Equal(t, errcode.Abort, p.LastErrorCode())
	})
	t.Run("before send", func(t *testing.T) {
		doer := newMockHTTPDoer(t)
		p := (&HTTP{Doer: doer}).Create()
		rec := newRecorder(p)
		p.Dispose()
		p.Send(context.Background(), "/api", "POST", nil, nil)
		time.Sleep(5 * time.Millisecond)
		doer.AssertNotCalled(t, "Do", mock.Anything)
		assert.Empty(t, rec.signals())
	})
}

func testHTTPSendTwice(t *testing.T) {
	t.Parallel()

	p := (&HTTP{Doer: httpServer.Client()}).Create()
	rec := newRecorder(p)
	p.Send(context.Background(), serverInstruction{}.url(httpServer), "POST", nil, nil)
	assert.Panics(t, func() {
		p.Send(context.Background(), serverInstruction{}.url(httpServer), "POST", nil, nil)
	})
	rec.wait(t)
}

func testHTTP2(t *testing.T) {
	t.Parallel()

	tlsConfig := http2Server.Client().Transport.(*http.Transport).TLSClientConfig.Clone()
	doer, err := NewHTTP2Doer(tlsConfig)
	require.NoError(t, err)
	p := (&HTTP{Doer: doer}).Create()
	rec := newRecorder(p)

	p.Send(context.Background(), serverInstruction{Body: "h2"}.url(http2Server), "POST", []byte("x"), nil)
	rec.wait(t)

	assert.Equal(t, []Signal{Complete, Success}, rec.signals())
	assert.Equal(t, "HTTP/2.0", p.ResponseHeader().Get("X-Proto"))
	assert.Equal(t, []byte("h2"), p.ResponseBody())
}

func testHTTPCloseIdleConnections(t *testing.T) {
	t.Run("with", func(t *testing.T) {
		doer := newMockHTTPDoerWithCloseIdleConnections(t)
		doer.On("CloseIdleConnections").Return().Once()
		(&HTTP{Doer: doer}).CloseIdleConnections()
		doer.AssertExpectations(t)
	})
	t.Run("without", func(t *testing.T) {
		doer := newMockHTTPDoer(t)
		assert.NotPanics(t, func() {
			(&HTTP{Doer: doer}).CloseIdleConnections()
		})
	})
}

func TestHTTP_ZeroValue(t *testing.T) {
	f := &HTTP{}
	assert.Same(t, http.DefaultClient, f.doer())
	assert.Equal(t, timeout.DefaultPolicy, f.timeoutPolicy())
	_, ok := DefaultFactory.(*HTTP)
	assert.True(t, ok)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", statusText(&http.Response{StatusCode: 200, Status: "200 OK"}))
	assert.Equal(t, "Teapot Time", statusText(&http.Response{StatusCode: 418, Status: "418 Teapot Time"}))
	assert.Equal(t, "Not Found", statusText(&http.Response{StatusCode: 404}))
}

// recorder records the signals emitted by a primitive and lets a test
// wait for the terminal signal.
type recorder struct {
	lock sync.Mutex
	evts []Event
	done chan struct{}
}

func newRecorder(p Primitive) *recorder {
	rec := &recorder{done: make(chan struct{})}
	h := HandlerFunc(func(sig Signal, e Event) {
		rec.lock.Lock()
		defer rec.lock.Unlock()
		rec.evts = append(rec.evts, e)
		if sig == Success || sig == Error {
			close(rec.done)
		}
	})
	for _, sig := range Signals() {
		p.Listen(sig, h)
	}
	return rec
}

func (rec *recorder) wait(t *testing.T) {
	select {
	case <-rec.done:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for terminal signal")
	}
}

func (rec *recorder) events() []Event {
	rec.lock.Lock()
	defer rec.lock.Unlock()
	return append([]Event(nil), rec.evts...)
}

func (rec *recorder) signals() []Signal {
	var sigs []Signal
	for _, e := range rec.events() {
		sigs = append(sigs, e.Signal)
	}
	return sigs
}

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
