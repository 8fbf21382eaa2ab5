// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	urlpkg "net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/request"
	"github.com/codonnell/httpremote/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// HTTP is a Factory of net/http backed primitives. Its zero value is a
// valid configuration.
//
// The primitives it creates send each request on a new goroutine using
// the HTTPDoer, buffer the whole response body, and classify the
// outcome: a success status emits Success; a non-success status emits
// Error with code errcode.HTTPError; a failure to complete the exchange
// emits Error with errcode.Abort, errcode.Timeout, or errcode.Exception
// as determined by errcode.Categorize.
type HTTP struct {
	// Doer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If Doer is nil, http.DefaultClient is used.
	Doer HTTPDoer
	// BaseURL is the URL relative request URLs are resolved against,
	// playing the role of a browser page's origin. If BaseURL is empty,
	// URLs are used as given.
	BaseURL string
	// TimeoutPolicy decides the timeout of each request.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
}

// Create returns a new primitive using the factory's configuration.
func (f *HTTP) Create() Primitive {
	return &httpPrimitive{
		doer:    f.doer(),
		baseURL: f.BaseURL,
		policy:  f.timeoutPolicy(),
	}
}

// CloseIdleConnections invokes the same method on the factory's
// HTTPDoer, if it has one.
func (f *HTTP) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := f.doer().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (f *HTTP) doer() HTTPDoer {
	if f.Doer == nil {
		return http.DefaultClient
	}
	return f.Doer
}

func (f *HTTP) timeoutPolicy() timeout.Policy {
	if f.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}
	return f.TimeoutPolicy
}

type primitiveState int

const (
	idle primitiveState = iota
	sending
	done
)

type httpPrimitive struct {
	doer     HTTPDoer
	baseURL  string
	policy   timeout.Policy
	handlers HandlerGroup
	progress bool

	// mu guards the lifecycle fields and the post-hoc state.
	mu       sync.Mutex
	state    primitiveState
	aborted  bool
	disposed bool
	cancel   context.CancelFunc

	body       []byte
	header     http.Header
	status     int
	statusText string
	code       errcode.Code
	errText    string

	// sigMu serializes signal dispatch so that no progress signal is
	// delivered after the terminal sequence has begun.
	sigMu      sync.Mutex
	terminated bool
}

func (p *httpPrimitive) EnableProgressEvents() {
	p.progress = true
}

func (p *httpPrimitive) Listen(sig Signal, h Handler) {
	p.handlers.PushBack(sig, h)
}

func (p *httpPrimitive) Send(ctx context.Context, url, method string, body []byte, header http.Header) {
	p.mu.Lock()
	if p.state != idle {
		p.mu.Unlock()
		panic("httpremote/transport: primitive already sent")
	}
	p.state = sending
	if p.disposed {
		p.mu.Unlock()
		return
	}
	if p.aborted {
		p.mu.Unlock()
		go p.finish(nil, nil, errcode.ErrAborted)
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	w := &request.Wire{Method: method, URL: url, Header: header, Body: body}
	ctx, cancel := context.WithCancel(ctx)
	if d := p.policy.Timeout(w); d > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, d)
		cancelParent := cancel
		cancel = func() {
			cancelTimeout()
			cancelParent()
		}
	}
	p.cancel = cancel
	p.mu.Unlock()

	go p.run(ctx, w, body)
}

func (p *httpPrimitive) run(ctx context.Context, w *request.Wire, body []byte) {
	defer p.cancel()

	u, err := p.resolve(w.URL)
	if err != nil {
		p.finish(nil, nil, err)
		return
	}

	var r io.Reader = bytes.NewReader(body)
	if p.progress {
		r = &progressReader{r: r, total: int64(len(body)), sig: UploadProgress, p: p}
	}
	req, err := http.NewRequestWithContext(ctx, w.Method, u, r)
	if err != nil {
		p.finish(nil, nil, err)
		return
	}
	req.ContentLength = int64(len(body))
	if len(body) == 0 {
		req.Body = http.NoBody
	}
	if w.Header != nil {
		req.Header = w.Header.Clone()
	}

	resp, err := p.doer.Do(req)
	if err != nil {
		p.finish(nil, nil, err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var rb io.Reader = resp.Body
	if p.progress {
		rb = &progressReader{r: rb, total: resp.ContentLength, sig: DownloadProgress, p: p}
	}
	b, err := io.ReadAll(rb)
	p.finish(resp, b, err)
}

func (p *httpPrimitive) resolve(rawURL string) (string, error) {
	if p.baseURL == "" {
		return rawURL, nil
	}
	base, err := urlpkg.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	ref, err := urlpkg.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (p *httpPrimitive) finish(resp *http.Response, body []byte, err error) {
	p.mu.Lock()
	if p.state == done {
		p.mu.Unlock()
		return
	}
	p.state = done
	if resp != nil {
		p.status = resp.StatusCode
		p.statusText = statusText(resp)
		p.header = resp.Header
		p.body = body
	}
	switch {
	case p.aborted:
		p.code = errcode.Abort
		p.errText = errcode.ErrAborted.Error()
	case err != nil:
		p.code = errcode.Categorize(err)
		p.errText = err.Error()
	default:
		p.code = errcode.ForStatus(p.status)
		if p.code != errcode.None {
			p.errText = resp.Status
		}
	}
	disposed := p.disposed
	code := p.code
	p.mu.Unlock()

	p.sigMu.Lock()
	defer p.sigMu.Unlock()
	p.terminated = true
	if disposed {
		return
	}
	p.handlers.Run(Event{Signal: Complete, Loaded: int64(len(body)), Total: int64(len(body))})
	if code == errcode.None {
		p.handlers.Run(Event{Signal: Success, Loaded: int64(len(body)), Total: int64(len(body))})
	} else {
		p.handlers.Run(Event{Signal: Error, Loaded: int64(len(body)), Total: -1})
	}
}

func (p *httpPrimitive) emitProgress(e Event) {
	p.sigMu.Lock()
	defer p.sigMu.Unlock()
	if p.terminated {
		return
	}
	p.mu.Lock()
	disposed := p.disposed
	p.mu.Unlock()
	if !disposed {
		p.handlers.Run(e)
	}
}

func (p *httpPrimitive) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == done || p.disposed || p.aborted {
		return
	}
	p.aborted = true
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *httpPrimitive) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	p.disposed = true
	if p.state == sending && p.cancel != nil {
		p.cancel()
	}
}

func (p *httpPrimitive) ResponseBody() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.body
}

func (p *httpPrimitive) ResponseHeader() http.Header {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header
}

func (p *httpPrimitive) StatusCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *httpPrimitive) StatusText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusText
}

func (p *httpPrimitive) LastErrorCode() errcode.Code {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code
}

func (p *httpPrimitive) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errText
}

// statusText strips the numeric code from resp.Status, so "404 Not
// Found" becomes "Not Found".
func statusText(resp *http.Response) string {
	s := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	s = strings.TrimSpace(s)
	if s == "" {
		return http.StatusText(resp.StatusCode)
	}
	return s
}

type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	sig    Signal
	p      *httpPrimitive
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 {
		pr.loaded += int64(n)
		pr.p.emitProgress(Event{Signal: pr.sig, Loaded: pr.loaded, Total: pr.total})
	}
	return n, err
}
