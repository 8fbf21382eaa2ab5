// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transporttest provides a scriptable transport.Factory for
// tests. Nothing happens on the network: the test decides when, and how,
// each primitive finishes.
package transporttest

import (
	"context"
	"net/http"
	"sync"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/transport"
)

// Factory is a transport.Factory which records every primitive it
// creates. The zero value is ready to use.
type Factory struct {
	// OnSend, if not nil, is called with each primitive after it is
	// sent, on the sending goroutine. It may script the primitive's
	// outcome immediately.
	OnSend func(p *Primitive)

	lock    sync.Mutex
	created []*Primitive
}

// Create returns a new fake primitive and records it.
func (f *Factory) Create() transport.Primitive {
	p := &Primitive{onSend: f.OnSend}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.created = append(f.created, p)
	return p
}

// Primitives returns every primitive created so far, oldest first.
func (f *Factory) Primitives() []*Primitive {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]*Primitive(nil), f.created...)
}

// Last returns the most recently created primitive, or nil.
func (f *Factory) Last() *Primitive {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// Primitive is a fake transport.Primitive. Signals are delivered
// synchronously on the goroutine of the method that causes them.
type Primitive struct {
	onSend   func(p *Primitive)
	handlers transport.HandlerGroup

	lock         sync.Mutex
	progress     bool
	sent         bool
	aborted      bool
	disposed     bool
	terminated   bool
	abortCount   int
	disposeCount int

	ctx    context.Context
	url    string
	method string
	body   []byte
	header http.Header

	respBody   []byte
	respHeader http.Header
	status     int
	statusText string
	code       errcode.Code
	errText    string
}

func (p *Primitive) EnableProgressEvents() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.progress = true
}

func (p *Primitive) Listen(sig transport.Signal, h transport.Handler) {
	p.handlers.PushBack(sig, h)
}

// Send records the request. A primitive aborted before it was sent
// finishes with errcode.Abort before Send returns.
func (p *Primitive) Send(ctx context.Context, url, method string, body []byte, header http.Header) {
	p.lock.Lock()
	if p.sent {
		p.lock.Unlock()
		panic("httpremote/transporttest: primitive already sent")
	}
	p.sent = true
	p.ctx, p.url, p.method, p.body = ctx, url, method, body
	p.header = header.Clone()
	aborted := p.aborted
	p.lock.Unlock()

	if aborted {
		p.terminate(0, "", nil, nil, errcode.Abort, errcode.ErrAborted.Error())
		return
	}
	if p.onSend != nil {
		p.onSend(p)
	}
}

// Progress emits an UploadProgress or DownloadProgress signal. It is
// ignored if progress events are not enabled, or if the primitive is
// not in flight.
func (p *Primitive) Progress(sig transport.Signal, loaded, total int64) {
	if sig != transport.UploadProgress && sig != transport.DownloadProgress {
		panic("httpremote/transporttest: not a progress signal")
	}
	p.lock.Lock()
	ok := p.progress && p.sent && !p.terminated && !p.disposed
	p.lock.Unlock()
	if ok {
		p.handlers.Run(transport.Event{Signal: sig, Loaded: loaded, Total: total})
	}
}

// Succeed finishes the primitive with the given status and body. A
// non-success status finishes with errcode.HTTPError, as a real
// primitive would.
func (p *Primitive) Succeed(status int, body []byte) {
	p.Respond(status, nil, body)
}

// Respond finishes the primitive with a complete HTTP response.
func (p *Primitive) Respond(status int, header http.Header, body []byte) {
	code := errcode.ForStatus(status)
	text := http.StatusText(status)
	var errText string
	if code != errcode.None {
		errText = text
	}
	p.terminate(status, text, header, body, code, errText)
}

// Fail finishes the primitive with an error that produced no HTTP
// response, such as errcode.Exception or errcode.Timeout.
func (p *Primitive) Fail(code errcode.Code, text string) {
	p.terminate(0, "", nil, nil, code, text)
}

func (p *Primitive) terminate(status int, statusText string, header http.Header, body []byte, code errcode.Code, errText string) {
	p.lock.Lock()
	if !p.sent || p.terminated {
		p.lock.Unlock()
		return
	}
	p.terminated = true
	p.status, p.statusText = status, statusText
	p.respHeader, p.respBody = header, body
	p.code, p.errText = code, errText
	disposed := p.disposed
	p.lock.Unlock()

	if disposed {
		return
	}
	n := int64(len(body))
	p.handlers.Run(transport.Event{Signal: transport.Complete, Loaded: n, Total: n})
	if code == errcode.None {
		p.handlers.Run(transport.Event{Signal: transport.Success, Loaded: n, Total: n})
	} else {
		p.handlers.Run(transport.Event{Signal: transport.Error, Loaded: n, Total: -1})
	}
}

// Abort finishes an in-flight primitive with errcode.Abort before it
// returns. Aborting a finished or disposed primitive does nothing.
func (p *Primitive) Abort() {
	p.lock.Lock()
	p.abortCount++
	if p.aborted || p.terminated || p.disposed {
		p.lock.Unlock()
		return
	}
	p.aborted = true
	sent := p.sent
	p.lock.Unlock()

	if sent {
		p.terminate(0, "", nil, nil, errcode.Abort, errcode.ErrAborted.Error())
	}
}

func (p *Primitive) Dispose() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.disposeCount++
	p.disposed = true
}

func (p *Primitive) ResponseBody() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.respBody
}

func (p *Primitive) ResponseHeader() http.Header {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.respHeader
}

func (p *Primitive) StatusCode() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.status
}

func (p *Primitive) StatusText() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.statusText
}

func (p *Primitive) LastErrorCode() errcode.Code {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.code
}

func (p *Primitive) LastError() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.errText
}

// Sent reports whether Send has been called.
func (p *Primitive) Sent() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.sent
}

// ProgressEnabled reports whether EnableProgressEvents has been called.
func (p *Primitive) ProgressEnabled() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.progress
}

// Terminated reports whether the terminal sequence has begun.
func (p *Primitive) Terminated() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.terminated
}

// AbortCount returns the number of times Abort was called.
func (p *Primitive) AbortCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.abortCount
}

// DisposeCount returns the number of times Dispose was called.
func (p *Primitive) DisposeCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.disposeCount
}

// Context returns the context the primitive was sent with.
func (p *Primitive) Context() context.Context {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.ctx
}

// URL returns the URL the primitive was sent to.
func (p *Primitive) URL() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.url
}

// Method returns the HTTP method the primitive was sent with.
func (p *Primitive) Method() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.method
}

// Body returns the request body the primitive was sent with.
func (p *Primitive) Body() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.body
}

// Header returns a copy of the request header the primitive was sent
// with.
func (p *Primitive) Header() http.Header {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.header.Clone()
}
