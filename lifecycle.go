// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"context"
	"sync"
	"time"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/metrics"
	"github.com/codonnell/httpremote/request"
	"github.com/codonnell/httpremote/transport"
)

// A call is the state of one transmit. It owns its transport handle.
type call struct {
	remote *HTTPRemote
	out    *request.Outgoing
	cb     Callbacks

	wire   *request.Wire
	handle transport.Primitive
	begin  time.Time
	stop   func() bool

	cleanupOnce sync.Once
	finishOnce  sync.Once
}

func (c *call) start() {
	r := c.remote
	if c.out == nil {
		c.failBeforeSend(nil, ErrNilOutgoing)
		return
	}

	var body []byte
	err := protect(func() error {
		w, err := r.requestMiddleware()(request.NewWire(r.url(), c.out.Payload))
		c.wire = w
		if err != nil {
			return err
		}
		if err = w.Validate(); err != nil {
			return err
		}
		body, err = request.BodyBytes(w.Body)
		return err
	})
	if err != nil {
		c.failBeforeSend(c.wire, err)
		return
	}

	h := r.transport().Create()
	c.handle = h
	if c.cb.OnUpdate != nil {
		h.EnableProgressEvents()
		h.Listen(transport.UploadProgress, transport.HandlerFunc(c.progress))
		h.Listen(transport.DownloadProgress, transport.HandlerFunc(c.progress))
	}
	h.Listen(transport.Complete, transport.HandlerFunc(func(transport.Signal, transport.Event) {
		c.cleanup()
	}))
	h.Listen(transport.Success, transport.HandlerFunc(func(transport.Signal, transport.Event) {
		c.finish(true)
	}))
	h.Listen(transport.Error, transport.HandlerFunc(func(transport.Signal, transport.Event) {
		c.finish(false)
	}))

	r.requests.track(c.out.AbortID, h)
	r.Metrics.Sent()
	ctx := c.out.Context()
	c.stop = context.AfterFunc(ctx, h.Abort)
	c.begin = time.Now()

	r.logger().Debug().
		Str("method", c.wire.Method).
		Str("url", c.wire.URL).
		Str("abort_id", c.out.AbortID).
		Int("bytes", len(body)).
		Msg("httpremote: transmit")
	r.Handlers.run(BeforeSend, &request.Response{
		OriginalPayload: c.out.Payload,
		Outgoing:        c.out,
		Request:         c.wire,
		Start:           c.begin,
	})
	c.update(Update{Phase: Sending})
	h.Send(ctx, c.wire.URL, c.wire.Method, body, c.wire.Header)
}

func (c *call) failBeforeSend(w *request.Wire, err error) {
	r := c.remote
	resp := &request.Response{Request: w}
	if c.out != nil {
		resp.OriginalPayload = c.out.Payload
		resp.Outgoing = c.out
	}
	l := r.logger()
	e := l.Debug()
	if _, ok := err.(*PanicError); ok {
		e = l.Error()
	}
	e.Err(err).Msg("httpremote: request middleware failed")
	r.Metrics.Outcome(metrics.OutcomeMiddlewareFailed, 0)
	if c.cb.OnError != nil {
		c.cb.OnError(&Error{Kind: MiddlewareFailed, Err: err, Response: resp})
	}
}

func (c *call) progress(sig transport.Signal, e transport.Event) {
	phase := Sending
	if sig == transport.DownloadProgress {
		phase = Receiving
	}
	c.update(Update{Phase: phase, Status: &e})
}

func (c *call) update(u Update) {
	if c.cb.OnUpdate != nil {
		c.cb.OnUpdate(u)
	}
}

// cleanup untracks and disposes the handle. It runs once, on the first
// terminal signal, before any terminal callback.
func (c *call) cleanup() {
	c.cleanupOnce.Do(func() {
		c.stop()
		c.remote.requests.untrack(c.out.AbortID, c.handle)
		c.handle.Dispose()
		c.remote.Metrics.Done()
	})
}

// finish delivers the outcome. It runs once, whichever of Success or
// Error arrives first.
func (c *call) finish(success bool) {
	c.finishOnce.Do(func() {
		c.cleanup()
		raw := c.response()
		r := c.remote
		r.Handlers.run(AfterTerminal, raw)
		if success {
			c.complete(raw)
		} else {
			c.fail(raw)
		}
	})
}

func (c *call) response() *request.Response {
	h := c.handle
	body := h.ResponseBody()
	if body == nil {
		body = []byte{}
	}
	return &request.Response{
		OriginalPayload: c.out.Payload,
		Outgoing:        c.out,
		Request:         c.wire,
		Body:            body,
		StatusCode:      h.StatusCode(),
		StatusText:      h.StatusText(),
		Header:          h.ResponseHeader(),
		ErrorCode:       h.LastErrorCode(),
		ErrorText:       h.LastError(),
		Start:           c.begin,
		End:             time.Now(),
	}
}

func (c *call) complete(raw *request.Response) {
	r := c.remote
	var resp *request.Response
	err := protect(func() error {
		var err error
		resp, err = r.responseMiddleware()(raw.Clone())
		return err
	})
	if err == nil && resp == nil {
		resp = raw
	}
	if err != nil {
		l := r.logger()
		e := l.Debug()
		if _, ok := err.(*PanicError); ok {
			e = l.Error()
		}
		e.Err(err).Int("status", raw.StatusCode).Msg("httpremote: response middleware failed")
		r.Metrics.Outcome(metrics.OutcomeMiddlewareAborted, raw.Duration())
		c.update(Update{Phase: Failed})
		if c.cb.OnError != nil {
			c.cb.OnError(&Error{Kind: MiddlewareAborted, Err: err, Response: raw})
		}
		r.Handlers.run(AfterCallback, raw)
		return
	}

	r.logger().Debug().
		Int("status", resp.StatusCode).
		Dur("duration", raw.Duration()).
		Msg("httpremote: transmit complete")
	r.Metrics.Outcome(metrics.OutcomeComplete, raw.Duration())
	c.update(Update{Phase: Complete})
	if c.cb.OnComplete != nil {
		c.cb.OnComplete(resp)
	}
	r.Handlers.run(AfterCallback, resp)
}

func (c *call) fail(raw *request.Response) {
	r := c.remote
	if raw.ErrorCode == errcode.None {
		// A primitive which signals Error must set a code.
		raw.ErrorCode = errcode.Unknown
	}
	r.logger().Debug().
		Stringer("code", raw.ErrorCode).
		Str("text", raw.ErrorText).
		Int("status", raw.StatusCode).
		Dur("duration", raw.Duration()).
		Msg("httpremote: transmit failed")
	r.Metrics.Outcome(metrics.OutcomeNetworkFailed, raw.Duration())
	c.update(Update{Phase: Failed})
	if c.cb.OnError != nil {
		c.cb.OnError(&Error{Kind: NetworkFailed, Err: raw.Err(), Response: raw})
	}
	r.Handlers.run(AfterCallback, raw)
}
