// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package legacy provides the deprecated networking interface kept for
// older callers. It has a single error callback, no progress updates,
// no cancellation and no middleware.
//
// Deprecated: use httpremote.HTTPRemote.
package legacy

import (
	"context"
	"net/http"
	"sync"

	"github.com/codonnell/httpremote"
	"github.com/codonnell/httpremote/codec"
	"github.com/codonnell/httpremote/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Networking is the deprecated remote interface.
type Networking interface {
	// Send transmits payload and calls exactly one of ok or fail.
	Send(payload interface{}, ok func(body interface{}), fail func(body interface{}))
	// SerializeRequests reports whether callers should wait for each
	// request to finish before sending the next.
	SerializeRequests() bool
	// Start is called once before the first Send.
	Start()
}

// HTTP is a Networking which POSTs encoded payloads through a transport
// factory. Its zero value is a valid configuration.
type HTTP struct {
	// URL is the URL payloads are POSTed to. If URL is empty,
	// httpremote.DefaultURL is used.
	URL string
	// Transport creates the primitive each request is sent through. If
	// Transport is nil, transport.DefaultFactory is used.
	Transport transport.Factory
	// Codec encodes payloads and decodes bodies. If Codec is nil,
	// codec.Default is used.
	Codec codec.Codec
	// Parallel, if true, makes SerializeRequests return false.
	Parallel bool
	// Logger receives diagnostic logging. If Logger is nil, the global
	// zerolog logger is used.
	Logger *zerolog.Logger
	// GlobalErrorCallback, if set, is called with the status and
	// decoded body of every failed request, after fail.
	GlobalErrorCallback func(status int, body interface{})
}

// Start does nothing.
func (h *HTTP) Start() {}

// SerializeRequests returns true unless Parallel is set.
func (h *HTTP) SerializeRequests() bool {
	return !h.Parallel
}

// Send encodes payload and sends it. On success ok receives the decoded
// body, or the status code as an int64 if the body is empty. On failure
// fail receives the decoded error body if there is one and otherwise
// the status code; a payload which can't be encoded fails with the
// encoding error.
func (h *HTTP) Send(payload interface{}, ok func(body interface{}), fail func(body interface{})) {
	c := h.codec()
	b, err := c.Encode(payload)
	if err != nil {
		h.logger().Debug().Err(err).Msg("httpremote/legacy: encoding failed")
		h.failed(fail, 0, err)
		return
	}

	p := h.transport().Create()
	var once sync.Once
	done := func(success bool) {
		once.Do(func() {
			status, raw := p.StatusCode(), p.ResponseBody()
			code, text := p.LastErrorCode(), p.LastError()
			p.Dispose()
			body := h.decode(raw, status)
			if success {
				if ok != nil {
					ok(body)
				}
				return
			}
			h.logger().Debug().
				Int("status", status).
				Stringer("code", code).
				Str("text", text).
				Msg("httpremote/legacy: send failed")
			h.failed(fail, status, body)
		})
	}
	p.Listen(transport.Success, transport.HandlerFunc(func(transport.Signal, transport.Event) {
		done(true)
	}))
	p.Listen(transport.Error, transport.HandlerFunc(func(transport.Signal, transport.Event) {
		done(false)
	}))

	header := http.Header{}
	header.Set("Content-Type", c.ContentType())
	header.Set("Accept", c.ContentType())
	p.Send(context.Background(), h.url(), http.MethodPost, b, header)
}

func (h *HTTP) failed(fail func(interface{}), status int, body interface{}) {
	if fail != nil {
		fail(body)
	}
	if h.GlobalErrorCallback != nil {
		h.GlobalErrorCallback(status, body)
	}
}

// decode returns the decoded body, the status code if the body is
// empty, or the raw bytes if the body can't be decoded.
func (h *HTTP) decode(b []byte, status int) interface{} {
	if len(b) == 0 {
		return int64(status)
	}
	v, err := h.codec().Decode(b)
	if err != nil {
		h.logger().Warn().
			Err(err).
			Int("status", status).
			Int("bytes", len(b)).
			Msg("httpremote/legacy: response body decode failed")
		return b
	}
	return v
}

func (h *HTTP) url() string {
	if h.URL == "" {
		return httpremote.DefaultURL
	}
	return h.URL
}

func (h *HTTP) transport() transport.Factory {
	if h.Transport == nil {
		return transport.DefaultFactory
	}
	return h.Transport
}

func (h *HTTP) codec() codec.Codec {
	if h.Codec == nil {
		return codec.Default
	}
	return h.Codec
}

func (h *HTTP) logger() *zerolog.Logger {
	if h.Logger == nil {
		return &log.Logger
	}
	return h.Logger
}
