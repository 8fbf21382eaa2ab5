// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"github.com/codonnell/httpremote/metrics"
	"github.com/codonnell/httpremote/middleware"
	"github.com/codonnell/httpremote/request"
	"github.com/codonnell/httpremote/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultURL is the URL an HTTPRemote with an empty URL sends to.
const DefaultURL = "/api"

// An HTTPRemote is a Remote which sends each transmit as one HTTP
// request through a transport primitive. Its zero value is a valid
// configuration.
//
// The zero value remote POSTs to DefaultURL, encodes and decodes with
// middleware.DefaultRequest and middleware.DefaultResponse, sends
// through transport.DefaultFactory, advertises serial behavior, logs to
// the global zerolog logger and records no metrics.
//
// HTTPRemote is safe for concurrent use by multiple goroutines. It owns
// the table of in-flight requests used by Cancel, so it must not be
// copied after first use.
//
// For each transmit, HTTPRemote:
//
// • applies request middleware to the base wire request (POST to URL,
// empty header, payload as body), and fails the transmit with
// MiddlewareFailed if middleware fails or produces a malformed request;
//
// • creates a fresh transport primitive, tracks it under the request's
// abort identity and sends it;
//
// • on the first terminal signal untracks and disposes the primitive,
// then applies response middleware to a successful result, and calls
// exactly one of the completion or error callbacks.
type HTTPRemote struct {
	// URL is the URL of the base wire request.
	//
	// If URL is empty, DefaultURL is used.
	URL string
	// RequestMiddleware turns the base wire request into the real one.
	//
	// If RequestMiddleware is nil, middleware.DefaultRequest is used.
	RequestMiddleware middleware.RequestFunc
	// ResponseMiddleware normalizes successful responses.
	//
	// If ResponseMiddleware is nil, middleware.DefaultResponse is used.
	ResponseMiddleware middleware.ResponseFunc
	// Transport creates the primitive each request is sent through.
	//
	// If Transport is nil, transport.DefaultFactory is used.
	Transport transport.Factory
	// Parallel, if true, clears the Serial behavior flag.
	Parallel bool
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a transmit.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives diagnostic logging.
	//
	// If Logger is nil, the global zerolog logger is used.
	Logger *zerolog.Logger
	// Metrics records transmit activity. It may be nil.
	Metrics *metrics.Collector

	requests tracker
}

// Transmit sends out and reports its outcome through cb.
//
// The request is cancelled, as if by Cancel, when its context is done.
func (r *HTTPRemote) Transmit(out *request.Outgoing, cb Callbacks) {
	c := &call{remote: r, out: out, cb: cb}
	c.start()
}

// Cancel aborts every in-flight request transmitted with abort identity
// id. Cancelling the empty identity, or one with nothing in flight, does
// nothing.
func (r *HTTPRemote) Cancel(id string) {
	n := r.requests.cancelAll(id)
	r.Metrics.Cancelled()
	r.logger().Debug().Str("abort_id", id).Int("handles", n).Msg("httpremote: cancel")
}

// BehaviorFlags returns Serial unless Parallel is set.
func (r *HTTPRemote) BehaviorFlags() Flags {
	return Flags{Serial: !r.Parallel}
}

func (r *HTTPRemote) url() string {
	if r.URL == "" {
		return DefaultURL
	}
	return r.URL
}

func (r *HTTPRemote) requestMiddleware() middleware.RequestFunc {
	if r.RequestMiddleware == nil {
		return middleware.DefaultRequest
	}
	return r.RequestMiddleware
}

func (r *HTTPRemote) responseMiddleware() middleware.ResponseFunc {
	if r.ResponseMiddleware == nil {
		return middleware.DefaultResponse
	}
	return r.ResponseMiddleware
}

func (r *HTTPRemote) transport() transport.Factory {
	if r.Transport == nil {
		return transport.DefaultFactory
	}
	return r.Transport
}

func (r *HTTPRemote) logger() *zerolog.Logger {
	if r.Logger == nil {
		return &log.Logger
	}
	return r.Logger
}
