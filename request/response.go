// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/codonnell/httpremote/errcode"
)

// A Response is the normalized result of a transmitted request.
//
// The remote fills in a Response from the transport primitive's
// post-hoc state once the primitive reaches a terminal signal. The
// Response is then passed through response middleware, which may
// replace Body (for example with the decoded payload), and delivered to
// the completion callback or, on failure, attached to the error.
//
// Response middleware should not modify the Response it is given in
// place; it should return a modified copy (see Clone), so that the raw
// response remains available if a later middleware step fails.
type Response struct {
	// OriginalPayload is the payload of the Outgoing that produced this
	// response.
	OriginalPayload interface{}
	// Outgoing is the request the caller transmitted. It is never nil
	// on a Response produced by a remote.
	Outgoing *Outgoing
	// Request is the wire request that was sent, after request
	// middleware.
	Request *Wire
	// Body is the response body. As reported by the transport it is a
	// []byte (possibly empty); response middleware typically replaces
	// it with a decoded value.
	Body interface{}
	// StatusCode is the HTTP status code, or zero if no HTTP response
	// was received.
	StatusCode int
	// StatusText is the HTTP status text, for example "Not Found",
	// or the empty string if no HTTP response was received.
	StatusText string
	// Header is the HTTP response header, or nil if no HTTP response
	// was received.
	Header http.Header
	// ErrorCode is the transport's last-error code. It is errcode.None
	// for a successful request.
	ErrorCode errcode.Code
	// ErrorText is the transport's last-error text.
	ErrorText string
	// Start is the time the request was sent.
	Start time.Time
	// End is the time the transport primitive reached a terminal
	// signal.
	End time.Time

	data context.Context
}

// Clone returns a shallow copy of r. Values stored with SetValue are
// shared with the copy.
func (r *Response) Clone() *Response {
	r2 := new(Response)
	*r2 = *r
	return r2
}

// RawBody returns the body as a byte slice if it is still the raw body
// reported by the transport.
func (r *Response) RawBody() ([]byte, bool) {
	b, ok := r.Body.([]byte)
	return b, ok
}

// Err returns the transport error as an *errcode.Error, or nil if the
// transport did not report one.
func (r *Response) Err() error {
	if r.ErrorCode == errcode.None {
		return nil
	}
	return &errcode.Error{Code: r.ErrorCode, Text: r.ErrorText}
}

// Timeout indicates whether the transport reported a timeout.
func (r *Response) Timeout() bool {
	return r.ErrorCode == errcode.Timeout
}

// Duration returns the time between sending the request and the
// terminal signal, or zero if either time is unset.
func (r *Response) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// SetValue allows middleware to store arbitrary data in the response.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (r *Response) SetValue(key, value interface{}) {
	ctx := r.data
	if ctx == nil {
		ctx = context.Background()
	}
	r.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this response for key,
// or nil if there is no value associated with key.
func (r *Response) Value(key interface{}) interface{} {
	ctx := r.data
	if ctx == nil {
		return nil
	}
	return ctx.Value(key)
}
