// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"net/http"

	"github.com/codonnell/httpremote/errcode"
)

// A Primitive sends a single HTTP request and reports its lifecycle
// through signals. A Primitive is single use: Send may be called at
// most once.
//
// Implementations must observe the following contract:
//
// • Listen and EnableProgressEvents are only called before Send.
//
// • After Send, exactly one terminal sequence is emitted: Complete,
// then exactly one of Success or Error. Progress signals are never
// emitted after Complete.
//
// • Abort before Send makes the subsequent Send fail with code
// errcode.Abort. Abort of an in-flight request makes it fail with
// code errcode.Abort. Abort after the terminal sequence, and repeated
// Abort, are silent no-ops.
//
// • Dispose releases resources. Signals not yet begun are suppressed,
// but a terminal sequence already being emitted runs to the end.
// Post-hoc state remains readable after Dispose. Repeated Dispose is a
// no-op.
//
// • Abort and Dispose are safe to call from any goroutine, including
// from within a signal handler.
type Primitive interface {
	// EnableProgressEvents turns on UploadProgress and DownloadProgress
	// signals.
	EnableProgressEvents()
	// Listen installs a handler for a signal.
	Listen(sig Signal, h Handler)
	// Send starts sending the request. Signals may be delivered on any
	// goroutine, possibly before Send returns.
	Send(ctx context.Context, url, method string, body []byte, header http.Header)
	// Abort aborts the request.
	Abort()
	// Dispose releases the primitive.
	Dispose()

	// ResponseBody returns the response body received, if any.
	ResponseBody() []byte
	// ResponseHeader returns the response header received, if any.
	ResponseHeader() http.Header
	// StatusCode returns the HTTP status code, or zero.
	StatusCode() int
	// StatusText returns the HTTP status text, for example "Not Found".
	StatusText() string
	// LastErrorCode returns the classified last-error code.
	LastErrorCode() errcode.Code
	// LastError returns the last-error text.
	LastError() string
}

// A Factory creates fresh transport primitives.
//
// Implementations of Factory must be safe for concurrent use by
// multiple goroutines.
type Factory interface {
	Create() Primitive
}

// The FactoryFunc type is an adapter to allow the use of ordinary
// functions as primitive factories.
type FactoryFunc func() Primitive

// Create returns f().
func (f FactoryFunc) Create() Primitive {
	return f()
}

// DefaultFactory is the factory used when none is configured. It
// creates net/http backed primitives using http.DefaultClient.
var DefaultFactory Factory = &HTTP{}
