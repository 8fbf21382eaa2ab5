// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"errors"
	"fmt"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/request"
)

// An ErrorKind classifies why a transmit ended with the error callback.
type ErrorKind int

const (
	// MiddlewareAborted means response middleware failed while
	// processing an otherwise successful transport result. The Error's
	// Response is the raw response, so the caller can still see what
	// the server returned.
	MiddlewareAborted ErrorKind = iota
	// MiddlewareFailed means request middleware failed or produced a
	// malformed wire request. Nothing was sent.
	MiddlewareFailed
	// NetworkFailed means the transport signaled an error, including
	// an HTTP error status and cancellation. The Error's Response
	// carries the classified errcode.Code.
	NetworkFailed
	errorKindSentinel

	numErrorKinds = int(errorKindSentinel)
)

var errorKindNames = []string{
	"middleware-aborted",
	"middleware-failed",
	"network-failed",
}

// ErrorKinds returns all error kinds.
func ErrorKinds() []ErrorKind {
	return []ErrorKind{
		MiddlewareAborted,
		MiddlewareFailed,
		NetworkFailed,
	}
}

// Name returns the name of the error kind.
func (k ErrorKind) Name() string {
	return errorKindNames[int(k)]
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	return k.Name()
}

// ErrNilOutgoing is the cause of the MiddlewareFailed error reported
// when Transmit is called with a nil request.
var ErrNilOutgoing = errors.New("httpremote: nil outgoing request")

// Error is the detail passed to an error callback.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Err is the cause: the error returned (or a *PanicError for the
	// panic raised) by middleware, or for NetworkFailed the
	// *errcode.Error describing the transport failure.
	Err error
	// Response is the response as far as it got. For MiddlewareFailed
	// only Outgoing, OriginalPayload and, if middleware returned one,
	// the errant Request are set. For MiddlewareAborted and
	// NetworkFailed it is the raw transport result.
	Response *request.Response
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "httpremote: " + e.Kind.Name()
	}
	return "httpremote: " + e.Kind.Name() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the transport's last-error code, or errcode.None if the
// transmit failed before or after the transport did its job.
func (e *Error) Code() errcode.Code {
	if e.Kind != NetworkFailed || e.Response == nil {
		return errcode.None
	}
	return e.Response.ErrorCode
}

// Aborted reports whether the transmit was cancelled.
func (e *Error) Aborted() bool {
	return e.Code() == errcode.Abort
}

// Timeout reports whether the transport timed out.
func (e *Error) Timeout() bool {
	return e.Code() == errcode.Timeout
}

// A PanicError wraps a value recovered from a panic in middleware.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("httpremote: middleware panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// protect calls f, converting a panic into a *PanicError.
func protect(f func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()
	return f()
}
