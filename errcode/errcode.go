// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package errcode

import (
	"context"
	"errors"
)

// A Code is the last-error code of a transport primitive, as reported
// by Categorize or ForStatus.
type Code int

const (
	// None indicates the primitive did not fail.
	None Code = iota
	// Exception indicates a failure to speak HTTP at all, for example
	// a refused connection, a DNS failure, or an error reading the
	// response body.
	Exception
	// HTTPError indicates the server answered with a status code that
	// is not a success status.
	HTTPError
	// Abort indicates the request was aborted, either explicitly by
	// the caller or because its context was cancelled.
	//
	// Function Categorize returns Abort if the error or any of its
	// wrapped causes is ErrAborted or context.Canceled.
	Abort
	// Timeout indicates the transport gave up waiting for the server.
	//
	// Function Categorize returns Timeout if the error is not an Abort
	// and the error or any of its wrapped causes has a Timeout function
	// that reports true.
	Timeout
	// Unknown is reserved for codes a primitive reports that have no
	// other classification.
	Unknown
	// codeSentinel provides the total number of codes.
	codeSentinel
)

var codeNames = []string{
	"none",
	"exception",
	"http-error",
	"abort",
	"timeout",
	"unknown",
}

// Codes returns a slice containing every Code, in declaration order.
func Codes() []Code {
	return []Code{None, Exception, HTTPError, Abort, Timeout, Unknown}
}

// Name returns the wire name of the code, for example "http-error".
// Out of range codes are named "unknown".
func (c Code) Name() string {
	if c < 0 || c >= codeSentinel {
		return codeNames[Unknown]
	}
	return codeNames[c]
}

// String returns the name of the code.
func (c Code) String() string {
	return c.Name()
}

// ErrAborted is the cause recorded by a transport primitive when it is
// aborted before reaching a terminal state.
var ErrAborted = errors.New("httpremote/errcode: aborted")

// Categorize returns the code for the given error. A nil error produces
// None. Errors which are neither aborts nor timeouts produce Exception.
//
// In assessing the error, Categorize looks at wrapped cause errors
// contained within err, not just err itself.
func Categorize(err error) Code {
	if err == nil {
		return None
	}

	if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
		return Abort
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	return Exception
}

// ForStatus returns None if status is a success status and HTTPError
// otherwise. The success statuses are the 2XX range plus 304 (Not
// Modified), the same set a browser XHR treats as successful.
func ForStatus(status int) Code {
	if (status >= 200 && status < 300) || status == 304 {
		return None
	}
	return HTTPError
}

type hasTimeout interface {
	Timeout() bool
}

// An Error pairs a Code with the transport's error text.
type Error struct {
	Code Code
	Text string
}

func (e *Error) Error() string {
	if e.Text == "" {
		return e.Code.Name()
	}
	return e.Code.Name() + ": " + e.Text
}

// Timeout reports whether the code is Timeout.
func (e *Error) Timeout() bool {
	return e.Code == Timeout
}
