// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"errors"
	"net/http"

	"github.com/codonnell/httpremote/request"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// CSRFHeader is the header CSRFToken sets.
	CSRFHeader = "X-CSRF-Token"
	// RequestIDHeader is the header RequestID sets.
	RequestIDHeader = "X-Request-ID"
)

// ErrThrottled is returned by Throttle middleware when the limiter has
// no token available.
var ErrThrottled = errors.New("httpremote/middleware: request throttled")

// Headers returns request middleware which sets each header in h,
// replacing any existing values.
func Headers(h http.Header) RequestFunc {
	h = h.Clone()
	return func(w *request.Wire) (*request.Wire, error) {
		if w == nil {
			return nil, request.ErrNilWire
		}
		w = w.Clone()
		for k, vs := range h {
			w.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
		return w, nil
	}
}

// CSRFToken returns request middleware which sets the X-CSRF-Token
// header. An empty token leaves the request unchanged.
func CSRFToken(token string) RequestFunc {
	if token == "" {
		return Identity
	}
	return Headers(http.Header{CSRFHeader: {token}})
}

// RequestID returns request middleware which sets the X-Request-ID
// header to a fresh random UUID, unless the request already has one.
func RequestID() RequestFunc {
	return func(w *request.Wire) (*request.Wire, error) {
		if w == nil {
			return nil, request.ErrNilWire
		}
		if w.Header.Get(RequestIDHeader) != "" {
			return w, nil
		}
		w = w.Clone()
		w.Header.Set(RequestIDHeader, uuid.NewString())
		return w, nil
	}
}

// Throttle returns request middleware which fails with ErrThrottled
// when lim has no token available. Requests are rejected, never
// delayed.
func Throttle(lim *rate.Limiter) RequestFunc {
	return func(w *request.Wire) (*request.Wire, error) {
		if !lim.Allow() {
			return nil, ErrThrottled
		}
		return w, nil
	}
}
