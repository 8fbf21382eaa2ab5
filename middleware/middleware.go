// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"github.com/codonnell/httpremote/request"
)

// A RequestFunc transforms a wire request before it is sent. It should
// not modify its argument; return a clone instead.
type RequestFunc func(w *request.Wire) (*request.Wire, error)

// Then returns a RequestFunc that runs f and then, if f succeeds, g on
// f's result.
func (f RequestFunc) Then(g RequestFunc) RequestFunc {
	return func(w *request.Wire) (*request.Wire, error) {
		w, err := f(w)
		if err != nil {
			return nil, err
		}
		return g(w)
	}
}

// A ResponseFunc transforms a response after the transport succeeds. It
// should not modify its argument; return a clone instead.
type ResponseFunc func(r *request.Response) (*request.Response, error)

// Then returns a ResponseFunc that runs f and then, if f succeeds, g on
// f's result.
func (f ResponseFunc) Then(g ResponseFunc) ResponseFunc {
	return func(r *request.Response) (*request.Response, error) {
		r, err := f(r)
		if err != nil {
			return nil, err
		}
		return g(r)
	}
}

// Identity is a RequestFunc which returns its argument unchanged.
func Identity(w *request.Wire) (*request.Wire, error) {
	return w, nil
}

// Passthrough is a ResponseFunc which returns its argument unchanged.
func Passthrough(r *request.Response) (*request.Response, error) {
	return r, nil
}
