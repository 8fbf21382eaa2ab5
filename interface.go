// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"github.com/codonnell/httpremote/request"
)

// Callbacks receive the outcome of one transmit. Exactly one of
// OnComplete or OnError is called per transmit. A nil callback is not
// called.
type Callbacks struct {
	// OnComplete receives the normalized response of a transmit whose
	// transport call and response middleware both succeeded.
	OnComplete func(r *request.Response)
	// OnError receives the detail of a failed transmit.
	OnError func(err *Error)
	// OnUpdate receives progress updates. If OnUpdate is nil, progress
	// events are not enabled on the transport at all.
	OnUpdate func(u Update)
}

// Transmitter is the interface that wraps the basic Transmit method.
//
// Transmit sends an outgoing request and reports the outcome through
// cb. It never panics and never returns an error: every failure is
// delivered to cb.OnError. Callbacks may run before Transmit returns
// (for example when request middleware fails) or later on another
// goroutine.
//
// Any Transmitter can be converted into a Remote via the Inflate
// function.
type Transmitter interface {
	Transmit(out *request.Outgoing, cb Callbacks)
}

// Canceller is the interface that wraps the basic Cancel method.
//
// Cancel aborts every in-flight request transmitted with the abort
// identity id. Each aborted request ends with exactly one error
// callback of kind NetworkFailed and code errcode.Abort. Cancelling an
// identity with nothing in flight does nothing.
type Canceller interface {
	Cancel(id string)
}

// Flags describes how callers should use a remote.
type Flags struct {
	// Serial means the caller's scheduler should queue requests to the
	// remote rather than dispatch them concurrently. The remote does
	// not enforce it.
	Serial bool
}

// Flagger is the interface that wraps the basic BehaviorFlags method.
type Flagger interface {
	BehaviorFlags() Flags
}

// Remote is the interface that groups the basic Transmit, Cancel and
// BehaviorFlags methods. HTTPRemote and MockRemote implement it.
//
// Any Transmitter can be converted into a Remote via the Inflate
// function.
type Remote interface {
	Transmitter
	Canceller
	Flagger
}

// Inflate converts any non-nil Transmitter into a Remote. Methods the
// Transmitter does not have are filled in: Cancel does nothing and
// BehaviorFlags returns serial flags.
func Inflate(t Transmitter) Remote {
	if t == nil {
		panic("httpremote: nil transmitter")
	}

	if r, ok := t.(Remote); ok {
		return r
	}

	return inflated{t}
}

type inflated struct {
	t Transmitter
}

func (i inflated) Transmit(out *request.Outgoing, cb Callbacks) {
	i.t.Transmit(out, cb)
}

func (i inflated) Cancel(id string) {
	if c, ok := i.t.(Canceller); ok {
		c.Cancel(id)
	}
}

func (i inflated) BehaviorFlags() Flags {
	if f, ok := i.t.(Flagger); ok {
		return f.BehaviorFlags()
	}
	return Flags{Serial: true}
}
