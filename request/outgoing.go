// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
)

const (
	nilCtxMsg = "httpremote/request: nil context"
)

// An Outgoing is an application-level transaction to be transmitted
// through a remote.
type Outgoing struct {
	// Payload is the application value to transmit. It is opaque to
	// the remote and only interpreted by request middleware (the
	// default request middleware encodes it with a codec).
	Payload interface{}

	// AbortID is the optional abort identity of the request. The empty
	// string means the request has no abort identity and cannot be
	// cancelled through the remote.
	//
	// The same abort identity may be shared by any number of
	// concurrently in-flight requests; cancelling it aborts them all.
	AbortID string

	// ctx allows an individual Outgoing to be cancelled. It should only
	// be modified by copying the whole Outgoing using WithContext.
	ctx context.Context
}

// NewOutgoing wraps NewOutgoingWithContext using the background
// context.
func NewOutgoing(payload interface{}) *Outgoing {
	out, _ := NewOutgoingWithContext(context.Background(), payload)
	return out
}

// NewOutgoingWithContext returns a new Outgoing for the given payload.
// Cancelling ctx aborts the request if it is still in flight.
func NewOutgoingWithContext(ctx context.Context, payload interface{}) (*Outgoing, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	return &Outgoing{
		Payload: payload,
		ctx:     ctx,
	}, nil
}

// Context returns the outgoing request's context. To change the
// context, use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (o *Outgoing) Context() context.Context {
	if o.ctx != nil {
		return o.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of o with its context changed to
// ctx, which must be non-nil.
func (o *Outgoing) WithContext(ctx context.Context) *Outgoing {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	o2 := new(Outgoing)
	*o2 = *o
	o2.ctx = ctx
	return o2
}

// WithAbortID returns a shallow copy of o with its abort identity
// changed to id.
func (o *Outgoing) WithAbortID(id string) *Outgoing {
	o2 := new(Outgoing)
	*o2 = *o
	o2.AbortID = id
	return o2
}
