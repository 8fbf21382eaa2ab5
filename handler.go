// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"github.com/codonnell/httpremote/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in an HTTPRemote.
//
// Handlers run on whichever goroutine delivers the transport signal, so
// they must be safe for concurrent use. Install all handlers before the
// group is used by a remote.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpremote: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("httpremote: invalid event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, r *request.Response) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, r)
	}
}

func run(chain []Handler, evt Event, r *request.Response) {
	for _, h := range chain {
		h.Handle(evt, r)
	}
}

// A Handler handles the occurrence of an event during a transmit.
type Handler interface {
	Handle(Event, *request.Response)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Response)

// Handle calls f(evt, r).
func (f HandlerFunc) Handle(evt Event, r *request.Response) {
	f(evt, r)
}
