// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// A HandlerGroup is a group of signal handler chains. Primitive
// implementations embed one to implement Listen.
//
// A HandlerGroup is not safe for concurrent modification; primitives
// install all handlers before sending.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds a signal handler to the back of the handler chain for
// a specific signal.
func (g *HandlerGroup) PushBack(sig Signal, h Handler) {
	if h == nil {
		panic("httpremote/transport: nil handler")
	}
	if sig < 0 || int(sig) >= numSignals {
		panic("httpremote/transport: invalid signal")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numSignals)
	}

	g.handlers[sig] = append(g.handlers[sig], h)
}

// Run runs the handler chain for the event's signal.
func (g *HandlerGroup) Run(e Event) {
	i := int(e.Signal)
	if i < len(g.handlers) {
		run(g.handlers[i], e)
	}
}

// Has reports whether any handler is installed for sig.
func (g *HandlerGroup) Has(sig Signal) bool {
	i := int(sig)
	return i < len(g.handlers) && len(g.handlers[i]) > 0
}

func run(chain []Handler, e Event) {
	for _, h := range chain {
		h.Handle(e.Signal, e)
	}
}

// A Handler handles a signal emitted by a transport primitive.
type Handler interface {
	Handle(Signal, Event)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as signal handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Signal, Event)

// Handle calls f(sig, e).
func (f HandlerFunc) Handle(sig Signal, e Event) {
	f(sig, e)
}
