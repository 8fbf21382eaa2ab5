// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

// An Event identifies a point in the lifecycle of one transmit at which
// an HTTPRemote runs the handlers installed for it. Install event
// handlers in an HTTPRemote to extend it with custom functionality.
type Event int

const (
	// BeforeSend identifies the event that occurs after request
	// middleware has produced a valid wire request and the transport
	// handle has been tracked, immediately before the handle is sent.
	//
	// When HTTPRemote fires BeforeSend, the response's Outgoing,
	// OriginalPayload, Request and Start fields are set. Handlers must
	// not modify the Request; use request middleware for that.
	//
	// BeforeSend never fires for a transmit whose request middleware
	// failed.
	BeforeSend Event = iota
	// AfterTerminal identifies the event that occurs after the
	// transport handle reached its terminal signal and was cleaned up,
	// before response middleware runs and before any terminal callback.
	//
	// When HTTPRemote fires AfterTerminal, the response holds the raw
	// transport result: Body is a []byte, and ErrorCode and ErrorText
	// classify the outcome.
	AfterTerminal
	// AfterCallback identifies the event that occurs after the single
	// terminal callback (OnComplete or OnError) of a sent transmit has
	// returned.
	//
	// When HTTPRemote fires AfterCallback, the response is the one the
	// callback received: the normalized response after OnComplete, or
	// the raw response after OnError.
	AfterCallback
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeSend",
	"AfterTerminal",
	"AfterCallback",
}

// Events returns a slice containing all events which can occur during a
// transmit, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeSend,
		AfterTerminal,
		AfterCallback,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
