// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"github.com/codonnell/httpremote/transport"
)

// A Phase is the progress state reported to an update callback.
type Phase int

const (
	// Sending is reported once as the request is handed to the
	// transport, with a nil Status, and again for each upload progress
	// signal.
	Sending Phase = iota
	// Receiving is reported for each download progress signal.
	Receiving
	// Complete is the terminal update of a transmit which ends with the
	// completion callback.
	Complete
	// Failed is the terminal update of a sent transmit which ends with
	// the error callback.
	Failed
	phaseSentinel

	numPhases = int(phaseSentinel)
)

var phaseNames = []string{
	"sending",
	"receiving",
	"complete",
	"failed",
}

// Phases returns a slice containing all phases, in lifecycle order.
func Phases() []Phase {
	return []Phase{
		Sending,
		Receiving,
		Complete,
		Failed,
	}
}

// Name returns the name of the phase.
func (p Phase) Name() string {
	return phaseNames[int(p)]
}

// String returns the name of the phase.
func (p Phase) String() string {
	return p.Name()
}

// Terminal reports whether p is Complete or Failed.
func (p Phase) Terminal() bool {
	return p == Complete || p == Failed
}

// An Update is a progress notification delivered to an update callback.
type Update struct {
	// Phase is the progress state.
	Phase Phase
	// Status is the low-level transport event behind a progress update.
	// It is nil for the send-time update and the terminal update.
	Status *transport.Event
}
