// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// A Signal identifies the kind of lifecycle notification emitted by a
// transport primitive.
type Signal int

const (
	// UploadProgress identifies the signal emitted as the request body
	// is sent. It is only emitted if progress events were enabled.
	UploadProgress Signal = iota
	// DownloadProgress identifies the signal emitted as the response
	// body is received. It is only emitted if progress events were
	// enabled.
	DownloadProgress
	// Complete identifies the first signal of the terminal sequence.
	// It is emitted exactly once per sent request, regardless of
	// outcome, and always before Success or Error.
	Complete
	// Success identifies the terminal signal emitted when the server
	// answered with a success status.
	Success
	// Error identifies the terminal signal emitted when the request
	// failed: a transport failure, a non-success status, a timeout, or
	// an abort.
	Error
	// signalSentinel provides the total number of signals typed as a
	// Signal.
	signalSentinel

	// numSignals provides the total number of signals as an int.
	numSignals = int(signalSentinel)
)

var signalNames = []string{
	"UploadProgress",
	"DownloadProgress",
	"Complete",
	"Success",
	"Error",
}

// Signals returns a slice containing all signals a primitive can emit,
// in the order in which they would occur.
func Signals() []Signal {
	return []Signal{
		UploadProgress,
		DownloadProgress,
		Complete,
		Success,
		Error,
	}
}

// Name returns the name of the signal.
func (sig Signal) Name() string {
	return signalNames[int(sig)]
}

// String returns the name of the signal.
func (sig Signal) String() string {
	return sig.Name()
}

// Terminal reports whether the signal belongs to the terminal
// sequence.
func (sig Signal) Terminal() bool {
	return sig == Complete || sig == Success || sig == Error
}

// An Event is the low-level payload delivered with a signal. It is
// opaque to the remote, which passes it through to progress callbacks.
type Event struct {
	// Signal is the signal the event was delivered with.
	Signal Signal
	// Loaded is the number of body bytes transferred so far.
	Loaded int64
	// Total is the total number of body bytes expected, or -1 if it is
	// not known.
	Total int64
}

// LengthComputable reports whether Total is known.
func (e Event) LengthComputable() bool {
	return e.Total >= 0
}
