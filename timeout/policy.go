// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"strings"
	"time"

	"github.com/codonnell/httpremote/request"
)

// A Policy defines a timeout policy which may be plugged into the HTTP
// transport primitive (transport.HTTP) to direct how long to wait for
// each wire request to complete.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the wire request about to
	// be sent. A return value of zero or less means no timeout.
	Timeout(w *request.Wire) time.Duration
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as timeout policies.
type PolicyFunc func(w *request.Wire) time.Duration

// Timeout returns f(w).
func (f PolicyFunc) Timeout(w *request.Wire) time.Duration {
	return f(w)
}

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// DefaultPolicy is the default timeout policy. Like a browser XHR, it
// never times out.
var DefaultPolicy = Infinite

// Fixed constructs a timeout policy that uses the same value for every
// wire request.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Wire) time.Duration {
	return time.Duration(p)
}

// ByMethod constructs a timeout policy that varies the timeout by HTTP
// method. Method names are matched case-insensitively; any method not
// present in byMethod gets the usual timeout.
//
// Consider the following timeout policy:
//
//	p := ByMethod(10*time.Second, map[string]time.Duration{"GET": 2*time.Second})
//
// The policy p times out reads after 2 seconds and every other request
// after 10 seconds.
func ByMethod(usual time.Duration, byMethod map[string]time.Duration) Policy {
	m := make(map[string]time.Duration, len(byMethod))
	for k, v := range byMethod {
		m[strings.ToUpper(k)] = v
	}
	return methodPolicy{usual: usual, m: m}
}

type methodPolicy struct {
	usual time.Duration
	m     map[string]time.Duration
}

func (p methodPolicy) Timeout(w *request.Wire) time.Duration {
	if w != nil {
		if d, ok := p.m[strings.ToUpper(w.Method)]; ok {
			return d
		}
	}
	return p.usual
}
