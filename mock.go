// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"errors"
	"net/http"
	"time"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/request"
)

// MockRemote is a Remote which never touches the network. Each transmit
// completes synchronously, before Transmit returns, with whatever
// Respond returns. Its zero value completes every transmit with status
// 200 and a nil body.
type MockRemote struct {
	// Respond produces the outcome of a transmit. A non-nil error ends
	// the transmit with the error callback: an *Error is delivered as
	// is, any other error as NetworkFailed with the code given by
	// errcode.Categorize.
	//
	// If Respond is nil, every transmit completes with status 200.
	Respond func(out *request.Outgoing) (*request.Response, error)
	// Parallel is reported through BehaviorFlags, as for HTTPRemote.
	Parallel bool
}

func (m *MockRemote) Transmit(out *request.Outgoing, cb Callbacks) {
	if out == nil {
		out = request.NewOutgoing(nil)
	}
	now := time.Now()
	update(cb, Update{Phase: Sending})
	var resp *request.Response
	var err error
	if m.Respond != nil {
		resp, err = m.Respond(out)
	}
	if resp == nil {
		resp = &request.Response{StatusCode: http.StatusOK, StatusText: http.StatusText(http.StatusOK)}
	}
	if resp.Outgoing == nil {
		resp.Outgoing = out
		resp.OriginalPayload = out.Payload
	}
	if resp.Start.IsZero() {
		resp.Start, resp.End = now, time.Now()
	}

	if err == nil {
		update(cb, Update{Phase: Complete})
		if cb.OnComplete != nil {
			cb.OnComplete(resp)
		}
		return
	}

	update(cb, Update{Phase: Failed})
	var e *Error
	if !errors.As(err, &e) {
		if resp.ErrorCode == errcode.None {
			resp.ErrorCode = errcode.Categorize(err)
			resp.ErrorText = err.Error()
		}
		e = &Error{Kind: NetworkFailed, Err: err, Response: resp}
	}
	if cb.OnError != nil {
		cb.OnError(e)
	}
}

// Cancel does nothing: a MockRemote has nothing in flight.
func (m *MockRemote) Cancel(_ string) {}

func (m *MockRemote) BehaviorFlags() Flags {
	return Flags{Serial: !m.Parallel}
}

func update(cb Callbacks, u Update) {
	if cb.OnUpdate != nil {
		cb.OnUpdate(u)
	}
}
