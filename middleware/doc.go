// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package middleware provides the request and response transforms a remote
applies around each transport call.

A RequestFunc turns the base wire request, whose Body is still the
application payload, into the real wire request. A ResponseFunc turns
the raw response, whose Body is the []byte the transport received, into
the normalized response handed to the caller. Either may fail by
returning an error (or by panicking, which the remote recovers).

Compose middleware with Then. The left-hand function runs first:

	req := middleware.CSRFToken(token).
		Then(middleware.RequestID()).
		Then(middleware.DefaultRequest)

DefaultRequest encodes the payload with codec.Default. DefaultResponse
decodes the body with codec.Default, substitutes the status code for an
empty body, and on a decode failure logs a warning and passes the
response through undecoded.
*/
package middleware
