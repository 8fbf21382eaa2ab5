// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core value types that flow through a
remote: Outgoing (what the application wants to transmit), Wire (the
HTTP request built from it by request middleware), and Response (the
normalized result handed to response middleware and then to the
caller).

The first core type is Outgoing. An Outgoing carries an opaque
application payload and an optional abort identity. The abort identity
groups in-flight requests so they can later be cancelled together:

	out := request.NewOutgoing(map[string]interface{}{"op": "ping"})
	out.AbortID = "load-people"
	remote.Transmit(out, callbacks)
	...
	remote.Cancel("load-people")

Like an http.Request, an Outgoing may be assigned a context. Cancelling
the context has the same effect as cancelling the abort identity, but
only for that one request:

	out, err := request.NewOutgoingWithContext(ctx, payload)

The second core type is Wire. The remote builds a base Wire (POST to
the remote URL, empty headers, the payload as body) and hands it to
request middleware, which may rewrite any field. After middleware runs,
the Wire body must be one of the raw body types accepted by BodyBytes.

The third core type is Response, which captures everything the
transport primitive reported about a completed request. It is the input
of response middleware and the value delivered to the completion
callback.
*/
package request
