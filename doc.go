// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpremote provides a pluggable HTTP remote: it turns an
application transaction into a network request, tracks the request
until it completes, reports progress, supports cancellation, and runs
encode/decode middleware around the wire format.

Create an HTTPRemote to begin transmitting. Its zero value POSTs to
"/api" using the default codec.

	remote := &httpremote.HTTPRemote{}
	out := request.NewOutgoing(map[string]interface{}{"op": "ping"}).WithAbortID("load-people")
	remote.Transmit(out, httpremote.Callbacks{
		OnComplete: func(r *request.Response) {
			fmt.Println(r.StatusCode, r.Body)
		},
		OnError: func(err *httpremote.Error) {
			fmt.Println(err.Kind, err.Code())
		},
	})
	...
	remote.Cancel("load-people")

Every transmit ends with exactly one call to OnComplete or OnError.
Errors are classified by Kind: MiddlewareFailed when request middleware
fails and nothing is sent, NetworkFailed when the transport reports an
error (an HTTP error status, a timeout, cancellation, or any other
failure, distinguished by errcode.Code), and MiddlewareAborted when
response middleware fails on an otherwise successful response.

For control over the wire format, install middleware from package
middleware:

	remote := &httpremote.HTTPRemote{
		RequestMiddleware: middleware.CSRFToken(token).
			Then(middleware.EncodeRequest(codec.NewCBOR(nil))),
		ResponseMiddleware: middleware.DecodeResponse(codec.NewCBOR(nil), nil),
	}

For control over how requests are sent, set a transport factory from
package transport:

	remote := &httpremote.HTTPRemote{
		Transport: &transport.HTTP{
			BaseURL:       "https://example.com",
			TimeoutPolicy: timeout.Fixed(30 * time.Second),
		},
	}

To observe progress, supply an update callback. Without one the
transport does not even enable progress events.

To hook into the lifecycle of every transmit, install a handler into
the appropriate handler chain:

	handlers := &httpremote.HandlerGroup{}
	handlers.PushBack(httpremote.AfterTerminal, httpremote.HandlerFunc(
		func(_ httpremote.Event, r *request.Response) {
			log.Printf("%s took %s", r.Request.URL, r.Duration())
		}))
	remote := &httpremote.HTTPRemote{
		Handlers: handlers,
	}

Package config builds an HTTPRemote from a YAML or TOML file and the
environment. MockRemote is a Remote for tests which never touches the
network; package transport/transporttest provides a scriptable
transport for testing code that uses an HTTPRemote.
*/
package httpremote
