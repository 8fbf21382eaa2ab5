// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the transport primitive a remote sends its
wire requests through, and provides a primitive backed by net/http.

A Primitive sends one request and reports what happened through
discrete signals: UploadProgress and DownloadProgress while the request
is in flight (only if progress events were enabled before sending),
then the terminal sequence Complete followed by exactly one of Success
or Error. After the terminal sequence the primitive's post-hoc state
(response body, status, last-error code and text) can be queried, even
after Dispose.

Install signal handlers with Listen before calling Send:

	p := factory.Create()
	p.Listen(transport.Complete, transport.HandlerFunc(
		func(_ transport.Signal, _ transport.Event) {
			p.Dispose()
		}))
	p.Send(ctx, "https://example.com/api", "POST", body, header)

The HTTP factory is the production Factory. It resolves relative URLs
against a base URL, applies a timeout.Policy, and classifies failures
into errcode codes. Use NewHTTP2Doer to send over HTTP/2.

Sub-package transporttest provides a scriptable test double.
*/
package transport
