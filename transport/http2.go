// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"crypto/tls"
	"net/http"

	"golang.org/x/net/http2"
)

// NewHTTP2Doer returns an HTTP client whose transport negotiates HTTP/2
// over TLS, falling back to HTTP/1.1 for servers that do not support
// it. If tlsConfig is nil, a default TLS configuration is used.
//
// The returned client is suitable as the Doer of an HTTP factory.
func NewHTTP2Doer(tlsConfig *tls.Config) (*http.Client, error) {
	t := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsConfig,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, err
	}
	return &http.Client{Transport: t}, nil
}
