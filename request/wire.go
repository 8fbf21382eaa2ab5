// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

// ErrNilWire is returned by Validate when request middleware produced
// no request at all.
var ErrNilWire = errors.New("httpremote/request: nil wire request")

// A Wire is an HTTP request as seen by request middleware.
//
// Before request middleware runs, Body holds the application payload.
// After request middleware runs, Body must hold a raw body: nil, a
// string, a []byte, or an io.Reader.
type Wire struct {
	// Method specifies the HTTP method (POST, PUT, etc.).
	Method string

	// URL specifies the URL to send to. It may be relative (for example
	// the default remote URL "/api"), in which case the transport
	// primitive resolves it.
	URL string

	// Header contains the request header fields to send.
	Header http.Header

	// Body is the request body; see the type documentation.
	Body interface{}
}

// NewWire returns the base request for a payload: a POST to url with
// empty headers and the payload as body.
func NewWire(url string, payload interface{}) *Wire {
	return &Wire{
		Method: http.MethodPost,
		URL:    url,
		Header: make(http.Header),
		Body:   payload,
	}
}

// Clone returns a copy of w with a deep copy of its headers. The body
// is not copied.
func (w *Wire) Clone() *Wire {
	w2 := new(Wire)
	*w2 = *w
	w2.Header = w.Header.Clone()
	if w2.Header == nil {
		w2.Header = make(http.Header)
	}
	return w2
}

// Validate reports whether w is well-formed enough to be sent: it must
// be non-nil, have a parseable non-empty URL, a valid method token, and
// a raw body type. Validate does not read the body.
func (w *Wire) Validate() error {
	if w == nil {
		return ErrNilWire
	}
	if w.Method == "" {
		return errors.New("httpremote/request: missing method")
	}
	if !validMethod(w.Method) {
		return fmt.Errorf("httpremote/request: invalid method %q", w.Method)
	}
	if w.URL == "" {
		return errors.New("httpremote/request: missing url")
	}
	if _, err := urlpkg.Parse(w.URL); err != nil {
		return err
	}
	switch w.Body.(type) {
	case nil, string, []byte, io.Reader:
		return nil
	default:
		return fmt.Errorf("%s, got %T", badBodyTypeMsg, w.Body)
	}
}

func validMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>
	*/
	return len(method) > 0 && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune classifies a rune as being valid for a token as defined
// in https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+-.^_`|~", r)
}
