// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"fmt"

	"github.com/codonnell/httpremote/codec"
	"github.com/codonnell/httpremote/request"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultRequest is the default request middleware. It encodes the
// payload with codec.Default.
var DefaultRequest = EncodeRequest(codec.Default)

// DefaultResponse is the default response middleware. It decodes the
// body with codec.Default and logs decode failures to the global
// zerolog logger.
var DefaultResponse = DecodeResponse(codec.Default, nil)

// EncodeRequest returns request middleware which replaces the body with
// its encoding by c, and sets the Content-Type and Accept headers to
// the codec's content type.
func EncodeRequest(c codec.Codec) RequestFunc {
	return func(w *request.Wire) (*request.Wire, error) {
		if w == nil {
			return nil, request.ErrNilWire
		}
		b, err := c.Encode(w.Body)
		if err != nil {
			return nil, fmt.Errorf("httpremote/middleware: encoding request: %w", err)
		}
		w = w.Clone()
		w.Body = b
		w.Header.Set("Content-Type", c.ContentType())
		w.Header.Set("Accept", c.ContentType())
		return w, nil
	}
}

// DecodeResponse returns response middleware which decodes a []byte
// body with c.
//
// An empty body is replaced by the status code, as an int64. If the body
// can't be decoded, the failure is logged at warn level to logger (or,
// if logger is nil, the global zerolog logger) and the response is
// returned unmodified with a nil error, leaving the raw bytes for the
// caller to inspect. A body which is not a []byte, having been decoded
// already, is left alone.
func DecodeResponse(c codec.Codec, logger *zerolog.Logger) ResponseFunc {
	return func(r *request.Response) (*request.Response, error) {
		raw, ok := r.RawBody()
		if !ok {
			return r, nil
		}
		if len(raw) == 0 {
			r = r.Clone()
			r.Body = int64(r.StatusCode)
			return r, nil
		}
		v, err := c.Decode(raw)
		if err != nil {
			l := logger
			if l == nil {
				l = &log.Logger
			}
			l.Warn().
				Err(err).
				Int("status", r.StatusCode).
				Int("bytes", len(raw)).
				Str("content_type", r.Header.Get("Content-Type")).
				Msg("httpremote: response body decode failed")
			return r, nil
		}
		r = r.Clone()
		r.Body = v
		return r, nil
	}
}
