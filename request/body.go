// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

const badBodyTypeMsg = "httpremote/request: invalid body type (use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyBytes converts a raw wire body to the byte slice the transport
// primitive sends.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the whole contents of the
// reader are returned (and the reader is closed if it implements
// io.Closer). A read or close error is returned with a nil slice.
//
// • If body is any other type, a nil byte slice and an error is
// returned.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			_ = x.Close()
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
