// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"fmt"
	"strings"
)

// A Codec encodes application values to wire bytes and decodes them
// back.
//
// Implementations of Codec must be safe for concurrent use by multiple
// goroutines.
type Codec interface {
	// Encode encodes v, which must be composed of supported values or
	// values with a registered Handler.
	Encode(v interface{}) ([]byte, error)
	// Decode decodes b into a tree of supported values, using the
	// codec's handlers to rebuild tagged values.
	Decode(b []byte) (interface{}, error)
	// ContentType returns the MIME type of the encoded bytes.
	ContentType() string
}

// A Keyword is a symbolic name, distinct from a string on the wire.
type Keyword string

func (k Keyword) String() string {
	return ":" + string(k)
}

// Tagged is a tagged value with no registered handler.
type Tagged struct {
	Tag   string
	Value interface{}
}

// ErrUnsupportedType is returned, wrapped, when a value can't be
// encoded.
var ErrUnsupportedType = errors.New("httpremote/codec: unsupported type")

var errEmpty = errors.New("httpremote/codec: empty input")

// Default is the default codec: JSON with the built-in handlers.
var Default = NewJSON(nil)

// Names returns the names understood by ByName.
func Names() []string {
	return []string{"json", "cbor"}
}

// ByName returns a codec by name, "json" (or "transit+json") or "cbor",
// using the built-in handlers plus h.
func ByName(name string, h Handlers) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json", "transit+json":
		return NewJSON(h), nil
	case "cbor":
		return NewCBOR(h), nil
	default:
		return nil, fmt.Errorf("httpremote/codec: unknown codec %q", name)
	}
}
