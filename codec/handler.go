// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// A Handler carries a Go type through a codec as a tagged value.
type Handler struct {
	// Type is the Go type the handler encodes. Values are matched by
	// exact type.
	Type reflect.Type
	// Encode returns the representation of v, built of supported
	// values. It is only called with values of Type.
	Encode func(v interface{}) (interface{}, error)
	// Decode rebuilds a value from its decoded representation.
	Decode func(rep interface{}) (interface{}, error)
}

// Handlers maps logical tags to handlers.
type Handlers map[string]Handler

// Builtins returns the built-in handlers: "inst" for time.Time and
// "uuid" for uuid.UUID.
func Builtins() Handlers {
	return Handlers{
		"inst": {
			Type: reflect.TypeOf(time.Time{}),
			Encode: func(v interface{}) (interface{}, error) {
				return v.(time.Time).Format(time.RFC3339Nano), nil
			},
			Decode: func(rep interface{}) (interface{}, error) {
				s, ok := rep.(string)
				if !ok {
					return nil, fmt.Errorf("httpremote/codec: inst representation must be a string, got %T", rep)
				}
				return time.Parse(time.RFC3339Nano, s)
			},
		},
		"uuid": {
			Type: reflect.TypeOf(uuid.UUID{}),
			Encode: func(v interface{}) (interface{}, error) {
				return v.(uuid.UUID).String(), nil
			},
			Decode: func(rep interface{}) (interface{}, error) {
				s, ok := rep.(string)
				if !ok {
					return nil, fmt.Errorf("httpremote/codec: uuid representation must be a string, got %T", rep)
				}
				return uuid.Parse(s)
			},
		},
	}
}

// Merge returns a new Handlers holding h and then other, so that a tag
// in other replaces the same tag in h.
func (h Handlers) Merge(other Handlers) Handlers {
	m := make(Handlers, len(h)+len(other))
	for tag, x := range h {
		m[tag] = x
	}
	for tag, x := range other {
		m[tag] = x
	}
	return m
}
