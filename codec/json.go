// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// JSONContentType is the content type of the JSON codec.
const JSONContentType = "application/transit+json"

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type jsonCodec struct {
	t *tree
}

// NewJSON returns a JSON codec using the built-in handlers plus h.
//
// Floats are always written with a fraction or exponent so they decode
// as float64 rather than int64. NaN and the infinities, which JSON can't
// represent, are written as the strings "~zNaN", "~zINF" and "~z-INF".
func NewJSON(h Handlers) Codec {
	return &jsonCodec{t: newTree(h, jsonFloat)}
}

func (c *jsonCodec) Encode(v interface{}) ([]byte, error) {
	w, err := c.t.encode(v)
	if err != nil {
		return nil, err
	}
	return jsonAPI.Marshal(w)
}

func (c *jsonCodec) Decode(b []byte) (interface{}, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errEmpty
	}
	var w interface{}
	if err := jsonAPI.Unmarshal(b, &w); err != nil {
		return nil, err
	}
	return c.t.decode(w)
}

func (c *jsonCodec) ContentType() string {
	return JSONContentType
}

func jsonFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return special + "NaN"
	case math.IsInf(f, 1):
		return special + "INF"
	case math.IsInf(f, -1):
		return special + "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s)
}
