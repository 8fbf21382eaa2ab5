// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBORContentType is the content type of the CBOR codec.
const CBORContentType = "application/cbor"

var cborEnc, cborDec = mustCBORModes()

func mustCBORModes() (cbor.EncMode, cbor.DecMode) {
	em, err := cbor.EncOptions{
		Sort: cbor.SortCoreDeterministic,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
		IntDec:         cbor.IntDecConvertSignedOrFail,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return em, dm
}

type cborCodec struct {
	t *tree
}

// NewCBOR returns a CBOR codec using the built-in handlers plus h.
// Floats, including NaN and the infinities, use native CBOR floats.
func NewCBOR(h Handlers) Codec {
	return &cborCodec{t: newTree(h, func(f float64) interface{} { return f })}
}

func (c *cborCodec) Encode(v interface{}) ([]byte, error) {
	w, err := c.t.encode(v)
	if err != nil {
		return nil, err
	}
	return cborEnc.Marshal(w)
}

func (c *cborCodec) Decode(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return nil, errEmpty
	}
	var w interface{}
	if err := cborDec.Unmarshal(b, &w); err != nil {
		return nil, err
	}
	return c.t.decode(w)
}

func (c *cborCodec) ContentType() string {
	return CBORContentType
}
