// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package codec converts application values to and from wire bytes.

A Codec encodes a tree of supported values: nil, bool, string, int64,
float64, Keyword, []interface{}, map[string]interface{} and Tagged. Any
Go integer kind encodes as int64 and float32 widens to float64; slices,
arrays and string-keyed maps of supported values are accepted too and
decode to their generic forms.

Other types are carried through custom Handlers, each of which maps a Go
type to a logical tag and a representation built of supported values.
On the wire a tagged value is the single-entry map {"~#tag": rep}, a
keyword is the string "~:name", and a string beginning with "~" is
escaped by doubling it. Tags with no handler decode to Tagged, so an
unknown extension survives a round trip.

Two codecs are provided: JSON, which is wire compatible with
application/transit+json map-as-object encoding, and CBOR. Default is
the JSON codec with the built-in handlers for time.Time ("inst") and
uuid.UUID ("uuid").
*/
package codec
