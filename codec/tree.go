// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	esc       = "~"
	tagPrefix = "~#"
	kwPrefix  = "~:"
	special   = "~z"
)

// A tree converts between application values and wire trees, which
// hold only nil, bool, string, int64, floats in the codec's chosen
// representation, []interface{} and map[string]interface{}.
type tree struct {
	handlers Handlers
	byType   map[reflect.Type]string
	// float returns the wire form of a float64.
	float func(f float64) interface{}
}

func newTree(h Handlers, float func(float64) interface{}) *tree {
	h = Builtins().Merge(h)
	t := &tree{
		handlers: h,
		byType:   make(map[reflect.Type]string, len(h)),
		float:    float,
	}
	for tag, x := range h {
		if x.Type == nil || x.Encode == nil || x.Decode == nil {
			panic("httpremote/codec: incomplete handler for tag " + strconv.Quote(tag))
		}
		t.byType[x.Type] = tag
	}
	return t
}

func escape(s string) string {
	if strings.HasPrefix(s, esc) {
		return esc + s
	}
	return s
}

func unescape(s string) string {
	if strings.HasPrefix(s, esc+esc) {
		return s[1:]
	}
	return s
}

func (t *tree) encode(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		return escape(x), nil
	case Keyword:
		return kwPrefix + string(x), nil
	case int64:
		return x, nil
	case float64:
		return t.float(x), nil
	case Tagged:
		rep, err := t.encode(x.Value)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{tagPrefix + x.Tag: rep}, nil
	}

	rv := reflect.ValueOf(v)
	if tag, ok := t.byType[rv.Type()]; ok {
		rep, err := t.handlers[tag].Encode(v)
		if err != nil {
			return nil, fmt.Errorf("httpremote/codec: encoding %q: %w", tag, err)
		}
		return t.encode(Tagged{Tag: tag, Value: rep})
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return escape(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("httpremote/codec: integer %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return t.float(rv.Float()), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return t.encode(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return []interface{}{}, nil
		}
		fallthrough
	case reflect.Array:
		a := make([]interface{}, rv.Len())
		for i := range a {
			e, err := t.encode(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			a[i] = e
		}
		return a, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e, err := t.encode(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			m[escape(iter.Key().String())] = e
		}
		return m, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func (t *tree) decode(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case string:
		return decodeString(x), nil
	case json.Number:
		return decodeNumber(x)
	case []interface{}:
		a := make([]interface{}, len(x))
		for i := range x {
			e, err := t.decode(x[i])
			if err != nil {
				return nil, err
			}
			a[i] = e
		}
		return a, nil
	case map[string]interface{}:
		if len(x) == 1 {
			for k, rep := range x {
				if strings.HasPrefix(k, tagPrefix) {
					return t.decodeTagged(k[len(tagPrefix):], rep)
				}
			}
		}
		m := make(map[string]interface{}, len(x))
		for k, e := range x {
			d, err := t.decode(e)
			if err != nil {
				return nil, err
			}
			m[unescape(k)] = d
		}
		return m, nil
	default:
		return v, nil
	}
}

func (t *tree) decodeTagged(tag string, rep interface{}) (interface{}, error) {
	value, err := t.decode(rep)
	if err != nil {
		return nil, err
	}
	h, ok := t.handlers[tag]
	if !ok {
		return Tagged{Tag: tag, Value: value}, nil
	}
	d, err := h.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("httpremote/codec: decoding %q: %w", tag, err)
	}
	return d, nil
}

func decodeString(s string) interface{} {
	switch {
	case strings.HasPrefix(s, esc+esc):
		return s[1:]
	case strings.HasPrefix(s, kwPrefix):
		return Keyword(s[len(kwPrefix):])
	case s == special+"NaN":
		return math.NaN()
	case s == special+"INF":
		return math.Inf(1)
	case s == special+"-INF":
		return math.Inf(-1)
	default:
		return s
	}
}

func decodeNumber(n json.Number) (interface{}, error) {
	if !strings.ContainsAny(string(n), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	return n.Float64()
}
