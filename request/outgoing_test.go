// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutgoing(t *testing.T) {
	out := NewOutgoing("ping")
	require.NotNil(t, out)
	assert.Equal(t, "ping", out.Payload)
	assert.Empty(t, out.AbortID)
	assert.Same(t, context.Background(), out.Context())
}

func TestNewOutgoingWithContext(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		out, err := NewOutgoingWithContext(nil, "ping")
		assert.Nil(t, out)
		assert.EqualError(t, err, nilCtxMsg)
	})
	t.Run("special context", func(t *testing.T) {
		type foo struct{}
		ctx := context.WithValue(context.Background(), foo{}, "bar")
		out, err := NewOutgoingWithContext(ctx, "ping")
		require.NoError(t, err)
		assert.Same(t, ctx, out.Context())
	})
}

func TestOutgoing_Context(t *testing.T) {
	var out Outgoing
	assert.Same(t, context.Background(), out.Context())
}

func TestOutgoing_WithContext(t *testing.T) {
	out := &Outgoing{Payload: "ham", AbortID: "eggs"}
	assert.Panics(t, func() {
		out.WithContext(nil)
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out2 := out.WithContext(ctx)
	assert.NotSame(t, out, out2)
	assert.Same(t, ctx, out2.Context())
	assert.Equal(t, "ham", out2.Payload)
	assert.Equal(t, "eggs", out2.AbortID)
	assert.Same(t, context.Background(), out.Context())
}

func TestOutgoing_WithAbortID(t *testing.T) {
	out := NewOutgoing("spam")
	out2 := out.WithAbortID("x")
	assert.NotSame(t, out, out2)
	assert.Empty(t, out.AbortID)
	assert.Equal(t, "x", out2.AbortID)
	assert.Equal(t, "spam", out2.Payload)
}
