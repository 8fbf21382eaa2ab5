// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"errors"
	"testing"

	"github.com/codonnell/httpremote/errcode"
	"github.com/codonnell/httpremote/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKind(t *testing.T) {
	assert.Len(t, ErrorKinds(), numErrorKinds)
	for i, k := range ErrorKinds() {
		assert.Equal(t, ErrorKind(i), k)
		assert.Equal(t, k.Name(), k.String())
	}
	assert.Equal(t, "middleware-aborted", MiddlewareAborted.Name())
	assert.Equal(t, "middleware-failed", MiddlewareFailed.Name())
	assert.Equal(t, "network-failed", NetworkFailed.String())
}

func TestError(t *testing.T) {
	t.Run("no cause", func(t *testing.T) {
		err := &Error{Kind: MiddlewareFailed}
		assert.EqualError(t, err, "httpremote: middleware-failed")
		assert.Nil(t, err.Unwrap())
		assert.Equal(t, errcode.None, err.Code())
	})
	t.Run("middleware", func(t *testing.T) {
		cause := errors.New("bad")
		err := &Error{
			Kind:     MiddlewareAborted,
			Err:      cause,
			Response: &request.Response{ErrorCode: errcode.Timeout},
		}
		assert.EqualError(t, err, "httpremote: middleware-aborted: bad")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, errcode.None, err.Code())
		assert.False(t, err.Timeout())
		assert.False(t, err.Aborted())
	})
	t.Run("network", func(t *testing.T) {
		resp := &request.Response{ErrorCode: errcode.Timeout, ErrorText: "slow"}
		err := &Error{Kind: NetworkFailed, Err: resp.Err(), Response: resp}
		assert.EqualError(t, err, "httpremote: network-failed: timeout: slow")
		assert.Equal(t, errcode.Timeout, err.Code())
		assert.True(t, err.Timeout())
		assert.False(t, err.Aborted())
		var codeErr *errcode.Error
		require.True(t, errors.As(err, &codeErr))
		assert.Equal(t, "slow", codeErr.Text)
	})
	t.Run("network without response", func(t *testing.T) {
		err := &Error{Kind: NetworkFailed}
		assert.Equal(t, errcode.None, err.Code())
	})
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Value: 42}
	assert.EqualError(t, err, "httpremote: middleware panic: 42")
	assert.Nil(t, err.Unwrap())

	cause := errors.New("inner")
	err = &PanicError{Value: cause}
	assert.ErrorIs(t, err, cause)
}

func TestProtect(t *testing.T) {
	assert.NoError(t, protect(func() error { return nil }))

	cause := errors.New("plain")
	assert.Same(t, cause, protect(func() error { return cause }))

	err := protect(func() error { panic("oops") })
	var pe *PanicError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "oops", pe.Value)
}
