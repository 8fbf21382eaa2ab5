// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codonnell/httpremote"
	"github.com/codonnell/httpremote/codec"
	"github.com/codonnell/httpremote/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		v, err := codec.Default.Decode(b)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch v.(map[string]interface{})["op"] {
		case "ping":
			_, _ = io.WriteString(w, `"pong"`)
		case "slow":
			select {
			case <-time.After(5 * time.Second):
			case <-req.Context().Done():
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvURL, server.URL+"/api")
	return server
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-abort-id", "a", "-cancel-after", "1s", "-progress", `{"op":"ping"}`})
	require.NoError(t, err)
	assert.Equal(t, options{abortID: "a", cancelAfter: time.Second, progress: true, payload: `{"op":"ping"}`}, opts)

	_, err = parseFlags(nil)
	assert.EqualError(t, err, "expected exactly one payload argument")
	_, err = parseFlags([]string{"-bogus"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	newServer(t)
	logger := zerolog.Nop()

	t.Run("ping", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{`{"op":"ping"}`}, &out, &logger))
		assert.Equal(t, "\"pong\"\n", out.String())
	})
	t.Run("progress and metrics", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-progress", "-metrics", `{"op":"ping"}`}, &out, &logger))
		s := out.String()
		assert.Contains(t, s, "sending\n")
		assert.Contains(t, s, "complete\n")
		assert.Contains(t, s, "\"pong\"\n")
		assert.Contains(t, s, `httpremote_transmits_total{outcome="complete"} 1`)
	})
	t.Run("http error", func(t *testing.T) {
		var out bytes.Buffer
		err := run([]string{`{"op":"missing"}`}, &out, &logger)
		var rerr *httpremote.Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, httpremote.NetworkFailed, rerr.Kind)
		assert.Equal(t, 404, rerr.Response.StatusCode)
	})
	t.Run("cancel", func(t *testing.T) {
		var out bytes.Buffer
		err := run([]string{"-cancel-after", "20ms", `{"op":"slow"}`}, &out, &logger)
		var rerr *httpremote.Error
		require.ErrorAs(t, err, &rerr)
		assert.True(t, rerr.Aborted())
	})
	t.Run("bad payload", func(t *testing.T) {
		err := run([]string{`{"op":`}, io.Discard, &logger)
		assert.ErrorContains(t, err, "payload")
	})
}
