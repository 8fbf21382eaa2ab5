// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"", zerolog.InfoLevel, false},
		{"bogus", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.raw, func(t *testing.T) {
			level, ok := ParseLevel(testCase.raw)
			assert.Equal(t, testCase.level, level)
			assert.Equal(t, testCase.ok, ok)
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=")
}

func TestFromEnv(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	t.Run("defaults", func(t *testing.T) {
		var buf bytes.Buffer
		logger := fromEnv(env(nil), &buf)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
		logger.Debug().Msg("hidden")
		assert.Empty(t, buf.String())
	})
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := fromEnv(env(map[string]string{
			EnvLogLevel: "debug",
			EnvLogJSON:  "true",
		}), &buf)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
		logger.Debug().Msg("visible")
		assert.Contains(t, buf.String(), `"message":"visible"`)
		assert.Contains(t, buf.String(), `"app":"httpremote"`)
	})
	t.Run("no color", func(t *testing.T) {
		var buf bytes.Buffer
		logger := fromEnv(env(map[string]string{EnvLogNoColor: "1"}), &buf)
		logger.Info().Msg("plain")
		assert.NotContains(t, buf.String(), "\x1b[")
	})
}
