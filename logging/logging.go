// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog loggers used by remotes and the
// remotectl command.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "HTTPREMOTE_LOG_LEVEL"
	EnvLogNoColor = "HTTPREMOTE_LOG_NOCOLOR"
	EnvLogJSON    = "HTTPREMOTE_LOG_JSON"
)

// New returns a human-readable console logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return newLogger(w, level, false, false)
}

// FromEnv returns a logger writing to stderr, configured from the
// HTTPREMOTE_LOG_* environment variables. The default level is info.
func FromEnv() zerolog.Logger {
	return fromEnv(os.Getenv, os.Stderr)
}

func fromEnv(getenv func(string) string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if lvl, ok := ParseLevel(getenv(EnvLogLevel)); ok {
		level = lvl
	}
	noColor, _ := parseBool(getenv(EnvLogNoColor))
	asJSON, _ := parseBool(getenv(EnvLogJSON))
	return newLogger(w, level, noColor, asJSON)
}

func newLogger(w io.Writer, level zerolog.Level, noColor, asJSON bool) zerolog.Logger {
	out := w
	if !asJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    noColor,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "httpremote").Logger()
}

// ParseLevel parses a level name. The second result is false if raw is
// empty or not a known level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
