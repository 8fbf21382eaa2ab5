// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig    = "HTTPREMOTE_CONFIG"
	EnvURL       = "HTTPREMOTE_URL"
	EnvBaseURL   = "HTTPREMOTE_BASE_URL"
	EnvCodec     = "HTTPREMOTE_CODEC"
	EnvTimeout   = "HTTPREMOTE_TIMEOUT"
	EnvParallel  = "HTTPREMOTE_PARALLEL"
	EnvHTTP2     = "HTTPREMOTE_HTTP2"
	EnvCSRFToken = "HTTPREMOTE_CSRF_TOKEN"
)

// Load loads configuration from defaults, then the file at path (or
// named by HTTPREMOTE_CONFIG if path is empty), then the environment,
// and validates the result. No file is read if neither names one.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("httpremote/config: loading %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg, getenv); err != nil {
		return nil, fmt.Errorf("httpremote/config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("httpremote/config: validation: %w", err)
	}

	return &cfg, nil
}

// loadFile parses a YAML or TOML file, chosen by extension, into cfg.
// Fields not present in the file keep their current values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := getenv(EnvCodec); v != "" {
		cfg.Codec = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvParallel); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParallel, err)
		}
		cfg.Parallel = b
	}
	if v := getenv(EnvHTTP2); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTP2, err)
		}
		cfg.HTTP2 = b
	}
	if v := getenv(EnvCSRFToken); v != "" {
		cfg.CSRFToken = v
	}
	return nil
}
