// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/codonnell/httpremote"
	"github.com/codonnell/httpremote/codec"
)

// Config is the configuration of one HTTPRemote.
type Config struct {
	// URL is the URL transmits are POSTed to. It may be relative to
	// BaseURL.
	URL string `yaml:"url" toml:"url"`
	// BaseURL is the origin relative URLs are resolved against.
	BaseURL string `yaml:"base_url" toml:"base_url"`
	// Codec names the wire codec; see codec.Names.
	Codec string `yaml:"codec" toml:"codec"`
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	// Parallel clears the remote's Serial behavior flag.
	Parallel bool `yaml:"parallel" toml:"parallel"`
	// HTTP2 sends requests through an HTTP/2 capable client.
	HTTP2 bool `yaml:"http2" toml:"http2"`
	// CSRFToken, if set, is sent in the X-CSRF-Token header.
	CSRFToken string `yaml:"csrf_token" toml:"csrf_token"`
	// RequestID tags every request with a fresh X-Request-ID.
	RequestID bool `yaml:"request_id" toml:"request_id"`
	// Headers are added to every request.
	Headers map[string]string `yaml:"headers" toml:"headers"`

	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
}

// RateLimitConfig configures request throttling. A zero PerSecond
// disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second" toml:"per_second"`
	Burst     int     `yaml:"burst" toml:"burst"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// Defaults returns a Config with all defaults applied.
func Defaults() Config {
	return Config{
		URL:   httpremote.DefaultURL,
		Codec: "transit+json",
		Metrics: MetricsConfig{
			Namespace: "httpremote",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url is required"))
	} else if _, err := url.Parse(c.URL); err != nil {
		errs = append(errs, fmt.Errorf("url: %w", err))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("base_url: %w", err))
		case !u.IsAbs():
			errs = append(errs, fmt.Errorf("base_url %q must be absolute", c.BaseURL))
		}
	}
	if _, err := codec.ByName(c.Codec, nil); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.per_second must not be negative, got %g", c.RateLimit.PerSecond))
	}
	if c.RateLimit.PerSecond > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.burst must be at least 1 when rate limiting is enabled"))
	}
	return errors.Join(errs...)
}
