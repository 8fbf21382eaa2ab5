// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net/http"

	"github.com/codonnell/httpremote"
	"github.com/codonnell/httpremote/codec"
	"github.com/codonnell/httpremote/metrics"
	"github.com/codonnell/httpremote/middleware"
	"github.com/codonnell/httpremote/timeout"
	"github.com/codonnell/httpremote/transport"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Build creates an HTTPRemote from cfg. If reg is non-nil, a metrics
// collector named with cfg.Metrics.Namespace is registered with it.
//
// The remote's Logger and Handlers are left unset for the caller.
func Build(cfg *Config, reg prometheus.Registerer) (*httpremote.HTTPRemote, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("httpremote/config: validation: %w", err)
	}

	c, err := codec.ByName(cfg.Codec, nil)
	if err != nil {
		return nil, err
	}

	var doer transport.HTTPDoer
	if cfg.HTTP2 {
		client, err := transport.NewHTTP2Doer(nil)
		if err != nil {
			return nil, fmt.Errorf("httpremote/config: http2: %w", err)
		}
		doer = client
	}
	policy := timeout.DefaultPolicy
	if cfg.Timeout > 0 {
		policy = timeout.Fixed(cfg.Timeout)
	}

	var m *metrics.Collector
	if reg != nil {
		if m, err = metrics.New(reg, cfg.Metrics.Namespace); err != nil {
			return nil, fmt.Errorf("httpremote/config: metrics: %w", err)
		}
	}

	return &httpremote.HTTPRemote{
		URL:                cfg.URL,
		RequestMiddleware:  requestMiddleware(cfg, c),
		ResponseMiddleware: middleware.DecodeResponse(c, nil),
		Transport: &transport.HTTP{
			Doer:          doer,
			BaseURL:       cfg.BaseURL,
			TimeoutPolicy: policy,
		},
		Parallel: cfg.Parallel,
		Metrics:  m,
	}, nil
}

// requestMiddleware throttles first, so a throttled request is never
// encoded.
func requestMiddleware(cfg *Config, c codec.Codec) middleware.RequestFunc {
	mw := middleware.RequestFunc(middleware.Identity)
	if cfg.RateLimit.PerSecond > 0 {
		lim := rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst)
		mw = mw.Then(middleware.Throttle(lim))
	}
	mw = mw.Then(middleware.EncodeRequest(c))
	if len(cfg.Headers) > 0 {
		h := make(http.Header, len(cfg.Headers))
		for k, v := range cfg.Headers {
			h.Set(k, v)
		}
		mw = mw.Then(middleware.Headers(h))
	}
	mw = mw.Then(middleware.CSRFToken(cfg.CSRFToken))
	if cfg.RequestID {
		mw = mw.Then(middleware.RequestID())
	}
	return mw
}
