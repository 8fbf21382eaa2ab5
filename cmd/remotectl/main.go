// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command remotectl transmits one payload through an httpremote remote
// and prints the outcome.
//
// Usage:
//
//	remotectl [-config remote.yaml] [-abort-id id] [-cancel-after 100ms] [-progress] [-metrics] payload
//
// The payload is transit JSON, for example '{"op":"ping"}'. The remote
// is configured as described in package config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codonnell/httpremote"
	"github.com/codonnell/httpremote/codec"
	"github.com/codonnell/httpremote/config"
	"github.com/codonnell/httpremote/logging"
	"github.com/codonnell/httpremote/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
)

func main() {
	logger := logging.FromEnv()
	if err := run(os.Args[1:], os.Stdout, &logger); err != nil {
		fmt.Fprintln(os.Stderr, "remotectl:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	abortID     string
	cancelAfter time.Duration
	progress    bool
	metrics     bool
	payload     string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("remotectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML or TOML config file")
	fs.StringVar(&opts.abortID, "abort-id", "remotectl", "abort identity of the request")
	fs.DurationVar(&opts.cancelAfter, "cancel-after", 0, "cancel the request after this long (0 never cancels)")
	fs.BoolVar(&opts.progress, "progress", false, "print progress updates")
	fs.BoolVar(&opts.metrics, "metrics", false, "print metrics after the request finishes")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		return opts, errors.New("expected exactly one payload argument")
	}
	opts.payload = fs.Arg(0)
	return opts, nil
}

func run(args []string, stdout io.Writer, logger *zerolog.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	payload, err := codec.Default.Decode([]byte(opts.payload))
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	remote, err := config.Build(cfg, reg)
	if err != nil {
		return err
	}
	remote.Logger = logger
	remote.Handlers = &httpremote.HandlerGroup{}
	remote.Handlers.PushBack(httpremote.AfterTerminal, httpremote.HandlerFunc(func(_ httpremote.Event, r *request.Response) {
		logger.Info().
			Int("status", r.StatusCode).
			Stringer("code", r.ErrorCode).
			Dur("duration", r.Duration()).
			Msg("remotectl: response received")
	}))

	done := make(chan error, 1)
	cb := httpremote.Callbacks{
		OnComplete: func(r *request.Response) {
			done <- printBody(stdout, r.Body)
		},
		OnError: func(err *httpremote.Error) {
			done <- err
		},
	}
	if opts.progress {
		cb.OnUpdate = func(u httpremote.Update) {
			if u.Status == nil {
				fmt.Fprintf(stdout, "%s\n", u.Phase)
				return
			}
			fmt.Fprintf(stdout, "%s %d/%d\n", u.Phase, u.Status.Loaded, u.Status.Total)
		}
	}

	remote.Transmit(request.NewOutgoing(payload).WithAbortID(opts.abortID), cb)
	if opts.cancelAfter > 0 {
		timer := time.AfterFunc(opts.cancelAfter, func() {
			remote.Cancel(opts.abortID)
		})
		defer timer.Stop()
	}
	err = <-done

	if opts.metrics {
		if merr := printMetrics(stdout, reg); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

func printBody(w io.Writer, body interface{}) error {
	if b, ok := body.([]byte); ok {
		_, err := fmt.Fprintf(w, "%s\n", b)
		return err
	}
	b, err := codec.Default.Encode(body)
	if err != nil {
		_, err = fmt.Fprintf(w, "%v\n", body)
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
