// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides Prometheus instrumentation for remotes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the transmits_total and duration_seconds metrics.
const (
	OutcomeComplete          = "complete"
	OutcomeMiddlewareAborted = "middleware-aborted"
	OutcomeMiddlewareFailed  = "middleware-failed"
	OutcomeNetworkFailed     = "network-failed"
)

// A Collector records transmit activity. A nil *Collector is valid and
// records nothing.
type Collector struct {
	transmits *prometheus.CounterVec
	inFlight  prometheus.Gauge
	duration  *prometheus.HistogramVec
	cancels   prometheus.Counter
}

// New creates a Collector whose metrics are named with namespace (for
// example "httpremote_transmits_total") and registers them with reg.
// If reg is nil, the metrics are not registered.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		transmits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transmits_total",
				Help:      "Transmits by outcome.",
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "in_flight",
				Help:      "Transport handles sent and not yet cleaned up.",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "duration_seconds",
				Help:      "Time from send to terminal signal, in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		cancels: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cancels_total",
				Help:      "Cancel calls.",
			},
		),
	}
	if reg != nil {
		for _, m := range []prometheus.Collector{c.transmits, c.inFlight, c.duration, c.cancels} {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// MustNew is like New but panics on a registration error.
func MustNew(reg prometheus.Registerer, namespace string) *Collector {
	c, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return c
}

// Sent records that a transport handle was sent.
func (c *Collector) Sent() {
	if c == nil {
		return
	}
	c.inFlight.Inc()
}

// Done records that a sent handle was cleaned up.
func (c *Collector) Done() {
	if c == nil {
		return
	}
	c.inFlight.Dec()
}

// Outcome records the outcome of one transmit. A zero d means the
// request was never sent and no duration is observed.
func (c *Collector) Outcome(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.transmits.WithLabelValues(outcome).Inc()
	if d > 0 {
		c.duration.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

// Cancelled records a cancel call.
func (c *Collector) Cancelled() {
	if c == nil {
		return
	}
	c.cancels.Inc()
}
