// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package nameservice

import (
	"context"
	"time"

	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels.
const (
	resultTaken     = "taken"
	resultAvailable = "available"
	resultInvalid   = "invalid"
	resultError     = "error"
)

// Metrics tracks name checks served by the service.
type Metrics struct {
	Checks        *prometheus.CounterVec
	CheckDuration *prometheus.HistogramVec
}

// NewMetrics registers the service metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "npmname_checks_total",
			Help: "Name checks by name kind and result",
		}, []string{"kind", "result"}),
		CheckDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "npmname_check_duration_seconds",
			Help:    "Duration of name checks including the registry probe",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
	}
}

// Instrument wraps c so every check is recorded in m.
func (m *Metrics) Instrument(c Checker) Checker {
	return &instrumented{Checker: c, m: m}
}

type instrumented struct {
	Checker
	m *Metrics
}

func (i *instrumented) Exists(ctx context.Context, name string, opts npmname.Options) (bool, error) {
	kind := npmname.Classify(name).String()
	start := time.Now()
	exists, err := i.Checker.Exists(ctx, name, opts)
	i.m.CheckDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	i.m.Checks.WithLabelValues(kind, result(exists, err)).Inc()
	return exists, err
}

func result(exists bool, err error) string {
	var ine *npmname.InvalidNameError
	switch {
	case err == nil && exists:
		return resultTaken
	case err == nil:
		return resultAvailable
	case errors.As(err, &ine), errors.Is(err, npmname.ErrMissingName), errors.Is(err, npmname.ErrInvalidRegistryURL):
		return resultInvalid
	default:
		return resultError
	}
}
