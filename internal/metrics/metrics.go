// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics records build statistics in Prometheus form. The
// registry is written as a node_exporter textfile so CI can scrape it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/docgen/internal/errors"
)

// Metrics holds all build metrics.
type Metrics struct {
	registry *prometheus.Registry

	Builds        *prometheus.CounterVec
	BuildDuration prometheus.Histogram
	LastBuild     prometheus.Gauge
	Files         *prometheus.CounterVec
	Diagnostics   *prometheus.CounterVec
	Definitions   *prometheus.GaugeVec
}

// New creates the metrics and registers them with a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docgen_builds_total",
			Help: "Total number of builds by result",
		}, []string{"result"}),

		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "docgen_build_duration_seconds",
			Help:    "Time spent per build",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),

		LastBuild: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "docgen_last_build_timestamp_seconds",
			Help: "Unix time the last build finished",
		}),

		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docgen_output_files_total",
			Help: "Output files by status (written, unchanged, stale)",
		}, []string{"status"}),

		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docgen_diagnostics_total",
			Help: "Reference diagnostics by severity",
		}, []string{"severity"}),

		Definitions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "docgen_definitions",
			Help: "Definitions rendered per namespace and kind",
		}, []string{"namespace", "kind"}),
	}
	m.registry.MustRegister(m.Builds, m.BuildDuration, m.LastBuild, m.Files, m.Diagnostics, m.Definitions)
	return m
}

// Registry returns the registry holding every metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBuild records the outcome and duration of one build.
func (m *Metrics) ObserveBuild(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.Builds.WithLabelValues(result).Inc()
	m.BuildDuration.Observe(time.Since(start).Seconds())
	m.LastBuild.SetToCurrentTime()
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.At(errors.Wrap(err, errors.KindInternal, "failed to write metrics"), path, 0)
	}
	return nil
}
