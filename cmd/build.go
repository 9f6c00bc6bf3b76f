// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"context"
	"os"
	"time"

	"grimm.is/docgen/internal/config"
	"grimm.is/docgen/internal/generate"
	"grimm.is/docgen/internal/logging"
	"grimm.is/docgen/internal/metrics"
)

// BuildOptions are the flags of build, links and watch.
type BuildOptions struct {
	Log LogOptions
	// Check compares instead of writing and fails when output is stale.
	Check     bool
	KeepGoing bool
	Debounce  time.Duration
	// MetricsFile receives build metrics in the Prometheus text format.
	MetricsFile string
}

func newBuilder(cfg *config.Config, opts BuildOptions, m *metrics.Metrics) *generate.Builder {
	genOpts := []generate.Option{
		generate.WithLogger(logging.WithComponent("generate")),
		generate.WithKeepGoing(opts.KeepGoing),
	}
	if opts.Check {
		genOpts = append(genOpts, generate.WithCheck(Printer.Out))
	}
	if m != nil {
		genOpts = append(genOpts, generate.WithMetrics(m))
	}
	return generate.New(cfg, genOpts...)
}

func newMetrics(opts BuildOptions) *metrics.Metrics {
	if opts.MetricsFile == "" {
		return nil
	}
	return metrics.New()
}

// writeMetrics writes m when a metrics file was requested. A write failure
// is logged and does not fail the build.
func writeMetrics(m *metrics.Metrics, opts BuildOptions) {
	if m == nil {
		return
	}
	if err := m.WriteTextfile(opts.MetricsFile); err != nil {
		logging.Warn("metrics not written", "error", err)
	}
}

// RunBuild renders every page of the project and runs the reference pass.
func RunBuild(ctx context.Context, configPath string, opts BuildOptions) error {
	cfg, err := LoadProject(configPath, opts.Log)
	if err != nil {
		return err
	}
	m := newMetrics(opts)
	res, err := newBuilder(cfg, opts, m).Build(ctx)
	report(res, opts.Check)
	writeMetrics(m, opts)
	return err
}

// RunLinks runs only the reference pass against the saved xref index.
func RunLinks(ctx context.Context, configPath string, opts BuildOptions) error {
	cfg, err := LoadProject(configPath, opts.Log)
	if err != nil {
		return err
	}
	m := newMetrics(opts)
	res, err := newBuilder(cfg, opts, m).Link(ctx)
	report(res, opts.Check)
	writeMetrics(m, opts)
	return err
}

// RunWatch rebuilds on every change until ctx is cancelled.
func RunWatch(ctx context.Context, configPath string, opts BuildOptions) error {
	cfg, err := LoadProject(configPath, opts.Log)
	if err != nil {
		return err
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = generate.DefaultDebounce
	}
	// a failing build must not stop the watcher
	opts.Check = false
	m := newMetrics(opts)
	return newBuilder(cfg, opts, m).Watch(ctx, debounce, func(res *generate.Result, err error) {
		report(res, false)
		writeMetrics(m, opts)
		if err != nil {
			Printer.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
}

func report(res *generate.Result, check bool) {
	if res == nil {
		return
	}
	for _, d := range res.Diagnostics {
		Printer.Fprintf(os.Stderr, "%s\n", d)
	}
	if check {
		for _, path := range res.Output.Files(generate.StatusStale) {
			Printer.Printf("stale: %s\n", path)
		}
		return
	}
	for _, path := range res.Output.Files(generate.StatusWritten) {
		Printer.Printf("Generated %s\n", path)
	}
}
