// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package generate runs a docgen build: it renders every configured
// namespace and CLI program, saves the cross-reference index and then
// rewrites the roles in the hand-written sources.
package generate

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"grimm.is/docgen/internal/clidoc"
	"grimm.is/docgen/internal/config"
	"grimm.is/docgen/internal/configdoc"
	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/linker"
	"grimm.is/docgen/internal/logging"
	"grimm.is/docgen/internal/metrics"
	"grimm.is/docgen/internal/roles"
	"grimm.is/docgen/internal/validation"
	"grimm.is/docgen/internal/xref"
)

// IndexFile is the cross-reference index written next to the generated pages.
const IndexFile = "xref.yaml"

// Builder runs builds for one project configuration.
type Builder struct {
	cfg       *config.Config
	logger    *logging.Logger
	check     bool
	keepGoing bool
	diffs     io.Writer
	commits   roles.CommitResolver
	metrics   *metrics.Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithCheck makes the build compare instead of write. Stale files are
// reported as unified diffs on w and fail the build.
func WithCheck(w io.Writer) Option {
	return func(b *Builder) {
		b.check = true
		b.diffs = w
	}
}

// WithKeepGoing lets a build with error diagnostics succeed.
func WithKeepGoing(keep bool) Option {
	return func(b *Builder) { b.keepGoing = keep }
}

// WithCommitResolver replaces the git resolver used for :commit: roles.
func WithCommitResolver(r roles.CommitResolver) Option {
	return func(b *Builder) { b.commits = r }
}

// WithMetrics records build statistics in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New creates a Builder.
func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:    cfg,
		logger: logging.WithComponent("generate"),
	}
	if cfg.GitHub != nil && cfg.GitHub.Checkout != "" {
		b.commits = roles.GitResolver{Dir: cfg.Resolve(cfg.GitHub.Checkout)}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result summarizes a build.
type Result struct {
	// ID identifies the build in log lines.
	ID          string
	Output      *Output
	Diagnostics []roles.Diagnostic
	Xref        *xref.Context
}

// Build generates every page, then runs the reference pass when sources
// are configured.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	return b.build(ctx, xref.NewContext(b.cfg.RootNamespace))
}

// build runs one build recording cross references into x, which must be
// empty.
func (b *Builder) build(ctx context.Context, x *xref.Context) (res *Result, err error) {
	res = &Result{ID: uuid.New().String(), Output: newOutput(), Xref: x}
	start := time.Now()
	defer func() { b.observe(res, start, err) }()
	w := b.writer(res.Output)

	if err = b.generate(ctx, w, x); err != nil {
		return res, err
	}
	var reporter *roles.Reporter
	if b.cfg.Sources != nil {
		reporter = roles.NewReporter(b.logger)
		err = b.link(ctx, x, w, reporter)
		res.Diagnostics = reporter.Diagnostics()
		if err != nil {
			return res, err
		}
	}
	return res, b.finish(res, reporter)
}

// Link runs only the reference pass, against the index saved by an earlier build.
func (b *Builder) Link(ctx context.Context) (res *Result, err error) {
	if b.cfg.Sources == nil {
		return nil, errors.New(errors.KindValidation, "no sources block in project file")
	}
	x, err := xref.LoadFile(filepath.Join(b.outputDir(), IndexFile))
	if err != nil {
		return nil, err
	}
	res = &Result{ID: uuid.New().String(), Output: newOutput(), Xref: x}
	start := time.Now()
	defer func() { b.observe(res, start, err) }()
	reporter := roles.NewReporter(b.logger)
	err = b.link(ctx, x, b.writer(res.Output), reporter)
	res.Diagnostics = reporter.Diagnostics()
	if err != nil {
		return res, err
	}
	return res, b.finish(res, reporter)
}

func (b *Builder) writer(out *Output) *writer {
	return &writer{check: b.check, diffs: b.diffs, out: out}
}

func (b *Builder) finish(res *Result, reporter *roles.Reporter) error {
	if stale := res.Output.Files(StatusStale); len(stale) > 0 {
		return errors.Errorf(errors.KindConflict, "%d generated file(s) out of date", len(stale))
	}
	if b.keepGoing || reporter == nil {
		return nil
	}
	return reporter.Err()
}

func (b *Builder) observe(res *Result, start time.Time, err error) {
	b.logger.Info("build finished",
		"build", res.ID,
		"files", res.Output.Len(),
		"diagnostics", len(res.Diagnostics),
		"duration", time.Since(start).String(),
		"ok", err == nil)
	if b.metrics == nil {
		return
	}
	b.metrics.ObserveBuild(start, err)
	for _, s := range []FileStatus{StatusWritten, StatusUnchanged, StatusStale} {
		b.metrics.Files.WithLabelValues(s.String()).Add(float64(len(res.Output.Files(s))))
	}
	for _, d := range res.Diagnostics {
		b.metrics.Diagnostics.WithLabelValues(d.Severity.String()).Inc()
	}
}

func (b *Builder) outputDir() string {
	return b.cfg.Resolve(b.cfg.OutputDir)
}

// page is one rendered namespace.
type page struct {
	name    string
	conf    string
	literal string
}

func (b *Builder) generate(ctx context.Context, w *writer, x *xref.Context) error {
	pages := make([]page, len(b.cfg.Namespaces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, nsCfg := range b.cfg.Namespaces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := b.renderNamespace(x, &nsCfg)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dir := b.outputDir()
	files := make(map[string]string)
	for _, p := range pages {
		files["conf-"+p.name+".rst"] = p.conf
		if p.literal != "" {
			files["conf-"+p.name+"-literal.rst"] = p.literal
		}
	}
	if b.cfg.CLI != nil {
		spec, err := clidoc.Load(b.cfg.Resolve(b.cfg.CLI.Spec))
		if err != nil {
			return err
		}
		for _, prog := range spec.Programs {
			files[prog.Filename()] = prog.RST()
		}
	}
	var idx bytes.Buffer
	if err := x.Save(&idx); err != nil {
		return err
	}
	files[IndexFile] = idx.String()

	for name, content := range files {
		if err := validation.ValidateOutputName(name); err != nil {
			return err
		}
		if err := w.emit(filepath.Join(dir, name), content); err != nil {
			return err
		}
	}
	b.logger.Info("generated pages",
		"namespaces", len(pages),
		"files", len(files),
		"written", len(w.out.Files(StatusWritten)))
	return nil
}

func (b *Builder) renderNamespace(x *xref.Context, nsCfg *config.NamespaceConfig) (page, error) {
	path := b.cfg.Resolve(nsCfg.Definitions)
	ns, err := configdoc.LoadNamespace(path)
	if err != nil {
		return page{}, err
	}
	if ns.Name != nsCfg.Name {
		return page{}, errors.At(errors.Errorf(errors.KindConflict,
			"definitions declare namespace %q, project file expects %q", ns.Name, nsCfg.Name), path, 0)
	}

	opts := []configdoc.RenderOption{configdoc.WithModifier(b.cfg.Modifier.Option, b.cfg.Modifier.Placeholder)}
	if b.cfg.Modifier.Value != "" {
		opts = append(opts, configdoc.WithModifierValue(b.cfg.Modifier.Value))
	}
	r := configdoc.NewRenderer(x, opts...)

	conf, err := r.RenderNamespace(ns)
	if err != nil {
		return page{}, errors.At(err, path, 0)
	}
	p := page{name: ns.Name, conf: conf}
	if nsCfg.WantsLiteral() {
		p.literal = configdoc.LiteralPage(r.LiteralConf(ns))
	}
	b.logger.Debug("rendered namespace", "namespace", ns.Name, "definitions", len(ns.Definitions))
	if b.metrics != nil {
		var options, shortcuts int
		for _, def := range ns.Definitions {
			switch d := def.(type) {
			case *configdoc.Option:
				options++
			case configdoc.ShortcutGroup:
				shortcuts += len(d)
			}
		}
		b.metrics.Definitions.WithLabelValues(ns.Name, "option").Set(float64(options))
		b.metrics.Definitions.WithLabelValues(ns.Name, "shortcut").Set(float64(shortcuts))
	}
	return p, nil
}

func (b *Builder) link(ctx context.Context, x *xref.Context, w *writer, reporter *roles.Reporter) error {
	src := b.cfg.Sources
	root := b.cfg.Resolve(src.Root)
	rels, err := linker.Sources(root, src.Pattern)
	if err != nil {
		return err
	}

	gh := b.cfg.GitHub
	l := linker.New(x, roles.New(gh.User, gh.Repo, b.commits), reporter,
		linker.WithPages(b.cfg.Pages()),
		linker.WithLogger(b.logger.WithComponent("linker")))

	dest := b.cfg.SourcesOutputDir()
	// a sources root above the output directories would relink earlier output
	outputs := b.outputDirs()
	rels = slices.DeleteFunc(rels, func(rel string) bool {
		return withinAny(outputs, filepath.Join(root, filepath.FromSlash(rel)))
	})

	fsys := os.DirFS(root)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range rels {
		g.Go(func() error {
			out, err := l.RewriteFile(gctx, fsys, rel)
			if err != nil {
				return err
			}
			return w.emit(filepath.Join(dest, filepath.FromSlash(rel)), out)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.logger.Info("linked sources",
		"files", len(rels),
		"errors", reporter.Count(roles.SeverityError),
		"warnings", reporter.Count(roles.SeverityWarning))
	return nil
}
