// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package linker resolves inline roles in hand-written reStructuredText
// sources. Option and shortcut references are looked up in an
// xref.Context, repository roles are expanded by package roles. Every
// resolved role becomes a plain anonymous hyperlink.
package linker

import (
	"context"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/logging"
	"grimm.is/docgen/internal/roles"
	"grimm.is/docgen/internal/xref"
)

var (
	roleRe     = regexp.MustCompile(":([a-z]+):`([^`]+)`")
	explicitRe = regexp.MustCompile(`(?s)^(.+?)\s*<([^<>]+)>$`)
)

// Linker rewrites roles in reST text.
type Linker struct {
	xref     *xref.Context
	roles    *roles.Roles
	reporter *roles.Reporter
	pages    map[string]string
	logger   *logging.Logger
}

// Option configures a Linker.
type Option func(*Linker)

// WithPages sets the page each namespace's reference lives on, such as
// "kitty" -> "conf.html". Namespaces without a page link to "#anchor".
func WithPages(pages map[string]string) Option {
	return func(l *Linker) {
		for ns, page := range pages {
			l.pages[ns] = page
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Linker) {
		l.logger = logger
	}
}

// New creates a Linker. Diagnostics go to reporter.
func New(x *xref.Context, r *roles.Roles, reporter *roles.Reporter, opts ...Option) *Linker {
	l := &Linker{
		xref:     x,
		roles:    r,
		reporter: reporter,
		pages:    make(map[string]string),
		logger:   logging.WithComponent("linker"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rewrite resolves the roles in text, which was read from file. Roles that
// cannot be resolved are left as written and reported.
func (l *Linker) Rewrite(ctx context.Context, file, text string) string {
	var b strings.Builder
	last := 0

	for _, m := range roleRe.FindAllStringSubmatchIndex(text, -1) {
		role, body := text[m[2]:m[3]], text[m[4]:m[5]]
		line := 1 + strings.Count(text[:m[0]], "\n")

		replacement, ok := l.resolve(ctx, file, line, role, body)
		if !ok {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func (l *Linker) resolve(ctx context.Context, file string, line int, role, body string) (string, bool) {
	switch role {
	case "opt":
		title, target := splitExplicit(body)
		title, canonical := l.xref.ResolveOption(title, target)
		if !l.xref.HasOption(canonical) {
			// dangling option references link to a best guess without a diagnostic
			l.logger.Debug("unknown option reference", "file", file, "line", line, "option", canonical)
		}
		return hyperlink(title, l.uri(xref.KindOption, canonical)), true

	case "sc":
		title, target := splitExplicit(body)
		key, anchor, ok := l.xref.ResolveShortcut(title, target)
		if !ok {
			msg := "unknown shortcut \"" + target + "\""
			if s := l.xref.Suggest(xref.KindShortcut, target); len(s) > 0 {
				msg += "; did you mean " + strings.Join(s, ", ") + "?"
			}
			l.reporter.Warnf(file, line, "%s", msg)
			return "", false
		}
		return hyperlink(key, l.uri(xref.KindShortcut, anchor)), true
	}

	link, handled, err := l.roles.Apply(ctx, role, body)
	if !handled {
		return "", false
	}
	if err != nil {
		l.reporter.Errorf(file, line, "%s", err.Error())
		return "", false
	}
	return hyperlink(link.Title, link.URI), true
}

// uri builds the link target of a qualified option name or shortcut anchor.
func (l *Linker) uri(kind xref.Kind, name string) string {
	ns, _, _ := strings.Cut(name, ".")
	return l.pages[ns] + "#" + xref.AnchorID(kind, name)
}

// splitExplicit splits "title <target>"; a bare body is both.
func splitExplicit(body string) (string, string) {
	if m := explicitRe.FindStringSubmatch(body); m != nil {
		return m[1], m[2]
	}
	return body, body
}

var titleEscaper = strings.NewReplacer("\\", "\\\\", "<", "\\<", "`", "\\`")

func hyperlink(title, uri string) string {
	return "`" + titleEscaper.Replace(title) + " <" + uri + ">`__"
}

// Sources lists the files under root matching the doublestar pattern,
// relative to root and sorted.
func Sources(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf(errors.KindValidation, "invalid source pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, errors.KindInternal, "failed to list sources in %s", root)
	}
	sort.Strings(matches)
	return matches, nil
}

// RewriteFile reads rel from fsys and returns its rewritten content.
func (l *Linker) RewriteFile(ctx context.Context, fsys fs.FS, rel string) (string, error) {
	data, err := fs.ReadFile(fsys, rel)
	if err != nil {
		return "", errors.At(errors.Wrap(err, errors.KindNotFound, "failed to read source"), rel, 0)
	}
	out := l.Rewrite(ctx, rel, string(data))
	l.logger.Debug("rewrote source", "file", rel, "bytes", len(out))
	return out, nil
}
