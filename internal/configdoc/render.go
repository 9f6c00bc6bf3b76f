// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"unicode/utf8"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/xref"
)

// Default modifier settings: the kitty_mod option supplies the value of the
// kitty_mod placeholder in shortcut keys.
const (
	DefaultModifierOption      = "kitty_mod"
	DefaultModifierPlaceholder = "kitty_mod"
)

// HighlightHeader prefixes every generated reference page.
const HighlightHeader = ".. highlight:: conf\n\n"

// Renderer turns a namespace's definitions into reStructuredText and records
// option aliases and shortcut slugs in its xref.Context.
type Renderer struct {
	ctx            *xref.Context
	merger         Merger
	modifierOption string
	placeholder    string
	modifierValue  string
	modifierFixed  bool
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithMerger replaces DefaultMerger.
func WithMerger(m Merger) RenderOption {
	return func(r *Renderer) {
		if m != nil {
			r.merger = m
		}
	}
}

// WithModifier changes which option supplies the modifier and the
// placeholder it replaces in shortcut keys.
func WithModifier(option, placeholder string) RenderOption {
	return func(r *Renderer) {
		r.modifierOption = option
		r.placeholder = placeholder
	}
}

// WithModifierValue fixes the modifier value instead of reading it from the
// definitions.
func WithModifierValue(v string) RenderOption {
	return func(r *Renderer) {
		r.modifierValue = v
		r.modifierFixed = true
	}
}

// NewRenderer creates a Renderer writing cross references into ctx.
func NewRenderer(ctx *xref.Context, opts ...RenderOption) *Renderer {
	r := &Renderer{
		ctx:            ctx,
		merger:         DefaultMerger,
		modifierOption: DefaultModifierOption,
		placeholder:    DefaultModifierPlaceholder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Modifier returns the value substituted for the placeholder in defs. The
// whole list is searched, so the modifier option may appear after the
// shortcuts that use it. Without such an option the placeholder is kept.
func (r *Renderer) Modifier(defs []Definition) string {
	if r.modifierFixed {
		return r.modifierValue
	}
	for _, d := range defs {
		if o, ok := d.(*Option); ok && o.Name == r.modifierOption && o.Default != "" {
			return o.Default
		}
	}
	return r.placeholder
}

// ResolveKey substitutes the modifier placeholder in key.
func (r *Renderer) ResolveKey(key, modifier string) string {
	if r.placeholder == "" {
		return key
	}
	return strings.ReplaceAll(key, r.placeholder, modifier)
}

// RenderNamespace renders ns with HighlightHeader prepended, ready to be
// written as conf-<ns>.rst.
func (r *Renderer) RenderNamespace(ns *Namespace) (string, error) {
	body, err := r.Render(ns.Name, ns.Definitions)
	if err != nil {
		return "", errors.Attr(err, errors.AttrNamespace, ns.Name)
	}
	return HighlightHeader + body, nil
}

// Render produces the reference document for the definitions of namespace
// name. Groups open at their first definition, in list order. A malformed
// heading signature aborts rendering.
func (r *Renderer) Render(name string, defs []Definition) (string, error) {
	w := &docWriter{ns: name}
	w.add(".. default-domain:: conf", "")

	modifier := r.Modifier(defs)
	done := make(map[*Option]bool)

	for i, d := range defs {
		switch def := d.(type) {
		case *Option:
			if !def.AddToDocs || done[def] {
				continue
			}
			w.enter(def.Group)

			run := r.merger(defs, def, i)
			if len(run) == 0 {
				run = []*Option{def}
			}
			names := make([]string, len(run))
			width := 0
			for j, o := range run {
				names[j] = name + "." + o.Name
				width = max(width, utf8.RuneCountInString(o.Name))
			}
			sig := strings.Join(names, ", ")
			if _, err := r.ctx.ParseOption(sig); err != nil {
				return "", err
			}

			w.add(".. opt:: "+sig, ".. code-block:: conf", "")
			for _, o := range run {
				done[o] = true
				w.add(strings.TrimRight("    "+padRight(o.Name, width)+" "+o.Default, " "))
			}
			w.add("")
			if def.LongText != "" {
				w.add(ExpandOptReferences(name, def.LongText), "")
			}

		case ShortcutGroup:
			if len(def) == 0 {
				continue
			}
			rep := def[0]
			w.enter(rep.Group)

			anchor := name + "." + rep.Title()
			if _, err := r.ctx.ParseShortcut(anchor); err != nil {
				return "", err
			}
			w.add(".. shortcut:: " + anchor)
			r.ctx.RegisterShortcut(name+"."+rep.Name, anchor, r.ResolveKey(rep.Key, modifier))

			var maps []string
			for _, sc := range def {
				if sc.AddToDefault {
					maps = append(maps, "    map "+r.ResolveKey(sc.Key, modifier)+" "+sc.Action)
				}
			}
			if len(maps) > 0 {
				w.add(".. code-block:: conf", "")
				w.add(maps...)
			}
			w.add("")
			if rep.LongText != "" {
				w.add(ExpandOptReferences(name, rep.LongText), "")
			}
		}
	}
	w.leave()

	return strings.Join(w.lines, "\n"), nil
}

// docWriter accumulates output lines and tracks the open group.
type docWriter struct {
	ns      string
	lines   []string
	current *Group
}

func (w *docWriter) add(lines ...string) {
	w.lines = append(w.lines, lines...)
}

// enter switches to g, closing the open group first.
func (w *docWriter) enter(g *Group) {
	if g == w.current {
		return
	}
	w.leave()
	w.current = g
	if g == nil {
		return
	}

	title := g.Title()
	underline := "^"
	if g.Nested() {
		underline = "+"
	}
	w.add("", ".. _conf-"+w.ns+"-"+g.Name+":", "", title,
		strings.Repeat(underline, utf8.RuneCountInString(title)+20), "")
	if g.StartText != "" {
		w.add(g.StartText, "")
	}
}

// leave closes the open group.
func (w *docWriter) leave() {
	if w.current != nil && w.current.EndText != "" {
		w.add("", w.current.EndText)
	}
	w.current = nil
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
