// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
)

const (
	literalModeline = "# vim:fileencoding=utf-8:ft=conf:foldmethod=marker"
	literalWidth    = 70
	foldOpen        = " {{{"
	foldClose       = "#: }}}"
)

// LiteralConf renders ns as a commented sample configuration file. Top
// level groups become vim folds; sub-groups stay inside their parent's
// fold. Shortcut keys keep the modifier placeholder, which is valid
// configuration syntax.
func (r *Renderer) LiteralConf(ns *Namespace) string {
	l := &literalWriter{}
	l.add(literalModeline, "")

	done := make(map[*Option]bool)
	for i, d := range ns.Definitions {
		switch def := d.(type) {
		case *Option:
			if !def.AddToDocs || done[def] {
				continue
			}
			l.enter(def.Group)
			run := r.merger(ns.Definitions, def, i)
			if len(run) == 0 {
				run = []*Option{def}
			}
			width := 0
			for _, o := range run {
				width = max(width, utf8.RuneCountInString(o.Name))
			}
			for _, o := range run {
				done[o] = true
				l.add(strings.TrimRight("# "+padRight(o.Name, width)+" "+o.Default, " "))
			}
			l.add("")
			if def.LongText != "" {
				l.add(commentBlock(def.LongText)...)
				l.add("")
			}

		case ShortcutGroup:
			if len(def) == 0 {
				continue
			}
			l.enter(def[0].Group)
			for _, sc := range def {
				if sc.AddToDefault {
					l.add("# map " + sc.Key + " " + sc.Action)
				}
			}
			if lt := strings.TrimSpace(def[0].LongText); lt != "" {
				l.add("")
				l.add(commentBlock(lt)...)
				l.add("")
			}
		}
	}
	l.finish()

	return strings.Join(alignMaps(l.lines), "\n")
}

// LiteralPage wraps a literal configuration file in a code block, ready to
// be written as conf-<ns>-literal.rst.
func LiteralPage(conf string) string {
	var b strings.Builder
	b.WriteString(".. code-block:: conf\n\n")
	for _, line := range strings.Split(conf, "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

type literalWriter struct {
	lines   []string
	current *Group
	folds   int
}

func (l *literalWriter) add(lines ...string) {
	l.lines = append(l.lines, lines...)
}

func (l *literalWriter) enter(g *Group) {
	if g == l.current {
		return
	}
	if l.current != nil {
		l.close(g)
	}
	l.current = g
	if g == nil {
		return
	}
	if !g.Nested() {
		l.add("#: " + g.Title() + foldOpen)
		l.folds++
	}
	l.add("")
	if g.StartText != "" {
		l.add(commentBlock(g.StartText)...)
		l.add("")
	}
}

// close ends the current group. The fold of its top-level group stays
// open when next is another sub-group of that top-level group.
func (l *literalWriter) close(next *Group) {
	if l.current.EndText != "" {
		l.add("")
		l.add(commentBlock(l.current.EndText)...)
	}
	sub := next != nil && next.Nested() && topLevel(next.Name) == topLevel(l.current.Name)
	if !sub && l.folds > 0 {
		l.add(foldClose, "")
		l.folds--
	}
}

func topLevel(name string) string {
	top, _, _ := strings.Cut(name, ".")
	return top
}

func (l *literalWriter) finish() {
	if l.current != nil {
		l.close(nil)
	}
	for ; l.folds > 0; l.folds-- {
		l.add(foldClose, "")
	}
}

// commentBlock wraps text into "#: " comment lines, one "#:" line between
// paragraphs.
func commentBlock(text string) []string {
	var out []string
	for i, para := range splitParagraphs(RemoveMarkup(text)) {
		if i > 0 {
			out = append(out, "#:")
		}
		wrapped := wordwrap.WrapString(para, literalWidth-3)
		for _, line := range strings.Split(wrapped, "\n") {
			out = append(out, "#: "+line)
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	var (
		paras []string
		cur   []string
	)
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return paras
}

// alignMaps lines up the action column of consecutive map lines.
func alignMaps(lines []string) []string {
	const prefix = "# map "
	for start := 0; start < len(lines); {
		if !strings.HasPrefix(lines[start], prefix) {
			start++
			continue
		}
		end := start
		width := 0
		for end < len(lines) && strings.HasPrefix(lines[end], prefix) {
			key, _, _ := strings.Cut(strings.TrimPrefix(lines[end], prefix), " ")
			width = max(width, utf8.RuneCountInString(key))
			end++
		}
		for i := start; i < end; i++ {
			key, action, _ := strings.Cut(strings.TrimPrefix(lines[i], prefix), " ")
			lines[i] = prefix + padRight(key, width) + " " + action
		}
		start = end
	}
	return lines
}
