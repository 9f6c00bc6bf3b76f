// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package lexer

import (
	"html"
	"strings"
)

// FormatHTML renders tokens the way Pygments' HTML formatter does: a
// highlight div wrapping a pre, one span per run of same-typed tokens.
// Plain text tokens are not wrapped.
func FormatHTML(tokens []Token) string {
	var b strings.Builder
	b.WriteString(`<div class="highlight"><pre>`)

	for i := 0; i < len(tokens); {
		typ := tokens[i].Type
		var run strings.Builder
		for ; i < len(tokens) && tokens[i].Type == typ; i++ {
			run.WriteString(tokens[i].Text)
		}

		text := html.EscapeString(run.String())
		if class := typ.Class(); class != "" {
			b.WriteString(`<span class="` + class + `">` + text + `</span>`)
		} else {
			b.WriteString(text)
		}
	}

	b.WriteString("</pre></div>\n")
	return b.String()
}

// Highlight tokenizes text with l and formats it as HTML.
func Highlight(l *Lexer, text string) string {
	return FormatHTML(l.Tokenize(text))
}
