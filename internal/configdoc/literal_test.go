// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/docgen/internal/xref"
)

func TestLiteralConf(t *testing.T) {
	fonts := &Group{Name: "fonts", ShortText: "Fonts", StartText: "Font settings"}
	extra := &Group{Name: "fonts.extra", ShortText: "Extra"}
	keys := &Group{Name: "shortcuts", ShortText: "Keyboard shortcuts"}

	ns := &Namespace{Name: "kitty", Definitions: []Definition{
		&Option{Name: "font_family", Group: fonts, Default: "monospace", LongText: "The :opt:`font_size` matters.", AddToDocs: true},
		&Option{Name: "x", Group: extra, Default: "1", LongText: "x text", AddToDocs: true},
		ShortcutGroup{{Name: "copy", Group: keys, Key: "kitty_mod+c", Action: "copy_to_clipboard", AddToDefault: true}},
		ShortcutGroup{{Name: "paste", Group: keys, Key: "shift+insert", Action: "paste_from_selection", AddToDefault: true}},
	}}

	want := strings.Join([]string{
		"# vim:fileencoding=utf-8:ft=conf:foldmethod=marker",
		"",
		"#: Fonts {{{",
		"",
		"#: Font settings",
		"",
		"# font_family monospace",
		"",
		"#: The font_size matters.",
		"",
		"",
		"# x 1",
		"",
		"#: x text",
		"",
		"#: }}}",
		"",
		"#: Keyboard shortcuts {{{",
		"",
		"# map kitty_mod+c  copy_to_clipboard",
		"# map shift+insert paste_from_selection",
		"#: }}}",
		"",
	}, "\n")

	got := NewRenderer(xref.NewContext("kitty")).LiteralConf(ns)
	assert.Equal(t, want, got)
}

func TestLiteralConfSiblingSubGroups(t *testing.T) {
	colors := &Group{Name: "colors", ShortText: "Colors"}
	table := &Group{Name: "colors.table", ShortText: "Color table"}
	other := &Group{Name: "colors.other", ShortText: "Other colors"}
	fonts := &Group{Name: "fonts", ShortText: "Fonts"}

	ns := &Namespace{Name: "kitty", Definitions: []Definition{
		&Option{Name: "background", Group: colors, Default: "#000000", LongText: "bg", AddToDocs: true},
		&Option{Name: "color0", Group: table, Default: "#000000", LongText: "black", AddToDocs: true},
		&Option{Name: "mark", Group: other, Default: "x", LongText: "mark", AddToDocs: true},
		&Option{Name: "font_size", Group: fonts, Default: "11", LongText: "size", AddToDocs: true},
	}}
	got := NewRenderer(xref.NewContext("kitty")).LiteralConf(ns)

	assert.Equal(t, 2, strings.Count(got, "{{{"))
	assert.Equal(t, 2, strings.Count(got, "#: }}}"))

	open := strings.Index(got, "#: Colors {{{")
	closing := strings.Index(got, "#: }}}")
	require.GreaterOrEqual(t, open, 0)
	assert.Less(t, open, strings.Index(got, "# color0"))
	assert.Less(t, strings.Index(got, "# mark x"), closing, "sibling sub-group stays inside the Colors fold")
	assert.Less(t, closing, strings.Index(got, "#: Fonts {{{"))
}

func TestLiteralConfHasNoSideEffects(t *testing.T) {
	g := &Group{Name: "g", ShortText: "G"}
	ctx := xref.NewContext("kitty")
	NewRenderer(ctx).LiteralConf(&Namespace{Name: "kitty", Definitions: []Definition{
		&Option{Name: "a", Group: g, AddToDocs: true},
		ShortcutGroup{{Name: "s", Group: g, Key: "a", Action: "b", AddToDefault: true}},
	}})
	assert.Empty(t, ctx.Options())
	assert.Empty(t, ctx.Shortcuts())
}

func TestLiteralConfEndTextAndMergedRun(t *testing.T) {
	g := &Group{Name: "colors", ShortText: "Colors", EndText: "That is all."}
	ns := &Namespace{Name: "kitty", Definitions: []Definition{
		&Option{Name: "color0", Group: g, Default: "#000000", LongText: "black", AddToDocs: true},
		&Option{Name: "color10", Group: g, Default: "#00ff00", AddToDocs: true},
	}}
	got := NewRenderer(xref.NewContext("kitty")).LiteralConf(ns)

	assert.Contains(t, got, "# color0  #000000\n# color10 #00ff00\n\n#: black\n")
	assert.Contains(t, got, "\n\n#: That is all.\n#: }}}\n")
}

func TestCommentBlockWraps(t *testing.T) {
	text := strings.Repeat("word ", 30) + "\n\nSecond paragraph"
	lines := commentBlock(text)

	assert.Greater(t, len(lines), 3)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "#:"), l)
		assert.LessOrEqual(t, len(l), 70, l)
	}
	assert.Contains(t, lines, "#:")
	assert.Equal(t, "#: Second paragraph", lines[len(lines)-1])
}

func TestLiteralPage(t *testing.T) {
	got := LiteralPage("# a\n\n# b")
	assert.Equal(t, ".. code-block:: conf\n\n    # a\n    \n    # b\n", got)
}
