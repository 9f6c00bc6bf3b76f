// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/xref"
)

func render(t *testing.T, defs []Definition, opts ...RenderOption) (string, *xref.Context) {
	t.Helper()
	ctx := xref.NewContext("kitty")
	out, err := NewRenderer(ctx, opts...).Render("kitty", defs)
	require.NoError(t, err)
	return out, ctx
}

func TestRenderSingleOption(t *testing.T) {
	g := &Group{Name: "g", ShortText: "G"}
	out, ctx := render(t, []Definition{
		&Option{Name: "foo", Group: g, Default: "1", LongText: "desc", AddToDocs: true},
	})

	want := strings.Join([]string{
		".. default-domain:: conf",
		"",
		"",
		".. _conf-kitty-g:",
		"",
		"G",
		strings.Repeat("^", 21),
		"",
		".. opt:: kitty.foo",
		".. code-block:: conf",
		"",
		"    foo 1",
		"",
		"desc",
		"",
	}, "\n")
	assert.Equal(t, want, out)
	assert.True(t, ctx.HasOption("foo"))
	assert.Empty(t, ctx.Aliases())
}

func TestRenderShortcutSubstitutesModifier(t *testing.T) {
	g := &Group{Name: "shortcuts", ShortText: "Keyboard shortcuts"}
	defs := []Definition{
		ShortcutGroup{{Name: "close_window", ShortText: "Close window", Group: g, Key: "kitty_mod+x", Action: "close_window", AddToDefault: true}},
		// the modifier option appears after the shortcut using it
		&Option{Name: "kitty_mod", Group: g, Default: "ctrl+shift", LongText: "The modifier", AddToDocs: true},
	}
	out, ctx := render(t, defs)

	assert.Contains(t, out, ".. shortcut:: kitty.Close window\n.. code-block:: conf\n\n    map ctrl+shift+x close_window\n")

	title, anchor, ok := ctx.ResolveShortcut("close_window", "close_window")
	require.True(t, ok)
	assert.Equal(t, "ctrl+shift+x", title)
	assert.Equal(t, "kitty.Close window", anchor)
}

func TestRenderModifierOverride(t *testing.T) {
	g := &Group{Name: "shortcuts", ShortText: "Keyboard shortcuts"}
	defs := []Definition{
		ShortcutGroup{{Name: "copy", ShortText: "Copy", Group: g, Key: "kitty_mod+c", Action: "copy_to_clipboard", AddToDefault: true}},
	}

	out, _ := render(t, defs)
	assert.Contains(t, out, "    map kitty_mod+c copy_to_clipboard")

	out, _ = render(t, defs, WithModifierValue("cmd"))
	assert.Contains(t, out, "    map cmd+c copy_to_clipboard")

	out, _ = render(t, defs, WithModifier("mod", "kitty_mod"), WithModifierValue("alt"))
	assert.Contains(t, out, "    map alt+c copy_to_clipboard")
}

func TestRenderShortcutGroup(t *testing.T) {
	g := &Group{Name: "tabs", ShortText: "Tab management"}
	sg := ShortcutGroup{
		{Name: "next_tab", ShortText: "Next tab", Group: g, Key: "kitty_mod+right", Action: "next_tab", AddToDefault: true, LongText: "Switch to the next tab"},
		{Name: "next_tab", ShortText: "Next tab", Group: g, Key: "ctrl+tab", Action: "next_tab", AddToDefault: true},
		{Name: "next_tab", ShortText: "Next tab", Group: g, Key: "cmd+shift+]", Action: "next_tab", AddToDefault: false},
	}
	out, _ := render(t, []Definition{sg}, WithModifierValue("ctrl+shift"))

	assert.Contains(t, out, strings.Join([]string{
		".. shortcut:: kitty.Next tab",
		".. code-block:: conf",
		"",
		"    map ctrl+shift+right next_tab",
		"    map ctrl+tab next_tab",
		"",
		"Switch to the next tab",
		"",
	}, "\n"))
	assert.NotContains(t, out, "cmd+shift+]")
}

func TestRenderShortcutWithoutDefaults(t *testing.T) {
	g := &Group{Name: "misc", ShortText: "Misc"}
	sg := ShortcutGroup{{Name: "debug", ShortText: "Debug", Group: g, Key: "f1", Action: "debug", AddToDefault: false}}
	out, ctx := render(t, []Definition{sg})

	assert.True(t, strings.HasSuffix(out, ".. shortcut:: kitty.Debug\n"))
	assert.NotContains(t, out, "code-block")
	_, _, ok := ctx.ResolveShortcut("x", "kitty.debug")
	assert.True(t, ok)
}

func TestRenderMergedOptions(t *testing.T) {
	g := &Group{Name: "colors", ShortText: "Colors"}
	defs := []Definition{
		&Option{Name: "color0", Group: g, Default: "#000000", LongText: "The basic colors", AddToDocs: true},
		&Option{Name: "color1", Group: g, Default: "#cc0404", AddToDocs: true},
		&Option{Name: "color15", Group: g, Default: "#ffffff", AddToDocs: true},
		&Option{Name: "mark1_foreground", Group: g, Default: "black", LongText: "Mark color", AddToDocs: true},
	}
	out, ctx := render(t, defs)

	assert.Contains(t, out, strings.Join([]string{
		".. opt:: kitty.color0, kitty.color1, kitty.color15",
		".. code-block:: conf",
		"",
		"    color0  #000000",
		"    color1  #cc0404",
		"    color15 #ffffff",
		"",
		"The basic colors",
	}, "\n"))
	assert.Equal(t, 1, strings.Count(out, ".. opt:: kitty.color"))
	assert.Contains(t, out, ".. opt:: kitty.mark1_foreground\n")

	_, anchor := ctx.ResolveOption("color15", "color15")
	assert.Equal(t, "kitty.color0", anchor)
}

func TestRenderMergedCodeBlockRoundTrip(t *testing.T) {
	g := &Group{Name: "g", ShortText: "G"}
	defs := []Definition{
		&Option{Name: "a", Group: g, Default: "1 2", LongText: "x", AddToDocs: true},
		&Option{Name: "longer_name", Group: g, Default: "yes", AddToDocs: true},
		&Option{Name: "mid", Group: g, Default: "", AddToDocs: true},
	}
	out, _ := render(t, defs)

	lines := strings.Split(out, "\n")
	start := -1
	for i, l := range lines {
		if l == ".. code-block:: conf" {
			start = i + 2
			break
		}
	}
	require.Positive(t, start)

	for i, o := range []*Option{defs[0].(*Option), defs[1].(*Option), defs[2].(*Option)} {
		line := strings.TrimPrefix(lines[start+i], "    ")
		name, def, _ := strings.Cut(line, " ")
		assert.Equal(t, o.Name, name)
		assert.Equal(t, o.Default, strings.TrimSpace(def))
	}
}

func TestRenderGroups(t *testing.T) {
	fonts := &Group{Name: "fonts", ShortText: "Fonts", StartText: "Font settings", EndText: "End of fonts"}
	table := &Group{Name: "colors.table", ShortText: "Color table", EndText: "End of table"}
	cursor := &Group{Name: "cursor", ShortText: "Cursor"}

	defs := []Definition{
		&Option{Name: "font_family", Group: fonts, Default: "monospace", LongText: "a", AddToDocs: true},
		&Option{Name: "font_size", Group: fonts, Default: "11.0", LongText: "b", AddToDocs: true},
		&Option{Name: "hidden", Group: cursor, Default: "x", LongText: "c", AddToDocs: false},
		&Option{Name: "color0", Group: table, Default: "#000", LongText: "d", AddToDocs: true},
	}
	out, _ := render(t, defs)

	t.Run("each group opens once in first seen order", func(t *testing.T) {
		assert.Equal(t, 1, strings.Count(out, ".. _conf-kitty-fonts:"))
		assert.Equal(t, 1, strings.Count(out, "Font settings"))
		assert.Less(t, strings.Index(out, "conf-kitty-fonts"), strings.Index(out, "conf-kitty-colors.table"))
	})

	t.Run("skipped options do not open their group", func(t *testing.T) {
		assert.NotContains(t, out, "conf-kitty-cursor")
		assert.NotContains(t, out, "kitty.hidden")
	})

	t.Run("end text closes each group exactly once", func(t *testing.T) {
		assert.Equal(t, 1, strings.Count(out, "End of fonts"))
		assert.Less(t, strings.Index(out, "End of fonts"), strings.Index(out, "conf-kitty-colors.table"))
		assert.True(t, strings.HasSuffix(out, "\n\nEnd of table"))
	})

	t.Run("underline depends on nesting", func(t *testing.T) {
		assert.Contains(t, out, "Fonts\n"+strings.Repeat("^", 25)+"\n")
		assert.Contains(t, out, "Color table\n"+strings.Repeat("+", 31)+"\n")
	})
}

func TestRenderEmpty(t *testing.T) {
	out, _ := render(t, nil)
	assert.Equal(t, ".. default-domain:: conf\n", out)
}

func TestRenderMalformedSignature(t *testing.T) {
	g := &Group{Name: "g", ShortText: "G"}
	ctx := xref.NewContext("kitty")

	_, err := NewRenderer(ctx).Render("kitty", []Definition{
		ShortcutGroup{{Name: "x", ShortText: "", Group: g, Key: "a", Action: "b"}},
	})
	require.NoError(t, err, "shortcut title falls back to the name")

	_, err = NewRenderer(ctx).Render("", []Definition{
		ShortcutGroup{{Name: "x", ShortText: "X", Group: g, Key: "a", Action: "b"}},
	})
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestRenderNamespace(t *testing.T) {
	g := &Group{Name: "g", ShortText: "G"}
	ns := &Namespace{Name: "kitten-diff", Definitions: []Definition{
		&Option{Name: "num_context_lines", Group: g, Default: "3", LongText: "See :opt:`pygments_style`", AddToDocs: true},
	}}
	ctx := xref.NewContext("kitty")
	out, err := NewRenderer(ctx).RenderNamespace(ns)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, ".. highlight:: conf\n\n.. default-domain:: conf\n"))
	assert.Contains(t, out, ".. _conf-kitten-diff-g:")
	assert.Contains(t, out, "See :opt:`pygments_style <kitten-diff.pygments_style>`")
	assert.True(t, ctx.HasOption("kitten-diff.num_context_lines"))
}

func TestDefaultMerger(t *testing.T) {
	g := &Group{Name: "g"}
	h := &Group{Name: "h"}
	lead := &Option{Name: "a", Group: g, LongText: "x", AddToDocs: true}
	follow := &Option{Name: "b", Group: g, AddToDocs: true}
	other := &Option{Name: "c", Group: h, AddToDocs: true}
	hidden := &Option{Name: "d", Group: g, AddToDocs: false}

	tests := []struct {
		name string
		defs []Definition
		want []string
	}{
		{"alone", []Definition{lead}, []string{"a"}},
		{"follower", []Definition{lead, follow}, []string{"a", "b"}},
		{"stops at other group", []Definition{lead, other, follow}, []string{"a"}},
		{"stops at hidden", []Definition{lead, hidden, follow}, []string{"a"}},
		{"stops at shortcut", []Definition{lead, ShortcutGroup{{Name: "s", Group: g}}, follow}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, o := range DefaultMerger(tt.defs, lead, 0) {
				got = append(got, o.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
