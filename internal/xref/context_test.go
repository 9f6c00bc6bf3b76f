// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package xref

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/docgen/internal/errors"
)

func TestResolveOption(t *testing.T) {
	t.Run("unqualified target defaults to root namespace", func(t *testing.T) {
		c := NewContext("kitty")
		title, anchor := c.ResolveOption("foo", "foo")
		assert.Equal(t, "foo", title)
		assert.Equal(t, "kitty.foo", anchor)
	})

	t.Run("alias resolves to canonical", func(t *testing.T) {
		c := NewContext("kitty")
		_, err := c.ParseOption("kitty.baz, kitty.bar")
		require.NoError(t, err)
		title, anchor := c.ResolveOption("bar", "kitty.bar")
		assert.Equal(t, "bar", title)
		assert.Equal(t, "kitty.baz", anchor)
	})

	t.Run("other namespace stays qualified", func(t *testing.T) {
		c := NewContext("kitty")
		_, anchor := c.ResolveOption("x", "kitten-diff.num_context_lines")
		assert.Equal(t, "kitten-diff.num_context_lines", anchor)
	})
}

func TestParseOption(t *testing.T) {
	c := NewContext("kitty")

	first, err := c.ParseOption("kitty.color0, kitty.color1, kitty.color2")
	require.NoError(t, err)
	assert.Equal(t, "kitty.color0", first)

	_, anchor := c.ResolveOption("color2", "color2")
	assert.Equal(t, "kitty.color0", anchor)
	assert.True(t, c.HasOption("color1"))
	assert.Equal(t, []string{"kitty.color0", "kitty.color1", "kitty.color2"}, c.Options())

	_, err = c.ParseOption("")
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = c.ParseOption(", kitty.x")
	assert.Error(t, err)
}

func TestAliasesAreWriteOnce(t *testing.T) {
	c := NewContext("kitty")
	_, err := c.ParseOption("kitty.a, kitty.shared")
	require.NoError(t, err)
	_, err = c.ParseOption("kitty.b, kitty.shared")
	require.NoError(t, err)

	_, anchor := c.ResolveOption("", "shared")
	assert.Equal(t, "kitty.a", anchor)
	assert.Equal(t, "kitty.a", c.Aliases()["kitty.shared"])
}

func TestParseShortcut(t *testing.T) {
	c := NewContext("kitty")

	sig, err := c.ParseShortcut("kitty.Copy to clipboard")
	require.NoError(t, err)
	assert.Equal(t, "kitty.Copy to clipboard", sig)

	for _, bad := range []string{"", "noNamespace", ".x", "kitty."} {
		_, err := c.ParseShortcut(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveShortcut(t *testing.T) {
	c := NewContext("kitty")
	require.True(t, c.RegisterShortcut("kitty.copy_to_clipboard", "kitty.Copy to clipboard", "ctrl+shift+c"))
	assert.False(t, c.RegisterShortcut("kitty.copy_to_clipboard", "other", "other"))

	title, anchor, ok := c.ResolveShortcut("copy", "copy_to_clipboard")
	assert.True(t, ok)
	assert.Equal(t, "ctrl+shift+c", title)
	assert.Equal(t, "kitty.Copy to clipboard", anchor)

	title, anchor, ok = c.ResolveShortcut("nope", "nope")
	assert.False(t, ok)
	assert.Equal(t, "nope", title)
	assert.Equal(t, "nope", anchor)
}

func TestReset(t *testing.T) {
	c := NewContext("kitty")
	_, err := c.ParseOption("kitty.b, kitty.a")
	require.NoError(t, err)
	c.RegisterShortcut("kitty.x", "kitty.X", "ctrl+x")
	c.Reset()

	assert.Empty(t, c.Aliases())
	assert.Empty(t, c.Shortcuts())
	assert.Empty(t, c.Options())
	assert.Equal(t, "kitty", c.Root())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := NewContext("kitty")
	_, err := c.ParseOption("kitty.color0, kitty.color1")
	require.NoError(t, err)
	c.RegisterShortcut("kitty.new_window", "kitty.New window", "ctrl+shift+enter")

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))
	assert.Contains(t, buf.String(), "version: 1")
	assert.Contains(t, buf.String(), "kitty.color1: kitty.color0")

	loaded := NewContext("")
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, "kitty", loaded.Root())
	assert.Equal(t, c.Aliases(), loaded.Aliases())
	assert.Equal(t, c.Shortcuts(), loaded.Shortcuts())
	assert.Equal(t, c.Options(), loaded.Options())
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	c := NewContext("kitty")
	err := c.Load(bytes.NewBufferString("version: 7\nroot: kitty\n"))
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
}

func TestAnchorID(t *testing.T) {
	assert.Equal(t, "opt-kitty-font-size", AnchorID(KindOption, "kitty.font_size"))
	assert.Equal(t, "shortcut-kitty-copy-to-clipboard", AnchorID(KindShortcut, "kitty.Copy to clipboard"))
	assert.Equal(t, "opt-kitten-diff-x", AnchorID(KindOption, "kitten-diff.X!"))
}

func TestSuggest(t *testing.T) {
	c := NewContext("kitty")
	_, _ = c.ParseOption("kitty.font_size")
	_, _ = c.ParseOption("kitty.font_family")
	_, _ = c.ParseOption("kitty.scrollback_lines")
	c.RegisterShortcut("kitty.copy_to_clipboard", "a", "k")

	assert.Equal(t, []string{"kitty.font_size"}, c.Suggest(KindOption, "font_sise"))
	assert.Empty(t, c.Suggest(KindOption, "completely_unrelated_thing"))
	assert.Equal(t, []string{"kitty.copy_to_clipboard"}, c.Suggest(KindShortcut, "copy_to_clipbard"))
}

func TestConcurrentRegistration(t *testing.T) {
	c := NewContext("kitty")
	var wg sync.WaitGroup
	for ns := 0; ns < 8; ns++ {
		wg.Add(1)
		go func(ns int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sig := fmt.Sprintf("n%d.opt%d, n%d.alias%d", ns, i, ns, i)
				_, err := c.ParseOption(sig)
				assert.NoError(t, err)
				c.RegisterShortcut(fmt.Sprintf("n%d.sc%d", ns, i), "a", "k")
				c.ResolveOption("", fmt.Sprintf("n%d.alias%d", ns, i))
			}
		}(ns)
	}
	wg.Wait()

	assert.Len(t, c.Aliases(), 8*50)
	assert.Len(t, c.Shortcuts(), 8*50)
	_, anchor := c.ResolveOption("", "n3.alias7")
	assert.Equal(t, "n3.opt7", anchor)
}
