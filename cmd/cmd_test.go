// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/docgen/internal/config"
	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/testutil"
)

// capture redirects Printer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Printer.Out
	Printer.Out = &buf
	t.Cleanup(func() { Printer.Out = old })
	return &buf
}

const defs = `version   = 1
namespace = "kitty"

group "fonts" {
  short_text = "Fonts"
}

option "font_size" {
  default   = 11.0
  long_text = "Font size (in pts)"
}

shortcut "increase_font_size" {
  short_text = "Increase font size"
  key        = "kitty_mod+equal"
  action     = "change_font_size all +2.0"
}
`

func TestRunHighlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitty.conf")
	testutil.WriteFile(t, path, "a yes")

	out := capture(t)
	require.NoError(t, RunHighlight(path, HighlightOptions{}))
	assert.True(t, strings.HasPrefix(out.String(), `<div class="highlight"><pre><span class="nv">a</span>`))

	out.Reset()
	require.NoError(t, RunHighlight(path, HighlightOptions{Lexer: "conf", Tokens: true}))
	assert.Equal(t, "Name.Variable\t\"a\"\nText.Whitespace\t\" \"\nLiteral.Number.Bin\t\"yes\"\n", out.String())

	err := RunHighlight(path, HighlightOptions{Lexer: "python"})
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
	assert.Contains(t, err.Error(), "conf, session")

	err = RunHighlight(filepath.Join(t.TempDir(), "notes.txt"), HighlightOptions{})
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))

	err = RunHighlight(filepath.Join(t.TempDir(), "missing.conf"), HighlightOptions{})
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
}

func TestRunLexers(t *testing.T) {
	out := capture(t)
	RunLexers()
	assert.Contains(t, out.String(), "conf       Conf (*.conf)\n")
	assert.Contains(t, out.String(), "session    Session (*.session)\n")
}

func TestRunSchema(t *testing.T) {
	out := capture(t)
	require.NoError(t, RunSchema("json"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc, "$defs")

	out.Reset()
	require.NoError(t, RunSchema("yaml"))
	assert.Contains(t, out.String(), "definitions:")

	assert.Equal(t, errors.KindValidation, errors.GetKind(RunSchema("toml")))
}

func TestRunDefs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kitty.hcl")
	testutil.WriteFile(t, path, strings.Replace(defs, "default   = 11.0", "default = 11.0", 1))

	out := capture(t)
	require.NoError(t, RunDefsFmt([]string{path}, false))
	assert.Equal(t, defs, out.String())

	out.Reset()
	require.NoError(t, RunDefsFmt([]string{path}, true))
	assert.Equal(t, path+"\n", out.String())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defs, string(got))

	assert.Equal(t, errors.KindValidation, errors.GetKind(RunDefsFmt([]string{"kitty.yaml"}, false)))

	out.Reset()
	require.NoError(t, RunDefsCheck([]string{path}))
	assert.Equal(t, path+": namespace kitty, 1 groups, 1 options, 1 shortcuts\n", out.String())

	out.Reset()
	require.NoError(t, RunDefsLiteral(path))
	assert.Contains(t, out.String(), "# font_size 11\n")
	assert.Contains(t, out.String(), "# map kitty_mod+equal change_font_size all +2.0\n")

	out.Reset()
	require.NoError(t, RunDefsConvert(path))
	assert.Contains(t, out.String(), "option \"font_size\" {")
}

func TestRunCLIDocs(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "cli.yaml")
	testutil.WriteFile(t, spec, "version: 1\nprograms:\n  - slug: kitty\n    app: kitty\n")

	out := capture(t)
	require.NoError(t, RunCLIDocs(spec, ""))
	assert.True(t, strings.HasPrefix(out.String(), ".. program:: kitty\n"))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, RunCLIDocs(spec, outDir))
	_, err := os.Stat(filepath.Join(outDir, "cli-kitty.rst"))
	assert.NoError(t, err)
}

func TestRunInitAndBuild(t *testing.T) {
	dir := t.TempDir()
	capture(t)

	require.NoError(t, RunInit(dir, false))
	err := RunInit(dir, false)
	assert.Equal(t, errors.KindConflict, errors.GetKind(err))
	require.NoError(t, RunInit(dir, true))

	cfg, err := config.LoadFile(filepath.Join(dir, "docgen.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "defs/kitty.hcl", cfg.Namespaces[0].Definitions)

	testutil.WriteFile(t, filepath.Join(dir, "defs", "kitty.hcl"), defs)
	testutil.WriteFile(t, filepath.Join(dir, "docs", "index.rst"), "Use :opt:`font_size`.\n")

	configPath := filepath.Join(dir, "docgen.hcl")
	metricsFile := filepath.Join(dir, "docgen.prom")
	opts := BuildOptions{Log: LogOptions{Level: "error"}, MetricsFile: metricsFile}
	require.NoError(t, RunBuild(context.Background(), configPath, opts))
	_, err = os.Stat(filepath.Join(dir, "generated", "conf-kitty.rst"))
	require.NoError(t, err)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `docgen_builds_total{result="ok"} 1`)

	linked, err := os.ReadFile(filepath.Join(dir, "generated", "sources", "index.rst"))
	require.NoError(t, err)
	assert.Equal(t, "Use `font_size <conf.html#opt-kitty-font-size>`__.\n", string(linked))
	source, err := os.ReadFile(filepath.Join(dir, "docs", "index.rst"))
	require.NoError(t, err)
	assert.Equal(t, "Use :opt:`font_size`.\n", string(source))

	opts.Check = true
	assert.NoError(t, RunBuild(context.Background(), configPath, opts))
	assert.NoError(t, RunLinks(context.Background(), configPath, opts))
}
