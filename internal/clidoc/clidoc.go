// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package clidoc renders command line option references from an exported
// CLI spec (YAML or JSON) into reStructuredText.
package clidoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"grimm.is/docgen/internal/configdoc"
	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/validation"
)

// SpecVersion is the CLI spec export format understood by this package.
const SpecVersion = 1

// Spec is a CLI spec export: one entry per documented program.
type Spec struct {
	Version  int        `yaml:"version" json:"version"`
	Programs []*Program `yaml:"programs" json:"programs"`
}

// Program is one command (kitty, kitty @ ls, kitty +kitten diff, ...).
type Program struct {
	// Slug names the output file cli-<slug>.rst.
	Slug    string `yaml:"slug" json:"slug"`
	App     string `yaml:"app" json:"app"`
	Usage   string `yaml:"usage,omitempty" json:"usage,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	// Title, when set, is emitted as a section heading above the program.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// HeadingChar underlines the Options heading; "-" when empty.
	HeadingChar string `yaml:"heading_char,omitempty" json:"heading_char,omitempty"`

	Options []*Entry `yaml:"options,omitempty" json:"options,omitempty"`

	// Subcommands render into the same file after the program.
	Subcommands []*Program `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
}

// Entry is either a section heading (Section set) or an option.
type Entry struct {
	Section string   `yaml:"section,omitempty" json:"section,omitempty"`
	Flags   []string `yaml:"flags,omitempty" json:"flags,omitempty"`
	Dest    string   `yaml:"dest,omitempty" json:"dest,omitempty"`
	Type    string   `yaml:"type,omitempty" json:"type,omitempty"`
	Default any      `yaml:"default,omitempty" json:"default,omitempty"`
	Choices []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	Help    string   `yaml:"help,omitempty" json:"help,omitempty"`
	Hidden  bool     `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// IsBool reports whether the option is a flag without a value.
func (e *Entry) IsBool() bool {
	return strings.HasPrefix(e.Type, "bool-")
}

// DefaultText is the default value as shown in the docs.
func (e *Entry) DefaultText() string {
	if e.Default == nil {
		return ""
	}
	return configdoc.FormatValue(e.Default)
}

// Filename is the output file of the program.
func (p *Program) Filename() string {
	return "cli-" + p.Slug + ".rst"
}

// Load reads a CLI spec export from disk.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.At(errors.Wrap(err, errors.KindNotFound, "CLI spec not found"), path, 0)
		}
		return nil, errors.Wrap(err, errors.KindInternal, "failed to read CLI spec")
	}
	return Parse(path, data)
}

// Parse decodes a CLI spec export; JSON for .json/.jsonc files, YAML otherwise.
func Parse(filename string, data []byte) (*Spec, error) {
	var spec Spec
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &spec); err != nil {
			return nil, errors.At(errors.Wrap(err, errors.KindValidation, "failed to parse CLI spec"), filename, 0)
		}
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, errors.At(errors.Wrap(err, errors.KindValidation, "failed to parse CLI spec"), filename, 0)
		}
	}
	if err := spec.Validate(); err != nil {
		return nil, errors.At(err, filename, 0)
	}
	return &spec, nil
}

// Validate checks the version, slugs and option flags.
func (s *Spec) Validate() error {
	if s.Version != SpecVersion {
		return errors.Errorf(errors.KindValidation, "unsupported CLI spec version %d (want %d)", s.Version, SpecVersion)
	}
	seen := make(map[string]bool)
	for i, p := range s.Programs {
		if p == nil {
			return errors.Errorf(errors.KindValidation, "program %d is empty", i+1)
		}
		if err := validation.ValidateNamespace(p.Slug); err != nil {
			return errors.Wrapf(err, errors.KindValidation, "program %q", p.App)
		}
		if seen[p.Slug] {
			return errors.Errorf(errors.KindConflict, "duplicate program slug %q", p.Slug)
		}
		seen[p.Slug] = true
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) validate() error {
	if p.App == "" {
		return errors.Errorf(errors.KindValidation, "program %q has no app name", p.Slug)
	}
	if utf8.RuneCountInString(p.HeadingChar) > 1 {
		return errors.Errorf(errors.KindValidation, "program %q: heading_char must be a single character", p.Slug)
	}
	for i, e := range p.Options {
		if e == nil {
			return errors.Errorf(errors.KindValidation, "program %q: option %d is empty", p.App, i+1)
		}
		if e.Section != "" {
			continue
		}
		if len(e.Flags) == 0 {
			return errors.Errorf(errors.KindValidation, "program %q: option without flags", p.App)
		}
		for _, f := range e.Flags {
			if !strings.HasPrefix(f, "-") || strings.ContainsAny(f, " \t") {
				return errors.Errorf(errors.KindValidation, "program %q: invalid flag %q", p.App, f)
			}
		}
	}
	for i, sub := range p.Subcommands {
		if sub == nil {
			return errors.Errorf(errors.KindValidation, "program %q: subcommand %d is empty", p.App, i+1)
		}
		if err := sub.validate(); err != nil {
			return err
		}
	}
	return nil
}

// RST renders the program and its subcommands.
func (p *Program) RST() string {
	var lines []string
	a := func(s ...string) { lines = append(lines, s...) }
	p.render(a)
	return strings.Join(lines, "\n") + "\n"
}

func (p *Program) render(a func(...string)) {
	if p.Title != "" {
		a(p.Title, strings.Repeat("-", 80), "")
	}
	a(".. program:: "+p.App, "", "")

	usage := p.App
	if p.Usage != "" {
		usage += " " + p.Usage
	}
	a(".. highlight:: sh", ".. code-block:: sh", "", "  "+usage, "")
	if p.Message != "" {
		a(strings.TrimSpace(p.Message), "")
	}

	visible := 0
	for _, e := range p.Options {
		if e.Section == "" && !e.Hidden {
			visible++
		}
	}
	if visible > 0 {
		heading := p.HeadingChar
		if heading == "" {
			heading = "-"
		}
		a("Options", strings.Repeat(heading, 30), "")
		for _, e := range p.Options {
			e.render(a)
		}
	}

	for _, sub := range p.Subcommands {
		a("")
		sub.render(a)
	}
}

func (e *Entry) render(a func(...string)) {
	if e.Section != "" {
		a(e.Section, strings.Repeat("~", len(e.Section)+10), "")
		return
	}
	if e.Hidden {
		return
	}

	def := e.DefaultText()
	flags := append([]string(nil), e.Flags...)
	if !e.IsBool() && def != "" {
		flags[0] += " [=" + def + "]"
	}
	a(".. option:: "+strings.Join(flags, ", "), "")

	help := strings.TrimSpace(strings.ReplaceAll(e.Help, "%default", def))
	if help != "" {
		for _, line := range strings.Split(help, "\n") {
			a(indent(line))
		}
	}
	if len(e.Choices) > 0 {
		choices := append([]string(nil), e.Choices...)
		sort.Strings(choices)
		if help != "" {
			a("")
		}
		a(indent("Choices: " + codeList(choices)))
	}
	a("")
}

func indent(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return "    " + line
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = ":code:`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

// Filenames returns the output file names of every program in the CLI spec file.
func (s *Spec) Filenames() []string {
	out := make([]string, 0, len(s.Programs))
	for _, p := range s.Programs {
		out = append(out, p.Filename())
	}
	return out
}
