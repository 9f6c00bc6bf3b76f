// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the docgen project file (docgen.hcl).
//
// A minimal project file names the definitions exports to document:
//
//	output_dir = "docs/generated"
//
//	namespace "kitty" {
//	  definitions = "defs/kitty.hcl"
//	  page        = "conf.html"
//	}
//
// Every other setting falls back to the embedded brand defaults.
package config

import (
	"path/filepath"

	"grimm.is/docgen/internal/brand"
)

// CurrentSchemaVersion is the project file schema written by Marshal.
const CurrentSchemaVersion = "1"

// Config is the top-level project configuration.
type Config struct {
	// @default: "1"
	SchemaVersion string `hcl:"schema_version,optional" json:"schema_version,omitempty"`

	// Name of the documented project, used in log output.
	Project string `hcl:"project,optional" json:"project,omitempty"`

	// Namespace that unqualified option and shortcut references resolve in.
	// @default: "kitty"
	RootNamespace string `hcl:"root_namespace,optional" json:"root_namespace,omitempty"`

	// Directory generated pages are written to, relative to the project file.
	// @default: "generated"
	OutputDir string `hcl:"output_dir,optional" json:"output_dir,omitempty"`

	// @enum: debug, info, warn, error
	LogLevel string `hcl:"log_level,optional" json:"log_level,omitempty"`

	GitHub     *GitHubConfig     `hcl:"github,block" json:"github,omitempty"`
	Modifier   *ModifierConfig   `hcl:"modifier,block" json:"modifier,omitempty"`
	Namespaces []NamespaceConfig `hcl:"namespace,block" json:"namespace,omitempty"`
	CLI        *CLIConfig        `hcl:"cli,block" json:"cli,omitempty"`
	Sources    *SourcesConfig    `hcl:"sources,block" json:"sources,omitempty"`

	// Dir is the directory of the project file. Relative paths resolve against it.
	Dir string `json:"-"`
}

// GitHubConfig names the repository :iss:, :pull: and :commit: roles link to.
type GitHubConfig struct {
	User string `hcl:"user,optional" json:"user,omitempty"`
	Repo string `hcl:"repo,optional" json:"repo,omitempty"`

	// Checkout used to resolve :commit: ids. Commit roles are reported as
	// errors when empty.
	Checkout string `hcl:"checkout,optional" json:"checkout,omitempty"`
}

// ModifierConfig controls substitution of the modifier placeholder in shortcut keys.
type ModifierConfig struct {
	Option      string `hcl:"option,optional" json:"option,omitempty"`
	Placeholder string `hcl:"placeholder,optional" json:"placeholder,omitempty"`
	// Value overrides whatever the option's default says.
	Value string `hcl:"value,optional" json:"value,omitempty"`
}

// NamespaceConfig is one definitions export to render.
type NamespaceConfig struct {
	Name        string `hcl:"name,label" json:"name"`
	Definitions string `hcl:"definitions" json:"definitions"`

	// Page is the URI of the rendered page, used as the target of
	// cross-references from other documents.
	Page string `hcl:"page,optional" json:"page,omitempty"`

	// Literal disables the commented sample config page when false.
	// @default: true
	Literal *bool `hcl:"literal,optional" json:"literal,omitempty"`
}

// CLIConfig points at the CLI spec export.
type CLIConfig struct {
	Spec string `hcl:"spec" json:"spec"`
}

// SourcesConfig selects the hand-written documents for the reference pass.
type SourcesConfig struct {
	Root    string `hcl:"root" json:"root"`
	Pattern string `hcl:"pattern,optional" json:"pattern,omitempty"`
	// OutputDir receives the rewritten documents, DefaultSourcesOutputDir
	// below the project output_dir when empty. Sources are never
	// rewritten in place.
	OutputDir string `hcl:"output_dir,optional" json:"output_dir,omitempty"`
}

const (
	// DefaultSourcePattern matches every reST document below the sources root.
	DefaultSourcePattern = "**/*.rst"
	// DefaultSourcesOutputDir is relative to the project output_dir.
	DefaultSourcesOutputDir = "sources"
)

// Default returns a configuration with brand defaults and no namespaces.
func Default() *Config {
	b := brand.Get()
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		Project:       b.Project,
		RootNamespace: b.RootNamespace,
		OutputDir:     "generated",
		LogLevel:      "info",
		GitHub:        &GitHubConfig{User: b.GitHubUser, Repo: b.GitHubRepo},
		Modifier:      &ModifierConfig{Option: b.ModifierOption, Placeholder: b.ModifierPlaceholder},
		Dir:           ".",
	}
}

// ApplyDefaults fills unset fields from Default.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.SchemaVersion == "" {
		c.SchemaVersion = def.SchemaVersion
	}
	if c.Project == "" {
		c.Project = def.Project
	}
	if c.RootNamespace == "" {
		c.RootNamespace = def.RootNamespace
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.GitHub == nil {
		c.GitHub = &GitHubConfig{}
	}
	if c.GitHub.User == "" {
		c.GitHub.User = def.GitHub.User
	}
	if c.GitHub.Repo == "" {
		c.GitHub.Repo = def.GitHub.Repo
	}
	if c.Modifier == nil {
		c.Modifier = &ModifierConfig{}
	}
	if c.Modifier.Option == "" {
		c.Modifier.Option = def.Modifier.Option
	}
	if c.Modifier.Placeholder == "" {
		c.Modifier.Placeholder = def.Modifier.Placeholder
	}
	if c.Sources != nil && c.Sources.Pattern == "" {
		c.Sources.Pattern = DefaultSourcePattern
	}
	if c.Dir == "" {
		c.Dir = def.Dir
	}
}

// Resolve makes a project-relative path absolute against Dir.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// SourcesOutputDir is the absolute directory the reference pass writes to,
// or "" without a sources block.
func (c *Config) SourcesOutputDir() string {
	if c.Sources == nil {
		return ""
	}
	if c.Sources.OutputDir != "" {
		return c.Resolve(c.Sources.OutputDir)
	}
	return c.Resolve(filepath.Join(c.OutputDir, DefaultSourcesOutputDir))
}

// Namespace returns the named namespace entry.
func (c *Config) Namespace(name string) (*NamespaceConfig, bool) {
	for i := range c.Namespaces {
		if c.Namespaces[i].Name == name {
			return &c.Namespaces[i], true
		}
	}
	return nil, false
}

// Pages maps namespace names to their page URIs.
func (c *Config) Pages() map[string]string {
	pages := make(map[string]string, len(c.Namespaces))
	for _, ns := range c.Namespaces {
		if ns.Page != "" {
			pages[ns.Name] = ns.Page
		}
	}
	return pages
}

// WantsLiteral reports whether the sample config page is generated.
func (n *NamespaceConfig) WantsLiteral() bool {
	return n.Literal == nil || *n.Literal
}
