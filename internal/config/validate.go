// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"grimm.is/docgen/internal/validation"
)

// ValidationError is one problem in a project file.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks the whole configuration.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.SchemaVersion != CurrentSchemaVersion {
		add("schema_version", "unsupported version %q", c.SchemaVersion)
	}
	if err := validation.ValidateNamespace(c.RootNamespace); err != nil {
		add("root_namespace", "%v", err)
	}
	if err := validation.ValidateAllowlist(strings.ToLower(c.LogLevel), logLevels); err != nil {
		add("log_level", "%v", err)
	}
	if c.OutputDir == "" {
		add("output_dir", "must not be empty")
	}
	if c.Modifier != nil {
		if err := validation.ValidateName(c.Modifier.Option); err != nil {
			add("modifier.option", "%v", err)
		}
		if c.Modifier.Placeholder == "" {
			add("modifier.placeholder", "must not be empty")
		}
	}

	seen := make(map[string]bool)
	for i, ns := range c.Namespaces {
		field := fmt.Sprintf("namespace[%s]", ns.Name)
		if ns.Name == "" {
			field = fmt.Sprintf("namespace[%d]", i)
		}
		if err := validation.ValidateNamespace(ns.Name); err != nil {
			add(field, "%v", err)
		}
		if seen[ns.Name] {
			add(field, "declared more than once")
		}
		seen[ns.Name] = true
		if ns.Definitions == "" {
			add(field+".definitions", "must not be empty")
		}
	}
	if len(c.Namespaces) > 0 && !seen[c.RootNamespace] {
		add("root_namespace", "%q is not a declared namespace", c.RootNamespace)
	}

	if c.CLI != nil && c.CLI.Spec == "" {
		add("cli.spec", "must not be empty")
	}
	if c.Sources != nil {
		if c.Sources.Root == "" {
			add("sources.root", "must not be empty")
		}
		if !doublestar.ValidatePattern(c.Sources.Pattern) {
			add("sources.pattern", "invalid glob %q", c.Sources.Pattern)
		}
		if out := c.Sources.OutputDir; out != "" && filepath.Clean(out) == filepath.Clean(c.Sources.Root) {
			add("sources.output_dir", "must differ from sources.root")
		}
	}
	return errs
}
