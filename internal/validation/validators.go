// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package validation checks the identifiers that flow from definition
// exports into generated file names, anchors and git invocations.
package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"grimm.is/docgen/internal/errors"
)

var (
	// Namespace: kitty, kitten-diff, kitten-hints
	namespaceRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

	// Option and shortcut names are config keys.
	nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	// Group names nest with dots: tab_bar, colors.table
	groupRegex = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`)

	// A commit-ish is a hex id, a ref name or a revision expression.
	commitishRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/~^@{}-]*$`)

	// Dangerous characters that should never reach a subprocess argument
	dangerousChars = []string{";", "|", "&", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r", " "}
)

// ValidateNamespace validates a configuration namespace name.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return errors.New(errors.KindValidation, "namespace cannot be empty")
	}
	if !namespaceRegex.MatchString(ns) {
		return errors.Errorf(errors.KindValidation, "invalid namespace: %s (must be lowercase alphanumeric with -_)", ns)
	}
	return nil
}

// ValidateName validates an option or shortcut name.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "name cannot be empty")
	}
	if len(name) > 255 {
		return errors.New(errors.KindValidation, "name too long (max 255 characters)")
	}
	if !nameRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid name: %s (must be alphanumeric with _)", name)
	}
	return nil
}

// ValidateGroupName validates a dotted group name.
func ValidateGroupName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "group name cannot be empty")
	}
	if !groupRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid group name: %s", name)
	}
	return nil
}

// ValidateCommitish validates a revision before it is handed to git.
func ValidateCommitish(rev string) error {
	if rev == "" {
		return errors.New(errors.KindValidation, "commit id cannot be empty")
	}
	for _, char := range dangerousChars {
		if strings.Contains(rev, char) {
			return errors.Errorf(errors.KindValidation, "commit id contains dangerous character: %q", char)
		}
	}
	if !commitishRegex.MatchString(rev) {
		return errors.Errorf(errors.KindValidation, "invalid commit id: %s", rev)
	}
	return nil
}

// ValidateOutputName validates a generated file name relative to the output directory.
func ValidateOutputName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "output name cannot be empty")
	}
	if strings.Contains(name, "\x00") {
		return errors.New(errors.KindValidation, "null byte in output name")
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) {
		return errors.Errorf(errors.KindValidation, "output name must be relative: %s", name)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errors.Errorf(errors.KindValidation, "path traversal not allowed: %s", name)
	}
	return nil
}

// ValidateAllowlist checks if a value is in an allowed list
func ValidateAllowlist(value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Errorf(errors.KindValidation, "value not in allowlist: %s (allowed: %s)", value, strings.Join(allowed, ", "))
}
