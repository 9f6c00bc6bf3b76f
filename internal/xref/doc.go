// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package xref holds the cross-reference tables of one documentation build.
//
// Generation writes two tables while rendering configuration references:
//   - option aliases: fully qualified alias name -> canonical option name
//   - shortcut slugs: fully qualified shortcut name -> (anchor, resolved key)
//
// The reference pass later resolves :opt: and :sc: roles against them. A
// Context is scoped to one build; call Reset or make a new one between
// independent builds. The tables can be saved to YAML so the two passes
// may run as separate processes.
package xref
