// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc generates reStructuredText reference documentation from
// configuration-option and keyboard-shortcut definitions.
//
// Definitions come from a versioned export file (HCL, YAML or JSON) rather
// than from the documented program's runtime. The package renders:
//   - the reference page for a namespace (Renderer.Render), registering
//     option aliases and shortcut slugs in an xref.Context
//   - the same namespace as a commented sample config file (LiteralConf)
//   - a canonical HCL export (MarshalHCL) and a JSON Schema of the YAML/JSON
//     export format (ExportSchema)
package configdoc
