// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Marshal renders cfg as a docgen.hcl file. Empty settings are omitted.
func Marshal(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	setString(body, "schema_version", cfg.SchemaVersion)
	setString(body, "project", cfg.Project)
	setString(body, "root_namespace", cfg.RootNamespace)
	setString(body, "output_dir", cfg.OutputDir)
	setString(body, "log_level", cfg.LogLevel)

	if g := cfg.GitHub; g != nil {
		body.AppendNewline()
		b := body.AppendNewBlock("github", nil).Body()
		setString(b, "user", g.User)
		setString(b, "repo", g.Repo)
		setString(b, "checkout", g.Checkout)
	}
	if m := cfg.Modifier; m != nil {
		body.AppendNewline()
		b := body.AppendNewBlock("modifier", nil).Body()
		setString(b, "option", m.Option)
		setString(b, "placeholder", m.Placeholder)
		setString(b, "value", m.Value)
	}
	for _, ns := range cfg.Namespaces {
		body.AppendNewline()
		b := body.AppendNewBlock("namespace", []string{ns.Name}).Body()
		b.SetAttributeValue("definitions", cty.StringVal(ns.Definitions))
		setString(b, "page", ns.Page)
		if ns.Literal != nil {
			b.SetAttributeValue("literal", cty.BoolVal(*ns.Literal))
		}
	}
	if c := cfg.CLI; c != nil {
		body.AppendNewline()
		body.AppendNewBlock("cli", nil).Body().SetAttributeValue("spec", cty.StringVal(c.Spec))
	}
	if s := cfg.Sources; s != nil {
		body.AppendNewline()
		b := body.AppendNewBlock("sources", nil).Body()
		b.SetAttributeValue("root", cty.StringVal(s.Root))
		setString(b, "pattern", s.Pattern)
		setString(b, "output_dir", s.OutputDir)
	}
	return hclwrite.Format(f.Bytes())
}

func setString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}
