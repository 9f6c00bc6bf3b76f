// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/docgen/internal/errors"
)

// MarshalHCL writes ns as an HCL definitions export. Defaults are written
// as strings, so the result decodes back to the same text. A group that is
// entered again after other groups gets an empty group block.
func MarshalHCL(ns *Namespace) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.NumberIntVal(ExportVersion))
	body.SetAttributeValue("namespace", cty.StringVal(ns.Name))

	declared := make(map[*Group]bool)
	var current *Group
	enter := func(g *Group) {
		if g == current {
			return
		}
		current = g
		body.AppendNewline()
		block := body.AppendNewBlock("group", []string{g.Name})
		if declared[g] {
			return
		}
		declared[g] = true
		gb := block.Body()
		setString(gb, "short_text", g.ShortText)
		setString(gb, "start_text", g.StartText)
		setString(gb, "end_text", g.EndText)
	}

	for _, d := range ns.Definitions {
		switch def := d.(type) {
		case *Option:
			enter(def.Group)
			body.AppendNewline()
			ob := body.AppendNewBlock("option", []string{def.Name}).Body()
			ob.SetAttributeValue("default", cty.StringVal(def.Default))
			setString(ob, "long_text", def.LongText)
			if !def.AddToDocs {
				ob.SetAttributeValue("add_to_docs", cty.False)
			}
		case ShortcutGroup:
			for _, sc := range def {
				enter(sc.Group)
				body.AppendNewline()
				sb := body.AppendNewBlock("shortcut", []string{sc.Name}).Body()
				setString(sb, "short_text", sc.ShortText)
				sb.SetAttributeValue("key", cty.StringVal(sc.Key))
				sb.SetAttributeValue("action", cty.StringVal(sc.Action))
				if !sc.AddToDefault {
					sb.SetAttributeValue("add_to_default", cty.False)
				}
				setString(sb, "long_text", sc.LongText)
			}
		}
	}

	return f.Bytes()
}

func setString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// FormatHCL canonicalizes the layout of an HCL definitions export.
func FormatHCL(filename string, src []byte) ([]byte, error) {
	file, diags := hclwrite.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, errors.Errorf(errors.KindValidation, "invalid HCL: %s", diags.Error())
	}
	return hclwrite.Format(file.Bytes()), nil
}
