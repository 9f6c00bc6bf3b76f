// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"strings"

	"grimm.is/docgen/internal/configdoc"
	"grimm.is/docgen/internal/errors"
)

// RunSchema prints the JSON Schema of the definitions export format.
func RunSchema(format string) error {
	js := configdoc.ExportSchema()
	var (
		out string
		err error
	)
	switch format {
	case "", "json":
		out, err = configdoc.ConfigSchemaToJSON(js)
	case "yaml":
		out, err = configdoc.ConfigSchemaToYAML(js)
	default:
		return errors.Errorf(errors.KindValidation, "unknown schema format %q (use: json, yaml)", format)
	}
	if err != nil {
		return err
	}
	Printer.Printf("%s\n", strings.TrimRight(out, "\n"))
	return nil
}
