// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"grimm.is/docgen/internal/configdoc"
	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/xref"
)

// RunDefsFmt rewrites HCL definitions exports in canonical format. Without
// write the formatted text is printed instead.
func RunDefsFmt(paths []string, write bool) error {
	for _, path := range paths {
		if strings.ToLower(filepath.Ext(path)) != ".hcl" {
			return errors.At(errors.New(errors.KindValidation, "only .hcl exports can be formatted"), path, 0)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.At(errors.Wrap(err, errors.KindNotFound, "failed to read definitions"), path, 0)
		}
		out, err := configdoc.FormatHCL(path, src)
		if err != nil {
			return err
		}
		if !write {
			Printer.Printf("%s", out)
			continue
		}
		if bytes.Equal(src, out) {
			continue
		}
		if err := atomic.WriteFile(path, bytes.NewReader(out)); err != nil {
			return errors.At(errors.Wrap(err, errors.KindInternal, "failed to write definitions"), path, 0)
		}
		Printer.Println(path)
	}
	return nil
}

// RunDefsConvert prints any definitions export as HCL.
func RunDefsConvert(path string) error {
	ns, err := configdoc.LoadNamespace(path)
	if err != nil {
		return err
	}
	Printer.Printf("%s", configdoc.MarshalHCL(ns))
	return nil
}

// RunDefsCheck loads and renders an export without writing anything.
func RunDefsCheck(paths []string) error {
	for _, path := range paths {
		ns, err := configdoc.LoadNamespace(path)
		if err != nil {
			return err
		}
		if _, err := configdoc.NewRenderer(xref.NewContext(ns.Name)).RenderNamespace(ns); err != nil {
			return errors.At(err, path, 0)
		}

		var options, shortcuts int
		for _, def := range ns.Definitions {
			switch d := def.(type) {
			case *configdoc.Option:
				options++
			case configdoc.ShortcutGroup:
				shortcuts += len(d)
			}
		}
		Printer.Printf("%s: namespace %s, %d groups, %d options, %d shortcuts\n",
			path, ns.Name, len(ns.Groups()), options, shortcuts)
	}
	return nil
}

// RunDefsLiteral prints the commented sample configuration file of an export.
func RunDefsLiteral(path string) error {
	ns, err := configdoc.LoadNamespace(path)
	if err != nil {
		return err
	}
	Printer.Printf("%s", configdoc.NewRenderer(xref.NewContext(ns.Name)).LiteralConf(ns))
	return nil
}
