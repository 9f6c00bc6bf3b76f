// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"grimm.is/docgen/internal/brand"
	"grimm.is/docgen/internal/config"
	"grimm.is/docgen/internal/errors"
)

// RunInit writes a project file with the default settings into dir.
func RunInit(dir string, force bool) error {
	path := filepath.Join(dir, brand.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.At(errors.New(errors.KindConflict, "project file already exists (use --force)"), path, 0)
	}

	cfg := config.Default()
	ns := cfg.RootNamespace
	cfg.Namespaces = []config.NamespaceConfig{{
		Name:        ns,
		Definitions: "defs/" + ns + ".hcl",
		Page:        "conf.html",
	}}
	cfg.Sources = &config.SourcesConfig{Root: "docs", Pattern: config.DefaultSourcePattern}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create project directory")
	}
	if err := atomic.WriteFile(path, bytes.NewReader(config.Marshal(cfg))); err != nil {
		return errors.At(errors.Wrap(err, errors.KindInternal, "failed to write project file"), path, 0)
	}
	Printer.Printf("Created %s\n", path)
	return nil
}
