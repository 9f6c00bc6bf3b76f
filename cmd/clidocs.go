// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"grimm.is/docgen/internal/clidoc"
	"grimm.is/docgen/internal/errors"
)

// RunCLIDocs renders a CLI spec export into outDir, or prints it when
// outDir is empty.
func RunCLIDocs(specPath, outDir string) error {
	spec, err := clidoc.Load(specPath)
	if err != nil {
		return err
	}
	if outDir == "" {
		for _, p := range spec.Programs {
			Printer.Printf("%s", p.RST())
		}
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create output directory")
	}
	for _, p := range spec.Programs {
		path := filepath.Join(outDir, p.Filename())
		if err := atomic.WriteFile(path, bytes.NewReader([]byte(p.RST()))); err != nil {
			return errors.At(errors.Wrap(err, errors.KindInternal, "failed to write CLI docs"), path, 0)
		}
		Printer.Printf("Generated %s\n", path)
	}
	return nil
}
