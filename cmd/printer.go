// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"fmt"
	"io"
	"os"
)

// CLIPrinter writes user-facing command output.
type CLIPrinter struct {
	Out io.Writer
}

// Printer is where every Run* function reports to.
var Printer = &CLIPrinter{Out: os.Stdout}

func (p *CLIPrinter) Printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

func (p *CLIPrinter) Println(args ...any) {
	fmt.Fprintln(p.Out, args...)
}

func (p *CLIPrinter) Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
