// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"io"
	"os"
	"strings"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/lexer"
)

// HighlightOptions select the lexer and the output form.
type HighlightOptions struct {
	// Lexer is an alias; empty picks one by the input file name.
	Lexer string
	// Tokens prints one "Type<TAB>text" line per token instead of HTML.
	Tokens bool
}

// RunHighlight highlights path ("-" for stdin) and prints the result.
func RunHighlight(path string, opts HighlightOptions) error {
	reg := lexer.DefaultRegistry()

	var (
		l  *lexer.Lexer
		ok bool
	)
	if opts.Lexer != "" {
		l, ok = reg.Get(opts.Lexer)
		if !ok {
			return errors.Errorf(errors.KindNotFound, "unknown lexer %q (available: %s)",
				opts.Lexer, strings.Join(reg.Aliases(), ", "))
		}
	} else {
		l, ok = reg.ForFilename(path)
		if !ok {
			return errors.Errorf(errors.KindNotFound, "no lexer for %s; pass --lexer", path)
		}
	}

	text, err := readInput(path)
	if err != nil {
		return err
	}
	if !opts.Tokens {
		Printer.Printf("%s", lexer.Highlight(l, text))
		return nil
	}
	for _, tok := range l.Tokenize(text) {
		Printer.Printf("%s\t%q\n", tok.Type, tok.Text)
	}
	return nil
}

// RunLexers lists the available lexers.
func RunLexers() {
	reg := lexer.DefaultRegistry()
	for _, alias := range reg.Aliases() {
		l, _ := reg.Get(alias)
		Printer.Printf("%-10s %s (%s)\n", alias, l.Name(), strings.Join(l.Filenames(), ", "))
	}
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.At(errors.Wrap(err, errors.KindNotFound, "input not found"), path, 0)
		}
		return "", errors.Wrap(err, errors.KindInternal, "failed to read input")
	}
	return string(data), nil
}
