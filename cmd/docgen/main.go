// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// docgen turns configuration definitions exports into reStructuredText
// reference pages and resolves the cross-references in hand-written docs.
//
// Usage:
//
//	docgen init
//	docgen build [--check] [--keep-going]
//	docgen watch
//	docgen highlight --lexer conf kitty.conf
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
