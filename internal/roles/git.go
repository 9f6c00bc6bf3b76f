// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package roles

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/validation"
)

// GitResolver resolves commits with git rev-list in a checkout.
type GitResolver struct {
	// Dir is the repository directory; empty uses the working directory.
	Dir string

	// Git is the git binary; empty means "git" from PATH.
	Git string
}

// Resolve implements CommitResolver.
func (g GitResolver) Resolve(ctx context.Context, id string) (string, string, error) {
	if err := validation.ValidateCommitish(id); err != nil {
		return "", "", err
	}
	full, err := g.revList(ctx, id)
	if err != nil {
		return "", "", err
	}
	short, err := g.revList(ctx, "--abbrev-commit", full)
	if err != nil {
		return "", "", err
	}
	return full, short, nil
}

func (g GitResolver) revList(ctx context.Context, args ...string) (string, error) {
	bin := g.Git
	if bin == "" {
		bin = "git"
	}
	argv := append([]string{"rev-list", "--max-count=1"}, args...)
	argv = append(argv, "--")

	cmd := exec.CommandContext(ctx, bin, argv...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Errorf(errors.KindNotFound, "git rev-list failed: %s", msg)
	}
	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", errors.New(errors.KindNotFound, "git rev-list returned nothing")
	}
	return out, nil
}
