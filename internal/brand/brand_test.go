// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package brand

import (
	"testing"
)

func TestGet(t *testing.T) {
	b := Get()
	if b.Name == "" {
		t.Error("Brand name should not be empty")
	}
	if b.RootNamespace == "" {
		t.Error("Root namespace should not be empty")
	}
	if b.ModifierOption == "" || b.ModifierPlaceholder == "" {
		t.Error("Modifier defaults should be set")
	}
	if Version == "" {
		t.Error("Global Version should be initialized (to dev default)")
	}
	if Name != b.Name {
		t.Errorf("Global Name %q does not match brand %q", Name, b.Name)
	}
}

func TestRepositoryURL(t *testing.T) {
	if got := RepositoryURL(); got != "https://github.com/kovidgoyal/kitty" {
		t.Errorf("unexpected repository url %q", got)
	}
}

func TestVersionString(t *testing.T) {
	oldV, oldC := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldV, oldC })

	Version, GitCommit = "1.2.0", "unknown"
	if got := VersionString(); got != "docgen 1.2.0" {
		t.Errorf("got %q", got)
	}
	GitCommit = "abc123"
	if got := VersionString(); got != "docgen 1.2.0 (abc123)" {
		t.Errorf("got %q", got)
	}
}
