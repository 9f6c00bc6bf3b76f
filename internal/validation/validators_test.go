// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grimm.is/docgen/internal/errors"
)

func TestValidateNamespace(t *testing.T) {
	for _, ok := range []string{"kitty", "kitten-diff", "kitten_hints2"} {
		assert.NoError(t, ValidateNamespace(ok), ok)
	}
	for _, bad := range []string{"", "Kitty", "1kitty", "kitty.diff", "../x"} {
		err := ValidateNamespace(bad)
		assert.Error(t, err, bad)
		assert.Equal(t, errors.KindValidation, errors.GetKind(err))
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("font_size"))
	assert.NoError(t, ValidateName("color0"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("font size"))
	assert.Error(t, ValidateName("0color"))
}

func TestValidateGroupName(t *testing.T) {
	assert.NoError(t, ValidateGroupName("fonts"))
	assert.NoError(t, ValidateGroupName("colors.table"))
	assert.Error(t, ValidateGroupName("colors..table"))
	assert.Error(t, ValidateGroupName(".colors"))
	assert.Error(t, ValidateGroupName(""))
}

func TestValidateCommitish(t *testing.T) {
	tests := []struct {
		rev     string
		wantErr bool
	}{
		{"a1b2c3d", false},
		{"v0.13.0", false},
		{"HEAD~2", false},
		{"master^", false},
		{"", true},
		{"--all", true},
		{"abc;rm", true},
		{"abc def", true},
		{"$(id)", true},
	}
	for _, tt := range tests {
		t.Run(tt.rev, func(t *testing.T) {
			err := ValidateCommitish(tt.rev)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	assert.NoError(t, ValidateOutputName("conf-kitty.rst"))
	assert.NoError(t, ValidateOutputName("sub/cli-kitty.rst"))
	assert.Error(t, ValidateOutputName(""))
	assert.Error(t, ValidateOutputName("../escape.rst"))
	assert.Error(t, ValidateOutputName("/etc/passwd"))
	assert.Error(t, ValidateOutputName("a\x00b"))
}

func TestValidateAllowlist(t *testing.T) {
	assert.NoError(t, ValidateAllowlist("hcl", []string{"hcl", "yaml"}))
	assert.Error(t, ValidateAllowlist("toml", []string{"hcl", "yaml"}))
}
