// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/tidwall/jsonc"

	"grimm.is/docgen/internal/brand"
	"grimm.is/docgen/internal/errors"
)

// LoadFile loads, defaults and validates a project file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.At(errors.Wrap(err, errors.KindNotFound, "project file not found"), path, 0)
		}
		return nil, errors.Wrap(err, errors.KindInternal, "failed to read project file")
	}
	cfg, err := Load(path, data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to resolve project directory")
	}
	cfg.Dir = abs
	return cfg, nil
}

// Load decodes a project file from memory. Files ending in .json are read
// as HCL's JSON syntax after stripping comments and trailing commas.
func Load(filename string, data []byte) (*Config, error) {
	var cfg Config
	src := filename
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
	default:
		if filepath.Ext(filename) != ".hcl" {
			filename += ".hcl"
		}
	}
	if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
		return nil, errors.At(errors.Wrap(err, errors.KindValidation, "failed to decode project file"), src, diagLine(err))
	}

	cfg.ApplyDefaults()
	ApplyEnv(&cfg)
	if errs := cfg.Validate(); errs.HasErrors() {
		return nil, errors.At(errors.Wrap(errs, errors.KindValidation, "invalid project file"), src, 0)
	}
	return &cfg, nil
}

func diagLine(err error) int {
	diags, ok := err.(hcl.Diagnostics)
	if !ok {
		return 0
	}
	for _, d := range diags {
		if d.Subject != nil {
			return d.Subject.Start.Line
		}
	}
	return 0
}

// ApplyEnv overrides settings from DOCGEN_* environment variables.
func ApplyEnv(cfg *Config) {
	prefix := brand.ConfigEnvPrefix + "_"
	if v := os.Getenv(prefix + "OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(prefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(prefix + "ROOT_NAMESPACE"); v != "" {
		cfg.RootNamespace = v
	}
}

// Find returns the project file in dir, preferring HCL over JSON.
func Find(dir string) (string, error) {
	base := strings.TrimSuffix(brand.ConfigFileName, filepath.Ext(brand.ConfigFileName))
	for _, name := range []string{brand.ConfigFileName, base + ".json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf(errors.KindNotFound, "no %s found in %s", brand.ConfigFileName, dir)
}
