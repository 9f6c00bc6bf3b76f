// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"grimm.is/docgen/internal/config"
	"grimm.is/docgen/internal/logging"
)

// LogOptions are the logging flags shared by every command.
type LogOptions struct {
	// Level overrides the project file's log_level when set.
	Level string
	JSON  bool
}

// LoadProject loads configPath, or the project file in the working
// directory when configPath is empty, and installs the default logger.
func LoadProject(configPath string, logOpts LogOptions) (*config.Config, error) {
	if configPath == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if logOpts.Level != "" {
		level = logOpts.Level
	}
	SetupLogging(level, logOpts.JSON)
	logging.Debug("loaded project", "path", configPath, "namespaces", len(cfg.Namespaces))
	return cfg, nil
}

// SetupLogging installs the default logger. DOCGEN_LOG_LEVEL wins over level.
func SetupLogging(level string, json bool) *logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LevelFromEnv(logging.ParseLevel(level))
	cfg.JSON = json
	l := logging.New(cfg)
	logging.SetDefault(l)
	return l
}
