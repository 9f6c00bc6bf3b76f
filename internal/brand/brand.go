// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package brand provides the tool identity and the defaults for the documented project.
//
// The identity is loaded from brand.json at compile time via go:embed so that
// a fork documenting a different program only has to edit that file.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information.
type Brand struct {
	Name            string `json:"name"`
	BinaryName      string `json:"binaryName"`
	ConfigFileName  string `json:"configFileName"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	Description     string `json:"description"`

	// Documented project defaults, overridable from docgen.hcl.
	Project             string `json:"project"`
	GitHubUser          string `json:"githubUser"`
	GitHubRepo          string `json:"githubRepo"`
	RootNamespace       string `json:"rootNamespace"`
	ModifierOption      string `json:"modifierOption"`
	ModifierPlaceholder string `json:"modifierPlaceholder"`

	Copyright string `json:"copyright"`
	License   string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	BinaryName = b.BinaryName
	ConfigFileName = b.ConfigFileName
	ConfigEnvPrefix = b.ConfigEnvPrefix
	Description = b.Description
	Project = b.Project
	RootNamespace = b.RootNamespace
}

var (
	Name            string
	BinaryName      string
	ConfigFileName  string
	ConfigEnvPrefix string
	Description     string
	Project         string
	RootNamespace   string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// RepositoryURL returns the GitHub URL of the documented project.
func RepositoryURL() string {
	return "https://github.com/" + b.GitHubUser + "/" + b.GitHubRepo
}

// VersionString renders "docgen <version> (<commit>)".
func VersionString() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return BinaryName + " " + Version
	}
	return BinaryName + " " + Version + " (" + GitCommit + ")"
}
