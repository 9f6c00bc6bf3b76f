// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package xref

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"grimm.is/docgen/internal/errors"
)

// IndexVersion is the on-disk format version of a saved index.
const IndexVersion = 1

// index is the YAML shape of a saved Context.
type index struct {
	Version   int                       `yaml:"version"`
	Root      string                    `yaml:"root"`
	Options   []string                  `yaml:"options,omitempty"`
	Aliases   map[string]string         `yaml:"aliases,omitempty"`
	Shortcuts map[string]ShortcutTarget `yaml:"shortcuts,omitempty"`
}

// Save writes the tables as YAML. Map keys are emitted sorted so the file
// is stable across builds.
func (c *Context) Save(w io.Writer) error {
	idx := index{
		Version:   IndexVersion,
		Root:      c.root,
		Options:   c.Options(),
		Aliases:   c.Aliases(),
		Shortcuts: c.Shortcuts(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&idx); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode xref index")
	}
	return enc.Close()
}

// Load merges a saved index into c. Existing entries are kept.
func (c *Context) Load(r io.Reader) error {
	var idx index
	if err := yaml.NewDecoder(r).Decode(&idx); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, errors.KindValidation, "failed to decode xref index")
	}
	if idx.Version != IndexVersion {
		return errors.Errorf(errors.KindValidation, "unsupported xref index version %d", idx.Version)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.root == "" {
		c.root = idx.Root
	}
	for _, name := range idx.Options {
		c.options[name] = struct{}{}
	}
	for alias, canonical := range idx.Aliases {
		c.registerAlias(alias, canonical)
	}
	for name, st := range idx.Shortcuts {
		if _, exists := c.shortcuts[name]; !exists {
			c.shortcuts[name] = st
		}
	}
	return nil
}

// LoadFile reads an index written by Save into a new Context.
func LoadFile(path string) (*Context, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.At(errors.Wrap(err, errors.KindNotFound, "xref index not found"), path, 0)
		}
		return nil, errors.Wrap(err, errors.KindInternal, "failed to open xref index")
	}
	defer f.Close()

	c := NewContext("")
	if err := c.Load(f); err != nil {
		return nil, errors.At(err, path, 0)
	}
	return c, nil
}
