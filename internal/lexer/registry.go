// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package lexer

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Registry looks lexers up by alias or filename.
type Registry struct {
	mu      sync.RWMutex
	lexers  []*Lexer
	byAlias map[string]*Lexer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]*Lexer)}
}

// Register adds l under each of its aliases. Later registrations replace
// earlier ones for the same alias.
func (r *Registry) Register(l *Lexer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lexers = append(r.lexers, l)
	for _, a := range l.Aliases() {
		r.byAlias[a] = l
	}
}

// Get returns the lexer registered under alias.
func (r *Registry) Get(alias string) (*Lexer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byAlias[alias]
	return l, ok
}

// ForFilename returns the most recently registered lexer whose filename
// globs match the base name of path.
func (r *Registry) ForFilename(path string) (*Lexer, bool) {
	base := filepath.Base(path)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.lexers) - 1; i >= 0; i-- {
		for _, pattern := range r.lexers[i].Filenames() {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return r.lexers[i], true
			}
		}
	}
	return nil, false
}

// Aliases returns every registered alias, sorted.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byAlias))
	for a := range r.byAlias {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry holding the conf and session lexers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Conf)
	r.Register(Session)
	return r
}
