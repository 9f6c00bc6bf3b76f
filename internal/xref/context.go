// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package xref

import (
	"sort"
	"strings"
	"sync"

	"grimm.is/docgen/internal/errors"
)

// Kind selects one of the two cross-reference tables.
type Kind string

const (
	KindOption   Kind = "opt"
	KindShortcut Kind = "shortcut"
)

// ShortcutTarget is where a shortcut reference points and what it displays.
type ShortcutTarget struct {
	Anchor string `yaml:"anchor"`
	Key    string `yaml:"key"`
}

// Context is the cross-reference state of a single build. It is safe for
// concurrent use; entries are write-once, the first registration wins.
type Context struct {
	mu        sync.RWMutex
	root      string
	aliases   map[string]string
	options   map[string]struct{}
	shortcuts map[string]ShortcutTarget
}

// NewContext creates an empty context. Unqualified references resolve into root.
func NewContext(root string) *Context {
	c := &Context{root: root}
	c.reset()
	return c
}

func (c *Context) reset() {
	c.aliases = make(map[string]string)
	c.options = make(map[string]struct{})
	c.shortcuts = make(map[string]ShortcutTarget)
}

// Reset drops every registered entry.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Root returns the namespace used for unqualified references.
func (c *Context) Root() string {
	return c.root
}

// ParseOption parses an option heading signature such as
// "kitty.color0, kitty.color1" and returns the canonical (first) name.
// Every later name is registered as an alias of the first.
func (c *Context) ParseOption(sig string) (string, error) {
	var names []string
	for _, part := range strings.Split(sig, ", ") {
		names = append(names, strings.TrimSpace(part))
	}
	first := names[0]
	if first == "" {
		return "", errors.Errorf(errors.KindValidation, "%q is not a valid opt", sig)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.options[first] = struct{}{}
	for _, name := range names[1:] {
		if name != "" {
			c.registerAlias(name, first)
		}
	}
	return first, nil
}

// ParseShortcut validates a shortcut heading signature "<namespace>.<text>"
// and returns it unchanged.
func (c *Context) ParseShortcut(sig string) (string, error) {
	ns, text, ok := strings.Cut(sig, ".")
	if !ok || ns == "" || strings.TrimSpace(text) == "" {
		return "", errors.Errorf(errors.KindValidation, "%q is not a valid shortcut", sig)
	}
	return sig, nil
}

// registerAlias maps alias to canonical unless alias is already known and
// reports whether the entry was added. c.mu must be held.
func (c *Context) registerAlias(alias, canonical string) bool {
	if _, exists := c.aliases[alias]; exists {
		return false
	}
	c.aliases[alias] = canonical
	c.options[alias] = struct{}{}
	c.options[canonical] = struct{}{}
	return true
}

// RegisterShortcut records the anchor and display key for a fully qualified
// shortcut name unless it is already known.
func (c *Context) RegisterShortcut(fullName, anchor, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.shortcuts[fullName]; exists {
		return false
	}
	c.shortcuts[fullName] = ShortcutTarget{Anchor: anchor, Key: key}
	return true
}

// Qualify prefixes the root namespace when target has none.
func (c *Context) Qualify(target string) string {
	ns, name, _ := strings.Cut(target, ".")
	if name == "" {
		ns, name = c.root, ns
	}
	return ns + "." + name
}

// ResolveOption returns the title unchanged and the canonical option name
// for target. Unknown names resolve to themselves; this never fails.
func (c *Context) ResolveOption(title, target string) (string, string) {
	full := c.Qualify(target)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if canonical, ok := c.aliases[full]; ok {
		return title, canonical
	}
	return title, full
}

// ResolveShortcut returns the resolved key as title and the shortcut anchor.
// When the shortcut is unknown it returns title and target unchanged and
// ok is false; the caller is expected to warn.
func (c *Context) ResolveShortcut(title, target string) (string, string, bool) {
	full := c.Qualify(target)
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.shortcuts[full]
	if !ok {
		return title, target, false
	}
	return st.Key, st.Anchor, true
}

// Aliases returns a copy of the alias table.
func (c *Context) Aliases() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}

// Shortcuts returns a copy of the shortcut-slug table.
func (c *Context) Shortcuts() map[string]ShortcutTarget {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]ShortcutTarget, len(c.shortcuts))
	for k, v := range c.shortcuts {
		out[k] = v
	}
	return out
}

// Options returns every option name seen in a heading, sorted.
func (c *Context) Options() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.options))
	for name := range c.options {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasOption reports whether target names an option seen during generation.
func (c *Context) HasOption(target string) bool {
	full := c.Qualify(target)
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.options[full]
	return ok
}

// AnchorID turns a reference name into an HTML id the way docutils does:
// lowercase, runs of other characters collapse to a single dash.
func AnchorID(kind Kind, name string) string {
	var sb strings.Builder
	sb.WriteString(string(kind))
	dash := true
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash {
				sb.WriteByte('-')
				dash = false
			}
			sb.WriteRune(r)
			continue
		}
		dash = true
	}
	return sb.String()
}
