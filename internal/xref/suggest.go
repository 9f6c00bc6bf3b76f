// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package xref

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// Suggest returns up to three registered names of the given kind that are
// close to target, nearest first. Used to enrich dangling-reference warnings.
func (c *Context) Suggest(kind Kind, target string) []string {
	full := c.Qualify(target)

	c.mu.RLock()
	var candidates []string
	switch kind {
	case KindShortcut:
		for name := range c.shortcuts {
			candidates = append(candidates, name)
		}
	default:
		for name := range c.options {
			candidates = append(candidates, name)
		}
	}
	c.mu.RUnlock()

	_, name, _ := strings.Cut(full, ".")
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, cand := range candidates {
		if cand == full {
			continue
		}
		if d := levenshtein.ComputeDistance(full, cand); d <= limit {
			hits = append(hits, scored{cand, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})

	var out []string
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].name)
	}
	return out
}
