// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import "strings"

// ExportVersion is the definitions export format understood by this package.
const ExportVersion = 1

// Group frames a run of definitions with a heading and optional prose.
// Dots in Name express nesting (colors.table is a sub-section of colors).
type Group struct {
	Name      string
	ShortText string
	StartText string
	EndText   string
}

// Nested reports whether the group is a sub-section.
func (g *Group) Nested() bool {
	return strings.Contains(g.Name, ".")
}

// Title is the heading text, falling back to the name when no short text is set.
func (g *Group) Title() string {
	if g.ShortText != "" {
		return g.ShortText
	}
	return g.Name
}

// Definition is one element of a namespace's ordered definition list:
// either an *Option or a ShortcutGroup.
type Definition interface {
	DefinitionGroup() *Group
}

// Option is a configuration setting.
type Option struct {
	Name      string
	Group     *Group
	Default   string // textual rendering of the default value
	LongText  string
	AddToDocs bool
}

// DefinitionGroup implements Definition.
func (o *Option) DefinitionGroup() *Group { return o.Group }

// Shortcut is a single default key binding.
type Shortcut struct {
	Name         string // slug shared by every binding of the same action
	ShortText    string
	Group        *Group
	Key          string // may contain the modifier placeholder
	Action       string
	AddToDefault bool
	LongText     string
}

// Title is the anchor text of the shortcut, falling back to its name.
func (s *Shortcut) Title() string {
	if s.ShortText != "" {
		return s.ShortText
	}
	return s.Name
}

// ShortcutGroup is every binding that shares one slug. The first element
// is the representative used for the heading and description.
type ShortcutGroup []*Shortcut

// DefinitionGroup implements Definition.
func (sg ShortcutGroup) DefinitionGroup() *Group {
	if len(sg) == 0 {
		return nil
	}
	return sg[0].Group
}

// Namespace is the ordered definition list of one configuration file
// (kitty.conf, diff.conf, ...).
type Namespace struct {
	Name        string
	Source      string
	Definitions []Definition
}

// Groups returns the groups in first-seen order.
func (ns *Namespace) Groups() []*Group {
	seen := make(map[*Group]bool)
	var out []*Group
	for _, d := range ns.Definitions {
		g := d.DefinitionGroup()
		if g != nil && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
