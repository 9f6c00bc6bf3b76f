// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tidwall/jsonc"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/validation"
)

// A definitions export lists groups, options and shortcuts in document order.
// Options and shortcuts belong to the most recently declared group unless
// they name one with in_group. Declaring an existing group again (without
// texts) switches back to it, but only while no other group has received
// definitions in between: each group's definitions must be contiguous.
//
// HCL:
//
//	version   = 1
//	namespace = "kitty"
//
//	group "fonts" {
//	  short_text = "Fonts"
//	}
//
//	option "font_size" {
//	  default   = 11.0
//	  long_text = "Font size (in pts)"
//	}
//
//	shortcut "copy_to_clipboard" {
//	  short_text = "Copy to clipboard"
//	  key        = "kitty_mod+c"
//	  action     = "copy_to_clipboard"
//	}
//
// YAML and JSON use the same fields under a "definitions" list, each entry
// carrying exactly one of group, option or shortcut.

type entryKind int

const (
	entryGroup entryKind = iota
	entryOption
	entryShortcut
)

func (k entryKind) String() string {
	switch k {
	case entryGroup:
		return "group"
	case entryOption:
		return "option"
	default:
		return "shortcut"
	}
}

// entry is the format-independent form of one export element.
type entry struct {
	kind         entryKind
	name         string
	line         int
	inGroup      string
	shortText    string
	startText    string
	endText      string
	defaultText  string
	longText     string
	addToDocs    *bool
	key          string
	action       string
	addToDefault *bool
}

// LoadNamespace reads a definitions export from disk.
func LoadNamespace(path string) (*Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.At(errors.Wrap(err, errors.KindNotFound, "definitions export not found"), path, 0)
		}
		return nil, errors.Wrap(err, errors.KindInternal, "failed to read definitions export")
	}
	return ParseNamespace(path, data)
}

// ParseNamespace decodes a definitions export. The format is chosen by the
// file extension; unknown extensions try HCL first, then YAML.
func ParseNamespace(filename string, data []byte) (*Namespace, error) {
	var (
		version int
		nsName  string
		entries []entry
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		version, nsName, entries, err = decodeHCL(filename, data)
	case ".yaml", ".yml":
		version, nsName, entries, err = decodeYAML(data)
	case ".json", ".jsonc":
		version, nsName, entries, err = decodeJSON(data)
	default:
		version, nsName, entries, err = decodeHCL(filename, data)
		if err != nil {
			var yamlErr error
			version, nsName, entries, yamlErr = decodeYAML(data)
			if yamlErr == nil {
				err = nil
			}
		}
	}
	if err != nil {
		return nil, errors.At(err, filename, 0)
	}

	ns, err := build(filename, version, nsName, entries)
	if err != nil {
		return nil, err
	}
	return ns, nil
}

// build links entries into a Namespace, enforcing the export invariants.
func build(source string, version int, nsName string, entries []entry) (*Namespace, error) {
	if version != ExportVersion {
		return nil, errors.At(errors.Errorf(errors.KindValidation, "unsupported export version %d (want %d)", version, ExportVersion), source, 0)
	}
	if err := validation.ValidateNamespace(nsName); err != nil {
		return nil, errors.At(err, source, 0)
	}

	ns := &Namespace{Name: nsName, Source: source}
	groups := make(map[string]*Group)
	options := make(map[string]bool)
	shortcutIdx := make(map[string]int)
	var current *Group

	// last is the group of the latest definition; left holds groups whose
	// run of definitions has ended.
	var last *Group
	left := make(map[*Group]bool)
	place := func(e entry, g *Group) error {
		if g == last {
			return nil
		}
		if left[g] {
			return errors.Errorf(errors.KindConflict, "%s %q returns to group %q after group %q", e.kind, e.name, g.Name, last.Name)
		}
		if last != nil {
			left[last] = true
		}
		last = g
		return nil
	}

	fail := func(e entry, err error) error {
		err = errors.Attr(err, errors.AttrNamespace, nsName)
		return errors.At(err, source, e.line)
	}

	groupFor := func(e entry) (*Group, error) {
		if e.inGroup != "" {
			g, ok := groups[e.inGroup]
			if !ok {
				return nil, errors.Errorf(errors.KindNotFound, "%s %q references unknown group %q", e.kind, e.name, e.inGroup)
			}
			return g, nil
		}
		if current == nil {
			return nil, errors.Errorf(errors.KindValidation, "%s %q is declared before any group", e.kind, e.name)
		}
		return current, nil
	}

	for _, e := range entries {
		switch e.kind {
		case entryGroup:
			if err := validation.ValidateGroupName(e.name); err != nil {
				return nil, fail(e, err)
			}
			if g, ok := groups[e.name]; ok {
				if e.shortText != "" || e.startText != "" || e.endText != "" {
					return nil, fail(e, errors.Errorf(errors.KindConflict, "group %q redefined", e.name))
				}
				current = g
				continue
			}
			current = &Group{Name: e.name, ShortText: e.shortText, StartText: e.startText, EndText: e.endText}
			groups[e.name] = current

		case entryOption:
			if err := validation.ValidateName(e.name); err != nil {
				return nil, fail(e, err)
			}
			if options[e.name] {
				return nil, fail(e, errors.Errorf(errors.KindConflict, "option %q defined twice", e.name))
			}
			g, err := groupFor(e)
			if err != nil {
				return nil, fail(e, err)
			}
			if err := place(e, g); err != nil {
				return nil, fail(e, err)
			}
			options[e.name] = true
			ns.Definitions = append(ns.Definitions, &Option{
				Name:      e.name,
				Group:     g,
				Default:   e.defaultText,
				LongText:  e.longText,
				AddToDocs: boolOr(e.addToDocs, true),
			})

		case entryShortcut:
			if err := validation.ValidateName(e.name); err != nil {
				return nil, fail(e, err)
			}
			if e.key == "" || e.action == "" {
				return nil, fail(e, errors.Errorf(errors.KindValidation, "shortcut %q needs both key and action", e.name))
			}
			g, err := groupFor(e)
			if err != nil {
				return nil, fail(e, err)
			}
			sc := &Shortcut{
				Name:         e.name,
				ShortText:    e.shortText,
				Group:        g,
				Key:          e.key,
				Action:       e.action,
				AddToDefault: boolOr(e.addToDefault, true),
				LongText:     e.longText,
			}
			// later bindings of a slug render with the first one
			if idx, ok := shortcutIdx[e.name]; ok {
				ns.Definitions[idx] = append(ns.Definitions[idx].(ShortcutGroup), sc)
				continue
			}
			if err := place(e, g); err != nil {
				return nil, fail(e, err)
			}
			shortcutIdx[e.name] = len(ns.Definitions)
			ns.Definitions = append(ns.Definitions, ShortcutGroup{sc})
		}
	}

	return ns, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// HCL

type hclGroup struct {
	ShortText string `hcl:"short_text,optional"`
	StartText string `hcl:"start_text,optional"`
	EndText   string `hcl:"end_text,optional"`
}

type hclOption struct {
	InGroup   string    `hcl:"in_group,optional"`
	Default   cty.Value `hcl:"default,optional"`
	LongText  string    `hcl:"long_text,optional"`
	AddToDocs *bool     `hcl:"add_to_docs,optional"`
}

type hclShortcut struct {
	InGroup      string `hcl:"in_group,optional"`
	ShortText    string `hcl:"short_text,optional"`
	Key          string `hcl:"key"`
	Action       string `hcl:"action"`
	AddToDefault *bool  `hcl:"add_to_default,optional"`
	LongText     string `hcl:"long_text,optional"`
}

func decodeHCL(filename string, data []byte) (int, string, []entry, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return 0, "", nil, errors.Errorf(errors.KindValidation, "failed to parse HCL: %s", diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return 0, "", nil, errors.New(errors.KindInternal, "unexpected HCL body type")
	}

	var (
		version int
		nsName  string
	)
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return 0, "", nil, errors.Errorf(errors.KindValidation, "invalid %s: %s", name, diags.Error())
		}
		var err error
		switch name {
		case "version":
			err = gocty.FromCtyValue(val, &version)
		case "namespace":
			err = gocty.FromCtyValue(val, &nsName)
		default:
			return 0, "", nil, errors.Errorf(errors.KindValidation, "unknown top-level attribute %q", name)
		}
		if err != nil {
			return 0, "", nil, errors.Wrapf(err, errors.KindValidation, "invalid %s", name)
		}
	}

	entries := make([]entry, 0, len(body.Blocks))
	for _, block := range body.Blocks {
		if len(block.Labels) != 1 {
			return 0, "", nil, errors.Errorf(errors.KindValidation, "%s block at line %d needs exactly one label", block.Type, block.TypeRange.Start.Line)
		}
		e := entry{name: block.Labels[0], line: block.TypeRange.Start.Line}

		var diags hcl.Diagnostics
		switch block.Type {
		case "group":
			var g hclGroup
			diags = gohcl.DecodeBody(block.Body, nil, &g)
			e.kind = entryGroup
			e.shortText, e.startText, e.endText = g.ShortText, g.StartText, g.EndText
		case "option":
			var o hclOption
			diags = gohcl.DecodeBody(block.Body, nil, &o)
			if !diags.HasErrors() {
				text, err := ctyText(o.Default)
				if err != nil {
					return 0, "", nil, errors.At(errors.Wrapf(err, errors.KindValidation, "option %q default", e.name), filename, e.line)
				}
				e.defaultText = text
			}
			e.kind = entryOption
			e.inGroup, e.longText, e.addToDocs = o.InGroup, o.LongText, o.AddToDocs
		case "shortcut":
			var s hclShortcut
			diags = gohcl.DecodeBody(block.Body, nil, &s)
			e.kind = entryShortcut
			e.inGroup, e.shortText, e.key, e.action = s.InGroup, s.ShortText, s.Key, s.Action
			e.addToDefault, e.longText = s.AddToDefault, s.LongText
		default:
			return 0, "", nil, errors.At(errors.Errorf(errors.KindValidation, "unknown block type %q", block.Type), filename, e.line)
		}
		if diags.HasErrors() {
			return 0, "", nil, errors.Errorf(errors.KindValidation, "failed to decode %s %q: %s", block.Type, e.name, diags.Error())
		}
		entries = append(entries, e)
	}

	return version, nsName, entries, nil
}

// ctyText renders an HCL default value the way it appears in a config file:
// booleans as yes/no and lists space separated.
func ctyText(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return "", errors.New(errors.KindValidation, "value must be known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case ty == cty.Bool:
		if v.True() {
			return "yes", nil
		}
		return "no", nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			s, err := ctyText(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	default:
		return "", errors.Errorf(errors.KindValidation, "unsupported value type %s", ty.FriendlyName())
	}
}

// YAML / JSON

type rawExport struct {
	Version     int        `yaml:"version" json:"version"`
	Namespace   string     `yaml:"namespace" json:"namespace"`
	Definitions []rawEntry `yaml:"definitions,omitempty" json:"definitions,omitempty"`
}

type rawEntry struct {
	Group        string `yaml:"group,omitempty" json:"group,omitempty"`
	Option       string `yaml:"option,omitempty" json:"option,omitempty"`
	Shortcut     string `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`
	InGroup      string `yaml:"in_group,omitempty" json:"in_group,omitempty"`
	ShortText    string `yaml:"short_text,omitempty" json:"short_text,omitempty"`
	StartText    string `yaml:"start_text,omitempty" json:"start_text,omitempty"`
	EndText      string `yaml:"end_text,omitempty" json:"end_text,omitempty"`
	Default      any    `yaml:"default,omitempty" json:"default,omitempty"`
	LongText     string `yaml:"long_text,omitempty" json:"long_text,omitempty"`
	AddToDocs    *bool  `yaml:"add_to_docs,omitempty" json:"add_to_docs,omitempty"`
	Key          string `yaml:"key,omitempty" json:"key,omitempty"`
	Action       string `yaml:"action,omitempty" json:"action,omitempty"`
	AddToDefault *bool  `yaml:"add_to_default,omitempty" json:"add_to_default,omitempty"`
}

func (r rawEntry) toEntry(line int) (entry, error) {
	e := entry{
		line:         line,
		inGroup:      r.InGroup,
		shortText:    r.ShortText,
		startText:    r.StartText,
		endText:      r.EndText,
		defaultText:  FormatValue(r.Default),
		longText:     r.LongText,
		addToDocs:    r.AddToDocs,
		key:          r.Key,
		action:       r.Action,
		addToDefault: r.AddToDefault,
	}
	set := 0
	if r.Group != "" {
		e.kind, e.name = entryGroup, r.Group
		set++
	}
	if r.Option != "" {
		e.kind, e.name = entryOption, r.Option
		set++
	}
	if r.Shortcut != "" {
		e.kind, e.name = entryShortcut, r.Shortcut
		set++
	}
	if set != 1 {
		return e, errors.New(errors.KindValidation, "each definition needs exactly one of group, option or shortcut")
	}
	return e, nil
}

func decodeYAML(data []byte) (int, string, []entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, "", nil, errors.Wrap(err, errors.KindValidation, "failed to parse YAML")
	}
	if len(doc.Content) == 0 {
		return 0, "", nil, errors.New(errors.KindValidation, "empty definitions export")
	}
	root := doc.Content[0]

	var header struct {
		Version   int    `yaml:"version"`
		Namespace string `yaml:"namespace"`
	}
	if err := root.Decode(&header); err != nil {
		return 0, "", nil, errors.Wrap(err, errors.KindValidation, "invalid export header")
	}

	var entries []entry
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "definitions" {
			continue
		}
		for _, item := range root.Content[i+1].Content {
			var r rawEntry
			if err := item.Decode(&r); err != nil {
				return 0, "", nil, errors.Wrapf(err, errors.KindValidation, "invalid definition at line %d", item.Line)
			}
			e, err := r.toEntry(item.Line)
			if err != nil {
				return 0, "", nil, errors.Attr(err, errors.AttrLine, item.Line)
			}
			entries = append(entries, e)
		}
	}
	return header.Version, header.Namespace, entries, nil
}

func decodeJSON(data []byte) (int, string, []entry, error) {
	var raw rawExport
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return 0, "", nil, errors.Wrap(err, errors.KindValidation, "failed to parse JSON")
	}
	entries := make([]entry, 0, len(raw.Definitions))
	for i, r := range raw.Definitions {
		e, err := r.toEntry(0)
		if err != nil {
			return 0, "", nil, errors.Wrapf(err, errors.KindValidation, "definition #%d", i+1)
		}
		entries = append(entries, e)
	}
	return raw.Version, raw.Namespace, entries, nil
}

// FormatValue renders a decoded YAML/JSON value as configuration text:
// booleans as yes/no, lists space separated.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}
