// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ConfigSchema is a JSON Schema document (draft 2020-12 subset).
type ConfigSchema struct {
	Schema      string                   `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string                   `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string                   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Definitions map[string]*ConfigSchema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
	Properties  map[string]*ConfigSchema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty" yaml:"required,omitempty"`

	// Field-level properties
	Items                *ConfigSchema   `json:"items,omitempty" yaml:"items,omitempty"`
	OneOf                []*ConfigSchema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Enum                 []any           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default              any             `json:"default,omitempty" yaml:"default,omitempty"`
	Pattern              string          `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	AdditionalProperties *bool           `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Ref                  string          `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

const (
	namePattern      = `^[A-Za-z_][A-Za-z0-9_]*$`
	groupPattern     = `^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`
	namespacePattern = `^[a-z][a-z0-9_-]*$`
)

// ExportSchema describes the YAML/JSON form of a definitions export, for
// editors and for validating exports produced by other tools.
func ExportSchema() *ConfigSchema {
	closed := false

	str := func(desc string) *ConfigSchema {
		return &ConfigSchema{Type: "string", Description: desc}
	}
	flag := func(desc string) *ConfigSchema {
		return &ConfigSchema{Type: "boolean", Description: desc, Default: true}
	}
	defaultValue := &ConfigSchema{
		Description: "Default value; booleans render as yes/no, lists space separated",
		OneOf: []*ConfigSchema{
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
			{Type: "array", Items: &ConfigSchema{OneOf: []*ConfigSchema{{Type: "string"}, {Type: "number"}, {Type: "boolean"}}}},
		},
	}

	group := &ConfigSchema{
		Title:       "group",
		Description: "Opens a group, or switches back to an existing one",
		Type:        "object",
		Properties: map[string]*ConfigSchema{
			"group":      {Type: "string", Pattern: groupPattern, Description: "Dotted group name; a dot marks a sub-section"},
			"short_text": str("Section heading"),
			"start_text": str("Text emitted after the heading"),
			"end_text":   str("Text emitted after the last definition of the group"),
		},
		Required:             []string{"group"},
		AdditionalProperties: &closed,
	}

	option := &ConfigSchema{
		Title:       "option",
		Description: "A configuration setting",
		Type:        "object",
		Properties: map[string]*ConfigSchema{
			"option":      {Type: "string", Pattern: namePattern, Description: "Option name"},
			"in_group":    str("Group to file the option under instead of the current one"),
			"default":     defaultValue,
			"long_text":   str("Description; may contain :opt: references"),
			"add_to_docs": flag("Include the option in the reference"),
		},
		Required:             []string{"option"},
		AdditionalProperties: &closed,
	}

	shortcut := &ConfigSchema{
		Title:       "shortcut",
		Description: "A default key binding; bindings sharing a name are documented together",
		Type:        "object",
		Properties: map[string]*ConfigSchema{
			"shortcut":       {Type: "string", Pattern: namePattern, Description: "Shortcut slug"},
			"in_group":       str("Group to file the shortcut under instead of the current one"),
			"short_text":     str("Heading and anchor text"),
			"key":            str("Key chord; may use the modifier placeholder"),
			"action":         str("Mapped action"),
			"add_to_default": flag("List the binding in the default key map"),
			"long_text":      str("Description; may contain :opt: references"),
		},
		Required:             []string{"shortcut", "key", "action"},
		AdditionalProperties: &closed,
	}

	return &ConfigSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/kovidgoyal/kitty/docgen/definitions.json",
		Title:       "Definitions export",
		Description: "Ordered configuration option and shortcut definitions of one namespace",
		Type:        "object",
		Definitions: map[string]*ConfigSchema{
			"group":    group,
			"option":   option,
			"shortcut": shortcut,
		},
		Properties: map[string]*ConfigSchema{
			"version":   {Type: "integer", Enum: []any{ExportVersion}, Description: "Export format version"},
			"namespace": {Type: "string", Pattern: namespacePattern, Description: "Namespace the definitions belong to"},
			"definitions": {
				Type:        "array",
				Description: "Definitions in document order",
				Items: &ConfigSchema{OneOf: []*ConfigSchema{
					{Ref: "#/$defs/group"},
					{Ref: "#/$defs/option"},
					{Ref: "#/$defs/shortcut"},
				}},
			},
		},
		Required:             []string{"version", "namespace"},
		AdditionalProperties: &closed,
	}
}

// ConfigSchemaToJSON converts a ConfigSchema to pretty-printed JSON.
func ConfigSchemaToJSON(js *ConfigSchema) (string, error) {
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ConfigSchemaToYAML converts a ConfigSchema to YAML.
func ConfigSchemaToYAML(js *ConfigSchema) (string, error) {
	data, err := yaml.Marshal(js)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
