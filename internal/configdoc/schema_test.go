// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportSchema(t *testing.T) {
	s := ExportSchema()

	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"version", "namespace"}, s.Required)
	require.Contains(t, s.Definitions, "option")
	assert.Contains(t, s.Definitions["shortcut"].Required, "key")
	assert.Len(t, s.Properties["definitions"].Items.OneOf, 3)
}

func TestConfigSchemaToJSON(t *testing.T) {
	out, err := ConfigSchemaToJSON(ExportSchema())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", decoded["$schema"])
	assert.Contains(t, decoded["$defs"], "group")
}

func TestConfigSchemaToYAML(t *testing.T) {
	out, err := ConfigSchemaToYAML(ExportSchema())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "object", decoded["type"])
}
