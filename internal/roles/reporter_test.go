// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package roles

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/logging"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf, JSON: true}))

	assert.False(t, r.HasErrors())
	assert.NoError(t, r.Err())

	r.Warnf("b.rst", 3, "unknown shortcut %q", "x")
	r.Errorf("a.rst", 10, "bad")
	r.Errorf("a.rst", 2, "worse")

	diags := r.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, "a.rst:2: ERROR: worse", diags[0].String())
	assert.Equal(t, "a.rst:10: ERROR: bad", diags[1].String())
	assert.Equal(t, `b.rst:3: WARNING: unknown shortcut "x"`, diags[2].String())

	assert.Equal(t, 2, r.Count(SeverityError))
	assert.True(t, r.HasErrors())
	err := r.Err()
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
	assert.Contains(t, err.Error(), "2 error diagnostic(s), 1 warning(s)")

	assert.Contains(t, buf.String(), `"file":"b.rst"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestReporterNilLogger(t *testing.T) {
	r := NewReporter(nil)
	r.Report(SeverityInfo, "x", 1, "note")
	assert.Equal(t, 0, r.Count(SeverityError))
	assert.Equal(t, "INFO", r.Diagnostics()[0].Severity.String())
}
