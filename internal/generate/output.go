// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/docgen/internal/errors"
)

// FileStatus is what happened to one output file.
type FileStatus int

const (
	StatusUnchanged FileStatus = iota
	StatusWritten
	// StatusStale means the file differs from the generated content; only
	// reported in check mode.
	StatusStale
)

func (s FileStatus) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusStale:
		return "stale"
	default:
		return "unchanged"
	}
}

// Output records the status of every file a build produced.
type Output struct {
	mu    sync.Mutex
	files map[string]FileStatus
}

func newOutput() *Output {
	return &Output{files: make(map[string]FileStatus)}
}

func (o *Output) set(path string, s FileStatus) {
	o.mu.Lock()
	o.files[path] = s
	o.mu.Unlock()
}

// Files returns the paths with status s, sorted.
func (o *Output) Files(s FileStatus) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for path, st := range o.files {
		if st == s {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// Len is the number of files the build produced.
func (o *Output) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.files)
}

// writer puts generated content on disk, or compares it in check mode.
type writer struct {
	check bool
	diffs io.Writer
	out   *Output

	// serializes diff output
	mu sync.Mutex
}

func (w *writer) emit(path, content string) error {
	old, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(old, []byte(content)):
		w.out.set(path, StatusUnchanged)
		return nil
	case err != nil && !os.IsNotExist(err):
		return errors.At(errors.Wrap(err, errors.KindInternal, "failed to read existing output"), path, 0)
	}

	if w.check {
		w.out.set(path, StatusStale)
		return w.diff(path, string(old), content)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create output directory")
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return errors.At(errors.Wrap(err, errors.KindInternal, "failed to write output"), path, 0)
	}
	w.out.set(path, StatusWritten)
	return nil
}

func (w *writer) diff(path, old, content string) error {
	if w.diffs == nil {
		return nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(content),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to diff output")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = fmt.Fprint(w.diffs, text)
	return err
}
