// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package roles

import (
	"fmt"
	"sort"
	"sync"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/logging"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is a problem found at a source location.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
}

// Reporter collects diagnostics from a build. Diagnostics never stop the
// build by themselves; callers decide with HasErrors. It is safe for
// concurrent use.
type Reporter struct {
	mu     sync.Mutex
	diags  []Diagnostic
	logger *logging.Logger
}

// NewReporter creates a Reporter that also logs every diagnostic. A nil
// logger disables logging.
func NewReporter(logger *logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Reporter{logger: logger}
}

// Report records a diagnostic.
func (r *Reporter) Report(sev Severity, file string, line int, msg string) {
	r.mu.Lock()
	r.diags = append(r.diags, Diagnostic{Severity: sev, File: file, Line: line, Message: msg})
	r.mu.Unlock()

	switch sev {
	case SeverityError:
		r.logger.Error(msg, "file", file, "line", line)
	case SeverityWarning:
		r.logger.Warn(msg, "file", file, "line", line)
	default:
		r.logger.Info(msg, "file", file, "line", line)
	}
}

// Warnf records a warning.
func (r *Reporter) Warnf(file string, line int, format string, args ...any) {
	r.Report(SeverityWarning, file, line, fmt.Sprintf(format, args...))
}

// Errorf records an error.
func (r *Reporter) Errorf(file string, line int, format string, args ...any) {
	r.Report(SeverityError, file, line, fmt.Sprintf(format, args...))
}

// Diagnostics returns the recorded diagnostics ordered by file and line.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	out := append([]Diagnostic(nil), r.diags...)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// Count returns the number of diagnostics of the given severity.
func (r *Reporter) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Err summarizes error diagnostics as a single error, or returns nil.
func (r *Reporter) Err() error {
	n := r.Count(SeverityError)
	if n == 0 {
		return nil
	}
	return errors.Errorf(errors.KindValidation, "%d error diagnostic(s), %d warning(s)", n, r.Count(SeverityWarning))
}
