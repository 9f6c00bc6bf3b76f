// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package errors provides the Kind-tagged error type used across docgen.
// Errors that point into an input file carry its path and line as
// attributes and print them GNU-style, "file:line: message".
package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Kind is the category of an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInternal
	// KindValidation marks malformed input: definitions, project files, roles.
	KindValidation
	KindNotFound
	// KindConflict marks input that contradicts earlier input, and stale
	// output in check mode.
	KindConflict
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindInternal:   "internal",
	KindValidation: "validation",
	KindNotFound:   "not_found",
	KindConflict:   "conflict",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Attribute keys shared by packages that report source locations.
const (
	AttrFile      = "file"
	AttrLine      = "line"
	AttrNamespace = "namespace"
)

// Error is a structured docgen error.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

func (e *Error) location() string {
	file, _ := e.Attributes[AttrFile].(string)
	if file == "" {
		return ""
	}
	if line, ok := e.Attributes[AttrLine].(int); ok && line > 0 {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return file
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	switch {
	case msg == "" && e.Underlying != nil:
		msg = e.Underlying.Error()
	case e.Underlying != nil:
		msg += ": " + e.Underlying.Error()
	}
	if loc := e.location(); loc != "" {
		return loc + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap wraps err as an Error of the given kind. A nil err stays nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Underlying: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	return Wrap(err, kind, fmt.Sprintf(format, args...))
}

// Attr returns err with key set to val. err itself is not modified. Errors
// that are not an *Error are wrapped, keeping the kind of any *Error in
// their chain (KindInternal otherwise).
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}
	var out Error
	if e, ok := err.(*Error); ok {
		out = *e
		out.Attributes = maps.Clone(e.Attributes)
	} else {
		out = Error{Kind: GetKind(err), Underlying: err}
		if out.Kind == KindUnknown {
			out.Kind = KindInternal
		}
	}
	if out.Attributes == nil {
		out.Attributes = make(map[string]any)
	}
	out.Attributes[key] = val
	return &out
}

// At records a source location on err. A zero line records only the file.
func At(err error, file string, line int) error {
	err = Attr(err, AttrFile, file)
	if line > 0 {
		err = Attr(err, AttrLine, line)
	}
	return err
}

// GetKind returns the Kind of the outermost *Error in err's chain, or
// KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetAttributes merges the attributes of every *Error in err's chain. The
// outermost value wins when a key repeats.
func GetAttributes(err error) map[string]any {
	attrs := make(map[string]any)
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		for k, v := range e.Attributes {
			if _, ok := attrs[k]; !ok {
				attrs[k] = v
			}
		}
		err = e.Underlying
	}
	return attrs
}
