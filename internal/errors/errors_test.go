// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindValidation, "invalid signature")
	if err.Error() != "invalid signature" {
		t.Errorf("expected 'invalid signature', got '%s'", err.Error())
	}

	wrapped := Wrap(err, KindInternal, "failed to render")
	if wrapped.Error() != "failed to render: invalid signature" {
		t.Errorf("expected 'failed to render: invalid signature', got '%s'", wrapped.Error())
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindValidation, "invalid input")
	if GetKind(err) != KindValidation {
		t.Errorf("expected KindValidation, got %v", GetKind(err))
	}

	wrapped := Wrap(err, KindNotFound, "failed")
	if GetKind(wrapped) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", GetKind(wrapped))
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", GetKind(errors.New("std error")))
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindValidation, "bad option")
	err = Attr(err, AttrNamespace, "kitty")
	err = Attr(err, "option", "font_size")

	attrs := GetAttributes(err)
	if attrs[AttrNamespace] != "kitty" {
		t.Errorf("expected kitty, got %v", attrs[AttrNamespace])
	}

	wrapped := Wrap(err, KindInternal, "failed")
	wrapped = Attr(wrapped, "operation", "render")

	allAttrs := GetAttributes(wrapped)
	if allAttrs["option"] != "font_size" || allAttrs["operation"] != "render" {
		t.Errorf("missing attributes: %v", allAttrs)
	}
}

func TestAtFormatsLocation(t *testing.T) {
	err := At(New(KindValidation, "unknown role"), "docs/index.rst", 12)
	if err.Error() != "docs/index.rst:12: unknown role" {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = At(New(KindNotFound, "missing"), "defs.hcl", 0)
	if err.Error() != "defs.hcl: missing" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if _, ok := GetAttributes(err)[AttrLine]; ok {
		t.Error("line attribute should not be set for line 0")
	}
}

func TestKindString(t *testing.T) {
	if KindConflict.String() != "conflict" {
		t.Errorf("got %s", KindConflict.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("got %s", Kind(99).String())
	}
}

func TestAttrLeavesOriginalUntouched(t *testing.T) {
	base := New(KindValidation, "bad option")
	located := At(base, "kitty.hcl", 3)

	if len(GetAttributes(base)) != 0 {
		t.Errorf("original gained attributes: %v", GetAttributes(base))
	}
	if located.Error() != "kitty.hcl:3: bad option" {
		t.Errorf("unexpected message %q", located.Error())
	}
}

func TestAttrWrapsForeignErrors(t *testing.T) {
	err := At(errors.New("permission denied"), "out.rst", 0)
	if err.Error() != "out.rst: permission denied" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if GetKind(err) != KindInternal {
		t.Errorf("expected KindInternal, got %v", GetKind(err))
	}

	inner := fmt.Errorf("render: %w", New(KindConflict, "duplicate"))
	if GetKind(Attr(inner, AttrNamespace, "kitty")) != KindConflict {
		t.Error("kind of a wrapped *Error should be kept")
	}
}
