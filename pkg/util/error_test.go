// pkg/util/error_test.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorLoggerContext(t *testing.T) {
	var el ErrorLogger
	el.PushLine(7)
	el.Push("aircraft")
	el.ErrorString("bad field %q", "X")
	el.Pop()
	el.Error(errors.New("missing separator"))
	el.Pop()

	if !el.HaveErrors() {
		t.Fatal("expected recorded diagnostics")
	}
	got := el.String()
	want := "line 7 / aircraft: bad field \"X\"\nline 7: missing separator"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestErrorLoggerNoContext(t *testing.T) {
	var el ErrorLogger
	el.ErrorString("top-level problem")
	if got := el.String(); strings.Contains(got, ":") {
		t.Errorf("context-free diagnostic %q should not carry a context prefix", got)
	}
}

func TestErrorLoggerCheckDepthBalanced(t *testing.T) {
	var el ErrorLogger
	defer el.CheckDepth(el.CurrentDepth())
	el.Push("x")
	el.Pop()
}

func TestErrorLoggerCheckDepthUnbalanced(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unbalanced context stack")
		}
	}()
	var el ErrorLogger
	el.Push("left open")
	el.CheckDepth(0)
}

func TestErrorLoggerNil(t *testing.T) {
	var el *ErrorLogger
	if el.CurrentDepth() != 0 {
		t.Error("nil ErrorLogger depth should be 0")
	}
	el.CheckDepth(0)
}
