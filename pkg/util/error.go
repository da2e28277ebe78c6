// pkg/util/error.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/liangjizhu/heuristica/pkg/log"
)

// ErrorLogger accumulates diagnostics while parsing a maintenance or
// taxi input file. Parsers push context for whatever they are currently
// reading (an input line, the position-domain block, one aircraft
// record) and record every malformed item they find, so a single run
// reports all of a file's problems instead of stopping at the first.
type ErrorLogger struct {
	hierarchy []string
	diags     []diagnostic
}

// diagnostic is one recorded problem: the parse context active when it
// was found, plus the message itself.
type diagnostic struct {
	context string
	message string
}

func (d diagnostic) String() string {
	if d.context == "" {
		return d.message
	}
	return d.context + ": " + d.message
}

// PushLine enters the context of the 1-based input line n, the common
// case for the line-oriented formats both solvers read.
func (e *ErrorLogger) PushLine(n int) {
	e.Push(fmt.Sprintf("line %d", n))
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

// ErrorString records a formatted diagnostic under the current context.
func (e *ErrorLogger) ErrorString(s string, args ...interface{}) {
	e.diags = append(e.diags, diagnostic{
		context: strings.Join(e.hierarchy, " / "),
		message: fmt.Sprintf(s, args...),
	})
}

// Error records err under the current context.
func (e *ErrorLogger) Error(err error) {
	e.ErrorString("%s", err.Error())
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.diags) > 0
}

// PrintErrors writes every accumulated diagnostic to stderr and, if a
// logger is available, to lg. Two loops so the two outputs aren't
// interleaved.
func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	for _, d := range e.diags {
		lg.Errorf("%s", d)
	}
	for _, d := range e.diags {
		fmt.Fprintln(os.Stderr, d)
	}
}

func (e *ErrorLogger) String() string {
	return strings.Join(MapSlice(e.diags, diagnostic.String), "\n")
}

// CheckDepth panics if the context depth differs from d when parsing
// returns: an unbalanced Push/Pop means any later diagnostic would
// carry the wrong context. Call it via defer at the top of a parse
// function. A panic already unwinding takes precedence.
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}
	if r := recover(); r != nil {
		panic(r)
	}
	panic(fmt.Sprintf("util: unbalanced ErrorLogger context: initial depth %d, final %d", d, e.CurrentDepth()))
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
