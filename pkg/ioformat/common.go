// pkg/ioformat/common.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ioformat implements the text/CSV formats the maintenance
// scheduler and taxiing planner consume and produce: no
// constraint-model or search logic lives here, only parsing and
// formatting, with pkg/util.ErrorLogger accumulating per-line
// diagnostics.
package ioformat

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/liangjizhu/heuristica/pkg/grid"
)

var cellRe = regexp.MustCompile(`\((\d+),(\d+)\)`)

// parseCells extracts every "(r,c)" token from s, in order.
func parseCells(s string) []grid.Cell {
	var out []grid.Cell
	for _, m := range cellRe.FindAllStringSubmatch(s, -1) {
		r, _ := strconv.Atoi(m[1])
		c, _ := strconv.Atoi(m[2])
		out = append(out, grid.Cell{Row: r, Col: c})
	}
	return out
}

// lineSource yields non-blank, trimmed lines one at a time and tracks a
// 1-based line number for diagnostics. Blank lines are skipped in both
// input formats.
type lineSource struct {
	sc   *bufio.Scanner
	line int
}

func newLineSource(sc *bufio.Scanner) *lineSource {
	return &lineSource{sc: sc}
}

func (s *lineSource) next() (string, bool) {
	for s.sc.Scan() {
		s.line++
		t := strings.TrimSpace(s.sc.Text())
		if t == "" {
			continue
		}
		return t, true
	}
	return "", false
}
