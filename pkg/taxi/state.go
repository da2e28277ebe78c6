// pkg/taxi/state.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"encoding/binary"

	"github.com/liangjizhu/heuristica/pkg/grid"
)

// JointState packs an N-aircraft position tuple into a comparable
// string: 2 bytes row + 2 bytes column per aircraft, big-endian. Time
// is deliberately not part of the encoding: two visits of the same
// joint tuple are the same state for the A* closed set, which is sound
// because step costs are uniform and both heuristics are consistent.
type JointState string

func encodeState(pos []grid.Cell) JointState {
	buf := make([]byte, 4*len(pos))
	for i, c := range pos {
		binary.BigEndian.PutUint16(buf[4*i:], uint16(int16(c.Row)))
		binary.BigEndian.PutUint16(buf[4*i+2:], uint16(int16(c.Col)))
	}
	return JointState(buf)
}

// Positions decodes s back into its per-aircraft cells.
func (s JointState) Positions() []grid.Cell {
	n := len(s) / 4
	out := make([]grid.Cell, n)
	b := []byte(s)
	for i := 0; i < n; i++ {
		row := int(int16(binary.BigEndian.Uint16(b[4*i:])))
		col := int(int16(binary.BigEndian.Uint16(b[4*i+2:])))
		out[i] = grid.Cell{Row: row, Col: col}
	}
	return out
}

// Direction is the transition marker emitted in the plan file.
type Direction int

const (
	DirWait Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Glyph returns the arrow (or "w" for wait) used in the plan file
// format.
func (d Direction) Glyph() string {
	switch d {
	case DirUp:
		return "↑"
	case DirDown:
		return "↓"
	case DirLeft:
		return "←"
	case DirRight:
		return "→"
	default:
		return "w"
	}
}

// DirectionOf classifies the single-cell transition from prev to next.
// prev and next must be equal or 4-adjacent.
func DirectionOf(prev, next grid.Cell) Direction {
	switch {
	case prev == next:
		return DirWait
	case next.Row == prev.Row-1 && next.Col == prev.Col:
		return DirUp
	case next.Row == prev.Row+1 && next.Col == prev.Col:
		return DirDown
	case next.Col == prev.Col-1 && next.Row == prev.Row:
		return DirLeft
	case next.Col == prev.Col+1 && next.Row == prev.Row:
		return DirRight
	default:
		panic("taxi: non-adjacent transition")
	}
}

// hasVertexCollision reports whether any two entries of pos are equal.
func hasVertexCollision(pos []grid.Cell) bool {
	seen := make(map[grid.Cell]bool, len(pos))
	for _, c := range pos {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

// hasEdgeSwap reports whether any two aircraft exchange cells between
// prev and next.
func hasEdgeSwap(prev, next []grid.Cell) bool {
	for i := range prev {
		for j := i + 1; j < len(prev); j++ {
			if prev[i] == next[j] && prev[j] == next[i] {
				return true
			}
		}
	}
	return false
}

// Conflicts reports whether moving from prev to next exhibits a vertex
// collision or an edge swap. Follow-through (two aircraft passing
// through a shared cell at different points of the same tick) is
// allowed and is not flagged by either check.
func Conflicts(prev, next []grid.Cell) bool {
	return hasVertexCollision(next) || hasEdgeSwap(prev, next)
}

// successors returns every joint successor of cur that does not
// conflict. It generates the Cartesian product of per-aircraft actions
// lazily, pruning a partial candidate as soon as it already contains a
// vertex collision rather than building the full product first, which
// keeps the exponential joint-action fan-out in check. An edge swap
// can only be detected once both involved aircraft have committed, so
// that check runs on the completed tuple.
func (inst *Instance) successors(cur []grid.Cell) [][]grid.Cell {
	n := len(cur)
	var out [][]grid.Cell
	next := make([]grid.Cell, n)

	var rec func(i int)
	rec = func(i int) {
		if i == n {
			if hasEdgeSwap(cur, next) {
				return
			}
			cp := make([]grid.Cell, n)
			copy(cp, next)
			out = append(out, cp)
			return
		}
		for _, c := range inst.actionsFor(cur[i]) {
			next[i] = c
			if hasVertexCollision(next[:i+1]) {
				continue
			}
			rec(i + 1)
		}
	}
	rec(0)
	return out
}
