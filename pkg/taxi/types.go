// pkg/taxi/types.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package taxi implements the taxiing planner: a joint A* search that
// moves a fleet of aircraft across a coloured grid from their starting
// cells to their goals in lock-step, without any two aircraft colliding
// or swapping places along the way.
package taxi

import (
	"fmt"

	"github.com/liangjizhu/heuristica/pkg/grid"
)

// Color classifies a map cell's taxiing terrain.
type Color int

const (
	ColorB Color = iota // white: traversable, waiting allowed
	ColorA              // amber: traversable, waiting forbidden
	ColorG              // grey: blocked
)

func (c Color) String() string {
	switch c {
	case ColorB:
		return "B"
	case ColorA:
		return "A"
	case ColorG:
		return "G"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// ParseColor parses one of the three terrain codes.
func ParseColor(s string) (Color, error) {
	switch s {
	case "B":
		return ColorB, nil
	case "A":
		return ColorA, nil
	case "G":
		return ColorG, nil
	default:
		return 0, fmt.Errorf("taxi: unknown terrain color %q", s)
	}
}

// IsTraversable reports whether an aircraft may ever occupy a cell of
// this color.
func (c Color) IsTraversable() bool { return c != ColorG }

// CanWait reports whether an aircraft may stay put on a cell of this
// color for a tick.
func (c Color) CanWait() bool { return c == ColorB }

// TaxiMap is the rectangular terrain the planner moves aircraft across.
type TaxiMap struct {
	Bounds grid.Bounds
	cells  [][]Color // row-major, Bounds.Rows x Bounds.Cols
}

// NewTaxiMap builds a TaxiMap from a row-major grid of colors. Every
// row must have the same length.
func NewTaxiMap(cells [][]Color) (*TaxiMap, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyMap
	}
	cols := len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, ErrRaggedMap
		}
	}
	return &TaxiMap{
		Bounds: grid.Bounds{Rows: len(cells), Cols: cols},
		cells:  cells,
	}, nil
}

// Color returns the terrain color at c. c must be in bounds.
func (m *TaxiMap) Color(c grid.Cell) Color {
	return m.cells[c.Row][c.Col]
}

// IsTraversable reports whether c is in bounds and not blocked.
func (m *TaxiMap) IsTraversable(c grid.Cell) bool {
	return m.Bounds.InBounds(c) && m.Color(c).IsTraversable()
}

// CanWait reports whether c is in bounds and waiting is permitted
// there.
func (m *TaxiMap) CanWait(c grid.Cell) bool {
	return m.Bounds.InBounds(c) && m.Color(c).CanWait()
}

// Neighbours4 returns the up to four 4-connected traversable
// neighbours of c, in the fixed (up, down, left, right) order of
// grid.Bounds.Neighbours4.
func (m *TaxiMap) Neighbours4(c grid.Cell) []grid.Cell {
	var out []grid.Cell
	for _, n := range m.Bounds.Neighbours4(c) {
		if m.Color(n).IsTraversable() {
			out = append(out, n)
		}
	}
	return out
}

// Aircraft is one taxiing aircraft's start and goal cell.
type Aircraft struct {
	Start, Goal grid.Cell
}

// Instance bundles the terrain and aircraft roster for one planning
// run.
type Instance struct {
	Map      *TaxiMap
	Aircraft []Aircraft
}

// NewInstance validates that every aircraft's start and goal lie on
// traversable terrain before returning the instance.
func NewInstance(m *TaxiMap, aircraft []Aircraft) (*Instance, error) {
	for i, ac := range aircraft {
		switch {
		case !m.Bounds.InBounds(ac.Start):
			return nil, fmt.Errorf("aircraft %d: start %v: %w", i, ac.Start, ErrOutOfBounds)
		case !m.Bounds.InBounds(ac.Goal):
			return nil, fmt.Errorf("aircraft %d: goal %v: %w", i, ac.Goal, ErrOutOfBounds)
		case !m.Color(ac.Start).IsTraversable():
			return nil, fmt.Errorf("aircraft %d: %w", i, ErrBlockedStart)
		case !m.Color(ac.Goal).IsTraversable():
			return nil, fmt.Errorf("aircraft %d: %w", i, ErrBlockedGoal)
		}
	}
	return &Instance{Map: m, Aircraft: aircraft}, nil
}

// actionsFor returns the cells one aircraft currently at pos may
// occupy next tick: any 4-connected traversable neighbour, plus pos
// itself if waiting is permitted there.
func (inst *Instance) actionsFor(pos grid.Cell) []grid.Cell {
	acts := inst.Map.Neighbours4(pos)
	if inst.Map.CanWait(pos) {
		acts = append(acts, pos)
	}
	return acts
}
