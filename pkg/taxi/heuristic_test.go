// pkg/taxi/heuristic_test.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"testing"

	"github.com/liangjizhu/heuristica/pkg/grid"
)

func TestH1Estimate(t *testing.T) {
	h := H1{Goals: []grid.Cell{{Row: 2, Col: 2}, {Row: 0, Col: 0}}}
	got := h.Estimate([]grid.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}})
	// aircraft 0: |0-2|+|0-2| = 4, aircraft 1: |1-0|+|1-0| = 2, max = 4.
	if got != 4 {
		t.Errorf("H1.Estimate = %d, want 4", got)
	}
}

func TestBFSDistanceGridMatchesManhattanInOpenGrid(t *testing.T) {
	cells := make([][]Color, 4)
	for r := range cells {
		cells[r] = make([]Color, 4)
	}
	m, err := NewTaxiMap(cells)
	if err != nil {
		t.Fatal(err)
	}
	goal := grid.Cell{Row: 3, Col: 3}
	dg := bfsDistanceGrid(m, goal)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cell := grid.Cell{Row: r, Col: c}
			want := cell.ManhattanDistance(goal)
			if got := dg.at(cell); got != want {
				t.Errorf("distance(%v, goal) = %d, want %d", cell, got, want)
			}
		}
	}
}

func TestBFSDistanceGridUnreachable(t *testing.T) {
	m, err := NewTaxiMap([][]Color{
		{ColorB, ColorG, ColorB},
	})
	if err != nil {
		t.Fatal(err)
	}
	dg := bfsDistanceGrid(m, grid.Cell{Row: 0, Col: 0})
	if got := dg.at(grid.Cell{Row: 0, Col: 2}); got != Inf {
		t.Errorf("distance across a blocked cell = %d, want Inf", got)
	}
}

// TestH2DominatesH1 checks the dominance property (h2 >= h1) on a grid
// with an obstacle forcing a detour, where Manhattan distance strictly
// underestimates the true shortest-path distance.
func TestH2DominatesH1(t *testing.T) {
	cells := [][]Color{
		{ColorB, ColorB, ColorG, ColorB, ColorB},
		{ColorB, ColorB, ColorG, ColorB, ColorB},
		{ColorB, ColorB, ColorB, ColorB, ColorB},
	}
	m, err := NewTaxiMap(cells)
	if err != nil {
		t.Fatal(err)
	}
	goals := []grid.Cell{{Row: 0, Col: 4}}
	h1 := H1{Goals: goals}
	h2 := NewH2(m, goals)

	for r := 0; r < m.Bounds.Rows; r++ {
		for c := 0; c < m.Bounds.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if !m.IsTraversable(cell) {
				continue
			}
			pos := []grid.Cell{cell}
			v1, v2 := h1.Estimate(pos), h2.Estimate(pos)
			if v2 < v1 {
				t.Errorf("h2(%v)=%d < h1(%v)=%d, dominance violated", cell, v2, cell, v1)
			}
		}
	}

	start := grid.Cell{Row: 0, Col: 0}
	if h1.Estimate([]grid.Cell{start}) != 4 {
		t.Errorf("h1(start) = %d, want 4 (Manhattan)", h1.Estimate([]grid.Cell{start}))
	}
	if h2.Estimate([]grid.Cell{start}) != 8 {
		t.Errorf("h2(start) = %d, want 8 (true distance around the wall)", h2.Estimate([]grid.Cell{start}))
	}
}

// TestHeuristicConsistency: for every legal single-aircraft move, h
// must not drop by more than 1.
func TestHeuristicConsistency(t *testing.T) {
	cells := [][]Color{
		{ColorB, ColorB, ColorG, ColorB, ColorB},
		{ColorB, ColorB, ColorG, ColorB, ColorB},
		{ColorB, ColorB, ColorB, ColorB, ColorB},
	}
	m, err := NewTaxiMap(cells)
	if err != nil {
		t.Fatal(err)
	}
	goal := grid.Cell{Row: 0, Col: 4}
	goals := []grid.Cell{goal}
	h1 := H1{Goals: goals}
	h2 := NewH2(m, goals)

	for r := 0; r < m.Bounds.Rows; r++ {
		for c := 0; c < m.Bounds.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if !m.IsTraversable(cell) {
				continue
			}
			for _, n := range m.Neighbours4(cell) {
				for _, h := range []Heuristic{h1, h2} {
					hc, hn := h.Estimate([]grid.Cell{cell}), h.Estimate([]grid.Cell{n})
					if hn < hc-1 {
						t.Errorf("%T: h(%v)=%d, h(%v)=%d: drop exceeds 1 in one step", h, cell, hc, n, hn)
					}
				}
			}
		}
	}
}
