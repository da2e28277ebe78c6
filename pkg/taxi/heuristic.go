// pkg/taxi/heuristic.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"fmt"
	"hash/fnv"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/util"
)

// Inf stands in for an unreachable BFS distance. It is large enough
// that h0 >= Inf is a safe "no plan exists" test without risking
// overflow once added to a search-depth g.
const Inf = 1 << 30

// Heuristic estimates the remaining makespan from a joint position
// tuple.
type Heuristic interface {
	Estimate(pos []grid.Cell) int
}

// H1 is the max-Manhattan-distance heuristic: admissible because no
// plan can finish before its slowest aircraft would in free space.
type H1 struct {
	Goals []grid.Cell
}

func (h H1) Estimate(pos []grid.Cell) int {
	best := 0
	for i, c := range pos {
		if d := c.ManhattanDistance(h.Goals[i]); d > best {
			best = d
		}
	}
	return best
}

// distanceGrid[row][col] is the BFS distance from (row,col) to one
// aircraft's goal, or -1 if unreachable. Dense rather than a
// map[grid.Cell]int so it round-trips through msgpack cleanly.
type distanceGrid [][]int

func bfsDistanceGrid(m *TaxiMap, goal grid.Cell) distanceGrid {
	dg := make(distanceGrid, m.Bounds.Rows)
	for r := range dg {
		dg[r] = make([]int, m.Bounds.Cols)
		for c := range dg[r] {
			dg[r][c] = -1
		}
	}
	dg[goal.Row][goal.Col] = 0
	queue := []grid.Cell{goal}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range m.Neighbours4(c) {
			if dg[n.Row][n.Col] == -1 {
				dg[n.Row][n.Col] = dg[c.Row][c.Col] + 1
				queue = append(queue, n)
			}
		}
	}
	return dg
}

func (dg distanceGrid) at(c grid.Cell) int {
	d := dg[c.Row][c.Col]
	if d == -1 {
		return Inf
	}
	return d
}

// H2 is the true-shortest-single-agent-distance heuristic: one
// breadth-first search per aircraft, rooted at its goal over the
// traversable grid, ignoring every other aircraft. H2 dominates H1.
type H2 struct {
	dist []distanceGrid
}

// NewH2 precomputes H2's per-aircraft distance grids.
func NewH2(m *TaxiMap, goals []grid.Cell) *H2 {
	h := &H2{dist: make([]distanceGrid, len(goals))}
	for i, g := range goals {
		h.dist[i] = bfsDistanceGrid(m, g)
	}
	return h
}

func (h *H2) Estimate(pos []grid.Cell) int {
	best := 0
	for i, c := range pos {
		d := h.dist[i].at(c)
		if d == Inf {
			return Inf
		}
		if d > best {
			best = d
		}
	}
	return best
}

// mapDigest fingerprints a map and goal set so repeated runs against
// the same instance can share a cached H2.
func mapDigest(m *TaxiMap, goals []grid.Cell) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d", m.Bounds.Rows, m.Bounds.Cols)
	for r := 0; r < m.Bounds.Rows; r++ {
		for c := 0; c < m.Bounds.Cols; c++ {
			fmt.Fprint(h, m.Color(grid.Cell{Row: r, Col: c}))
		}
	}
	for _, g := range goals {
		fmt.Fprintf(h, "|%d,%d", g.Row, g.Col)
	}
	return fmt.Sprintf("h2-%x.cache", h.Sum64())
}

// LoadOrComputeH2 retrieves a previously cached H2 for this exact map
// and goal set, recomputing and storing it on a cache miss. This is the
// only consumer of pkg/util's msgpack/flate object cache (adapted from
// the ambient stack's binary caching pattern) in the taxiing planner.
func LoadOrComputeH2(m *TaxiMap, goals []grid.Cell) *H2 {
	key := mapDigest(m, goals)
	var dists []distanceGrid
	if _, err := util.CacheRetrieveObject(key, &dists); err == nil && len(dists) == len(goals) {
		return &H2{dist: dists}
	}

	h := NewH2(m, goals)
	_ = util.CacheStoreObject(key, h.dist)
	return h
}
