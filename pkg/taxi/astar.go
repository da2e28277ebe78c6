// pkg/taxi/astar.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import (
	"container/heap"
	"time"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/util"
)

// Result is the outcome of one A* search. A nil Plan means there is no
// plan, not an error: either the heuristic rated the start state
// unreachable (the search does not run) or the frontier emptied before
// the goal was reached.
type Result struct {
	Plan     [][]grid.Cell // Plan[i] is aircraft i's trajectory, length Makespan+1
	Makespan int
	H0       int
	Expanded int
	WallTime time.Duration
}

type pqItem struct {
	state JointState
	f, g  int
	index int
}

// priorityQueue is a container/heap min-heap keyed on (f, g), with ties
// on f broken in favour of deeper g to reduce expansions.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].g > pq[j].g
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Search runs joint-state A* over inst using h. Stale
// queue entries (a state pushed more than once before its best g is
// known) are discarded lazily via the closed set on pop, the standard
// approach for a consistent heuristic on a uniform-cost graph.
func Search(inst *Instance, h Heuristic) Result {
	started := time.Now()

	n := len(inst.Aircraft)
	startPos := util.MapSlice(inst.Aircraft, func(ac Aircraft) grid.Cell { return ac.Start })
	goalPos := util.MapSlice(inst.Aircraft, func(ac Aircraft) grid.Cell { return ac.Goal })
	startState := encodeState(startPos)
	goalState := encodeState(goalPos)
	h0 := h.Estimate(startPos)

	if h0 >= Inf {
		return Result{WallTime: time.Since(started)}
	}

	gScore := map[JointState]int{startState: 0}
	parent := map[JointState]JointState{}
	hasParent := map[JointState]bool{}
	closed := map[JointState]bool{}

	pq := &priorityQueue{{state: startState, f: h0, g: 0}}
	heap.Init(pq)

	expanded := 0
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if closed[item.state] {
			continue
		}
		closed[item.state] = true
		expanded++

		if item.state == goalState {
			return Result{
				Plan:     reconstructPlan(item.state, parent, hasParent, n),
				Makespan: item.g,
				H0:       h0,
				Expanded: expanded,
				WallTime: time.Since(started),
			}
		}

		cur := item.state.Positions()
		for _, succ := range inst.successors(cur) {
			succState := encodeState(succ)
			if closed[succState] {
				continue
			}
			g := item.g + 1
			if old, ok := gScore[succState]; ok && old <= g {
				continue
			}
			gScore[succState] = g
			parent[succState] = item.state
			hasParent[succState] = true
			heap.Push(pq, &pqItem{state: succState, f: g + h.Estimate(succ), g: g})
		}
	}

	return Result{H0: h0, Expanded: expanded, WallTime: time.Since(started)}
}

func reconstructPlan(goal JointState, parent map[JointState]JointState, hasParent map[JointState]bool, n int) [][]grid.Cell {
	path := []JointState{goal}
	for cur := goal; hasParent[cur]; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	plan := make([][]grid.Cell, n)
	for i := range plan {
		plan[i] = make([]grid.Cell, len(path))
	}
	for t, s := range path {
		for i, c := range s.Positions() {
			plan[i][t] = c
		}
	}
	return plan
}
