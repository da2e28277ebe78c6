// pkg/schedule/enumerate.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package schedule

import "github.com/liangjizhu/heuristica/pkg/grid"

// unset is the sentinel value stored in a partial Assignment for
// variables not yet decided by the backtracking search.
var unset = grid.Cell{Row: -1, Col: -1}

// Enumerate returns every complete Assignment satisfying inst's
// constraints, in the order the backtracking search discovers them.
// Variables are tried in aircraft-major, slot-ascending order (the
// storage order of Assignment itself) and values are tried in
// inst.Domain.Cells order (STD, then SPC, then PRK). A nil result means
// the instance is infeasible; it is never an error on its own.
func Enumerate(inst *Instance) []Assignment {
	n := inst.NumVariables()
	asg := make(Assignment, n)
	for i := range asg {
		asg[i] = unset
	}

	e := &enumerator{inst: inst}
	e.backtrack(asg, 0, 0, 0)
	return e.solutions
}

type enumerator struct {
	inst      *Instance
	solutions []Assignment
}

// backtrack assigns a value to the variable at flat index pos, then
// recurses. r1, r2 are the task-order counters carried over from the
// previous slot of the SAME aircraft; they are meaningless (and
// ignored) at slot 0 of every aircraft, where they are reset from the
// aircraft's own T1/T2.
func (e *enumerator) backtrack(asg Assignment, pos, r1, r2 int) {
	inst := e.inst
	F := inst.Slots

	if pos == len(asg) {
		e.solutions = append(e.solutions, asg.Clone())
		return
	}

	aircraftIdx := pos / F
	slot := pos % F
	ac := inst.Aircraft[aircraftIdx]

	if slot == 0 {
		r1, r2 = ac.T1, ac.T2
	}

	for _, cell := range inst.Domain.Cells {
		k, _ := inst.Domain.Kind(cell)

		nr1, nr2 := r1, r2
		if !taskOrderStep(ac.StrictOrder, k, &nr1, &nr2) {
			continue
		}
		if slot == F-1 && (nr1 != 0 || nr2 != 0) {
			continue
		}
		if slot > 0 && !adjTransitionOK(inst, asg.At(aircraftIdx, slot-1, F), cell) {
			continue
		}

		asg[pos] = cell
		occ := slotOccupants(inst, asg, slot, aircraftIdx+1)
		if capacityOKPartial(inst, occ) &&
			jumboUniqueOKPartial(inst, occ) &&
			jumboSeparationOKPartial(inst, occ) &&
			noSuffocationOKPartial(inst, occ) {
			e.backtrack(asg, pos+1, nr1, nr2)
		}
	}
	asg[pos] = unset
}
