// pkg/schedule/constraint.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package schedule

import "github.com/liangjizhu/heuristica/pkg/grid"

// ConstraintKind tags one of the six constraint families.
// Constraints are represented as explicit tagged variants with named
// parameters rather than closures capturing a mutating loop index:
// each Constraint value fully determines what it checks and needs no
// surrounding iteration state to be re-evaluated later.
type ConstraintKind int

const (
	// ConstraintCapacity: at most 2 aircraft per workshop cell in a slot.
	ConstraintCapacity ConstraintKind = iota
	// ConstraintJumboUnique: at most 1 Jumbo per workshop cell in a slot.
	ConstraintJumboUnique
	// ConstraintNoSuffocate: no occupied cell may have every in-grid
	// neighbour also occupied, in a slot.
	ConstraintNoSuffocate
	// ConstraintJumboSeparate: any two Jumbos in a slot are more than
	// 1 cell apart under Chebyshev distance.
	ConstraintJumboSeparate
	// ConstraintTaskOrder: one aircraft's full temporal sequence
	// performs its pending tasks in the required order and parks once
	// done.
	ConstraintTaskOrder
	// ConstraintAdjTransition: one aircraft's consecutive slot pair is
	// a legal transition (stay, workshop<->workshop, or
	// workshop<->parking).
	ConstraintAdjTransition
)

// Constraint is a single constraint instance: its kind plus the
// parameters (slot index and/or aircraft index) that scope it. Slot and
// AircraftIdx are -1 when not applicable to Kind.
type Constraint struct {
	Kind        ConstraintKind
	Slot        int
	AircraftIdx int
}

// Constraints returns every constraint instance for inst: one
// per-slot constraint of each n-ary kind for each of the F slots, one
// ConstraintTaskOrder per aircraft, and one ConstraintAdjTransition per
// (aircraft, consecutive-slot-pair).
func (inst *Instance) Constraints() []Constraint {
	var cs []Constraint
	for t := 0; t < inst.Slots; t++ {
		cs = append(cs,
			Constraint{Kind: ConstraintCapacity, Slot: t, AircraftIdx: -1},
			Constraint{Kind: ConstraintJumboUnique, Slot: t, AircraftIdx: -1},
			Constraint{Kind: ConstraintNoSuffocate, Slot: t, AircraftIdx: -1},
			Constraint{Kind: ConstraintJumboSeparate, Slot: t, AircraftIdx: -1},
		)
	}
	for ai := range inst.Aircraft {
		cs = append(cs, Constraint{Kind: ConstraintTaskOrder, Slot: -1, AircraftIdx: ai})
		for t := 0; t < inst.Slots-1; t++ {
			cs = append(cs, Constraint{Kind: ConstraintAdjTransition, Slot: t, AircraftIdx: ai})
		}
	}
	return cs
}

// Holds reports whether c is satisfied by the (complete) assignment a.
func (c Constraint) Holds(inst *Instance, a Assignment) bool {
	switch c.Kind {
	case ConstraintCapacity:
		return capacityOK(inst, a, c.Slot)
	case ConstraintJumboUnique:
		return jumboUniqueOK(inst, a, c.Slot)
	case ConstraintNoSuffocate:
		return noSuffocationOK(inst, a, c.Slot)
	case ConstraintJumboSeparate:
		return jumboSeparationOK(inst, a, c.Slot)
	case ConstraintTaskOrder:
		return taskOrderOK(inst, a, c.AircraftIdx)
	case ConstraintAdjTransition:
		prev := a.At(c.AircraftIdx, c.Slot, inst.Slots)
		next := a.At(c.AircraftIdx, c.Slot+1, inst.Slots)
		return adjTransitionOK(inst, prev, next)
	default:
		panic("schedule: unknown ConstraintKind")
	}
}

// Violations returns every constraint in inst.Constraints() that a (a
// complete assignment) violates. An empty result means a is a sound
// solution.
func (inst *Instance) Violations(a Assignment) []Constraint {
	var bad []Constraint
	for _, c := range inst.Constraints() {
		if !c.Holds(inst, a) {
			bad = append(bad, c)
		}
	}
	return bad
}

///////////////////////////////////////////////////////////////////////////
// per-slot n-ary constraints

// occupant is one aircraft's position in a given slot, along with its
// index so the Jumbo-scoped checks can look up the aircraft's kind.
type occupant struct {
	aircraftIdx int
	cell        grid.Cell
}

// slotOccupants returns the slot-t positions of aircraft 0..upTo-1.
// During backtracking, a is a partial assignment and upTo is the count
// of aircraft whose slot-t variable has been set; complete-assignment
// checks pass upTo = len(inst.Aircraft).
func slotOccupants(inst *Instance, a Assignment, t int, upTo int) []occupant {
	var occ []occupant
	for ai := 0; ai < upTo; ai++ {
		occ = append(occ, occupant{aircraftIdx: ai, cell: a.At(ai, t, inst.Slots)})
	}
	return occ
}

func capacityOK(inst *Instance, a Assignment, t int) bool {
	return capacityOKPartial(inst, slotOccupants(inst, a, t, len(inst.Aircraft)))
}

func capacityOKPartial(inst *Instance, occ []occupant) bool {
	counts := map[grid.Cell]int{}
	for _, o := range occ {
		if k, ok := inst.Domain.Kind(o.cell); ok && k.IsWorkshop() {
			counts[o.cell]++
			if counts[o.cell] > 2 {
				return false
			}
		}
	}
	return true
}

func jumboUniqueOK(inst *Instance, a Assignment, t int) bool {
	return jumboUniqueOKPartial(inst, slotOccupants(inst, a, t, len(inst.Aircraft)))
}

func jumboUniqueOKPartial(inst *Instance, occ []occupant) bool {
	counts := map[grid.Cell]int{}
	for _, o := range occ {
		if inst.Aircraft[o.aircraftIdx].Kind != JMB {
			continue
		}
		if k, ok := inst.Domain.Kind(o.cell); ok && k.IsWorkshop() {
			counts[o.cell]++
			if counts[o.cell] > 1 {
				return false
			}
		}
	}
	return true
}

func jumboSeparationOK(inst *Instance, a Assignment, t int) bool {
	return jumboSeparationOKPartial(inst, slotOccupants(inst, a, t, len(inst.Aircraft)))
}

func jumboSeparationOKPartial(inst *Instance, occ []occupant) bool {
	var jumbos []grid.Cell
	for _, o := range occ {
		if inst.Aircraft[o.aircraftIdx].Kind == JMB {
			jumbos = append(jumbos, o.cell)
		}
	}
	for i := range jumbos {
		for j := i + 1; j < len(jumbos); j++ {
			if jumbos[i].ChebyshevDistance(jumbos[j]) <= 1 {
				return false
			}
		}
	}
	return true
}

// noSuffocationOK checks maneuverability adjacency: an occupied cell c is
// suffocated if every in-grid 4-neighbour of c is itself occupied in
// the same slot. This is monotonic in the set of occupied cells (adding
// more occupants can only turn an unsuffocated cell suffocated, never
// the reverse), so it is sound to evaluate it against a growing prefix
// of occupants during incremental search, not only against the full
// slot.
func noSuffocationOK(inst *Instance, a Assignment, t int) bool {
	return noSuffocationOKPartial(inst, slotOccupants(inst, a, t, len(inst.Aircraft)))
}

func noSuffocationOKPartial(inst *Instance, occ []occupant) bool {
	occupied := make(map[grid.Cell]bool, len(occ))
	for _, o := range occ {
		occupied[o.cell] = true
	}
	for c := range occupied {
		neighbours := inst.Bounds.Neighbours4(c)
		if len(neighbours) == 0 {
			// A cell with no in-grid neighbour at all is vacuously
			// suffocated: it has no possible escape cell.
			return false
		}
		allOccupied := true
		for _, n := range neighbours {
			if !occupied[n] {
				allOccupied = false
				break
			}
		}
		if allOccupied {
			return false
		}
	}
	return true
}

///////////////////////////////////////////////////////////////////////////
// per-aircraft temporal constraints

// taskOrderOK checks task completion with ordering
// for one aircraft's full slot sequence.
func taskOrderOK(inst *Instance, a Assignment, aircraftIdx int) bool {
	ac := inst.Aircraft[aircraftIdx]
	r1, r2 := ac.T1, ac.T2
	for t := 0; t < inst.Slots; t++ {
		cell := a.At(aircraftIdx, t, inst.Slots)
		k, ok := inst.Domain.Kind(cell)
		if !ok {
			return false
		}
		if !taskOrderStep(ac.StrictOrder, k, &r1, &r2) {
			return false
		}
	}
	return r1 == 0 && r2 == 0
}

// taskOrderStep advances the per-aircraft task counters by one slot,
// given the kind of cell occupied in that slot. It reports whether the
// step is legal. Once both counters reach zero the aircraft has no
// pending task and every later slot must be parking, regardless of
// strictOrder; no separate per-slot constraint restates this.
func taskOrderStep(strictOrder bool, k PositionKind, r1, r2 *int) bool {
	if *r1 == 0 && *r2 == 0 {
		return k == PRK
	}

	if strictOrder {
		switch {
		case *r2 > 0:
			if k != SPC {
				return false
			}
			*r2--
		case *r1 > 0:
			if !k.IsWorkshop() {
				return false
			}
			*r1--
		}
		return true
	}

	switch {
	case *r1 > 0 && k == STD:
		*r1--
	case *r2 > 0 && k == SPC:
		*r2--
	case *r1 > 0 && k == SPC:
		// A specialist workshop may absorb a type-1 task when no
		// type-2 tasks remain.
		*r1--
	case k.IsWorkshop():
		// A workshop visit that matches no pending counter is a legal
		// no-op: only visiting a non-workshop cell while tasks remain
		// pending is forbidden.
	default:
		return false
	}
	return true
}

// adjTransitionOK checks one consecutive slot pair: the aircraft must
// either hold the same cell, move between two workshop cells, or move
// between a workshop cell and a parking cell. A move between two
// distinct parking cells is illegal; the aircraft has to pass through
// a workshop on the way.
func adjTransitionOK(inst *Instance, prev, next grid.Cell) bool {
	if prev == next {
		return true
	}
	pk, pok := inst.Domain.Kind(prev)
	nk, nok := inst.Domain.Kind(next)
	if !pok || !nok {
		return false
	}
	if pk.IsWorkshop() && nk.IsWorkshop() {
		return true
	}
	if pk.IsWorkshop() && nk == PRK {
		return true
	}
	if pk == PRK && nk.IsWorkshop() {
		return true
	}
	return false
}
