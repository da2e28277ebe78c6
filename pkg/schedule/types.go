// pkg/schedule/types.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package schedule implements the maintenance scheduler: a constraint
// satisfaction problem that assigns every aircraft a workshop or parking
// cell for each time slot of a maintenance day, and enumerates every
// assignment that satisfies the workshop-type, capacity, adjacency,
// ordering, and movement constraints.
package schedule

import (
	"fmt"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/util"
)

// PositionKind classifies a cell in the position domain.
type PositionKind int

const (
	STD PositionKind = iota // standard workshop
	SPC                     // specialist workshop
	PRK                     // parking
)

func (k PositionKind) String() string {
	switch k {
	case STD:
		return "STD"
	case SPC:
		return "SPC"
	case PRK:
		return "PRK"
	default:
		return fmt.Sprintf("PositionKind(%d)", int(k))
	}
}

// IsWorkshop reports whether k is a workshop kind (STD or SPC).
func (k PositionKind) IsWorkshop() bool {
	return k == STD || k == SPC
}

// AircraftKind distinguishes Jumbos, which are subject to stricter
// spatial constraints, from standard aircraft.
type AircraftKind int

const (
	STDAircraft AircraftKind = iota
	JMB
)

func (k AircraftKind) String() string {
	if k == JMB {
		return "JMB"
	}
	return "STD"
}

// Aircraft is an immutable record of one aircraft's maintenance
// requirements for the day.
type Aircraft struct {
	ID          string
	Kind        AircraftKind
	StrictOrder bool
	T1, T2      int // pending type-1 / type-2 task counts
}

// Domain is the shared position domain: the union of the standard
// workshop, specialist workshop, and parking cell sets. Every variable
// ranges over the same Domain value; it is built once per instance and
// referenced everywhere, never copied.
type Domain struct {
	// Cells lists every position in D in value order: all STD cells,
	// then all SPC cells, then all PRK cells. The enumerator assigns
	// values to variables in this order.
	Cells []grid.Cell
	kind  map[grid.Cell]PositionKind
}

// NewDomain builds the position domain from the three disjoint sets of
// cells read from the input. A cell listed in more than one set is an
// input error, reported via err; the three kinds must be pairwise
// disjoint by construction.
func NewDomain(std, spc, prk []grid.Cell) (*Domain, error) {
	d := &Domain{
		kind: make(map[grid.Cell]PositionKind, len(std)+len(spc)+len(prk)),
	}
	add := func(cells []grid.Cell, k PositionKind) error {
		for _, c := range cells {
			if _, dup := d.kind[c]; dup {
				return fmt.Errorf("cell %v assigned to more than one position kind", c)
			}
			d.kind[c] = k
			d.Cells = append(d.Cells, c)
		}
		return nil
	}
	if err := add(std, STD); err != nil {
		return nil, err
	}
	if err := add(spc, SPC); err != nil {
		return nil, err
	}
	if err := add(prk, PRK); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the PositionKind of c and whether c belongs to the
// domain at all.
func (d *Domain) Kind(c grid.Cell) (PositionKind, bool) {
	k, ok := d.kind[c]
	return k, ok
}

// Instance bundles everything needed to run the scheduler: the grid the
// positions live on (used only for the maneuverability/suffocation
// constraint's neighbour lookups), the shared position domain, the
// aircraft roster, and the slot count F.
type Instance struct {
	Bounds   grid.Bounds
	Domain   *Domain
	Aircraft []Aircraft
	Slots    int // F
}

// NumVariables returns |aircraft| x F, the number of CSP variables.
func (inst *Instance) NumVariables() int {
	return len(inst.Aircraft) * inst.Slots
}

// varIndex returns the flat index of the (aircraftIdx, slot) variable
// in an Assignment. The storage layout is the declared variable order:
// aircraft-major, slots ascending.
func varIndex(aircraftIdx, slot, F int) int {
	return aircraftIdx*F + slot
}

// Assignment is a total function from variables to positions, stored
// flat and indexed by varIndex. A solution is an Assignment that
// satisfies every constraint in Instance.Constraints (Instance.Violations
// returns none for it).
type Assignment []grid.Cell

// At returns the position assigned to aircraft aircraftIdx at the given
// slot.
func (a Assignment) At(aircraftIdx, slot, F int) grid.Cell {
	return a[varIndex(aircraftIdx, slot, F)]
}

// Clone returns an independent copy of a.
func (a Assignment) Clone() Assignment {
	return Assignment(util.DuplicateSlice([]grid.Cell(a)))
}
