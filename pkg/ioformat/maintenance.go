// pkg/ioformat/maintenance.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/schedule"
	"github.com/liangjizhu/heuristica/pkg/util"
)

var aircraftLineRe = regexp.MustCompile(`^(.+)-(JMB|STD)-(T|F)-(\d+)-(\d+)$`)

// ParseMaintenanceInput reads the maintenance scheduler's input format.
// Malformed lines are accumulated in el rather than aborting on the
// first one, so a single run reports every problem in the file.
func ParseMaintenanceInput(r io.Reader, el *util.ErrorLogger) (*schedule.Instance, error) {
	defer el.CheckDepth(el.CurrentDepth())

	src := newLineSource(bufio.NewScanner(r))
	inst := &schedule.Instance{}
	var std, spc, prk []grid.Cell

	line, ok := src.next()
	if !ok {
		el.ErrorString("empty input")
		return nil, fmt.Errorf("ioformat: empty maintenance input")
	}
	el.PushLine(src.line)
	if _, err := fmt.Sscanf(line, "Franjas: %d", &inst.Slots); err != nil {
		el.ErrorString("expected %q, got %q", "Franjas: <F>", line)
	} else if inst.Slots < 0 {
		el.Error(schedule.ErrInvalidSlotCount)
	}
	el.Pop()

	line, ok = src.next()
	if !ok {
		el.ErrorString("missing bounds line")
		return nil, fmt.Errorf("ioformat: truncated maintenance input")
	}
	el.PushLine(src.line)
	if _, err := fmt.Sscanf(line, "%dx%d", &inst.Bounds.Rows, &inst.Bounds.Cols); err != nil {
		el.ErrorString("expected %q, got %q", "<R>x<C>", line)
	}
	el.Pop()

	sets := []struct {
		prefix string
		dst    *[]grid.Cell
	}{
		{"STD:", &std},
		{"SPC:", &spc},
		{"PRK:", &prk},
	}
	for _, set := range sets {
		line, ok = src.next()
		if !ok {
			el.ErrorString("missing %q line", set.prefix)
			continue
		}
		el.PushLine(src.line)
		if !strings.HasPrefix(line, set.prefix) {
			el.ErrorString("expected a line starting with %q, got %q", set.prefix, line)
		} else {
			*set.dst = parseCells(line[len(set.prefix):])
		}
		el.Pop()
	}

	el.Push("domain")
	if dom, err := schedule.NewDomain(std, spc, prk); err != nil {
		el.Error(err)
	} else if len(dom.Cells) == 0 {
		el.Error(schedule.ErrEmptyDomain)
	} else {
		inst.Domain = dom
	}
	el.Pop()

	seen := make(map[string]bool)
	for {
		line, ok = src.next()
		if !ok {
			break
		}
		el.PushLine(src.line)
		ac, err := parseAircraftLine(line)
		switch {
		case err != nil:
			el.Error(err)
		case seen[ac.ID]:
			el.Error(fmt.Errorf("%w %q", schedule.ErrDuplicateAircraftID, ac.ID))
		default:
			seen[ac.ID] = true
			inst.Aircraft = append(inst.Aircraft, ac)
		}
		el.Pop()
	}

	if el.HaveErrors() {
		return nil, fmt.Errorf("ioformat: malformed maintenance input")
	}
	return inst, nil
}

func parseAircraftLine(line string) (schedule.Aircraft, error) {
	m := aircraftLineRe.FindStringSubmatch(line)
	if m == nil {
		return schedule.Aircraft{}, fmt.Errorf("expected %q, got %q", "<id>-<JMB|STD>-<T|F>-<t1>-<t2>", line)
	}
	kind := schedule.STDAircraft
	if m[2] == "JMB" {
		kind = schedule.JMB
	}
	t1, _ := strconv.Atoi(m[4])
	t2, _ := strconv.Atoi(m[5])
	return schedule.Aircraft{
		ID:          m[1],
		Kind:        kind,
		StrictOrder: m[3] == "T",
		T1:          t1,
		T2:          t2,
	}, nil
}

// WriteMaintenanceOutput writes the scheduler's CSV-like output: one
// aircraft row per solution, slots listed left-to-right.
func WriteMaintenanceOutput(w io.Writer, inst *schedule.Instance, solutions []schedule.Assignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "N. Sol: %d\n", len(solutions))
	for i, sol := range solutions {
		fmt.Fprintf(bw, "Solución %d:\n", i+1)
		for a, ac := range inst.Aircraft {
			fmt.Fprintf(bw, "%s-%s-%s-%d-%d: ", ac.ID, ac.Kind,
				util.Select(ac.StrictOrder, "T", "F"), ac.T1, ac.T2)

			cells := make([]string, inst.Slots)
			for slot := 0; slot < inst.Slots; slot++ {
				c := sol.At(a, slot, inst.Slots)
				k, _ := inst.Domain.Kind(c)
				cells[slot] = fmt.Sprintf("%s(%d,%d)", k, c.Row, c.Col)
			}
			fmt.Fprintln(bw, strings.Join(cells, ", "))
		}
	}
	return bw.Flush()
}
