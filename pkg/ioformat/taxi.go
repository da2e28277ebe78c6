// pkg/ioformat/taxi.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/taxi"
	"github.com/liangjizhu/heuristica/pkg/util"
)

// ParseTaxiInput reads the taxiing planner's input format: an aircraft
// count, one start/goal line per aircraft, then the map's rows.
func ParseTaxiInput(r io.Reader, el *util.ErrorLogger) (*taxi.Instance, error) {
	defer el.CheckDepth(el.CurrentDepth())

	src := newLineSource(bufio.NewScanner(r))

	line, ok := src.next()
	if !ok {
		el.ErrorString("empty input")
		return nil, fmt.Errorf("ioformat: empty taxi input")
	}
	el.PushLine(src.line)
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		el.ErrorString("expected an aircraft count, got %q", line)
		n = 0
	}
	el.Pop()

	aircraft := make([]taxi.Aircraft, 0, n)
	for i := 0; i < n; i++ {
		line, ok = src.next()
		if !ok {
			el.ErrorString("missing start/goal line for aircraft %d", i)
			break
		}
		el.PushLine(src.line)
		cells := parseCells(line)
		if len(cells) != 2 {
			el.ErrorString("expected %q, got %q", "(r,c) (r,c)", line)
		} else {
			aircraft = append(aircraft, taxi.Aircraft{Start: cells[0], Goal: cells[1]})
		}
		el.Pop()
	}

	var rows [][]taxi.Color
	for {
		line, ok = src.next()
		if !ok {
			break
		}
		el.PushLine(src.line)
		var row []taxi.Color
		for _, tok := range strings.Split(line, ";") {
			c, err := taxi.ParseColor(strings.TrimSpace(tok))
			if err != nil {
				el.Error(err)
				continue
			}
			row = append(row, c)
		}
		rows = append(rows, row)
		el.Pop()
	}

	if el.HaveErrors() {
		return nil, fmt.Errorf("ioformat: malformed taxi input")
	}

	m, err := taxi.NewTaxiMap(rows)
	if err != nil {
		el.Error(err)
		return nil, fmt.Errorf("ioformat: malformed taxi input")
	}
	inst, err := taxi.NewInstance(m, aircraft)
	if err != nil {
		el.Error(err)
		return nil, fmt.Errorf("ioformat: malformed taxi input")
	}
	return inst, nil
}

// WritePlanFile writes the plan file format: one line per aircraft,
// alternating position and transition glyph, starting from its initial
// position.
func WritePlanFile(w io.Writer, plan [][]grid.Cell) error {
	bw := bufio.NewWriter(w)
	for _, traj := range plan {
		if len(traj) == 0 {
			fmt.Fprintln(bw)
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "(%d,%d)", traj[0].Row, traj[0].Col)
		for t := 1; t < len(traj); t++ {
			dir := taxi.DirectionOf(traj[t-1], traj[t])
			fmt.Fprintf(&sb, " %s (%d,%d)", dir.Glyph(), traj[t].Row, traj[t].Col)
		}
		fmt.Fprintln(bw, sb.String())
	}
	return bw.Flush()
}

// WriteStatsFile writes the search statistics file.
func WriteStatsFile(w io.Writer, res taxi.Result) error {
	_, err := fmt.Fprintf(w, "Tiempo total: %ds\nMakespan: %d\nh inicial: %d\nNodos expandidos: %d\n",
		int(res.WallTime.Seconds()), res.Makespan, res.H0, res.Expanded)
	return err
}
