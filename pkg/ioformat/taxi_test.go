// pkg/ioformat/taxi_test.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ioformat

import (
	"strings"
	"testing"
	"time"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/taxi"
	"github.com/liangjizhu/heuristica/pkg/util"
)

const tinyTaxiInput = `
1
(0,0) (0,2)
B;A;B
`

func TestParseTaxiInput(t *testing.T) {
	var el util.ErrorLogger
	inst, err := ParseTaxiInput(strings.NewReader(tinyTaxiInput), &el)
	if err != nil {
		t.Fatalf("ParseTaxiInput failed: %v (%s)", err, el.String())
	}
	if len(inst.Aircraft) != 1 {
		t.Fatalf("got %d aircraft, want 1", len(inst.Aircraft))
	}
	ac := inst.Aircraft[0]
	if ac.Start != (grid.Cell{Row: 0, Col: 0}) || ac.Goal != (grid.Cell{Row: 0, Col: 2}) {
		t.Errorf("aircraft = %+v, want start (0,0) goal (0,2)", ac)
	}
	if inst.Map.Bounds != (grid.Bounds{Rows: 1, Cols: 3}) {
		t.Errorf("Bounds = %v, want 1x3", inst.Map.Bounds)
	}
	if inst.Map.Color(grid.Cell{Row: 0, Col: 1}) != taxi.ColorA {
		t.Errorf("(0,1) color = %v, want A", inst.Map.Color(grid.Cell{Row: 0, Col: 1}))
	}
}

func TestParseTaxiInputBadCount(t *testing.T) {
	var el util.ErrorLogger
	_, err := ParseTaxiInput(strings.NewReader("not-a-number\nB\n"), &el)
	if err == nil {
		t.Fatal("expected an error for a non-numeric aircraft count")
	}
}

func TestParseTaxiInputBadColor(t *testing.T) {
	var el util.ErrorLogger
	_, err := ParseTaxiInput(strings.NewReader("0\nB;X;B\n"), &el)
	if err == nil {
		t.Fatal("expected an error for an unknown terrain color")
	}
}

func TestParseTaxiInputBlockedStart(t *testing.T) {
	in := "1\n(0,1) (0,0)\nB;G;B\n"
	var el util.ErrorLogger
	_, err := ParseTaxiInput(strings.NewReader(in), &el)
	if err == nil {
		t.Fatal("expected an error for a blocked start cell")
	}
}

func TestWritePlanFile(t *testing.T) {
	plan := [][]grid.Cell{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	}
	var buf strings.Builder
	if err := WritePlanFile(&buf, plan); err != nil {
		t.Fatal(err)
	}
	want := "(0,0) → (0,1) w (0,1) → (0,2)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWritePlanFileSingleState(t *testing.T) {
	plan := [][]grid.Cell{{{Row: 1, Col: 1}}}
	var buf strings.Builder
	if err := WritePlanFile(&buf, plan); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "(1,1)\n" {
		t.Errorf("got %q, want %q", buf.String(), "(1,1)\n")
	}
}

func TestWriteStatsFile(t *testing.T) {
	res := taxi.Result{Makespan: 3, H0: 2, Expanded: 17, WallTime: 2500 * time.Millisecond}
	var buf strings.Builder
	if err := WriteStatsFile(&buf, res); err != nil {
		t.Fatal(err)
	}
	want := "Tiempo total: 2s\nMakespan: 3\nh inicial: 2\nNodos expandidos: 17\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
