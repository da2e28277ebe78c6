// pkg/visualize/player.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package visualize renders a computed taxiing plan as an animated
// terminal replay: the map's terrain colors and each aircraft's
// position are redrawn every tick, stepping forward on a timer or one
// tick at a time under manual control.
package visualize

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/taxi"
)

var terrainStyle = map[taxi.Color]tcell.Style{
	taxi.ColorB: tcell.StyleDefault,
	taxi.ColorA: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	taxi.ColorG: tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorGray),
}

var aircraftColors = []tcell.Color{
	tcell.ColorRed, tcell.ColorGreen, tcell.ColorBlue, tcell.ColorFuchsia,
	tcell.ColorAqua, tcell.ColorOrange, tcell.ColorLime, tcell.ColorWhite,
}

// Player steps a taxi.Result's plan forward across a tcell screen, one
// joint tick at a time.
type Player struct {
	screen tcell.Screen
	inst   *taxi.Instance
	plan   [][]grid.Cell
	tick   int
	paused bool
	period time.Duration
}

// NewPlayer opens a tcell screen and prepares it to replay plan over
// inst's map. Run releases the screen when it returns.
func NewPlayer(inst *taxi.Instance, plan [][]grid.Cell) (*Player, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("visualize: failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("visualize: failed to initialize screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	return &Player{
		screen: screen,
		inst:   inst,
		plan:   plan,
		period: 400 * time.Millisecond,
	}, nil
}

// Makespan returns the number of ticks in the replayed plan.
func (p *Player) Makespan() int {
	if len(p.plan) == 0 {
		return 0
	}
	return len(p.plan[0]) - 1
}

// Run drives the replay loop until the user quits. Space toggles
// play/pause; n/N single-steps one tick while paused; q/Q/Escape
// quits; +/- adjust playback speed.
func (p *Player) Run() error {
	defer p.screen.Fini()

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.render()
	for {
		select {
		case <-ticker.C:
			if !p.paused {
				p.advance()
			}
		default:
			if p.screen.HasPendingEvent() {
				if !p.handleEvent(p.screen.PollEvent(), ticker) {
					return nil
				}
			}
		}
	}
}

func (p *Player) advance() {
	if p.tick < p.Makespan() {
		p.tick++
		p.render()
	}
}

func (p *Player) handleEvent(ev tcell.Event, ticker *time.Ticker) bool {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		if _, ok := ev.(*tcell.EventResize); ok {
			p.screen.Sync()
			p.render()
		}
		return true
	}

	switch keyEv.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyRune:
		switch keyEv.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			p.paused = !p.paused
		case 'n', 'N':
			p.advance()
		case '+', '=':
			p.period = max(50*time.Millisecond, p.period/2)
			ticker.Reset(p.period)
		case '-', '_':
			p.period = min(4*time.Second, p.period*2)
			ticker.Reset(p.period)
		}
	}
	return true
}

func (p *Player) render() {
	p.screen.Clear()

	m := p.inst.Map
	for r := 0; r < m.Bounds.Rows; r++ {
		for c := 0; c < m.Bounds.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			glyph := '.'
			if m.Color(cell) == taxi.ColorG {
				glyph = '#'
			}
			p.screen.SetContent(c*2, r, glyph, nil, terrainStyle[m.Color(cell)])
		}
	}

	for i, traj := range p.plan {
		if p.tick >= len(traj) {
			continue
		}
		cell := traj[p.tick]
		style := tcell.StyleDefault.Foreground(aircraftColors[i%len(aircraftColors)]).Bold(true)
		p.screen.SetContent(cell.Col*2, cell.Row, aircraftGlyph(i), nil, style)
	}

	status := fmt.Sprintf("tick %d/%d  [space] pause/play  [n] step  [+/-] speed  [q] quit", p.tick, p.Makespan())
	for i, ch := range status {
		p.screen.SetContent(i, m.Bounds.Rows+1, ch, nil, tcell.StyleDefault)
	}

	p.screen.Show()
}

func aircraftGlyph(i int) rune {
	if i < 10 {
		return rune('0' + i)
	}
	return rune('A' + i - 10)
}
