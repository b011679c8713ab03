// Package padmap resolves every pad of both controllers into a Pad: the
// native note it reports, where it sits on the grid, the note it plays and
// what its button does.
package padmap

import (
	"fmt"
	"sort"
	"sync/atomic"

	"padgrid/errs"
	"padgrid/grid"
	"padgrid/layout"
	"padgrid/theory"
)

// ErrNoteRange reports a layout that resolves a pad outside MIDI note range.
var ErrNoteRange = fmt.Errorf("%w: output note out of range", errs.ErrConfiguration)

// Pad is fixed once built except for its pressed flag, which input
// callbacks flip.
type Pad struct {
	Native uint8
	Grid   grid.Coord
	Out    uint8
	Degree int
	Octave int
	Button layout.Button

	pressed atomic.Bool
}

// Local is the pad's position on its own 2x8 controller.
func (p *Pad) Local() grid.Coord {
	return p.Grid.Local()
}

func (p *Pad) Pressed() bool {
	return p.pressed.Load()
}

func (p *Pad) SetPressed(v bool) {
	p.pressed.Store(v)
}

func (p *Pad) String() string {
	return fmt.Sprintf("pad %d %s -> %s", p.Native, p.Grid, theory.NoteName(int(p.Out)))
}

// Map finds pads by the native note a controller reports.
type Map map[uint8]*Pad

// Lookup returns the pad for a native note.
func (m Map) Lookup(note uint8) (*Pad, error) {
	p, ok := m[note]
	if !ok {
		return nil, fmt.Errorf("%w: %d", grid.ErrUnmappedNote, note)
	}
	return p, nil
}

// Notes returns the map's native notes, ascending.
func (m Map) Notes() []uint8 {
	out := make([]uint8, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reset releases every pad.
func (m Map) Reset() {
	for _, p := range m {
		p.SetPressed(false)
	}
}

// Maps holds one map per grid half.
type Maps struct {
	Top    Map
	Bottom Map
}

// For returns the map of a role.
func (m Maps) For(role grid.Role) Map {
	if role == grid.Top {
		return m.Top
	}
	return m.Bottom
}

// Build resolves all 32 pads for a key, note layout and button mode. It
// either returns two complete 16-pad maps or an error.
func Build(reg *layout.Registry, key theory.Key, noteLayout, buttonMode string) (Maps, error) {
	if err := key.Validate(); err != nil {
		return Maps{}, err
	}
	var maps Maps
	for _, role := range []grid.Role{grid.Top, grid.Bottom} {
		m, err := buildHalf(reg, key, role, noteLayout, buttonMode)
		if err != nil {
			return Maps{}, fmt.Errorf("build %s map: %w", role, err)
		}
		if role == grid.Top {
			maps.Top = m
		} else {
			maps.Bottom = m
		}
	}
	return maps, nil
}

func buildHalf(reg *layout.Registry, key theory.Key, role grid.Role, noteLayout, buttonMode string) (Map, error) {
	m := make(Map, grid.PadCount)
	for _, c := range grid.Half(role) {
		local := c.Local()
		native, err := grid.HalfGrid2Note(role, local.Row, local.Col)
		if err != nil {
			return nil, err
		}
		assign, err := reg.Note(c.Row, c.Col, noteLayout)
		if err != nil {
			return nil, err
		}
		out, err := theory.NoteByDegree(key, assign.Degree, assign.Octave)
		if err != nil {
			return nil, err
		}
		if out < 0 || out > 127 {
			return nil, fmt.Errorf("%w: %s resolves to %d", ErrNoteRange, c, out)
		}
		button, err := reg.Button(c.Row, c.Col, buttonMode)
		if err != nil {
			return nil, err
		}
		m[native] = &Pad{
			Native: native,
			Grid:   c,
			Out:    uint8(out),
			Degree: assign.Degree,
			Octave: assign.Octave,
			Button: button,
		}
	}
	if len(m) != grid.PadCount {
		return nil, fmt.Errorf("%s map has %d pads, want %d", role, len(m), grid.PadCount)
	}
	return m, nil
}
