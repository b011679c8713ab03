package padmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padgrid/errs"
	"padgrid/grid"
	"padgrid/layout"
	"padgrid/theory"
)

func TestBuildComplete(t *testing.T) {
	reg := layout.Builtin()
	for _, name := range reg.NoteLayouts() {
		for _, mode := range reg.ButtonModes() {
			maps, err := Build(reg, theory.DefaultKey(), name, mode)
			require.NoError(t, err, "%s/%s", name, mode)
			for _, role := range []grid.Role{grid.Top, grid.Bottom} {
				m := maps.For(role)
				assert.Len(t, m, grid.PadCount)
				assert.Equal(t, grid.NativeNotes(), m.Notes())
				for note, p := range m {
					assert.Equal(t, note, p.Native)
					assert.Equal(t, role, p.Grid.Role())
				}
			}
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	reg := layout.Builtin()
	a, err := Build(reg, theory.DefaultKey(), layout.HangFull, layout.Performance)
	require.NoError(t, err)
	b, err := Build(reg, theory.DefaultKey(), layout.HangFull, layout.Performance)
	require.NoError(t, err)
	for note, p := range a.Top {
		assert.Equal(t, p.Out, b.Top[note].Out)
		assert.Equal(t, p.Grid, b.Top[note].Grid)
	}
}

func TestBuildMiddleC(t *testing.T) {
	reg := layout.NewRegistry(layout.Performance, "c5")
	rows := make([][]layout.NoteAssignment, grid.Rows)
	for i := range rows {
		rows[i] = make([]layout.NoteAssignment, grid.Cols)
		for c := range rows[i] {
			rows[i][c] = layout.NoteAssignment{Degree: 1, Octave: 3}
		}
	}
	rows[0][0] = layout.NoteAssignment{Degree: 1, Octave: 5}
	require.NoError(t, reg.RegisterNotes("c5", rows))
	require.NoError(t, reg.RegisterButtons(layout.Performance, [][]layout.Button{
		make([]layout.Button, 8), make([]layout.Button, 8), make([]layout.Button, 8), make([]layout.Button, 8),
	}))

	maps, err := Build(reg, theory.DefaultKey(), "", "")
	require.NoError(t, err)
	p, err := maps.Top.Lookup(64)
	require.NoError(t, err)
	assert.Equal(t, uint8(60), p.Out)
	assert.Equal(t, grid.Coord{Row: 0, Col: 0}, p.Grid)
}

func TestBottomPadsUseLowerRows(t *testing.T) {
	reg := layout.Builtin()
	maps, err := Build(reg, theory.DefaultKey(), layout.Lead, layout.Performance)
	require.NoError(t, err)

	p, err := maps.Bottom.Lookup(79)
	require.NoError(t, err)
	assert.Equal(t, grid.Coord{Row: 2, Col: 0}, p.Grid)
	assert.Equal(t, grid.Coord{Row: 0, Col: 0}, p.Local())
	// lead (2,0) is degree 1 octave 3
	assert.Equal(t, uint8(36), p.Out)
}

func TestBuildRejectsUnknownNames(t *testing.T) {
	reg := layout.Builtin()
	_, err := Build(reg, theory.DefaultKey(), "missing", layout.Performance)
	assert.ErrorIs(t, err, layout.ErrUnknownLayout)
	_, err = Build(reg, theory.DefaultKey(), layout.Lead, "missing")
	assert.ErrorIs(t, err, layout.ErrUnknownLayout)
	_, err = Build(reg, theory.Key{Tonic: 13, Mode: 1}, layout.Lead, layout.Performance)
	assert.ErrorIs(t, err, theory.ErrInvalidKey)
}

func TestLookupUnmapped(t *testing.T) {
	maps, err := Build(layout.Builtin(), theory.DefaultKey(), "", "")
	require.NoError(t, err)
	_, err = maps.Top.Lookup(36)
	assert.ErrorIs(t, err, grid.ErrUnmappedNote)
}

func TestPressedAndReset(t *testing.T) {
	maps, err := Build(layout.Builtin(), theory.DefaultKey(), "", "")
	require.NoError(t, err)
	p := maps.Top[71]
	p.SetPressed(true)
	assert.True(t, p.Pressed())
	maps.Top.Reset()
	assert.False(t, p.Pressed())
}

func TestBuildRejectsNotesAbove127(t *testing.T) {
	reg := layout.Builtin()
	rows := make([][]layout.NoteAssignment, grid.Rows)
	for r := range rows {
		rows[r] = make([]layout.NoteAssignment, grid.Cols)
		for c := range rows[r] {
			rows[r][c] = layout.NoteAssignment{Degree: 1, Octave: 11}
		}
	}
	require.NoError(t, reg.RegisterNotes("high", rows))

	_, err := Build(reg, theory.DefaultKey(), "high", layout.Performance)
	assert.ErrorIs(t, err, ErrNoteRange)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}
