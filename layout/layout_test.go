package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padgrid/errs"
	"padgrid/grid"
	"padgrid/theory"
)

func TestBuiltinRegistered(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{HangFull, HangMirror, Lead}, r.NoteLayouts())
	assert.Len(t, r.ButtonModes(), 1+2*Pages)
	for _, role := range []grid.Role{grid.Top, grid.Bottom} {
		for _, mode := range SettingsModes(role) {
			assert.True(t, r.HasButtons(mode), mode)
		}
	}
}

func TestPerformanceIsAllNotes(t *testing.T) {
	r := Builtin()
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			b, err := r.Button(row, col, "")
			require.NoError(t, err)
			assert.Equal(t, OutNote, b.OnPress.Kind)
			assert.Equal(t, OutNote, b.OnRelease.Kind)
		}
	}
}

func TestSceneDigitColumns(t *testing.T) {
	r := Builtin()
	for row := 0; row < grid.Rows; row++ {
		b, err := r.Button(row, 7, "ts1")
		require.NoError(t, err)
		assert.Equal(t, Scene(row+1), b.OnPress)

		b, err = r.Button(row, 0, "bs2")
		require.NoError(t, err)
		assert.Equal(t, Scene(4-row), b.OnPress)
	}
}

func TestKeyPage(t *testing.T) {
	r := Builtin()
	b, err := r.Button(1, 1, "bs4")
	require.NoError(t, err)
	assert.Equal(t, Tonic(theory.C), b.OnPress)
	assert.Equal(t, None, b.OnRelease.Kind)

	b, err = r.Button(0, 1, "bs4")
	require.NoError(t, err)
	assert.Equal(t, Tonic(theory.Cs), b.OnPress)

	b, err = r.Button(0, 7, "bs4")
	require.NoError(t, err)
	assert.Equal(t, SetMajorDefault, b.OnPress.Kind)

	b, err = r.Button(2, 2, "bs4")
	require.NoError(t, err)
	assert.Equal(t, Scale(theory.Harmonic), b.OnPress)

	b, err = r.Button(3, 6, "bs4")
	require.NoError(t, err)
	assert.Equal(t, ModeAction(6), b.OnPress)
}

func TestNoteNormalizesDegree(t *testing.T) {
	r := NewRegistry(Performance, "wide")
	rows := make([][]NoteAssignment, grid.Rows)
	for i := range rows {
		rows[i] = make([]NoteAssignment, grid.Cols)
		for c := range rows[i] {
			rows[i][c] = NoteAssignment{Degree: c + 1, Octave: 4}
		}
	}
	require.NoError(t, r.RegisterNotes("wide", rows))

	n, err := r.Note(0, 6, "")
	require.NoError(t, err)
	assert.Equal(t, NoteAssignment{Degree: 7, Octave: 4}, n)

	n, err = r.Note(0, 7, "wide")
	require.NoError(t, err)
	assert.Equal(t, NoteAssignment{Degree: 1, Octave: 5}, n)
}

func TestLookupErrors(t *testing.T) {
	r := Builtin()
	_, err := r.Button(0, 0, "nope")
	assert.ErrorIs(t, err, ErrUnknownLayout)
	_, err = r.Note(0, 0, "nope")
	assert.ErrorIs(t, err, ErrUnknownLayout)
	_, err = r.Button(4, 0, "")
	assert.ErrorIs(t, err, grid.ErrCoordinate)
	_, err = r.Note(0, 8, "")
	assert.ErrorIs(t, err, grid.ErrCoordinate)
}

func TestRegisterValidatesShape(t *testing.T) {
	r := NewRegistry(Performance, Lead)
	err := r.RegisterNotes("short", make([][]NoteAssignment, 3))
	assert.ErrorIs(t, err, ErrShape)

	rows := filled(Same(Note()))
	rows[2] = rows[2][:7]
	assert.ErrorIs(t, r.RegisterButtons("narrow", rows), ErrShape)
	assert.False(t, r.HasButtons("narrow"))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "s3", Scene(3).String())
	assert.Equal(t, "set_tonic(Fs)", Tonic(theory.Fs).String())
	assert.Equal(t, "outnote", Note().String())
}

func TestLayoutErrorsAreConfigurationErrors(t *testing.T) {
	r := Builtin()
	_, err := r.Button(0, 0, "nope")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = r.Note(0, 8, "")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	err = r.RegisterNotes("short", make([][]NoteAssignment, 3))
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}
