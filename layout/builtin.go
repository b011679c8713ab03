package layout

import (
	"padgrid/grid"
	"padgrid/theory"
)

// Built-in note layouts.
const (
	HangFull   = "hang_full"
	HangMirror = "hang_mirror"
	Lead       = "lead"
)

type na = NoteAssignment

var builtinNotes = map[string][][]NoteAssignment{
	HangFull: {
		{na{4, 4}, na{6, 4}, na{1, 5}, na{7, 4}, na{4, 6}, na{6, 6}, na{1, 6}, na{7, 6}},
		{na{2, 4}, na{3, 3}, na{1, 3}, na{5, 4}, na{2, 6}, na{3, 5}, na{1, 5}, na{5, 6}},
		{na{5, 3}, na{1, 4}, na{3, 4}, na{2, 3}, na{5, 5}, na{1, 6}, na{3, 6}, na{2, 5}},
		{na{7, 3}, na{1, 2}, na{6, 3}, na{4, 3}, na{7, 5}, na{1, 4}, na{6, 5}, na{4, 5}},
	},
	HangMirror: {
		{na{4, 4}, na{6, 4}, na{1, 5}, na{7, 4}, na{7, 6}, na{1, 7}, na{6, 6}, na{4, 6}},
		{na{2, 4}, na{3, 3}, na{1, 3}, na{5, 4}, na{5, 6}, na{1, 5}, na{3, 5}, na{2, 6}},
		{na{5, 3}, na{1, 4}, na{3, 4}, na{2, 3}, na{2, 5}, na{3, 6}, na{1, 6}, na{5, 5}},
		{na{7, 3}, na{1, 2}, na{6, 3}, na{4, 3}, na{4, 5}, na{6, 5}, na{1, 4}, na{7, 5}},
	},
	Lead: {
		{na{1, 5}, na{3, 5}, na{5, 5}, na{7, 5}, na{2, 6}, na{4, 6}, na{6, 6}, na{1, 7}},
		{na{2, 5}, na{4, 5}, na{6, 5}, na{1, 6}, na{3, 6}, na{5, 6}, na{7, 6}, na{2, 7}},
		{na{1, 3}, na{3, 3}, na{5, 3}, na{7, 3}, na{2, 4}, na{4, 4}, na{6, 4}, na{1, 5}},
		{na{2, 3}, na{4, 3}, na{6, 3}, na{1, 4}, na{3, 4}, na{5, 4}, na{7, 4}, na{2, 5}},
	},
}

func filled(b Button) [][]Button {
	rows := make([][]Button, grid.Rows)
	for r := range rows {
		rows[r] = make([]Button, grid.Cols)
		for c := range rows[r] {
			rows[r][c] = b
		}
	}
	return rows
}

// settingsPage lays the four scene digits down one column: the top
// controller's settings use the right edge (s1 at the top), the bottom
// controller's the left edge (s1 at the bottom).
func settingsPage(role grid.Role) [][]Button {
	rows := filled(Same(NoAction()))
	for r := 0; r < grid.Rows; r++ {
		if role == grid.Top {
			rows[r][grid.Cols-1] = Same(Scene(r + 1))
		} else {
			rows[r][0] = Same(Scene(grid.Rows - r))
		}
	}
	return rows
}

// keyPage is the bottom controller's fourth page: a piano-style tonic
// picker over two rows, scale type and mode selection below.
func keyPage() [][]Button {
	rows := settingsPage(grid.Bottom)
	black := map[int]theory.PitchClass{1: theory.Cs, 2: theory.Ds, 4: theory.Fs, 5: theory.Gs, 6: theory.As}
	for col, p := range black {
		rows[0][col] = PressOnly(Tonic(p))
	}
	rows[0][7] = PressOnly(MajorDefault())
	white := []theory.PitchClass{theory.C, theory.D, theory.E, theory.F, theory.G, theory.A, theory.B}
	for i, p := range white {
		rows[1][i+1] = PressOnly(Tonic(p))
	}
	rows[2][1] = PressOnly(Scale(theory.Natural))
	rows[2][2] = PressOnly(Scale(theory.Harmonic))
	for m := 1; m <= 7; m++ {
		rows[3][m] = PressOnly(ModeAction(theory.Mode(m)))
	}
	return rows
}

// layoutPage is the top controller's fourth page: one pad per built-in
// note layout along the first row.
func layoutPage() [][]Button {
	rows := settingsPage(grid.Top)
	for i, name := range []string{HangFull, HangMirror, Lead} {
		rows[0][i] = PressOnly(NoteLayoutAction(name))
	}
	return rows
}

// Builtin returns a registry holding the performance layout, the eight
// settings pages and the built-in note layouts.
func Builtin() *Registry {
	r := NewRegistry(Performance, Lead)
	must(r.RegisterButtons(Performance, filled(Same(Note()))))
	for _, role := range []grid.Role{grid.Top, grid.Bottom} {
		for page := 1; page < Pages; page++ {
			must(r.RegisterButtons(SettingsMode(role, page), settingsPage(role)))
		}
	}
	must(r.RegisterButtons(SettingsMode(grid.Top, Pages), layoutPage()))
	must(r.RegisterButtons(SettingsMode(grid.Bottom, Pages), keyPage()))
	for name, rows := range builtinNotes {
		must(r.RegisterNotes(name, rows))
	}
	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
