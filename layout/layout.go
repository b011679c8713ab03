// Package layout holds the named tables that say what every position of the
// 4x8 grid does: which action a press or release triggers (button layouts)
// and which scale degree it plays (note layouts).
package layout

import (
	"fmt"
	"sort"
	"sync"

	"padgrid/errs"
	"padgrid/grid"
	"padgrid/theory"
)

var (
	// ErrUnknownLayout reports a button mode or note layout name that was never registered.
	ErrUnknownLayout = fmt.Errorf("%w: unknown layout", errs.ErrConfiguration)
	// ErrShape reports a layout that is not 4 rows of 8.
	ErrShape = fmt.Errorf("%w: layout must be 4x8", errs.ErrConfiguration)
)

// Performance is the button mode used while playing.
const Performance = "play"

// ButtonLayout is indexed [row][col] over the full grid.
type ButtonLayout [grid.Rows][grid.Cols]Button

// NoteAssignment places a scale degree and octave on a grid position.
// Degree may leave 1-7; it wraps into the next or previous octave.
type NoteAssignment struct {
	Degree int
	Octave int
}

// Normalize folds Degree into 1-7 and carries the octave.
func (n NoteAssignment) Normalize() NoteAssignment {
	d, o := theory.NormalizeDegree(n.Degree, n.Octave)
	return NoteAssignment{Degree: d, Octave: o}
}

// NoteLayout is indexed [row][col] over the full grid.
type NoteLayout [grid.Rows][grid.Cols]NoteAssignment

// Registry stores layouts by name. Layouts are registered during setup and
// only read afterwards.
type Registry struct {
	mu      sync.RWMutex
	buttons map[string]*ButtonLayout
	notes   map[string]*NoteLayout

	defaultButtons string
	defaultNotes   string
}

// NewRegistry returns an empty registry with the given fallback names,
// used when a lookup passes an empty name.
func NewRegistry(defaultButtons, defaultNotes string) *Registry {
	return &Registry{
		buttons:        make(map[string]*ButtonLayout),
		notes:          make(map[string]*NoteLayout),
		defaultButtons: defaultButtons,
		defaultNotes:   defaultNotes,
	}
}

// RegisterButtons adds or replaces a button layout.
func (r *Registry) RegisterButtons(name string, rows [][]Button) error {
	if len(rows) != grid.Rows {
		return fmt.Errorf("%w: button layout %q has %d rows", ErrShape, name, len(rows))
	}
	var l ButtonLayout
	for i, row := range rows {
		if len(row) != grid.Cols {
			return fmt.Errorf("%w: button layout %q row %d has %d cols", ErrShape, name, i, len(row))
		}
		copy(l[i][:], row)
	}
	r.mu.Lock()
	r.buttons[name] = &l
	r.mu.Unlock()
	return nil
}

// RegisterNotes adds or replaces a note layout.
func (r *Registry) RegisterNotes(name string, rows [][]NoteAssignment) error {
	if len(rows) != grid.Rows {
		return fmt.Errorf("%w: note layout %q has %d rows", ErrShape, name, len(rows))
	}
	var l NoteLayout
	for i, row := range rows {
		if len(row) != grid.Cols {
			return fmt.Errorf("%w: note layout %q row %d has %d cols", ErrShape, name, i, len(row))
		}
		copy(l[i][:], row)
	}
	r.mu.Lock()
	r.notes[name] = &l
	r.mu.Unlock()
	return nil
}

func (r *Registry) HasButtons(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.buttons[r.buttonName(name)]
	return ok
}

func (r *Registry) HasNotes(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.notes[r.noteName(name)]
	return ok
}

// NoteLayouts returns the registered note layout names, sorted.
func (r *Registry) NoteLayouts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.notes))
	for n := range r.notes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ButtonModes returns the registered button layout names, sorted.
func (r *Registry) ButtonModes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.buttons))
	for n := range r.buttons {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Button returns the press/release pair at a grid position for a mode.
// An empty mode means the registry's default mode.
func (r *Registry) Button(row, col int, mode string) (Button, error) {
	if err := grid.Check(row, col); err != nil {
		return Button{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.buttons[r.buttonName(mode)]
	if !ok {
		return Button{}, fmt.Errorf("%w: button mode %q", ErrUnknownLayout, r.buttonName(mode))
	}
	return l[row][col], nil
}

// Note returns the normalized degree and octave at a grid position.
// An empty name means the registry's default note layout.
func (r *Registry) Note(row, col int, name string) (NoteAssignment, error) {
	if err := grid.Check(row, col); err != nil {
		return NoteAssignment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.notes[r.noteName(name)]
	if !ok {
		return NoteAssignment{}, fmt.Errorf("%w: note layout %q", ErrUnknownLayout, r.noteName(name))
	}
	return l[row][col].Normalize(), nil
}

func (r *Registry) buttonName(name string) string {
	if name == "" {
		return r.defaultButtons
	}
	return name
}

func (r *Registry) noteName(name string) string {
	if name == "" {
		return r.defaultNotes
	}
	return name
}

// Pages is the number of settings pages each controller role owns.
const Pages = 4

// SettingsMode names the button layout of a settings page (1-4) for a role:
// ts1..ts4 for the top controller, bs1..bs4 for the bottom one.
func SettingsMode(role grid.Role, page int) string {
	prefix := "ts"
	if role == grid.Bottom {
		prefix = "bs"
	}
	return fmt.Sprintf("%s%d", prefix, page)
}

// SettingsModes lists the four settings layouts of a role.
func SettingsModes(role grid.Role) []string {
	out := make([]string, 0, Pages)
	for p := 1; p <= Pages; p++ {
		out = append(out, SettingsMode(role, p))
	}
	return out
}
