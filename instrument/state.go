package instrument

import (
	"errors"
	"fmt"

	"padgrid/grid"
	"padgrid/layout"
	"padgrid/midi"
	"padgrid/padmap"
	"padgrid/theory"
)

// ErrInvalidTransition means the router found itself in a state it has no
// rule for. It is a programming error, logged rather than returned to users.
var ErrInvalidTransition = errors.New("invalid mode transition")

// Mode is the router's top-level state.
type Mode int

const (
	Performance Mode = iota
	Setting
)

func (m Mode) String() string {
	switch m {
	case Performance:
		return "performance"
	case Setting:
		return "setting"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// SceneState tracks one controller's scene button and, while it owns the
// settings overlay, the page on display. LEDs mirrors the last mask sent to
// the settings lights.
type SceneState struct {
	Pressed bool
	Page    int
	LEDs    uint8
}

// Slot binds a physical controller to a grid role and the map of that role.
type Slot struct {
	Controller *midi.Controller
	Role       grid.Role
	Map        padmap.Map
	Scene      SceneState
}

// InstrumentState is everything the router mutates. Owner is the index of
// the controller whose scene button opened the settings overlay and is
// only meaningful in Setting mode.
type InstrumentState struct {
	Mode          Mode
	Owner         int
	NoteLayout    string
	Key           theory.Key
	InputChannel  uint8
	OutputChannel uint8
	Controllers   [2]*Slot
}

// ButtonMode names the button layout in effect: the performance layout or
// the owner's current settings page.
func (s *InstrumentState) ButtonMode() (string, error) {
	switch s.Mode {
	case Performance:
		return layout.Performance, nil
	case Setting:
		if s.Owner < 0 || s.Owner >= len(s.Controllers) || s.Controllers[s.Owner] == nil {
			return "", fmt.Errorf("%w: setting owner %d", ErrInvalidTransition, s.Owner)
		}
		slot := s.Controllers[s.Owner]
		return layout.SettingsMode(slot.Role, slot.Scene.Page), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidTransition, s.Mode)
}

// PadView is a read-only copy of one pad for display.
type PadView struct {
	Grid    grid.Coord
	Native  uint8
	Out     uint8
	Pressed bool
	Action  layout.Action
}

// SlotView is a read-only copy of a slot.
type SlotView struct {
	ID      string
	Channel uint8
	Role    grid.Role
	Scene   SceneState
}

// Snapshot is a copy of the instrument's state, safe to read from another
// goroutine.
type Snapshot struct {
	Mode       Mode
	Owner      int
	ButtonMode string
	NoteLayout string
	Key        theory.Key
	Slots      [2]SlotView
	Grid       [grid.Rows][grid.Cols]PadView
	Sounding   int
}
