package layout

import (
	"fmt"

	"padgrid/theory"
)

// ActionKind tags what a pad does when pressed or released.
type ActionKind int

const (
	None ActionKind = iota
	OutNote
	SceneDigit
	SetTonic
	SetScale
	SetMode
	SetMajorDefault
	SetNoteLayout
)

var kindNames = map[ActionKind]string{
	None:            "none",
	OutNote:         "outnote",
	SceneDigit:      "scene",
	SetTonic:        "set_tonic",
	SetScale:        "set_scale",
	SetMode:         "set_mode",
	SetMajorDefault: "set_C_major",
	SetNoteLayout:   "set_note_layout",
}

func (k ActionKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a closed variant: Kind selects which of the argument fields
// is meaningful.
type Action struct {
	Kind   ActionKind
	Digit  int // SceneDigit, 1-4
	Tonic  theory.PitchClass
	Scale  theory.ScaleType
	Mode   theory.Mode
	Layout string
}

func NoAction() Action { return Action{Kind: None} }
func Note() Action { return Action{Kind: OutNote} }
func Scene(digit int) Action { return Action{Kind: SceneDigit, Digit: digit} }
func Tonic(p theory.PitchClass) Action { return Action{Kind: SetTonic, Tonic: p} }
func Scale(s theory.ScaleType) Action { return Action{Kind: SetScale, Scale: s} }
func ModeAction(m theory.Mode) Action { return Action{Kind: SetMode, Mode: m} }
func MajorDefault() Action { return Action{Kind: SetMajorDefault} }
func NoteLayoutAction(name string) Action {
	return Action{Kind: SetNoteLayout, Layout: name}
}

func (a Action) String() string {
	switch a.Kind {
	case SceneDigit:
		return fmt.Sprintf("s%d", a.Digit)
	case SetTonic:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Tonic)
	case SetScale:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Scale)
	case SetMode:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Mode)
	case SetNoteLayout:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Layout)
	}
	return a.Kind.String()
}

// Button pairs the press and release behaviour of one grid position.
type Button struct {
	OnPress   Action
	OnRelease Action
}

// Same is a button doing one thing on both edges.
func Same(a Action) Button {
	return Button{OnPress: a, OnRelease: a}
}

// PressOnly acts on press and ignores the release.
func PressOnly(a Action) Button {
	return Button{OnPress: a, OnRelease: NoAction()}
}
