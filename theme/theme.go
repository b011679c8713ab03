package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	PadIdle    rune // ○ pad with nothing to do in this mode
	PadNote    rune // □ pad that plays a note
	PadPressed rune // ■ held pad
	PadAction  rune // ◇ settings action
	LEDOn      rune // ●
	LEDOff     rune // ·
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			PadIdle:    '○',
			PadNote:    '□',
			PadPressed: '■',
			PadAction:  '◇',
			LEDOn:      '●',
			LEDOff:     '·',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.55
	RoleTop     = 0.65
	RoleActive  = 0.78
	RoleWarning = 0.9
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color { return t.Color(RoleMuted) }
func (t *Theme) Top() lipgloss.Color { return t.Color(RoleTop) }
func (t *Theme) Active() lipgloss.Color { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
