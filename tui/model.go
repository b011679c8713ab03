package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"padgrid/grid"
	"padgrid/instrument"
	"padgrid/layout"
	"padgrid/midi"
	"padgrid/theory"
	"padgrid/theme"
	"padgrid/widgets"
)

// Source is what the monitor watches; *instrument.Instrument satisfies it.
type Source interface {
	Snapshot() instrument.Snapshot
	Updates() <-chan struct{}
}

type Model struct {
	Source   Source
	Theme    *theme.Theme
	snap     instrument.Snapshot
	quitting bool
}

type UpdateMsg struct{}

func NewModel(src Source, th *theme.Theme) Model {
	return Model{
		Source: src,
		Theme:  th,
		snap:   src.Snapshot(),
	}
}

func ListenForUpdates(src Source) tea.Cmd {
	return func() tea.Msg {
		<-src.Updates()
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Source)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case UpdateMsg:
		m.snap = m.Source.Snapshot()
		return m, ListenForUpdates(m.Source)
	}

	return m, nil
}

// cell picks the symbol and label of one pad for the current button mode.
func (m Model) cell(p instrument.PadView) widgets.Cell {
	sym := m.Theme.Symbols
	c := widgets.Cell{Symbol: sym.PadIdle, Color: m.Theme.Muted()}
	switch p.Action.Kind {
	case layout.OutNote:
		c.Symbol = sym.PadNote
		c.Label = theory.NoteName(int(p.Out))
		c.Color = m.Theme.FG()
	case layout.None:
	default:
		c.Symbol = sym.PadAction
		c.Label = p.Action.String()
		c.Color = m.Theme.Accent()
	}
	if p.Pressed {
		c.Symbol = sym.PadPressed
		c.Color = m.Theme.Active()
	}
	return c
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.snap

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	modeStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())

	mode := "PLAY"
	if s.Mode == instrument.Setting {
		mode = "SET " + s.ButtonMode
		modeStyle = modeStyle.Foreground(m.Theme.Warning())
	}
	header := headerStyle.Render(fmt.Sprintf("padgrid  %s (%s)  layout:%s", s.Key, theory.Numeral(s.Key.Mode), s.NoteLayout)) +
		"  " + modeStyle.Render(mode)

	var cells [grid.Rows][grid.Cols]widgets.Cell
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = m.cell(s.Grid[r][c])
		}
	}
	gridView := widgets.RenderGrid(cells, m.Theme.Muted())

	var slots []string
	for idx, slot := range s.Slots {
		leds := make([]bool, midi.LEDCount)
		for i := range leds {
			leds[i] = slot.Scene.LEDs&(1<<i) != 0
		}
		roleStyle := dimStyle
		if slot.Role == grid.Top {
			roleStyle = lipgloss.NewStyle().Foreground(m.Theme.Top())
		}
		slots = append(slots, fmt.Sprintf("%s %-6s ch%-2d %s  %s",
			roleStyle.Render(fmt.Sprintf("[%d]", idx)),
			slot.Role,
			slot.Channel,
			widgets.RenderLEDs(leds, m.Theme.Symbols.LEDOn, m.Theme.Symbols.LEDOff, m.Theme.Warning()),
			dimStyle.Render(slot.ID)))
	}

	status := dimStyle.Render(fmt.Sprintf("sounding:%d", s.Sounding))
	help := widgets.RenderHelp(helpSections(), m.Theme.Accent(), m.Theme.Muted())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(gridView)
	out.WriteString("\n\n")
	out.WriteString(strings.Join(slots, "\n"))
	out.WriteString("\n")
	out.WriteString(status)
	out.WriteString("\n\n")
	out.WriteString(help)
	out.WriteString("\n")
	return out.String()
}

// helpSections lists the controls: the monitor's keys and the pad gestures
// that drive the instrument.
func helpSections() []widgets.HelpSection {
	marks := grid.Landmarks()
	return []widgets.HelpSection{
		{Title: "Monitor", Controls: []widgets.Control{
			{Input: "q", Action: "quit"},
		}},
		{Title: "Play", Controls: []widgets.Control{
			{Input: "hold scene", Action: "settings"},
			{Input: fmt.Sprintf("scene+%d+%d", marks[0], marks[1]), Action: "make top"},
		}},
		{Title: "Settings", Controls: []widgets.Control{
			{Input: "top", Action: strings.Join(layout.SettingsModes(grid.Top), " ")},
			{Input: "bottom", Action: strings.Join(layout.SettingsModes(grid.Bottom), " ")},
			{Input: "page 4", Action: "ts: note layout, bs: key"},
		}},
	}
}
