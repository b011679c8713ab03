package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"padgrid/grid"
)

// Cell is one pad as the monitor draws it: a state symbol and a short
// label, usually the note name or the settings action.
type Cell struct {
	Symbol rune
	Label  string
	Color  lipgloss.Color
}

const cellWidth = 6

// RenderCell renders a cell padded to a fixed width.
func RenderCell(c Cell) string {
	label := c.Label
	if len(label) > cellWidth-2 {
		label = label[:cellWidth-2]
	}
	style := lipgloss.NewStyle().Foreground(c.Color).Width(cellWidth)
	return style.Render(fmt.Sprintf("%c %s", c.Symbol, label))
}

// RenderGrid renders the 4x8 grid top row first, with a rule between the
// two controllers' halves.
func RenderGrid(cells [grid.Rows][grid.Cols]Cell, rule lipgloss.Color) string {
	var lines []string
	for row := 0; row < grid.Rows; row++ {
		if row == grid.HalfRows {
			lines = append(lines, lipgloss.NewStyle().Foreground(rule).Render(strings.Repeat("─", grid.Cols*cellWidth)))
		}
		var line strings.Builder
		for col := 0; col < grid.Cols; col++ {
			line.WriteString(RenderCell(cells[row][col]))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLEDs renders the four settings lights of a controller.
func RenderLEDs(on []bool, onSym, offSym rune, color lipgloss.Color) string {
	var out strings.Builder
	for i, lit := range on {
		if i > 0 {
			out.WriteString(" ")
		}
		sym := offSym
		if lit {
			sym = onSym
		}
		out.WriteRune(sym)
	}
	return lipgloss.NewStyle().Foreground(color).Render(out.String())
}

// HelpSection is a titled group of controls shown under the grid.
type HelpSection struct {
	Title    string
	Controls []Control
}

// Control pairs an input, a key or a pad gesture, with what it does.
type Control struct {
	Input  string
	Action string
}

// RenderHelp lays the sections out side by side, each a title over its
// controls with the inputs aligned.
func RenderHelp(sections []HelpSection, title, text lipgloss.Color) string {
	titleStyle := lipgloss.NewStyle().Foreground(title).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(text)

	cols := make([]string, 0, len(sections))
	for n, sec := range sections {
		width := 0
		for _, c := range sec.Controls {
			width = max(width, lipgloss.Width(c.Input))
		}
		lines := []string{titleStyle.Render(sec.Title)}
		for _, c := range sec.Controls {
			lines = append(lines, textStyle.Render(fmt.Sprintf("%-*s  %s", width, c.Input, c.Action)))
		}
		col := strings.Join(lines, "\n")
		if n < len(sections)-1 {
			col = lipgloss.NewStyle().MarginRight(3).Render(col)
		}
		cols = append(cols, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
