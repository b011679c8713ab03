package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padgrid/grid"
)

func TestRenderGrid(t *testing.T) {
	var cells [grid.Rows][grid.Cols]Cell
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = Cell{Symbol: '□', Label: "C5"}
		}
	}
	cells[3][7] = Cell{Symbol: '■', Label: "Fs10x"}

	out := RenderGrid(cells, lipgloss.Color("#444444"))
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, grid.Rows+1)
	assert.Contains(t, lines[2], "─")
	assert.Contains(t, lines[4], "■ Fs10")
	assert.NotContains(t, out, "Fs10x")
}

func TestRenderLEDs(t *testing.T) {
	out := RenderLEDs([]bool{true, false, false, true}, '●', '·', lipgloss.Color("#ffffff"))
	assert.Contains(t, out, "● · · ●")
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp([]HelpSection{
		{Title: "Monitor", Controls: []Control{{Input: "q", Action: "quit"}}},
		{Title: "Play", Controls: []Control{
			{Input: "scene", Action: "settings"},
			{Input: "scene+71+79", Action: "make top"},
		}},
	}, lipgloss.Color("#ffffff"), lipgloss.Color("#888888"))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Monitor")
	assert.Contains(t, lines[0], "Play")
	assert.Contains(t, lines[1], "q  quit")
	assert.Contains(t, lines[1], "scene        settings")
	assert.Contains(t, lines[2], "scene+71+79  make top")
}
