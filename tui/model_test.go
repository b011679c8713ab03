package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padgrid/grid"
	"padgrid/instrument"
	"padgrid/layout"
	"padgrid/theme"
	"padgrid/theory"
)

type fakeSource struct {
	snap    instrument.Snapshot
	updates chan struct{}
}

func (f *fakeSource) Snapshot() instrument.Snapshot { return f.snap }
func (f *fakeSource) Updates() <-chan struct{} { return f.updates }

func newSource() *fakeSource {
	src := &fakeSource{updates: make(chan struct{}, 1)}
	src.snap = instrument.Snapshot{
		Mode:       instrument.Performance,
		ButtonMode: layout.Performance,
		NoteLayout: layout.Lead,
		Key:        theory.DefaultKey(),
	}
	src.snap.Slots[0] = instrument.SlotView{ID: "nanoPAD2 A", Role: grid.Top}
	src.snap.Slots[1] = instrument.SlotView{ID: "nanoPAD2 B", Role: grid.Bottom, Channel: 1}
	src.snap.Grid[0][0] = instrument.PadView{Out: 60, Action: layout.Note()}
	return src
}

func TestViewPerformance(t *testing.T) {
	m := NewModel(newSource(), theme.New(nil))
	out := m.View()
	assert.Contains(t, out, "PLAY")
	assert.Contains(t, out, "layout:lead")
	assert.Contains(t, out, "C5")
	assert.Contains(t, out, "nanoPAD2 B")
	assert.Contains(t, out, "C ionian (i)")
	assert.Contains(t, out, "scene+71+79  make top")
	assert.Contains(t, out, "ts1 ts2 ts3 ts4")
	assert.Contains(t, out, "q  quit")
}

func TestUpdateRefreshesSnapshot(t *testing.T) {
	src := newSource()
	m := NewModel(src, theme.New(nil))

	src.snap.Mode = instrument.Setting
	src.snap.ButtonMode = "bs4"
	src.snap.Grid[0][0] = instrument.PadView{Action: layout.Scene(4)}
	next, cmd := m.Update(UpdateMsg{})
	require.NotNil(t, cmd)

	out := next.View()
	assert.Contains(t, out, "SET bs4")
	assert.Contains(t, out, "s4")
}

func TestQuit(t *testing.T) {
	m := NewModel(newSource(), theme.New(nil))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}
