package midi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"padgrid/midi"
)

func TestParse(t *testing.T) {
	ev, ok := midi.Parse(gomidi.NoteOn(1, 70, 90))
	require.True(t, ok)
	assert.True(t, ev.Pressed())
	assert.True(t, ev.IsNote())

	ev, ok = midi.Parse(gomidi.NoteOffVelocity(1, 70, 12))
	require.True(t, ok)
	assert.Equal(t, midi.Event{Type: midi.NoteOff, Channel: 1, Note: 70, Velocity: 12}, ev)
	assert.False(t, ev.Pressed())

	_, ok = midi.Parse(gomidi.SysEx([]byte{0x42}))
	assert.False(t, ok)
}

func TestSceneEvent(t *testing.T) {
	ev, _ := midi.Parse(gomidi.ControlChange(15, 57, 0))
	pressed, ok := ev.IsScene()
	assert.True(t, ok)
	assert.False(t, pressed)

	ev, _ = midi.Parse(gomidi.ControlChange(14, 57, 127))
	_, ok = ev.IsScene()
	assert.False(t, ok)
}

func TestWithNoteKeepsKindAndVelocity(t *testing.T) {
	on := midi.Event{Type: midi.NoteOn, Channel: 1, Note: 64, Velocity: 99}
	var ch, key, vel uint8
	require.True(t, on.WithNote(60, 2).GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, []uint8{2, 60, 99}, []uint8{ch, key, vel})

	off := midi.Event{Type: midi.NoteOff, Channel: 1, Note: 64, Velocity: 40}
	require.True(t, off.WithNote(61, 2).GetNoteOff(&ch, &key, &vel))
	assert.Equal(t, []uint8{2, 61, 40}, []uint8{ch, key, vel})
}
