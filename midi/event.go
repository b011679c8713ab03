package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is a channel voice message a controller reported. For CC, Note
// holds the controller number and Velocity the value.
type Event struct {
	Type     uint8
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Parse converts note and control-change messages into an Event.
func Parse(msg gomidi.Message) (Event, bool) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return Event{Type: NoteOn, Channel: channel, Note: key, Velocity: velocity}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return Event{Type: NoteOff, Channel: channel, Note: key, Velocity: velocity}, true
	case msg.GetControlChange(&channel, &key, &velocity):
		return Event{Type: CC, Channel: channel, Note: key, Velocity: velocity}, true
	}
	return Event{}, false
}

// IsNote reports note-on and note-off events.
func (e Event) IsNote() bool {
	return e.Type == NoteOn || e.Type == NoteOff
}

// Pressed is true for a note-on with non-zero velocity; a note-on with
// velocity 0 is a release.
func (e Event) Pressed() bool {
	return e.Type == NoteOn && e.Velocity > 0
}

// IsScene reports whether the event is the scene button; pressed tells
// which edge.
func (e Event) IsScene() (pressed, ok bool) {
	if e.Type != CC || e.Channel != SceneChannel || e.Note != SceneControl {
		return false, false
	}
	return e.Velocity > 0, true
}

// WithNote rebuilds the event as a message with a new note and channel,
// keeping its kind and velocity.
func (e Event) WithNote(note, channel uint8) gomidi.Message {
	if e.Type == NoteOn {
		return gomidi.NoteOn(channel, note, e.Velocity)
	}
	return gomidi.NoteOffVelocity(channel, note, e.Velocity)
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("note_on ch=%d note=%d vel=%d", e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("note_off ch=%d note=%d vel=%d", e.Channel, e.Note, e.Velocity)
	case CC:
		return fmt.Sprintf("cc ch=%d ctl=%d val=%d", e.Channel, e.Note, e.Velocity)
	}
	return fmt.Sprintf("event(%#x)", e.Type)
}
