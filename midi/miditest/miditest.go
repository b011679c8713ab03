// Package miditest provides in-memory stand-ins for controller ports and
// the note output.
package miditest

import (
	"bytes"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"padgrid/midi"
)

// Responder is called synchronously for every message sent to a Port.
type Responder func(p *Port, msg gomidi.Message)

// Port is a midi.Port that records sent messages and lets tests inject
// input as if the device had produced it.
type Port struct {
	id string

	mu       sync.Mutex
	sent     []gomidi.Message
	listener func(gomidi.Message)
	respond  Responder
	closed   bool
}

var _ midi.Port = (*Port)(nil)

func NewPort(id string) *Port {
	return &Port{id: id}
}

func (p *Port) ID() string { return p.id }

func (p *Port) Send(msg gomidi.Message) error {
	p.mu.Lock()
	p.sent = append(p.sent, msg)
	respond := p.respond
	p.mu.Unlock()
	if respond != nil {
		respond(p, msg)
	}
	return nil
}

func (p *Port) Listen(fn func(msg gomidi.Message)) (func(), error) {
	p.mu.Lock()
	p.listener = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.listener = nil
		p.mu.Unlock()
	}, nil
}

func (p *Port) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// Respond installs r; nil removes it.
func (p *Port) Respond(r Responder) {
	p.mu.Lock()
	p.respond = r
	p.mu.Unlock()
}

// Inject delivers msg to the listener, if any.
func (p *Port) Inject(msg gomidi.Message) {
	p.mu.Lock()
	fn := p.listener
	p.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (p *Port) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Sent returns a copy of everything sent so far.
func (p *Port) Sent() []gomidi.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]gomidi.Message(nil), p.sent...)
}

// SentSysEx returns the payloads of the sysex messages sent so far.
func (p *Port) SentSysEx() [][]byte {
	var out [][]byte
	for _, m := range p.Sent() {
		var data []byte
		if m.GetSysEx(&data) {
			out = append(out, data)
		}
	}
	return out
}

// LEDs returns the last value sent to each of the four settings lights.
func (p *Port) LEDs() [midi.LEDCount]bool {
	var leds [midi.LEDCount]bool
	for _, m := range p.Sent() {
		var ch, ctl, val uint8
		if !m.GetControlChange(&ch, &ctl, &val) || ch != midi.SceneChannel {
			continue
		}
		for i, c := range midi.LEDControls {
			if c == ctl {
				leds[i] = val == midi.LEDOn
			}
		}
	}
	return leds
}

// Reset forgets the sent messages.
func (p *Port) Reset() {
	p.mu.Lock()
	p.sent = nil
	p.mu.Unlock()
}

// NanoPAD answers the search query and the native mode command the way a
// nanoPAD2 on channel does.
func NanoPAD(channel uint8) Responder {
	return func(p *Port, msg gomidi.Message) {
		var data []byte
		if !msg.GetSysEx(&data) {
			return
		}
		switch {
		case bytes.Equal(data, midi.SearchQuery()):
			p.Inject(gomidi.SysEx([]byte{0x42, 0x50, 0x01, channel, 0x00, 0x12, 0x01}))
		case bytes.Equal(data, midi.NativeModeCommand(channel)):
			p.Inject(gomidi.SysEx([]byte{0x42, 0x40 + channel, 0x00, 0x01, 0x12, 0x00, 0x5F, 0x23, 0x00}))
		}
	}
}

// Note is a note message seen by Output.
type Note struct {
	On       bool
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// Output is a midi.Output keeping what it was sent.
type Output struct {
	mu     sync.Mutex
	sent   []gomidi.Message
	closed bool
}

var _ midi.Output = (*Output)(nil)

func (o *Output) Send(msg gomidi.Message) error {
	o.mu.Lock()
	o.sent = append(o.sent, msg)
	o.mu.Unlock()
	return nil
}

func (o *Output) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	return nil
}

func (o *Output) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Notes decodes the note messages sent so far. A note-on with velocity 0
// is reported as On with Velocity 0.
func (o *Output) Notes() []Note {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Note
	for _, m := range o.sent {
		var n Note
		switch {
		case m.GetNoteOn(&n.Channel, &n.Key, &n.Velocity):
			n.On = true
		case m.GetNoteOff(&n.Channel, &n.Key, &n.Velocity):
		default:
			continue
		}
		out = append(out, n)
	}
	return out
}

func (o *Output) Reset() {
	o.mu.Lock()
	o.sent = nil
	o.mu.Unlock()
}
