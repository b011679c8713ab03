// Package instrument turns two handshaken nanoPAD2 controllers into one
// 4x8 scale instrument: it owns the pad maps, routes controller input
// through the performance and settings modes, and emits translated notes.
package instrument

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"padgrid/debug"
	"padgrid/errs"
	"padgrid/grid"
	"padgrid/layout"
	"padgrid/midi"
	"padgrid/padmap"
	"padgrid/theory"
)

// Options configures an Instrument.
type Options struct {
	Registry         *layout.Registry
	Key              theory.Key
	NoteLayout       string
	InputChannel     uint8
	OutputChannel    uint8
	HandshakeTimeout time.Duration
	HandshakeRetries int
}

// DefaultOptions plays the built-in lead layout in C ionian, reading and
// writing notes on channel 1.
func DefaultOptions() Options {
	return Options{
		Registry:         layout.Builtin(),
		Key:              theory.DefaultKey(),
		NoteLayout:       layout.Lead,
		InputChannel:     1,
		OutputChannel:    1,
		HandshakeTimeout: 2 * time.Second,
		HandshakeRetries: 2,
	}
}

// voice identifies a held pad by controller and native note.
type voice struct {
	controller int
	native     uint8
}

// Instrument is the event router and the state it routes against. One
// mutex guards the state; controller callbacks hold it for the length of
// one event.
type Instrument struct {
	opts Options
	reg  *layout.Registry
	out  midi.Output

	mu       sync.Mutex
	state    InstrumentState
	maps     padmap.Maps
	sounding map[voice]uint8
	started  bool

	// UpdateChan receives a token whenever the state changes.
	UpdateChan chan struct{}
}

// New checks the options and binds the two controllers. Nothing is sent
// until Start.
func New(controllers []*midi.Controller, out midi.Output, opts Options) (*Instrument, error) {
	if len(controllers) != 2 {
		return nil, fmt.Errorf("%w: need 2 controllers, have %d", midi.ErrDiscovery, len(controllers))
	}
	if opts.Registry == nil {
		opts.Registry = layout.Builtin()
	}
	if err := opts.Key.Validate(); err != nil {
		return nil, err
	}
	if opts.NoteLayout == "" {
		opts.NoteLayout = layout.Lead
	}
	if !opts.Registry.HasNotes(opts.NoteLayout) {
		return nil, fmt.Errorf("%w: note layout %q", layout.ErrUnknownLayout, opts.NoteLayout)
	}
	if opts.InputChannel > 15 || opts.OutputChannel > 15 {
		return nil, fmt.Errorf("%w: channels must be 0-15, have in=%d out=%d", errs.ErrConfiguration, opts.InputChannel, opts.OutputChannel)
	}
	if opts.HandshakeTimeout <= 0 || opts.HandshakeRetries < 0 {
		return nil, fmt.Errorf("%w: handshake timeout %s, retries %d", errs.ErrConfiguration, opts.HandshakeTimeout, opts.HandshakeRetries)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: no output", errs.ErrConfiguration)
	}

	i := &Instrument{
		opts:       opts,
		reg:        opts.Registry,
		out:        out,
		sounding:   make(map[voice]uint8),
		UpdateChan: make(chan struct{}, 1),
	}
	i.state = InstrumentState{
		Mode:          Performance,
		NoteLayout:    opts.NoteLayout,
		Key:           opts.Key,
		InputChannel:  opts.InputChannel,
		OutputChannel: opts.OutputChannel,
	}
	for idx, c := range controllers {
		role := grid.Top
		if idx == 1 {
			role = grid.Bottom
		}
		i.state.Controllers[idx] = &Slot{Controller: c, Role: role}
	}
	return i, nil
}

// Start handshakes both controllers, builds the pad maps and starts
// routing. Any error leaves the instrument unusable; callers close it.
func (i *Instrument) Start(ctx context.Context) error {
	for _, slot := range i.state.Controllers {
		c := slot.Controller
		if err := c.Handshake(ctx, i.opts.HandshakeTimeout, i.opts.HandshakeRetries); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}

	i.mu.Lock()
	maps, err := padmap.Build(i.reg, i.state.Key, i.state.NoteLayout, layout.Performance)
	if err != nil {
		i.mu.Unlock()
		return err
	}
	i.maps = maps
	for _, slot := range i.state.Controllers {
		slot.Map = maps.For(slot.Role)
		slot.Scene = SceneState{}
	}
	i.state.Mode = Performance
	i.started = true
	key, noteLayout := i.state.Key, i.state.NoteLayout
	i.mu.Unlock()

	for _, slot := range i.state.Controllers {
		if err := slot.Controller.SetLEDs(0); err != nil {
			debug.Error("led", err, "%s: clear lights", slot.Controller)
		}
		slot.Controller.SetHandler(i.handle)
	}
	debug.Info("instrument", "started: %s, layout %s, %s top", key, noteLayout, i.state.Controllers[0].Controller)
	i.notify()
	return nil
}

// Close ends sounding notes, closes the controllers (aborting a handshake
// still in progress) and the output.
func (i *Instrument) Close() error {
	i.mu.Lock()
	var failed []error
	for v, note := range i.sounding {
		msg := midi.Event{Type: midi.NoteOff}.WithNote(note, i.state.OutputChannel)
		if err := i.out.Send(msg); err != nil {
			failed = append(failed, err)
		}
		delete(i.sounding, v)
	}
	i.started = false
	i.mu.Unlock()

	for _, slot := range i.state.Controllers {
		if err := slot.Controller.Close(); err != nil {
			failed = append(failed, err)
		}
	}
	if err := i.out.Close(); err != nil {
		failed = append(failed, err)
	}
	return errors.Join(failed...)
}

// Snapshot copies the current state for display.
func (i *Instrument) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()

	snap := Snapshot{
		Mode:       i.state.Mode,
		Owner:      i.state.Owner,
		NoteLayout: i.state.NoteLayout,
		Key:        i.state.Key,
		Sounding:   len(i.sounding),
	}
	mode, err := i.state.ButtonMode()
	if err != nil {
		mode = layout.Performance
	}
	snap.ButtonMode = mode
	for idx, slot := range i.state.Controllers {
		snap.Slots[idx] = SlotView{
			ID:      slot.Controller.ID(),
			Channel: slot.Controller.Channel(),
			Role:    slot.Role,
			Scene:   slot.Scene,
		}
		for _, pad := range slot.Map {
			view := PadView{Grid: pad.Grid, Native: pad.Native, Out: pad.Out, Pressed: pad.Pressed()}
			if b, err := i.reg.Button(pad.Grid.Row, pad.Grid.Col, mode); err == nil {
				view.Action = b.OnPress
			}
			snap.Grid[pad.Grid.Row][pad.Grid.Col] = view
		}
	}
	return snap
}

// Updates returns UpdateChan as a receive-only channel.
func (i *Instrument) Updates() <-chan struct{} {
	return i.UpdateChan
}

func (i *Instrument) notify() {
	select {
	case i.UpdateChan <- struct{}{}:
	default:
	}
}
