package instrument

import (
	"errors"
	"fmt"

	"padgrid/debug"
	"padgrid/grid"
	"padgrid/layout"
	"padgrid/midi"
	"padgrid/padmap"
	"padgrid/theory"
)

// handle is installed as every controller's event handler.
func (i *Instrument) handle(c *midi.Controller, ev midi.Event) {
	i.mu.Lock()
	changed, err := i.route(c.Index(), ev)
	i.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, grid.ErrUnmappedNote):
		debug.Warn("route", "dropping %s: %v", ev, err)
	case errors.Is(err, ErrInvalidTransition):
		debug.Error("assert", err, "%s: %s", c, ev)
	default:
		debug.Error("route", err, "%s: %s", c, ev)
	}
	if changed {
		i.notify()
	}
}

// route applies one event. It reports whether the state changed; the
// caller holds i.mu.
func (i *Instrument) route(idx int, ev midi.Event) (bool, error) {
	if !i.started || idx < 0 || idx >= len(i.state.Controllers) {
		return false, nil
	}
	slot := i.state.Controllers[idx]

	if pressed, ok := ev.IsScene(); ok {
		return i.scene(idx, pressed)
	}
	if !ev.IsNote() || ev.Channel != i.state.InputChannel {
		debug.Log("route", "%s: ignoring %s", slot.Controller, ev)
		return false, nil
	}

	pad, err := slot.Map.Lookup(ev.Note)
	if err != nil {
		return false, fmt.Errorf("%s: %w", slot.Controller, err)
	}
	pressed := ev.Pressed()
	pad.SetPressed(pressed)

	if pressed && i.swapRequested(slot) {
		i.promote(idx)
		return true, nil
	}

	v := voice{controller: idx, native: pad.Native}
	if !pressed {
		if err := i.release(v, ev); err != nil {
			return true, err
		}
	}

	switch i.state.Mode {
	case Performance:
		if pressed && pad.Button.OnPress.Kind == layout.OutNote {
			i.sounding[v] = pad.Out
			return true, i.emit(ev, pad.Out)
		}
		return true, nil
	case Setting:
		return true, i.settings(pad, ev)
	}
	return true, fmt.Errorf("%w: %s", ErrInvalidTransition, i.state.Mode)
}

// scene handles the scene button. A press in Performance opens the
// settings overlay owned by that controller; the owner's release closes
// it. Other edges only update the controller's flag.
func (i *Instrument) scene(idx int, pressed bool) (bool, error) {
	slot := i.state.Controllers[idx]
	slot.Scene.Pressed = pressed

	switch i.state.Mode {
	case Performance:
		if !pressed {
			return true, nil
		}
		i.state.Mode = Setting
		i.state.Owner = idx
		slot.Scene.Page = 1
		debug.Log("mode", "setting(%d) %s", idx, layout.SettingsMode(slot.Role, 1))
		return true, lights(slot, 0b1111)
	case Setting:
		if pressed || idx != i.state.Owner {
			return true, nil
		}
		i.state.Mode = Performance
		slot.Scene.Page = 0
		debug.Log("mode", "performance")
		return true, lights(slot, 0)
	}
	return false, fmt.Errorf("%w: scene on %d in %s", ErrInvalidTransition, idx, i.state.Mode)
}

// swapRequested is true while the scene button is held together with both
// landmark pads.
func (i *Instrument) swapRequested(slot *Slot) bool {
	if !slot.Scene.Pressed {
		return false
	}
	for _, n := range grid.Landmarks() {
		pad, ok := slot.Map[n]
		if !ok || !pad.Pressed() {
			return false
		}
	}
	return true
}

// promote makes controller idx the top half. Maps are rebound, not rebuilt.
func (i *Instrument) promote(idx int) {
	slot := i.state.Controllers[idx]
	if slot.Role == grid.Top {
		return
	}
	other := i.state.Controllers[1-idx]
	slot.Role, other.Role = grid.Top, grid.Bottom
	i.rebind(i.maps)
	debug.Info("instrument", "%s is now top", slot.Controller)
}

// rebind points every slot at the map of its role, carrying the pressed
// flags over so held pads stay held.
func (i *Instrument) rebind(maps padmap.Maps) {
	held := make([]map[uint8]bool, len(i.state.Controllers))
	for idx, slot := range i.state.Controllers {
		held[idx] = make(map[uint8]bool, len(slot.Map))
		for n, pad := range slot.Map {
			held[idx][n] = pad.Pressed()
		}
	}
	maps.Top.Reset()
	maps.Bottom.Reset()
	for idx, slot := range i.state.Controllers {
		slot.Map = maps.For(slot.Role)
		for n, on := range held[idx] {
			if pad, ok := slot.Map[n]; ok && on {
				pad.SetPressed(true)
			}
		}
	}
	i.maps = maps
}

// release ends the note a pad started, whatever the mode is now.
func (i *Instrument) release(v voice, ev midi.Event) error {
	note, ok := i.sounding[v]
	if !ok {
		return nil
	}
	delete(i.sounding, v)
	return i.emit(ev, note)
}

func (i *Instrument) emit(ev midi.Event, note uint8) error {
	msg := ev.WithNote(note, i.state.OutputChannel)
	debug.Log("out", "%s -> %s", ev, msg)
	if err := i.out.Send(msg); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// settings resolves a pad against the owner's settings page and runs the
// action for the edge.
func (i *Instrument) settings(pad *padmap.Pad, ev midi.Event) error {
	mode, err := i.state.ButtonMode()
	if err != nil {
		return err
	}
	b, err := i.reg.Button(pad.Grid.Row, pad.Grid.Col, mode)
	if err != nil {
		return err
	}
	action := b.OnRelease
	if ev.Pressed() {
		action = b.OnPress
	}
	return i.apply(action)
}

func (i *Instrument) apply(a layout.Action) error {
	k := i.state.Key
	switch a.Kind {
	case layout.None, layout.OutNote:
		return nil
	case layout.SceneDigit:
		return i.selectPage(a.Digit)
	case layout.SetTonic:
		return i.setKey(a.Tonic, k.Mode, k.Scale)
	case layout.SetScale:
		return i.setKey(k.Tonic, k.Mode, a.Scale)
	case layout.SetMode:
		return i.setKey(k.Tonic, a.Mode, k.Scale)
	case layout.SetMajorDefault:
		return i.setKey(k.Tonic, 1, theory.Natural)
	case layout.SetNoteLayout:
		return i.rebuild(k, a.Layout)
	}
	return fmt.Errorf("%w: action %s", ErrInvalidTransition, a)
}

// selectPage switches the owner's settings page and lights its LED.
func (i *Instrument) selectPage(page int) error {
	if page < 1 || page > layout.Pages {
		return fmt.Errorf("%w: settings page %d", ErrInvalidTransition, page)
	}
	slot := i.state.Controllers[i.state.Owner]
	if slot.Scene.Page == page {
		return nil
	}
	slot.Scene.Page = page
	debug.Log("mode", "setting(%d) %s", i.state.Owner, layout.SettingsMode(slot.Role, page))
	return lights(slot, 1<<(page-1))
}

func lights(slot *Slot, mask uint8) error {
	slot.Scene.LEDs = mask
	return slot.Controller.SetLEDs(mask)
}

func (i *Instrument) setKey(tonic theory.PitchClass, m theory.Mode, s theory.ScaleType) error {
	k := i.state.Key
	if err := k.Set(tonic, m, s); err != nil {
		return err
	}
	if k == i.state.Key {
		return nil
	}
	return i.rebuild(k, i.state.NoteLayout)
}

// rebuild resolves both maps again for a new key or note layout. On error
// the current maps stay.
func (i *Instrument) rebuild(k theory.Key, noteLayout string) error {
	if k == i.state.Key && noteLayout == i.state.NoteLayout {
		return nil
	}
	maps, err := padmap.Build(i.reg, k, noteLayout, layout.Performance)
	if err != nil {
		return err
	}
	i.rebind(maps)
	i.state.Key = k
	i.state.NoteLayout = noteLayout
	debug.Info("instrument", "now %s, layout %s", k, noteLayout)
	return nil
}
