package theory

import (
	"fmt"
	"strings"
)

// PitchClass is a note name independent of octave, 0 (C) through 11 (B).
type PitchClass int

const (
	C PitchClass = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B
)

// Flat spellings
const (
	Db = Cs
	Eb = Ds
	Gb = Fs
	Ab = Gs
	Bb = As
)

// PitchNames holds the canonical name of each pitch class.
var PitchNames = [12]string{"C", "Cs", "D", "Ds", "E", "F", "Fs", "G", "Gs", "A", "As", "B"}

var pitchAliases = map[string]PitchClass{
	"c": C, "cs": Cs, "c#": Cs, "db": Db,
	"d": D, "ds": Ds, "d#": Ds, "eb": Eb,
	"e": E,
	"f": F, "fs": Fs, "f#": Fs, "gb": Gb,
	"g": G, "gs": Gs, "g#": Gs, "ab": Ab,
	"a": A, "as": As, "a#": As, "bb": Bb,
	"b": B,
}

func (p PitchClass) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PitchClass(%d)", int(p))
	}
	return PitchNames[p]
}

func (p PitchClass) Valid() bool {
	return p >= C && p <= B
}

// ParsePitchClass accepts canonical names, flats ("Eb") and sharps ("D#").
func ParsePitchClass(name string) (PitchClass, error) {
	p, ok := pitchAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown pitch class %q", ErrInvalidKey, name)
	}
	return p, nil
}

// NoteName renders an absolute MIDI note, e.g. 60 -> "C5" (octave = note/12).
func NoteName(note int) string {
	if note < 0 {
		return fmt.Sprintf("?%d", note)
	}
	return fmt.Sprintf("%s%d", PitchNames[note%12], note/12)
}
