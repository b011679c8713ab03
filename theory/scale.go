package theory

import (
	"fmt"
	"sort"

	"padgrid/errs"
)

// ErrInvalidKey reports a tonic, mode or scale type outside its range.
var ErrInvalidKey = fmt.Errorf("%w: invalid key", errs.ErrConfiguration)

// ScaleType selects the family the seven modes are derived from.
type ScaleType int

const (
	Natural ScaleType = iota
	Harmonic
)

func (s ScaleType) String() string {
	switch s {
	case Natural:
		return "nat"
	case Harmonic:
		return "harm"
	}
	return fmt.Sprintf("ScaleType(%d)", int(s))
}

func (s ScaleType) Valid() bool {
	return s == Natural || s == Harmonic
}

// ParseScaleType accepts "nat"/"natural" and "harm"/"harmonic".
func ParseScaleType(name string) (ScaleType, error) {
	switch name {
	case "nat", "natural":
		return Natural, nil
	case "harm", "harmonic":
		return Harmonic, nil
	}
	return 0, fmt.Errorf("%w: unknown scale type %q", ErrInvalidKey, name)
}

// Mode is 1-based: 1 ionian ... 7 locrian.
type Mode int

func (m Mode) Valid() bool {
	return m >= 1 && m <= 7
}

var modeNames = [7]string{"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian"}

var numerals = [7]string{"i", "ii", "iii", "iv", "v", "vi", "vii"}

// ModeName returns the display name of a mode. Harmonic modes carry a "#7" suffix.
func ModeName(s ScaleType, m Mode) string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	if s == Harmonic {
		return modeNames[m-1] + "#7"
	}
	return modeNames[m-1]
}

// Numeral returns the roman numeral of a mode.
func Numeral(m Mode) string {
	if !m.Valid() {
		return "?"
	}
	return numerals[m-1]
}

// ScaleTable is seven absolute semitone offsets from C, ascending.
type ScaleTable [7]int

// tables[scale][tonic][mode-1]
var tables = generateTables()

// windowForMode maps mode number to its circle-of-fifths window of C.
var windowForMode = [7]int{1, 3, 5, 0, 2, 4, 6}

func generateTables() [2][12][7]ScaleTable {
	circle := []int{int(C), int(G), int(D), int(A), int(E), int(B), int(Fs), int(Db), int(Ab), int(Eb), int(Bb), int(F)}
	circle = append(circle, circle...)

	var windows [7]ScaleTable
	for x := 0; x < 7; x++ {
		w := append([]int(nil), circle[12-x:19-x]...)
		sort.Ints(w)
		copy(windows[x][:], w)
	}

	var out [2][12][7]ScaleTable
	for m := 0; m < 7; m++ {
		nat := windows[windowForMode[m]]
		harm := nat
		harm[6]++
		for tonic := 0; tonic < 12; tonic++ {
			for i := 0; i < 7; i++ {
				out[Natural][tonic][m][i] = nat[i] + tonic
				out[Harmonic][tonic][m][i] = harm[i] + tonic
			}
		}
	}
	return out
}

// Table returns the scale table for a key.
func Table(tonic PitchClass, m Mode, s ScaleType) (ScaleTable, error) {
	if err := (Key{Tonic: tonic, Mode: m, Scale: s}).Validate(); err != nil {
		return ScaleTable{}, err
	}
	return tables[s][tonic][m-1], nil
}

// Key is the tonic, mode and scale type every pad note is resolved against.
type Key struct {
	Tonic PitchClass
	Mode  Mode
	Scale ScaleType
}

// DefaultKey is C ionian, natural.
func DefaultKey() Key {
	return Key{Tonic: C, Mode: 1, Scale: Natural}
}

func NewKey(tonic PitchClass, m Mode, s ScaleType) (Key, error) {
	k := Key{Tonic: tonic, Mode: m, Scale: s}
	if err := k.Validate(); err != nil {
		return Key{}, err
	}
	return k, nil
}

func (k Key) Validate() error {
	if !k.Tonic.Valid() {
		return fmt.Errorf("%w: tonic %d not in 0-11", ErrInvalidKey, int(k.Tonic))
	}
	if !k.Mode.Valid() {
		return fmt.Errorf("%w: mode %d not in 1-7", ErrInvalidKey, int(k.Mode))
	}
	if !k.Scale.Valid() {
		return fmt.Errorf("%w: scale type %d", ErrInvalidKey, int(k.Scale))
	}
	return nil
}

// Set replaces tonic, mode and scale together; on error k is unchanged.
func (k *Key) Set(tonic PitchClass, m Mode, s ScaleType) error {
	nk, err := NewKey(tonic, m, s)
	if err != nil {
		return err
	}
	*k = nk
	return nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Tonic, ModeName(k.Scale, k.Mode))
}

// NormalizeDegree folds any 1-based degree into 1-7, carrying whole octaves.
// Degree 8 is degree 1 an octave up; degree 0 is degree 7 an octave down.
func NormalizeDegree(degree, octave int) (int, int) {
	d := degree - 1
	carry := floorDiv(d, 7)
	return d - carry*7 + 1, octave + carry
}

// NoteByDegree resolves a scale degree and octave into an absolute note number.
func NoteByDegree(k Key, degree, octave int) (int, error) {
	table, err := Table(k.Tonic, k.Mode, k.Scale)
	if err != nil {
		return 0, err
	}
	eff, oct := NormalizeDegree(degree, octave)
	return table[eff-1] + 12*oct, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
