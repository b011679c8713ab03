package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padgrid/errs"
)

func allKeys() []Key {
	var keys []Key
	for t := C; t <= B; t++ {
		for m := Mode(1); m <= 7; m++ {
			for _, s := range []ScaleType{Natural, Harmonic} {
				keys = append(keys, Key{Tonic: t, Mode: m, Scale: s})
			}
		}
	}
	return keys
}

func TestNaturalModesOfC(t *testing.T) {
	want := map[Mode]ScaleTable{
		1: {0, 2, 4, 5, 7, 9, 11},
		2: {0, 2, 3, 5, 7, 9, 10},
		3: {0, 1, 3, 5, 7, 8, 10},
		4: {0, 2, 4, 6, 7, 9, 11},
		5: {0, 2, 4, 5, 7, 9, 10},
		6: {0, 2, 3, 5, 7, 8, 10},
		7: {0, 1, 3, 5, 6, 8, 10},
	}
	for m, table := range want {
		got, err := Table(C, m, Natural)
		require.NoError(t, err)
		assert.Equal(t, table, got, ModeName(Natural, m))
	}
}

func TestTransposition(t *testing.T) {
	base, err := Table(C, 6, Natural)
	require.NoError(t, err)
	for tonic := C; tonic <= B; tonic++ {
		got, err := Table(tonic, 6, Natural)
		require.NoError(t, err)
		for i := range got {
			assert.Equal(t, base[i]+int(tonic), got[i])
		}
	}
}

func TestHarmonicRaisesSeventh(t *testing.T) {
	for tonic := C; tonic <= B; tonic++ {
		for m := Mode(1); m <= 7; m++ {
			nat, err := Table(tonic, m, Natural)
			require.NoError(t, err)
			harm, err := Table(tonic, m, Harmonic)
			require.NoError(t, err)
			for i := 0; i < 6; i++ {
				assert.Equal(t, nat[i], harm[i])
			}
			assert.Equal(t, nat[6]+1, harm[6])
		}
	}

	minor, err := Table(A, 6, Harmonic)
	require.NoError(t, err)
	assert.Equal(t, ScaleTable{9, 11, 12, 14, 16, 17, 20}, minor)
}

func TestNoteByDegreeMonotonic(t *testing.T) {
	for _, k := range allKeys() {
		prev, err := NoteByDegree(k, -14, 4)
		require.NoError(t, err)
		for d := -13; d <= 21; d++ {
			n, err := NoteByDegree(k, d, 4)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, prev, "%s degree %d", k, d)
			prev = n
		}
	}
}

func TestNoteByDegreeOctaveWrap(t *testing.T) {
	for _, k := range allKeys() {
		for o := 0; o < 8; o++ {
			up, err := NoteByDegree(k, 8, o)
			require.NoError(t, err)
			one, err := NoteByDegree(k, 1, o+1)
			require.NoError(t, err)
			assert.Equal(t, one, up, "%s octave %d", k, o)
		}
	}
}

func TestNoteByDegreeMiddleC(t *testing.T) {
	n, err := NoteByDegree(DefaultKey(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 60, n)
	assert.Equal(t, "C5", NoteName(n))
}

func TestNormalizeDegree(t *testing.T) {
	tests := []struct {
		degree, octave int
		wantD, wantO   int
	}{
		{1, 4, 1, 4},
		{7, 4, 7, 4},
		{8, 4, 1, 5},
		{14, 4, 7, 5},
		{15, 4, 1, 6},
		{0, 4, 7, 3},
		{-6, 4, 1, 3},
		{-7, 4, 7, 2},
	}
	for _, tt := range tests {
		d, o := NormalizeDegree(tt.degree, tt.octave)
		assert.Equal(t, tt.wantD, d, "degree %d", tt.degree)
		assert.Equal(t, tt.wantO, o, "degree %d", tt.degree)
	}
}

func TestKeySet(t *testing.T) {
	k := DefaultKey()
	require.NoError(t, k.Set(D, 2, Harmonic))
	assert.Equal(t, Key{Tonic: D, Mode: 2, Scale: Harmonic}, k)

	assert.ErrorIs(t, k.Set(12, 1, Natural), ErrInvalidKey)
	assert.ErrorIs(t, k.Set(C, 0, Natural), ErrInvalidKey)
	assert.ErrorIs(t, k.Set(C, 8, Natural), ErrInvalidKey)
	assert.ErrorIs(t, k.Set(C, 1, ScaleType(5)), ErrInvalidKey)
	assert.Equal(t, Key{Tonic: D, Mode: 2, Scale: Harmonic}, k, "failed Set leaves key alone")
}

func TestParsePitchClass(t *testing.T) {
	for i, name := range PitchNames {
		p, err := ParsePitchClass(name)
		require.NoError(t, err)
		assert.Equal(t, PitchClass(i), p)
		assert.Equal(t, name, p.String())
	}
	p, err := ParsePitchClass("Eb")
	require.NoError(t, err)
	assert.Equal(t, Ds, p)

	_, err = ParsePitchClass("H")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseScaleType(t *testing.T) {
	s, err := ParseScaleType("harm")
	require.NoError(t, err)
	assert.Equal(t, Harmonic, s)
	_, err = ParseScaleType("melodic")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestInvalidKeyIsConfigurationError(t *testing.T) {
	_, err := NewKey(12, 1, Natural)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = ParsePitchClass("H")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}
