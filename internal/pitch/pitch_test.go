// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesAreAligned(t *testing.T) {
	for pc := 0; pc < Classes; pc++ {
		assert.Equal(t, pc, IndexOf(Flat, Flat[pc]), "flat %s", Flat[pc])
		assert.Equal(t, pc, IndexOf(Alt, Alt[pc]), "alt %s", Alt[pc])
	}
}

func TestIsAltSpelling(t *testing.T) {
	for _, s := range []string{"g#", "a#", "c#", "d#", "gb", " G# ", "Gb"} {
		assert.True(t, IsAltSpelling(s), s)
	}
	for _, s := range []string{"f#", "b#", "e#", "ab", "bb", "c", ""} {
		assert.False(t, IsAltSpelling(s), s)
	}
}

func TestIndexOf(t *testing.T) {
	tests := []struct {
		table Table
		note  string
		want  int
	}{
		{Flat, "ab", 0},
		{Flat, " Bb ", 2},
		{Flat, "F#", 10},
		{Alt, "gb", 10},
		{Alt, "C#", 5},
		{Alt, "e#", 9},
		{Flat, "h", 0},
	}
	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexOf(tt.table, tt.note))
		})
	}
}

func TestIsValidNote(t *testing.T) {
	valid := []string{"a", "A", "Bb", "b#", "E#", "gb", "f#", "  c  "}
	for _, s := range valid {
		assert.True(t, IsValidNote(s), s)
	}
	invalid := []string{"", "h", "cb", "fb", "a##", "am", "Intro:"}
	for _, s := range invalid {
		assert.False(t, IsValidNote(s), s)
	}
}

func TestClassPrefersAltTable(t *testing.T) {
	assert.Equal(t, 2, Class("a#"))
	assert.Equal(t, 2, Class("bb"))
	assert.Equal(t, 4, Class("b#"))
	assert.Equal(t, 10, Class("gb"))
	assert.Equal(t, 10, Class("f#"))
}

func TestSpellWraps(t *testing.T) {
	assert.Equal(t, "c", Spell(4, false))
	assert.Equal(t, "b#", Spell(4, true))
	assert.Equal(t, "ab", Spell(12, false))
	assert.Equal(t, "g", Spell(-1, false))
	for n := -30; n <= 30; n++ {
		pc := Wrap(n)
		assert.GreaterOrEqual(t, pc, 0)
		assert.Less(t, pc, Classes)
	}
}

func TestNewKey(t *testing.T) {
	tests := []struct {
		name    string
		class   int
		usesAlt bool
		str     string
	}{
		{"A", 1, false, "A"},
		{"bb", 2, false, "Bb"},
		{"a#", 2, true, "A#"},
		{"F#", 10, false, "F#"},
		{"gb", 10, true, "Gb"},
		{"c#", 5, true, "C#"},
		{"g", 11, false, "G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKey(tt.name)
			assert.Equal(t, tt.class, k.Class())
			assert.Equal(t, tt.usesAlt, k.UsesAlt())
			assert.Equal(t, tt.str, k.String())
		})
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" Eb ")
	require.NoError(t, err)
	assert.Equal(t, "eb", k.Name())
	assert.Equal(t, 7, k.Class())

	_, err = ParseKey("H")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNote))
	assert.Contains(t, err.Error(), `"H"`)
}

func TestMustParseKeyPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseKey("x") })
	assert.NotPanics(t, func() { MustParseKey("d") })
}
