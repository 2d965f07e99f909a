// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chord

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualitiesSorted(t *testing.T) {
	q := Qualities()
	assert.True(t, sort.StringsAreSorted(q), "quality vocabulary must stay sorted for binary search")
	seen := make(map[string]bool, len(q))
	for _, s := range q {
		assert.False(t, seen[s], "duplicate quality %q", s)
		seen[s] = true
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"G", "G"},
		{"Gb", "Gb"},
		{"G#m7", "G#"},
		{"Am7", "A"},
		{"Bbmaj7", "Bb"},
		{"Cm7b5", "C"},
		{"Gb5#9", "G"},
		{"Gbb5#9", "Gb"},
		{"C#5#9", "C"},
		{"Db#5b9", "Db"},
		{"D/F#", "D"},
		{"Bb/D", "Bb"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Root(tt.word))
		})
	}
}

func TestIsValidQuality(t *testing.T) {
	for _, q := range []string{"", "m", "m7", "M7", "MAJ7", "sus4", "6/9", "m9(maj7)", "7b5(#9)", "#5#9"} {
		assert.True(t, IsValidQuality(q), q)
	}
	for _, q := range []string{"sus3", "no5", "m7/", "ovie", "ing", "add11"} {
		assert.False(t, IsValidQuality(q), q)
	}
}

func TestIsValidSlash(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"D/F#", true},
		{"Am7/G", true},
		{"Bbmaj7#11/A", true},
		{"C/", false},
		{"/A", false},
		{"C/G/B", false},
		{"C6/9", false},
		{"D6/9/A", false},
		{"Dm/H", false},
		{"C", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSlash(tt.word))
		})
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{
		"A", "c", "Am7", "Bbm7", "D/F#", "C6/9", "Gb5#9", "Gbb5#9",
		"F#m7b5", "Csus4", "Dmaj7#11", "Em(maj7)", "Bb/D", "Cmaj7/E",
		"E#", "B#m", "AM",
	}
	for _, w := range valid {
		assert.True(t, IsValid(w), w)
	}

	invalid := []string{
		"", "H", "Intro:", "Movie", "King", "|", "x2", "Am7/",
		"C/G/B", "D6/9/A", "Cno5", "Dm/H", "Cb", "(C)",
	}
	for _, w := range invalid {
		assert.False(t, IsValid(w), w)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		word string
		want Token
	}{
		{"A", Token{Root: "A"}},
		{"Am7", Token{Root: "A", Quality: "m7"}},
		{"C6/9", Token{Root: "C", Quality: "6/9"}},
		{"D/F#", Token{Root: "D", Bass: "F#"}},
		{"Bbmaj7#11/A", Token{Root: "Bb", Quality: "maj7#11", Bass: "A"}},
		{"Gbb5#9", Token{Root: "Gb", Quality: "b5#9"}},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := Parse(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.word, got.String())
			assert.Equal(t, tt.want.Bass != "", got.IsSlash())
		})
	}

	_, ok := Parse("Intro:")
	assert.False(t, ok)
}
