// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chord recognizes chord symbols and rewrites them into another key.
package chord

import (
	"sort"
	"strings"

	"github.com/pdiddy/tab-transposer/internal/pitch"
)

// qualities is the closed vocabulary of chord suffixes, kept in byte order
// for binary search.
var qualities = [...]string{
	"#5#9", "#5b9", "11", "13", "13#11", "13sus", "13sus2", "13sus4",
	"2", "5", "6", "6/9", "7", "7#11", "7#5", "7#9", "7b5", "7b5#9",
	"7b5(#9)", "7b9", "7sus", "7sus2", "7sus4", "9", "9sus", "9sus2",
	"9sus4", "add9", "aug", "aug7#9", "aug9", "b5", "b5#9", "b5b9",
	"dim", "dim7", "m", "m(add9)", "m(maj7)", "m11", "m13", "m6",
	"m6/9", "m7", "m7b5", "m7b9", "m9", "m9(maj7)", "m9b5", "m9m7",
	"m9maj7", "madd9", "maj", "maj13", "maj7", "maj7#11", "maj9",
	"major", "mb6", "min", "minor", "mm7", "mmaj7", "sus", "sus2",
	"sus4",
}

// alterations are the altered-fifth suffixes whose leading "b" or "#" can be
// mistaken for the root's accidental.
var alterations = [...]string{"b5#9", "b5b9", "#5b9", "#5#9"}

// Qualities returns a copy of the recognized chord suffixes in sorted order.
func Qualities() []string {
	out := make([]string, len(qualities))
	copy(out, qualities[:])
	return out
}

// Root returns the note-name prefix of word.
//
// An alteration marker at offset 2 means the first two bytes are the root
// (Gbb5#9 is Gb + b5#9). A marker anywhere else means a single-letter root
// (Gb5#9 is G + b5#9). Without a marker the root takes the accidental when
// the first "b" or "#" sits at offset 1.
func Root(word string) string {
	for _, alt := range alterations {
		if i := strings.Index(word, alt); i >= 0 {
			if i == 2 {
				return prefix(word, 2)
			}
			return prefix(word, 1)
		}
	}
	if strings.Index(word, "b") == 1 || strings.Index(word, "#") == 1 {
		return prefix(word, 2)
	}
	return prefix(word, 1)
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// IsValidQuality reports whether suffix is empty or a recognized chord
// quality. Case is ignored.
func IsValidQuality(suffix string) bool {
	suffix = pitch.Normalize(suffix)
	if suffix == "" {
		return true
	}
	i := sort.SearchStrings(qualities[:], suffix)
	return i < len(qualities) && qualities[i] == suffix
}

// IsValidSlash reports whether word is a chord over a bass note, e.g. D/F#.
// The part before the single slash must be a chord and the part after it a
// note.
func IsValidSlash(word string) bool {
	if strings.Count(word, "/") != 1 {
		return false
	}
	i := strings.IndexByte(word, '/')
	if i == len(word)-1 {
		return false
	}
	return IsValid(word[:i]) && pitch.IsValidNote(word[i+1:])
}

// IsValid reports whether word is a chord symbol: a root note, optionally
// followed by a recognized quality, optionally over a slash bass.
func IsValid(word string) bool {
	if len(word) == 1 {
		return pitch.IsValidNote(word)
	}
	if IsValidSlash(word) {
		return true
	}
	root := Root(word)
	if !pitch.IsValidNote(root) {
		return false
	}
	if root == word {
		return true
	}
	return IsValidQuality(word[len(root):])
}

// Token is a chord symbol split into its parts.
type Token struct {
	Root    string `json:"root" yaml:"root"`
	Quality string `json:"quality" yaml:"quality"`
	Bass    string `json:"bass,omitempty" yaml:"bass,omitempty"`
}

// IsSlash reports whether the token has a bass note.
func (t Token) IsSlash() bool { return t.Bass != "" }

// String reassembles the chord symbol.
func (t Token) String() string {
	if t.Bass == "" {
		return t.Root + t.Quality
	}
	return t.Root + t.Quality + "/" + t.Bass
}

// Parse splits a chord symbol into a Token. ok is false when word is not a
// valid chord.
func Parse(word string) (tok Token, ok bool) {
	if !IsValid(word) {
		return Token{}, false
	}
	root := Root(word)
	if IsValidSlash(word) {
		i := strings.IndexByte(word, '/')
		return Token{
			Root:    root,
			Quality: word[min(len(root), i):i],
			Bass:    word[i+1:],
		}, true
	}
	return Token{Root: root, Quality: word[len(root):]}, true
}
