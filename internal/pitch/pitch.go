// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pitch models the 12-class chromatic space and the two spelling
// tables used to name and rename notes.
package pitch

import "strings"

// Classes is the number of pitch classes in the chromatic space.
const Classes = 12

// Table is a spelling table indexed by pitch class.
type Table [Classes]string

// Flat is the natural/flat-preferred spelling table. The index of a spelling
// is its pitch class.
var Flat = Table{"ab", "a", "bb", "b", "c", "db", "d", "eb", "e", "f", "f#", "g"}

// Alt holds the alternate spellings of the same pitch classes as Flat.
var Alt = Table{"g#", "a", "a#", "b", "b#", "c#", "d", "d#", "e", "e#", "gb", "g"}

// Normalize trims surrounding whitespace and lowercases a note spelling.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAltSpelling reports whether s is one of the five spellings that select
// the Alt table: g#, a#, c#, d#, gb. It looks at the text only, so "f#" is
// not alt even though it carries a sharp.
func IsAltSpelling(s string) bool {
	switch Normalize(s) {
	case "g#", "a#", "c#", "d#", "gb":
		return true
	}
	return false
}

// IndexOf returns the pitch class of spelling in t. Callers check validity
// first; an unknown spelling falls back to 0.
func IndexOf(t Table, spelling string) int {
	spelling = Normalize(spelling)
	for i, s := range t {
		if s == spelling {
			return i
		}
	}
	return 0
}

// Contains reports whether spelling appears in t.
func (t Table) Contains(spelling string) bool {
	spelling = Normalize(spelling)
	for _, s := range t {
		if s == spelling {
			return true
		}
	}
	return false
}

// IsValidNote reports whether s spells a note in either table.
func IsValidNote(s string) bool {
	return Flat.Contains(s) || Alt.Contains(s)
}

// Class returns the pitch class of a valid note, checking the Alt table
// before the Flat table.
func Class(note string) int {
	if Alt.Contains(note) {
		return IndexOf(Alt, note)
	}
	return IndexOf(Flat, note)
}

// Spell returns the spelling of pitch class pc, from Alt when alt is set and
// from Flat otherwise. pc is reduced mod 12 first.
func Spell(pc int, alt bool) string {
	pc = Wrap(pc)
	if alt {
		return Alt[pc]
	}
	return Flat[pc]
}

// Wrap reduces n into [0, 11].
func Wrap(n int) int {
	n %= Classes
	if n < 0 {
		n += Classes
	}
	return n
}
