// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chord

import (
	"strings"

	"github.com/pdiddy/tab-transposer/internal/pitch"
)

// Interval returns the distance in pitch classes from one key to another,
// always in [0, 11].
func Interval(from, to pitch.Key) int {
	return pitch.Wrap(to.Class() - from.Class())
}

// TransposeNote moves a valid note spelling up by interval pitch classes and
// spells the result from the Alt table when alt is set.
func TransposeNote(note string, interval int, alt bool) string {
	return pitch.Spell(pitch.Class(note)+interval, alt)
}

// Engine rewrites chord symbols from one key to another. The zero Engine
// keeps a slash chord's quality exactly, which differs from the historic
// console program whenever the root carries an accidental; set
// LegacySlashQuality to reproduce that program's output.
type Engine struct {
	// LegacySlashQuality cuts the quality of a slash chord at
	// len(root)+slashIndex bytes instead of at the slash and appends the bass
	// without its own slash. With a one-letter root the two rules agree; with
	// an accidental on the root the legacy rule repeats the old bass before
	// the new one (Bbmaj7#11/A from A to F gives F#maj7#11/AF).
	LegacySlashQuality bool
}

// Transpose rewrites a valid chord symbol from one key into another. The
// quality is copied verbatim; only the root and bass are respelled, each with
// its first letter uppercased.
func (e Engine) Transpose(word string, from, to pitch.Key) string {
	root := Root(word)
	interval := Interval(from, to)
	alt := to.UsesAlt()

	newRoot := pitch.Capitalize(TransposeNote(root, interval, alt))

	if IsValidSlash(word) {
		i := strings.IndexByte(word, '/')
		newBass := pitch.Capitalize(TransposeNote(word[i+1:], interval, alt))
		if e.LegacySlashQuality {
			end := min(len(root)+i, len(word))
			return newRoot + word[len(root):end] + newBass
		}
		return newRoot + word[min(len(root), i):i] + "/" + newBass
	}

	return newRoot + word[len(root):]
}

// Transpose rewrites a valid chord symbol with the default Engine.
func Transpose(word string, from, to pitch.Key) string {
	return Engine{}.Transpose(word, from, to)
}
