// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tab classifies the lines of a song sheet and rewrites the chords on
// chord lines into a new key.
package tab

import (
	"strings"
	"unicode"

	"github.com/pdiddy/tab-transposer/internal/chord"
	"github.com/pdiddy/tab-transposer/internal/pitch"
)

// IsChordLine reports whether the first two words of line are both chords.
// One chord-looking word is not enough: prose often starts with "A". Known
// misfires: "B B King" is a chord line, "Intro: C G" is not.
func IsChordLine(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 {
		return false
	}
	return chord.IsValid(words[0]) && chord.IsValid(words[1])
}

// segment is a run of either whitespace or non-whitespace bytes.
type segment struct {
	text string
	word bool
}

// segments splits line into alternating whitespace and word runs. Joining
// the texts gives back line exactly.
func segments(line string) []segment {
	var segs []segment
	start := 0
	inWord := false
	for i, r := range line {
		isWord := !unicode.IsSpace(r)
		if i == 0 {
			inWord = isWord
			continue
		}
		if isWord != inWord {
			segs = append(segs, segment{text: line[start:i], word: inWord})
			start = i
			inWord = isWord
		}
	}
	if start < len(line) {
		segs = append(segs, segment{text: line[start:], word: inWord})
	}
	return segs
}

// Lines splits text on newlines. A trailing newline does not produce an
// empty final line, and empty text has no lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// rewriteLine transposes every chord word of a chord line and returns the
// rebuilt line with the number of chords it rewrote.
func rewriteLine(e chord.Engine, line string, from, to pitch.Key) (string, int) {
	var b strings.Builder
	b.Grow(len(line))
	n := 0
	for _, seg := range segments(line) {
		if seg.word && chord.IsValid(seg.text) {
			b.WriteString(e.Transpose(seg.text, from, to))
			n++
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String(), n
}

// Transpose rewrites the chords of text from one key into another. Lines
// that are not chord lines are copied unchanged. Every output line ends in a
// newline, the last one included.
func Transpose(text string, from, to pitch.Key) string {
	return New(Options{}).Transpose(text, from, to)
}
