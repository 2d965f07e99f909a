// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNote is returned by ParseKey for names that are not note spellings.
var ErrInvalidNote = errors.New("invalid note")

// Key is the tonic of a tab: its spelling, pitch class, and whether the
// spelling selects the Alt table. The zero value is the key of Ab.
type Key struct {
	name  string
	class int
	alt   bool
}

// NewKey builds a Key from a name already known to be a valid note. It does
// not validate; use ParseKey for untrusted input.
func NewKey(name string) Key {
	name = Normalize(name)
	k := Key{name: name, alt: IsAltSpelling(name)}
	if k.alt {
		k.class = IndexOf(Alt, name)
	} else {
		k.class = IndexOf(Flat, name)
	}
	return k
}

// ParseKey validates name and builds its Key.
func ParseKey(name string) (Key, error) {
	if !IsValidNote(name) {
		return Key{}, fmt.Errorf("key %q: %w", strings.TrimSpace(name), ErrInvalidNote)
	}
	return NewKey(name), nil
}

// MustParseKey is like ParseKey but panics on an invalid name.
func MustParseKey(name string) Key {
	k, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

// Name returns the normalized spelling the key was built from.
func (k Key) Name() string { return k.name }

// Class returns the key's pitch class in [0, 11].
func (k Key) Class() int { return k.class }

// UsesAlt reports whether rewritten chords are spelled from the Alt table.
func (k Key) UsesAlt() bool { return k.alt }

// String returns the key name with its letter uppercased, e.g. "Bb".
func (k Key) String() string {
	return Capitalize(k.name)
}

// Capitalize uppercases the first byte of a note spelling and leaves the
// accidental as it is.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
