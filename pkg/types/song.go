// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for tab-transposer: stored
// songs, batch jobs, and configuration.
package types

import "time"

// Song is a tab stored in the songbook together with the key it is written in.
type Song struct {
	// ID is a UUID assigned when the song is added.
	ID string `json:"id" yaml:"id"`

	// Title is the song title.
	Title string `json:"title" yaml:"title"`

	// Artist is the performing artist, if known.
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`

	// Key is the tonic the tab is written in, as a note name (e.g. "A", "Bb").
	Key string `json:"key" yaml:"key"`

	// Body is the full tab text, chord lines and lyrics.
	Body string `json:"body" yaml:"body"`

	// Tags are free-form labels such as "capo-2" or "worship".
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// CreatedAt is when the song was added.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
