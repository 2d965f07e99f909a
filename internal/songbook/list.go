// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

// ListOptions filters songbook listings.
type ListOptions struct {
	// Query matches a substring of the title or artist, case-insensitively.
	Query string

	// Key filters by stored key. Any spelling of the same note name works
	// ("bb" and "Bb"); enharmonic spellings are distinct keys.
	Key string

	// Artist filters by exact artist name.
	Artist string

	// MaxResults limits the number of songs. Zero uses the store default.
	MaxResults int
}

// List returns songs matching opts ordered by artist, then title.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Song, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, title, artist, song_key, body, tags, created_at FROM songs WHERE 1=1`)

	if opts.Query != "" {
		like := "%" + strings.ToLower(opts.Query) + "%"
		qb.WriteString(` AND (lower(title) LIKE ? OR lower(artist) LIKE ?)`)
		args = append(args, like, like)
	}
	if opts.Key != "" {
		k, err := pitch.ParseKey(opts.Key)
		if err != nil {
			return nil, err
		}
		qb.WriteString(` AND song_key = ?`)
		args = append(args, k.String())
	}
	if opts.Artist != "" {
		qb.WriteString(` AND artist = ?`)
		args = append(args, opts.Artist)
	}

	qb.WriteString(` ORDER BY artist, title LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying songbook: %w", err)
	}
	defer rows.Close()

	var songs []types.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating songs: %w", err)
	}
	return songs, nil
}
