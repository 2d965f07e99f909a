// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songbook persists tabs with their keys in a local SQLite database
// and serves them back in any key.
package songbook

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/tab"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

const dbFile = "songbook.db"

var (
	// ErrNotFound is returned for song IDs that are not in the songbook.
	ErrNotFound = errors.New("song not found")

	// ErrInvalidSong is returned by Add for songs missing required fields.
	ErrInvalidSong = errors.New("invalid song")
)

// Store manages the songbook SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the songbook at cfg.Dir/songbook.db and creates
// the schema if it does not exist.
func NewStore(cfg types.SongbookConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultSongbookDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating songbook directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultSongbookMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			song_key TEXT NOT NULL,
			body TEXT NOT NULL,
			tags TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_artist_title ON songs(artist, title)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_key ON songs(song_key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add stores song under a new ID. The key must be a valid note; it is saved
// in display form (e.g. "Bb").
func (s *Store) Add(ctx context.Context, song types.Song) (types.Song, error) {
	if strings.TrimSpace(song.Title) == "" {
		return types.Song{}, fmt.Errorf("%w: title is required", ErrInvalidSong)
	}
	k, err := pitch.ParseKey(song.Key)
	if err != nil {
		return types.Song{}, err
	}

	song.ID = uuid.NewString()
	song.Key = k.String()
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now().UTC()
	}

	tagsJSON, _ := json.Marshal(song.Tags)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO songs (id, title, artist, song_key, body, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		song.ID, song.Title, song.Artist, song.Key, song.Body,
		string(tagsJSON), song.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Song{}, fmt.Errorf("inserting song: %w", err)
	}
	return song, nil
}

// Get returns the song with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Song, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, artist, song_key, body, tags, created_at FROM songs WHERE id = ?`, id)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Song{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Song{}, fmt.Errorf("reading song %s: %w", id, err)
	}
	return song, nil
}

// Delete removes the song with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting song %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting song %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Transposed returns the song rewritten into key to. The stored song is not
// changed.
func (s *Store) Transposed(ctx context.Context, id string, to pitch.Key, opts tab.Options) (types.Song, tab.Summary, error) {
	song, err := s.Get(ctx, id)
	if err != nil {
		return types.Song{}, tab.Summary{}, err
	}
	from, err := pitch.ParseKey(song.Key)
	if err != nil {
		return types.Song{}, tab.Summary{}, fmt.Errorf("stored song %s: %w", id, err)
	}

	body, sum := tab.New(opts).TransposeSummary(song.Body, from, to)
	song.Body = body
	song.Key = to.String()
	return song, sum, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (types.Song, error) {
	var (
		song      types.Song
		tagsJSON  sql.NullString
		createdAt string
	)
	if err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Key, &song.Body, &tagsJSON, &createdAt); err != nil {
		return types.Song{}, err
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &song.Tags)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		song.CreatedAt = t
	}
	return song, nil
}
