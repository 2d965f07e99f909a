// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tab-transposer/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the songs matching opts to <dir>/export.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	songs, err := s.exportSongs(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(songs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the songs matching opts to <dir>/export.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	songs, err := s.exportSongs(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportSongs(ctx context.Context, opts ListOptions) ([]types.Song, error) {
	opts.MaxResults = exportLimit
	songs, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if songs == nil {
		songs = []types.Song{}
	}
	return songs, nil
}

// ImportYAML adds every song in a YAML list (the export.yaml format) under
// new IDs. It stops at the first song that cannot be added.
func (s *Store) ImportYAML(ctx context.Context, r io.Reader) ([]types.Song, error) {
	var songs []types.Song
	if err := yaml.NewDecoder(r).Decode(&songs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing songs: %w", err)
	}

	added := make([]types.Song, 0, len(songs))
	for i, song := range songs {
		got, err := s.Add(ctx, song)
		if err != nil {
			return added, fmt.Errorf("song %d (%s): %w", i+1, song.Title, err)
		}
		added = append(added, got)
	}
	return added, nil
}
