// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes transposition, chord parsing, and the songbook over
// a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/pdiddy/tab-transposer/internal/chord"
	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/songbook"
	"github.com/pdiddy/tab-transposer/internal/tab"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

const maxBodyBytes = 4 << 20

// Songbook is the part of songbook.Store the API uses.
type Songbook interface {
	Add(ctx context.Context, song types.Song) (types.Song, error)
	Get(ctx context.Context, id string) (types.Song, error)
	List(ctx context.Context, opts songbook.ListOptions) ([]types.Song, error)
	Transposed(ctx context.Context, id string, to pitch.Key, opts tab.Options) (types.Song, tab.Summary, error)
}

// Server routes API requests. A nil Songbook disables the song routes.
type Server struct {
	songs   Songbook
	opts    tab.Options
	handler http.Handler
}

// New builds a Server. opts are the transposition defaults a request can
// override.
func New(cfg types.ServerConfig, songs Songbook, opts tab.Options) *Server {
	s := &Server{songs: songs, opts: opts}

	r := mux.NewRouter()
	r.HandleFunc("/transpose", s.handleTranspose).Methods(http.MethodPost)
	r.HandleFunc("/chords/{symbol:.+}", s.handleChord).Methods(http.MethodGet)
	r.HandleFunc("/songs", s.handleListSongs).Methods(http.MethodGet)
	r.HandleFunc("/songs", s.handleAddSong).Methods(http.MethodPost)
	r.HandleFunc("/songs/{id}", s.handleGetSong).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(r)
	return s
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string, w io.Writer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		fmt.Fprintf(w, "Listening on %s\n", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		fmt.Fprintln(w, "Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// --- transpose ---

type transposeRequest struct {
	From               string `json:"from"`
	To                 string `json:"to"`
	Text               string `json:"text"`
	LegacySlashQuality *bool  `json:"legacy_slash_quality,omitempty"`
}

type transposeResponse struct {
	Text string `json:"text"`
	tab.Summary
}

func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	var req transposeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	from, err := pitch.ParseKey(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	to, err := pitch.ParseKey(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}

	opts := s.opts
	if req.LegacySlashQuality != nil {
		opts.LegacySlashQuality = *req.LegacySlashQuality
	}
	text, sum := tab.New(opts).TransposeSummary(req.Text, from, to)
	writeJSON(w, http.StatusOK, transposeResponse{Text: text, Summary: sum})
}

// --- chords ---

type chordResponse struct {
	Symbol  string `json:"symbol"`
	Valid   bool   `json:"valid"`
	Root    string `json:"root"`
	Quality string `json:"quality"`
	Bass    string `json:"bass"`
}

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	tok, ok := chord.Parse(symbol)
	writeJSON(w, http.StatusOK, chordResponse{
		Symbol:  symbol,
		Valid:   ok,
		Root:    tok.Root,
		Quality: tok.Quality,
		Bass:    tok.Bass,
	})
}

// --- songs ---

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	if !s.requireSongbook(w) {
		return
	}
	q := r.URL.Query()
	songs, err := s.songs.List(r.Context(), songbook.ListOptions{
		Query:  q.Get("q"),
		Key:    q.Get("key"),
		Artist: q.Get("artist"),
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if songs == nil {
		songs = []types.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	if !s.requireSongbook(w) {
		return
	}
	id := mux.Vars(r)["id"]

	keyName := r.URL.Query().Get("key")
	if keyName == "" {
		song, err := s.songs.Get(r.Context(), id)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, song)
		return
	}

	to, err := pitch.ParseKey(keyName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	song, _, err := s.songs.Transposed(r.Context(), id, to, s.opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	if !s.requireSongbook(w) {
		return
	}
	var song types.Song
	if err := decodeBody(r, &song); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	added, err := s.songs.Add(r.Context(), song)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) requireSongbook(w http.ResponseWriter) bool {
	if s.songs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("songbook is not configured"))
		return false
	}
	return true
}

// --- helpers ---

func statusFor(err error) int {
	switch {
	case errors.Is(err, songbook.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pitch.ErrInvalidNote), errors.Is(err, songbook.ErrInvalidSong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
