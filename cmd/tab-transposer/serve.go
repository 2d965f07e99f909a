// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tab-transposer/internal/server"
	"github.com/pdiddy/tab-transposer/internal/songbook"
	"github.com/pdiddy/tab-transposer/internal/tab"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transposer and songbook over HTTP",
	Long: `Serve starts a JSON API:

  POST /transpose        {from, to, text, legacy_slash_quality}
  GET  /chords/{symbol}  parse a chord symbol
  GET  /songs            list songs (q, key, artist)
  GET  /songs/{id}       get a song, transposed with ?key=
  POST /songs            add a song

With --no-songbook the song routes answer 503.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: :8080)")
	serveCmd.Flags().Bool("no-songbook", false, "serve without opening the songbook")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var songs server.Songbook
	if noSongbook, _ := cmd.Flags().GetBool("no-songbook"); !noSongbook {
		store, err := songbook.NewStore(cfg.Songbook)
		if err != nil {
			return err
		}
		defer store.Close()
		songs = store
	}

	opts := tab.Options{LegacySlashQuality: cfg.Transpose.LegacySlashQuality}
	srv := server.New(cfg.Server, songs, opts)
	return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr, cmd.ErrOrStderr())
}
