// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/songbook"
	"github.com/pdiddy/tab-transposer/internal/tab"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

var songbookCmd = &cobra.Command{
	Use:   "songbook",
	Short: "Manage the local songbook (add, list, show, delete, export, import)",
	Long: `Songbook keeps tabs with the key they are written in in a local SQLite
database, so any song can be printed in any key later.`,
}

// openSongbook opens the store configured by flags, env, and config file.
func openSongbook() (*songbook.Store, types.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, types.Config{}, err
	}
	store, err := songbook.NewStore(cfg.Songbook)
	if err != nil {
		return nil, types.Config{}, err
	}
	return store, cfg, nil
}

// --- add subcommand ---

var songbookAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a tab to the songbook",
	Long: `Add stores a tab read from file, or stdin when no file is given, under
--title in key --key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSongbookAdd,
}

func runSongbookAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	artist, _ := cmd.Flags().GetString("artist")
	key, _ := cmd.Flags().GetString("key")
	tags, _ := cmd.Flags().GetStringSlice("tag")

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}
	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading tab: %w", err)
	}

	store, _, err := openSongbook()
	if err != nil {
		return err
	}
	defer store.Close()

	song, err := store.Add(cmd.Context(), types.Song{
		Title:  title,
		Artist: artist,
		Key:    key,
		Body:   string(body),
		Tags:   tags,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s, key of %s)\n", song.ID, song.Title, song.Key)
	return nil
}

// --- list subcommand ---

var songbookListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List songs, optionally matching a title or artist query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSongbookList,
}

func listOptsFromFlags(cmd *cobra.Command, args []string) songbook.ListOptions {
	var opts songbook.ListOptions
	if len(args) > 0 {
		opts.Query = args[0]
	}
	opts.Key, _ = cmd.Flags().GetString("key")
	opts.Artist, _ = cmd.Flags().GetString("artist")
	return opts
}

func runSongbookList(cmd *cobra.Command, args []string) error {
	store, _, err := openSongbook()
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.List(cmd.Context(), listOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSongList(cmd.OutOrStdout(), songs, jsonOutput)
}

func formatSongList(w io.Writer, songs []types.Song, jsonOutput bool) error {
	if jsonOutput {
		if songs == nil {
			songs = []types.Song{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(songs)
	}

	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs found.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-4s  %-30s  %s\n", "ID", "Key", "Title", "Artist")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, s := range songs {
		fmt.Fprintf(w, "%-36s  %-4s  %-30s  %s\n", s.ID, s.Key, truncate(s.Title, 30), s.Artist)
	}
	fmt.Fprintf(w, "\n%d songs\n", len(songs))
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- show subcommand ---

var songbookShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a song, transposed with --key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSongbookShow,
}

func runSongbookShow(cmd *cobra.Command, args []string) error {
	store, cfg, err := openSongbook()
	if err != nil {
		return err
	}
	defer store.Close()

	keyName, _ := cmd.Flags().GetString("key")
	var song types.Song
	if keyName == "" {
		song, err = store.Get(cmd.Context(), args[0])
	} else {
		to, perr := pitch.ParseKey(keyName)
		if perr != nil {
			return fmt.Errorf("--key: %w", perr)
		}
		opts := tab.Options{LegacySlashQuality: cfg.Transpose.LegacySlashQuality}
		song, _, err = store.Transposed(cmd.Context(), args[0], to, opts)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s", song.Title)
	if song.Artist != "" {
		fmt.Fprintf(w, " - %s", song.Artist)
	}
	fmt.Fprintf(w, " (key of %s)\n\n", song.Key)
	fmt.Fprint(w, song.Body)
	return nil
}

// --- delete subcommand ---

var songbookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a song from the songbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openSongbook()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

// --- export subcommand ---

var songbookExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export songs to export.yaml or export.json in the songbook directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSongbookExport,
}

func runSongbookExport(cmd *cobra.Command, args []string) error {
	store, _, err := openSongbook()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)
	format, _ := cmd.Flags().GetString("format")

	var path string
	switch format {
	case "yaml":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unknown export format %q (use yaml or json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// --- import subcommand ---

var songbookImportCmd = &cobra.Command{
	Use:   "import <export.yaml>",
	Short: "Add every song from a YAML export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		store, _, err := openSongbook()
		if err != nil {
			return err
		}
		defer store.Close()

		added, err := store.ImportYAML(cmd.Context(), f)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d songs\n", len(added))
		return err
	},
}

func init() {
	songbookAddCmd.Flags().String("title", "", "song title (required)")
	songbookAddCmd.Flags().String("artist", "", "performing artist")
	songbookAddCmd.Flags().String("key", "", "key the tab is written in (required)")
	songbookAddCmd.Flags().StringSlice("tag", nil, "label for the song (repeatable)")
	songbookAddCmd.MarkFlagRequired("title")
	songbookAddCmd.MarkFlagRequired("key")

	for _, c := range []*cobra.Command{songbookListCmd, songbookExportCmd} {
		c.Flags().String("key", "", "only songs written in this key")
		c.Flags().String("artist", "", "only songs by this artist")
	}
	songbookListCmd.Flags().Int("max", 0, "maximum results (default: songbook.max_results)")
	songbookListCmd.Flags().Bool("json", false, "output as JSON")
	viper.BindPFlag("songbook.max_results", songbookListCmd.Flags().Lookup("max"))

	songbookExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	songbookShowCmd.Flags().String("key", "", "print the song transposed into this key")

	songbookCmd.AddCommand(songbookAddCmd, songbookListCmd, songbookShowCmd,
		songbookDeleteCmd, songbookExportCmd, songbookImportCmd)
	rootCmd.AddCommand(songbookCmd)
}
