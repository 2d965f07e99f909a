// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tab-transposer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tab-transposer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tab-transposer CLI.
var rootCmd = &cobra.Command{
	Use:   "tab-transposer",
	Short: "Transpose the chords of guitar tabs into another key",
	Long: `tab-transposer rewrites the chord lines of a tab from one key into another
and leaves lyrics and other text untouched.

Run transpose with no keys for the interactive session, or use batch,
songbook, and serve for job files, a local song library, and the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// envKeyReplacer maps nested keys to variable names: songbook.dir is read
// from TAB_TRANSPOSER_SONGBOOK_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tab-transposer.yaml or ~/.config/tab-transposer/tab-transposer.yaml)")
	rootCmd.PersistentFlags().String("songbook-dir", "", "songbook directory (default: songbook)")
	viper.BindPFlag("songbook.dir", rootCmd.PersistentFlags().Lookup("songbook-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tab-transposer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tab-transposer"))
		}
	}

	// Unmarshal only sees environment values for keys viper already knows.
	viper.SetDefault("transpose.legacy_slash_quality", false)
	viper.SetDefault("batch.legacy_slash_quality", false)
	viper.SetDefault("batch.workers", 0)
	viper.SetDefault("batch.overwrite", false)
	viper.SetDefault("songbook.dir", types.DefaultSongbookDir)
	viper.SetDefault("songbook.max_results", types.DefaultSongbookMaxResults)
	viper.SetDefault("server.addr", types.DefaultServerAddr)
	viper.SetDefault("server.allowed_origins", []string{})

	viper.SetEnvPrefix("TAB_TRANSPOSER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
