// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tab-transposer/internal/batch"
	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/prompt"
	"github.com/pdiddy/tab-transposer/internal/tab"
)

var transposeCmd = &cobra.Command{
	Use:   "transpose [file]",
	Short: "Transpose a tab from one key to another",
	Long: `Transpose rewrites every chord line of a tab from the --from key into the
--to key. The tab is read from file, or from stdin when no file is given, and
written to --out or stdout.

Without --from and --to, transpose starts an interactive session: it asks for
both keys, reads the tab until a line reading "end", and prints the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspose,
}

func init() {
	transposeCmd.Flags().String("from", "", "key the tab is written in (e.g. A, Bb, f#)")
	transposeCmd.Flags().String("to", "", "key to transpose into")
	transposeCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	transposeCmd.Flags().Bool("legacy-slash", false, "use the historic slash-chord quality cut")
	viper.BindPFlag("transpose.legacy_slash_quality", transposeCmd.Flags().Lookup("legacy-slash"))

	rootCmd.AddCommand(transposeCmd)
}

func runTranspose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t := tab.New(tab.Options{LegacySlashQuality: cfg.Transpose.LegacySlashQuality})

	fromName, _ := cmd.Flags().GetString("from")
	toName, _ := cmd.Flags().GetString("to")
	if fromName == "" && toName == "" && len(args) == 0 {
		s := prompt.NewSession(cmd.InOrStdin(), cmd.OutOrStdout())
		_, err := s.Run(cmd.Context(), t)
		return err
	}
	if fromName == "" || toName == "" {
		return errors.New("both --from and --to are required")
	}

	from, err := pitch.ParseKey(fromName)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := pitch.ParseKey(toName)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		sum, err := t.Run(cmd.Context(), in, cmd.OutOrStdout(), from, to)
		if err != nil {
			return err
		}
		reportSummary(cmd, from, to, sum)
		return nil
	}
	if len(args) == 1 && batch.SamePath(args[0], outPath) {
		return fmt.Errorf("--out %s is the input file", outPath)
	}

	var sum tab.Summary
	err = batch.WriteAtomic(outPath, func(w io.Writer) error {
		var rerr error
		sum, rerr = t.Run(cmd.Context(), in, w, from, to)
		return rerr
	})
	if err != nil {
		return err
	}
	reportSummary(cmd, from, to, sum)
	return nil
}

func reportSummary(cmd *cobra.Command, from, to pitch.Key, sum tab.Summary) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s to %s: %d chords on %d of %d lines\n",
		from, to, sum.Chords, sum.ChordLines, sum.Lines)
}
