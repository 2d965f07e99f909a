// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tab-transposer/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <jobs.yaml>",
	Short: "Transpose many tabs from a YAML job file",
	Long: `Batch reads a job file listing input, output, from, and to for each tab and
transposes them concurrently. Existing outputs are skipped unless --overwrite
is set. Relative paths in the job file are resolved against its directory.

Example job file:

  jobs:
    - input: tabs/wonderwall.txt
      output: out/wonderwall-g.txt
      from: F#
      to: G`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("workers", 0, "concurrent jobs (default: number of CPUs)")
	batchCmd.Flags().Bool("overwrite", false, "replace outputs that already exist")
	batchCmd.Flags().Bool("legacy-slash", false, "use the historic slash-chord quality cut for every job without its own setting")
	viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("batch.overwrite", batchCmd.Flags().Lookup("overwrite"))
	viper.BindPFlag("batch.legacy_slash_quality", batchCmd.Flags().Lookup("legacy-slash"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jf, err := batch.ReadJobFile(args[0])
	if err != nil {
		return err
	}
	if err := jf.Validate(); err != nil {
		return err
	}

	res, err := batch.Run(cmd.Context(), jf.Jobs, cfg.Batch, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if res.HasFailures() {
		return fmt.Errorf("%d of %d job(s) failed", res.Failed, res.Total())
	}
	return nil
}
