// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/internal/tab"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

// Result holds the outcome of a batch run.
type Result struct {
	Transposed int
	Skipped    int
	Failed     int

	// Summary accumulates line and chord counts over transposed jobs.
	Summary tab.Summary
}

// Total returns the number of jobs processed.
func (r Result) Total() int {
	return r.Transposed + r.Skipped + r.Failed
}

// HasFailures reports whether any job failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run executes jobs concurrently, at most cfg.WorkerLimit() at a time. A
// failing job is reported on w and counted; it does not stop the others.
// The returned error is non-nil only when ctx is cancelled.
func Run(ctx context.Context, jobs []types.Job, cfg types.BatchConfig, w io.Writer) (Result, error) {
	var (
		mu  sync.Mutex
		res Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.WorkerLimit())

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			sum, skipped, err := runJob(ctx, job, cfg)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Fprintf(w, "failed     %s: %v\n", job.Input, err)
				res.Failed++
			case skipped:
				fmt.Fprintf(w, "skipped    %s (output exists)\n", job.Output)
				res.Skipped++
			default:
				fmt.Fprintf(w, "transposed %s -> %s (%s to %s, %d chords)\n",
					job.Input, job.Output, pitch.NewKey(job.From), pitch.NewKey(job.To), sum.Chords)
				res.Transposed++
				res.Summary.Add(sum)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}

	fmt.Fprintf(w, "\ntransposed: %d, skipped: %d, failed: %d\n", res.Transposed, res.Skipped, res.Failed)
	return res, nil
}

// runJob transposes a single file. When the output exists and overwriting
// is off, it does nothing and reports skipped.
func runJob(ctx context.Context, job types.Job, cfg types.BatchConfig) (sum tab.Summary, skipped bool, err error) {
	from, err := pitch.ParseKey(job.From)
	if err != nil {
		return sum, false, err
	}
	to, err := pitch.ParseKey(job.To)
	if err != nil {
		return sum, false, err
	}

	if SamePath(job.Input, job.Output) {
		return sum, false, fmt.Errorf("output %s is the input file", job.Output)
	}

	if !cfg.Overwrite {
		if _, err := os.Stat(job.Output); err == nil {
			return sum, true, nil
		}
	}

	in, err := os.Open(job.Input)
	if err != nil {
		return sum, false, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	legacy := cfg.LegacySlashQuality
	if job.LegacySlashQuality != nil {
		legacy = *job.LegacySlashQuality
	}

	err = WriteAtomic(job.Output, func(w io.Writer) error {
		var rerr error
		sum, rerr = tab.New(tab.Options{LegacySlashQuality: legacy}).Run(ctx, in, w, from, to)
		return rerr
	})
	return sum, false, err
}

// WriteAtomic writes path through a temporary file in the same directory and
// renames it into place once write succeeds. On failure path is untouched.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("creating output: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing output: %w", err)
	}
	return nil
}
