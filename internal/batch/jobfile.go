// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch transposes many tab files described by a YAML job file.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tab-transposer/internal/pitch"
	"github.com/pdiddy/tab-transposer/pkg/types"
)

// JobFile is the on-disk list of jobs:
//
//	jobs:
//	  - input: songs/wonderwall.txt
//	    output: out/wonderwall-g.txt
//	    from: F#
//	    to: G
type JobFile struct {
	Jobs []types.Job `yaml:"jobs"`
}

// ReadJobFile loads a job file. Relative input and output paths are resolved
// against the directory that holds the file.
func ReadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}

	base := filepath.Dir(path)
	for i := range jf.Jobs {
		jf.Jobs[i].Input = resolve(base, jf.Jobs[i].Input)
		jf.Jobs[i].Output = resolve(base, jf.Jobs[i].Output)
	}
	return &jf, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// WriteJobFile saves jf as YAML.
func WriteJobFile(path string, jf *JobFile) error {
	data, err := yaml.Marshal(jf)
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks every job before any work starts and reports all problems
// at once.
func (jf *JobFile) Validate() error {
	if len(jf.Jobs) == 0 {
		return errors.New("job file has no jobs")
	}
	var errs []error
	outputs := make(map[string]int, len(jf.Jobs))
	for i, j := range jf.Jobs {
		if j.Input == "" {
			errs = append(errs, fmt.Errorf("job %d: input is required", i+1))
		}
		if j.Output == "" {
			errs = append(errs, fmt.Errorf("job %d: output is required", i+1))
		}
		if j.Input != "" && j.Output != "" && SamePath(j.Input, j.Output) {
			errs = append(errs, fmt.Errorf("job %d: output %s is the input file", i+1, j.Output))
		}
		if j.Output != "" {
			out := filepath.Clean(j.Output)
			if first, ok := outputs[out]; ok {
				errs = append(errs, fmt.Errorf("job %d: output %s is also written by job %d", i+1, j.Output, first))
			} else {
				outputs[out] = i + 1
			}
		}
		if _, err := pitch.ParseKey(j.From); err != nil {
			errs = append(errs, fmt.Errorf("job %d: from: %w", i+1, err))
		}
		if _, err := pitch.ParseKey(j.To); err != nil {
			errs = append(errs, fmt.Errorf("job %d: to: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// SamePath reports whether a and b name the same file. Existing files are
// compared with os.SameFile so links and differing relative forms match.
func SamePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
