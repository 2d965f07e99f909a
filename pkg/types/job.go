// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Job describes one file to transpose in a batch run.
type Job struct {
	// Input is the path of the source tab.
	Input string `json:"input" yaml:"input"`

	// Output is the path the transposed tab is written to.
	Output string `json:"output" yaml:"output"`

	// From is the key the input is written in.
	From string `json:"from" yaml:"from"`

	// To is the key to transpose into.
	To string `json:"to" yaml:"to"`

	// LegacySlashQuality overrides the batch setting for this job when set.
	LegacySlashQuality *bool `json:"legacy_slash_quality,omitempty" yaml:"legacy_slash_quality,omitempty"`
}
