// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "runtime"

// TransposeConfig holds settings shared by every surface that rewrites tabs.
type TransposeConfig struct {
	// LegacySlashQuality reproduces the historic slash-chord quality cut
	// (Bbmaj7#11/A from A to F gives F#maj7#11/AF). Off by default.
	LegacySlashQuality bool `json:"legacy_slash_quality" yaml:"legacy_slash_quality" mapstructure:"legacy_slash_quality"`
}

// BatchConfig holds settings for running job files.
type BatchConfig struct {
	TransposeConfig `yaml:",inline" mapstructure:",squash"`

	// Workers bounds how many jobs run at once (default runtime.NumCPU()).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Overwrite replaces outputs that already exist instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`
}

// WorkerLimit returns Workers, or the number of CPUs when Workers is unset.
func (c BatchConfig) WorkerLimit() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// SongbookConfig holds settings for the local songbook database.
type SongbookConfig struct {
	// Dir contains songbook.db and export files (default "songbook").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of listed songs (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowedOrigins lists CORS origins. Empty allows all origins.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups every section of tab-transposer.yaml.
type Config struct {
	Transpose TransposeConfig `json:"transpose" yaml:"transpose" mapstructure:"transpose"`
	Batch     BatchConfig     `json:"batch" yaml:"batch" mapstructure:"batch"`
	Songbook  SongbookConfig  `json:"songbook" yaml:"songbook" mapstructure:"songbook"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
}

// Default values applied when neither flags nor config set them.
const (
	DefaultSongbookDir        = "songbook"
	DefaultSongbookMaxResults = 50
	DefaultServerAddr         = ":8080"
)

// WithDefaults fills unset fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.Songbook.Dir == "" {
		c.Songbook.Dir = DefaultSongbookDir
	}
	if c.Songbook.MaxResults <= 0 {
		c.Songbook.MaxResults = DefaultSongbookMaxResults
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return c
}
