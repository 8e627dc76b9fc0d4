// Package config provides configuration management for gnsubsample.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Subsample: focal_group_by, context_group_by, quota_global,
//     quota_focal, quota_context, global_token, id_column
//   - Priority: method, chunk_size, max_comparisons
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Run.Region, Sequences, Metadata, Include, OutputDir, NoCache
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNSUBSAMPLE_ prefix with underscores for nesting:
//
//	GNSUBSAMPLE_SUBSAMPLE_QUOTA_FOCAL=280
//	GNSUBSAMPLE_PRIORITY_METHOD=mean
//	GNSUBSAMPLE_LOG_LEVEL=info
//	GNSUBSAMPLE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnsubsample configuration.
type Config struct {
	// Subsample contains grouping keys and quotas of the samplers.
	Subsample SubsampleConfig `mapstructure:"subsample" yaml:"subsample"`

	// Priority contains settings of the priority scorer.
	Priority PriorityConfig `mapstructure:"priority" yaml:"priority"`

	// Run contains settings of a single pipeline run.
	Run RunConfig `mapstructure:"run" yaml:"run"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// SubsampleConfig sets stratification of focal and context samples.
type SubsampleConfig struct {
	// FocalGroupBy is the grouping key of the focal sample.
	FocalGroupBy []string `mapstructure:"focal_group_by" yaml:"focal_group_by"`

	// ContextGroupBy is the grouping key of the context sample.
	ContextGroupBy []string `mapstructure:"context_group_by" yaml:"context_group_by"`

	// QuotaGlobal is the per-group cap when no region is selected.
	QuotaGlobal int `mapstructure:"quota_global" yaml:"quota_global"`

	// QuotaFocal is the per-group cap inside the focal region.
	QuotaFocal int `mapstructure:"quota_focal" yaml:"quota_focal"`

	// QuotaContext is the per-group cap outside the focal region.
	QuotaContext int `mapstructure:"quota_context" yaml:"quota_context"`

	// GlobalToken is the region token that selects a global run.
	GlobalToken string `mapstructure:"global_token" yaml:"global_token"`

	// IDColumn is the metadata column holding sequence identifiers.
	IDColumn string `mapstructure:"id_column" yaml:"id_column"`
}

// PriorityConfig sets the priority scorer.
type PriorityConfig struct {
	// Method aggregates distances to focal sequences: 'min' or 'mean'.
	Method string `mapstructure:"method" yaml:"method"`

	// ChunkSize is the number of candidates a worker scores at once.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// MaxComparisons limits reference x candidate comparisons.
	// Zero means no limit.
	MaxComparisons int `mapstructure:"max_comparisons" yaml:"max_comparisons"`
}

// RunConfig contains inputs and outputs of one run. These fields are
// never saved to config.yaml.
type RunConfig struct {
	// Region is the region token. Empty or the global token selects
	// a global run.
	Region string `mapstructure:"region" yaml:"region"`

	// Sequences is the path to the aligned FASTA file.
	Sequences string `mapstructure:"sequences" yaml:"sequences"`

	// Metadata is the path to the metadata TSV file.
	Metadata string `mapstructure:"metadata" yaml:"metadata"`

	// Include is an optional file with identifiers that are always kept.
	Include string `mapstructure:"include" yaml:"include"`

	// OutputDir receives all output files.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// NoCache disables the cross-run priority cache.
	NoCache bool `mapstructure:"no_cache" yaml:"no_cache"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Subsample: SubsampleConfig{
			FocalGroupBy:   []string{"division", "year", "month"},
			ContextGroupBy: []string{"country", "year", "month"},
			QuotaGlobal:    120,
			QuotaFocal:     280,
			QuotaContext:   20,
			GlobalToken:    "global",
			IDColumn:       "strain",
		},
		Priority: PriorityConfig{
			Method:    "min",
			ChunkSize: 1_000,
		},
		Run: RunConfig{
			OutputDir: ".",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
