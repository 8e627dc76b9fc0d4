package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSubsampleFocalGroupBy sets the grouping key of the focal sample.
func OptSubsampleFocalGroupBy(ss []string) Option {
	ss = cleanFields(ss)
	return func(c *Config) {
		if isValidFields("Subsample.FocalGroupBy", ss) {
			c.Subsample.FocalGroupBy = ss
		}
	}
}

// OptSubsampleContextGroupBy sets the grouping key of the context sample.
func OptSubsampleContextGroupBy(ss []string) Option {
	ss = cleanFields(ss)
	return func(c *Config) {
		if isValidFields("Subsample.ContextGroupBy", ss) {
			c.Subsample.ContextGroupBy = ss
		}
	}
}

// OptSubsampleQuotaGlobal sets the per-group cap of a global run.
// Zero is a valid quota.
func OptSubsampleQuotaGlobal(i int) Option {
	return func(c *Config) {
		if isValidQuota("Subsample.QuotaGlobal", i) {
			c.Subsample.QuotaGlobal = i
		}
	}
}

// OptSubsampleQuotaFocal sets the per-group cap inside the focal region.
func OptSubsampleQuotaFocal(i int) Option {
	return func(c *Config) {
		if isValidQuota("Subsample.QuotaFocal", i) {
			c.Subsample.QuotaFocal = i
		}
	}
}

// OptSubsampleQuotaContext sets the per-group cap outside the focal region.
func OptSubsampleQuotaContext(i int) Option {
	return func(c *Config) {
		if isValidQuota("Subsample.QuotaContext", i) {
			c.Subsample.QuotaContext = i
		}
	}
}

// OptSubsampleGlobalToken sets the region token of a global run.
func OptSubsampleGlobalToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Subsample.GlobalToken", s) {
			c.Subsample.GlobalToken = s
		}
	}
}

// OptSubsampleIDColumn sets the metadata column with sequence identifiers.
func OptSubsampleIDColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Subsample.IDColumn", s) {
			c.Subsample.IDColumn = s
		}
	}
}

// OptPriorityMethod sets how distances to focal sequences are aggregated.
// Valid values: "min", "mean".
func OptPriorityMethod(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Priority.Method", s) {
			c.Priority.Method = s
		}
	}
}

// OptPriorityChunkSize sets how many candidates a worker scores at once.
func OptPriorityChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Priority.ChunkSize", i) {
			c.Priority.ChunkSize = i
		}
	}
}

// OptPriorityMaxComparisons limits the number of pairwise comparisons.
// Zero removes the limit.
func OptPriorityMaxComparisons(i int) Option {
	return func(c *Config) {
		if isValidQuota("Priority.MaxComparisons", i) {
			c.Priority.MaxComparisons = i
		}
	}
}

// OptRunRegion sets the region token of the run. An empty token keeps the
// global run.
// Runtime-only field - not in ToOptions().
func OptRunRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Run.Region = s
	}
}

// OptRunSequences sets the path to the aligned sequences.
// Runtime-only field - not in ToOptions().
func OptRunSequences(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Run.Sequences", s) {
			c.Run.Sequences = s
		}
	}
}

// OptRunMetadata sets the path to the metadata table.
// Runtime-only field - not in ToOptions().
func OptRunMetadata(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Run.Metadata", s) {
			c.Run.Metadata = s
		}
	}
}

// OptRunInclude sets the path to the inclusion list.
// Runtime-only field - not in ToOptions().
func OptRunInclude(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Run.Include = s
		}
	}
}

// OptRunOutputDir sets the directory for output files.
// Runtime-only field - not in ToOptions().
func OptRunOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Run.OutputDir", s) {
			c.Run.OutputDir = s
		}
	}
}

// OptRunNoCache disables the priority cache.
// Runtime-only field - not in ToOptions().
func OptRunNoCache(b bool) Option {
	return func(c *Config) {
		c.Run.NoCache = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// cleanFields trims field names and splits comma-separated values, so
// both `[a, b]` and `["a,b"]` are accepted from env vars and flags.
func cleanFields(ss []string) []string {
	var res []string
	for _, s := range ss {
		for _, f := range strings.Split(s, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				res = append(res, f)
			}
		}
	}
	return res
}
