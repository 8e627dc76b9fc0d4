package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir and Run).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var ss []string

	ss = c.Subsample.FocalGroupBy
	if len(ss) > 0 {
		res = append(res, OptSubsampleFocalGroupBy(ss))
	}
	ss = c.Subsample.ContextGroupBy
	if len(ss) > 0 {
		res = append(res, OptSubsampleContextGroupBy(ss))
	}
	res = append(res,
		OptSubsampleQuotaGlobal(c.Subsample.QuotaGlobal),
		OptSubsampleQuotaFocal(c.Subsample.QuotaFocal),
		OptSubsampleQuotaContext(c.Subsample.QuotaContext),
	)
	s = c.Subsample.GlobalToken
	if s != "" {
		res = append(res, OptSubsampleGlobalToken(s))
	}
	s = c.Subsample.IDColumn
	if s != "" {
		res = append(res, OptSubsampleIDColumn(s))
	}

	s = c.Priority.Method
	if s != "" {
		res = append(res, OptPriorityMethod(s))
	}
	if c.Priority.ChunkSize > 0 {
		res = append(res, OptPriorityChunkSize(c.Priority.ChunkSize))
	}
	res = append(res, OptPriorityMaxComparisons(c.Priority.MaxComparisons))

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidQuota(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidFields(name string, ss []string) bool {
	res := len(ss) > 0
	if !res {
		gn.Warn("<em>%s</em> needs at least one field, ignoring", name)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Priority.Method": {"min": s, "mean": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
