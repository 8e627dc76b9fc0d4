package iopipeline

import (
	"slices"

	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/subsample"
	"github.com/montanaflynn/stats"
)

// runReport is saved as JSON next to the outputs of a run.
type runReport struct {
	RunID   string `json:"runId"`
	Trigger string `json:"trigger"`
	Started string `json:"started"`

	Inputs inputs `json:"inputs"`

	subsample.Report

	Scores    scoreStats `json:"scores"`
	Durations durations  `json:"durations"`
	Outputs   []string   `json:"outputs"`
}

type inputs struct {
	Sequences string `json:"sequences"`
	Metadata  string `json:"metadata"`
	Include   string `json:"include,omitempty"`
}

type durations struct {
	Load  string `json:"load"`
	Plan  string `json:"plan"`
	Write string `json:"write"`
	Total string `json:"total"`
}

// scoreStats summarize priority scores of context candidates.
type scoreStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
}

func scoreSummary(scores dataset.Scores) scoreStats {
	if len(scores) == 0 {
		return scoreStats{}
	}
	vals := make([]float64, 0, len(scores))
	for _, v := range scores {
		vals = append(vals, v)
	}
	// map order is random, sums must not depend on it
	slices.Sort(vals)
	data := stats.LoadRawData(vals)

	res := scoreStats{Count: data.Len()}
	res.Min, _ = data.Min()
	res.Max, _ = data.Max()
	res.Mean, _ = data.Mean()
	res.Median, _ = data.Median()
	res.StdDev, _ = data.StandardDeviation()
	return res
}
