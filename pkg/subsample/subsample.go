// Package subsample builds the focal and context samples of a run and
// joins them into one deduplicated alignment.
//
// The run is a small DAG. Focal selection feeds priority scoring, which
// feeds context selection. Metadata adjustment runs in parallel with that
// chain. Merging happens only after both branches succeeded, so a failed
// stage never leaves a partial merged set.
package subsample

import (
	"context"

	"github.com/gnames/gnsubsample/pkg/adjust"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/merge"
	"github.com/gnames/gnsubsample/pkg/region"
	"github.com/gnames/gnsubsample/pkg/sampler"
)

// Subsampler runs the whole subsampling pipeline: it reads inputs
// described by the config, computes the samples and writes outputs.
// Outputs are written only when every stage succeeded.
type Subsampler interface {
	Run(ctx context.Context, cfg *config.Config) (*Result, error)
}

// Mode tells if a run is restricted to a region.
type Mode string

const (
	ModeGlobal Mode = "global"
	ModeFocal  Mode = "focal"
)

// Params configure Plan.
type Params struct {
	// Filter is the focal region. Nil selects a global run.
	Filter *region.Filter

	// GlobalToken names global runs in output labels.
	GlobalToken string

	FocalGroupBy   []string
	ContextGroupBy []string

	QuotaGlobal  int
	QuotaFocal   int
	QuotaContext int

	// Include lists identifiers that are always part of the focal set.
	Include map[string]struct{}
}

// NewParams creates Params from the config. The region token of the run is
// resolved here, so an invalid token fails before any data is read.
func NewParams(cfg *config.Config, include []string) (Params, error) {
	filter, err := region.Resolve(cfg.Run.Region, cfg.Subsample.GlobalToken)
	if err != nil {
		return Params{}, err
	}

	res := Params{
		Filter:         filter,
		GlobalToken:    cfg.Subsample.GlobalToken,
		FocalGroupBy:   cfg.Subsample.FocalGroupBy,
		ContextGroupBy: cfg.Subsample.ContextGroupBy,
		QuotaGlobal:    cfg.Subsample.QuotaGlobal,
		QuotaFocal:     cfg.Subsample.QuotaFocal,
		QuotaContext:   cfg.Subsample.QuotaContext,
	}
	res.SetInclude(include)
	return res, nil
}

// SetInclude replaces the inclusion list.
func (p *Params) SetInclude(ids []string) {
	p.Include = nil
	if len(ids) == 0 {
		return
	}
	p.Include = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p.Include[id] = struct{}{}
	}
}

// Mode returns the mode of the run.
func (p Params) Mode() Mode {
	if p.Filter.IsGlobal() {
		return ModeGlobal
	}
	return ModeFocal
}

// Label returns the token used in output file names.
func (p Params) Label() string {
	return region.Label(p.Filter, p.GlobalToken)
}

// Input holds the data a plan works on.
type Input struct {
	// Records is the aligned sequence pool in file order.
	Records []dataset.Record
	// Metadata describes the records.
	Metadata *dataset.Metadata
}

// Result contains all artifacts of a run.
type Result struct {
	// Label is the region token used in output file names.
	Label string

	Focal   dataset.SampledSet
	Context dataset.SampledSet
	Merged  dataset.SampledSet

	FocalRecords   []dataset.Record
	ContextRecords []dataset.Record
	MergedRecords  []dataset.Record

	// Scores are priorities of context candidates. They are empty in
	// a global run.
	Scores dataset.Scores

	// Metadata is the adjusted metadata table.
	Metadata *dataset.Metadata

	Report Report
}

// Report accounts for every record of the pool across stages.
type Report struct {
	Mode   Mode   `json:"mode"`
	Region string `json:"region"`
	Label  string `json:"label"`

	Partition PartitionStats `json:"partition"`
	Focal     sampler.Stats  `json:"focal"`

	// Candidates is the size of the context pool given to the scorer.
	Candidates int           `json:"candidates"`
	Context    sampler.Stats `json:"context"`

	Merge  merge.Stats  `json:"merge"`
	Adjust adjust.Stats `json:"adjust"`
}

// PartitionStats describe how the sequence pool was split by region.
type PartitionStats struct {
	Pool            int `json:"pool"`
	Duplicates      int `json:"duplicates"`
	InRegion        int `json:"inRegion"`
	OutRegion       int `json:"outRegion"`
	MissingMetadata int `json:"missingMetadata"`
	Included        int `json:"included"`
}
