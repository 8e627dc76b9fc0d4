package iopipeline

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iofasta"
	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/internal/iometa"
	"github.com/gnames/gnsubsample/internal/iopriority"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/merge"
	"github.com/gnames/gnsubsample/pkg/region"
	"github.com/gnames/gnsubsample/pkg/sampler"
	"github.com/gnames/gnsubsample/pkg/subsample"
)

// Priorities scores candidate sequences against reference sequences and
// writes the priority table to output, or to stdout if output is empty.
func Priorities(
	ctx context.Context,
	cfg *config.Config,
	reference, candidates, output string,
	progress bool,
) (dataset.Scores, error) {
	refs, err := iofasta.ReadFile(reference)
	if err != nil {
		return nil, err
	}
	cands, err := iofasta.ReadFile(candidates)
	if err != nil {
		return nil, err
	}

	scorer, closeFn := NewScorer(cfg, progress)
	defer closeFn()

	scores, err := scorer.Score(ctx, refs, cands)
	if err != nil {
		return nil, err
	}

	data := iopriority.Bytes(dataset.IDs(cands), scores)
	if err = writeOutput(output, data); err != nil {
		return nil, err
	}
	slog.Info("Priorities computed",
		"reference", len(refs), "candidates", len(cands))
	return scores, nil
}

// SampleInput describes a stand-alone sampling pass.
type SampleInput struct {
	Sequences  string
	Metadata   string
	Priorities string
	Include    string
	Output     string

	// Region keeps only rows of this region when set.
	Region string
	// ExcludeRegion drops rows of this region when set.
	ExcludeRegion string

	GroupBy []string
	Quota   int
}

// Sample runs the grouped quota sampler on files and writes the selected
// sequences to the output, or to stdout if the output is empty.
func Sample(
	cfg *config.Config,
	si SampleInput,
) (dataset.SampledSet, sampler.Stats, error) {
	var res dataset.SampledSet
	var stats sampler.Stats

	keep, err := region.Resolve(si.Region, cfg.Subsample.GlobalToken)
	if err != nil {
		return res, stats, err
	}
	drop, err := region.Resolve(si.ExcludeRegion, cfg.Subsample.GlobalToken)
	if err != nil {
		return res, stats, err
	}

	recs, err := iofasta.ReadFile(si.Sequences)
	if err != nil {
		return res, stats, err
	}
	meta, err := iometa.ReadFile(si.Metadata, cfg.Subsample.IDColumn)
	if err != nil {
		return res, stats, err
	}
	if (keep != nil || drop != nil) && !meta.HasColumn(dataset.ColRegion) {
		return res, stats, subsample.MissingColumnError(dataset.ColRegion)
	}

	p := sampler.Params{GroupBy: si.GroupBy, Quota: si.Quota}
	if si.Priorities != "" {
		_, p.Rank, err = iopriority.ReadFile(si.Priorities)
		if err != nil {
			return res, stats, err
		}
	}
	if si.Include != "" {
		ids, err := iometa.ReadIncludeFile(si.Include)
		if err != nil {
			return res, stats, err
		}
		p.Include = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			p.Include[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(recs))
	var excluded int
	for _, r := range recs {
		reg, _ := meta.Value(r.ID, dataset.ColRegion)
		_, included := p.Include[r.ID]
		if !included && ((keep != nil && !keep.Matches(reg)) ||
			(drop != nil && drop.Matches(reg))) {
			excluded++
			continue
		}
		ids = append(ids, r.ID)
	}
	if excluded > 0 {
		slog.Info("Sequences excluded by region", "count", excluded)
	}

	res, stats, err = sampler.Sample(ids, meta, p)
	if err != nil {
		return res, stats, err
	}

	err = writeOutput(si.Output, iofasta.Bytes(dataset.Select(recs, res)))
	if err != nil {
		return res, stats, err
	}
	slog.Info("Sequences sampled",
		"candidates", stats.Candidates,
		"groups", stats.Groups,
		"selected", stats.Selected,
		"missingMetadata", stats.MissingMetadata,
		"missingGroupField", stats.MissingGroupField,
		"overQuota", stats.OverQuota,
	)
	return res, stats, nil
}

// Merge joins FASTA files into one. A sequence repeated in several files
// is written once, the first occurrence wins.
func Merge(paths []string, output string) (int, error) {
	colls := make([][]dataset.Record, len(paths))
	for i, path := range paths {
		recs, err := iofasta.ReadFile(path)
		if err != nil {
			return 0, err
		}
		colls[i] = recs
	}

	recs, dups := merge.Records(colls...)
	if err := writeOutput(output, iofasta.Bytes(recs)); err != nil {
		return 0, err
	}
	if dups > 0 {
		gn.Warn("Skipped %s duplicate sequences", humanize.Comma(int64(dups)))
	}
	slog.Info("Sequences merged",
		"files", len(paths), "sequences", len(recs), "duplicates", dups)
	return len(recs), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return iofs.WriteFile(path, data)
}
