package subsample

import (
	"context"
	"log/slog"

	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/priority"
	"github.com/gnames/gnsubsample/pkg/sampler"
)

// partition splits the sequence pool by region. Identifiers keep pool
// order. Included identifiers always go to the focal pool.
type partition struct {
	focal   []string
	context []string
	stats   PartitionStats
}

func split(in Input, p Params) (partition, error) {
	var res partition
	meta := in.Metadata
	if !p.Filter.IsGlobal() && !meta.HasColumn(dataset.ColRegion) {
		return res, MissingColumnError(dataset.ColRegion)
	}

	res.stats.Pool = len(in.Records)
	seen := make(map[string]struct{}, len(in.Records))
	for i := range in.Records {
		id := in.Records[i].ID
		if _, ok := seen[id]; ok {
			res.stats.Duplicates++
			continue
		}
		seen[id] = struct{}{}

		if _, ok := p.Include[id]; ok {
			res.focal = append(res.focal, id)
			res.stats.Included++
			continue
		}

		row, ok := meta.Row(id)
		if !ok {
			res.stats.MissingMetadata++
			continue
		}

		reg, _ := meta.RowValue(row, dataset.ColRegion)
		if p.Filter.Matches(reg) {
			res.focal = append(res.focal, id)
			res.stats.InRegion++
		} else {
			res.context = append(res.context, id)
			res.stats.OutRegion++
		}
	}

	if res.stats.MissingMetadata > 0 {
		slog.Warn("Sequences without metadata are dropped",
			"count", res.stats.MissingMetadata)
	}
	return res, nil
}

// Focal selects the focal sample. A global run samples the whole pool
// with the global quota. A focal run samples the focal region with the
// focal quota. Included identifiers are always selected.
func Focal(in Input, p Params) (dataset.SampledSet, sampler.Stats, error) {
	part, err := split(in, p)
	if err != nil {
		return dataset.SampledSet{}, sampler.Stats{}, err
	}
	return focal(in, p, part)
}

func focal(
	in Input,
	p Params,
	part partition,
) (dataset.SampledSet, sampler.Stats, error) {
	quota := p.QuotaFocal
	prov := dataset.ProvenanceFocal
	if p.Filter.IsGlobal() {
		quota = p.QuotaGlobal
		prov = dataset.ProvenanceGlobal
	}

	res, stats, err := sampler.Sample(part.focal, in.Metadata, sampler.Params{
		GroupBy: p.FocalGroupBy,
		Quota:   quota,
		Include: p.Include,
	})
	if err != nil {
		return res, stats, err
	}
	res.Provenance = prov

	slog.Info("Focal sample",
		"mode", p.Mode(),
		"candidates", stats.Candidates,
		"groups", stats.Groups,
		"selected", stats.Selected,
		"overQuota", stats.OverQuota,
	)
	if stats.MissingGroupField > 0 {
		slog.Warn("Focal rows without grouping values are excluded",
			"count", stats.MissingGroupField)
	}
	return res, stats, nil
}

// Context selects the context sample of a focal run. Candidates are
// sequences outside the focal region that are not in the focal set. They
// are scored against the focal alignment and sampled with the context
// quota, best scores first. A global run returns an empty set without
// calling the scorer.
func Context(
	ctx context.Context,
	in Input,
	p Params,
	focalSet dataset.SampledSet,
	scorer priority.Scorer,
) (dataset.SampledSet, dataset.Scores, sampler.Stats, error) {
	part, err := split(in, p)
	if err != nil {
		return dataset.SampledSet{}, nil, sampler.Stats{}, err
	}
	return contextSample(ctx, in, p, part, focalSet, scorer)
}

func contextSample(
	ctx context.Context,
	in Input,
	p Params,
	part partition,
	focalSet dataset.SampledSet,
	scorer priority.Scorer,
) (dataset.SampledSet, dataset.Scores, sampler.Stats, error) {
	res := dataset.SampledSet{Provenance: dataset.ProvenanceContext}
	var stats sampler.Stats
	if p.Filter.IsGlobal() {
		return res, dataset.Scores{}, stats, nil
	}

	isFocal := focalSet.Contains()
	candIDs := make([]string, 0, len(part.context))
	for _, id := range part.context {
		if _, ok := isFocal[id]; !ok {
			candIDs = append(candIDs, id)
		}
	}

	set := dataset.SampledSet{IDs: candIDs}
	reference := dataset.Select(in.Records, focalSet)
	candidates := dataset.Select(in.Records, set)

	scores, err := scorer.Score(ctx, reference, candidates)
	if err != nil {
		return res, nil, stats, err
	}

	sample, stats, err := sampler.Sample(candIDs, in.Metadata, sampler.Params{
		GroupBy: p.ContextGroupBy,
		Quota:   p.QuotaContext,
		Rank:    scores,
	})
	if err != nil {
		return res, nil, stats, err
	}
	res.IDs = sample.IDs

	slog.Info("Context sample",
		"region", p.Filter.Name,
		"reference", len(reference),
		"candidates", stats.Candidates,
		"groups", stats.Groups,
		"selected", stats.Selected,
		"overQuota", stats.OverQuota,
	)
	if stats.MissingGroupField > 0 {
		slog.Warn("Context rows without grouping values are excluded",
			"count", stats.MissingGroupField)
	}
	return res, scores, stats, nil
}
