package subsample

import (
	"context"
	"log/slog"

	"github.com/gnames/gnsubsample/pkg/adjust"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/merge"
	"github.com/gnames/gnsubsample/pkg/priority"
	"github.com/gnames/gnsubsample/pkg/sampler"
	"golang.org/x/sync/errgroup"
)

// Plan runs the subsampling DAG on in-memory data.
//
// Branch A selects the focal sample, scores context candidates against it
// and selects the context sample. Branch B adjusts metadata. Both branches
// run concurrently. If any stage fails Plan returns the error and nothing
// is merged.
func Plan(
	ctx context.Context,
	in Input,
	p Params,
	scorer priority.Scorer,
) (*Result, error) {
	if err := validate(in, p); err != nil {
		return nil, err
	}

	part, err := split(in, p)
	if err != nil {
		return nil, err
	}

	res := Result{Label: p.Label()}
	res.Report = Report{
		Mode:      p.Mode(),
		Label:     res.Label,
		Partition: part.stats,
	}
	if !p.Filter.IsGlobal() {
		res.Report.Region = p.Filter.Name
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		res.Focal, res.Report.Focal, err = focal(in, p, part)
		if err != nil {
			return err
		}
		if err = gCtx.Err(); err != nil {
			return err
		}

		res.Context, res.Scores, res.Report.Context, err = contextSample(
			gCtx, in, p, part, res.Focal, scorer,
		)
		if err != nil {
			return err
		}
		res.Report.Candidates = res.Report.Context.Candidates
		return nil
	})

	g.Go(func() error {
		res.Metadata, res.Report.Adjust = adjust.Adjust(in.Metadata, p.Filter)
		slog.Info("Metadata adjusted",
			"rows", res.Report.Adjust.Rows,
			"rewritten", res.Report.Adjust.Rewritten,
		)
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Merged, res.Report.Merge = merge.Merge(res.Focal, res.Context)
	res.FocalRecords = dataset.Select(in.Records, res.Focal)
	res.ContextRecords = dataset.Select(in.Records, res.Context)
	res.MergedRecords = merge.Sequences(
		res.Merged, res.FocalRecords, res.ContextRecords,
	)

	slog.Info("Samples merged",
		"focal", res.Focal.Len(),
		"context", res.Context.Len(),
		"merged", res.Merged.Len(),
		"duplicates", res.Report.Merge.Duplicates,
	)
	return &res, nil
}

// validate checks grouping keys and quotas before any work starts.
func validate(in Input, p Params) error {
	if err := sampler.Validate(in.Metadata, p.FocalGroupBy); err != nil {
		return err
	}
	quotas := []int{p.QuotaGlobal}
	if !p.Filter.IsGlobal() {
		if err := sampler.Validate(in.Metadata, p.ContextGroupBy); err != nil {
			return err
		}
		quotas = []int{p.QuotaFocal, p.QuotaContext}
	}
	for _, q := range quotas {
		if q < 0 {
			return sampler.QuotaError(q)
		}
	}
	return nil
}
