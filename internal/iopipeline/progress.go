package iopipeline

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/priority"
)

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// progressScorer shows scoring progress of every Score call.
type progressScorer struct {
	enabled bool
	bar     *pb.ProgressBar
	priority.Scorer
}

func (s *progressScorer) Score(
	ctx context.Context,
	reference, candidates []dataset.Record,
) (dataset.Scores, error) {
	if s.enabled && len(candidates) > 0 {
		s.bar = newProgressBar(len(candidates), "Scoring context: ")
		defer func() {
			s.bar.Finish()
			s.bar = nil
		}()
	}
	return s.Scorer.Score(ctx, reference, candidates)
}

func (s *progressScorer) add(n int) {
	if s.bar != nil {
		s.bar.Add(n)
	}
}
