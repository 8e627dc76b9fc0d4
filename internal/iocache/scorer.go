package iocache

import (
	"context"
	"log/slog"

	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/priority"
)

type scorer struct {
	cache  *Cache
	method string
	priority.Scorer
}

// NewScorer wraps a scorer with the cache. Scores of a repeated
// reference and candidate combination are returned from the cache.
// Cache failures are logged and do not stop scoring.
func NewScorer(c *Cache, method string, s priority.Scorer) priority.Scorer {
	return &scorer{cache: c, method: method, Scorer: s}
}

func (s *scorer) Score(
	ctx context.Context,
	reference, candidates []dataset.Record,
) (dataset.Scores, error) {
	if len(reference) == 0 || len(candidates) == 0 {
		return s.Scorer.Score(ctx, reference, candidates)
	}

	key := Key(s.method, reference, candidates)
	res, err := s.cache.Get(key)
	if err != nil {
		slog.Warn("Priority cache is not available", "error", err)
	}
	if len(res) == len(candidates) {
		slog.Info("Priorities found in cache",
			"key", key, "candidates", len(candidates))
		return res, nil
	}

	res, err = s.Scorer.Score(ctx, reference, candidates)
	if err != nil {
		return nil, err
	}

	if err = s.cache.Store(key, res); err != nil {
		slog.Warn("Cannot cache priorities", "error", err)
	}
	return res, nil
}
