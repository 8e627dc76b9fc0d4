// Package priority scores candidate sequences by their genetic similarity
// to a reference (focal) set.
//
// This is a pure package: scoring is computation, not I/O. Candidates are
// independent of each other, they are scored in chunks by a pool of
// workers. Only one score per candidate is kept in memory, the pairwise
// distance matrix is never materialized.
package priority

import (
	"context"
	"errors"
	"runtime"

	"github.com/gnames/gnsubsample/pkg/dataset"
	"golang.org/x/sync/errgroup"
)

// Method defines how distances to several reference sequences are
// aggregated.
type Method string

const (
	// MethodMin uses the distance to the nearest reference sequence.
	MethodMin Method = "min"
	// MethodMean uses the average distance to reference sequences.
	MethodMean Method = "mean"
)

// MaxScore is given to candidates identical to a reference sequence.
const MaxScore = 1.0

// MinScore is given to candidates without informative overlap with any
// reference sequence.
const MinScore = 0.0

// Scorer computes priority scores.
type Scorer interface {
	// Score returns a score for every candidate. Reference and candidate
	// sequences must be aligned to the same length. An empty reference set
	// is an error: there is nothing to prioritize against.
	Score(
		ctx context.Context,
		reference, candidates []dataset.Record,
	) (dataset.Scores, error)
}

// Option modifies scorer settings.
type Option func(*scorer)

// OptMethod sets the aggregation method. Unknown methods are ignored.
func OptMethod(m Method) Option {
	return func(s *scorer) {
		if m == MethodMin || m == MethodMean {
			s.method = m
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(s *scorer) {
		if i > 0 {
			s.jobsNum = i
		}
	}
}

// OptChunkSize sets how many candidates a worker takes at once.
func OptChunkSize(i int) Option {
	return func(s *scorer) {
		if i > 0 {
			s.chunkSize = i
		}
	}
}

// OptMaxComparisons limits the number of pairwise comparisons
// (|reference| x |candidates|). Zero means no limit.
func OptMaxComparisons(i int) Option {
	return func(s *scorer) {
		if i >= 0 {
			s.maxComparisons = i
		}
	}
}

// OptProgress sets a function that receives the number of candidates
// scored after every chunk. It is called from several goroutines.
func OptProgress(fn func(int)) Option {
	return func(s *scorer) {
		s.progress = fn
	}
}

type scorer struct {
	method         Method
	jobsNum        int
	chunkSize      int
	maxComparisons int
	progress       func(int)
}

// New creates a Scorer. By default it uses MethodMin, runtime.NumCPU()
// workers and chunks of 1000 candidates.
func New(opts ...Option) Scorer {
	res := &scorer{
		method:    MethodMin,
		jobsNum:   runtime.NumCPU(),
		chunkSize: 1_000,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

type chunk struct {
	start, end int
}

func (s *scorer) Score(
	ctx context.Context,
	reference, candidates []dataset.Record,
) (dataset.Scores, error) {
	if len(reference) == 0 {
		return nil, EmptyReferenceError()
	}

	width := len(reference[0].Seq)
	if err := checkLengths(width, reference, candidates); err != nil {
		return nil, err
	}

	if s.maxComparisons > 0 &&
		len(reference)*len(candidates) > s.maxComparisons {
		return nil, ComparisonLimitError(
			len(reference), len(candidates), s.maxComparisons,
		)
	}

	refs := make([][]byte, len(reference))
	for i := range reference {
		refs[i] = encode(reference[i].Seq)
	}

	scores := make([]float64, len(candidates))
	chIn := make(chan chunk)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for start := 0; start < len(candidates); start += s.chunkSize {
			c := chunk{start: start, end: min(start+s.chunkSize, len(candidates))}
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- c:
			}
		}
		return nil
	})

	for range s.jobsNum {
		g.Go(func() error {
			return s.worker(gCtx, chIn, refs, candidates, scores)
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil, CancelledError(err)
		}
		return nil, err
	}

	res := make(dataset.Scores, len(candidates))
	for i := range candidates {
		res[candidates[i].ID] = scores[i]
	}
	return res, nil
}

// worker scores chunks of candidates. Every index of scores is written by
// exactly one worker.
func (s *scorer) worker(
	ctx context.Context,
	chIn <-chan chunk,
	refs [][]byte,
	candidates []dataset.Record,
	scores []float64,
) error {
	for c := range chIn {
		for i := c.start; i < c.end; i++ {
			scores[i] = s.score(encode(candidates[i].Seq), refs)
		}
		if s.progress != nil {
			s.progress(c.end - c.start)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *scorer) score(cand []byte, refs [][]byte) float64 {
	var found bool
	switch s.method {
	case MethodMean:
		var sum float64
		var count int
		for _, ref := range refs {
			d, ok := pDistance(cand, ref)
			if !ok {
				continue
			}
			sum += d
			count++
		}
		if count == 0 {
			return MinScore
		}
		return MaxScore - sum/float64(count)
	default:
		best := 1.0
		for _, ref := range refs {
			d, ok := pDistance(cand, ref)
			if !ok {
				continue
			}
			found = true
			if d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		if !found {
			return MinScore
		}
		return MaxScore - best
	}
}

func checkLengths(width int, sets ...[]dataset.Record) error {
	for _, set := range sets {
		for i := range set {
			if len(set[i].Seq) != width {
				return UnequalLengthError(set[i].ID, len(set[i].Seq), width)
			}
		}
	}
	return nil
}
