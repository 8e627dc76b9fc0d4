package iocache_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iocache"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/gnames/gnsubsample/pkg/priority"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reference = []dataset.Record{
		{ID: "ref1", Seq: []byte("ACGTACGTAC")},
		{ID: "ref2", Seq: []byte("ACGTACGTTT")},
	}
	candidates = []dataset.Record{
		{ID: "c1", Seq: []byte("ACGTACGTAC")},
		{ID: "c2", Seq: []byte("TTTTACGTAC")},
		{ID: "c3", Seq: []byte("NNNNNNNNNN")},
	}
)

func newCache(t *testing.T) *iocache.Cache {
	c, err := iocache.New(filepath.Join(t.TempDir(), "priorities"))
	require.NoError(t, err)
	require.NoError(t, c.Open())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKey(t *testing.T) {
	k := iocache.Key("min", reference, candidates)
	assert.Len(t, k, 36)
	assert.Equal(t, k, iocache.Key("min", reference, candidates))
	assert.NotEqual(t, k, iocache.Key("mean", reference, candidates))
	assert.NotEqual(t, k, iocache.Key("min", candidates, reference))

	changed := []dataset.Record{
		candidates[0], candidates[1], {ID: "c3", Seq: []byte("NNNNNNNNNA")},
	}
	assert.NotEqual(t, k, iocache.Key("min", reference, changed))
}

func TestStoreGet(t *testing.T) {
	c := newCache(t)
	scores := dataset.Scores{"c1": 1, "c2": 0.6, "c3": 0}

	res, err := c.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, res)

	require.NoError(t, c.Store("key", scores))
	res, err = c.Get("key")
	require.NoError(t, err)
	assert.Equal(t, scores, res)
}

func TestNotOpen(t *testing.T) {
	c, err := iocache.New(filepath.Join(t.TempDir(), "closed"))
	require.NoError(t, err)

	err = c.Store("key", dataset.Scores{})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.CacheOpenError, gnErr.Code)
	assert.Equal(t, errcode.IOClass, errcode.ErrorClass(err))

	_, err = c.Get("key")
	assert.Error(t, err)
	assert.NoError(t, c.Close())
}

func TestReset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "priorities")
	c, err := iocache.New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Open())
	require.NoError(t, c.Store("key", dataset.Scores{"a": 1}))
	require.NoError(t, c.Reset())

	require.NoError(t, c.Open())
	defer c.Close()
	res, err := c.Get("key")
	require.NoError(t, err)
	assert.Nil(t, res)
}

type countingScorer struct {
	calls atomic.Int32
	priority.Scorer
}

func (s *countingScorer) Score(
	ctx context.Context,
	reference, candidates []dataset.Record,
) (dataset.Scores, error) {
	s.calls.Add(1)
	return s.Scorer.Score(ctx, reference, candidates)
}

func TestScorer(t *testing.T) {
	c := newCache(t)
	inner := &countingScorer{Scorer: priority.New(priority.OptJobsNumber(2))}
	s := iocache.NewScorer(c, "min", inner)
	ctx := context.Background()

	first, err := s.Score(ctx, reference, candidates)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())

	second, err := s.Score(ctx, reference, candidates)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, first, second)

	_, err = s.Score(ctx, reference, candidates[:2])
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestScorerEmptyReference(t *testing.T) {
	c := newCache(t)
	s := iocache.NewScorer(c, "min", priority.New())
	_, err := s.Score(context.Background(), nil, candidates)
	require.Error(t, err)
	assert.Equal(t, errcode.DataClass, errcode.ErrorClass(err))
}
