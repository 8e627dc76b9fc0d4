package priority_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/gnames/gnsubsample/pkg/priority"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func rec(id, seq string) dataset.Record {
	return dataset.Record{ID: id, Seq: []byte(seq)}
}

func TestScoreExtremes(t *testing.T) {
	ref := []dataset.Record{rec("f1", "ACGTACGTAC"), rec("f2", "TTTTTTTTTT")}
	cands := []dataset.Record{
		rec("same", "ACGTACGTAC"),
		rec("lower", "acgtacgtac"),
		rec("allDiff", "CATGCATGCA"),
		rec("noOverlap", "NNNNN-----"),
		rec("oneOff", "ACGTACGTAA"),
	}

	for _, m := range []priority.Method{priority.MethodMin, priority.MethodMean} {
		t.Run(string(m), func(t *testing.T) {
			s := priority.New(priority.OptMethod(m))
			res, err := s.Score(context.Background(), ref[:1], cands)
			require.NoError(t, err)
			require.Len(t, res, len(cands))

			assert.Equal(t, priority.MaxScore, res["same"])
			assert.Equal(t, priority.MaxScore, res["lower"])
			assert.Equal(t, priority.MinScore, res["noOverlap"])
			assert.Less(t, res["allDiff"], res["same"])
			assert.Less(t, res["allDiff"], res["oneOff"])
			assert.Less(t, res["oneOff"], res["same"])
			assert.InDelta(t, 0.9, res["oneOff"], 1e-9)
			for id, v := range res {
				assert.GreaterOrEqual(t, v, 0.0, id)
			}
		})
	}
}

func TestScoreMonotonic(t *testing.T) {
	base := "ACGTACGTACGTACGTACGT"
	ref := []dataset.Record{rec("f", base)}
	var cands []dataset.Record
	for d := 0; d <= len(base); d++ {
		seq := []byte(base)
		for i := 0; i < d; i++ {
			if seq[i] == 'A' {
				seq[i] = 'C'
			} else {
				seq[i] = 'A'
			}
		}
		cands = append(cands, dataset.Record{ID: fmt.Sprintf("d%02d", d), Seq: seq})
	}

	res, err := priority.New().Score(context.Background(), ref, cands)
	require.NoError(t, err)
	for d := 1; d < len(cands); d++ {
		prev := res[cands[d-1].ID]
		cur := res[cands[d].ID]
		assert.Less(t, cur, prev, cands[d].ID)
	}
}

func TestScoreMethods(t *testing.T) {
	ref := []dataset.Record{rec("f1", "AAAA"), rec("f2", "CCCC")}
	cands := []dataset.Record{rec("c", "AAAC")}

	minRes, err := priority.New(priority.OptMethod(priority.MethodMin)).
		Score(context.Background(), ref, cands)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, minRes["c"], 1e-9)

	meanRes, err := priority.New(priority.OptMethod(priority.MethodMean)).
		Score(context.Background(), ref, cands)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, meanRes["c"], 1e-9)
}

func TestScoreIgnoresAmbiguity(t *testing.T) {
	ref := []dataset.Record{rec("f", "ACGTNN--")}
	cands := []dataset.Record{
		rec("c1", "ACGTACGT"),
		rec("c2", "ACRYACGT"),
	}
	res, err := priority.New().Score(context.Background(), ref, cands)
	require.NoError(t, err)
	assert.Equal(t, priority.MaxScore, res["c1"])
	assert.Equal(t, priority.MaxScore, res["c2"])
}

func randomSeqs(r *rand.Rand, prefix string, n, width int) []dataset.Record {
	alphabet := []byte("ACGTN-")
	res := make([]dataset.Record, n)
	for i := range n {
		seq := make([]byte, width)
		for j := range seq {
			seq[j] = alphabet[r.IntN(len(alphabet))]
		}
		res[i] = dataset.Record{ID: fmt.Sprintf("%s%04d", prefix, i), Seq: seq}
	}
	return res
}

func TestScoreDeterministicAcrossWorkers(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	ref := randomSeqs(r, "f", 30, 200)
	cands := randomSeqs(r, "c", 500, 200)

	want, err := priority.New(
		priority.OptJobsNumber(1), priority.OptChunkSize(500),
	).Score(context.Background(), ref, cands)
	require.NoError(t, err)

	for _, jobs := range []int{2, 4, 8} {
		for _, chunk := range []int{1, 7, 64} {
			var done atomic.Int64
			got, err := priority.New(
				priority.OptJobsNumber(jobs),
				priority.OptChunkSize(chunk),
				priority.OptProgress(func(n int) { done.Add(int64(n)) }),
			).Score(context.Background(), ref, cands)
			require.NoError(t, err)
			assert.Equal(t, int64(len(cands)), done.Load())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("jobs %d chunk %d mismatch (-want +got):\n%s",
					jobs, chunk, diff)
			}
		}
	}
}

func TestScoreErrors(t *testing.T) {
	ref := []dataset.Record{rec("f1", "ACGT"), rec("f2", "ACGT")}
	cands := []dataset.Record{rec("c1", "ACGT"), rec("c2", "ACGT")}

	tests := []struct {
		msg   string
		s     priority.Scorer
		ref   []dataset.Record
		cands []dataset.Record
		code  gn.ErrorCode
		class errcode.Class
	}{
		{"empty reference", priority.New(), nil, cands,
			errcode.DataEmptyReferenceError, errcode.DataClass},
		{"unequal candidate", priority.New(), ref,
			[]dataset.Record{rec("c", "ACG")},
			errcode.DataUnequalLengthError, errcode.DataClass},
		{"unequal reference", priority.New(),
			[]dataset.Record{rec("f1", "ACGT"), rec("f2", "AC")}, cands,
			errcode.DataUnequalLengthError, errcode.DataClass},
		{"comparison limit", priority.New(priority.OptMaxComparisons(3)),
			ref, cands,
			errcode.ResourceComparisonLimitError, errcode.ResourceClass},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := v.s.Score(context.Background(), v.ref, v.cands)
			require.Error(t, err)
			assert.Nil(t, res)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.Equal(t, v.class, errcode.ErrorClass(err))
		})
	}
}

func TestScoreCancelled(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	ref := randomSeqs(r, "f", 5, 50)
	cands := randomSeqs(r, "c", 100, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := priority.New(priority.OptChunkSize(1)).Score(ctx, ref, cands)
	require.Error(t, err)
	assert.Equal(t, errcode.ResourceClass, errcode.ErrorClass(err))
}

func TestScoreEmptyCandidates(t *testing.T) {
	ref := []dataset.Record{rec("f", "ACGT")}
	res, err := priority.New().Score(context.Background(), ref, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}
