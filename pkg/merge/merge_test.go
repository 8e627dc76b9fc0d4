package merge_test

import (
	"testing"

	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/merge"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func set(p dataset.Provenance, ids ...string) dataset.SampledSet {
	return dataset.SampledSet{IDs: ids, Provenance: p}
}

func TestMerge(t *testing.T) {
	a := set(dataset.ProvenanceFocal, "a", "b", "c")
	b := set(dataset.ProvenanceContext, "d", "b", "e", "a")

	res, stats := merge.Merge(a, b)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.IDs)
	assert.Equal(t, dataset.ProvenanceMerged, res.Provenance)
	assert.Equal(t, 7, stats.Input)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 5, stats.Output)
	assert.Equal(t, 3, stats.BySource[dataset.ProvenanceFocal])
	assert.Equal(t, 2, stats.BySource[dataset.ProvenanceContext])
}

func TestMergeIdempotent(t *testing.T) {
	tests := []struct {
		msg  string
		a, b dataset.SampledSet
	}{
		{"disjoint", set("x", "a", "b"), set("y", "c", "d")},
		{"overlap", set("x", "a", "b", "c"), set("y", "c", "a", "e")},
		{"empty b", set("x", "a"), set("y")},
		{"empty a", set("x"), set("y", "a", "a", "b")},
		{"both empty", set("x"), set("y")},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			ab, _ := merge.Merge(v.a, v.b)
			abb, _ := merge.Merge(ab, v.b)
			if diff := cmp.Diff(ab.IDs, abb.IDs); diff != "" {
				t.Errorf("merge not idempotent (-want +got):\n%s", diff)
			}
			self, _ := merge.Merge(ab, ab)
			assert.Equal(t, ab.IDs, self.IDs)

			seen := make(map[string]bool)
			for _, id := range ab.IDs {
				assert.False(t, seen[id], "duplicate %s", id)
				seen[id] = true
			}
		})
	}
}

func TestRecords(t *testing.T) {
	focal := []dataset.Record{
		{ID: "a", Seq: []byte("AAAA")},
		{ID: "b", Seq: []byte("CCCC")},
	}
	context := []dataset.Record{
		{ID: "b", Seq: []byte("GGGG")},
		{ID: "c", Seq: []byte("TTTT")},
	}

	res, dups := merge.Records(focal, context)
	assert.Equal(t, 1, dups)
	assert.Equal(t, []string{"a", "b", "c"}, dataset.IDs(res))
	assert.Equal(t, "CCCC", string(res[1].Seq))
}

func TestSequences(t *testing.T) {
	focal := []dataset.Record{
		{ID: "a", Seq: []byte("AAAA")},
		{ID: "b", Seq: []byte("CCCC")},
	}
	context := []dataset.Record{
		{ID: "b", Seq: []byte("GGGG")},
		{ID: "c", Seq: []byte("TTTT")},
	}
	merged, _ := merge.Merge(
		set(dataset.ProvenanceFocal, "a", "b"),
		set(dataset.ProvenanceContext, "c", "b"),
	)

	res := merge.Sequences(merged, focal, context)
	assert.Equal(t, []string{"a", "b", "c"}, dataset.IDs(res))
	assert.Equal(t, "CCCC", string(res[1].Seq))

	again := merge.Sequences(merged, res, res)
	if diff := cmp.Diff(res, again); diff != "" {
		t.Errorf("sequences not idempotent (-want +got):\n%s", diff)
	}
}
