// Package merge combines sampled sets into one deduplicated set.
package merge

import (
	"github.com/gnames/gnsubsample/pkg/dataset"
)

// Stats describe the result of a merge.
type Stats struct {
	// Input is the total number of identifiers in all sets.
	Input int `json:"input"`
	// Duplicates is the number of identifiers seen more than once.
	Duplicates int `json:"duplicates"`
	// Output is the number of unique identifiers.
	Output int `json:"output"`
	// BySource counts unique identifiers contributed by each provenance.
	BySource map[dataset.Provenance]int `json:"bySource"`
}

// Merge joins sets keeping the first occurrence of each identifier.
// Merging is idempotent: Merge(Merge(a, b), b) equals Merge(a, b).
func Merge(sets ...dataset.SampledSet) (dataset.SampledSet, Stats) {
	stats := Stats{BySource: make(map[dataset.Provenance]int)}
	res := dataset.SampledSet{Provenance: dataset.ProvenanceMerged}
	seen := make(map[string]struct{})

	for _, set := range sets {
		stats.Input += len(set.IDs)
		for _, id := range set.IDs {
			if _, ok := seen[id]; ok {
				stats.Duplicates++
				continue
			}
			seen[id] = struct{}{}
			res.IDs = append(res.IDs, id)
			stats.BySource[set.Provenance]++
		}
	}
	stats.Output = len(res.IDs)
	return res, stats
}

// Records concatenates record collections, keeping the first record of
// every identifier. It is the sequence-level counterpart of Merge.
func Records(collections ...[]dataset.Record) ([]dataset.Record, int) {
	var res []dataset.Record
	var dups int
	seen := make(map[string]struct{})
	for _, recs := range collections {
		for _, r := range recs {
			if _, ok := seen[r.ID]; ok {
				dups++
				continue
			}
			seen[r.ID] = struct{}{}
			res = append(res, r)
		}
	}
	return res, dups
}

// Sequences returns records for identifiers of a merged set, in the order
// of the set. When several collections hold the same identifier the record
// from the first collection is used.
func Sequences(
	set dataset.SampledSet,
	collections ...[]dataset.Record,
) []dataset.Record {
	recs, _ := Records(collections...)
	return dataset.Select(recs, set)
}
