// Package sampler selects at most N sequences per stratification group.
//
// Groups are defined by an ordered list of metadata fields. Within a group
// identifiers are ranked by an optional score (higher first) and ties keep
// the input order, so for a fixed input the output never changes between
// runs.
package sampler

import (
	"sort"
	"strings"

	"github.com/gnames/gnsubsample/pkg/dataset"
)

// keySep joins group values into a single map key.
const keySep = "\x1f"

// Params configure one sampling pass.
type Params struct {
	// GroupBy is the ordered list of metadata fields defining groups.
	GroupBy []string

	// Quota is the maximum number of identifiers kept per group.
	Quota int

	// Rank assigns priorities to identifiers. Higher scores are selected
	// first. Identifiers without a score rank as 0. Nil keeps input order.
	Rank dataset.Scores

	// Include lists identifiers that are always retained. They do not use
	// group quota.
	Include map[string]struct{}
}

// Stats account for every candidate that did not make it into the sample.
type Stats struct {
	// Candidates is the number of identifiers given to the sampler.
	Candidates int `json:"candidates"`
	// Duplicates is the number of repeated candidate identifiers skipped.
	Duplicates int `json:"duplicates"`
	// MissingMetadata counts identifiers without a metadata row.
	MissingMetadata int `json:"missingMetadata"`
	// MissingGroupField counts rows with an empty grouping value.
	MissingGroupField int `json:"missingGroupField"`
	// Groups is the number of observed groups.
	Groups int `json:"groups"`
	// OverQuota counts grouped identifiers that did not fit the quota.
	OverQuota int `json:"overQuota"`
	// Included counts identifiers retained by the inclusion list.
	Included int `json:"included"`
	// Selected is the size of the resulting sample.
	Selected int `json:"selected"`
}

// Dropped returns the number of candidates not selected.
func (s Stats) Dropped() int {
	return s.MissingMetadata + s.MissingGroupField + s.OverQuota
}

// Sample selects identifiers from ids. The result keeps the order of ids.
func Sample(
	ids []string,
	meta *dataset.Metadata,
	p Params,
) (dataset.SampledSet, Stats, error) {
	var stats Stats
	var res dataset.SampledSet

	if p.Quota < 0 {
		return res, stats, QuotaError(p.Quota)
	}
	fields, err := newFieldReader(meta, p.GroupBy)
	if err != nil {
		return res, stats, err
	}

	stats.Candidates = len(ids)
	selected := make([]bool, len(ids))
	seen := make(map[string]struct{}, len(ids))
	groups := make(map[string][]int)
	var order []string

	for i, id := range ids {
		if _, ok := seen[id]; ok {
			stats.Duplicates++
			continue
		}
		seen[id] = struct{}{}

		if _, ok := p.Include[id]; ok {
			selected[i] = true
			stats.Included++
			continue
		}

		row, ok := meta.Row(id)
		if !ok {
			stats.MissingMetadata++
			continue
		}

		key, ok := fields.key(row)
		if !ok {
			stats.MissingGroupField++
			continue
		}

		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	stats.Groups = len(order)

	for _, key := range order {
		members := groups[key]
		if p.Rank != nil {
			sort.SliceStable(members, func(a, b int) bool {
				return p.Rank[ids[members[a]]] > p.Rank[ids[members[b]]]
			})
		}
		limit := min(p.Quota, len(members))
		for _, i := range members[:limit] {
			selected[i] = true
		}
		stats.OverQuota += len(members) - limit
	}

	res.IDs = make([]string, 0, len(ids))
	for i, ok := range selected {
		if ok {
			res.IDs = append(res.IDs, ids[i])
		}
	}
	stats.Selected = len(res.IDs)

	return res, stats, nil
}

// GroupOf returns the group key of an identifier, with values separated
// by '|'. It is meant for reporting and tests.
func GroupOf(
	id string,
	meta *dataset.Metadata,
	groupBy []string,
) (string, error) {
	fields, err := newFieldReader(meta, groupBy)
	if err != nil {
		return "", err
	}
	row, ok := meta.Row(id)
	if !ok {
		return "", nil
	}
	key, _ := fields.key(row)
	return strings.ReplaceAll(key, keySep, "|"), nil
}
