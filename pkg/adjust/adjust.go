// Package adjust rewrites regional labels of metadata so that later
// stratification and coloring follow the focal/context split.
//
// In a focal run every row outside the focal region gets its country and
// division replaced by its region, and its location cleared. Rows inside
// the focal region are not changed. The result has the same columns, the
// same rows and the same order as the input.
package adjust

import (
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/region"
)

// Stats count rows changed by Adjust.
type Stats struct {
	Rows      int `json:"rows"`
	Focal     int `json:"focal"`
	Rewritten int `json:"rewritten"`
}

// Adjust returns the adjusted table. A nil filter returns the input table
// unchanged. The input table is never modified.
func Adjust(
	meta *dataset.Metadata,
	filter *region.Filter,
) (*dataset.Metadata, Stats) {
	stats := Stats{Rows: meta.Len()}
	if filter.IsGlobal() {
		stats.Focal = meta.Len()
		return meta, stats
	}

	regIdx := meta.ColumnIndex(dataset.ColRegion)
	targets := []int{
		meta.ColumnIndex(dataset.ColCountry),
		meta.ColumnIndex(dataset.ColDivision),
	}
	locIdx := meta.ColumnIndex(dataset.ColLocation)

	rows := make([]dataset.Row, len(meta.Rows))
	for i, row := range meta.Rows {
		reg := value(row, regIdx)
		if filter.Matches(reg) {
			rows[i] = row
			stats.Focal++
			continue
		}

		vals := make([]string, len(row.Values))
		copy(vals, row.Values)
		for _, j := range targets {
			if j >= 0 && j < len(vals) {
				vals[j] = reg
			}
		}
		if locIdx >= 0 && locIdx < len(vals) {
			vals[locIdx] = ""
		}
		rows[i] = dataset.Row{ID: row.ID, Values: vals}
		stats.Rewritten++
	}

	columns := make([]string, len(meta.Columns))
	copy(columns, meta.Columns)
	return dataset.NewMetadata(meta.IDColumn, columns, rows), stats
}

func value(row dataset.Row, idx int) string {
	if idx < 0 || idx >= len(row.Values) {
		return ""
	}
	return row.Values[idx]
}
