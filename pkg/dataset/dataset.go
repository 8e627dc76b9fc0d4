// Package dataset defines the read-only entities a subsampling run works on:
// aligned sequence records, the metadata table, sampled identifier sets and
// priority scores.
//
// All values are derived artifacts of a single run. Nothing here is mutated
// after it was read from input; transforms return new values.
package dataset

import "strings"

// Well-known metadata columns.
const (
	ColStrain   = "strain"
	ColRegion   = "region"
	ColCountry  = "country"
	ColDivision = "division"
	ColLocation = "location"
	ColDate     = "date"

	// FieldYear and FieldMonth are virtual fields derived from ColDate
	// when the table does not carry them.
	FieldYear  = "year"
	FieldMonth = "month"
)

// Record is one aligned genomic sequence.
type Record struct {
	// ID is the unique identifier of the sequence.
	ID string
	// Seq is the raw aligned sequence.
	Seq []byte
}

// Provenance tells which selector produced a SampledSet.
type Provenance string

const (
	ProvenanceGlobal  Provenance = "global"
	ProvenanceFocal   Provenance = "focal"
	ProvenanceContext Provenance = "context"
	ProvenanceMerged  Provenance = "merged"
)

// SampledSet is an ordered list of selected identifiers.
type SampledSet struct {
	IDs        []string
	Provenance Provenance
}

// Len returns the number of identifiers in the set.
func (s SampledSet) Len() int {
	return len(s.IDs)
}

// Contains builds a lookup set of the identifiers.
func (s SampledSet) Contains() map[string]struct{} {
	res := make(map[string]struct{}, len(s.IDs))
	for _, id := range s.IDs {
		res[id] = struct{}{}
	}
	return res
}

// Scores maps sequence identifiers to non-negative priority scores.
// Higher means more genetically relevant to the focal set.
type Scores map[string]float64

// Row is one metadata row.
type Row struct {
	ID     string
	Values []string
}

// Metadata is a table of named columns keyed by an identifier column.
type Metadata struct {
	// Columns are the header names in file order. The identifier column
	// is part of Columns.
	Columns []string
	// IDColumn is the name of the identifier column.
	IDColumn string
	// Rows keep file order.
	Rows []Row

	colIdx map[string]int
	rowIdx map[string]int
}

// NewMetadata creates a table and builds its indices. Rows with a duplicate
// identifier keep the first occurrence in the index.
func NewMetadata(idColumn string, columns []string, rows []Row) *Metadata {
	res := &Metadata{
		Columns:  columns,
		IDColumn: idColumn,
		Rows:     rows,
		colIdx:   make(map[string]int, len(columns)),
		rowIdx:   make(map[string]int, len(rows)),
	}
	for i, v := range columns {
		res.colIdx[strings.TrimSpace(v)] = i
	}
	for i := range rows {
		if _, ok := res.rowIdx[rows[i].ID]; !ok {
			res.rowIdx[rows[i].ID] = i
		}
	}
	return res
}

// HasColumn reports if the table contains the column.
func (m *Metadata) HasColumn(name string) bool {
	_, ok := m.colIdx[name]
	return ok
}

// ColumnIndex returns the position of a column or -1.
func (m *Metadata) ColumnIndex(name string) int {
	if i, ok := m.colIdx[name]; ok {
		return i
	}
	return -1
}

// Row returns the metadata row for an identifier.
func (m *Metadata) Row(id string) (Row, bool) {
	i, ok := m.rowIdx[id]
	if !ok {
		return Row{}, false
	}
	return m.Rows[i], true
}

// Value returns the value of a column for an identifier. The second
// result is false if there is no such row or column.
func (m *Metadata) Value(id, column string) (string, bool) {
	row, ok := m.Row(id)
	if !ok {
		return "", false
	}
	return m.RowValue(row, column)
}

// RowValue returns the value of a column in a row.
func (m *Metadata) RowValue(row Row, column string) (string, bool) {
	if column == m.IDColumn {
		return row.ID, true
	}
	i, ok := m.colIdx[column]
	if !ok || i >= len(row.Values) {
		return "", false
	}
	return row.Values[i], true
}

// Len returns the number of rows.
func (m *Metadata) Len() int {
	return len(m.Rows)
}

// IDs returns record identifiers in order.
func IDs(recs []Record) []string {
	res := make([]string, len(recs))
	for i := range recs {
		res[i] = recs[i].ID
	}
	return res
}

// Select returns records listed in set, in the order of the set.
// Identifiers without a record are skipped.
func Select(recs []Record, set SampledSet) []Record {
	idx := make(map[string]int, len(recs))
	for i := range recs {
		idx[recs[i].ID] = i
	}
	res := make([]Record, 0, len(set.IDs))
	for _, id := range set.IDs {
		if i, ok := idx[id]; ok {
			res = append(res, recs[i])
		}
	}
	return res
}
