// Package iopriority reads and writes priority score tables. A table has
// no header, every line holds a sequence identifier and its score
// separated by a tab.
package iopriority

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gocarina/gocsv"
)

type entry struct {
	ID    string  `csv:"strain"`
	Score float64 `csv:"priority"`
}

// Write writes scores of ids in the given order. Ids without a score
// are skipped.
func Write(w io.Writer, ids []string, scores dataset.Scores) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		s, ok := scores[id]
		if !ok {
			continue
		}
		bw.WriteString(id)
		bw.WriteByte('\t')
		bw.WriteString(strconv.FormatFloat(s, 'f', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Bytes returns scores of ids as a TSV table.
func Bytes(ids []string, scores dataset.Scores) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, ids, scores)
	return buf.Bytes()
}

// ReadFile reads a priority table.
func ReadFile(path string) ([]string, dataset.Scores, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses a priority table. It returns identifiers in file order
// together with their scores.
func Read(r io.Reader, source string) ([]string, dataset.Scores, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return nil, dataset.Scores{}, nil
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = 2

	var entries []*entry
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &entries); err != nil {
		return nil, nil, MalformedError(source, err)
	}

	ids := make([]string, 0, len(entries))
	scores := make(dataset.Scores, len(entries))
	for i, v := range entries {
		switch {
		case v.ID == "":
			return nil, nil, InvalidEntryError(source, i+1, "empty identifier")
		case math.IsNaN(v.Score) || math.IsInf(v.Score, 0) || v.Score < 0:
			return nil, nil, InvalidEntryError(source, i+1, "score is not a non-negative number")
		}
		if _, ok := scores[v.ID]; ok {
			return nil, nil, InvalidEntryError(source, i+1, "repeated identifier")
		}
		ids = append(ids, v.ID)
		scores[v.ID] = v.Score
	}
	return ids, scores, nil
}
