// Package iometa reads and writes metadata tables and inclusion lists.
package iometa

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/csimplestring/go-csv/detector"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/pkg/dataset"
)

// sniffSize is the amount of data used for delimiter detection.
const sniffSize = 64 * 1024

// delimiters that are accepted from the detector, in order of preference.
var delimiters = []rune{'\t', ',', ';', '|'}

// ReadFile reads a metadata table. The file can be compressed.
func ReadFile(path, idColumn string) (*dataset.Metadata, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, idColumn, path)
}

// Read parses a delimited metadata table with a header line. The
// delimiter is detected from the beginning of the data, tab is used when
// detection fails. Rows with an empty or repeated identifier are skipped
// and counted in the log.
func Read(r io.Reader, idColumn, source string) (*dataset.Metadata, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	sep := Delimiter(br)

	cr := csv.NewReader(br)
	cr.Comma = sep
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, EmptyError(source)
	}
	if err != nil {
		return nil, ReadError(source, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(gnlib.FixUtf8(header[i]))
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	idIdx := -1
	for i, v := range header {
		if v == idColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, MissingIDColumnError(source, idColumn, header)
	}

	var rows []dataset.Row
	var emptyID, dupID int
	seen := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var line int
			var pErr *csv.ParseError
			if errors.As(err, &pErr) {
				line = pErr.Line
			}
			return nil, MalformedError(source, line, err)
		}

		for i := range rec {
			rec[i] = strings.TrimSpace(gnlib.FixUtf8(rec[i]))
		}
		id := rec[idIdx]
		if id == "" {
			emptyID++
			continue
		}
		if _, ok := seen[id]; ok {
			dupID++
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, dataset.Row{ID: id, Values: rec})
	}

	if emptyID > 0 || dupID > 0 {
		slog.Warn("Metadata rows skipped",
			"source", source,
			"emptyID", emptyID,
			"duplicateID", dupID,
		)
	}
	slog.Info("Metadata loaded",
		"source", source, "rows", len(rows), "columns", len(header))
	return dataset.NewMetadata(idColumn, header, rows), nil
}

// Delimiter detects the field delimiter of a table without consuming
// input.
func Delimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(sniffSize)
	if len(head) == 0 {
		return '\t'
	}
	found := detector.New().DetectDelimiter(bytes.NewReader(head), '"')

	candidates := make(map[rune]struct{}, len(found))
	for _, v := range found {
		if v != "" {
			candidates[rune(v[0])] = struct{}{}
		}
	}
	for _, d := range delimiters {
		if _, ok := candidates[d]; ok {
			return d
		}
	}
	return '\t'
}

// Write writes the table as TSV. Column order and row order are kept.
func Write(w io.Writer, meta *dataset.Metadata) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, meta.Columns)
	for _, row := range meta.Rows {
		writeRow(bw, row.Values)
	}
	return bw.Flush()
}

// Bytes returns the table in TSV format.
func Bytes(meta *dataset.Metadata) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, meta)
	return buf.Bytes()
}

func writeRow(bw *bufio.Writer, vals []string) {
	row := gnfmt.ToCSV(vals, '\t')
	bw.WriteString(strings.TrimSuffix(row, "\n"))
	bw.WriteByte('\n')
}
