// Package iofasta reads and writes aligned multi-FASTA files.
//
// Input files can be plain text or compressed, see iofs.Open.
package iofasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/pkg/dataset"
)

// lineWidth is the number of symbols per line in written files.
const lineWidth = 80

// maxLine limits the length of one input line.
const maxLine = 256 * 1024 * 1024

// ReadFile reads all records of a FASTA file.
func ReadFile(path string) ([]dataset.Record, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses FASTA records from r. The identifier of a record is the
// first word of its header line. Sequence lines are joined and stripped
// of whitespace. The source is used in error messages.
func Read(r io.Reader, source string) ([]dataset.Record, error) {
	var res []dataset.Record
	seen := make(map[string]int)
	var seq []byte
	var lineNum int

	flush := func() {
		if len(res) > 0 {
			res[len(res)-1].Seq = seq
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		lineNum++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			flush()
			fields := bytes.Fields(line[1:])
			if len(fields) == 0 {
				return nil, MalformedError(source, lineNum, "empty identifier")
			}
			id := string(fields[0])
			if prev, ok := seen[id]; ok {
				return nil, DuplicateError(source, id, prev, lineNum)
			}
			seen[id] = lineNum
			res = append(res, dataset.Record{ID: id})
			seq = nil
			continue
		}

		if len(res) == 0 {
			return nil, MalformedError(
				source, lineNum, "sequence data before the first header",
			)
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return nil, ReadError(source, err)
	}
	flush()

	for i := range res {
		if len(res[i].Seq) == 0 {
			return nil, MalformedError(
				source, seen[res[i].ID], "record has no sequence",
			)
		}
	}
	return res, nil
}

// Write writes records to w, wrapping sequences at 80 symbols.
func Write(w io.Writer, recs []dataset.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		bw.WriteByte('>')
		bw.WriteString(r.ID)
		bw.WriteByte('\n')
		for start := 0; start < len(r.Seq); start += lineWidth {
			end := min(start+lineWidth, len(r.Seq))
			bw.Write(r.Seq[start:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// Bytes returns records in FASTA format.
func Bytes(recs []dataset.Record) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, recs)
	return buf.Bytes()
}
