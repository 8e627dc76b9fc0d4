package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gnames/gnsubsample/pkg/dataset"
)

// fieldReader extracts grouping values from metadata rows. Fields missing
// from the table can be derived from the date column.
type fieldReader struct {
	meta   *dataset.Metadata
	fields []string
	// derived marks fields computed from the date column.
	derived []bool
}

func newFieldReader(meta *dataset.Metadata, groupBy []string) (*fieldReader, error) {
	if len(groupBy) == 0 {
		return nil, GroupByEmptyError()
	}

	res := fieldReader{
		meta:    meta,
		fields:  make([]string, len(groupBy)),
		derived: make([]bool, len(groupBy)),
	}
	for i, f := range groupBy {
		f = strings.TrimSpace(f)
		res.fields[i] = f
		switch {
		case meta.HasColumn(f), f == meta.IDColumn:
		case (f == dataset.FieldYear || f == dataset.FieldMonth) &&
			meta.HasColumn(dataset.ColDate):
			res.derived[i] = true
		default:
			return nil, UnknownFieldError(f, meta.Columns)
		}
	}
	return &res, nil
}

// key builds the group key of a row. It returns false if any grouping
// value is empty.
func (fr *fieldReader) key(row dataset.Row) (string, bool) {
	vals := make([]string, len(fr.fields))
	var year, month string
	var dateParsed bool
	for i, f := range fr.fields {
		var v string
		if fr.derived[i] {
			if !dateParsed {
				date, _ := fr.meta.RowValue(row, dataset.ColDate)
				year, month = DateParts(date)
				dateParsed = true
			}
			if f == dataset.FieldYear {
				v = year
			} else {
				v = month
			}
		} else {
			v, _ = fr.meta.RowValue(row, f)
			v = strings.TrimSpace(v)
		}
		if v == "" || v == "?" {
			return "", false
		}
		vals[i] = v
	}
	return strings.Join(vals, keySep), true
}

// DateParts returns year and month of a collection date. Partially known
// dates like '2020-XX-XX' or '2020-03' keep the known parts. Unknown parts
// are returned as empty strings. Month is zero-padded to two digits.
func DateParts(date string) (year, month string) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", ""
	}

	parts := strings.Split(date, "-")
	if isYear(parts[0]) {
		year = parts[0]
		if len(parts) > 1 {
			month = monthString(parts[1])
		}
		return year, month
	}

	t, err := dateparse.ParseAny(date)
	if err != nil {
		return "", ""
	}
	return strconv.Itoa(t.Year()), fmt.Sprintf("%02d", int(t.Month()))
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func monthString(s string) string {
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	return fmt.Sprintf("%02d", m)
}

// Validate checks that every grouping field can be read from the table.
func Validate(meta *dataset.Metadata, groupBy []string) error {
	_, err := newFieldReader(meta, groupBy)
	return err
}
