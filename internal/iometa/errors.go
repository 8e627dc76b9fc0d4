package iometa

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

func ReadError(source string, err error) error {
	msg := "Cannot read metadata from <em>%s</em>"
	vars := []any{source}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", source, err),
	}
}

// EmptyError is returned for a table without a header line.
func EmptyError(source string) error {
	msg := "Metadata file <em>%s</em> is empty"
	vars := []any{source}
	return &gn.Error{
		Code: errcode.DataMalformedMetadataError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: no header line", source),
	}
}

// MalformedError is returned for rows that cannot be parsed or do not
// have the same number of fields as the header.
func MalformedError(source string, line int, err error) error {
	msg := `Malformed metadata row in <em>%s</em>, line %d

<em>How to fix:</em>
  Every row needs as many fields as the header line`
	vars := []any{source, line}
	return &gn.Error{
		Code: errcode.DataMalformedMetadataError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %w", source, line, err),
	}
}

func MissingIDColumnError(source, column string, header []string) error {
	msg := `Identifier column <em>%s</em> is not found in <em>%s</em>

<em>Available columns:</em> %s

<em>How to fix:</em>
  Set 'subsample.id_column' in the config file or use --id-column flag`
	vars := []any{column, source, strings.Join(header, ", ")}
	return &gn.Error{
		Code: errcode.ConfigMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: no column %q", source, column),
	}
}

func ReadIncludeError(path string, err error) error {
	msg := "Cannot read inclusion list <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}
