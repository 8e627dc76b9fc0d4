package iofasta

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

func ReadError(source string, err error) error {
	msg := "Cannot read sequences from <em>%s</em>"
	vars := []any{source}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", source, err),
	}
}

// MalformedError creates an error for a FASTA record that cannot be
// parsed.
func MalformedError(source string, line int, reason string) error {
	msg := `Malformed sequence record in <em>%s</em>, line %d: %s

<em>How to fix:</em>
  Every record needs a '>identifier' header followed by sequence lines`
	vars := []any{source, line, reason}
	return &gn.Error{
		Code: errcode.DataMalformedSequenceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %s", source, line, reason),
	}
}

// DuplicateError creates an error for an identifier that appears in more
// than one record.
func DuplicateError(source, id string, first, line int) error {
	msg := `Sequence <em>%s</em> appears twice in <em>%s</em> (lines %d and %d)

<em>How to fix:</em>
  Remove duplicate records before subsampling`
	vars := []any{id, source, first, line}
	return &gn.Error{
		Code: errcode.DataDuplicateSequenceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s: duplicate identifier %q at lines %d and %d",
			source, id, first, line),
	}
}
