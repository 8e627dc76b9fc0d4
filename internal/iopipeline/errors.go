package iopipeline

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

func MissingInputError(sequences, metadata string) error {
	msg := `Input files are not set

<em>Sequences:</em> %s
<em>Metadata:</em> %s

<em>How to fix:</em>
  Use --sequences and --metadata flags`
	vars := []any{sequences, metadata}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  errors.New("sequences and metadata paths are required"),
	}
}

func ReportError(err error) error {
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot create run report",
		Err:  fmt.Errorf("cannot encode report: %w", err),
	}
}

func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ResourceCancelledError,
		Msg:  "Subsampling run was interrupted, no outputs were written",
		Err:  fmt.Errorf("run cancelled: %w", err),
	}
}
