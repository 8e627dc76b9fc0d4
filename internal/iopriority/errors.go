package iopriority

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

func MalformedError(source string, err error) error {
	msg := `Cannot parse priorities from <em>%s</em>

<em>How to fix:</em>
  Every line needs an identifier and a score separated by a tab`
	vars := []any{source}
	return &gn.Error{
		Code: errcode.DataMalformedPriorityError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s: %w", source, err),
	}
}

func InvalidEntryError(source string, line int, reason string) error {
	msg := "Invalid priority in <em>%s</em>, line %d: %s"
	vars := []any{source, line, reason}
	return &gn.Error{
		Code: errcode.DataMalformedPriorityError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %s", source, line, reason),
	}
}
