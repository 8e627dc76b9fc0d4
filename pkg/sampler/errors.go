package sampler

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

// GroupByEmptyError creates an error for a grouping key without fields.
func GroupByEmptyError() error {
	msg := `Grouping key is empty

<em>How to fix:</em>
  Set at least one metadata field in <em>focal_group_by</em> or
  <em>context_group_by</em>`

	return &gn.Error{
		Code: errcode.ConfigGroupByEmptyError,
		Msg:  msg,
		Err:  fmt.Errorf("grouping key has no fields"),
	}
}

// UnknownFieldError creates an error for a grouping field that is not
// a metadata column and cannot be derived.
func UnknownFieldError(field string, columns []string) error {
	msg := `Grouping field <em>%s</em> is not in metadata

<em>Available columns:</em> %s

<em>How to fix:</em>
  1. Use one of available columns
  2. 'year' and 'month' need a 'date' column`

	vars := []any{field, strings.Join(columns, ", ")}

	return &gn.Error{
		Code: errcode.ConfigUnknownFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown grouping field %q", field),
	}
}

// QuotaError creates an error for a negative quota.
func QuotaError(quota int) error {
	msg := "Quota per group cannot be negative: <em>%d</em>"
	vars := []any{quota}

	return &gn.Error{
		Code: errcode.ConfigQuotaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("negative quota %d", quota),
	}
}
