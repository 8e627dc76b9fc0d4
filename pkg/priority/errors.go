package priority

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

// EmptyReferenceError creates an error for scoring without reference
// sequences.
func EmptyReferenceError() error {
	msg := `Reference (focal) set is empty, cannot compute priorities

<em>Possible causes:</em>
  - No sequences match the focal region
  - Focal quota is 0

<em>How to fix:</em>
  Check the region token and the region column of metadata`

	return &gn.Error{
		Code: errcode.DataEmptyReferenceError,
		Msg:  msg,
		Err:  fmt.Errorf("empty reference set"),
	}
}

// UnequalLengthError creates an error for sequences that are not aligned
// to the same length.
func UnequalLengthError(id string, length, width int) error {
	msg := `Sequence <em>%s</em> has length %d, alignment width is %d

<em>How to fix:</em>
  Use sequences aligned to the same reference`

	vars := []any{id, length, width}

	return &gn.Error{
		Code: errcode.DataUnequalLengthError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("sequence %q length %d differs from alignment width %d",
			id, length, width),
	}
}

// ComparisonLimitError creates an error when pairwise scoring exceeds
// the configured limit.
func ComparisonLimitError(refs, cands, limit int) error {
	msg := `Too many pairwise comparisons: %d reference x %d candidates

<em>Limit:</em> %d

<em>How to fix:</em>
  1. Decrease focal quota
  2. Increase <em>priority.max_comparisons</em> (0 means no limit)`

	vars := []any{refs, cands, limit}

	return &gn.Error{
		Code: errcode.ResourceComparisonLimitError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%d comparisons exceed limit %d",
			refs*cands, limit),
	}
}

// CancelledError creates an error for interrupted scoring.
func CancelledError(err error) error {
	msg := "Priority scoring was interrupted"

	return &gn.Error{
		Code: errcode.ResourceCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("priority scoring cancelled: %w", err),
	}
}
