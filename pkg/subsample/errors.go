package subsample

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

// MissingColumnError creates an error for a metadata table without
// a column required by a focal run.
func MissingColumnError(column string) error {
	msg := `Metadata has no <em>%s</em> column, cannot select a region

<em>How to fix:</em>
  1. Add the column to metadata
  2. Run without a region token for a global sample`

	vars := []any{column}

	return &gn.Error{
		Code: errcode.ConfigMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("metadata column %q is missing", column),
	}
}
