package region

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/errcode"
)

// TokenError creates an error for a region token that does not follow
// the file-naming convention.
func TokenError(token, reason string) error {
	msg := `Cannot resolve region token <em>%s</em>: %s

<em>Expected format:</em> word or word_word, optionally prefixed with '_'`

	vars := []any{token, reason}

	return &gn.Error{
		Code: errcode.ConfigRegionTokenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid region token %q: %s", token, reason),
	}
}
