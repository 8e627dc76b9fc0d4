// Package region turns a region token from the file-naming convention into
// an optional region filter.
//
// A token is `[_]word(_word)*`. Only the designated separator `_` is
// treated as a delimiter and only at word boundaries: letters inside a word
// are never removed. An empty token, or the configured global token, means
// no region restriction and resolves to a nil *Filter.
package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Separator delimits words of a region token.
const Separator = "_"

// DefaultGlobalToken selects a run without region restriction.
const DefaultGlobalToken = "global"

// Filter restricts sampling to one canonical region. A nil *Filter applies
// no region predicate.
type Filter struct {
	// Name is the canonical, case-folded region name, words separated by a
	// single space.
	Name string
}

// Resolve converts a token into a filter. It returns nil, nil for the global
// mode.
func Resolve(token, globalToken string) (*Filter, error) {
	if globalToken == "" {
		globalToken = DefaultGlobalToken
	}
	token = strings.TrimSpace(token)
	if token == "" || fold(token) == fold(globalToken) {
		return nil, nil
	}

	if strings.ContainsAny(token, `/\`) {
		return nil, TokenError(token, "path separators are not allowed")
	}
	if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return nil, TokenError(token, "whitespace is not allowed")
	}

	body := strings.TrimPrefix(token, Separator)
	words := strings.Split(body, Separator)
	for i := range words {
		if words[i] == "" {
			return nil, TokenError(token, "empty word between separators")
		}
		words[i] = fold(words[i])
	}

	return &Filter{Name: strings.Join(words, " ")}, nil
}

// Token builds the file-naming token for a canonical region name.
func Token(name string) string {
	return strings.Join(strings.Fields(fold(name)), Separator)
}

// Label returns the token used in output file names.
func Label(f *Filter, globalToken string) string {
	if f == nil {
		if globalToken == "" {
			return DefaultGlobalToken
		}
		return globalToken
	}
	return Token(f.Name)
}

// IsGlobal reports if the filter applies no restriction.
func (f *Filter) IsGlobal() bool {
	return f == nil
}

// Matches compares a metadata region value with the filter. Values are
// case-folded and word boundaries are ignored, so "South America",
// "south_america" and "southamerica" are the same region. A nil filter
// matches everything.
func (f *Filter) Matches(value string) bool {
	if f == nil {
		return true
	}
	v := compact(Normalize(value))
	return v != "" && v == compact(f.Name)
}

// Normalize brings a metadata region value to the canonical form.
func Normalize(value string) string {
	value = strings.ReplaceAll(value, Separator, " ")
	return strings.Join(strings.Fields(fold(value)), " ")
}

// compact removes word boundaries from a normalized name.
func compact(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

func fold(s string) string {
	return cases.Fold().String(s)
}
