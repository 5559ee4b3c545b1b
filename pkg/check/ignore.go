package check

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

var categoryPattern = regexp.MustCompile(`^#[a-z][a-z\d-]*$`)

// Ignore is a set of error codes and categories excluded from a run.
// The zero value and nil ignore nothing.
type Ignore struct {
	codes      map[diag.ErrorCode]struct{}
	categories map[string]struct{}
}

// ParseIgnore parses entries such as "FURB113", "113" or "#readability".
func ParseIgnore(entries []string) (*Ignore, error) {
	ig := &Ignore{
		codes:      map[diag.ErrorCode]struct{}{},
		categories: map[string]struct{}{},
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry, "#") {
			if !categoryPattern.MatchString(entry) {
				return nil, fmt.Errorf(`"%s" must be in form #category`, entry)
			}
			ig.categories[entry[1:]] = struct{}{}
			continue
		}
		code, err := diag.ParseErrorCode(entry)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		ig.codes[code] = struct{}{}
	}
	return ig, nil
}

// Match reports whether the check described by m is ignored.
func (ig *Ignore) Match(m *Meta) bool {
	if ig == nil {
		return false
	}
	if _, ok := ig.codes[m.ErrorCode()]; ok {
		return true
	}
	return slices.ContainsFunc(m.Categories, func(c string) bool {
		_, ok := ig.categories[c]
		return ok
	})
}
