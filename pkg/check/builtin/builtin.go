// Package builtin lists the checks shipped with refurb.
package builtin

import (
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin/listextend"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin/printempty"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin/withsuppress"
)

// All returns new instances of every built-in check, ordered by code.
func All() []check.Check {
	return []check.Check{
		printempty.New(),
		withsuppress.New(),
		listextend.New(),
	}
}
