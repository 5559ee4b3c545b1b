// Package printempty reports `print("")`, which is the same as `print()`.
package printempty

import (
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

const doc = `print() already prints an empty line, so passing an empty string
is redundant:

Bad:

    print("")

Good:

    print()`

type Check struct {
	meta *check.Meta
}

func New() *Check {
	return &Check{
		meta: &check.Meta{
			Code:       105,
			Prefix:     diag.DefaultPrefix,
			Name:       "print-empty-string",
			Message:    `Use print() instead of print("")`,
			Doc:        doc,
			Categories: []string{"builtin", "readability"},
		},
	}
}

func (c *Check) Meta() *check.Meta {
	return c.meta
}

func (c *Check) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindCallExpr}
}

func (c *Check) CheckNode(node syntax.Node) []*diag.Diagnostic {
	call, ok := node.(*syntax.CallExpr)
	if !ok || len(call.Args) != 1 || len(call.Keywords) != 0 {
		return nil
	}
	callee, ok := call.Callee.(*syntax.NameExpr)
	if !ok || callee.Name != "print" {
		return nil
	}
	arg, ok := call.Args[0].(*syntax.StrExpr)
	if !ok || arg.Value != "" {
		return nil
	}
	return []*diag.Diagnostic{c.meta.Diagnostic(call.Location())}
}
