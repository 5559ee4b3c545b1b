// Package listextend reports runs of `x.append(...)` statements which can be
// replaced by a single `x.extend(...)`.
package listextend

import (
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

const doc = `When appending multiple values to a list, you can use the .extend()
method to add an iterable to the end of an existing list. This way, you
don't have to call .append() on every element:

Bad:

    nums = [1, 2, 3]

    nums.append(4)
    nums.append(5)
    nums.append(6)

Good:

    nums = [1, 2, 3]

    nums.extend((4, 5, 6))`

type Check struct {
	meta *check.Meta
}

func New() *Check {
	return &Check{
		meta: &check.Meta{
			Code:       113,
			Prefix:     diag.DefaultPrefix,
			Name:       "use-list-extend",
			Message:    "use a single bulk-extend call instead of repeatedly calling the single-element append method",
			Doc:        doc,
			Categories: []string{"list"},
		},
	}
}

func (c *Check) Meta() *check.Meta {
	return c.meta
}

// scanState tracks the current run of append calls.
// An empty subject means no run is active.
type scanState struct {
	subject         string
	anchor          syntax.Loc
	alreadyReported bool
}

// CheckStmts reports one diagnostic per maximal run of two or more
// consecutive appends to the same name, located at the first statement of
// the run. The anchor moves forward on every append, so once a run has been
// reported nothing else in it is.
func (c *Check) CheckStmts(stmts []syntax.Stmt) []*diag.Diagnostic {
	var diags []*diag.Diagnostic
	state := scanState{}
	for _, stmt := range stmts {
		name, ok := appendReceiver(stmt)
		if !ok {
			state = scanState{}
			continue
		}
		if !state.alreadyReported && state.subject != "" && state.subject == name {
			diags = append(diags, c.meta.Diagnostic(state.anchor))
			state.alreadyReported = true
		}
		state.subject = name
		state.anchor = stmt.Location()
	}
	return diags
}

// appendReceiver returns x for a statement of the form `x.append(...)`.
func appendReceiver(stmt syntax.Stmt) (string, bool) {
	es, ok := stmt.(*syntax.ExpressionStmt)
	if !ok {
		return "", false
	}
	call, ok := es.Expr.(*syntax.CallExpr)
	if !ok {
		return "", false
	}
	member, ok := call.Callee.(*syntax.MemberExpr)
	if !ok || member.Name != "append" {
		return "", false
	}
	recv, ok := member.Expr.(*syntax.NameExpr)
	if !ok {
		return "", false
	}
	return recv.Name, true
}
