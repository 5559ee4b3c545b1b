package pack

import (
	"slices"
	"strings"

	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// Check reports calls matching a declared shape.
type Check struct {
	meta  *check.Meta
	match *Match
}

func (c *Check) Meta() *check.Meta {
	return c.meta
}

func (c *Check) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindCallExpr}
}

func (c *Check) CheckNode(node syntax.Node) []*diag.Diagnostic {
	call, ok := node.(*syntax.CallExpr)
	if !ok || !c.matches(call) {
		return nil
	}
	return []*diag.Diagnostic{c.meta.Diagnostic(call.Location())}
}

func (c *Check) matches(call *syntax.CallExpr) bool {
	if c.match.Args != nil && len(call.Args) != *c.match.Args {
		return false
	}
	if c.match.Method != "" {
		m, ok := call.Callee.(*syntax.MemberExpr)
		return ok && m.Name == c.match.Method
	}
	name, ok := dottedName(call.Callee)
	return ok && name == c.match.Call
}

// dottedName returns "a.b.c" for a chain of member accesses on a name.
func dottedName(expr syntax.Expr) (string, bool) {
	var parts []string
	for {
		switch e := expr.(type) {
		case *syntax.NameExpr:
			parts = append(parts, e.Name)
			slices.Reverse(parts)
			return strings.Join(parts, "."), true
		case *syntax.MemberExpr:
			parts = append(parts, e.Name)
			expr = e.Expr
		default:
			return "", false
		}
	}
}
