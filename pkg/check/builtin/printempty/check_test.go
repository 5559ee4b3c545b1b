package printempty_test

import (
	"testing"

	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin/printempty"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

func call(callee syntax.Expr, args ...syntax.Expr) *syntax.CallExpr {
	return &syntax.CallExpr{Loc: syntax.Loc{Line: 2, Column: 5}, Callee: callee, Args: args}
}

func TestCheck_CheckNode(t *testing.T) {
	t.Parallel()
	loc := syntax.Loc{Line: 2, Column: 5}
	printName := &syntax.NameExpr{Loc: loc, Name: "print"}
	data := []struct {
		name string
		node syntax.Node
		exp  bool
	}{
		{name: "print empty string", node: call(printName, &syntax.StrExpr{Loc: loc, Value: ""}), exp: true},
		{name: "print non empty string", node: call(printName, &syntax.StrExpr{Loc: loc, Value: "x"}), exp: false},
		{name: "print without arguments", node: call(printName), exp: false},
		{
			name: "print with two arguments",
			node: call(printName, &syntax.StrExpr{Loc: loc}, &syntax.StrExpr{Loc: loc}),
			exp:  false,
		},
		{
			name: "print with a keyword argument",
			node: &syntax.CallExpr{
				Loc:      loc,
				Callee:   printName,
				Args:     []syntax.Expr{&syntax.StrExpr{Loc: loc}},
				Keywords: []syntax.Expr{&syntax.StrExpr{Loc: loc, Value: "x"}},
			},
			exp: false,
		},
		{name: "another function", node: call(&syntax.NameExpr{Loc: loc, Name: "log"}, &syntax.StrExpr{Loc: loc}), exp: false},
		{
			name: "method named print",
			node: call(&syntax.MemberExpr{Loc: loc, Expr: &syntax.NameExpr{Loc: loc, Name: "x"}, Name: "print"}, &syntax.StrExpr{Loc: loc}),
			exp:  false,
		},
		{name: "not a call", node: &syntax.NameExpr{Loc: loc, Name: "print"}, exp: false},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			diags := printempty.New().CheckNode(d.node)
			if !d.exp {
				if len(diags) != 0 {
					t.Fatalf("wanted no diagnostics, got %d", len(diags))
				}
				return
			}
			if len(diags) != 1 {
				t.Fatalf("wanted 1 diagnostic, got %d", len(diags))
			}
			if got := diags[0].ErrorCode().String(); got != "FURB105" {
				t.Errorf("wanted FURB105, got %s", got)
			}
			if diags[0].Line != 2 || diags[0].Column != 5 {
				t.Errorf("wanted 2:5, got %d:%d", diags[0].Line, diags[0].Column)
			}
		})
	}
}
