package visitor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
	"github.com/suzuki-shunsuke/refurb/pkg/visitor"
)

// recorder reports every node of the observed kinds as a diagnostic whose
// message is the kind name, so the traversal order shows up in the output.
type recorder struct {
	meta  *check.Meta
	kinds []syntax.Kind
}

func newRecorder(code int, kinds ...syntax.Kind) *recorder {
	return &recorder{
		meta:  &check.Meta{Code: code, Prefix: "TST", Name: "recorder", Message: "recorder"},
		kinds: kinds,
	}
}

func (r *recorder) Meta() *check.Meta { return r.meta }

func (r *recorder) Kinds() []syntax.Kind { return r.kinds }

func (r *recorder) CheckNode(node syntax.Node) []*diag.Diagnostic {
	d := r.meta.Diagnostic(node.Location())
	d.Message = node.Kind().String()
	return []*diag.Diagnostic{d}
}

// seqRecorder reports the length of every statement sequence it sees.
type seqRecorder struct {
	meta *check.Meta
}

func (r *seqRecorder) Meta() *check.Meta { return r.meta }

func (r *seqRecorder) CheckStmts(stmts []syntax.Stmt) []*diag.Diagnostic {
	d := r.meta.Diagnostic(syntax.Loc{})
	d.Code = len(stmts)
	d.Message = "seq"
	return []*diag.Diagnostic{d}
}

func loc(line, col int) syntax.Loc {
	return syntax.Loc{Line: line, Column: col}
}

func name(line int, n string) *syntax.NameExpr {
	return &syntax.NameExpr{Loc: loc(line, 1), Name: n}
}

func appendStmt(line int, recv string) *syntax.ExpressionStmt {
	return &syntax.ExpressionStmt{Loc: loc(line, 5), Expr: &syntax.CallExpr{
		Loc: loc(line, 5),
		Callee: &syntax.MemberExpr{
			Loc:  loc(line, 5),
			Expr: &syntax.NameExpr{Loc: loc(line, 5), Name: recv},
			Name: "append",
		},
		Args: []syntax.Expr{&syntax.IntExpr{Loc: loc(line, 14), Value: "1"}},
	}}
}

// sample is
//
//	if x:
//	    a.append(1)
//	    a.append(1)
//	else:
//	    try:
//	        pass
//	    except E:
//	        pass
func sample() *syntax.File {
	return &syntax.File{
		Loc:  loc(1, 1),
		Path: "a.py",
		Defs: []syntax.Stmt{
			&syntax.IfStmt{
				Loc:  loc(1, 1),
				Cond: name(1, "x"),
				Body: &syntax.Block{Loc: loc(2, 5), Body: []syntax.Stmt{
					appendStmt(2, "a"),
					appendStmt(3, "a"),
				}},
				ElseBody: &syntax.Block{Loc: loc(5, 5), Body: []syntax.Stmt{
					&syntax.TryStmt{
						Loc:  loc(5, 5),
						Body: &syntax.Block{Loc: loc(6, 9), Body: []syntax.Stmt{&syntax.PassStmt{Loc: loc(6, 9)}}},
						Handlers: []*syntax.ExceptHandler{{
							Loc:  loc(7, 5),
							Type: name(7, "E"),
							Body: &syntax.Block{Loc: loc(8, 9), Body: []syntax.Stmt{&syntax.PassStmt{Loc: loc(8, 9)}}},
						}},
					},
				}},
			},
		},
	}
}

func TestDispatcher_Run_order(t *testing.T) {
	t.Parallel()
	rec := newRecorder(100,
		syntax.KindIfStmt, syntax.KindBlock, syntax.KindNameExpr,
		syntax.KindExpressionStmt, syntax.KindTryStmt, syntax.KindExceptHandler, syntax.KindPassStmt,
	)
	d := visitor.New([]check.Check{rec})
	got := []string{}
	for _, dg := range d.Run(sample()) {
		got = append(got, dg.Message)
	}
	exp := []string{
		"IfStmt", "NameExpr",
		"Block", "ExpressionStmt", "NameExpr", "ExpressionStmt", "NameExpr",
		"Block", "TryStmt",
		"Block", "PassStmt",
		"ExceptHandler", "NameExpr", "Block", "PassStmt",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestDispatcher_Run_sequences(t *testing.T) {
	t.Parallel()
	seq := &seqRecorder{meta: &check.Meta{Code: 100, Prefix: "TST", Name: "seq", Message: "seq"}}
	d := visitor.New([]check.Check{seq})
	got := []int{}
	for _, dg := range d.Run(sample()) {
		got = append(got, dg.Code)
	}
	// file, if body, else body, try body, handler body
	exp := []int{1, 2, 1, 1, 1}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestDispatcher_Run_builtin(t *testing.T) {
	t.Parallel()
	d := visitor.New(builtin.All())
	diags := d.Run(sample())
	got := make([]string, len(diags))
	for i, dg := range diags {
		got[i] = dg.String()
	}
	exp := []string{
		":2:5 [FURB113]: use a single bulk-extend call instead of repeatedly calling the single-element append method",
		":5:5 [FURB107]: Use `with suppress(x): ...` instead of `try: ... except x: pass`",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestDispatcher_Run_nestedAppendRunsAreIndependent(t *testing.T) {
	t.Parallel()
	// a.append(1)
	// for x in y:
	//     a.append(1)
	// a.append(1)
	file := &syntax.File{
		Loc: loc(1, 1),
		Defs: []syntax.Stmt{
			appendStmt(1, "a"),
			&syntax.ForStmt{
				Loc:   loc(2, 1),
				Index: name(2, "x"),
				Iter:  name(2, "y"),
				Body:  &syntax.Block{Loc: loc(3, 5), Body: []syntax.Stmt{appendStmt(3, "a")}},
			},
			appendStmt(4, "a"),
		},
	}
	if diags := visitor.New(builtin.All()).Run(file); len(diags) != 0 {
		t.Fatalf("wanted no diagnostics, got %v", diags)
	}
}

func TestDispatcher_Run_nil(t *testing.T) {
	t.Parallel()
	if diags := visitor.New(builtin.All()).Run(nil); diags != nil {
		t.Fatalf("wanted nil, got %v", diags)
	}
}

func TestDispatcher_Run_matchCaseBodies(t *testing.T) {
	t.Parallel()
	// match v:
	//     case 1:
	//         a.append(1)
	//         a.append(1)
	//     case _:
	//         a.append(1)
	file := &syntax.File{
		Loc: loc(1, 1),
		Defs: []syntax.Stmt{
			&syntax.OtherStmt{
				Loc:      loc(1, 1),
				Label:    "Match",
				Children: []syntax.Expr{name(1, "v")},
				Blocks: []*syntax.Block{
					{Loc: loc(3, 5), Body: []syntax.Stmt{appendStmt(3, "a"), appendStmt(4, "a")}},
					{Loc: loc(6, 5), Body: []syntax.Stmt{appendStmt(6, "a")}},
				},
			},
		},
	}
	diags := visitor.New(builtin.All()).Run(file)
	if len(diags) != 1 {
		t.Fatalf("wanted 1 diagnostic, got %v", diags)
	}
	if got := diags[0].ErrorCode().String(); got != "FURB113" || diags[0].Line != 3 {
		t.Fatalf("wanted FURB113 at line 3, got %s at line %d", got, diags[0].Line)
	}

	seq := &seqRecorder{meta: &check.Meta{Code: 100, Prefix: "TST", Name: "seq", Message: "seq"}}
	got := []int{}
	for _, dg := range visitor.New([]check.Check{seq}).Run(file) {
		got = append(got, dg.Code)
	}
	// file, first case, second case
	if diff := cmp.Diff([]int{1, 2, 1}, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestDispatcher_Run_keywordArguments(t *testing.T) {
	t.Parallel()
	// f(key=print(""))
	printCall := &syntax.CallExpr{
		Loc:    loc(1, 7),
		Callee: name(1, "print"),
		Args:   []syntax.Expr{&syntax.StrExpr{Loc: loc(1, 13)}},
	}
	file := &syntax.File{
		Loc: loc(1, 1),
		Defs: []syntax.Stmt{
			&syntax.ExpressionStmt{Loc: loc(1, 1), Expr: &syntax.CallExpr{
				Loc:      loc(1, 1),
				Callee:   name(1, "f"),
				Keywords: []syntax.Expr{printCall},
			}},
		},
	}
	diags := visitor.New(builtin.All()).Run(file)
	if len(diags) != 1 || diags[0].ErrorCode().String() != "FURB105" || diags[0].Column != 7 {
		t.Fatalf("wanted FURB105 at 1:7, got %v", diags)
	}
}
