// Package visitor walks a syntax tree once and hands every node to the
// checks which observe its shape.
package visitor

import (
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// Dispatcher routes nodes to checks. It keeps no per-file state, so one
// Dispatcher can walk several files concurrently.
type Dispatcher struct {
	byKind map[syntax.Kind][]check.NodeCheck
	stmts  []check.StmtsCheck
}

// New builds the dispatch table from the active checks.
// Checks keep their relative order within each kind.
func New(checks []check.Check) *Dispatcher {
	d := &Dispatcher{
		byKind: map[syntax.Kind][]check.NodeCheck{},
	}
	for _, c := range checks {
		if nc, ok := c.(check.NodeCheck); ok {
			for _, kind := range nc.Kinds() {
				d.byKind[kind] = append(d.byKind[kind], nc)
			}
		}
		if sc, ok := c.(check.StmtsCheck); ok {
			d.stmts = append(d.stmts, sc)
		}
	}
	return d
}

// Run walks file in pre-order and returns the diagnostics in traversal order.
func (d *Dispatcher) Run(file *syntax.File) []*diag.Diagnostic {
	if file == nil {
		return nil
	}
	w := &walker{d: d}
	w.visit(file)
	w.stmts(file.Defs)
	for _, stmt := range file.Defs {
		w.walkStmt(stmt)
	}
	return w.diags
}

type walker struct {
	d     *Dispatcher
	diags []*diag.Diagnostic
}

func (w *walker) visit(node syntax.Node) {
	for _, c := range w.d.byKind[node.Kind()] {
		w.diags = append(w.diags, c.CheckNode(node)...)
	}
}

func (w *walker) stmts(stmts []syntax.Stmt) {
	for _, c := range w.d.stmts {
		w.diags = append(w.diags, c.CheckStmts(stmts)...)
	}
}

func (w *walker) walkBlock(b *syntax.Block) {
	if b == nil {
		return
	}
	w.visit(b)
	w.stmts(b.Body)
	for _, stmt := range b.Body {
		w.walkStmt(stmt)
	}
}

func (w *walker) walkStmt(stmt syntax.Stmt) { //nolint:cyclop
	if stmt == nil {
		return
	}
	w.visit(stmt)
	switch s := stmt.(type) {
	case *syntax.ExpressionStmt:
		w.walkExpr(s.Expr)
	case *syntax.AssignmentStmt:
		for _, lv := range s.Lvalues {
			w.walkExpr(lv)
		}
		w.walkExpr(s.Rvalue)
	case *syntax.ReturnStmt:
		w.walkExpr(s.Expr)
	case *syntax.IfStmt:
		w.walkExpr(s.Cond)
		w.walkBlock(s.Body)
		w.walkBlock(s.ElseBody)
	case *syntax.WhileStmt:
		w.walkExpr(s.Cond)
		w.walkBlock(s.Body)
		w.walkBlock(s.ElseBody)
	case *syntax.ForStmt:
		w.walkExpr(s.Index)
		w.walkExpr(s.Iter)
		w.walkBlock(s.Body)
		w.walkBlock(s.ElseBody)
	case *syntax.WithStmt:
		for _, e := range s.Exprs {
			w.walkExpr(e)
		}
		w.walkBlock(s.Body)
	case *syntax.TryStmt:
		w.walkBlock(s.Body)
		for _, h := range s.Handlers {
			w.walkHandler(h)
		}
		w.walkBlock(s.ElseBody)
		w.walkBlock(s.FinallyBody)
	case *syntax.FuncDef:
		w.walkBlock(s.Body)
	case *syntax.ClassDef:
		w.walkBlock(s.Defs)
	case *syntax.OtherStmt:
		for _, e := range s.Children {
			w.walkExpr(e)
		}
		for _, b := range s.Blocks {
			w.walkBlock(b)
		}
	}
}

func (w *walker) walkHandler(h *syntax.ExceptHandler) {
	if h == nil {
		return
	}
	w.visit(h)
	w.walkExpr(h.Type)
	w.walkBlock(h.Body)
}

func (w *walker) walkExpr(expr syntax.Expr) {
	if expr == nil {
		return
	}
	w.visit(expr)
	switch e := expr.(type) {
	case *syntax.CallExpr:
		w.walkExpr(e.Callee)
		for _, arg := range e.Args {
			w.walkExpr(arg)
		}
		for _, kw := range e.Keywords {
			w.walkExpr(kw)
		}
	case *syntax.MemberExpr:
		w.walkExpr(e.Expr)
	case *syntax.OtherExpr:
		for _, c := range e.Children {
			w.walkExpr(c)
		}
	}
}
