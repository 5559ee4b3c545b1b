package engine

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// EncodeFile converts a syntax tree into its wire form. Decoding the result
// gives back a tree equal to one produced by DecodeFile.
func EncodeFile(f *syntax.File) (*Node, error) {
	n, err := newNode(f)
	if err != nil {
		return nil, err
	}
	n.Body, err = encodeStmts(f.Defs)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func newNode(node syntax.Node) (*Node, error) {
	loc := node.Location()
	line, err := safecast.Conv[uint32](loc.Line)
	if err != nil {
		return nil, fmt.Errorf("convert a line number: %w", err)
	}
	column, err := safecast.Conv[uint32](loc.Column)
	if err != nil {
		return nil, fmt.Errorf("convert a column number: %w", err)
	}
	return &Node{Kind: node.Kind().String(), Line: line, Column: column}, nil
}

func encodeStmts(stmts []syntax.Stmt) ([]*Node, error) {
	nodes := make([]*Node, len(stmts))
	for i, s := range stmts {
		n, err := encodeStmt(s)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func encodeBlock(b *syntax.Block) ([]*Node, error) {
	if b == nil {
		return nil, nil
	}
	return encodeStmts(b.Body)
}

func encodeNestedBlocks(blocks []*syntax.Block) ([]*Node, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	nodes := make([]*Node, len(blocks))
	for i, b := range blocks {
		n, err := newNode(b)
		if err != nil {
			return nil, err
		}
		if n.Body, err = encodeStmts(b.Body); err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func encodeExprs(exprs []syntax.Expr) ([]*Node, error) {
	nodes := make([]*Node, len(exprs))
	for i, e := range exprs {
		n, err := encodeExpr(e)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func encodeStmt(stmt syntax.Stmt) (*Node, error) { //nolint:cyclop,funlen
	n, err := newNode(stmt)
	if err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *syntax.ExpressionStmt:
		if n.Expr, err = encodeExpr(s.Expr); err != nil {
			return nil, err
		}
	case *syntax.AssignmentStmt:
		if n.Targets, err = encodeExprs(s.Lvalues); err != nil {
			return nil, err
		}
		if n.Expr, err = encodeExpr(s.Rvalue); err != nil {
			return nil, err
		}
	case *syntax.ReturnStmt:
		if n.Expr, err = encodeExpr(s.Expr); err != nil {
			return nil, err
		}
	case *syntax.PassStmt:
	case *syntax.IfStmt:
		if err := encodeBranch(n, s.Cond, s.Body, s.ElseBody); err != nil {
			return nil, err
		}
	case *syntax.WhileStmt:
		if err := encodeBranch(n, s.Cond, s.Body, s.ElseBody); err != nil {
			return nil, err
		}
	case *syntax.ForStmt:
		if n.Targets, err = encodeExprs([]syntax.Expr{s.Index}); err != nil {
			return nil, err
		}
		if err := encodeBranch(n, s.Iter, s.Body, s.ElseBody); err != nil {
			return nil, err
		}
	case *syntax.WithStmt:
		if n.Args, err = encodeExprs(s.Exprs); err != nil {
			return nil, err
		}
		if n.Body, err = encodeBlock(s.Body); err != nil {
			return nil, err
		}
	case *syntax.TryStmt:
		if err := encodeTry(n, s); err != nil {
			return nil, err
		}
	case *syntax.FuncDef:
		n.Name = s.Name
		if n.Body, err = encodeBlock(s.Body); err != nil {
			return nil, err
		}
	case *syntax.ClassDef:
		n.Name = s.Name
		if n.Body, err = encodeBlock(s.Defs); err != nil {
			return nil, err
		}
	case *syntax.OtherStmt:
		n.Name = s.Label
		if n.Args, err = encodeExprs(s.Children); err != nil {
			return nil, err
		}
		if n.Blocks, err = encodeNestedBlocks(s.Blocks); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported statement: %T", stmt)
	}
	return n, nil
}

// encodeBranch sets the fields shared by if, while and for.
func encodeBranch(n *Node, expr syntax.Expr, body, elseBody *syntax.Block) error {
	var err error
	if n.Expr, err = encodeExpr(expr); err != nil {
		return err
	}
	if n.Body, err = encodeBlock(body); err != nil {
		return err
	}
	if n.Else, err = encodeBlock(elseBody); err != nil {
		return err
	}
	return nil
}

func encodeTry(n *Node, s *syntax.TryStmt) error {
	var err error
	if n.Body, err = encodeBlock(s.Body); err != nil {
		return err
	}
	if n.Else, err = encodeBlock(s.ElseBody); err != nil {
		return err
	}
	if n.Finally, err = encodeBlock(s.FinallyBody); err != nil {
		return err
	}
	n.Handlers = make([]*Node, len(s.Handlers))
	for i, h := range s.Handlers {
		hn, err := newNode(h)
		if err != nil {
			return err
		}
		hn.Name = h.Name
		if hn.Type, err = encodeExpr(h.Type); err != nil {
			return err
		}
		if hn.Body, err = encodeBlock(h.Body); err != nil {
			return err
		}
		n.Handlers[i] = hn
	}
	return nil
}

func encodeExpr(expr syntax.Expr) (*Node, error) {
	if expr == nil {
		return nil, nil //nolint:nilnil
	}
	n, err := newNode(expr)
	if err != nil {
		return nil, err
	}
	switch e := expr.(type) {
	case *syntax.CallExpr:
		if n.Callee, err = encodeExpr(e.Callee); err != nil {
			return nil, err
		}
		if n.Args, err = encodeExprs(e.Args); err != nil {
			return nil, err
		}
		n.Keywords, err = encodeExprs(e.Keywords)
	case *syntax.MemberExpr:
		n.Name = e.Name
		n.Expr, err = encodeExpr(e.Expr)
	case *syntax.NameExpr:
		n.Name = e.Name
	case *syntax.StrExpr:
		n.Value = e.Value
	case *syntax.IntExpr:
		n.Value = e.Value
	case *syntax.OtherExpr:
		n.Name = e.Label
		n.Args, err = encodeExprs(e.Children)
	default:
		return nil, fmt.Errorf("unsupported expression: %T", expr)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}
