package engine

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// DecodeFile converts a wire tree into a syntax tree.
func DecodeFile(path string, n *Node) (*syntax.File, error) {
	if n == nil {
		return nil, nil //nolint:nilnil
	}
	if n.Kind != syntax.KindFile.String() {
		return nil, fmt.Errorf("the root node must be File but got %s", n.Kind)
	}
	loc, err := decodeLoc(n)
	if err != nil {
		return nil, err
	}
	defs, err := decodeStmts(n.Body)
	if err != nil {
		return nil, err
	}
	return &syntax.File{Loc: loc, Path: path, Defs: defs}, nil
}

func decodeLoc(n *Node) (syntax.Loc, error) {
	line, err := safecast.Conv[int](n.Line)
	if err != nil {
		return syntax.Loc{}, fmt.Errorf("convert a line number: %w", err)
	}
	column, err := safecast.Conv[int](n.Column)
	if err != nil {
		return syntax.Loc{}, fmt.Errorf("convert a column number: %w", err)
	}
	return syntax.Loc{Line: line, Column: column}, nil
}

func decodeStmts(nodes []*Node) ([]syntax.Stmt, error) {
	stmts := make([]syntax.Stmt, len(nodes))
	for i, n := range nodes {
		s, err := decodeStmt(n)
		if err != nil {
			return nil, err
		}
		stmts[i] = s
	}
	return stmts, nil
}

// decodeBlock returns a block located at its first statement, or at parent
// if it's empty.
func decodeBlock(parent syntax.Loc, nodes []*Node) (*syntax.Block, error) {
	body, err := decodeStmts(nodes)
	if err != nil {
		return nil, err
	}
	loc := parent
	if len(body) != 0 {
		loc = body[0].Location()
	}
	return &syntax.Block{Loc: loc, Body: body}, nil
}

// decodeNestedBlocks decodes Block nodes. A block without statements is
// located at its own node.
func decodeNestedBlocks(nodes []*Node) ([]*syntax.Block, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	blocks := make([]*syntax.Block, len(nodes))
	for i, n := range nodes {
		kind, loc, err := parseKind(n)
		if err != nil {
			return nil, err
		}
		if kind != syntax.KindBlock {
			return nil, fmt.Errorf("a nested block at line %d must be Block but got %s", loc.Line, kind)
		}
		b, err := decodeBlock(loc, n.Body)
		if err != nil {
			return nil, err
		}
		blocks[i] = b
	}
	return blocks, nil
}

// decodeOptionalBlock returns nil for an absent clause.
func decodeOptionalBlock(parent syntax.Loc, nodes []*Node) (*syntax.Block, error) {
	if len(nodes) == 0 {
		return nil, nil //nolint:nilnil
	}
	return decodeBlock(parent, nodes)
}

func decodeExprs(nodes []*Node) ([]syntax.Expr, error) {
	exprs := make([]syntax.Expr, len(nodes))
	for i, n := range nodes {
		e, err := decodeExpr(n)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

func parseKind(n *Node) (syntax.Kind, syntax.Loc, error) {
	if n == nil {
		return syntax.KindInvalid, syntax.Loc{}, errors.New("node must not be null")
	}
	kind, ok := syntax.ParseKind(n.Kind)
	if !ok {
		return syntax.KindInvalid, syntax.Loc{}, fmt.Errorf("unknown node kind: %q", n.Kind)
	}
	loc, err := decodeLoc(n)
	if err != nil {
		return syntax.KindInvalid, syntax.Loc{}, err
	}
	return kind, loc, nil
}

func decodeStmt(n *Node) (syntax.Stmt, error) { //nolint:cyclop,funlen
	kind, loc, err := parseKind(n)
	if err != nil {
		return nil, err
	}
	switch kind { //nolint:exhaustive
	case syntax.KindExpressionStmt:
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &syntax.ExpressionStmt{Loc: loc, Expr: e}, nil
	case syntax.KindAssignmentStmt:
		lvalues, err := decodeExprs(n.Targets)
		if err != nil {
			return nil, err
		}
		rvalue, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &syntax.AssignmentStmt{Loc: loc, Lvalues: lvalues, Rvalue: rvalue}, nil
	case syntax.KindReturnStmt:
		s := &syntax.ReturnStmt{Loc: loc}
		if n.Expr != nil {
			e, err := decodeExpr(n.Expr)
			if err != nil {
				return nil, err
			}
			s.Expr = e
		}
		return s, nil
	case syntax.KindPassStmt:
		return &syntax.PassStmt{Loc: loc}, nil
	case syntax.KindIfStmt, syntax.KindWhileStmt:
		cond, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		body, elseBody, err := decodeBodies(loc, n)
		if err != nil {
			return nil, err
		}
		if kind == syntax.KindIfStmt {
			return &syntax.IfStmt{Loc: loc, Cond: cond, Body: body, ElseBody: elseBody}, nil
		}
		return &syntax.WhileStmt{Loc: loc, Cond: cond, Body: body, ElseBody: elseBody}, nil
	case syntax.KindForStmt:
		if len(n.Targets) != 1 {
			return nil, fmt.Errorf("ForStmt at line %d must have exactly one target", loc.Line)
		}
		index, err := decodeExpr(n.Targets[0])
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		body, elseBody, err := decodeBodies(loc, n)
		if err != nil {
			return nil, err
		}
		return &syntax.ForStmt{Loc: loc, Index: index, Iter: iter, Body: body, ElseBody: elseBody}, nil
	case syntax.KindWithStmt:
		exprs, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(loc, n.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.WithStmt{Loc: loc, Exprs: exprs, Body: body}, nil
	case syntax.KindTryStmt:
		return decodeTry(loc, n)
	case syntax.KindFuncDef:
		body, err := decodeBlock(loc, n.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.FuncDef{Loc: loc, Name: n.Name, Body: body}, nil
	case syntax.KindClassDef:
		defs, err := decodeBlock(loc, n.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.ClassDef{Loc: loc, Name: n.Name, Defs: defs}, nil
	case syntax.KindOtherStmt:
		children, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		blocks, err := decodeNestedBlocks(n.Blocks)
		if err != nil {
			return nil, err
		}
		return &syntax.OtherStmt{Loc: loc, Label: n.Name, Children: children, Blocks: blocks}, nil
	default:
		return nil, fmt.Errorf("%s at line %d is not a statement", kind, loc.Line)
	}
}

func decodeBodies(loc syntax.Loc, n *Node) (*syntax.Block, *syntax.Block, error) {
	body, err := decodeBlock(loc, n.Body)
	if err != nil {
		return nil, nil, err
	}
	elseBody, err := decodeOptionalBlock(loc, n.Else)
	if err != nil {
		return nil, nil, err
	}
	return body, elseBody, nil
}

func decodeTry(loc syntax.Loc, n *Node) (*syntax.TryStmt, error) {
	body, elseBody, err := decodeBodies(loc, n)
	if err != nil {
		return nil, err
	}
	finallyBody, err := decodeOptionalBlock(loc, n.Finally)
	if err != nil {
		return nil, err
	}
	handlers := make([]*syntax.ExceptHandler, len(n.Handlers))
	for i, h := range n.Handlers {
		kind, hloc, err := parseKind(h)
		if err != nil {
			return nil, err
		}
		if kind != syntax.KindExceptHandler {
			return nil, fmt.Errorf("a handler of TryStmt at line %d must be ExceptHandler but got %s", loc.Line, kind)
		}
		handler := &syntax.ExceptHandler{Loc: hloc, Name: h.Name}
		if h.Type != nil {
			typ, err := decodeExpr(h.Type)
			if err != nil {
				return nil, err
			}
			handler.Type = typ
		}
		hbody, err := decodeBlock(hloc, h.Body)
		if err != nil {
			return nil, err
		}
		handler.Body = hbody
		handlers[i] = handler
	}
	return &syntax.TryStmt{
		Loc:         loc,
		Body:        body,
		Handlers:    handlers,
		ElseBody:    elseBody,
		FinallyBody: finallyBody,
	}, nil
}

func decodeExpr(n *Node) (syntax.Expr, error) {
	kind, loc, err := parseKind(n)
	if err != nil {
		return nil, err
	}
	switch kind { //nolint:exhaustive
	case syntax.KindCallExpr:
		callee, err := decodeExpr(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		keywords, err := decodeExprs(n.Keywords)
		if err != nil {
			return nil, err
		}
		return &syntax.CallExpr{Loc: loc, Callee: callee, Args: args, Keywords: keywords}, nil
	case syntax.KindMemberExpr:
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &syntax.MemberExpr{Loc: loc, Expr: e, Name: n.Name}, nil
	case syntax.KindNameExpr:
		return &syntax.NameExpr{Loc: loc, Name: n.Name}, nil
	case syntax.KindStrExpr:
		return &syntax.StrExpr{Loc: loc, Value: n.Value}, nil
	case syntax.KindIntExpr:
		return &syntax.IntExpr{Loc: loc, Value: n.Value}, nil
	case syntax.KindOtherExpr:
		children, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &syntax.OtherExpr{Loc: loc, Label: n.Name, Children: children}, nil
	default:
		return nil, fmt.Errorf("%s at line %d is not an expression", kind, loc.Line)
	}
}
