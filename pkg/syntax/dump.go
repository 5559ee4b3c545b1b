package syntax

import (
	"strconv"
	"strings"
)

// Dump renders n as an indented, human-readable tree. It is used by the
// --debug flag.
func Dump(n Node) string {
	return dump(n)
}

func dump(n Node) string { //nolint:cyclop,funlen
	switch n := n.(type) {
	case *File:
		items := []string{n.Path}
		for _, s := range n.Defs {
			items = append(items, dump(s))
		}
		return format(tag(n), items)
	case *Block:
		return format(tag(n), dumpStmts(n.Body))
	case *ExpressionStmt:
		return format(tag(n), []string{dumpExpr(n.Expr)})
	case *AssignmentStmt:
		items := make([]string, 0, len(n.Lvalues)+1)
		if len(n.Lvalues) > 0 {
			items = append(items, format("Lvalues", dumpExprs(n.Lvalues)))
		}
		return format(tag(n), append(items, dumpExpr(n.Rvalue)))
	case *ReturnStmt:
		if n.Expr == nil {
			return format(tag(n), nil)
		}
		return format(tag(n), []string{dumpExpr(n.Expr)})
	case *PassStmt:
		return format(tag(n), nil)
	case *IfStmt:
		items := []string{format("If", []string{dumpExpr(n.Cond)}), format("Then", dumpBlock(n.Body))}
		if n.ElseBody != nil {
			items = append(items, format("Else", dumpBlock(n.ElseBody)))
		}
		return format(tag(n), items)
	case *WhileStmt:
		items := []string{dumpExpr(n.Cond), dumpBlockNode(n.Body)}
		if n.ElseBody != nil {
			items = append(items, format("Else", dumpBlock(n.ElseBody)))
		}
		return format(tag(n), items)
	case *ForStmt:
		items := []string{dumpExpr(n.Index), dumpExpr(n.Iter), dumpBlockNode(n.Body)}
		if n.ElseBody != nil {
			items = append(items, format("Else", dumpBlock(n.ElseBody)))
		}
		return format(tag(n), items)
	case *WithStmt:
		return format(tag(n), append(dumpExprs(n.Exprs), dumpBlockNode(n.Body)))
	case *TryStmt:
		items := []string{dumpBlockNode(n.Body)}
		for _, h := range n.Handlers {
			items = append(items, dump(h))
		}
		if n.ElseBody != nil {
			items = append(items, format("Else", dumpBlock(n.ElseBody)))
		}
		if n.FinallyBody != nil {
			items = append(items, format("Finally", dumpBlock(n.FinallyBody)))
		}
		return format(tag(n), items)
	case *ExceptHandler:
		items := []string{}
		if n.Type != nil {
			items = append(items, dumpExpr(n.Type))
		}
		if n.Name != "" {
			items = append(items, n.Name)
		}
		return format(tag(n), append(items, dumpBlockNode(n.Body)))
	case *FuncDef:
		return format(tag(n), []string{n.Name, dumpBlockNode(n.Body)})
	case *ClassDef:
		return format(tag(n), []string{n.Name, dumpBlockNode(n.Defs)})
	case *OtherStmt:
		items := dumpExprs(n.Children)
		for _, b := range n.Blocks {
			items = append(items, dumpBlockNode(b))
		}
		return format(tag(n)+"["+n.Label+"]", items)
	case *CallExpr:
		items := []string{dumpExpr(n.Callee)}
		if len(n.Args) > 0 {
			items = append(items, format("Args", dumpExprs(n.Args)))
		}
		if len(n.Keywords) > 0 {
			items = append(items, format("Keywords", dumpExprs(n.Keywords)))
		}
		return format(tag(n), items)
	case *MemberExpr:
		return format(tag(n), []string{dumpExpr(n.Expr), n.Name})
	case *NameExpr:
		return "NameExpr(" + n.Name + ")"
	case *StrExpr:
		return "StrExpr(" + strconv.Quote(n.Value) + ")"
	case *IntExpr:
		return "IntExpr(" + n.Value + ")"
	case *OtherExpr:
		return format(tag(n)+"["+n.Label+"]", dumpExprs(n.Children))
	}
	return "<nil>"
}

func tag(n Node) string {
	return n.Kind().String() + ":" + strconv.Itoa(n.Location().Line)
}

func dumpExpr(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return dump(e)
}

func dumpExprs(exprs []Expr) []string {
	items := make([]string, len(exprs))
	for i, e := range exprs {
		items[i] = dumpExpr(e)
	}
	return items
}

func dumpStmts(stmts []Stmt) []string {
	items := make([]string, len(stmts))
	for i, s := range stmts {
		items[i] = dump(s)
	}
	return items
}

func dumpBlock(b *Block) []string {
	if b == nil {
		return nil
	}
	return dumpStmts(b.Body)
}

func dumpBlockNode(b *Block) string {
	if b == nil {
		return "<nil>"
	}
	return dump(b)
}

func format(head string, items []string) string {
	if len(items) == 0 {
		return head + "()"
	}
	return head + "(\n" + indent(strings.Join(items, "\n")) + ")"
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
