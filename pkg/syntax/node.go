// Package syntax defines the read-only syntax tree that the analysis engine
// hands to refurb. The tree is already parsed and type checked; refurb only
// pattern-matches it. Node kinds form a closed set: every concrete node type
// in this package implements Node, and no type outside this package can.
package syntax

// Loc is a 1-indexed source position.
type Loc struct {
	Line   int
	Column int
}

// Location returns the position of the node.
func (l Loc) Location() Loc {
	return l
}

// Node is implemented by every node of the tree.
type Node interface {
	Kind() Kind
	Location() Loc
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// File is the root of the tree of one analyzed module.
type File struct {
	Loc
	Path string
	Defs []Stmt
}

// Block is a contiguous sequence of statements, e.g. a function body.
type Block struct {
	Loc
	Body []Stmt
}

type ExpressionStmt struct {
	Loc
	Expr Expr
}

type AssignmentStmt struct {
	Loc
	Lvalues []Expr
	Rvalue  Expr
}

// ReturnStmt is `return` with an optional value. Expr is nil for a bare return.
type ReturnStmt struct {
	Loc
	Expr Expr
}

type PassStmt struct {
	Loc
}

type IfStmt struct {
	Loc
	Cond     Expr
	Body     *Block
	ElseBody *Block
}

type WhileStmt struct {
	Loc
	Cond     Expr
	Body     *Block
	ElseBody *Block
}

type ForStmt struct {
	Loc
	Index    Expr
	Iter     Expr
	Body     *Block
	ElseBody *Block
}

type WithStmt struct {
	Loc
	Exprs []Expr
	Body  *Block
}

type TryStmt struct {
	Loc
	Body        *Block
	Handlers    []*ExceptHandler
	ElseBody    *Block
	FinallyBody *Block
}

// ExceptHandler is one `except` clause of a TryStmt.
// Type is nil for a bare `except:`.
type ExceptHandler struct {
	Loc
	Type Expr
	Name string
	Body *Block
}

type FuncDef struct {
	Loc
	Name string
	Body *Block
}

type ClassDef struct {
	Loc
	Name string
	Defs *Block
}

// OtherStmt is any statement refurb doesn't model in detail (import, del,
// raise, match, ...). Label keeps the engine's kind name for debug output.
// Blocks are its nested statement blocks, e.g. the body of every case of a
// match statement.
type OtherStmt struct {
	Loc
	Label    string
	Children []Expr
	Blocks   []*Block
}

// CallExpr is a call. Keywords holds the values of keyword arguments in
// source order.
type CallExpr struct {
	Loc
	Callee   Expr
	Args     []Expr
	Keywords []Expr
}

// MemberExpr is `Expr.Name`.
type MemberExpr struct {
	Loc
	Expr Expr
	Name string
}

type NameExpr struct {
	Loc
	Name string
}

type StrExpr struct {
	Loc
	Value string
}

type IntExpr struct {
	Loc
	Value string
}

// OtherExpr is any expression refurb doesn't model in detail.
type OtherExpr struct {
	Loc
	Label    string
	Children []Expr
}

func (*File) Kind() Kind           { return KindFile }
func (*Block) Kind() Kind          { return KindBlock }
func (*ExpressionStmt) Kind() Kind { return KindExpressionStmt }
func (*AssignmentStmt) Kind() Kind { return KindAssignmentStmt }
func (*ReturnStmt) Kind() Kind     { return KindReturnStmt }
func (*PassStmt) Kind() Kind       { return KindPassStmt }
func (*IfStmt) Kind() Kind         { return KindIfStmt }
func (*WhileStmt) Kind() Kind      { return KindWhileStmt }
func (*ForStmt) Kind() Kind        { return KindForStmt }
func (*WithStmt) Kind() Kind       { return KindWithStmt }
func (*TryStmt) Kind() Kind        { return KindTryStmt }
func (*ExceptHandler) Kind() Kind  { return KindExceptHandler }
func (*FuncDef) Kind() Kind        { return KindFuncDef }
func (*ClassDef) Kind() Kind       { return KindClassDef }
func (*OtherStmt) Kind() Kind      { return KindOtherStmt }
func (*CallExpr) Kind() Kind       { return KindCallExpr }
func (*MemberExpr) Kind() Kind     { return KindMemberExpr }
func (*NameExpr) Kind() Kind       { return KindNameExpr }
func (*StrExpr) Kind() Kind        { return KindStrExpr }
func (*IntExpr) Kind() Kind        { return KindIntExpr }
func (*OtherExpr) Kind() Kind      { return KindOtherExpr }

func (*File) node()           {}
func (*Block) node()          {}
func (*ExpressionStmt) node() {}
func (*AssignmentStmt) node() {}
func (*ReturnStmt) node()     {}
func (*PassStmt) node()       {}
func (*IfStmt) node()         {}
func (*WhileStmt) node()      {}
func (*ForStmt) node()        {}
func (*WithStmt) node()       {}
func (*TryStmt) node()        {}
func (*ExceptHandler) node()  {}
func (*FuncDef) node()        {}
func (*ClassDef) node()       {}
func (*OtherStmt) node()      {}
func (*CallExpr) node()       {}
func (*MemberExpr) node()     {}
func (*NameExpr) node()       {}
func (*StrExpr) node()        {}
func (*IntExpr) node()        {}
func (*OtherExpr) node()      {}

func (*ExpressionStmt) stmt() {}
func (*AssignmentStmt) stmt() {}
func (*ReturnStmt) stmt()     {}
func (*PassStmt) stmt()       {}
func (*IfStmt) stmt()         {}
func (*WhileStmt) stmt()      {}
func (*ForStmt) stmt()        {}
func (*WithStmt) stmt()       {}
func (*TryStmt) stmt()        {}
func (*FuncDef) stmt()        {}
func (*ClassDef) stmt()       {}
func (*OtherStmt) stmt()      {}

func (*CallExpr) expr()   {}
func (*MemberExpr) expr() {}
func (*NameExpr) expr()   {}
func (*StrExpr) expr()    {}
func (*IntExpr) expr()    {}
func (*OtherExpr) expr()  {}
