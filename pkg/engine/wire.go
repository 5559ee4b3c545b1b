package engine

// Doc is the document the engine command writes to stdout.
type Doc struct {
	Errors  []string      `json:"errors,omitempty" msgpack:"errors,omitempty"`
	Modules []*WireModule `json:"modules" msgpack:"modules"`
}

type WireModule struct {
	Path string `json:"path" msgpack:"path"`
	Tree *Node  `json:"tree,omitempty" msgpack:"tree,omitempty"`
}

// Node is the generic encoding of every syntax node. Which fields are used
// depends on Kind:
//
//	File            body
//	ExpressionStmt  expr
//	AssignmentStmt  targets, expr
//	ReturnStmt      expr (optional)
//	IfStmt          expr, body, else
//	WhileStmt       expr, body, else
//	ForStmt         targets (one), expr, body, else
//	WithStmt        args, body
//	TryStmt         body, handlers, else, finally
//	ExceptHandler   type (optional), name, body
//	FuncDef         name, body
//	ClassDef        name, body
//	OtherStmt       name, args, blocks
//	Block           body (only in blocks)
//	CallExpr        callee, args, keywords
//	MemberExpr      expr, name
//	NameExpr        name
//	StrExpr         value
//	IntExpr         value
//	OtherExpr       name, args
//
// An empty else or finally means the clause is absent.
type Node struct {
	Kind     string  `json:"kind" msgpack:"kind"`
	Line     uint32  `json:"line" msgpack:"line"`
	Column   uint32  `json:"column" msgpack:"column"`
	Name     string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Value    string  `json:"value,omitempty" msgpack:"value,omitempty"`
	Expr     *Node   `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Callee   *Node   `json:"callee,omitempty" msgpack:"callee,omitempty"`
	Type     *Node   `json:"type,omitempty" msgpack:"type,omitempty"`
	Args     []*Node `json:"args,omitempty" msgpack:"args,omitempty"`
	Targets  []*Node `json:"targets,omitempty" msgpack:"targets,omitempty"`
	Body     []*Node `json:"body,omitempty" msgpack:"body,omitempty"`
	Else     []*Node `json:"else,omitempty" msgpack:"else,omitempty"`
	Finally  []*Node `json:"finally,omitempty" msgpack:"finally,omitempty"`
	Handlers []*Node `json:"handlers,omitempty" msgpack:"handlers,omitempty"`
	Blocks   []*Node `json:"blocks,omitempty" msgpack:"blocks,omitempty"`
	Keywords []*Node `json:"keywords,omitempty" msgpack:"keywords,omitempty"`
}
