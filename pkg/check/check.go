// Package check defines the contract every refurb check implements and the
// registry which decides which checks run.
//
// A check declares the node shapes it observes by implementing NodeCheck
// (context-free, called once per matching node) and/or StmtsCheck (called
// once per contiguous statement sequence). Checks return diagnostics without
// a filename; the run controller stamps it.
package check

import (
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// Meta describes a check.
type Meta struct {
	Code       int
	Prefix     string
	Name       string
	Message    string
	Doc        string
	Categories []string
}

// ErrorCode returns the stable code of the check.
func (m *Meta) ErrorCode() diag.ErrorCode {
	return diag.ErrorCode{Prefix: m.Prefix, ID: m.Code}
}

// Diagnostic returns a finding of this check at the given position.
func (m *Meta) Diagnostic(loc syntax.Loc) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:    m.Code,
		Prefix:  m.Prefix,
		Message: m.Message,
		Line:    loc.Line,
		Column:  loc.Column,
	}
}

type Check interface {
	Meta() *Meta
}

// NodeCheck observes every node whose kind is in Kinds.
type NodeCheck interface {
	Check
	Kinds() []syntax.Kind
	CheckNode(node syntax.Node) []*diag.Diagnostic
}

// StmtsCheck observes every statement sequence: the top level of a file and
// the body of every block. The sequence is passed in source order.
type StmtsCheck interface {
	Check
	CheckStmts(stmts []syntax.Stmt) []*diag.Diagnostic
}
