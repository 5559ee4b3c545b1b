// Package engine is the boundary to the external parser which turns source
// files into syntax trees.
package engine

import (
	"context"
	"strings"

	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

// Engine builds syntax trees. A failure to build any file is reported as a
// *CompileError; other errors mean the engine couldn't run at all.
type Engine interface {
	Build(ctx context.Context, files []string) (*Result, error)
}

// Result holds one module per input file, in input order.
type Result struct {
	Modules []*Module
}

// Module is a built file. Tree is nil if the engine skipped the file.
type Module struct {
	Path string
	Tree *syntax.File
}

// CompileError is a fatal engine failure. No file is analyzed when it occurs.
type CompileError struct {
	Messages []string
}

func (e *CompileError) Error() string {
	return strings.Join(e.Messages, "\n")
}
