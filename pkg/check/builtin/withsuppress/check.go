// Package withsuppress reports try statements whose handlers only `pass`,
// which contextlib.suppress expresses directly.
package withsuppress

import (
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

const doc = `Sometimes you just want to ignore an exception. Instead of writing
a try/except that only passes, use contextlib.suppress:

Bad:

    try:
        f()
    except FileNotFoundError:
        pass

Good:

    from contextlib import suppress

    with suppress(FileNotFoundError):
        f()`

type Check struct {
	meta *check.Meta
}

func New() *Check {
	return &Check{
		meta: &check.Meta{
			Code:       107,
			Prefix:     diag.DefaultPrefix,
			Name:       "use-with-suppress",
			Message:    "Use `with suppress(x): ...` instead of `try: ... except x: pass`",
			Doc:        doc,
			Categories: []string{"contextlib", "readability"},
		},
	}
}

func (c *Check) Meta() *check.Meta {
	return c.meta
}

func (c *Check) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindTryStmt}
}

func (c *Check) CheckNode(node syntax.Node) []*diag.Diagnostic {
	try, ok := node.(*syntax.TryStmt)
	if !ok || len(try.Handlers) == 0 {
		return nil
	}
	if try.ElseBody != nil || try.FinallyBody != nil {
		return nil
	}
	for _, h := range try.Handlers {
		if h.Type == nil || !onlyPass(h.Body) {
			return nil
		}
	}
	return []*diag.Diagnostic{c.meta.Diagnostic(try.Location())}
}

func onlyPass(b *syntax.Block) bool {
	if b == nil || len(b.Body) != 1 {
		return false
	}
	_, ok := b.Body[0].(*syntax.PassStmt)
	return ok
}
