package pack_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin"
	"github.com/suzuki-shunsuke/refurb/pkg/check/pack"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

const osSystem = `version: "1.0"
checks:
  - code: 901
    prefix: XYZ
    name: no-os-system
    message: Do not call os.system
    doc: Use subprocess.run instead.
    categories: [security]
    match:
      call: os.system
`

func TestParse(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name  string
		input string
		exp   []*check.Meta
		isErr bool
	}{
		{
			name:  "normal",
			input: osSystem,
			exp: []*check.Meta{{
				Code: 901, Prefix: "XYZ", Name: "no-os-system", Message: "Do not call os.system",
				Doc: "Use subprocess.run instead.", Categories: []string{"security"},
			}},
		},
		{
			name: "default prefix",
			input: `version: "1.2"
checks:
  - code: 950
    name: no-pop-zero
    message: Use a deque
    match:
      method: pop
      args: 1
`,
			exp: []*check.Meta{{Code: 950, Prefix: "FURB", Name: "no-pop-zero", Message: "Use a deque"}},
		},
		{
			name:  "no version",
			input: "checks: []\n",
			isErr: true,
		},
		{
			name:  "unsupported version",
			input: "version: \"2.0\"\nchecks: []\n",
			isErr: true,
		},
		{
			name:  "invalid version",
			input: "version: foo\nchecks: []\n",
			isErr: true,
		},
		{
			name:  "unknown field",
			input: "version: \"1.0\"\nchecks:\n  - code: 901\n    nmae: x\n",
			isErr: true,
		},
		{
			name:  "no match",
			input: "version: \"1.0\"\nchecks:\n  - code: 901\n    name: x\n    message: x\n",
			isErr: true,
		},
		{
			name: "call and method",
			input: `version: "1.0"
checks:
  - code: 901
    name: x
    message: x
    match:
      call: os.system
      method: system
`,
			isErr: true,
		},
		{
			name: "broken dotted name",
			input: `version: "1.0"
checks:
  - code: 901
    name: x
    message: x
    match:
      call: os..system
`,
			isErr: true,
		},
		{
			name:  "not yaml",
			input: "version: [",
			isErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			checks, err := pack.Parse([]byte(d.input))
			if err != nil {
				if d.isErr {
					return
				}
				t.Fatal(err)
			}
			if d.isErr {
				t.Fatal("error must be returned")
			}
			metas := make([]*check.Meta, len(checks))
			for i, c := range checks {
				metas[i] = c.Meta()
			}
			if diff := cmp.Diff(d.exp, metas); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"packs/b.yml":      "version: \"1.0\"\nchecks:\n  - code: 902\n    name: b\n    message: b\n    match:\n      method: b\n",
		"packs/a.yaml":     osSystem,
		"packs/README.txt": "not a pack",
		"single.yaml":      "version: \"1.0\"\nchecks:\n  - code: 903\n    name: c\n    message: c\n    match:\n      call: c\n",
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	checks, err := pack.Load(fs, []string{"packs", "single.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Meta().Name
	}
	if diff := cmp.Diff([]string{"no-os-system", "b", "c"}, names); diff != "" {
		t.Fatal(diff)
	}
	if _, err := pack.Load(fs, []string{"missing"}); err == nil {
		t.Fatal("a missing load path must be an error")
	}
}

func TestCheck_CheckNode(t *testing.T) {
	t.Parallel()
	loc := syntax.Loc{Line: 3, Column: 1}
	osSystemCall := &syntax.CallExpr{
		Loc:    loc,
		Callee: &syntax.MemberExpr{Loc: loc, Expr: &syntax.NameExpr{Loc: loc, Name: "os"}, Name: "system"},
		Args:   []syntax.Expr{&syntax.StrExpr{Loc: loc, Value: "ls"}},
	}
	systemCall := &syntax.CallExpr{
		Loc:    loc,
		Callee: &syntax.NameExpr{Loc: loc, Name: "system"},
	}
	checks, err := pack.Parse([]byte(`version: "1.0"
checks:
  - code: 901
    name: call
    message: call
    match:
      call: os.system
  - code: 902
    name: method
    message: method
    match:
      method: system
      args: 0
`))
	if err != nil {
		t.Fatal(err)
	}
	callCheck := checks[0].(check.NodeCheck)   //nolint:forcetypeassert
	methodCheck := checks[1].(check.NodeCheck) //nolint:forcetypeassert
	data := []struct {
		name string
		c    check.NodeCheck
		node syntax.Node
		exp  int
	}{
		{name: "dotted call", c: callCheck, node: osSystemCall, exp: 1},
		{name: "bare name is not the dotted call", c: callCheck, node: systemCall, exp: 0},
		{name: "method with another arity", c: methodCheck, node: osSystemCall, exp: 0},
		{name: "plain function is not a method", c: methodCheck, node: systemCall, exp: 0},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if got := len(d.c.CheckNode(d.node)); got != d.exp {
				t.Fatalf("wanted %d, got %d", d.exp, got)
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "pack.yaml", []byte(osSystem), 0o644); err != nil {
		t.Fatal(err)
	}
	dup := "version: \"1.0\"\nchecks:\n  - code: 113\n    name: dup\n    message: dup\n    match:\n      method: append\n"
	if err := afero.WriteFile(fs, "dup.yaml", []byte(dup), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := pack.NewRegistry(fs, builtin.All(), []string{"pack.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(reg.All()); n != 4 {
		t.Fatalf("wanted 4 checks, got %d", n)
	}
	if _, err := pack.NewRegistry(fs, builtin.All(), []string{"dup.yaml"}); err == nil {
		t.Fatal("a pack reusing a built-in code must be rejected")
	}
}
