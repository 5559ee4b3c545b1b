package check_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
)

type stmtsCheck struct {
	meta *check.Meta
}

func (c *stmtsCheck) Meta() *check.Meta { return c.meta }

func (c *stmtsCheck) CheckStmts([]syntax.Stmt) []*diag.Diagnostic { return nil }

type metaOnly struct {
	meta *check.Meta
}

func (c *metaOnly) Meta() *check.Meta { return c.meta }

func newCheck(prefix string, code int, name string, categories ...string) check.Check {
	return &stmtsCheck{meta: &check.Meta{
		Code:       code,
		Prefix:     prefix,
		Name:       name,
		Message:    "message of " + name,
		Categories: categories,
	}}
}

func names(checks []check.Check) []string {
	ret := make([]string, len(checks))
	for i, c := range checks {
		ret[i] = c.Meta().Name
	}
	return ret
}

func TestNewRegistry(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name   string
		checks []check.Check
		exp    []string
		isErr  bool
	}{
		{
			name:   "empty",
			checks: nil,
			exp:    []string{},
		},
		{
			name: "registration order is kept",
			checks: []check.Check{
				newCheck("FURB", 113, "c"),
				newCheck("FURB", 105, "a"),
				newCheck("XYZ", 105, "b"),
			},
			exp: []string{"c", "a", "b"},
		},
		{
			name: "duplicate code",
			checks: []check.Check{
				newCheck("FURB", 113, "a"),
				newCheck("FURB", 113, "b"),
			},
			isErr: true,
		},
		{
			name:   "lowercase prefix",
			checks: []check.Check{newCheck("furb", 113, "a")},
			isErr:  true,
		},
		{
			name:   "too long prefix",
			checks: []check.Check{newCheck("FURBS", 113, "a")},
			isErr:  true,
		},
		{
			name:   "code out of range",
			checks: []check.Check{newCheck("FURB", 1000, "a")},
			isErr:  true,
		},
		{
			name:   "empty name",
			checks: []check.Check{newCheck("FURB", 113, "")},
			isErr:  true,
		},
		{
			name:   "nil meta",
			checks: []check.Check{&metaOnly{}},
			isErr:  true,
		},
		{
			name: "no node shape",
			checks: []check.Check{&metaOnly{meta: &check.Meta{
				Code: 113, Prefix: "FURB", Name: "a", Message: "a",
			}}},
			isErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			reg, err := check.NewRegistry(d.checks...)
			if err != nil {
				if d.isErr {
					return
				}
				t.Fatal(err)
			}
			if d.isErr {
				t.Fatal("error must be returned")
			}
			if diff := cmp.Diff(d.exp, names(reg.All())); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestRegistry_ByCode(t *testing.T) {
	t.Parallel()
	reg, err := check.NewRegistry(newCheck("FURB", 113, "a"), newCheck("XYZ", 113, "b"))
	if err != nil {
		t.Fatal(err)
	}
	if c := reg.ByCode(diag.ErrorCode{Prefix: "XYZ", ID: 113}); c == nil || c.Meta().Name != "b" {
		t.Fatalf("wanted b, got %v", c)
	}
	if c := reg.ByCode(diag.ErrorCode{Prefix: "FURB", ID: 100}); c != nil {
		t.Fatalf("wanted nil, got %s", c.Meta().Name)
	}
}

func TestRegistry_Active(t *testing.T) {
	t.Parallel()
	reg, err := check.NewRegistry(
		newCheck("FURB", 105, "print", "builtin", "readability"),
		newCheck("FURB", 107, "suppress", "contextlib"),
		newCheck("FURB", 113, "extend", "list"),
		newCheck("XYZ", 113, "custom"),
	)
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name   string
		ignore []string
		exp    []string
	}{
		{name: "nothing ignored", exp: []string{"print", "suppress", "extend", "custom"}},
		{name: "by full code", ignore: []string{"FURB113"}, exp: []string{"print", "suppress", "custom"}},
		{name: "by number", ignore: []string{"107"}, exp: []string{"print", "extend", "custom"}},
		{name: "other prefix", ignore: []string{"XYZ113"}, exp: []string{"print", "suppress", "extend"}},
		{name: "by category", ignore: []string{"#readability"}, exp: []string{"suppress", "extend", "custom"}},
		{name: "everything", ignore: []string{"#list", "#builtin", "#contextlib", "XYZ113"}, exp: []string{}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			ig, err := check.ParseIgnore(d.ignore)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, names(reg.Active(ig))); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestRegistry_Active_nilIgnore(t *testing.T) {
	t.Parallel()
	reg, err := check.NewRegistry(newCheck("FURB", 113, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(reg.Active(nil)); n != 1 {
		t.Fatalf("wanted 1, got %d", n)
	}
}
