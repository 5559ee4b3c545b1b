package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
)

func TestNewCommand(t *testing.T) {
	t.Parallel()
	cmd := newCommand(logrus.NewEntry(logrus.New()), &stdutil.LDFlags{
		Version: "v1.0.0",
		Commit:  "abc",
	})
	if cmd.Version != "v1.0.0" {
		t.Fatalf("unexpected version: %q", cmd.Version)
	}
	if !cmd.EnableShellCompletion {
		t.Fatal("shell completion must be enabled")
	}
	names := map[string]bool{}
	for _, c := range cmd.Commands {
		names[c.Name] = true
	}
	exp := map[string]bool{
		"init":     true,
		"run":      true,
		"explain":  true,
		"version":  true,
		"help-all": true,
	}
	if diff := cmp.Diff(exp, names); diff != "" {
		t.Fatal(diff)
	}
}
