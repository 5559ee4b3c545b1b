// Package output renders the final, ordered report.
package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatSARIF}
}

func ValidFormat(format string) bool {
	return slices.Contains(Formats(), format)
}

// Hint is appended to text output which contains a diagnostic.
const Hint = "\n\nRun `refurb --explain ERR` to further explain an error. Use `--quiet` to silence this message"

type Options struct {
	Quiet bool
	Color bool
	// Checks become SARIF rules.
	Checks  []check.Check
	Version string
}

// Write renders items in the given format. Text output ends with a newline
// unless it's empty.
func Write(w io.Writer, format string, items []diag.Item, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	switch format {
	case FormatText, "":
		s := Text(items, opts.Quiet, opts.Color)
		if s == "" {
			return nil
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("write the report: %w", err)
		}
		return nil
	case FormatJSON:
		return writeJSON(w, items)
	case FormatSARIF:
		return writeSARIF(w, items, opts)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// Text joins the items with newlines and appends Hint when the report
// contains a diagnostic and quiet is off.
func Text(items []diag.Item, quiet, colored bool) string {
	lines := make([]string, len(items))
	tag := newTagFunc(colored)
	for i, item := range items {
		d, ok := item.(*diag.Diagnostic)
		if !ok || tag == nil {
			lines[i] = item.String()
			continue
		}
		lines[i] = fmt.Sprintf("%s:%d:%d %s: %s", d.Filename, d.Line, d.Column, tag("["+d.ErrorCode().String()+"]"), d.Message)
	}
	s := strings.Join(lines, "\n")
	if !quiet && diag.HasDiagnostic(items) {
		s += Hint
	}
	return s
}

type colorFunc func(a ...any) string

func newTagFunc(colored bool) colorFunc {
	if !colored {
		return nil
	}
	c := color.New(color.FgYellow, color.Bold)
	c.EnableColor()
	return c.SprintFunc()
}
