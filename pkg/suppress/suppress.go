// Package suppress drops diagnostics silenced by an inline `# noqa` comment.
package suppress

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

// noqaPattern matches `# noqa` and `# noqa: FURB123` at the end of a line.
var noqaPattern = regexp.MustCompile(`# noqa(?:: ([A-Z]{3,4}\d{3}))?$`)

// Marker parses the suppression marker at the end of a line.
// ok is false if the line has no marker. tag is empty for a bare marker.
func Marker(line string) (tag string, ok bool) {
	m := noqaPattern.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Suppressed reports whether d is silenced by the marker on its line.
// Raw messages and diagnostics without a filename are never suppressed.
// If the line can't be read the diagnostic is kept.
func Suppressed(logE *logrus.Entry, cache *SourceCache, item diag.Item) bool {
	d, ok := item.(*diag.Diagnostic)
	if !ok || d.Filename == "" {
		return false
	}
	line, err := cache.Line(d.Filename, d.Line)
	if err != nil {
		logerr.WithError(logE, err).WithFields(logrus.Fields{
			"file": d.Filename,
			"line": d.Line,
		}).Debug("could not read the source line of a diagnostic")
		return false
	}
	tag, ok := Marker(line)
	if !ok {
		return false
	}
	return tag == "" || tag == d.ErrorCode().String()
}

// Filter returns the items which aren't suppressed, keeping their order.
func Filter(logE *logrus.Entry, cache *SourceCache, items []diag.Item) []diag.Item {
	kept := make([]diag.Item, 0, len(items))
	for _, item := range items {
		if Suppressed(logE, cache, item) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
