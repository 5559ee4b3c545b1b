package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

// Entry is one element of the JSON report. Raw messages only set Raw.
type Entry struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

func NewEntry(item diag.Item) *Entry {
	d, ok := item.(*diag.Diagnostic)
	if !ok {
		return &Entry{Raw: item.String()}
	}
	return &Entry{
		Filename: d.Filename,
		Line:     d.Line,
		Column:   d.Column,
		Code:     d.ErrorCode().String(),
		Message:  d.Message,
	}
}

func writeJSON(w io.Writer, items []diag.Item) error {
	entries := make([]*Entry, len(items))
	for i, item := range items {
		entries[i] = NewEntry(item)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode the report as JSON: %w", err)
	}
	return nil
}
