// Package diag defines the findings refurb reports and their total order.
//
// A Diagnostic is a coded finding produced by a check. A Raw message is free
// text that isn't attributable to a check, e.g. an engine failure. Both are
// Items and flow through the same ordering and formatting pipeline.
package diag

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultPrefix is the prefix of built-in checks.
const DefaultPrefix = "FURB"

// Item is either a *Diagnostic or a Raw message.
type Item interface {
	String() string
	item()
}

// Diagnostic is a single finding.
// Filename is set by the run controller after traversal; checks don't know it.
type Diagnostic struct {
	Code     int
	Prefix   string
	Message  string
	Filename string
	Line     int
	Column   int
}

// ErrorCode returns the code of the check which produced d.
func (d *Diagnostic) ErrorCode() ErrorCode {
	return ErrorCode{Prefix: d.Prefix, ID: d.Code}
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d [%s]: %s", d.Filename, d.Line, d.Column, d.ErrorCode(), d.Message)
}

func (*Diagnostic) item() {}

// Raw is an unattributed free-text message.
type Raw string

func (r Raw) String() string {
	return string(r)
}

func (Raw) item() {}

// ErrorCode is the stable identity of a check, e.g. FURB113.
type ErrorCode struct {
	Prefix string
	ID     int
}

func (c ErrorCode) String() string {
	return c.Prefix + strconv.Itoa(c.ID)
}

var errorCodePattern = regexp.MustCompile(`^([A-Z]{3,4})?(\d{3})$`)

var ErrInvalidErrorCode = errors.New("must be in form FURB123 or 123")

// ParseErrorCode parses "FURB113" or "113". A missing prefix means FURB.
func ParseErrorCode(s string) (ErrorCode, error) {
	m := errorCodePattern.FindStringSubmatch(s)
	if m == nil {
		return ErrorCode{}, fmt.Errorf(`"%s" %w`, s, ErrInvalidErrorCode)
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return ErrorCode{}, fmt.Errorf("parse an error code id: %w", err)
	}
	prefix := m[1]
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return ErrorCode{Prefix: prefix, ID: id}, nil
}
