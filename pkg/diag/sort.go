package diag

import (
	"cmp"
	"slices"
)

// Compare orders Items: raw messages first (by text), then diagnostics by
// filename, line, column, prefix, code and finally message.
func Compare(a, b Item) int {
	da, aIsDiag := a.(*Diagnostic)
	db, bIsDiag := b.(*Diagnostic)
	switch {
	case !aIsDiag && !bIsDiag:
		return cmp.Compare(a.String(), b.String())
	case !aIsDiag:
		return -1
	case !bIsDiag:
		return 1
	}
	if c := cmp.Compare(da.Filename, db.Filename); c != 0 {
		return c
	}
	if c := cmp.Compare(da.Line, db.Line); c != 0 {
		return c
	}
	if c := cmp.Compare(da.Column, db.Column); c != 0 {
		return c
	}
	if c := cmp.Compare(da.Prefix, db.Prefix); c != 0 {
		return c
	}
	if c := cmp.Compare(da.Code, db.Code); c != 0 {
		return c
	}
	return cmp.Compare(da.Message, db.Message)
}

// Sort sorts items in place.
func Sort(items []Item) {
	slices.SortStableFunc(items, Compare)
}

// HasDiagnostic reports whether items contains at least one coded Diagnostic.
func HasDiagnostic(items []Item) bool {
	return slices.ContainsFunc(items, func(item Item) bool {
		_, ok := item.(*Diagnostic)
		return ok
	})
}
