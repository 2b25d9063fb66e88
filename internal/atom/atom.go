// Package atom implements globally fresh free-variable names.
//
// An Atom is never constructed directly by client code; it is minted by
// a Table, which also owns the printable-hint normalization so that two
// hints that differ only by Unicode normalization form still print the
// same way.
package atom

import (
	"golang.org/x/text/unicode/norm"
)

// Atom is a fresh free-variable name: a printable hint plus a unique tag.
// Two atoms are equal iff their tags match; the hint is for diagnostics
// only and never participates in equality.
type Atom struct {
	tag  int64
	hint string
}

// Hint returns the atom's printable hint.
func (a Atom) Hint() string { return a.hint }

// Tag returns the atom's unique identity. Exposed for sorting and
// interning maps; callers must not rely on its numeric value beyond
// equality and must not synthesize an Atom from a tag.
func (a Atom) Tag() int64 { return a.tag }

// Equal reports whether two atoms have the same identity.
func Equal(a, b Atom) bool { return a.tag == b.tag }

// Table mints fresh atoms. A Table is not safe for concurrent use; the
// evaluator that owns one runs single-threaded per spec.md §5.
type Table struct {
	next int64
}

// NewTable creates an empty atom table.
func NewTable() *Table {
	return &Table{}
}

// Fresh mints a new atom with the given printable hint, NFC-normalized.
func (t *Table) Fresh(hint string) Atom {
	t.next++
	return Atom{tag: t.next, hint: norm.NFC.String(hint)}
}

// Refresh mints a fresh atom that reuses an existing atom's hint, e.g.
// when a binder is opened again under a different derivation.
func (t *Table) Refresh(a Atom) Atom {
	return t.Fresh(a.hint)
}
