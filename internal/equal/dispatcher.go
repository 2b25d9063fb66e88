// Package equal implements the decision procedure the kernel uses to
// decide when two terms or types are interchangeable: alpha-equality
// as a fast path, then a user-extensible operation dispatch, with the
// engine validating whatever equality proof comes back before trusting
// it. This is spec.md §4.4 in full; package jdg's MkAlphaEqualTerm/
// MkAlphaEqualType are the fast path and InvertEqTerm/InvertEqType are
// how this package inspects a witness's endpoints for validation.
package equal

import (
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Dispatcher raises the equal_term/equal_type/coerce operations into
// the surrounding programming language and returns the user handler's
// answer. The evaluator (package eval) implements this by routing the
// call through its handler stack, the same mechanism backing any other
// Operation; this package never calls the evaluator directly, so
// package eval is the only thing that imports package equal, not the
// reverse.
type Dispatcher interface {
	// EqualTerm raises equal_term(e1, e2). A nil result (with a nil
	// error) means the user handler answered None.
	EqualTerm(e1, e2 tt.Term) (*jdg.EqTerm, error)
	// EqualType raises equal_type(T1, T2), symmetrically.
	EqualType(t1, t2 tt.Type) (*jdg.EqType, error)
	// Coerce raises coerce(e, target).
	Coerce(e tt.Term, target tt.Type) (CoerceAnswer, error)
}

// CoerceKind tags a CoerceAnswer.
type CoerceKind int

const (
	// NotCoercible means the handler found no way to coerce.
	NotCoercible CoerceKind = iota
	// Convertible means the handler found a proof T' ≡ T.
	Convertible
	// Coercible means the handler supplied a replacement term.
	Coercible
)

// CoerceAnswer is a user coerce handler's response.
type CoerceAnswer struct {
	Kind CoerceKind
	Eq   *jdg.EqType  // populated iff Kind == Convertible
	E    *jdg.IsTerm  // populated iff Kind == Coercible
}
