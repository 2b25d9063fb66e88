package equal

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/diag"
)

// InvalidEqualTermError is raised when a user equal_term handler
// returns a proof of the wrong proposition. Per spec.md §4.4 and §7
// this is fatal: it is not meant to be caught by a TopFail frame,
// unlike an ordinary Typing failure. Fatal reports this via the
// Fatal() marker method that package diag recognizes.
type InvalidEqualTermError struct {
	Wanted, Got string
}

func (e *InvalidEqualTermError) Error() string {
	return fmt.Sprintf("InvalidEqualTerm: handler proved %s but %s was requested", e.Got, e.Wanted)
}
func (e *InvalidEqualTermError) Fatal() bool { return true }
func (e *InvalidEqualTermError) Code() diag.Code { return diag.CodeInvalidEqualTerm }

// InvalidEqualTypeError is InvalidEqualTermError's type-level sibling,
// also covering coerce's Convertible branch per spec.md §4.4.
type InvalidEqualTypeError struct {
	Wanted, Got string
}

func (e *InvalidEqualTypeError) Error() string {
	return fmt.Sprintf("InvalidEqualType: handler proved %s but %s was requested", e.Got, e.Wanted)
}
func (e *InvalidEqualTypeError) Fatal() bool { return true }
func (e *InvalidEqualTypeError) Code() diag.Code { return diag.CodeInvalidEqualType }

// InvalidCoerceError is raised when a user coerce handler's Coercible
// branch supplies a term whose type does not match the requested
// target.
type InvalidCoerceError struct {
	Wanted, Got string
}

func (e *InvalidCoerceError) Error() string {
	return fmt.Sprintf("InvalidCoerce: handler supplied a term of type %s but %s was requested", e.Got, e.Wanted)
}
func (e *InvalidCoerceError) Fatal() bool { return true }
func (e *InvalidCoerceError) Code() diag.Code { return diag.CodeInvalidCoerce }

// NoProofError is the user-recoverable failure raised when a handler
// answers None/NotCoercible. It is an ordinary error: it propagates
// like ailang's evaluator errors, catchable by a TopFail frame.
type NoProofError struct {
	Msg string
}

func (e *NoProofError) Error() string { return e.Msg }
