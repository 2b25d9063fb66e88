// Package predefined registers the five named operations every
// session starts with (spec.md §4.5), grounded on the teacher's
// internal/effects/ops.go registry-of-functions idiom — generalized
// from a Go-native effect registry to a table of *default answers*,
// since these operations are algebraic (raised, then possibly
// intercepted by a user With/Handler) rather than always-native.
package predefined

import (
	"github.com/zzmjohn/andromeda/internal/effects"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/signature"
)

// Names lists the five predefined operations in registration order.
var Names = []string{"equal_term", "equal_type", "coerce", "as_prod", "as_eq"}

var arity = map[string]int{
	"equal_term": 2,
	"equal_type": 2,
	"coerce":     2,
	"as_prod":    1,
	"as_eq":      1,
}

var doc = map[string]string{
	"equal_term": "equal_term(e1, e2) -> Option EqTerm: user-extensible term equality",
	"equal_type": "equal_type(T1, T2) -> Option EqType: user-extensible type equality",
	"coerce":     "coerce(e, T) -> NotCoercible | Convertible(eq) | Coercible(e'): user-extensible coercion",
	"as_prod":    "as_prod(T) -> Option (A, B): decompose T as a Π-type, allowing user-registered unfoldings",
	"as_eq":      "as_eq(T) -> Option (T', e1, e2): decompose T as an Eq-type, allowing user-registered unfoldings",
}

// Register declares all five operations in sgn and grants their
// capability in ctx, matching spec.md §4.5: "At session start the
// runtime registers equal_term, equal_type, coerce, as_prod, as_eq as
// named operations, giving user handlers something to override."
func Register(sgn *signature.Signature, ctx *effects.Context) error {
	for _, name := range Names {
		if err := sgn.Declare(name, signature.MLOperation{Arity: arity[name], Doc: doc[name]}); err != nil {
			return err
		}
		ctx.Grant(name)
	}
	return nil
}

// none is the ML-level `None` tag shared by the default handlers.
func none() runtime.Value { return &runtime.Tag{Name: "None"} }

// DefaultAnswer returns the answer a predefined operation produces
// when no handler on the stack intercepts it: None for equal_term,
// equal_type, as_prod, and as_eq, and NotCoercible for coerce —
// "making the engine pure α-equality until the user extends it"
// (spec.md §4.5).
func DefaultAnswer(op string) (runtime.Value, bool) {
	switch op {
	case "equal_term", "equal_type", "as_prod", "as_eq":
		return none(), true
	case "coerce":
		return &runtime.Tag{Name: "NotCoercible"}, true
	default:
		return nil, false
	}
}
