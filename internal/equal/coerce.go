package equal

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Coerce decides whether e (of its recorded type) can stand in at
// type target, implementing spec.md §4.4's coerce protocol: an
// alpha-equal fast path, then a raised coerce(e, target) operation
// whose answer is one of NotCoercible, Convertible(eq), or
// Coercible(e').
func Coerce(e jdg.IsTerm, target tt.Type, disp Dispatcher, loc tt.Loc) (jdg.IsTerm, error) {
	_, current := jdg.InvertIsTerm(e)
	if tt.AlphaEqualType(current, target) {
		return e, nil
	}

	term, _ := jdg.InvertIsTerm(e)
	answer, err := disp.Coerce(term, target)
	if err != nil {
		return jdg.IsTerm{}, err
	}

	switch answer.Kind {
	case NotCoercible:
		return jdg.IsTerm{}, &NoProofError{Msg: fmt.Sprintf("%s is not coercible to %s", current, target)}

	case Convertible:
		if answer.Eq == nil {
			return jdg.IsTerm{}, &InvalidEqualTypeError{Wanted: fmt.Sprintf("%s ≡ %s", current, target), Got: "<missing equation>"}
		}
		_, lhs, rhs := jdg.InvertEqType(*answer.Eq)
		if !tt.AlphaEqualType(current, lhs) || !tt.AlphaEqualType(target, rhs) {
			return jdg.IsTerm{}, &InvalidEqualTypeError{
				Wanted: fmt.Sprintf("%s ≡ %s", current, target),
				Got:    fmt.Sprintf("%s ≡ %s", lhs, rhs),
			}
		}
		return jdg.ConvertTerm(e, *answer.Eq)

	case Coercible:
		if answer.E == nil {
			return jdg.IsTerm{}, &InvalidCoerceError{Wanted: target.String(), Got: "<missing term>"}
		}
		_, gotTy := jdg.InvertIsTerm(*answer.E)
		if !tt.AlphaEqualType(gotTy, target) {
			return jdg.IsTerm{}, &InvalidCoerceError{Wanted: target.String(), Got: gotTy.String()}
		}
		return *answer.E, nil

	default:
		return jdg.IsTerm{}, fmt.Errorf("coerce: unknown answer kind %d", answer.Kind)
	}
}
