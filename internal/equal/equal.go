package equal

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Equal decides whether e1 and e2 are equal, first by alpha-equality
// and, failing that, by raising equal_term(e1, e2) through disp. It
// implements spec.md §4.4's protocol exactly:
//
//  1. jdg.MkAlphaEqualTerm short-circuits on a syntactic match.
//  2. Otherwise the operation is raised; None fails the call with a
//     user-recoverable NoProofError.
//  3. Some(eq) is only trusted after this function re-checks that eq's
//     endpoints are alpha-equal to the terms actually asked about —
//     equality reflection means any proof is accepted as definitional,
//     but only a proof of the exact proposition requested.
func Equal(e1, e2 jdg.IsTerm, disp Dispatcher, loc tt.Loc) (*jdg.EqTerm, error) {
	t1, ty1 := jdg.InvertIsTerm(e1)
	t2, _ := jdg.InvertIsTerm(e2)

	if fast := jdg.MkAlphaEqualTerm(e1, e2, loc); fast != nil {
		return fast, nil
	}

	answer, err := disp.EqualTerm(t1, t2)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, &NoProofError{Msg: fmt.Sprintf("no proof that %s ≡ %s : %s", t1, t2, ty1)}
	}

	_, lhs, rhs, _ := jdg.InvertEqTerm(*answer)
	if !tt.AlphaEqual(t1, lhs) || !tt.AlphaEqual(t2, rhs) {
		return nil, &InvalidEqualTermError{
			Wanted: fmt.Sprintf("%s ≡ %s", t1, t2),
			Got:    fmt.Sprintf("%s ≡ %s", lhs, rhs),
		}
	}
	return answer, nil
}

// EqualType is Equal's type-level counterpart.
func EqualType(ty1, ty2 jdg.IsType, disp Dispatcher, loc tt.Loc) (*jdg.EqType, error) {
	t1 := jdg.InvertIsType(ty1)
	t2 := jdg.InvertIsType(ty2)

	if fast := jdg.MkAlphaEqualType(ty1, ty2, loc); fast != nil {
		return fast, nil
	}

	answer, err := disp.EqualType(t1, t2)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, &NoProofError{Msg: fmt.Sprintf("no proof that %s ≡ %s", t1, t2)}
	}

	_, lhs, rhs := jdg.InvertEqType(*answer)
	if !tt.AlphaEqualType(t1, lhs) || !tt.AlphaEqualType(t2, rhs) {
		return nil, &InvalidEqualTypeError{
			Wanted: fmt.Sprintf("%s ≡ %s", t1, t2),
			Got:    fmt.Sprintf("%s ≡ %s", lhs, rhs),
		}
	}
	return answer, nil
}
