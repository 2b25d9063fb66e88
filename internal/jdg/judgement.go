// Package jdg wraps package tt's terms inside typed judgements and
// enforces the theory's inference rules. Judgement is a sealed
// variant: every constructor lives in this package, and every
// inspector returns a plain copy of the judgement's data rather than
// the judgement itself, so nothing outside the kernel can fabricate
// one from parts. This is the abstraction barrier spec.md §9 calls the
// "sole remaining soundness barrier" once the equality engine's
// endpoint checks (package equal) hold.
package jdg

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Judgement is the sealed judgement variant. The unexported method
// keeps every implementation inside this package.
type Judgement interface {
	Assumptions() assumption.Set
	String() string
	isJudgement()
}

// IsType is `⊢ A type`.
type IsType struct {
	ty tt.Type
}

func (j IsType) Assumptions() assumption.Set { return j.ty.Assumptions() }
func (j IsType) String() string { return fmt.Sprintf("⊢ %s type", j.ty) }
func (IsType) isJudgement() {}

// IsTerm is `⊢ e : T`.
type IsTerm struct {
	e  tt.Term
	ty tt.Type
}

func (j IsTerm) Assumptions() assumption.Set {
	return assumption.Union(j.e.Assumptions(), j.ty.Assumptions())
}
func (j IsTerm) String() string { return fmt.Sprintf("⊢ %s : %s", j.e, j.ty) }
func (IsTerm) isJudgement() {}

// EqType is `asmp ⊢ T1 ≡ T2`.
type EqType struct {
	asmp   assumption.Set
	t1, t2 tt.Type
}

func (j EqType) Assumptions() assumption.Set { return j.asmp }
func (j EqType) String() string { return fmt.Sprintf("%s ≡ %s type", j.t1, j.t2) }
func (EqType) isJudgement() {}

// EqTerm is `asmp ⊢ e1 ≡ e2 : T`.
type EqTerm struct {
	asmp   assumption.Set
	e1, e2 tt.Term
	ty     tt.Type
}

func (j EqTerm) Assumptions() assumption.Set { return j.asmp }
func (j EqTerm) String() string { return fmt.Sprintf("%s ≡ %s : %s", j.e1, j.e2, j.ty) }
func (EqTerm) isJudgement() {}

// InvertIsType extracts an IsType's type. Used by printers and by the
// evaluator's TT pattern matcher.
func InvertIsType(j IsType) tt.Type { return j.ty }

// InvertIsTerm extracts an IsTerm's term and type.
func InvertIsTerm(j IsTerm) (tt.Term, tt.Type) { return j.e, j.ty }

// InvertEqType extracts an EqType's payload. Reserved for the equality
// engine (package equal) and pattern matching; other callers should
// not need to pull an equation apart.
func InvertEqType(j EqType) (assumption.Set, tt.Type, tt.Type) { return j.asmp, j.t1, j.t2 }

// InvertEqTerm extracts an EqTerm's payload, for the same audience as
// InvertEqType.
func InvertEqTerm(j EqTerm) (assumption.Set, tt.Term, tt.Term, tt.Type) {
	return j.asmp, j.e1, j.e2, j.ty
}
