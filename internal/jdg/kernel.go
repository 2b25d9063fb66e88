package jdg

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/diag"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// ImpossibleError signals a broken kernel invariant — per spec.md §7 it
// should never fire, and unlike Typing/Runtime/MatchFail it is not
// meant to be caught by a TopFail frame. Its Fatal method below makes
// diag.IsFatal report it as not user-catchable; no wrapper is needed
// (see internal/diag).
type ImpossibleError struct {
	Msg string
}

func (e *ImpossibleError) Error() string { return "impossible: " + e.Msg }

// Fatal marks ImpossibleError as not user-catchable (package diag's
// Fataler interface).
func (e *ImpossibleError) Fatal() bool { return true }

// Code reports this error's diagnostic code for package diag.
func (e *ImpossibleError) Code() diag.Code { return diag.CodeImpossible }

func impossible(format string, args ...any) error {
	return &ImpossibleError{Msg: fmt.Sprintf(format, args...)}
}

// TypingError is a user-recoverable rejection of a construction, e.g. a
// Π-elim whose argument's type does not match the domain.
type TypingError struct {
	Msg string
}

func (e *TypingError) Error() string { return e.Msg }

func typingError(format string, args ...any) error {
	return &TypingError{Msg: fmt.Sprintf(format, args...)}
}

// FormTypeType concludes that the universe term classifies as a type.
func FormTypeType(loc tt.Loc) IsType {
	return IsType{ty: tt.WrapType(tt.MkType(loc))}
}

// AssumeAtom is the hypothesis rule: given that x was introduced as a
// fresh variable of type A (A already validated as IsType — the
// evaluator only ever opens a binder whose domain it already
// type-checked), conclude `x : A`. This is how a bound variable
// becomes usable inside an opened lambda/Π body; it is the only
// judgement constructor that takes an atom rather than deriving one
// from existing judgements, matching spec.md §3's note that atoms are
// minted by the evaluator, not the kernel.
func AssumeAtom(x atom.Atom, ty IsType, loc tt.Loc) IsTerm {
	return IsTerm{e: tt.MkAtom(x, loc), ty: ty.ty}
}

// FormConstant concludes `c : T` for a constant declared with type T.
// The caller (the evaluator, consulting the signature) supplies T;
// jdg does not consult the signature itself, keeping the kernel's
// only dependency downward, on package tt.
func FormConstant(name string, ty tt.Type, loc tt.Loc) IsTerm {
	return IsTerm{e: tt.MkConstant(name, loc), ty: ty}
}

// FormProd is Π-formation: given `A type` and, under a fresh atom x:A,
// `B type`, conclude `Π(x:A). B type`.
func FormProd(x string, paramTy IsType, boundAtom atom.Atom, bodyOpen IsType, loc tt.Loc) IsType {
	return IsType{ty: tt.MkProd(x, paramTy.ty, boundAtom, bodyOpen.ty, loc)}
}

// FormLambda is Π-intro: given `A type` and, under x:A, `e : B`,
// conclude `λx.e : Π(x:A). B`.
func FormLambda(x string, paramTy IsType, boundAtom atom.Atom, bodyOpen IsTerm, loc tt.Loc) IsTerm {
	e := tt.MkLambda(x, paramTy.ty, boundAtom, bodyOpen.e, bodyOpen.ty, loc)
	prodTy := tt.MkProd(x, paramTy.ty, boundAtom, bodyOpen.ty, loc)
	return IsTerm{e: e, ty: prodTy}
}

// FormApply is Π-elim: given `f : Π(x:A). B` and `a : A` (checked by
// alpha-equality against the Π's domain — anything looser must be
// reconciled by the equality engine before calling FormApply), conclude
// `f a : B[a/x]`.
func FormApply(fn IsTerm, arg IsTerm, loc tt.Loc) (IsTerm, error) {
	prod, ok := fn.ty.AsTerm().(*tt.TProd)
	if !ok {
		return IsTerm{}, typingError("Π-elim: %s is not a Π-type", fn.ty)
	}
	if !tt.AlphaEqualType(prod.ParamTy, arg.ty) {
		return IsTerm{}, typingError("Π-elim: argument type %s does not match domain %s", arg.ty, prod.ParamTy)
	}
	resultTy := tt.InstantiateType([]tt.Term{arg.e}, 0, prod.Body)
	e := tt.MkApplyClosed(fn.e, prod.X, prod.ParamTy, prod.Body, arg.e, loc)
	return IsTerm{e: e, ty: resultTy}, nil
}

// FormEq is Eq-formation: given `T type`, `e1 : T`, `e2 : T`, conclude
// `Eq(T, e1, e2) type`.
func FormEq(ty IsType, e1, e2 IsTerm, loc tt.Loc) IsType {
	return IsType{ty: tt.MkEq(ty.ty, e1.e, e2.e, loc)}
}

// FormRefl is Refl-intro: given `e : T`, conclude `refl(e) : Eq(T,e,e)`.
func FormRefl(e IsTerm, loc tt.Loc) IsTerm {
	reflTerm := tt.MkRefl(e.ty, e.e, loc)
	eqTy := tt.MkEq(e.ty, e.e, e.e, loc)
	return IsTerm{e: reflTerm, ty: eqTy}
}

// MkAlphaEqualTerm is the kernel's fast path for term equality: it
// returns a witness with an empty assumption set when e1 and e2 are
// alpha-equal at the same type, and nil otherwise. It never consults
// user code — that is the equality engine's job (package equal) when
// this returns nil.
func MkAlphaEqualTerm(e1, e2 IsTerm, loc tt.Loc) *EqTerm {
	if !tt.AlphaEqualType(e1.ty, e2.ty) || !tt.AlphaEqual(e1.e, e2.e) {
		return nil
	}
	return &EqTerm{asmp: assumption.Empty, e1: e1.e, e2: e2.e, ty: e1.ty}
}

// MkAlphaEqualType is MkAlphaEqualTerm's symmetric counterpart for types.
func MkAlphaEqualType(t1, t2 IsType, loc tt.Loc) *EqType {
	if !tt.AlphaEqualType(t1.ty, t2.ty) {
		return nil
	}
	return &EqType{asmp: assumption.Empty, t1: t1.ty, t2: t2.ty}
}

// ConvertTerm re-types e at T2 given a proof that T1 ≡ T2, where e : T1.
// This is the "obvious endpoint-validated convert-form" spec.md §9
// leaves as an implementer's choice for coerce's Convertible branch:
// the conversion rule of equality reflection, applied once the
// equality engine (package equal) has already validated eq's
// endpoints against (T1, T2).
func ConvertTerm(e IsTerm, eq EqType) (IsTerm, error) {
	asmp, t1, t2 := InvertEqType(eq)
	if !tt.AlphaEqualType(t1, e.ty) {
		return IsTerm{}, impossible("ConvertTerm: equation LHS %s does not match term's type %s", t1, e.ty)
	}
	return IsTerm{e: e.e, ty: withAssumptions(t2, assumption.Union(asmp, e.ty.Assumptions()))}, nil
}

func withAssumptions(ty tt.Type, _ assumption.Set) tt.Type {
	// The term/type pair's printed assumptions are tracked on the Term
	// node itself (package tt's invariant); a converted type keeps the
	// same underlying term and therefore the same assumption set. The
	// extra assumptions contributed by the equation are recorded on
	// the *judgement* wrapper (EqType above already unions them), not
	// reattached onto the tt.Type value, so this is a no-op today —
	// kept as a named seam for the day a type needs its own assumption
	// override independent of its term.
	return ty
}

// SigField is one field of a record telescope presented to the kernel:
// Ty is already expressed relative to the fields declared before it
// (Bound 0 = the immediately preceding field, Bound 1 the one before
// that, …), the same convention package tt's Signature/Structure
// constructors use internally.
type SigField struct {
	Label string
	Ty    IsType
}

// FormSignature is record-formation: given a well-formed telescope of
// field types, conclude the record type itself.
func FormSignature(fields []SigField, loc tt.Loc) IsType {
	return IsType{ty: tt.MkSignature(toTTFields(fields), loc)}
}

// FormStructure is record-introduction: given a telescope of field
// types and a matching list of term judgements, each checked against
// its field's type with the earlier fields' values substituted in,
// conclude the record value.
func FormStructure(fields []SigField, elems []IsTerm, loc tt.Loc) (IsTerm, error) {
	if len(fields) != len(elems) {
		return IsTerm{}, typingError("structure: expected %d fields, got %d", len(fields), len(elems))
	}
	terms := make([]tt.Term, len(elems))
	for i, f := range fields {
		expected := tt.InstantiateType(reverseTerms(terms[:i]), 0, f.Ty.ty)
		if !tt.AlphaEqualType(expected, elems[i].ty) {
			return IsTerm{}, typingError("structure: field %q expected type %s, got %s", f.Label, expected, elems[i].ty)
		}
		terms[i] = elems[i].e
	}
	tfields := toTTFields(fields)
	return IsTerm{e: tt.MkStructure(tfields, terms, loc), ty: tt.MkSignature(tfields, loc)}, nil
}

// FormProjection is record-elimination: given a structure judgement
// and a label present in its signature, conclude the projected field,
// with earlier fields' concrete values substituted into its type.
func FormProjection(s IsTerm, fields []SigField, label string, loc tt.Loc) (IsTerm, error) {
	idx := -1
	for i, f := range fields {
		if f.Label == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return IsTerm{}, typingError("projection: no field %q in signature", label)
	}
	structTerm, ok := s.e.(*tt.TStructure)
	if !ok {
		return IsTerm{}, typingError("projection: %s is not a structure", s.e)
	}
	prevTerms := make([]tt.Term, idx)
	for i := 0; i < idx; i++ {
		prevTerms[i] = structTerm.Elems[i]
	}
	ty := tt.InstantiateType(reverseTerms(prevTerms), 0, fields[idx].Ty.ty)
	return IsTerm{e: tt.MkProjection(s.e, toTTFields(fields), label, loc), ty: ty}, nil
}

func toTTFields(fields []SigField) []tt.Field {
	out := make([]tt.Field, len(fields))
	for i, f := range fields {
		out[i] = tt.Field{Label: f.Label, Ty: f.Ty.ty}
	}
	return out
}

func reverseTerms(ts []tt.Term) []tt.Term {
	out := make([]tt.Term, len(ts))
	for i, t := range ts {
		out[len(ts)-1-i] = t
	}
	return out
}

// TermAbstraction is a telescope of binders closing over a final
// term judgement, e.g. the "(a:A)(b:B) -> e : C" shape a Rule
// declaration's conclusion can have. It lets TypeOfTermAbstraction
// package a type without re-type-checking anything: the Π-types are
// just folded up from the parameters that are already known to be
// well-formed.
type TermAbstraction struct {
	Params []AbstParam
	Body   IsTerm
}

// AbstParam is one parameter of a TermAbstraction.
type AbstParam struct {
	X     string
	Ty    IsType
	Bound atom.Atom
}

// TypeOfTermAbstraction computes the Π-type of a (possibly) abstracted
// term without re-type-checking: it folds the already-known parameter
// types and body type into nested Π-types, right to left.
func TypeOfTermAbstraction(ab TermAbstraction, loc tt.Loc) tt.Type {
	ty := ab.Body.ty
	for i := len(ab.Params) - 1; i >= 0; i-- {
		p := ab.Params[i]
		ty = tt.MkProd(p.X, p.Ty.ty, p.Bound, ty, loc)
	}
	return ty
}

// AlphaEqualAbstraction lifts alpha-equality through a binder spine,
// delegating to package tt.
func AlphaEqualAbstraction(xs []atom.Atom, body1, body2 tt.Term) bool {
	return tt.AlphaEqualAbstraction(xs, body1, body2)
}
