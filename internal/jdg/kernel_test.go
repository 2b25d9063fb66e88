package jdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/tt"
)

func loc() tt.Loc { return tt.Loc{File: "test.ail", Line: 1, Col: 1} }

// TestIdentityFunctionTypeChecks builds λ(x:Type). x : Π(x:Type). Type
// and applies it to Type itself, checking the β-reduction spec.md §8
// asks for: the result's type is the substituted codomain.
func TestIdentityFunctionTypeChecks(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")

	typeTy := FormTypeType(loc())
	body := AssumeAtom(x, typeTy, loc())
	id := FormLambda("x", typeTy, x, body, loc())

	prod, ok := id.ty.AsTerm().(*tt.TProd)
	require.True(t, ok)
	assert.Equal(t, "x", prod.X)

	applied, err := FormApply(id, typeTy.asTermValue(), loc())
	require.NoError(t, err)
	assert.True(t, tt.AlphaEqualType(applied.ty, tt.TypeType(loc())))
}

// asTermValue is a tiny test-only helper turning the `Type type`
// judgement into the `Type : Type` term judgement FormApply expects as
// its argument, mirroring how the evaluator would feed Type as an
// argument to a Π(x:Type). B).
func (j IsType) asTermValue() IsTerm {
	return IsTerm{e: j.ty.AsTerm(), ty: tt.TypeType(j.ty.Loc())}
}

// TestFormApplyRejectsMismatchedDomain checks the Π-elim side
// condition: an argument whose type isn't alpha-equal to the domain is
// rejected rather than silently accepted.
func TestFormApplyRejectsMismatchedDomain(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	c := tbl.Fresh("c")

	typeTy := FormTypeType(loc())
	body := AssumeAtom(x, typeTy, loc())
	id := FormLambda("x", typeTy, x, body, loc())

	// c : c (an ill-typed but structurally distinct "type" standing in
	// for something that is not Type itself).
	badArg := IsTerm{e: tt.MkAtom(c, loc()), ty: tt.WrapType(tt.MkAtom(c, loc()))}

	_, err := FormApply(id, badArg, loc())
	assert.Error(t, err)
}

// TestReflProvesSelfEquality checks Refl-intro: refl(e) : Eq(T,e,e).
func TestReflProvesSelfEquality(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	typeTy := FormTypeType(loc())
	e := AssumeAtom(x, typeTy, loc())

	refl := FormRefl(e, loc())

	eqTerm, ok := refl.ty.AsTerm().(*tt.TEq)
	require.True(t, ok)
	assert.True(t, tt.AlphaEqual(eqTerm.Lhs, eqTerm.Rhs))
}

// TestMkAlphaEqualTermFastPath checks that two occurrences of the same
// constant at the same type produce a zero-assumption equality witness via
// the kernel's own fast path, with no dispatch to the equality engine.
func TestMkAlphaEqualTermFastPath(t *testing.T) {
	e1 := FormConstant("c", tt.TypeType(loc()), loc())
	e2 := FormConstant("c", tt.TypeType(loc()), loc())

	eq := MkAlphaEqualTerm(e1, e2, loc())
	require.NotNil(t, eq)
	assert.True(t, assumption.Equal(eq.Assumptions(), assumption.Empty))
}

// TestMkAlphaEqualTermFailsOnDifferentAtoms checks the fast path
// returns nil (requiring dispatch to the equality engine) when the two
// terms are not alpha-equal.
func TestMkAlphaEqualTermFailsOnDifferentAtoms(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	y := tbl.Fresh("y")
	typeTy := FormTypeType(loc())
	e1 := AssumeAtom(x, typeTy, loc())
	e2 := AssumeAtom(y, typeTy, loc())

	assert.Nil(t, MkAlphaEqualTerm(e1, e2, loc()))
}

// TestFormStructureAndProjection checks record formation and
// projection on a one-field signature.
func TestFormStructureAndProjection(t *testing.T) {
	typeTy := FormTypeType(loc())
	fields := []SigField{{Label: "fst", Ty: typeTy}}

	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	elem := AssumeAtom(x, typeTy, loc())

	structVal, err := FormStructure(fields, []IsTerm{elem}, loc())
	require.NoError(t, err)

	proj, err := FormProjection(structVal, fields, "fst", loc())
	require.NoError(t, err)
	assert.True(t, tt.AlphaEqualType(proj.ty, typeTy.ty))
}

// TestFormStructureRejectsArityMismatch checks the side condition on
// FormStructure: the elements list must match the field telescope.
func TestFormStructureRejectsArityMismatch(t *testing.T) {
	typeTy := FormTypeType(loc())
	fields := []SigField{{Label: "fst", Ty: typeTy}}

	_, err := FormStructure(fields, nil, loc())
	assert.Error(t, err)
}

// TestConvertTermRejectsMismatchedEndpoint checks ConvertTerm's own
// sanity check: the equation's LHS must match the term's current type,
// independent of the fuller endpoint validation package equal performs
// around it.
func TestConvertTermRejectsMismatchedEndpoint(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	typeTy := FormTypeType(loc())
	e := AssumeAtom(x, typeTy, loc())

	c := tbl.Fresh("c")
	unrelated := tt.WrapType(tt.MkAtom(c, loc()))
	eq := EqType{t1: unrelated, t2: typeTy.ty}

	_, err := ConvertTerm(e, eq)
	assert.Error(t, err)
}

// TestImpossibleErrorIsFatal checks ImpossibleError's diag.Fataler
// wiring: it must never be catchable by a TopFail frame.
func TestImpossibleErrorIsFatal(t *testing.T) {
	err := impossible("broken invariant: %s", "test")
	assert.True(t, err.(*ImpossibleError).Fatal())
}
