package equal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/tt"
)

func loc() tt.Loc { return tt.Loc{File: "test.ail", Line: 1, Col: 1} }

// fakeDispatcher is a hand-rolled Dispatcher for exercising Coerce's
// answer-decoding logic without going through the evaluator's
// operation-raising machinery.
type fakeDispatcher struct {
	coerceAnswer CoerceAnswer
	coerceErr    error
}

func (f *fakeDispatcher) EqualTerm(e1, e2 tt.Term) (*jdg.EqTerm, error) { return nil, nil }
func (f *fakeDispatcher) EqualType(t1, t2 tt.Type) (*jdg.EqType, error) { return nil, nil }
func (f *fakeDispatcher) Coerce(e tt.Term, target tt.Type) (CoerceAnswer, error) {
	return f.coerceAnswer, f.coerceErr
}

// TestCoerceAlphaEqualFastPath checks that Coerce never consults the
// dispatcher when the term's current type is already alpha-equal to
// the target.
func TestCoerceAlphaEqualFastPath(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	typeTy := jdg.FormTypeType(loc())
	e := jdg.AssumeAtom(x, typeTy, loc())
	target := jdg.InvertIsType(typeTy)

	disp := &fakeDispatcher{coerceErr: assert.AnError}
	got, err := Coerce(e, target, disp, loc())
	require.NoError(t, err)
	_, gotTy := jdg.InvertIsTerm(got)
	assert.True(t, tt.AlphaEqualType(gotTy, target))
}

// TestCoerceRejectsNotCoercible checks that a NotCoercible answer
// surfaces as a NoProofError rather than succeeding.
func TestCoerceRejectsNotCoercible(t *testing.T) {
	tbl := atom.NewTable()
	x, c := tbl.Fresh("x"), tbl.Fresh("c")
	typeTy := jdg.FormTypeType(loc())
	e := jdg.AssumeAtom(x, typeTy, loc())
	target := tt.WrapType(tt.MkAtom(c, loc()))

	disp := &fakeDispatcher{coerceAnswer: CoerceAnswer{Kind: NotCoercible}}
	_, err := Coerce(e, target, disp, loc())
	require.Error(t, err)
	_, ok := err.(*NoProofError)
	assert.True(t, ok)
}

// TestCoerceConvertibleValidatesEndpoints checks that a Convertible
// answer whose equation endpoints don't match (current, target) is
// rejected rather than trusted blindly — the "sole remaining
// soundness barrier" spec.md §9 calls out.
func TestCoerceConvertibleValidatesEndpoints(t *testing.T) {
	tbl := atom.NewTable()
	x, c := tbl.Fresh("x"), tbl.Fresh("c")
	typeTy := jdg.FormTypeType(loc())
	e := jdg.AssumeAtom(x, typeTy, loc())
	target := tt.WrapType(tt.MkAtom(c, loc())) // unrelated to Type

	// An equation between Type and Type (trivially alpha-equal, so
	// MkAlphaEqualType succeeds) whose endpoints don't match the
	// (current=Type, target=c) pair Coerce actually needs reconciled.
	wrongEq := jdg.MkAlphaEqualType(typeTy, typeTy, loc())
	require.NotNil(t, wrongEq)

	disp := &fakeDispatcher{coerceAnswer: CoerceAnswer{Kind: Convertible, Eq: wrongEq}}
	_, err := Coerce(e, target, disp, loc())
	assert.Error(t, err)
}
