package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/atom"
)

func loc() Loc { return Loc{File: "test.ail", Line: 1, Col: 1} }

// TestAbstractInstantiateRoundTrip checks that abstracting a free atom
// and then instantiating it back with a fresh reference to the same
// atom reproduces an alpha-equal term, the basic binder round-trip the
// kernel's Lambda/Prod formers rely on.
func TestAbstractInstantiateRoundTrip(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")

	open := MkAtom(x, loc())
	closed := Abstract([]atom.Atom{x}, 0, open)

	bound, ok := closed.(*TBound)
	require.True(t, ok, "abstracting the bound atom should produce a TBound")
	assert.Equal(t, 0, bound.K)

	reopened := Instantiate([]Term{MkAtom(x, loc())}, 0, closed)
	assert.True(t, AlphaEqual(open, reopened))
}

// TestAbstractLeavesOtherAtomsAlone checks that Abstract only touches
// occurrences of the named atoms, leaving unrelated free atoms intact.
func TestAbstractLeavesOtherAtomsAlone(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	y := tbl.Fresh("y")

	term := MkAtom(y, loc())
	closed := Abstract([]atom.Atom{x}, 0, term)

	got, ok := closed.(*TAtom)
	require.True(t, ok, "abstracting an unrelated atom should leave a TAtom")
	assert.True(t, atom.Equal(y, got.A))
}

// TestInstantiateEmptyIsIdentity checks the documented edge case:
// Instantiate(nil, lvl, t) returns t unchanged.
func TestInstantiateEmptyIsIdentity(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	term := MkAtom(x, loc())

	got := Instantiate(nil, 0, term)
	assert.Same(t, term, got)
}

// TestSubstitutePointFree checks that substituting y for x replaces
// every occurrence of x: the result is alpha-equal to the same term
// built with y in place of x.
func TestSubstitutePointFree(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	y := tbl.Fresh("y")

	body := MkApply(MkAtom(x, loc()), "p", TypeType(loc()), tbl.Fresh("r"), TypeType(loc()), MkAtom(x, loc()), loc())
	got := Substitute([]atom.Atom{x}, []Term{MkAtom(y, loc())}, body)

	want := MkApply(MkAtom(y, loc()), "p", TypeType(loc()), tbl.Fresh("r"), TypeType(loc()), MkAtom(y, loc()), loc())
	assert.True(t, AlphaEqual(got, want))
}

// TestAlphaEqualIgnoresBinderNames checks that two lambdas built over
// differently-hinted fresh atoms for the same binder position are
// alpha-equal once abstracted, since AlphaEqual compares structure
// via bound indices rather than the original hint strings.
func TestAlphaEqualIgnoresBinderNames(t *testing.T) {
	tbl := atom.NewTable()
	xa := tbl.Fresh("a")
	xb := tbl.Fresh("b")

	ty := TypeType(loc())
	lam1 := MkLambda("a", ty, xa, MkAtom(xa, loc()), ty, loc())
	lam2 := MkLambda("b", ty, xb, MkAtom(xb, loc()), ty, loc())

	assert.True(t, AlphaEqual(lam1, lam2))
}

// TestAlphaEqualDistinguishesDifferentBodies checks that AlphaEqual is
// not vacuously true for every pair of lambdas with the same shape.
func TestAlphaEqualDistinguishesDifferentBodies(t *testing.T) {
	tbl := atom.NewTable()
	xa := tbl.Fresh("a")
	free := tbl.Fresh("free")

	ty := TypeType(loc())
	lam1 := MkLambda("a", ty, xa, MkAtom(xa, loc()), ty, loc())
	lam2 := MkLambda("a", ty, xa, MkAtom(free, loc()), ty, loc())

	assert.False(t, AlphaEqual(lam1, lam2))
}

// TestOccursCountsBoundReferences checks Occurs against a Lambda whose
// body references its parameter once.
func TestOccursCountsBoundReferences(t *testing.T) {
	tbl := atom.NewTable()
	x := tbl.Fresh("x")
	ty := TypeType(loc())

	lam := MkLambda("x", ty, x, MkAtom(x, loc()), ty, loc())
	lambda := lam.(*TLambda)
	assert.Equal(t, 1, Occurs(0, lambda.E))
}
