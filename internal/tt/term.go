// Package tt implements the untyped term/type AST of the judgement
// kernel: a locally-nameless syntax (de Bruijn indices for bound
// variables, atoms for free ones) whose every node carries the
// assumption set it depends on. The only way to build a Term is
// through the smart constructors in this package; they are the sole
// code responsible for maintaining the assumption invariant described
// in spec.md §3.
package tt

import (
	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/atom"
)

// Loc is a source location, opaque to this package and passed through
// from the (out-of-scope) surface syntax for diagnostics only.
type Loc struct {
	File string
	Line int
	Col  int
}

// Node is embedded in every Term variant and carries the two pieces of
// bookkeeping every term needs: its assumption set and its source
// location. Node itself is never constructed outside this package.
type Node struct {
	asmp assumption.Set
	loc  Loc
}

// Assumptions returns the assumption set a term depends on.
func (n Node) Assumptions() assumption.Set { return n.asmp }

// Loc returns the term's source location.
func (n Node) Loc() Loc { return n.loc }

// Term is the tagged union of kernel terms. The unexported method
// pins the interface to this package: no other package can add a case.
type Term interface {
	Assumptions() assumption.Set
	Loc() Loc
	String() string
	isTerm()
}

// Type is a newtype over Term restricted, by construction, to terms
// that classify as a type (Type, Prod, Eq, an atom/constant/apply of
// type sort, or a Signature). Wrapping prevents category errors
// (passing a term where a type is expected) without duplicating the
// term ADT, following spec.md §3's design rationale.
type Type struct {
	t Term
}

// AsTerm views a Type as a plain Term, e.g. to inspect it structurally.
func (ty Type) AsTerm() Term { return ty.t }

// Assumptions forwards to the underlying term.
func (ty Type) Assumptions() assumption.Set { return ty.t.Assumptions() }

// Loc forwards to the underlying term.
func (ty Type) Loc() Loc { return ty.t.Loc() }

func (ty Type) String() string { return ty.t.String() }

// TType is the universe.
type TType struct{ Node }

func (*TType) isTerm() {}

// TAtom is a reference to a free variable.
type TAtom struct {
	Node
	A atom.Atom
}

func (*TAtom) isTerm() {}

// TBound is a de Bruijn index; 0 is the innermost binder. A fully
// elaborated, closed term never contains a TBound outside the scope of
// its binder — Abstract creates TBounds when a smart constructor closes
// a binder over an atom, and Instantiate replaces them when the binder
// is opened again.
type TBound struct {
	Node
	K int
}

func (*TBound) isTerm() {}

// TConstant is a reference to a signature-declared constant.
type TConstant struct {
	Node
	C string
}

func (*TConstant) isTerm() {}

// TLambda is `λ(x:A). e : B`, i.e. Lambda((x,A),(e,B)) from spec.md §3.
// E and ResultTy are both under the one binder introduced by Param.
type TLambda struct {
	Node
	X        string
	ParamTy  Type
	E        Term
	ResultTy Type
}

func (*TLambda) isTerm() {}

// TApply is `e1 e2` at the recorded Π-type of e1.
type TApply struct {
	Node
	Fn       Term
	X        string
	ParamTy  Type
	ResultTy Type
	Arg      Term
}

func (*TApply) isTerm() {}

// TProd is `Π(x:A). B`, the dependent product / function type.
type TProd struct {
	Node
	X       string
	ParamTy Type
	Body    Type
}

func (*TProd) isTerm() {}

// TEq is the propositional equality type `e1 ≡ e2 @ T`.
type TEq struct {
	Node
	T   Type
	Lhs Term
	Rhs Term
}

func (*TEq) isTerm() {}

// TRefl is the canonical proof of reflexivity for a term at a type.
type TRefl struct {
	Node
	T Type
	E Term
}

func (*TRefl) isTerm() {}

// Field is one entry of a Signature telescope: its type may refer, via
// TBound, to the fields declared before it (field i can mention levels
// 0..i-1, counting outward from itself).
type Field struct {
	Label string
	Ty    Type
}

// TSignature is a record type: an ordered telescope of labeled fields.
type TSignature struct {
	Node
	Fields []Field
}

func (*TSignature) isTerm() {}

// TStructure is a record value inhabiting a TSignature.
type TStructure struct {
	Node
	Sig   []Field
	Elems []Term
}

func (*TStructure) isTerm() {}

// TProjection extracts the field labeled L from a structure.
type TProjection struct {
	Node
	E   Term
	Sig []Field
	L   string
}

func (*TProjection) isTerm() {}
