package tt

import (
	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/atom"
)

// MkType builds the universe term.
func MkType(loc Loc) Term {
	return &TType{Node{asmp: assumption.Empty, loc: loc}}
}

// TypeType is the Type judgement's underlying type, Type : Type.
func TypeType(loc Loc) Type {
	return Type{t: MkType(loc)}
}

// MkAtom builds a reference to a free atom.
func MkAtom(a atom.Atom, loc Loc) Term {
	return &TAtom{Node{asmp: assumption.Singleton(a), loc: loc}, a}
}

// mkBound builds a de Bruijn reference. Unexported, and not called
// elsewhere in the package: Abstract and Instantiate (ops.go) build
// their TBound nodes directly. Client code never builds a TBound; a
// term from a smart constructor holds TBounds only inside the scope of
// the binder that introduced them.
func mkBound(k int, loc Loc) Term {
	return &TBound{Node{asmp: assumption.BoundSingleton(k), loc: loc}, k}
}

// MkConstant builds a reference to a signature-declared constant. A
// constant never carries assumptions of its own: its dependencies are
// recorded once, in the signature, not per occurrence.
func MkConstant(name string, loc Loc) Term {
	return &TConstant{Node{asmp: assumption.Empty, loc: loc}, name}
}

// MkLambda builds `λ(x:A). e : B`. body and resultTy are the
// already-opened (atom-headed) forms of the lambda's scope; MkLambda
// abstracts the bound atom x out of both before storing them, so the
// stored term is the closed, binder form.
func MkLambda(x string, paramTy Type, boundAtom atom.Atom, body Term, resultTy Type, loc Loc) Term {
	e := Abstract([]atom.Atom{boundAtom}, 0, body)
	b := AbstractType([]atom.Atom{boundAtom}, 0, resultTy)
	asmp := assumption.Union(paramTy.Assumptions(), e.Assumptions().Bind(1), b.Assumptions().Bind(1))
	return &TLambda{Node{asmp: asmp, loc: loc}, x, paramTy, e, b}
}

// MkApply builds `e1 e2` given the Π-type of e1 opened at x.
func MkApply(fn Term, x string, paramTy Type, boundAtomForResultTy atom.Atom, resultTyOpen Type, arg Term, loc Loc) Term {
	b := AbstractType([]atom.Atom{boundAtomForResultTy}, 0, resultTyOpen)
	asmp := assumption.Union(fn.Assumptions(), paramTy.Assumptions(), b.Assumptions().Bind(1), arg.Assumptions())
	return &TApply{Node{asmp: asmp, loc: loc}, fn, x, paramTy, b, arg}
}

// WrapType packages a raw Term as a Type. Used only where a caller
// already knows, by construction, that the term classifies as a type
// (e.g. the kernel's FormTypeType); ordinary code should build a Type
// through one of the Mk* functions that return Type directly.
func WrapType(t Term) Type { return Type{t: t} }

// MkApplyClosed builds `fn arg` from an already-closed (bound-form)
// codomain type, i.e. one already expressed relative to the same
// binder as paramTy rather than opened at a fresh atom. This is what
// the judgement kernel uses once it already holds a Π-type's stored
// (closed) codomain and only needs to attach it to a new application
// node; MkApply above is for the complementary case of building a
// Π-elim node from an open scope.
func MkApplyClosed(fn Term, x string, paramTy Type, resultTyClosed Type, arg Term, loc Loc) Term {
	asmp := assumption.Union(fn.Assumptions(), paramTy.Assumptions(), resultTyClosed.Assumptions().Bind(1), arg.Assumptions())
	return &TApply{Node{asmp: asmp, loc: loc}, fn, x, paramTy, resultTyClosed, arg}
}

// MkProd builds `Π(x:A). B` given B opened at the bound atom x.
func MkProd(x string, paramTy Type, boundAtom atom.Atom, bodyOpen Type, loc Loc) Type {
	b := AbstractType([]atom.Atom{boundAtom}, 0, bodyOpen)
	asmp := assumption.Union(paramTy.Assumptions(), b.Assumptions().Bind(1))
	return Type{t: &TProd{Node{asmp: asmp, loc: loc}, x, paramTy, b}}
}

// MkEq builds the equality type `e1 ≡ e2 @ T`.
func MkEq(ty Type, lhs, rhs Term, loc Loc) Type {
	asmp := assumption.Union(ty.Assumptions(), lhs.Assumptions(), rhs.Assumptions())
	return Type{t: &TEq{Node{asmp: asmp, loc: loc}, ty, lhs, rhs}}
}

// MkRefl builds the canonical reflexivity proof for e at type T.
func MkRefl(ty Type, e Term, loc Loc) Term {
	asmp := assumption.Union(ty.Assumptions(), e.Assumptions())
	return &TRefl{Node{asmp: asmp, loc: loc}, ty, e}
}

// MkSignature builds a record type from a telescope of already-closed
// fields (field i's type may reference fields 0..i-1 via TBound, with
// level 0 meaning "the field immediately before me").
func MkSignature(fields []Field, loc Loc) Type {
	asmp := assumption.Empty
	for i, f := range fields {
		asmp = assumption.Union(asmp, f.Ty.Assumptions().Bind(i))
	}
	return Type{t: &TSignature{Node{asmp: asmp, loc: loc}, fields}}
}

// MkStructure builds a record value. elems must have the same length
// as sig and elems[i] must inhabit sig[i].Ty with sig[0..i-1]
// instantiated by elems[0..i-1] — checked by the judgement kernel, not
// here; this constructor only maintains the assumption invariant.
func MkStructure(sig []Field, elems []Term, loc Loc) Term {
	asmp := assumption.Empty
	for i, f := range sig {
		asmp = assumption.Union(asmp, f.Ty.Assumptions().Bind(i))
	}
	for _, e := range elems {
		asmp = assumption.Union(asmp, e.Assumptions())
	}
	return &TStructure{Node{asmp: asmp, loc: loc}, sig, elems}
}

// MkProjection builds `e.l`.
func MkProjection(e Term, sig []Field, label string, loc Loc) Term {
	asmp := assumption.Union(e.Assumptions(), MkSignature(sig, loc).Assumptions())
	return &TProjection{Node{asmp: asmp, loc: loc}, e, sig, label}
}
