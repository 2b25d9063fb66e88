package tt

import (
	"github.com/zzmjohn/andromeda/internal/assumption"
	"github.com/zzmjohn/andromeda/internal/atom"
)

// Instantiate replaces the telescope of bound indices
// [lvl, lvl+len(es)) by the corresponding entries of es, and
// renumbers any reference to an enclosing binder (index >= lvl+len(es))
// down by len(es). Instantiate(nil, lvl, t) is the identity — per
// spec.md §4.1's edge-case policy, callers rely on this to implement
// Substitute uniformly even when nothing is substituted.
func Instantiate(es []Term, lvl int, t Term) Term {
	if len(es) == 0 {
		return t
	}
	esAsmp := make([]assumption.Set, len(es))
	for i, e := range es {
		esAsmp[i] = e.Assumptions()
	}
	return instantiate(es, esAsmp, lvl, t)
}

// InstantiateType is Instantiate specialized to Type.
func InstantiateType(es []Term, lvl int, ty Type) Type {
	return Type{t: Instantiate(es, lvl, ty.t)}
}

func instantiate(es []Term, esAsmp []assumption.Set, lvl int, t Term) Term {
	switch n := t.(type) {
	case *TType, *TAtom, *TConstant:
		return t
	case *TBound:
		switch {
		case n.K < lvl:
			return t
		case n.K < lvl+len(es):
			return es[n.K-lvl]
		default:
			return &TBound{Node{asmp: n.asmp.Instantiate(esAsmp, lvl), loc: n.loc}, n.K - len(es)}
		}
	case *TLambda:
		paramTy := Type{t: instantiate(es, esAsmp, lvl, n.ParamTy.t)}
		e := instantiate(es, esAsmp, lvl+1, n.E)
		resultTy := Type{t: instantiate(es, esAsmp, lvl+1, n.ResultTy.t)}
		asmp := assumption.Union(paramTy.Assumptions(), e.Assumptions().Bind(1), resultTy.Assumptions().Bind(1))
		return &TLambda{Node{asmp, n.loc}, n.X, paramTy, e, resultTy}
	case *TApply:
		fn := instantiate(es, esAsmp, lvl, n.Fn)
		paramTy := Type{t: instantiate(es, esAsmp, lvl, n.ParamTy.t)}
		resultTy := Type{t: instantiate(es, esAsmp, lvl+1, n.ResultTy.t)}
		arg := instantiate(es, esAsmp, lvl, n.Arg)
		asmp := assumption.Union(fn.Assumptions(), paramTy.Assumptions(), resultTy.Assumptions().Bind(1), arg.Assumptions())
		return &TApply{Node{asmp, n.loc}, fn, n.X, paramTy, resultTy, arg}
	case *TProd:
		paramTy := Type{t: instantiate(es, esAsmp, lvl, n.ParamTy.t)}
		body := Type{t: instantiate(es, esAsmp, lvl+1, n.Body.t)}
		asmp := assumption.Union(paramTy.Assumptions(), body.Assumptions().Bind(1))
		return &TProd{Node{asmp, n.loc}, n.X, paramTy, body}
	case *TEq:
		ty := Type{t: instantiate(es, esAsmp, lvl, n.T.t)}
		lhs := instantiate(es, esAsmp, lvl, n.Lhs)
		rhs := instantiate(es, esAsmp, lvl, n.Rhs)
		asmp := assumption.Union(ty.Assumptions(), lhs.Assumptions(), rhs.Assumptions())
		return &TEq{Node{asmp, n.loc}, ty, lhs, rhs}
	case *TRefl:
		ty := Type{t: instantiate(es, esAsmp, lvl, n.T.t)}
		e := instantiate(es, esAsmp, lvl, n.E)
		asmp := assumption.Union(ty.Assumptions(), e.Assumptions())
		return &TRefl{Node{asmp, n.loc}, ty, e}
	case *TSignature:
		fields := instantiateFields(es, esAsmp, lvl, n.Fields)
		return MkSignature(fields, n.loc).t
	case *TStructure:
		fields := instantiateFields(es, esAsmp, lvl, n.Sig)
		elems := make([]Term, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = instantiate(es, esAsmp, lvl, el)
		}
		return MkStructure(fields, elems, n.loc)
	case *TProjection:
		fields := instantiateFields(es, esAsmp, lvl, n.Sig)
		e := instantiate(es, esAsmp, lvl, n.E)
		return MkProjection(e, fields, n.L, n.loc)
	default:
		return t
	}
}

func instantiateFields(es []Term, esAsmp []assumption.Set, lvl int, fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{f.Label, Type{t: instantiate(es, esAsmp, lvl+i, f.Ty.t)}}
	}
	return out
}

// Abstract captures the free atoms xs as a telescope of bound indices
// starting at lvl (xs[0] ↦ lvl, xs[1] ↦ lvl+1, …). Abstract(nil, lvl,
// t) is the identity.
func Abstract(xs []atom.Atom, lvl int, t Term) Term {
	if len(xs) == 0 {
		return t
	}
	return abstract(xs, lvl, t)
}

// AbstractType is Abstract specialized to Type.
func AbstractType(xs []atom.Atom, lvl int, ty Type) Type {
	return Type{t: Abstract(xs, lvl, ty.t)}
}

func abstract(xs []atom.Atom, lvl int, t Term) Term {
	switch n := t.(type) {
	case *TType, *TBound, *TConstant:
		return t
	case *TAtom:
		for i, x := range xs {
			if atom.Equal(x, n.A) {
				return &TBound{Node{asmp: n.asmp.Abstract(xs, lvl), loc: n.loc}, lvl + i}
			}
		}
		return t
	case *TLambda:
		paramTy := Type{t: abstract(xs, lvl, n.ParamTy.t)}
		e := abstract(xs, lvl+1, n.E)
		resultTy := Type{t: abstract(xs, lvl+1, n.ResultTy.t)}
		asmp := assumption.Union(paramTy.Assumptions(), e.Assumptions().Bind(1), resultTy.Assumptions().Bind(1))
		return &TLambda{Node{asmp, n.loc}, n.X, paramTy, e, resultTy}
	case *TApply:
		fn := abstract(xs, lvl, n.Fn)
		paramTy := Type{t: abstract(xs, lvl, n.ParamTy.t)}
		resultTy := Type{t: abstract(xs, lvl+1, n.ResultTy.t)}
		arg := abstract(xs, lvl, n.Arg)
		asmp := assumption.Union(fn.Assumptions(), paramTy.Assumptions(), resultTy.Assumptions().Bind(1), arg.Assumptions())
		return &TApply{Node{asmp, n.loc}, fn, n.X, paramTy, resultTy, arg}
	case *TProd:
		paramTy := Type{t: abstract(xs, lvl, n.ParamTy.t)}
		body := Type{t: abstract(xs, lvl+1, n.Body.t)}
		asmp := assumption.Union(paramTy.Assumptions(), body.Assumptions().Bind(1))
		return &TProd{Node{asmp, n.loc}, n.X, paramTy, body}
	case *TEq:
		ty := Type{t: abstract(xs, lvl, n.T.t)}
		lhs := abstract(xs, lvl, n.Lhs)
		rhs := abstract(xs, lvl, n.Rhs)
		asmp := assumption.Union(ty.Assumptions(), lhs.Assumptions(), rhs.Assumptions())
		return &TEq{Node{asmp, n.loc}, ty, lhs, rhs}
	case *TRefl:
		ty := Type{t: abstract(xs, lvl, n.T.t)}
		e := abstract(xs, lvl, n.E)
		asmp := assumption.Union(ty.Assumptions(), e.Assumptions())
		return &TRefl{Node{asmp, n.loc}, ty, e}
	case *TSignature:
		fields := abstractFields(xs, lvl, n.Fields)
		return MkSignature(fields, n.loc).t
	case *TStructure:
		fields := abstractFields(xs, lvl, n.Sig)
		elems := make([]Term, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = abstract(xs, lvl, el)
		}
		return MkStructure(fields, elems, n.loc)
	case *TProjection:
		fields := abstractFields(xs, lvl, n.Sig)
		e := abstract(xs, lvl, n.E)
		return MkProjection(e, fields, n.L, n.loc)
	default:
		return t
	}
}

func abstractFields(xs []atom.Atom, lvl int, fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{f.Label, Type{t: abstract(xs, lvl+i, f.Ty.t)}}
	}
	return out
}

// Substitute replaces the free atoms xs with the terms es,
// point-free, by abstracting then instantiating at level 0.
// Substitute(nil, nil, t) returns t unchanged (pointer-equal), as
// both Abstract and Instantiate are no-ops on empty lists.
func Substitute(xs []atom.Atom, es []Term, t Term) Term {
	return Instantiate(es, 0, Abstract(xs, 0, t))
}

// Unabstract opens the outermost binder telescope of t by replacing
// Bound 0, Bound 1, … with fresh atoms, one per entry of xs, in order.
func Unabstract(xs []atom.Atom, t Term) Term {
	es := make([]Term, len(xs))
	for i, x := range xs {
		es[i] = MkAtom(x, t.Loc())
	}
	return Instantiate(es, 0, t)
}

// UnabstractType is Unabstract specialized to Type.
func UnabstractType(xs []atom.Atom, ty Type) Type {
	return Type{t: Unabstract(xs, ty.t)}
}

// Occurs counts the occurrences of Bound k in t. It exists solely to
// help a pretty-printer decide whether a dependent product needs to
// name its bound variable; it has no role in any judgement.
func Occurs(k int, t Term) int {
	switch n := t.(type) {
	case *TBound:
		if n.K == k {
			return 1
		}
		return 0
	case *TLambda:
		return Occurs(k, n.ParamTy.t) + Occurs(k+1, n.E) + Occurs(k+1, n.ResultTy.t)
	case *TApply:
		return Occurs(k, n.Fn) + Occurs(k, n.ParamTy.t) + Occurs(k+1, n.ResultTy.t) + Occurs(k, n.Arg)
	case *TProd:
		return Occurs(k, n.ParamTy.t) + Occurs(k+1, n.Body.t)
	case *TEq:
		return Occurs(k, n.T.t) + Occurs(k, n.Lhs) + Occurs(k, n.Rhs)
	case *TRefl:
		return Occurs(k, n.T.t) + Occurs(k, n.E)
	case *TSignature:
		total := 0
		for i, f := range n.Fields {
			total += Occurs(k+i, f.Ty.t)
		}
		return total
	case *TStructure:
		total := 0
		for i, f := range n.Sig {
			total += Occurs(k+i, f.Ty.t)
		}
		for _, e := range n.Elems {
			total += Occurs(k, e)
		}
		return total
	case *TProjection:
		return Occurs(k, n.E)
	default:
		return 0
	}
}
