package tt

import "github.com/zzmjohn/andromeda/internal/atom"

// AlphaEqual is structural equality modulo binder names: TLambda/TProd
// binders are compared by crossing them together rather than by name.
// Pointer-identical inputs short-circuit to true, matching spec.md
// §4.1.
func AlphaEqual(t1, t2 Term) bool {
	if sameTerm(t1, t2) {
		return true
	}
	switch a := t1.(type) {
	case *TType:
		_, ok := t2.(*TType)
		return ok
	case *TAtom:
		b, ok := t2.(*TAtom)
		return ok && atom.Equal(a.A, b.A)
	case *TBound:
		b, ok := t2.(*TBound)
		return ok && a.K == b.K
	case *TConstant:
		b, ok := t2.(*TConstant)
		return ok && a.C == b.C
	case *TLambda:
		b, ok := t2.(*TLambda)
		return ok && AlphaEqualType(a.ParamTy, b.ParamTy) &&
			AlphaEqual(a.E, b.E) && AlphaEqualType(a.ResultTy, b.ResultTy)
	case *TApply:
		b, ok := t2.(*TApply)
		return ok && AlphaEqual(a.Fn, b.Fn) && AlphaEqualType(a.ParamTy, b.ParamTy) &&
			AlphaEqualType(a.ResultTy, b.ResultTy) && AlphaEqual(a.Arg, b.Arg)
	case *TProd:
		b, ok := t2.(*TProd)
		return ok && AlphaEqualType(a.ParamTy, b.ParamTy) && AlphaEqualType(a.Body, b.Body)
	case *TEq:
		b, ok := t2.(*TEq)
		return ok && AlphaEqualType(a.T, b.T) && AlphaEqual(a.Lhs, b.Lhs) && AlphaEqual(a.Rhs, b.Rhs)
	case *TRefl:
		b, ok := t2.(*TRefl)
		return ok && AlphaEqualType(a.T, b.T) && AlphaEqual(a.E, b.E)
	case *TSignature:
		b, ok := t2.(*TSignature)
		return ok && alphaEqualFields(a.Fields, b.Fields)
	case *TStructure:
		b, ok := t2.(*TStructure)
		if !ok || !alphaEqualFields(a.Sig, b.Sig) || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !AlphaEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *TProjection:
		b, ok := t2.(*TProjection)
		return ok && a.L == b.L && AlphaEqual(a.E, b.E) && alphaEqualFields(a.Sig, b.Sig)
	default:
		return false
	}
}

func alphaEqualFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label || !AlphaEqualType(a[i].Ty, b[i].Ty) {
			return false
		}
	}
	return true
}

// AlphaEqualType lifts AlphaEqual to Type.
func AlphaEqualType(t1, t2 Type) bool {
	return AlphaEqual(t1.t, t2.t)
}

// AlphaEqualAbstraction lifts AlphaEqual through a binder spine: two
// abstraction bodies are alpha-equal iff they agree after opening both
// with the same fresh atoms. Domain types are not compared here.
func AlphaEqualAbstraction(xs []atom.Atom, body1, body2 Term) bool {
	return AlphaEqual(Unabstract(xs, body1), Unabstract(xs, body2))
}

func sameTerm(t1, t2 Term) bool {
	switch a := t1.(type) {
	case *TType:
		b, ok := t2.(*TType)
		return ok && a == b
	case *TAtom:
		b, ok := t2.(*TAtom)
		return ok && a == b
	case *TBound:
		b, ok := t2.(*TBound)
		return ok && a == b
	case *TConstant:
		b, ok := t2.(*TConstant)
		return ok && a == b
	case *TLambda:
		b, ok := t2.(*TLambda)
		return ok && a == b
	case *TApply:
		b, ok := t2.(*TApply)
		return ok && a == b
	case *TProd:
		b, ok := t2.(*TProd)
		return ok && a == b
	case *TEq:
		b, ok := t2.(*TEq)
		return ok && a == b
	case *TRefl:
		b, ok := t2.(*TRefl)
		return ok && a == b
	case *TSignature:
		b, ok := t2.(*TSignature)
		return ok && a == b
	case *TStructure:
		b, ok := t2.(*TStructure)
		return ok && a == b
	case *TProjection:
		b, ok := t2.(*TProjection)
		return ok && a == b
	default:
		return false
	}
}
