package eval

import (
	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/syntax"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// matchPattern attempts to match p against v, collecting bindings. It
// tries each arm linearly in Match order, mirroring the teacher's
// eval_patterns.go default (the teacher's decision-tree compiler
// exists but is "available but disabled by default" there too; this
// module does not implement that optimization — see DESIGN.md).
func (s *State) matchPattern(p syntax.Patt, v runtime.Value, bindings map[string]runtime.Value) bool {
	switch pt := p.(type) {
	case *syntax.PVar:
		bindings[pt.Name] = v
		return true

	case *syntax.PWildcard:
		return true

	case *syntax.PAs:
		if !s.matchPattern(pt.Inner, v, bindings) {
			return false
		}
		bindings[pt.Name] = v
		return true

	case *syntax.PTag:
		tag, ok := v.(*runtime.Tag)
		if !ok || tag.Name != pt.Name || len(tag.Args) != len(pt.Args) {
			return false
		}
		for i, ap := range pt.Args {
			if !s.matchPattern(ap, tag.Args[i], bindings) {
				return false
			}
		}
		return true

	case *syntax.PTuple:
		tup, ok := v.(*runtime.Tuple)
		if !ok || len(tup.Elems) != len(pt.Elems) {
			return false
		}
		for i, ep := range pt.Elems {
			if !s.matchPattern(ep, tup.Elems[i], bindings) {
				return false
			}
		}
		return true

	case *syntax.PList:
		list, ok := v.(*runtime.List)
		if !ok {
			return false
		}
		if pt.Tail == nil {
			if len(list.Elems) != len(pt.Elems) {
				return false
			}
		} else if len(list.Elems) < len(pt.Elems) {
			return false
		}
		for i, ep := range pt.Elems {
			if !s.matchPattern(ep, list.Elems[i], bindings) {
				return false
			}
		}
		if pt.Tail != nil {
			if !s.matchPattern(*pt.Tail, &runtime.List{Elems: list.Elems[len(pt.Elems):]}, bindings) {
				return false
			}
		}
		return true

	case *syntax.PJudgement:
		if _, ok := v.(*runtime.Judgement); !ok {
			return false
		}
		bindings[pt.Name] = v
		return true

	case *syntax.PTTIsType:
		j, ok := asJudgement(v)
		if !ok {
			return false
		}
		isTy, ok := j.(jdg.IsType)
		if !ok {
			return false
		}
		ty := jdg.InvertIsType(isTy)
		return matchTypePatt(pt.Ty, ty, bindings)

	case *syntax.PTTIsTerm:
		j, ok := asJudgement(v)
		if !ok {
			return false
		}
		isTerm, ok := j.(jdg.IsTerm)
		if !ok {
			return false
		}
		e, ty := jdg.InvertIsTerm(isTerm)
		if pt.E.Name != "" {
			bindings[pt.E.Name] = &runtime.TermValue{E: e, Ty: ty}
		}
		return matchTypePatt(pt.Ty, ty, bindings)

	case *syntax.PTTEqType:
		j, ok := asJudgement(v)
		if !ok {
			return false
		}
		eqTy, ok := j.(jdg.EqType)
		if !ok {
			return false
		}
		_, t1, t2 := jdg.InvertEqType(eqTy)
		return matchTypePatt(pt.T1, t1, bindings) && matchTypePatt(pt.T2, t2, bindings)

	case *syntax.PTTEqTerm:
		j, ok := asJudgement(v)
		if !ok {
			return false
		}
		eqTerm, ok := j.(jdg.EqTerm)
		if !ok {
			return false
		}
		_, e1, e2, ty := jdg.InvertEqTerm(eqTerm)
		if pt.E1.Name != "" {
			bindings[pt.E1.Name] = &runtime.TermValue{E: e1, Ty: ty}
		}
		if pt.E2.Name != "" {
			bindings[pt.E2.Name] = &runtime.TermValue{E: e2, Ty: ty}
		}
		return matchTypePatt(pt.Ty, ty, bindings)

	case *syntax.PTTAbstraction:
		tv, ok := v.(*runtime.TermValue)
		if !ok {
			return false
		}
		opened := tt.Unabstract(s.freshAtoms(pt.Xs), tv.E)
		return s.matchPattern(pt.Body, &runtime.TermValue{E: opened, Ty: tv.Ty}, bindings)

	default:
		return false
	}
}

// asJudgement unwraps a runtime.Judgement value, the only Value kind
// TT patterns other than PTTAbstraction match against.
func asJudgement(v runtime.Value) (jdg.Judgement, bool) {
	j, ok := v.(*runtime.Judgement)
	if !ok {
		return nil, false
	}
	return j.J, true
}

func matchTypePatt(m syntax.Meta, ty tt.Type, bindings map[string]runtime.Value) bool {
	switch p := m.Ty.(type) {
	case *syntax.TPAny, nil:
	case *syntax.TPConst:
		c, ok := ty.AsTerm().(*tt.TConstant)
		if !ok || c.C != p.Name {
			return false
		}
	default:
		return false
	}
	if m.Name != "" {
		bindings[m.Name] = &runtime.TermValue{E: ty.AsTerm(), Ty: tt.TypeType(tt.Loc{})}
	}
	return true
}

// freshAtoms opens a PTTAbstraction for inspection by minting fresh
// atoms per name: a TT pattern never needs the originally-bound atoms
// back, only a fresh opening to look inside — callers that need the
// atoms themselves use Abstract/Substitute instead (see syntax.Abstract).
func (s *State) freshAtoms(names []string) []atom.Atom {
	out := make([]atom.Atom, len(names))
	for i, n := range names {
		out[i] = s.Atoms.Fresh(n)
	}
	return out
}
