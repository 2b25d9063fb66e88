// Package assumption implements the finite sets of atoms that every TT
// term carries, recording which free variables a derivation depends on.
//
// The set has two parts: a set of free Atoms, and a set of bound-level
// indices that have not yet been resolved to an Atom because they refer
// to a binder that is still open above the term being built. The
// bound-level part only ever matters while a term is under
// construction by the smart constructors in package tt; once a term is
// closed (no open binders above it) the bound-level part is empty.
package assumption

import "github.com/zzmjohn/andromeda/internal/atom"

// Set is an immutable finite set of atoms plus bound-level indices.
// Every operation returns a new Set; none mutates its receiver, so a
// Set can be shared freely between terms without aliasing bugs.
type Set struct {
	atoms  map[int64]atom.Atom
	levels map[int]struct{}
}

// Empty is the assumption set of a term with no free dependencies,
// e.g. Type or a Constant.
var Empty = Set{}

// Singleton returns the assumption set of a single free atom.
func Singleton(a atom.Atom) Set {
	return Set{atoms: map[int64]atom.Atom{a.Tag(): a}}
}

// BoundSingleton returns the assumption set recording a single open
// bound-level index (used only transiently while instantiate/abstract
// is rewriting a term; it never survives into a fully-closed term).
func BoundSingleton(lvl int) Set {
	return Set{levels: map[int]struct{}{lvl: {}}}
}

// Union merges any number of assumption sets.
func Union(sets ...Set) Set {
	out := Set{}
	for _, s := range sets {
		for tag, a := range s.atoms {
			out = out.withAtom(tag, a)
		}
		for lvl := range s.levels {
			out = out.withLevel(lvl)
		}
	}
	return out
}

func (s Set) withAtom(tag int64, a atom.Atom) Set {
	atoms := make(map[int64]atom.Atom, len(s.atoms)+1)
	for k, v := range s.atoms {
		atoms[k] = v
	}
	atoms[tag] = a
	return Set{atoms: atoms, levels: s.levels}
}

func (s Set) withLevel(lvl int) Set {
	levels := make(map[int]struct{}, len(s.levels)+1)
	for k := range s.levels {
		levels[k] = struct{}{}
	}
	levels[lvl] = struct{}{}
	return Set{atoms: s.atoms, levels: levels}
}

// Atoms returns the free atoms in the set, in no particular order.
func (s Set) Atoms() []atom.Atom {
	out := make([]atom.Atom, 0, len(s.atoms))
	for _, a := range s.atoms {
		out = append(out, a)
	}
	return out
}

// Contains reports whether the given atom is a member.
func (s Set) Contains(a atom.Atom) bool {
	_, ok := s.atoms[a.Tag()]
	return ok
}

// Bind shifts every bound-level index in the set up by one, crossing
// one more binder. This is the operation performed at every binder
// boundary while a smart constructor assembles the assumptions of a
// compound term (Lambda, Prod, …) from the assumptions of its
// immediate subterm under the binder. It is O(|set|) as required.
func (s Set) Bind(k int) Set {
	if len(s.levels) == 0 {
		return s
	}
	levels := make(map[int]struct{}, len(s.levels))
	for lvl := range s.levels {
		levels[lvl+k] = struct{}{}
	}
	return Set{atoms: s.atoms, levels: levels}
}

// Instantiate resolves the binder telescope occupying levels
// [lvl, lvl+len(hs)) by replacing each level lvl+i with the assumption
// set hs[i], and renumbers any level referring to an enclosing binder
// (level >= lvl+len(hs)) down by len(hs) now that the telescope is
// gone. Levels below lvl are left untouched. If hs is empty the set is
// returned unchanged, matching tt.Instantiate's identity law.
func (s Set) Instantiate(hs []Set, lvl int) Set {
	if len(hs) == 0 {
		return s
	}
	n := len(hs)
	kept := Set{atoms: s.atoms}
	var levels map[int]struct{}
	var resolved []Set
	for l := range s.levels {
		switch {
		case l < lvl:
			if levels == nil {
				levels = map[int]struct{}{}
			}
			levels[l] = struct{}{}
		case l < lvl+n:
			resolved = append(resolved, hs[l-lvl])
		default:
			if levels == nil {
				levels = map[int]struct{}{}
			}
			levels[l-n] = struct{}{}
		}
	}
	kept.levels = levels
	return Union(append([]Set{kept}, resolved...)...)
}

// Abstract turns the listed atoms into bound-level indices starting at
// lvl (xs[0] becomes level lvl, xs[1] becomes lvl+1, …), removing them
// from the free-atom part of the set.
func (s Set) Abstract(xs []atom.Atom, lvl int) Set {
	atoms := make(map[int64]atom.Atom, len(s.atoms))
	for k, v := range s.atoms {
		atoms[k] = v
	}
	levels := copyLevels(s.levels)
	for i, x := range xs {
		if _, ok := atoms[x.Tag()]; ok {
			delete(atoms, x.Tag())
			levels[lvl+i] = struct{}{}
		}
	}
	return Set{atoms: atoms, levels: levels}
}

// Equal reports whether two sets contain the same atoms and the same
// bound-level indices. Used only by tests and the reference-traversal
// invariant check in package tt.
func Equal(a, b Set) bool {
	if len(a.atoms) != len(b.atoms) || len(a.levels) != len(b.levels) {
		return false
	}
	for tag := range a.atoms {
		if _, ok := b.atoms[tag]; !ok {
			return false
		}
	}
	for lvl := range a.levels {
		if _, ok := b.levels[lvl]; !ok {
			return false
		}
	}
	return true
}
