// Package signature is the global environment: an insertion-ordered
// table of declarations (constants, rules, ML operations, ML values,
// dynamics) that the evaluator and kernel consult by name. Insertion
// order is preserved so re-running the same sequence of top-level
// items always elaborates identically, matching spec.md §3.
package signature

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Decl is one declaration variant. The unexported method keeps the
// variant closed to this package, mirroring package jdg's Judgement.
type Decl interface {
	isDecl()
}

// Constant declares a global constant of the given type.
type Constant struct {
	Ty tt.Type
}

func (Constant) isDecl() {}

// PremiseKind records, for documentation and arity checking, what
// judgement form a Rule expects from each premise — it does not itself
// validate premises; Build does that by consuming real jdg.Judgement
// values and returning an error if one is the wrong shape.
type PremiseKind int

const (
	PremiseIsType PremiseKind = iota
	PremiseIsTerm
	PremiseEqType
	PremiseEqTerm
)

// Rule declares a user-extensible inference rule: Build consumes the
// judgements for Premises, in order, and produces the conclusion.
// This is the signature-level counterpart of package jdg's fixed
// built-in constructors (Π-formation, Π-intro, …): Rule lets new
// inference steps be registered by name without the kernel itself
// growing a case for them, the same registry-of-functions idiom
// internal/effects/ops.go uses for effect operations in the teacher.
type Rule struct {
	Premises []PremiseKind
	Build    func(premises []jdg.Judgement) (jdg.Judgement, error)
}

func (Rule) isDecl() {}

// MLOperation declares a named effect operation's arity, e.g.
// equal_term/2. The evaluator's Operation(op, args) checks args
// against Arity before dispatch.
type MLOperation struct {
	Arity int
	Doc   string
}

func (MLOperation) isDecl() {}

// MLValue declares a top-level ML value. Value is stored as `any` so
// that this package does not import package runtime, which sits above
// it in the dependency order (see DESIGN.md).
type MLValue struct {
	Value any
}

func (MLValue) isDecl() {}

// Dynamic declares a mutable dynamic cell (see spec.md §3's Lifecycles
// note); CellID indexes into the evaluator's dynamic-cell store.
type Dynamic struct {
	CellID int
}

func (Dynamic) isDecl() {}

// Signature is the insertion-ordered declaration table.
type Signature struct {
	order []string
	decls map[string]Decl
}

// New creates an empty signature.
func New() *Signature {
	return &Signature{decls: make(map[string]Decl)}
}

// Declare adds a declaration under name. Redeclaring a name is an
// error — shadowing happens at the ML-environment level (package
// eval), not in the global signature.
func (s *Signature) Declare(name string, d Decl) error {
	if _, exists := s.decls[name]; exists {
		return fmt.Errorf("signature: %q already declared", name)
	}
	s.order = append(s.order, name)
	s.decls[name] = d
	return nil
}

// Lookup finds a declaration by name.
func (s *Signature) Lookup(name string) (Decl, bool) {
	d, ok := s.decls[name]
	return d, ok
}

// ConstantType looks up a constant's type, the common case the kernel
// needs when forming `c : T` via jdg.FormConstant.
func (s *Signature) ConstantType(name string) (tt.Type, bool) {
	d, ok := s.decls[name]
	if !ok {
		return tt.Type{}, false
	}
	c, ok := d.(Constant)
	return c.Ty, ok
}

// Names returns declared names in insertion order.
func (s *Signature) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
