// Package eval is the cooperative evaluator of desugared computations,
// grounded on the teacher's internal/eval/eval_core.go (CoreEvaluator
// holding an Environment, dispatching evalCore by a type switch) and
// eval_patterns.go's linear-match-by-default style, generalized from a
// pure ANF interpreter to an effectful one by continuation-passing:
// since Go has no first-class continuations, Operation's "deep
// handler" resumption is implemented by threading an explicit Go
// closure (Cont) through every evalComp call instead of returning a
// value directly — the call stack itself becomes the suspended
// continuation, captured in a runtime.Continuation when an operation
// is raised and not immediately resolved by the matching handler.
package eval

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/effects"
	"github.com/zzmjohn/andromeda/internal/predefined"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/signature"
)

// State is the evaluator's process-wide mutable state: the global
// signature, atom table, and reference/dynamic stores — held
// explicitly as an instance rather than package-level globals (unlike
// the teacher's internal/effects.Registry map), so independent
// sessions can run concurrently, e.g. under `go test -parallel`.
type State struct {
	Sgn   *signature.Signature
	Ctx   *effects.Context
	Atoms *atom.Table

	refs    map[int]runtime.Value
	refNext int

	dyns    map[int][]runtime.Value
	dynName map[int]string
	dynNext int

	// currentHandlers mirrors whatever handler stack the innermost
	// in-progress EvalComp call is using, so the equal.Dispatcher
	// methods (called synchronously from deep inside an Ascribe) know
	// where to raise equal_term/equal_type/coerce against. See
	// dispatcher.go.
	currentHandlers []*handlerFrame
}

// NewState creates an evaluator state with an empty signature and atom
// table, and grants the five predefined operations.
func NewState() (*State, error) {
	s := &State{
		Sgn:     signature.New(),
		Ctx:     effects.NewContext(),
		Atoms:   atom.NewTable(),
		refs:    make(map[int]runtime.Value),
		dyns:    make(map[int][]runtime.Value),
		dynName: make(map[int]string),
	}
	if err := predefined.Register(s.Sgn, s.Ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRef allocates a fresh reference cell holding v.
func (s *State) NewRef(v runtime.Value) *runtime.Ref {
	id := s.refNext
	s.refNext++
	s.refs[id] = v
	return &runtime.Ref{CellID: id}
}

// ReadRef reads a reference cell's current value.
func (s *State) ReadRef(r *runtime.Ref) (runtime.Value, error) {
	v, ok := s.refs[r.CellID]
	if !ok {
		return nil, fmt.Errorf("eval: dangling reference #%d", r.CellID)
	}
	return v, nil
}

// WriteRef overwrites a reference cell, immediately and irreversibly.
func (s *State) WriteRef(r *runtime.Ref, v runtime.Value) error {
	if _, ok := s.refs[r.CellID]; !ok {
		return fmt.Errorf("eval: dangling reference #%d", r.CellID)
	}
	s.refs[r.CellID] = v
	return nil
}

// DeclareDynamic registers a new dynamic cell named name with initial
// default v, returning a Dyn value referencing it.
func (s *State) DeclareDynamic(name string, v runtime.Value) *runtime.Dyn {
	id := s.dynNext
	s.dynNext++
	s.dyns[id] = []runtime.Value{v}
	s.dynName[id] = name
	return &runtime.Dyn{CellID: id}
}

// LookupDynamic finds a declared dynamic cell by name, for Current and
// Now when given as a bare name rather than a resolved Dyn value.
func (s *State) LookupDynamic(name string) (*runtime.Dyn, bool) {
	for id, n := range s.dynName {
		if n == name {
			return &runtime.Dyn{CellID: id}, true
		}
	}
	return nil, false
}

// PushDynamic pushes v onto dynamic cell d's stack (Now's entry).
func (s *State) PushDynamic(d *runtime.Dyn, v runtime.Value) {
	s.dyns[d.CellID] = append(s.dyns[d.CellID], v)
}

// PopDynamic pops dynamic cell d's stack (Now's exit, on every path:
// normal return or error propagation — the Now case in comp.go pops
// explicitly on both paths, guarded so that it pops only once).
func (s *State) PopDynamic(d *runtime.Dyn) {
	stack := s.dyns[d.CellID]
	if len(stack) > 0 {
		s.dyns[d.CellID] = stack[:len(stack)-1]
	}
}

// SetDynamicDefault replaces dynamic cell d's bottom-of-stack value,
// for TopNow — which updates the default for subsequent top-level
// items rather than pushing a block-scoped override like Now does.
func (s *State) SetDynamicDefault(d *runtime.Dyn, v runtime.Value) {
	stack := s.dyns[d.CellID]
	if len(stack) == 0 {
		s.dyns[d.CellID] = []runtime.Value{v}
		return
	}
	stack[0] = v
}

// CurrentDynamic reads dynamic cell d's topmost value.
func (s *State) CurrentDynamic(d *runtime.Dyn) (runtime.Value, error) {
	stack := s.dyns[d.CellID]
	if len(stack) == 0 {
		return nil, fmt.Errorf("eval: dynamic cell #%d has no value", d.CellID)
	}
	return stack[len(stack)-1], nil
}
