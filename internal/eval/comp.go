package eval

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/atom"
	"github.com/zzmjohn/andromeda/internal/diag"
	"github.com/zzmjohn/andromeda/internal/equal"
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/predefined"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/signature"
	"github.com/zzmjohn/andromeda/internal/syntax"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Cont is the explicit continuation threaded through EvalComp: "what
// to do with the value this computation produces". Since Go has no
// first-class continuations, this closure IS the suspended rest of
// the program; a Cont value always closes over the handler stack that
// was current where it was built, which is what makes a resumed deep
// handler see its own scope reinstalled with no extra bookkeeping.
type Cont func(runtime.Value) (runtime.Value, error)

// handlerFrame is one entry of the evaluator's handler stack, built by
// With. escapeK is what runs if this handler's on_op clause returns
// (or yields) without invoking its bound continuation: on_finally,
// then whatever was waiting after the enclosing With. outer is the
// handler stack visible to this handler's own on_value/on_op bodies —
// everything below this frame, never including it (a handler cannot
// see its own operations unless the resumed computation reinstalls it
// by calling its continuation).
type handlerFrame struct {
	h       *runtime.Handler
	escapeK Cont
	outer   []*handlerFrame
}

// EvalComp drives a computation to a value, invoking k with the
// result instead of returning it directly — the CPS shape spec.md §4.3
// needs for deep, one-shot resumable handlers. handlers is the stack
// of currently-installed With frames, innermost last.
func (s *State) EvalComp(c syntax.Comp, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	s.currentHandlers = handlers

	switch n := c.(type) {
	case *syntax.Return:
		v, err := s.EvalExpr(n.E, env)
		if err != nil {
			return nil, err
		}
		return k(v)

	case *syntax.Apply:
		return s.evalApply(n, env, handlers, k)

	case *syntax.Let:
		return s.evalBindings(n.Bindings, 0, env, handlers, func(env2 *runtime.Env) (runtime.Value, error) {
			return s.EvalComp(n.Body, env2, handlers, k)
		})

	case *syntax.LetRec:
		placeholders := make(map[string]runtime.Value, len(n.Clauses))
		for _, cl := range n.Clauses {
			placeholders[cl.Name] = &runtime.Tag{Name: "<blackhole>"}
		}
		recEnv := env.ExtendAll(placeholders)
		return s.evalLetRecClauses(n.Clauses, 0, placeholders, recEnv, handlers, func() (runtime.Value, error) {
			return s.EvalComp(n.Body, recEnv, handlers, k)
		})

	case *syntax.Match:
		scrut, err := s.EvalExpr(n.Scrutinee, env)
		if err != nil {
			return nil, err
		}
		for _, mc := range n.Cases {
			bindings := map[string]runtime.Value{}
			if s.matchPattern(mc.Pattern, scrut, bindings) {
				return s.EvalComp(mc.Body, env.ExtendAll(bindings), handlers, k)
			}
		}
		return nil, diag.New(diag.CodeMatchFail, n.Loc, "no case matches %s", scrut.String())

	case *syntax.Operation:
		args, err := s.evalExprList(n.Args, env)
		if err != nil {
			return nil, err
		}
		if d, ok := s.Sgn.Lookup(n.Op); ok {
			if op, ok := d.(signature.MLOperation); ok && op.Arity != len(args) {
				return nil, fmt.Errorf("eval: operation %q expects %d argument(s), got %d", n.Op, op.Arity, len(args))
			}
		}
		return s.raiseOperation(n.Op, args, handlers, k)

	case *syntax.With:
		return s.evalWith(n, env, handlers, k)

	case *syntax.Yield:
		v, err := s.EvalExpr(n.E, env)
		if err != nil {
			return nil, err
		}
		return k(v)

	case *syntax.Ref:
		v, err := s.EvalExpr(n.E, env)
		if err != nil {
			return nil, err
		}
		return k(s.NewRef(v))

	case *syntax.Lookup:
		rv, err := s.EvalExpr(n.R, env)
		if err != nil {
			return nil, err
		}
		r, ok := rv.(*runtime.Ref)
		if !ok {
			return nil, fmt.Errorf("eval: lookup requires a ref value, got %s", rv.Type())
		}
		v, err := s.ReadRef(r)
		if err != nil {
			return nil, err
		}
		return k(v)

	case *syntax.Update:
		rv, err := s.EvalExpr(n.R, env)
		if err != nil {
			return nil, err
		}
		r, ok := rv.(*runtime.Ref)
		if !ok {
			return nil, fmt.Errorf("eval: update requires a ref value, got %s", rv.Type())
		}
		v, err := s.EvalExpr(n.E, env)
		if err != nil {
			return nil, err
		}
		if err := s.WriteRef(r, v); err != nil {
			return nil, err
		}
		return k(&runtime.Tag{Name: "Unit"})

	case *syntax.Now:
		d, ok := s.LookupDynamic(n.D)
		if !ok {
			return nil, fmt.Errorf("eval: undeclared dynamic %q", n.D)
		}
		v, err := s.EvalExpr(n.E, env)
		if err != nil {
			return nil, err
		}
		s.PushDynamic(d, v)
		popped := false
		pop := func() {
			if !popped {
				popped = true
				s.PopDynamic(d)
			}
		}
		result, err := s.EvalComp(n.Body, env, handlers, func(bv runtime.Value) (runtime.Value, error) {
			pop()
			return k(bv)
		})
		pop()
		return result, err

	case *syntax.Current:
		d, ok := s.LookupDynamic(n.D)
		if !ok {
			return nil, fmt.Errorf("eval: undeclared dynamic %q", n.D)
		}
		v, err := s.CurrentDynamic(d)
		if err != nil {
			return nil, err
		}
		return k(v)

	case *syntax.Ascribe:
		return s.evalAscribe(n, env, handlers, k)

	case *syntax.Abstract:
		return s.evalAbstract(n, env, handlers, k)

	case *syntax.Substitute:
		return s.evalSubstitute(n, env, handlers, k)

	case *syntax.Sequence:
		return s.EvalComp(n.C1, env, handlers, func(runtime.Value) (runtime.Value, error) {
			return s.EvalComp(n.C2, env, handlers, k)
		})

	default:
		return nil, fmt.Errorf("eval: unknown comp node %T", c)
	}
}

func (s *State) evalApply(n *syntax.Apply, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	fnV, err := s.EvalExpr(n.Fn, env)
	if err != nil {
		return nil, err
	}
	argV, err := s.EvalExpr(n.Arg, env)
	if err != nil {
		return nil, err
	}
	switch fn := fnV.(type) {
	case *runtime.Closure:
		bindings := map[string]runtime.Value{}
		if !s.matchPattern(fn.Param, argV, bindings) {
			return nil, fmt.Errorf("eval: argument did not match closure parameter")
		}
		return s.EvalComp(fn.Body, fn.Env.ExtendAll(bindings), handlers, k)

	case *runtime.Continuation:
		// One-shot: resuming drives the suspended computation to its
		// own completion, which is what fn.Resume already encodes.
		// Applying a continuation is only meaningful in tail position
		// of an on_op clause (see DESIGN.md) — k is not invoked again.
		return fn.Resume(argV)

	default:
		return nil, fmt.Errorf("eval: cannot apply non-function value of type %s", fnV.Type())
	}
}

func (s *State) evalBindings(bindings []syntax.Binding, i int, env *runtime.Env, handlers []*handlerFrame, done func(*runtime.Env) (runtime.Value, error)) (runtime.Value, error) {
	if i >= len(bindings) {
		return done(env)
	}
	b := bindings[i]
	return s.EvalComp(b.E, env, handlers, func(v runtime.Value) (runtime.Value, error) {
		return s.evalBindings(bindings, i+1, env.Extend(b.Name, v), handlers, done)
	})
}

func (s *State) evalLetRecClauses(clauses []syntax.RecClause, i int, placeholders map[string]runtime.Value, recEnv *runtime.Env, handlers []*handlerFrame, done func() (runtime.Value, error)) (runtime.Value, error) {
	if i >= len(clauses) {
		return done()
	}
	cl := clauses[i]
	return s.EvalComp(cl.E, recEnv, handlers, func(v runtime.Value) (runtime.Value, error) {
		placeholders[cl.Name] = v
		return s.evalLetRecClauses(clauses, i+1, placeholders, recEnv, handlers, done)
	})
}

// evalWith implements the handler-install protocol: Body runs with h
// pushed; a normal return runs on_value, an unresumed operation runs
// escapeK directly, and on_finally runs exactly once on every exit.
func (s *State) evalWith(n *syntax.With, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	hv, err := s.EvalExpr(n.Handler, env)
	if err != nil {
		return nil, err
	}
	h, ok := hv.(*runtime.Handler)
	if !ok {
		return nil, fmt.Errorf("eval: with requires a handler value, got %s", hv.Type())
	}
	for _, op := range h.Ops {
		if err := s.Ctx.RequireCap(op.Op); err != nil {
			return nil, err
		}
	}

	finalized := false
	runFinally := func(v runtime.Value, ferr error) (runtime.Value, error) {
		if finalized || h.OnFinally == nil {
			return v, ferr
		}
		finalized = true
		_, ffErr := s.EvalComp(h.OnFinally, h.Env, handlers, func(fv runtime.Value) (runtime.Value, error) { return fv, nil })
		if ferr != nil {
			return nil, ferr
		}
		if ffErr != nil {
			return nil, ffErr
		}
		return v, nil
	}

	escapeK := func(v runtime.Value) (runtime.Value, error) {
		rv, rerr := runFinally(v, nil)
		if rerr != nil {
			return nil, rerr
		}
		return k(rv)
	}

	frame := &handlerFrame{h: h, escapeK: escapeK, outer: handlers}
	newHandlers := append(append([]*handlerFrame{}, handlers...), frame)

	bodyK := func(v runtime.Value) (runtime.Value, error) {
		if h.OnValue != nil {
			bindings := map[string]runtime.Value{}
			if !s.matchPattern(h.OnValuePatt, v, bindings) {
				return nil, fmt.Errorf("eval: handler's on_value pattern did not match")
			}
			return s.EvalComp(h.OnValue, h.Env.ExtendAll(bindings), handlers, escapeK)
		}
		return escapeK(v)
	}

	result, err := s.EvalComp(n.Body, env, newHandlers, bodyK)
	if err != nil {
		return runFinally(nil, err)
	}
	return result, nil
}

// raiseOperation searches handlers innermost-first for a clause
// matching op, running it with the outer handler stack and its
// frame's escape continuation; Kont is bound to a Continuation whose
// Resume is k, the computation suspended at the raise site. If no
// handler matches, the predefined default answer (if any) is used.
func (s *State) raiseOperation(op string, args []runtime.Value, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	for i := len(handlers) - 1; i >= 0; i-- {
		frame := handlers[i]
		for _, oc := range frame.h.Ops {
			if oc.Op != op || len(oc.Args) != len(args) {
				continue
			}
			bindings := map[string]runtime.Value{}
			matched := true
			for j, ap := range oc.Args {
				if !s.matchPattern(ap, args[j], bindings) {
					matched = false
					break
				}
			}
			if !matched {
				continue
			}
			bindings[oc.Kont] = &runtime.Continuation{Resume: k}
			return s.EvalComp(oc.Body, frame.h.Env.ExtendAll(bindings), frame.outer, frame.escapeK)
		}
	}
	if def, ok := predefined.DefaultAnswer(op); ok {
		return k(def)
	}
	return nil, fmt.Errorf("eval: unhandled operation %q", op)
}

// evalAscribe checks C against the type obtained by running TComp,
// reconciling any mismatch through equal.Coerce — the only place
// package eval calls into package equal's Dispatcher contract.
func (s *State) evalAscribe(n *syntax.Ascribe, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	return s.EvalComp(n.TComp, env, handlers, func(tv runtime.Value) (runtime.Value, error) {
		targetJ, ok := judgementOf(tv)
		if !ok {
			return nil, fmt.Errorf("eval: ascribe's type computation did not produce a judgement")
		}
		isTy, ok := targetJ.(jdg.IsType)
		if !ok {
			return nil, fmt.Errorf("eval: ascribe's type computation did not produce an IsType judgement")
		}
		target := jdg.InvertIsType(isTy)

		return s.EvalComp(n.C, env, handlers, func(cv runtime.Value) (runtime.Value, error) {
			cj, ok := judgementOf(cv)
			if !ok {
				return nil, fmt.Errorf("eval: ascribe's body did not produce a judgement")
			}
			isTerm, ok := cj.(jdg.IsTerm)
			if !ok {
				return nil, fmt.Errorf("eval: ascribe's body did not produce an IsTerm judgement")
			}
			coerced, err := equal.Coerce(isTerm, target, s, n.Loc)
			if err != nil {
				return nil, err
			}
			return k(&runtime.Judgement{J: coerced})
		})
	})
}

// evalAbstract closes Body's resulting term over the atoms Xs were
// bound to in env (each name must already resolve to a TermValue
// wrapping an atom-headed term, i.e. something jdg.AssumeAtom or a
// prior Abstract/Unabstract produced).
func (s *State) evalAbstract(n *syntax.Abstract, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	atoms := make([]atom.Atom, len(n.Xs))
	for i, x := range n.Xs {
		v, ok := env.Lookup(x)
		if !ok {
			return nil, fmt.Errorf("eval: abstract: undefined name %q", x)
		}
		tv, ok := v.(*runtime.TermValue)
		if !ok {
			return nil, fmt.Errorf("eval: abstract: %q is not a term", x)
		}
		a, ok := tv.E.(*tt.TAtom)
		if !ok {
			return nil, fmt.Errorf("eval: abstract: %q is not an atom-headed term", x)
		}
		atoms[i] = a.A
	}
	return s.EvalComp(n.Body, env, handlers, func(bv runtime.Value) (runtime.Value, error) {
		tv, ok := bv.(*runtime.TermValue)
		if !ok {
			return nil, fmt.Errorf("eval: abstract's body did not produce a term")
		}
		abstracted := tt.Abstract(atoms, 0, tv.E)
		return k(&runtime.TermValue{E: abstracted})
	})
}

// evalSubstitute instantiates the abstraction C produces with the
// terms Cs evaluate to, in order.
func (s *State) evalSubstitute(n *syntax.Substitute, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	return s.EvalComp(n.C, env, handlers, func(cv runtime.Value) (runtime.Value, error) {
		tv, ok := cv.(*runtime.TermValue)
		if !ok {
			return nil, fmt.Errorf("eval: substitute's abstraction is not a term")
		}
		return s.evalSubstituteArgs(n.Cs, 0, make([]tt.Term, len(n.Cs)), tv.E, env, handlers, k)
	})
}

func (s *State) evalSubstituteArgs(cs []syntax.Comp, i int, terms []tt.Term, body tt.Term, env *runtime.Env, handlers []*handlerFrame, k Cont) (runtime.Value, error) {
	if i >= len(cs) {
		return k(&runtime.TermValue{E: tt.Instantiate(terms, 0, body)})
	}
	return s.EvalComp(cs[i], env, handlers, func(v runtime.Value) (runtime.Value, error) {
		tv, ok := v.(*runtime.TermValue)
		if !ok {
			return nil, fmt.Errorf("eval: substitute's argument %d is not a term", i)
		}
		terms[i] = tv.E
		return s.evalSubstituteArgs(cs, i+1, terms, body, env, handlers, k)
	})
}
