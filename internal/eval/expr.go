package eval

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/syntax"
)

// EvalExpr evaluates a pure expression to a value in env. Expressions
// never suspend, so unlike EvalComp this needs no handler stack or
// continuation — matching spec.md §4.3's "expressions are pure".
func (s *State) EvalExpr(e syntax.Expr, env *runtime.Env) (runtime.Value, error) {
	switch n := e.(type) {
	case *syntax.Var:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("eval: undefined variable %q", n.Name)
		}
		return v, nil

	case *syntax.Lit:
		switch n.Kind {
		case syntax.LitString:
			return &runtime.String{Value: n.Sval}, nil
		case syntax.LitInt:
			return &runtime.Int{Value: n.Ival}, nil
		default:
			return nil, fmt.Errorf("eval: unknown literal kind %d", n.Kind)
		}

	case *syntax.Function:
		return &runtime.Closure{Param: n.Param, Body: n.Body, Env: env}, nil

	case *syntax.TagExpr:
		args, err := s.evalExprList(n.Args, env)
		if err != nil {
			return nil, err
		}
		return &runtime.Tag{Name: n.Name, Args: args}, nil

	case *syntax.TupleExpr:
		elems, err := s.evalExprList(n.Elems, env)
		if err != nil {
			return nil, err
		}
		return &runtime.Tuple{Elems: elems}, nil

	case *syntax.ListExpr:
		elems, err := s.evalExprList(n.Elems, env)
		if err != nil {
			return nil, err
		}
		return &runtime.List{Elems: elems}, nil

	case *syntax.HandlerExpr:
		h := &runtime.Handler{Env: env}
		if n.OnValue != nil {
			h.OnValuePatt = n.OnValue.Pattern
			h.OnValue = n.OnValue.Body
		}
		for _, oc := range n.OnOps {
			h.Ops = append(h.Ops, runtime.OpHandler{Op: oc.Op, Args: oc.Args, Kont: oc.Kont, Body: oc.Body})
		}
		h.OnFinally = n.OnFinally
		return h, nil

	case *syntax.RunComp:
		return s.runToCompletion(n.C, env)

	default:
		return nil, fmt.Errorf("eval: unknown expr node %T", e)
	}
}

func (s *State) evalExprList(es []syntax.Expr, env *runtime.Env) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(es))
	for i, e := range es {
		v, err := s.EvalExpr(e, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// runToCompletion drives a Comp with no enclosing handler stack,
// letting unhandled operations fall back to their predefined default
// answer — the semantics RunComp uses for a computation in expression
// position: no handler installed around the enclosing expression sees
// the operations it raises.
func (s *State) runToCompletion(c syntax.Comp, env *runtime.Env) (runtime.Value, error) {
	return s.EvalComp(c, env, nil, func(v runtime.Value) (runtime.Value, error) { return v, nil })
}
