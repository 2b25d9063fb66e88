package eval

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/equal"
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// State implements equal.Dispatcher by raising the three predefined
// operations against whatever handler stack is current — tracked in
// currentHandlers, set on every EvalComp entry, since the evaluator is
// single-threaded (spec.md §5) and equal/coerce calls always happen
// synchronously underneath some in-progress EvalComp call.
var _ equal.Dispatcher = (*State)(nil)

func (s *State) raiseSync(op string, args []runtime.Value) (runtime.Value, error) {
	return s.raiseOperation(op, args, s.currentHandlers, func(v runtime.Value) (runtime.Value, error) {
		return v, nil
	})
}

// EqualTerm implements equal.Dispatcher.
func (s *State) EqualTerm(e1, e2 tt.Term) (*jdg.EqTerm, error) {
	v, err := s.raiseSync("equal_term", []runtime.Value{&runtime.TermValue{E: e1}, &runtime.TermValue{E: e2}})
	if err != nil {
		return nil, err
	}
	return decodeOptEqTerm(v)
}

// EqualType implements equal.Dispatcher.
func (s *State) EqualType(t1, t2 tt.Type) (*jdg.EqType, error) {
	v, err := s.raiseSync("equal_type", []runtime.Value{&runtime.TermValue{Ty: t1}, &runtime.TermValue{Ty: t2}})
	if err != nil {
		return nil, err
	}
	return decodeOptEqType(v)
}

// Coerce implements equal.Dispatcher.
func (s *State) Coerce(e tt.Term, target tt.Type) (equal.CoerceAnswer, error) {
	v, err := s.raiseSync("coerce", []runtime.Value{&runtime.TermValue{E: e}, &runtime.TermValue{Ty: target}})
	if err != nil {
		return equal.CoerceAnswer{}, err
	}
	return decodeCoerceAnswer(v)
}

func judgementOf(v runtime.Value) (jdg.Judgement, bool) {
	j, ok := v.(*runtime.Judgement)
	if !ok {
		return nil, false
	}
	return j.J, true
}

func decodeOptEqTerm(v runtime.Value) (*jdg.EqTerm, error) {
	tag, ok := v.(*runtime.Tag)
	if !ok {
		return nil, fmt.Errorf("eval: equal_term handler must return a tag, got %s", v.Type())
	}
	switch tag.Name {
	case "None":
		return nil, nil
	case "Some":
		if len(tag.Args) != 1 {
			return nil, fmt.Errorf("eval: Some expects 1 argument")
		}
		j, ok := judgementOf(tag.Args[0])
		if !ok {
			return nil, fmt.Errorf("eval: Some argument must be a judgement")
		}
		eqTerm, ok := j.(jdg.EqTerm)
		if !ok {
			return nil, fmt.Errorf("eval: Some argument must be an EqTerm judgement")
		}
		return &eqTerm, nil
	default:
		return nil, fmt.Errorf("eval: unknown equal_term answer %q", tag.Name)
	}
}

func decodeOptEqType(v runtime.Value) (*jdg.EqType, error) {
	tag, ok := v.(*runtime.Tag)
	if !ok {
		return nil, fmt.Errorf("eval: equal_type handler must return a tag, got %s", v.Type())
	}
	switch tag.Name {
	case "None":
		return nil, nil
	case "Some":
		if len(tag.Args) != 1 {
			return nil, fmt.Errorf("eval: Some expects 1 argument")
		}
		j, ok := judgementOf(tag.Args[0])
		if !ok {
			return nil, fmt.Errorf("eval: Some argument must be a judgement")
		}
		eqTy, ok := j.(jdg.EqType)
		if !ok {
			return nil, fmt.Errorf("eval: Some argument must be an EqType judgement")
		}
		return &eqTy, nil
	default:
		return nil, fmt.Errorf("eval: unknown equal_type answer %q", tag.Name)
	}
}

func decodeCoerceAnswer(v runtime.Value) (equal.CoerceAnswer, error) {
	tag, ok := v.(*runtime.Tag)
	if !ok {
		return equal.CoerceAnswer{}, fmt.Errorf("eval: coerce handler must return a tag, got %s", v.Type())
	}
	switch tag.Name {
	case "NotCoercible":
		return equal.CoerceAnswer{Kind: equal.NotCoercible}, nil

	case "Convertible":
		if len(tag.Args) != 1 {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Convertible expects 1 argument")
		}
		j, ok := judgementOf(tag.Args[0])
		if !ok {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Convertible argument must be a judgement")
		}
		eqTy, ok := j.(jdg.EqType)
		if !ok {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Convertible argument must be an EqType judgement")
		}
		return equal.CoerceAnswer{Kind: equal.Convertible, Eq: &eqTy}, nil

	case "Coercible":
		if len(tag.Args) != 1 {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Coercible expects 1 argument")
		}
		j, ok := judgementOf(tag.Args[0])
		if !ok {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Coercible argument must be a judgement")
		}
		isTerm, ok := j.(jdg.IsTerm)
		if !ok {
			return equal.CoerceAnswer{}, fmt.Errorf("eval: Coercible argument must be an IsTerm judgement")
		}
		return equal.CoerceAnswer{Kind: equal.Coercible, E: &isTerm}, nil

	default:
		return equal.CoerceAnswer{}, fmt.Errorf("eval: unknown coerce answer %q", tag.Name)
	}
}
