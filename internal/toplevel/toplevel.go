// Package toplevel sequences a desugared program against a persistent
// session environment, grounded on the teacher's cmd/ailang/eval.go
// (a run-then-report loop around a single persistent evaluator) and
// internal/pipeline's stage sequencing. Each item gets a fresh
// evaluation rooted at the current environment; a recoverable error is
// reported and the driver moves on, a fatal one aborts.
package toplevel

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/diag"
	"github.com/zzmjohn/andromeda/internal/eval"
	"github.com/zzmjohn/andromeda/internal/jdg"
	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/signature"
	"github.com/zzmjohn/andromeda/internal/syntax"
	"github.com/zzmjohn/andromeda/internal/tt"
)

// Config holds the driver's ambient settings: the verbosity flag and
// startup-file/interactive-mode switches spec.md §6 asks the CLI for.
type Config struct {
	Verbose      int
	StartupFiles []string
	Interactive  bool
}

// Driver sequences top-level items against one session.
type Driver struct {
	State  *eval.State
	Env    *runtime.Env
	Config Config
}

// New creates a driver with a fresh session (the five predefined
// operations already registered by eval.NewState).
func New(cfg Config) (*Driver, error) {
	st, err := eval.NewState()
	if err != nil {
		return nil, err
	}
	return &Driver{State: st, Env: runtime.NewEnv(), Config: cfg}, nil
}

// Outcome is one item's processed result, for the CLI/REPL to render.
// Report is nil on silent success.
type Outcome struct {
	Report *diag.Report
	Fatal  bool
}

func identity(v runtime.Value) (runtime.Value, error) { return v, nil }

// Run processes items in order against the driver's persistent
// environment, stopping at the first fatal error (spec.md §7: fatal
// errors abort the process). The returned slice always has one
// Outcome per item processed, including the one that aborted.
func (d *Driver) Run(items []syntax.TopLevel) ([]Outcome, error) {
	out := make([]Outcome, 0, len(items))
	for _, item := range items {
		oc, err := d.runItem(item)
		out = append(out, oc)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (d *Driver) runItem(item syntax.TopLevel) (Outcome, error) {
	switch n := item.(type) {
	case *syntax.TopLet:
		v, err := d.State.EvalComp(n.C, d.Env, nil, identity)
		if err != nil {
			return d.classify(err, n.Loc)
		}
		d.Env = d.Env.Extend(n.Name, v)
		return Outcome{}, nil

	case *syntax.TopLetRec:
		placeholders := make(map[string]runtime.Value, len(n.Clauses))
		for _, cl := range n.Clauses {
			placeholders[cl.Name] = &runtime.Tag{Name: "<blackhole>"}
		}
		recEnv := d.Env.ExtendAll(placeholders)
		for _, cl := range n.Clauses {
			v, err := d.State.EvalComp(cl.E, recEnv, nil, identity)
			if err != nil {
				return d.classify(err, n.Loc)
			}
			placeholders[cl.Name] = v
		}
		d.Env = recEnv
		return Outcome{}, nil

	case *syntax.TopDo:
		_, err := d.State.EvalComp(n.C, d.Env, nil, identity)
		if err != nil {
			return d.classify(err, n.Loc)
		}
		return Outcome{}, nil

	case *syntax.TopFail:
		return d.runTopFail(n)

	case *syntax.TopDynamic:
		v, err := d.State.EvalExpr(n.E, d.Env)
		if err != nil {
			return d.classify(err, n.Loc)
		}
		dv := d.State.DeclareDynamic(n.Name, v)
		if err := d.State.Sgn.Declare(n.Name, signature.Dynamic{CellID: dv.CellID}); err != nil {
			return d.classify(err, n.Loc)
		}
		return Outcome{}, nil

	case *syntax.TopNow:
		dyn, ok := d.State.LookupDynamic(n.D)
		if !ok {
			return d.classify(fmt.Errorf("toplevel: undeclared dynamic %q", n.D), n.Loc)
		}
		v, err := d.State.EvalExpr(n.E, d.Env)
		if err != nil {
			return d.classify(err, n.Loc)
		}
		d.State.SetDynamicDefault(dyn, v)
		return Outcome{}, nil

	case *syntax.DeclOperation:
		if err := d.State.Sgn.Declare(n.Name, signature.MLOperation{Arity: n.Arity, Doc: n.Doc}); err != nil {
			return d.classify(err, n.Loc)
		}
		d.State.Ctx.Grant(n.Name)
		return Outcome{}, nil

	case *syntax.DeclConstant:
		return d.runDeclConstant(n)

	case *syntax.DeclRule:
		return d.runDeclRule(n)

	default:
		return d.classify(fmt.Errorf("toplevel: unknown top-level item %T", item), tt.Loc{})
	}
}

// runTopFail expects C to raise a recoverable error; silent success is
// itself reported, and a fatal error is never caught here — it
// propagates past this frame exactly like spec.md §7 requires.
func (d *Driver) runTopFail(n *syntax.TopFail) (Outcome, error) {
	_, err := d.State.EvalComp(n.C, d.Env, nil, identity)
	if err == nil {
		rep := diag.Report{Message: "expected the computation to raise an error, but it succeeded", Loc: n.Loc, Recoverable: true}
		return Outcome{Report: &rep}, nil
	}
	if diag.IsFatal(err) {
		rep := diag.ClassifyAndWrap(err, n.Loc).Report
		return Outcome{Report: &rep, Fatal: true}, err
	}
	return Outcome{}, nil
}

func (d *Driver) runDeclConstant(n *syntax.DeclConstant) (Outcome, error) {
	tv, err := d.State.EvalComp(n.TyComp, d.Env, nil, identity)
	if err != nil {
		return d.classify(err, n.Loc)
	}
	j, ok := judgementOf(tv)
	if !ok {
		return d.classify(fmt.Errorf("toplevel: constant %q's type computation did not produce a judgement", n.Name), n.Loc)
	}
	isTy, ok := j.(jdg.IsType)
	if !ok {
		return d.classify(fmt.Errorf("toplevel: constant %q's type computation did not produce an IsType judgement", n.Name), n.Loc)
	}
	ty := jdg.InvertIsType(isTy)
	if err := d.State.Sgn.Declare(n.Name, signature.Constant{Ty: ty}); err != nil {
		return d.classify(err, n.Loc)
	}
	return Outcome{}, nil
}

// runDeclRule builds the signature.Rule closure: at each use site the
// kernel supplies the actual premise judgements, which Build binds
// under Params' names before evaluating Conclusion.
func (d *Driver) runDeclRule(n *syntax.DeclRule) (Outcome, error) {
	premiseKinds := make([]signature.PremiseKind, len(n.Params))
	for i, p := range n.Params {
		premiseKinds[i] = premiseKindOf(p.Form)
	}
	env := d.Env
	build := func(premises []jdg.Judgement) (jdg.Judgement, error) {
		if len(premises) != len(n.Params) {
			return nil, fmt.Errorf("rule %q: expected %d premises, got %d", n.Name, len(n.Params), len(premises))
		}
		bindings := make(map[string]runtime.Value, len(n.Params))
		for i, p := range n.Params {
			bindings[p.Name] = &runtime.Judgement{J: premises[i]}
		}
		v, err := d.State.EvalComp(n.Conclusion, env.ExtendAll(bindings), nil, identity)
		if err != nil {
			return nil, err
		}
		j, ok := judgementOf(v)
		if !ok {
			return nil, fmt.Errorf("rule %q: conclusion did not produce a judgement", n.Name)
		}
		return j, nil
	}
	if err := d.State.Sgn.Declare(n.Name, signature.Rule{Premises: premiseKinds, Build: build}); err != nil {
		return d.classify(err, n.Loc)
	}
	return Outcome{}, nil
}

func premiseKindOf(f syntax.JudgementForm) signature.PremiseKind {
	switch f {
	case syntax.FormIsType:
		return signature.PremiseIsType
	case syntax.FormEqType:
		return signature.PremiseEqType
	case syntax.FormEqTerm:
		return signature.PremiseEqTerm
	default:
		return signature.PremiseIsTerm
	}
}

func judgementOf(v runtime.Value) (jdg.Judgement, bool) {
	j, ok := v.(*runtime.Judgement)
	if !ok {
		return nil, false
	}
	return j.J, true
}

// classify turns err into an Outcome, marking it Fatal (and returning
// it as the error so Run stops) when diag.IsFatal says so.
func (d *Driver) classify(err error, loc tt.Loc) (Outcome, error) {
	rep := diag.ClassifyAndWrap(err, loc).Report
	if diag.IsFatal(err) {
		return Outcome{Report: &rep, Fatal: true}, err
	}
	return Outcome{Report: &rep}, nil
}
