// Package surface decodes the desugared-program interchange format:
// a YAML document representing a []syntax.TopLevel, one `kind:`
// discriminator tag per node matched against a small registry of
// constructors, grounded on the teacher's internal/eval_harness/spec.go
// (itself a YAML-driven spec reader) — generalized here from a flat
// struct to a recursive tagged tree since syntax.Comp/Expr/Patt nest.
package surface

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zzmjohn/andromeda/internal/syntax"
)

// LoadFile reads and decodes a program from path.
func LoadFile(path string) ([]syntax.TopLevel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("surface: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a YAML document into a program: a top-level sequence
// of tagged nodes.
func Decode(data []byte) ([]syntax.TopLevel, error) {
	var raw []yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	out := make([]syntax.TopLevel, len(raw))
	for i := range raw {
		t, err := decodeTopLevel(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("surface: item %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// tagged is the common shape every node in the interchange format has:
// a `kind` discriminator plus whatever fields that kind needs, decoded
// a second time into a kind-specific struct.
type tagged struct {
	Kind string `yaml:"kind"`
}

func decodeTopLevel(n *yaml.Node) (syntax.TopLevel, error) {
	var t tagged
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "let":
		var v struct {
			Name string    `yaml:"name"`
			C    yaml.Node `yaml:"comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		return &syntax.TopLet{Name: v.Name, C: c}, nil

	case "letrec":
		var v struct {
			Clauses []struct {
				Name string    `yaml:"name"`
				C    yaml.Node `yaml:"comp"`
			} `yaml:"clauses"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		clauses := make([]syntax.RecClause, len(v.Clauses))
		for i, c := range v.Clauses {
			comp, err := decodeComp(&c.C)
			if err != nil {
				return nil, err
			}
			clauses[i] = syntax.RecClause{Name: c.Name, E: comp}
		}
		return &syntax.TopLetRec{Clauses: clauses}, nil

	case "do":
		var v struct {
			C yaml.Node `yaml:"comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		return &syntax.TopDo{C: c}, nil

	case "fail":
		var v struct {
			C yaml.Node `yaml:"comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		return &syntax.TopFail{C: c}, nil

	case "dynamic":
		var v struct {
			Name string    `yaml:"name"`
			E    yaml.Node `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.TopDynamic{Name: v.Name, E: e}, nil

	case "now":
		var v struct {
			D string    `yaml:"dynamic"`
			E yaml.Node  `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.TopNow{D: v.D, E: e}, nil

	case "decl_operation":
		var v struct {
			Name  string `yaml:"name"`
			Arity int    `yaml:"arity"`
			Doc   string `yaml:"doc"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.DeclOperation{Name: v.Name, Arity: v.Arity, Doc: v.Doc}, nil

	case "decl_constant":
		var v struct {
			Name   string    `yaml:"name"`
			TyComp yaml.Node `yaml:"type_comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		tc, err := decodeComp(&v.TyComp)
		if err != nil {
			return nil, err
		}
		return &syntax.DeclConstant{Name: v.Name, TyComp: tc}, nil

	case "decl_rule":
		var v struct {
			Name   string `yaml:"name"`
			Params []struct {
				Name string `yaml:"name"`
				Form string `yaml:"form"`
			} `yaml:"params"`
			Conclusion yaml.Node `yaml:"conclusion"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		params := make([]syntax.RuleParam, len(v.Params))
		for i, p := range v.Params {
			form, err := decodeJudgementForm(p.Form)
			if err != nil {
				return nil, err
			}
			params[i] = syntax.RuleParam{Name: p.Name, Form: form}
		}
		concl, err := decodeComp(&v.Conclusion)
		if err != nil {
			return nil, err
		}
		return &syntax.DeclRule{Name: v.Name, Params: params, Conclusion: concl}, nil

	default:
		return nil, fmt.Errorf("unknown top-level kind %q", t.Kind)
	}
}

func decodeJudgementForm(s string) (syntax.JudgementForm, error) {
	switch s {
	case "is_type":
		return syntax.FormIsType, nil
	case "is_term":
		return syntax.FormIsTerm, nil
	case "eq_type":
		return syntax.FormEqType, nil
	case "eq_term":
		return syntax.FormEqTerm, nil
	default:
		return 0, fmt.Errorf("unknown judgement form %q", s)
	}
}

func decodeComp(n *yaml.Node) (syntax.Comp, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	var t tagged
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "return":
		var v struct {
			E yaml.Node `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.Return{E: e}, nil

	case "let":
		var v struct {
			Bindings []struct {
				Name string    `yaml:"name"`
				C    yaml.Node `yaml:"comp"`
			} `yaml:"bindings"`
			Body yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		bindings := make([]syntax.Binding, len(v.Bindings))
		for i, b := range v.Bindings {
			c, err := decodeComp(&b.C)
			if err != nil {
				return nil, err
			}
			bindings[i] = syntax.Binding{Name: b.Name, E: c}
		}
		body, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.Let{Bindings: bindings, Body: body}, nil

	case "letrec":
		var v struct {
			Clauses []struct {
				Name string    `yaml:"name"`
				C    yaml.Node `yaml:"comp"`
			} `yaml:"clauses"`
			Body yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		clauses := make([]syntax.RecClause, len(v.Clauses))
		for i, c := range v.Clauses {
			comp, err := decodeComp(&c.C)
			if err != nil {
				return nil, err
			}
			clauses[i] = syntax.RecClause{Name: c.Name, E: comp}
		}
		body, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.LetRec{Clauses: clauses, Body: body}, nil

	case "match":
		var v struct {
			Scrutinee yaml.Node `yaml:"scrutinee"`
			Cases     []struct {
				Pattern yaml.Node `yaml:"pattern"`
				Body    yaml.Node `yaml:"body"`
			} `yaml:"cases"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		scrut, err := decodeExpr(&v.Scrutinee)
		if err != nil {
			return nil, err
		}
		cases := make([]syntax.MatchCase, len(v.Cases))
		for i, c := range v.Cases {
			p, err := decodePatt(&c.Pattern)
			if err != nil {
				return nil, err
			}
			b, err := decodeComp(&c.Body)
			if err != nil {
				return nil, err
			}
			cases[i] = syntax.MatchCase{Pattern: p, Body: b}
		}
		return &syntax.Match{Scrutinee: scrut, Cases: cases}, nil

	case "operation":
		var v struct {
			Op   string      `yaml:"op"`
			Args []yaml.Node `yaml:"args"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		args, err := decodeExprList(v.Args)
		if err != nil {
			return nil, err
		}
		return &syntax.Operation{Op: v.Op, Args: args}, nil

	case "with":
		var v struct {
			Handler yaml.Node `yaml:"handler"`
			Body    yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		h, err := decodeExpr(&v.Handler)
		if err != nil {
			return nil, err
		}
		b, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.With{Handler: h, Body: b}, nil

	case "yield":
		var v struct {
			E yaml.Node `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.Yield{E: e}, nil

	case "ref":
		var v struct {
			E yaml.Node `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.Ref{E: e}, nil

	case "lookup":
		var v struct {
			R yaml.Node `yaml:"ref"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		r, err := decodeExpr(&v.R)
		if err != nil {
			return nil, err
		}
		return &syntax.Lookup{R: r}, nil

	case "update":
		var v struct {
			R yaml.Node `yaml:"ref"`
			E yaml.Node `yaml:"expr"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		r, err := decodeExpr(&v.R)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		return &syntax.Update{R: r, E: e}, nil

	case "now":
		var v struct {
			D    string    `yaml:"dynamic"`
			E    yaml.Node  `yaml:"expr"`
			Body yaml.Node  `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(&v.E)
		if err != nil {
			return nil, err
		}
		b, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.Now{D: v.D, E: e, Body: b}, nil

	case "current":
		var v struct {
			D string `yaml:"dynamic"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.Current{D: v.D}, nil

	case "ascribe":
		var v struct {
			C     yaml.Node `yaml:"comp"`
			TComp yaml.Node `yaml:"type_comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		tc, err := decodeComp(&v.TComp)
		if err != nil {
			return nil, err
		}
		return &syntax.Ascribe{C: c, TComp: tc}, nil

	case "abstract":
		var v struct {
			Xs   []string  `yaml:"vars"`
			Body yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		b, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.Abstract{Xs: v.Xs, Body: b}, nil

	case "substitute":
		var v struct {
			C  yaml.Node   `yaml:"comp"`
			Cs []yaml.Node `yaml:"args"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		cs := make([]syntax.Comp, len(v.Cs))
		for i := range v.Cs {
			cc, err := decodeComp(&v.Cs[i])
			if err != nil {
				return nil, err
			}
			cs[i] = cc
		}
		return &syntax.Substitute{C: c, Cs: cs}, nil

	case "apply":
		var v struct {
			Fn  yaml.Node `yaml:"fn"`
			Arg yaml.Node `yaml:"arg"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(&v.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := decodeExpr(&v.Arg)
		if err != nil {
			return nil, err
		}
		return &syntax.Apply{Fn: fn, Arg: arg}, nil

	case "sequence":
		var v struct {
			C1 yaml.Node `yaml:"first"`
			C2 yaml.Node `yaml:"second"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c1, err := decodeComp(&v.C1)
		if err != nil {
			return nil, err
		}
		c2, err := decodeComp(&v.C2)
		if err != nil {
			return nil, err
		}
		return &syntax.Sequence{C1: c1, C2: c2}, nil

	default:
		return nil, fmt.Errorf("unknown comp kind %q", t.Kind)
	}
}

func decodeExprList(ns []yaml.Node) ([]syntax.Expr, error) {
	out := make([]syntax.Expr, len(ns))
	for i := range ns {
		e, err := decodeExpr(&ns[i])
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeExpr(n *yaml.Node) (syntax.Expr, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	var t tagged
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "var":
		var v struct {
			Name string `yaml:"name"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.Var{Name: v.Name}, nil

	case "lit_string":
		var v struct {
			Value string `yaml:"value"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.Lit{Kind: syntax.LitString, Sval: v.Value}, nil

	case "lit_int":
		var v struct {
			Value int64 `yaml:"value"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.Lit{Kind: syntax.LitInt, Ival: v.Value}, nil

	case "function":
		var v struct {
			Param yaml.Node `yaml:"param"`
			Body  yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		p, err := decodePatt(&v.Param)
		if err != nil {
			return nil, err
		}
		b, err := decodeComp(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.Function{Param: p, Body: b}, nil

	case "tag":
		var v struct {
			Name string      `yaml:"name"`
			Args []yaml.Node `yaml:"args"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		args, err := decodeExprList(v.Args)
		if err != nil {
			return nil, err
		}
		return &syntax.TagExpr{Name: v.Name, Args: args}, nil

	case "tuple":
		var v struct {
			Elems []yaml.Node `yaml:"elems"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		elems, err := decodeExprList(v.Elems)
		if err != nil {
			return nil, err
		}
		return &syntax.TupleExpr{Elems: elems}, nil

	case "list":
		var v struct {
			Elems []yaml.Node `yaml:"elems"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		elems, err := decodeExprList(v.Elems)
		if err != nil {
			return nil, err
		}
		return &syntax.ListExpr{Elems: elems}, nil

	case "handler":
		return decodeHandler(n)

	case "run":
		var v struct {
			C yaml.Node `yaml:"comp"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		c, err := decodeComp(&v.C)
		if err != nil {
			return nil, err
		}
		return &syntax.RunComp{C: c}, nil

	default:
		return nil, fmt.Errorf("unknown expr kind %q", t.Kind)
	}
}

func decodeHandler(n *yaml.Node) (syntax.Expr, error) {
	var v struct {
		OnValue *struct {
			Pattern yaml.Node `yaml:"pattern"`
			Body    yaml.Node `yaml:"body"`
		} `yaml:"on_value"`
		OnOps []struct {
			Op   string      `yaml:"op"`
			Args []yaml.Node `yaml:"args"`
			Kont string      `yaml:"kont"`
			Body yaml.Node   `yaml:"body"`
		} `yaml:"on_ops"`
		OnFinally yaml.Node `yaml:"on_finally"`
	}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	h := &syntax.HandlerExpr{}
	if v.OnValue != nil {
		p, err := decodePatt(&v.OnValue.Pattern)
		if err != nil {
			return nil, err
		}
		b, err := decodeComp(&v.OnValue.Body)
		if err != nil {
			return nil, err
		}
		h.OnValue = &syntax.MatchCase{Pattern: p, Body: b}
	}
	for _, oc := range v.OnOps {
		args, err := decodePattList(oc.Args)
		if err != nil {
			return nil, err
		}
		body, err := decodeComp(&oc.Body)
		if err != nil {
			return nil, err
		}
		h.OnOps = append(h.OnOps, syntax.OpClause{Op: oc.Op, Args: args, Kont: oc.Kont, Body: body})
	}
	if v.OnFinally.Kind != 0 {
		fc, err := decodeComp(&v.OnFinally)
		if err != nil {
			return nil, err
		}
		h.OnFinally = fc
	}
	return h, nil
}

func decodePattList(ns []yaml.Node) ([]syntax.Patt, error) {
	out := make([]syntax.Patt, len(ns))
	for i := range ns {
		p, err := decodePatt(&ns[i])
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func decodeTypePatt(n *yaml.Node) (syntax.TypePatt, error) {
	if n.Kind == 0 {
		return &syntax.TPAny{}, nil
	}
	var t tagged
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "any", "":
		return &syntax.TPAny{}, nil
	case "const":
		var v struct {
			Name string `yaml:"name"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.TPConst{Name: v.Name}, nil
	default:
		return nil, fmt.Errorf("unknown type-pattern kind %q", t.Kind)
	}
}

func decodeMeta(n *yaml.Node) (syntax.Meta, error) {
	var v struct {
		Name string    `yaml:"name"`
		Form string    `yaml:"form"`
		Ty   yaml.Node `yaml:"type"`
	}
	if n.Kind == 0 {
		return syntax.Meta{}, nil
	}
	if err := n.Decode(&v); err != nil {
		return syntax.Meta{}, err
	}
	form, err := decodeJudgementForm(v.Form)
	if err != nil {
		return syntax.Meta{}, err
	}
	ty, err := decodeTypePatt(&v.Ty)
	if err != nil {
		return syntax.Meta{}, err
	}
	return syntax.Meta{Name: v.Name, Form: form, Ty: ty}, nil
}

func decodePatt(n *yaml.Node) (syntax.Patt, error) {
	var t tagged
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "var":
		var v struct {
			Name string `yaml:"name"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.PVar{Name: v.Name}, nil

	case "wildcard":
		return &syntax.PWildcard{}, nil

	case "tag":
		var v struct {
			Name string      `yaml:"name"`
			Args []yaml.Node `yaml:"args"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		args, err := decodePattList(v.Args)
		if err != nil {
			return nil, err
		}
		return &syntax.PTag{Name: v.Name, Args: args}, nil

	case "tuple":
		var v struct {
			Elems []yaml.Node `yaml:"elems"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		elems, err := decodePattList(v.Elems)
		if err != nil {
			return nil, err
		}
		return &syntax.PTuple{Elems: elems}, nil

	case "list":
		var v struct {
			Elems []yaml.Node `yaml:"elems"`
			Tail  *yaml.Node  `yaml:"tail"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		elems, err := decodePattList(v.Elems)
		if err != nil {
			return nil, err
		}
		pl := &syntax.PList{Elems: elems}
		if v.Tail != nil {
			tailP, err := decodePatt(v.Tail)
			if err != nil {
				return nil, err
			}
			pl.Tail = &tailP
		}
		return pl, nil

	case "as":
		var v struct {
			Name  string    `yaml:"name"`
			Inner yaml.Node `yaml:"inner"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		inner, err := decodePatt(&v.Inner)
		if err != nil {
			return nil, err
		}
		return &syntax.PAs{Name: v.Name, Inner: inner}, nil

	case "judgement":
		var v struct {
			Name string `yaml:"name"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return &syntax.PJudgement{Name: v.Name}, nil

	case "tt_is_type":
		var v struct {
			Ty yaml.Node `yaml:"ty"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		m, err := decodeMeta(&v.Ty)
		if err != nil {
			return nil, err
		}
		return &syntax.PTTIsType{Ty: m}, nil

	case "tt_is_term":
		var v struct {
			E  yaml.Node `yaml:"e"`
			Ty yaml.Node `yaml:"ty"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e, err := decodeMeta(&v.E)
		if err != nil {
			return nil, err
		}
		ty, err := decodeMeta(&v.Ty)
		if err != nil {
			return nil, err
		}
		return &syntax.PTTIsTerm{E: e, Ty: ty}, nil

	case "tt_eq_type":
		var v struct {
			T1 yaml.Node `yaml:"t1"`
			T2 yaml.Node `yaml:"t2"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		t1, err := decodeMeta(&v.T1)
		if err != nil {
			return nil, err
		}
		t2, err := decodeMeta(&v.T2)
		if err != nil {
			return nil, err
		}
		return &syntax.PTTEqType{T1: t1, T2: t2}, nil

	case "tt_eq_term":
		var v struct {
			E1 yaml.Node `yaml:"e1"`
			E2 yaml.Node `yaml:"e2"`
			Ty yaml.Node `yaml:"ty"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		e1, err := decodeMeta(&v.E1)
		if err != nil {
			return nil, err
		}
		e2, err := decodeMeta(&v.E2)
		if err != nil {
			return nil, err
		}
		ty, err := decodeMeta(&v.Ty)
		if err != nil {
			return nil, err
		}
		return &syntax.PTTEqTerm{E1: e1, E2: e2, Ty: ty}, nil

	case "tt_abstraction":
		var v struct {
			Xs   []string  `yaml:"vars"`
			Body yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		body, err := decodePatt(&v.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.PTTAbstraction{Xs: v.Xs, Body: body}, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", t.Kind)
	}
}
