// Package syntax is the desugared computation AST: the already-
// structured tree this module works from instead of a surface grammar
// (see SPEC_FULL.md §1), mirroring the relationship the teacher's
// internal/core has to internal/ast — except here even the "concrete
// syntax" (package surface) is just this tree spelled out in YAML.
package syntax

import "github.com/zzmjohn/andromeda/internal/tt"

// Node carries a source location through to diagnostics, the
// computation-tree counterpart of package tt's Node.
type Node struct {
	Loc tt.Loc
}

func (n Node) Span() tt.Loc { return n.Loc }

// Comp is a computation: it may perform effects and must be run
// through the evaluator, never inlined where an Expr is expected.
type Comp interface {
	isComp()
}

// Expr is a pure expression: it evaluates to a Value in the current
// environment without suspending.
type Expr interface {
	isExpr()
}

// Return lifts a pure expression into a computation.
type Return struct {
	Node
	E Expr
}

func (*Return) isComp() {}

// Apply is function application: calling a closure runs its body, a
// Comp that may perform effects, so application is itself a
// computation rather than a pure expression — unlike the teacher's
// core.App, which stays an atomic-enough CoreExpr because ailang
// routes effects through a separate capability layer instead of
// through the value being applied.
type Apply struct {
	Node
	Fn  Expr
	Arg Expr
}

func (*Apply) isComp() {}

// Binding is one clause of a Let.
type Binding struct {
	Name string
	E    Comp
}

// Let evaluates Bindings sequentially, extending the environment with
// each before evaluating the next, then evaluates Body in the
// fully-extended environment.
type Let struct {
	Node
	Bindings []Binding
	Body     Comp
}

func (*Let) isComp() {}

// RecClause is one clause of a LetRec.
type RecClause struct {
	Name string
	E    Comp
}

// LetRec introduces mutually recursive closures.
type LetRec struct {
	Node
	Clauses []RecClause
	Body    Comp
}

func (*LetRec) isComp() {}

// MatchCase is one arm of a Match.
type MatchCase struct {
	Pattern Patt
	Body    Comp
}

// Match evaluates Scrutinee, then tries Cases in order; the first
// whose pattern matches binds its variables and evaluates its body.
type Match struct {
	Node
	Scrutinee Expr
	Cases     []MatchCase
}

func (*Match) isComp() {}

// Operation raises an effect, searching the handler stack top-down
// for the first on_op case matching Op.
type Operation struct {
	Node
	Op   string
	Args []Expr
}

func (*Operation) isComp() {}

// With pushes Handler for the dynamic extent of Body.
type With struct {
	Node
	Handler Expr
	Body    Comp
}

func (*With) isComp() {}

// Yield returns to an operation's caller from within a handler body,
// threading E's value as the continuation's result.
type Yield struct {
	Node
	E Expr
}

func (*Yield) isComp() {}

// Ref allocates a fresh mutable cell holding E's value.
type Ref struct {
	Node
	E Expr
}

func (*Ref) isComp() {}

// Lookup reads a reference cell.
type Lookup struct {
	Node
	R Expr
}

func (*Lookup) isComp() {}

// Update writes E into reference cell R.
type Update struct {
	Node
	R Expr
	E Expr
}

func (*Update) isComp() {}

// Now pushes D ↦ E for the dynamic extent of Body, popping on any
// exit (normal or error).
type Now struct {
	Node
	D    string
	E    Expr
	Body Comp
}

func (*Now) isComp() {}

// Current reads dynamic cell D's current value.
type Current struct {
	Node
	D string
}

func (*Current) isComp() {}

// Ascribe evaluates C in checking mode against the type obtained from
// TComp, reconciling any mismatch through the equality engine.
type Ascribe struct {
	Node
	C     Comp
	TComp Comp
}

func (*Ascribe) isComp() {}

// Abstract constructs a term-level abstraction over Xs, closing Body.
type Abstract struct {
	Node
	Xs   []string
	Body Comp
}

func (*Abstract) isComp() {}

// Substitute destructs a term-level abstraction C by instantiating it
// with Cs.
type Substitute struct {
	Node
	C  Comp
	Cs []Comp
}

func (*Substitute) isComp() {}

// Sequence evaluates C1, discards its value, then evaluates C2.
type Sequence struct {
	Node
	C1, C2 Comp
}

func (*Sequence) isComp() {}

// --- Expressions ---

// Var is a variable reference, resolved against the environment by
// name at evaluation time.
type Var struct {
	Node
	Name string
}

func (*Var) isExpr() {}

// LitKind distinguishes literal expression payloads.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
)

// Lit is a literal value.
type Lit struct {
	Node
	Kind  LitKind
	Sval  string
	Ival  int64
}

func (*Lit) isExpr() {}

// Function is a one-argument lambda: its single parameter is
// destructured by Param, so multi-argument functions are curried or
// expressed with a tuple pattern, matching the Comp's pattern-based
// binding forms.
type Function struct {
	Node
	Param Patt
	Body  Comp
}

func (*Function) isExpr() {}

// TagExpr constructs a tagged value, e.g. `Some(e)` / `NotCoercible`.
type TagExpr struct {
	Node
	Name string
	Args []Expr
}

func (*TagExpr) isExpr() {}

// TupleExpr constructs a tuple.
type TupleExpr struct {
	Node
	Elems []Expr
}

func (*TupleExpr) isExpr() {}

// ListExpr constructs a list.
type ListExpr struct {
	Node
	Elems []Expr
}

func (*ListExpr) isExpr() {}

// HandlerExpr builds a Handler record value: OnValue runs on the
// handled computation's normal return, OnOps holds one clause per
// intercepted operation name, OnFinally (optional, nil if absent)
// always runs on exit from the handled extent.
type HandlerExpr struct {
	Node
	OnValue   *MatchCase
	OnOps     []OpClause
	OnFinally Comp
}

func (*HandlerExpr) isExpr() {}

// OpClause is one on_op case of a handler: matching Operation's Op
// name, binding Args and the continuation name Kont in Body.
type OpClause struct {
	Op   string
	Args []Patt
	Kont string
	Body Comp
}

// RunComp embeds an already-built computation where an expression is
// expected, e.g. a thunked judgement constructor call appearing in
// argument position; it is never produced by surface syntax, only by
// desugaring, hence its presence directly in this already-desugared
// tree.
type RunComp struct {
	Node
	C Comp
}

func (*RunComp) isExpr() {}

// --- Patterns ---

// Patt is a pattern: either an ML pattern (Patt_*) or a TT pattern
// (Patt_TT_*), two syntactically disjoint classes per spec §6.
type Patt interface {
	isPatt()
}

// PVar binds the scrutinee to Name.
type PVar struct {
	Name string
}

func (*PVar) isPatt() {}

// PWildcard matches anything, binding nothing.
type PWildcard struct{}

func (*PWildcard) isPatt() {}

// PTag matches a tagged value by Name, binding its arguments against
// Args.
type PTag struct {
	Name string
	Args []Patt
}

func (*PTag) isPatt() {}

// PTuple matches a tuple element-wise.
type PTuple struct {
	Elems []Patt
}

func (*PTuple) isPatt() {}

// PList matches a list; Tail, if non-nil, binds the remainder after
// matching Elems, e.g. `[x, y, ...rest]`.
type PList struct {
	Elems []Patt
	Tail  *Patt
}

func (*PList) isPatt() {}

// PAs binds the whole scrutinee to Name in addition to matching Inner.
type PAs struct {
	Name  string
	Inner Patt
}

func (*PAs) isPatt() {}

// PJudgement matches any kernel judgement value without unpacking it,
// binding the whole judgement to Name — the untyped counterpart of
// the four Patt_TT_* forms below, used when the caller only needs to
// know "this is some judgement".
type PJudgement struct {
	Name string
}

func (*PJudgement) isPatt() {}

// JudgementForm selects which of the four judgement shapes a TT
// pattern unpacks.
type JudgementForm int

const (
	FormIsType JudgementForm = iota
	FormIsTerm
	FormEqType
	FormEqTerm
)

// TypePatt constrains a metavariable's expected type, matched
// structurally against the judgement's actual type before binding —
// `_` (TPAny) imposes no constraint.
type TypePatt interface {
	isTypePatt()
}

// TPAny matches any type, imposing no constraint.
type TPAny struct{}

func (*TPAny) isTypePatt() {}

// TPConst matches a type that is exactly the named constant.
type TPConst struct {
	Name string
}

func (*TPConst) isTypePatt() {}

// Meta is a metavariable occurrence `?X` at a given judgement form and
// type pattern: on match it binds both the matched subterm and its
// type into the environment, per spec §4.3.
type Meta struct {
	Name string
	Form JudgementForm
	Ty   TypePatt
}

// PTTIsType matches an IsType judgement, binding its Ty metavariable.
type PTTIsType struct {
	Ty Meta
}

func (*PTTIsType) isPatt() {}

// PTTIsTerm matches an IsTerm judgement, binding its E and Ty
// metavariables.
type PTTIsTerm struct {
	E  Meta
	Ty Meta
}

func (*PTTIsTerm) isPatt() {}

// PTTEqType matches an EqType judgement, binding T1, T2.
type PTTEqType struct {
	T1, T2 Meta
}

func (*PTTEqType) isPatt() {}

// PTTEqTerm matches an EqTerm judgement, binding E1, E2, Ty.
type PTTEqTerm struct {
	E1, E2, Ty Meta
}

func (*PTTEqTerm) isPatt() {}

// PTTAbstraction matches a term-level abstraction's parameter names
// and body as a judgement pattern, mirroring jdg.TermAbstraction.
type PTTAbstraction struct {
	Xs   []string
	Body Patt
}

func (*PTTAbstraction) isPatt() {}

// --- Top-level items ---

// TopLevel is one item in a desugared program, consumed in sequence
// by the toplevel driver (package toplevel).
type TopLevel interface {
	isTopLevel()
}

// TopLet runs C against the persistent environment, binding its
// result under Name for subsequent items.
type TopLet struct {
	Node
	Name string
	C    Comp
}

func (*TopLet) isTopLevel() {}

// TopLetRec is TopLet's mutually-recursive counterpart, at top level.
type TopLetRec struct {
	Node
	Clauses []RecClause
}

func (*TopLetRec) isTopLevel() {}

// TopDo runs C for effect, discarding its value.
type TopDo struct {
	Node
	C Comp
}

func (*TopDo) isTopLevel() {}

// TopFail runs C and expects it to raise a runtime error; silent
// success is itself reported as an error, and a Fatal error is never
// caught here (see package diag, package toplevel).
type TopFail struct {
	Node
	C Comp
}

func (*TopFail) isTopLevel() {}

// TopDynamic declares a new dynamic cell named Name with initial
// default E.
type TopDynamic struct {
	Node
	Name string
	E    Expr
}

func (*TopDynamic) isTopLevel() {}

// TopNow updates dynamic D's default value for subsequent items
// (distinct from the Now computation, which is block-scoped).
type TopNow struct {
	Node
	D string
	E Expr
}

func (*TopNow) isTopLevel() {}

// DeclOperation declares a named effect operation of the given arity.
type DeclOperation struct {
	Node
	Name  string
	Arity int
	Doc   string
}

func (*DeclOperation) isTopLevel() {}

// DeclConstant declares a global constant; TyComp is run once, at
// declaration time, to obtain its type.
type DeclConstant struct {
	Node
	Name   string
	TyComp Comp
}

func (*DeclConstant) isTopLevel() {}

// RuleParam is one premise of a DeclRule: Name binds that premise's
// judgement for Conclusion, Form records which judgement shape it
// must be.
type RuleParam struct {
	Name string
	Form JudgementForm
}

// DeclRule declares a user-extensible inference rule under Name: at
// elaboration time package toplevel evaluates Conclusion in an
// environment extended with one binding per Params entry (bound to
// the actual premise judgements supplied at each use site) to build
// the signature.Rule's Build closure.
type DeclRule struct {
	Node
	Name       string
	Params     []RuleParam
	Conclusion Comp
}

func (*DeclRule) isTopLevel() {}
