package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/syntax"
)

func identity(v runtime.Value) (runtime.Value, error) { return v, nil }

// TestLetSequencesBindings checks that Let extends the environment
// with each binding before the next is evaluated, matching spec.md
// §4.3's sequential-scoping rule.
func TestLetSequencesBindings(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	// let x = return 1 in let y = return x in return y
	prog := &syntax.Let{
		Bindings: []syntax.Binding{
			{Name: "x", E: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1}}},
		},
		Body: &syntax.Let{
			Bindings: []syntax.Binding{
				{Name: "y", E: &syntax.Return{E: &syntax.Var{Name: "x"}}},
			},
			Body: &syntax.Return{E: &syntax.Var{Name: "y"}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), i.Value)
}

// TestApplyRunsClosureBody checks that applying a Function value runs
// its Body against an environment extended by matching Param, the
// evaluator's β-reduction.
func TestApplyRunsClosureBody(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	fn := &syntax.Function{
		Param: &syntax.PVar{Name: "n"},
		Body:  &syntax.Return{E: &syntax.Var{Name: "n"}},
	}
	prog := &syntax.Let{
		Bindings: []syntax.Binding{
			{Name: "f", E: &syntax.Return{E: fn}},
		},
		Body: &syntax.Apply{
			Fn:  &syntax.Var{Name: "f"},
			Arg: &syntax.Lit{Kind: syntax.LitInt, Ival: 7},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(7), i.Value)
}

// TestMatchTriesCasesInOrder checks linear pattern matching: the
// first case whose pattern matches wins, even when a later case would
// also match.
func TestMatchTriesCasesInOrder(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Match{
		Scrutinee: &syntax.TagExpr{Name: "Some", Args: []syntax.Expr{&syntax.Lit{Kind: syntax.LitInt, Ival: 9}}},
		Cases: []syntax.MatchCase{
			{Pattern: &syntax.PTag{Name: "Some", Args: []syntax.Patt{&syntax.PVar{Name: "x"}}},
				Body: &syntax.Return{E: &syntax.Var{Name: "x"}}},
			{Pattern: &syntax.PWildcard{}, Body: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: -1}}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(9), i.Value)
}

// TestMatchFallsThroughToWildcard checks that a non-matching first
// case is skipped rather than aborting the match.
func TestMatchFallsThroughToWildcard(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Match{
		Scrutinee: &syntax.TagExpr{Name: "None"},
		Cases: []syntax.MatchCase{
			{Pattern: &syntax.PTag{Name: "Some", Args: []syntax.Patt{&syntax.PVar{Name: "x"}}},
				Body: &syntax.Return{E: &syntax.Var{Name: "x"}}},
			{Pattern: &syntax.PWildcard{}, Body: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: -1}}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(-1), i.Value)
}

// TestMatchWithNoCaseMatchesErrors checks that an unmatched scrutinee
// produces an error rather than silently returning a zero value.
func TestMatchWithNoCaseMatchesErrors(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Match{
		Scrutinee: &syntax.TagExpr{Name: "None"},
		Cases: []syntax.MatchCase{
			{Pattern: &syntax.PTag{Name: "Some", Args: []syntax.Patt{&syntax.PVar{Name: "x"}}},
				Body: &syntax.Return{E: &syntax.Var{Name: "x"}}},
		},
	}

	_, err = st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	assert.Error(t, err)
}

// TestRefLookupUpdate checks the reference cell trio round-trips a
// written value.
func TestRefLookupUpdate(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Let{
		Bindings: []syntax.Binding{
			{Name: "r", E: &syntax.Ref{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1}}},
		},
		Body: &syntax.Sequence{
			C1: &syntax.Update{R: &syntax.Var{Name: "r"}, E: &syntax.Lit{Kind: syntax.LitInt, Ival: 2}},
			C2: &syntax.Lookup{R: &syntax.Var{Name: "r"}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(2), i.Value)
}
