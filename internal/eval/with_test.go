package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/syntax"
)

// TestWithHandlesOperationAndResumes checks that raising "tick" inside
// a handled body is caught by the on_op clause, which resumes the
// operation by applying its bound continuation k to a value, and that
// value flows back out as the body's own result.
func TestWithHandlesOperationAndResumes(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)
	st.Ctx.Grant("tick")

	handler := &syntax.HandlerExpr{
		OnOps: []syntax.OpClause{
			{
				Op:   "tick",
				Args: []syntax.Patt{&syntax.PVar{Name: "n"}},
				Kont: "k",
				Body: &syntax.Apply{
					Fn:  &syntax.Var{Name: "k"},
					Arg: &syntax.Var{Name: "n"},
				},
			},
		},
	}
	prog := &syntax.Let{
		Bindings: []syntax.Binding{{Name: "h", E: &syntax.Return{E: handler}}},
		Body: &syntax.With{
			Handler: &syntax.Var{Name: "h"},
			Body:    &syntax.Operation{Op: "tick", Args: []syntax.Expr{&syntax.Lit{Kind: syntax.LitInt, Ival: 42}}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(42), i.Value)
}

// TestWithRequiresGrantedCapability checks that installing a handler
// for an ungranted operation name is rejected before its body ever
// runs, rather than silently intercepting an operation no declaration
// authorized it to handle.
func TestWithRequiresGrantedCapability(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)
	// deliberately not granted: st.Ctx.Grant("tick")

	handler := &syntax.HandlerExpr{
		OnOps: []syntax.OpClause{
			{Op: "tick", Args: nil, Kont: "k", Body: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 0}}},
		},
	}
	prog := &syntax.Let{
		Bindings: []syntax.Binding{{Name: "h", E: &syntax.Return{E: handler}}},
		Body: &syntax.With{
			Handler: &syntax.Var{Name: "h"},
			Body:    &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1}},
		},
	}

	_, err = st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	assert.Error(t, err)
}

// TestUnhandledOperationFallsBackToDefault checks that raising an
// operation with no enclosing handler, but a predefined default
// answer, uses that default rather than erroring — exercised here via
// coerce's NotCoercible default.
func TestUnhandledOperationFallsBackToDefault(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Operation{Op: "coerce", Args: []syntax.Expr{
		&syntax.TagExpr{Name: "dummy"},
		&syntax.TagExpr{Name: "dummy"},
	}}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	tag, ok := v.(*runtime.Tag)
	require.True(t, ok)
	assert.Equal(t, "NotCoercible", tag.Name)
}

// TestOnFinallyRunsOnNormalExit checks that on_finally fires when the
// handled body returns normally: its write to counter is visible
// afterwards.
func TestOnFinallyRunsOnNormalExit(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	prog := &syntax.Let{
		Bindings: []syntax.Binding{
			{Name: "counter", E: &syntax.Ref{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 0}}},
			{Name: "h", E: &syntax.Return{E: &syntax.HandlerExpr{
				OnFinally: &syntax.Update{R: &syntax.Var{Name: "counter"}, E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1}},
			}}},
		},
		Body: &syntax.Sequence{
			C1: &syntax.With{Handler: &syntax.Var{Name: "h"}, Body: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 99}}},
			C2: &syntax.Lookup{R: &syntax.Var{Name: "counter"}},
		},
	}

	v, err := st.EvalComp(prog, runtime.NewEnv(), nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), i.Value)
}
