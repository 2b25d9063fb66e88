package toplevel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/syntax"
)

// TestTopLetBindsIntoSessionEnv checks that a TopLet's binding is
// visible to a later top-level item in the same Run call.
func TestTopLetBindsIntoSessionEnv(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	items := []syntax.TopLevel{
		&syntax.TopLet{Name: "x", C: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 5}}},
		&syntax.TopDo{C: &syntax.Return{E: &syntax.Var{Name: "x"}}},
	}

	outcomes, err := d.Run(items)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, oc := range outcomes {
		assert.Nil(t, oc.Report)
	}
	v, ok := d.Env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "5", v.String())
}

// TestTopFailReportsSilentSuccess checks that TopFail itself reports
// an error when the wrapped computation does not raise one.
func TestTopFailReportsSilentSuccess(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	items := []syntax.TopLevel{
		&syntax.TopFail{C: &syntax.Return{E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1}}},
	}
	outcomes, err := d.Run(items)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Report)
	assert.False(t, outcomes[0].Fatal)
}

// TestTopFailAcceptsRecoverableError checks that TopFail is silent
// (no Report) when the computation does raise an error.
func TestTopFailAcceptsRecoverableError(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	items := []syntax.TopLevel{
		&syntax.TopFail{C: &syntax.Operation{Op: "nonexistent_op", Args: nil}},
	}
	outcomes, err := d.Run(items)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0].Report)
}

// TestDeclOperationGrantsCapability checks that a declared operation
// can subsequently be handled by a With, exercising the
// declare-then-grant path runItem's DeclOperation case takes.
func TestDeclOperationGrantsCapability(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	items := []syntax.TopLevel{
		&syntax.DeclOperation{Name: "ping", Arity: 0, Doc: "test op"},
		&syntax.TopDo{C: &syntax.With{
			Handler: &syntax.HandlerExpr{
				OnOps: []syntax.OpClause{
					{Op: "ping", Kont: "k", Body: &syntax.Apply{
						Fn:  &syntax.Var{Name: "k"},
						Arg: &syntax.Lit{Kind: syntax.LitInt, Ival: 1},
					}},
				},
			},
			Body: &syntax.Operation{Op: "ping", Args: nil},
		}},
	}
	outcomes, err := d.Run(items)
	require.NoError(t, err)
	for _, oc := range outcomes {
		assert.Nil(t, oc.Report)
	}
}
