package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzmjohn/andromeda/internal/runtime"
	"github.com/zzmjohn/andromeda/internal/syntax"
)

// TestNowRestoresOuterValueAfterBody checks spec.md §8 scenario 4:
// `now d = v in (now d = w in current d) ; current d` must read w
// from the inner now and v from the outer one. Under CPS, Now's pop
// must happen when its body's own continuation runs, not merely after
// EvalComp(n.Body, ...) returns — the continuation for the whole
// `now` expression is k, which embeds everything sequenced after it,
// and a naive push/EvalComp/pop would only pop once that entire rest
// of the program had already run inside the inner now's bracket.
func TestNowRestoresOuterValueAfterBody(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	env := runtime.NewEnv()
	dv := st.DeclareDynamic("d", &runtime.Int{Value: 0})

	prog := &syntax.Now{
		D: "d",
		E: &syntax.Lit{Kind: syntax.LitInt, Ival: 1},
		Body: &syntax.Sequence{
			C1: &syntax.Now{
				D:    "d",
				E:    &syntax.Lit{Kind: syntax.LitInt, Ival: 2},
				Body: &syntax.Current{D: "d"},
			},
			C2: &syntax.Current{D: "d"},
		},
	}

	v, err := st.EvalComp(prog, env, nil, identity)
	require.NoError(t, err)
	i, ok := v.(*runtime.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), i.Value, "outer current d must see the outer now's value, not the inner one's")

	cur, err := st.CurrentDynamic(dv)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur.(*runtime.Int).Value, "both now brackets must have popped by the time the whole computation completes")
}

// TestNowPopsOnErrorPath checks that a dynamic binding is popped even
// when the body raises an error, so a failed `now` doesn't leak its
// override into whatever runs after it.
func TestNowPopsOnErrorPath(t *testing.T) {
	st, err := NewState()
	require.NoError(t, err)

	env := runtime.NewEnv()
	dv := st.DeclareDynamic("d", &runtime.Int{Value: 0})

	prog := &syntax.Now{
		D:    "d",
		E:    &syntax.Lit{Kind: syntax.LitInt, Ival: 9},
		Body: &syntax.Operation{Op: "nonexistent_op", Args: nil},
	}

	_, err = st.EvalComp(prog, env, nil, identity)
	assert.Error(t, err)

	cur, err := st.CurrentDynamic(dv)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur.(*runtime.Int).Value)
}
