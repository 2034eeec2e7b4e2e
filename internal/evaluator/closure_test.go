package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// Property 7 (§8): `let x = 1 in let f = fn () -> x in let x = 2 in f()`
// evaluates to 1 — a closure snapshots the environment as of its
// construction, not as of its call.
func TestClosureCaptureSnapshot(t *testing.T) {
	src := "let x = 1 in let f = fn () -> x in let x = 2 in f()\n"
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)

	ev := New()
	result, err := ev.EvalProgram(prog)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 1}, result)
}

func TestCurriedClosureCapturesOuterParameter(t *testing.T) {
	src := `let make_adder = fn (n) -> fn (x) -> x + n
let add5 = make_adder(5)
add5(10)
`
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)

	ev := New()
	result, err := ev.EvalProgram(prog)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 15}, result)
}

// §9's redesign note: a recursive closure's captured Env must never
// already resolve its own name to itself — the self-reference is
// supplied fresh per call by apply.go's `inner.Set(f.SelfName, f)`, not
// baked into the closure's persistent Env at construction time. This
// checks that property directly, rather than only checking the
// factorial result (which would pass even if evalLetDecl pre-bound a
// cyclic reference, since apply.go's call-time rebind would mask it).
func TestRecursiveClosureSelfReferenceDoesNotCreateACycle(t *testing.T) {
	src := "let rec fact = fn (n) -> if n <= 1 then 1 else n * fact(n - 1)\n"
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)

	ev := New()
	_, err := ev.EvalProgram(prog)
	require.NoError(t, err)

	v, ok := ev.Globals.Get("fact")
	require.True(t, ok)
	c, ok := v.(*value.Closure)
	require.True(t, ok)
	require.Equal(t, "fact", c.SelfName)

	if bound, found := c.Env.Get("fact"); found {
		require.NotSame(t, c, bound, "closure's captured Env must not already resolve its own name to itself")
	}

	result, err := ev.apply(c, []value.Value{value.Int{Value: 10}}, nil)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 3628800}, result)
}

// The same property holds for a local `let rec name = ... in body`
// binding (evalLetIn), whose fix is symmetric with evalLetDecl's.
func TestLocalLetRecSelfReferenceDoesNotCreateACycle(t *testing.T) {
	src := "let rec fact = fn (n) -> if n <= 1 then 1 else n * fact(n - 1) in fact(6)\n"
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)

	ev := New()
	result, err := ev.EvalProgram(prog)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 720}, result)
}
