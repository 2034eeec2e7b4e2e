package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

func compileAndRun(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)
	c := NewCompiler()
	proto := c.CompileProgram(prog)
	require.Empty(t, c.Diagnostics())
	return New().Run(proto)
}

// Property 5 (§8): a self-recursive function with tail calls only runs to
// completion on inputs that require >=10,000 recursive calls without
// exceeding the 256-frame limit.
func TestTailCallReusesFrameBeyondTenThousandCalls(t *testing.T) {
	src := `let rec count_down = fn (n, acc) -> if n <= 0 then acc else count_down(n - 1, acc + 1)
count_down(50000, 0)
`
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 50000}, result)
}

func TestTailCallMutualRecursionReusesFrame(t *testing.T) {
	src := `let rec is_even = fn (n) -> if n <= 0 then true else is_odd(n - 1)
let rec is_odd = fn (n) -> if n <= 0 then false else is_even(n - 1)
is_even(20000)
`
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Bool{Value: true}, result)
}

// Non-tail (accumulator-less) recursion still pushes one frame per call, so
// it must hit the 256-frame limit long before 10,000 calls — distinguishing
// genuine tail-call reuse from an unbounded frame stack.
func TestNonTailRecursionExhaustsFrameLimit(t *testing.T) {
	src := `let rec sum_to = fn (n) -> if n <= 0 then 0 else n + sum_to(n - 1)
sum_to(10000)
`
	_, err := compileAndRun(t, src)
	require.Error(t, err)
}

func TestNonTailRecursionWithinFrameLimitSucceeds(t *testing.T) {
	src := `let rec sum_to = fn (n) -> if n <= 0 then 0 else n + sum_to(n - 1)
sum_to(100)
`
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 5050}, result)
}

// Property 6 (§8): at the end of compiling any expression the net stack
// effect is +1; at the end of compiling a non-trailing-expression
// declaration it is 0. Both are exercised indirectly here: a program with
// several non-trailing let/type declarations followed by a trailing bare
// expression must evaluate to exactly that expression's value, with no
// leftover operands corrupting the result (which a stack-discipline bug
// would manifest as either a wrong value or a runtime stack-underflow
// error).
func TestStackDisciplineAcrossManyNonTrailingDecls(t *testing.T) {
	src := `let a = 1
let b = 2
let c = 3
type Pair = MkPair Int Int
let d = MkPair(a, b)
let e = a + b + c
e
`
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 6}, result)
}

// A program ending in a non-expression declaration leaves the trailing
// OpUnit path net-zero, per §4.3 — the result is Unit, not whatever the
// last let's body happened to push.
func TestStackDisciplineProgramEndingInLetYieldsUnit(t *testing.T) {
	src := "let a = 1\nlet b = a + 1\n"
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Unit{}, result)
}

// A local `let rec ... in` binding resolves its self-reference through
// FunctionProto.SelfSlot (compileLetIn/compileLambdaNamed), not through an
// upvalue aliasing the outer local cell the finished closure is later
// stored into.
func TestLocalLetRecInResolvesSelfReferenceWithoutAliasingOuterSlot(t *testing.T) {
	src := "let rec fact = fn (n) -> if n <= 1 then 1 else n * fact(n - 1) in fact(10)\n"
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 3628800}, result)
}

// A closure nested two levels inside a local `let rec ... in` binding
// still reaches the recursive name: the inner lambda captures the outer
// lambda's SelfSlot local as an ordinary upvalue, which is only ever
// read, never the cell the outer closure overwrites itself into.
func TestLocalLetRecInNestedClosureReachesSelfSlotAsUpvalue(t *testing.T) {
	src := `let rec count_down = fn (n) -> if n <= 0 then 0 else (fn () -> count_down(n - 1))()
in count_down(5)
`
	result, err := compileAndRun(t, src)
	require.NoError(t, err)
	require.Equal(t, value.Int{Value: 0}, result)
}
