package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/evaluator"
	"github.com/UmarbekFU/lyra-lang/internal/modules"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/types"
	"github.com/UmarbekFU/lyra-lang/internal/value"
	"github.com/UmarbekFU/lyra-lang/internal/vm"
)

// runTree and runCompiled assemble the same stage sequence cmd/lyra wires up,
// once per back end, so a golden case can assert both agree with the
// literal expected output from §8's "concrete end-to-end scenarios".
func runTree(t *testing.T, src string) (value.Value, *pipeline.Context) {
	t.Helper()
	back := &evaluator.Processor{}
	ctx := &pipeline.Context{Source: src}
	ctx = pipeline.New(parser.Processor{}, modules.Processor{}, types.Processor{}, back).Run(ctx)
	v, _ := back.Result.(value.Value)
	return v, ctx
}

func runCompiled(t *testing.T, src string) (value.Value, *pipeline.Context) {
	t.Helper()
	back := &vm.Processor{}
	ctx := &pipeline.Context{Source: src}
	ctx = pipeline.New(parser.Processor{}, modules.Processor{}, types.Processor{}, back).Run(ctx)
	v, _ := back.Result.(value.Value)
	return v, ctx
}

// The seven literal scenarios of §8, each checked against both back ends.
func TestGoldenFactorial(t *testing.T) {
	src := "let rec fact = fn (n) -> if n <= 1 then 1 else n * fact(n - 1)\nfact(10)\n"
	tree, ctx := runTree(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 3628800}, tree)

	compiled, ctx := runCompiled(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 3628800}, compiled)
}

func TestGoldenCurriedAdder(t *testing.T) {
	src := "let make_adder = fn (n) -> fn (x) -> x + n\nlet add5 = make_adder(5)\nadd5(10)\n"
	tree, ctx := runTree(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 15}, tree)

	compiled, ctx := runCompiled(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 15}, compiled)
}

func TestGoldenAdtShapeMatch(t *testing.T) {
	src := "type Shape = Circle Int | Rectangle Int Int\n" +
		"let area = fn (s) -> match s with | Circle(r) -> r * r * 3 | Rectangle(w, h) -> w * h\n" +
		"area(Rectangle(4, 5))\n"
	tree, ctx := runTree(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 20}, tree)

	compiled, ctx := runCompiled(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 20}, compiled)
}

func TestGoldenMapFoldPipeChain(t *testing.T) {
	src := "[1, 2, 3, 4, 5] |> map(fn (x) -> x * x) |> fold(0, fn (acc, x) -> acc + x)\n"
	tree, ctx := runTree(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 55}, tree)

	compiled, ctx := runCompiled(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 55}, compiled)
}

func TestGoldenStringInterpolation(t *testing.T) {
	src := "let name = \"world\"\n\"hello {name}\"\n"
	tree, ctx := runTree(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.String{Value: "hello world"}, tree)

	compiled, ctx := runCompiled(t, src)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.String{Value: "hello world"}, compiled)
}

func TestGoldenTypeFailureReportsExpectedAndFound(t *testing.T) {
	src := "1 + \"hello\"\n"
	_, ctx := runTree(t, src)
	require.True(t, ctx.HasErrors())

	var rendered []string
	for _, d := range ctx.Diagnostics {
		rendered = append(rendered, d.Render(src, false))
	}
	joined := strings.Join(rendered, "\n")
	require.Contains(t, joined, "type")
	require.True(t,
		strings.Contains(joined, "expected Int, found String") || strings.Contains(joined, "expected String, found Int"),
		"diagnostic should name both the expected and found type: %s", joined)
}

func TestGoldenCallingNonFunctionBindingIsAnError(t *testing.T) {
	src := "let to_strng = 1\nlet x = 2\nto_strng(x)\n"
	_, ctx := runTree(t, src)
	require.True(t, ctx.HasErrors())
}

// Scenario 7's actual suggestion path: the undefined reference must be to a
// name absent from scope (the prelude's own `to_string`), not a shadowed
// local, so that Levenshtein comparison runs against prelude candidates.
func TestGoldenSuggestsToStringForMisspelledReference(t *testing.T) {
	src := "to_strng(5)\n"
	_, ctx := runTree(t, src)
	require.True(t, ctx.HasErrors())

	var found bool
	for _, d := range ctx.Diagnostics {
		if strings.Contains(d.Render(src, false), "to_string") {
			found = true
		}
	}
	require.True(t, found, "diagnostic should mention to_string as the suggested correction")
}
