package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/evaluator"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
)

// Property 4 (§8): for every closed program whose value type is primitive,
// list, tuple, record or ADT, the tree evaluator and the VM produce
// structurally equal results.
func TestBackEndsAgreeOnPrimitiveListTupleRecordAndAdtResults(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"factorial", "let rec fact = fn (n) -> if n <= 1 then 1 else n * fact(n - 1)\nfact(10)\n"},
		{"curried adder", "let make_adder = fn (n) -> fn (x) -> x + n\nlet add5 = make_adder(5)\nadd5(10)\n"},
		{
			"adt match",
			"type Shape = Circle Int | Rectangle Int Int\n" +
				"let area = fn (s) -> match s with | Circle(r) -> r * r * 3 | Rectangle(w, h) -> w * h\n" +
				"area(Rectangle(4, 5))\n",
		},
		{"map fold pipe", "[1, 2, 3, 4, 5] |> map(fn (x) -> x * x) |> fold(0, fn (acc, x) -> acc + x)\n"},
		{"string interpolation", "let name = \"world\"\n\"hello {name}\"\n"},
		{"list literal", "[1, 2, 3]\n"},
		{"tuple literal", "(1, \"two\", true)\n"},
		{"record literal", "{ a: 1, b: 2 }\n"},
		{"bare adt value", "type Option = None | Some Int\nSome(5)\n"},
		{"float arithmetic", "1.5 + 2.25\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, diags := parser.ParseSource(c.src, "")
			require.Empty(t, diags)

			treeResult, err := evaluator.New().EvalProgram(prog)
			require.NoError(t, err)

			compiled := NewCompiler()
			proto := compiled.CompileProgram(prog)
			require.Empty(t, compiled.Diagnostics())
			vmResult, err := New().Run(proto)
			require.NoError(t, err)

			if diff := cmp.Diff(treeResult, vmResult); diff != "" {
				t.Errorf("tree evaluator and VM disagree (-tree +vm):\n%s", diff)
			}
		})
	}
}

func TestBackEndsAgreeOnRuntimeFailureShape(t *testing.T) {
	src := "head([])\n"
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)

	_, treeErr := evaluator.New().EvalProgram(prog)
	require.Error(t, treeErr)

	compiled := NewCompiler()
	proto := compiled.CompileProgram(prog)
	require.Empty(t, compiled.Diagnostics())
	_, vmErr := New().Run(proto)
	require.Error(t, vmErr)
}
