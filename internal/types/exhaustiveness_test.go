package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/parser"
)

// Property 8 (§8): for a Bool or ADT scrutinee, checkExhaustiveness warns
// iff neither every constructor/value is covered nor a catch-all is
// present.
func infer(t *testing.T, src string) []string {
	t.Helper()
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)
	inf := NewInferencer()
	_, infDiags := inf.InferProgram(prog, inf.Prelude())
	var codes []string
	for _, d := range infDiags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestExhaustivenessBoolMissingArmWarns(t *testing.T) {
	src := "let b = true\nmatch b with | true -> 1\n"
	require.Contains(t, infer(t, src), "T099")
}

func TestExhaustivenessBoolBothArmsIsSilent(t *testing.T) {
	src := "let b = true\nmatch b with | true -> 1 | false -> 0\n"
	require.NotContains(t, infer(t, src), "T099")
}

func TestExhaustivenessCatchAllSilencesBool(t *testing.T) {
	src := "let b = true\nmatch b with | _ -> 1\n"
	require.NotContains(t, infer(t, src), "T099")
}

func TestExhaustivenessAdtMissingConstructorWarns(t *testing.T) {
	src := `type Shape = Circle Int | Rectangle Int Int
let area = fn (s) -> match s with | Circle(r) -> r * r * 3
area(Circle(2))
`
	require.Contains(t, infer(t, src), "T099")
}

func TestExhaustivenessAdtAllConstructorsIsSilent(t *testing.T) {
	src := `type Shape = Circle Int | Rectangle Int Int
let area = fn (s) -> match s with | Circle(r) -> r * r * 3 | Rectangle(w, h) -> w * h
area(Rectangle(4, 5))
`
	require.NotContains(t, infer(t, src), "T099")
}

func TestExhaustivenessListMissingConsCaseWarns(t *testing.T) {
	src := "let xs = [1, 2, 3]\nmatch xs with | [] -> 0\n"
	require.Contains(t, infer(t, src), "T099")
}

func TestExhaustivenessListEmptyAndConsIsSilent(t *testing.T) {
	src := "let xs = [1, 2, 3]\nmatch xs with | [] -> 0 | head :: tail -> head\n"
	require.NotContains(t, infer(t, src), "T099")
}
