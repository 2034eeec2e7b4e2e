package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

func TestRunTreeWalkEvaluatesProgram(t *testing.T) {
	ctx := &pipeline.Context{Source: "let square = fn (x) -> x * x\nsquare(6)\n"}
	result, ctx := run(ctx, false)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 36}, result)
}

func TestRunVMEvaluatesProgram(t *testing.T) {
	ctx := &pipeline.Context{Source: "let square = fn (x) -> x * x\nsquare(6)\n"}
	result, ctx := run(ctx, true)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 36}, result)
}

func TestRunResolvesRelativeImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "math.L"), []byte("let double = fn (x) -> x * 2\n"), 0o644))
	main := filepath.Join(dir, "main.L")
	require.NoError(t, os.WriteFile(main, []byte("import \"math\"\ndouble(21)\n"), 0o644))

	src, err := os.ReadFile(main)
	require.NoError(t, err)
	ctx := &pipeline.Context{FilePath: main, Source: string(src)}
	result, ctx := run(ctx, false)
	require.False(t, ctx.HasErrors())
	require.Equal(t, value.Int{Value: 42}, result)
}

func TestRunReportsTypeError(t *testing.T) {
	ctx := &pipeline.Context{Source: "1 + \"a\"\n"}
	_, ctx = run(ctx, false)
	require.True(t, ctx.HasErrors())
}

func TestSoleExprDeclAcceptsBareExpression(t *testing.T) {
	prog, diags := parser.ParseSource("1 + 2\n", "")
	require.Empty(t, diags)
	ed, ok := soleExprDecl(prog)
	require.True(t, ok)
	require.NotNil(t, ed.Expr)
}

func TestSoleExprDeclRejectsMultipleDecls(t *testing.T) {
	prog, diags := parser.ParseSource("let x = 1\n2\n", "")
	require.Empty(t, diags)
	_, ok := soleExprDecl(prog)
	require.False(t, ok)
}
