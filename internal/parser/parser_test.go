package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)
	return prog
}

func TestParserLetDecl(t *testing.T) {
	prog := parseOK(t, "let x = 1\n")
	require.Len(t, prog.Decls, 1)
	let, ok := prog.Decls[0].(*ast.LetDecl)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)
	require.False(t, let.Recursive)
	lit, ok := let.Body.(*ast.IntLit)
	require.True(t, ok)
	require.Equal(t, int64(1), lit.Value)
}

func TestParserLetRecDecl(t *testing.T) {
	prog := parseOK(t, "let rec fact = fn (n) -> n\n")
	let := prog.Decls[0].(*ast.LetDecl)
	require.True(t, let.Recursive)
	require.Equal(t, "fact", let.Name)
}

func TestParserLambdaParamsAndBody(t *testing.T) {
	prog := parseOK(t, "let f = fn (a, b) -> a + b\n")
	let := prog.Decls[0].(*ast.LetDecl)
	lam, ok := let.Body.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
	require.Equal(t, "a", lam.Params[0].Name)
	require.Equal(t, "b", lam.Params[1].Name)
	bin, ok := lam.Body.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Add, bin.Op)
}

func TestParserApplicationIsParenthesizedPostfix(t *testing.T) {
	prog := parseOK(t, "f(1, 2)\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	app, ok := decl.Expr.(*ast.Apply)
	require.True(t, ok)
	require.Len(t, app.Args, 2)
	fn, ok := app.Fn.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "f", fn.Name)
}

func TestParserBinaryPrecedenceMulBeforeAdd(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	bin := decl.Expr.(*ast.Binary)
	require.Equal(t, ast.Add, bin.Op)
	_, leftIsLit := bin.Left.(*ast.IntLit)
	require.True(t, leftIsLit)
	rightMul, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.Mul, rightMul.Op)
}

func TestParserIfThenElse(t *testing.T) {
	prog := parseOK(t, "if true then 1 else 2\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	ifExpr := decl.Expr.(*ast.If)
	cond, ok := ifExpr.Cond.(*ast.BoolLit)
	require.True(t, ok)
	require.True(t, cond.Value)
}

func TestParserLetIn(t *testing.T) {
	prog := parseOK(t, "let x = 1 in x + 1\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	letIn := decl.Expr.(*ast.LetIn)
	require.Equal(t, "x", letIn.Name)
	_, bodyIsBinary := letIn.Body.(*ast.Binary)
	require.True(t, bodyIsBinary)
}

func TestParserMatchWithMultipleArms(t *testing.T) {
	src := "type Shape = Circle Int | Rectangle Int Int\n" +
		"match s with | Circle(r) -> r | Rectangle(w, h) -> w\n"
	prog, diags := parser.ParseSource(src, "")
	require.Empty(t, diags)
	decl := prog.Decls[1].(*ast.ExprDecl)
	m := decl.Expr.(*ast.Match)
	require.Len(t, m.Arms, 2)
}

func TestParserRecordLiteralUsesColonSeparator(t *testing.T) {
	prog := parseOK(t, "{ a: 1, b: 2 }\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	rec := decl.Expr.(*ast.RecordLit)
	require.Len(t, rec.Fields, 2)
	require.Equal(t, "a", rec.Fields[0].Name)
	require.Equal(t, "b", rec.Fields[1].Name)
}

func TestParserListAndTupleLiterals(t *testing.T) {
	prog := parseOK(t, "[1, 2, 3]\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	list := decl.Expr.(*ast.ListLit)
	require.Len(t, list.Elements, 3)

	prog2 := parseOK(t, "(1, true)\n")
	decl2 := prog2.Decls[0].(*ast.ExprDecl)
	tup := decl2.Expr.(*ast.TupleLit)
	require.Len(t, tup.Elements, 2)
}

func TestParserPipeOperator(t *testing.T) {
	prog := parseOK(t, "xs |> map(f)\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	pipe, ok := decl.Expr.(*ast.Pipe)
	require.True(t, ok)
	left, ok := pipe.Left.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "xs", left.Name)
}

func TestParserStringInterpolation(t *testing.T) {
	prog := parseOK(t, `"hello {name}"` + "\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	interp, ok := decl.Expr.(*ast.Interp)
	require.True(t, ok)
	require.Len(t, interp.Parts, 2)
	require.Equal(t, "hello ", interp.Parts[0].Literal)
	require.Nil(t, interp.Parts[0].Expr)
	require.NotNil(t, interp.Parts[1].Expr)
}

func TestParserTypeDeclVariants(t *testing.T) {
	prog := parseOK(t, "type Shape = Circle Int | Rectangle Int Int\n")
	decl, ok := prog.Decls[0].(*ast.TypeDecl)
	require.True(t, ok)
	require.Equal(t, "Shape", decl.Name)
	require.Len(t, decl.Variants, 2)
	require.Equal(t, "Circle", decl.Variants[0].Name)
	require.Equal(t, "Rectangle", decl.Variants[1].Name)
}

func TestParserImportDeclStripsQuotes(t *testing.T) {
	prog := parseOK(t, `import "lib/util"` + "\n")
	imp, ok := prog.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	require.Equal(t, "lib/util", imp.Path)
}

func TestParserFieldAccessIsLeftAssociative(t *testing.T) {
	prog := parseOK(t, "a.b.c\n")
	decl := prog.Decls[0].(*ast.ExprDecl)
	outer, ok := decl.Expr.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "c", outer.Field)
	inner, ok := outer.Object.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "b", inner.Field)
}

func TestParserReportsDiagnosticOnMalformedInput(t *testing.T) {
	_, diags := parser.ParseSource("let = 1\n", "")
	require.NotEmpty(t, diags)
}
