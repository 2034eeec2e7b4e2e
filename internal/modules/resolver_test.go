package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func declNames(decls []ast.Decl) []string {
	var names []string
	for _, d := range decls {
		switch d := d.(type) {
		case *ast.LetDecl:
			names = append(names, d.Name)
		case *ast.ImportDecl:
			names = append(names, "import:"+d.Path)
		}
	}
	return names
}

func TestResolveSplicesImportedDecls(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.L", "let square = fn (x) -> x * x\n")

	main := `import "math"
let nine = square(3)
`
	prog, diags := parser.ParseSource(main, filepath.Join(dir, "main.L"))
	require.Empty(t, diags)

	resolved, rdiags := Resolve(prog, dir)
	require.Empty(t, rdiags)
	require.Equal(t, []string{"square", "nine"}, declNames(resolved.Decls))
}

func TestResolveAddsDotLExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.L", "let id = fn (x) -> x\n")

	main := `import "util"
let one = id(1)
`
	prog, _ := parser.ParseSource(main, filepath.Join(dir, "main.L"))
	resolved, diags := Resolve(prog, dir)
	require.Empty(t, diags)
	require.Equal(t, []string{"id", "one"}, declNames(resolved.Decls))
}

func TestResolveDedupesRepeatedImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.L", "let shared = 1\n")

	main := `import "a"
import "a"
let x = shared
`
	prog, _ := parser.ParseSource(main, filepath.Join(dir, "main.L"))
	resolved, diags := Resolve(prog, dir)
	require.Empty(t, diags)
	require.Equal(t, []string{"shared", "x"}, declNames(resolved.Decls))
}

func TestResolveTransitiveAndSelfImportTerminate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.L", "let b = 2\n")
	writeFile(t, dir, "a.L", `import "b"
let a = b + 1
`)
	writeFile(t, dir, "cyclic.L", `import "cyclic"
let loop = 1
`)

	main := `import "a"
let total = a
`
	prog, _ := parser.ParseSource(main, filepath.Join(dir, "main.L"))
	resolved, diags := Resolve(prog, dir)
	require.Empty(t, diags)
	require.Equal(t, []string{"b", "a", "total"}, declNames(resolved.Decls))

	cycProg, _ := parser.ParseSource(`import "cyclic"
let z = loop
`, filepath.Join(dir, "entry.L"))
	cycResolved, cycDiags := Resolve(cycProg, dir)
	require.Empty(t, cycDiags)
	require.Equal(t, []string{"loop", "z"}, declNames(cycResolved.Decls))
}

func TestResolveReportsMissingFile(t *testing.T) {
	dir := t.TempDir()
	main := `import "missing"
let x = 1
`
	prog, _ := parser.ParseSource(main, filepath.Join(dir, "main.L"))
	_, diags := Resolve(prog, dir)
	require.Len(t, diags, 1)
	require.Equal(t, "I001", diags[0].Code)
}
