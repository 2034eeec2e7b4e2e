// Package modules implements the import resolver (§1 "a trivial
// file-level concern", §6 "Imports"): `import "path"` is resolved
// relative to the importing file's directory, the extension `.L` is
// appended if the path doesn't already carry one, and the imported
// file's declarations are spliced in place of the ImportDecl, in
// declaration order, before the program reaches internal/types or
// either back end.
//
// This is deliberately far simpler than funvibe-funxy's
// internal/modules, which resolves whole directories as packages, with
// export lists, bundles and virtual packages, and an explicit
// Processing-map cycle guard. Lyra has no package concept: an import
// names one file, imports are inlined textually, and a file already
// loaded (by resolved absolute path) is simply skipped on a second
// import (first-wins dedup) rather than detected as a cycle, because
// after the first splice its declarations are already present — a
// self-import or import cycle terminates on that dedup check instead
// of needing its own guard.
package modules

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
)

// Resolver splices imports into prog, reading files relative to each
// importing file's own directory.
type Resolver struct {
	loaded map[string]bool
}

// Resolve returns prog with every ImportDecl, at any depth, replaced by
// the declarations of the file it names. baseDir is the directory the
// top-level program's own path resolves against (the directory
// containing the entry file, or the working directory for a REPL
// chunk with no backing file).
func Resolve(prog *ast.Program, baseDir string) (*ast.Program, []*diagnostics.Diagnostic) {
	r := &Resolver{loaded: map[string]bool{}}
	if prog.File != "" {
		if abs, err := filepath.Abs(prog.File); err == nil {
			r.loaded[abs] = true
		}
	}
	decls, diags := r.resolveDecls(prog.Decls, baseDir)
	prog.Decls = decls
	return prog, diags
}

func (r *Resolver) resolveDecls(decls []ast.Decl, dir string) ([]ast.Decl, []*diagnostics.Diagnostic) {
	var out []ast.Decl
	var diags []*diagnostics.Diagnostic
	for _, d := range decls {
		imp, ok := d.(*ast.ImportDecl)
		if !ok {
			out = append(out, d)
			continue
		}
		spliced, ds := r.loadImport(imp, dir)
		diags = append(diags, ds...)
		out = append(out, spliced...)
	}
	return out, diags
}

func (r *Resolver) loadImport(imp *ast.ImportDecl, dir string) ([]ast.Decl, []*diagnostics.Diagnostic) {
	path := resolvePath(dir, imp.Path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, []*diagnostics.Diagnostic{ioError(imp, path, errors.Wrapf(err, "resolving import %q", path))}
	}
	if r.loaded[abs] {
		return nil, nil
	}
	r.loaded[abs] = true

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, []*diagnostics.Diagnostic{ioError(imp, path, errors.Wrapf(err, "reading import %q", path))}
	}

	sub, diags := parser.ParseSource(string(src), path)
	if len(diags) > 0 {
		return nil, diags
	}

	nested, nestedDiags := r.resolveDecls(sub.Decls, filepath.Dir(abs))
	return nested, nestedDiags
}

// resolvePath resolves path against dir, adding the .L extension if the
// path doesn't already name a file with an extension.
func resolvePath(dir, path string) string {
	if filepath.Ext(path) == "" {
		path += ".L"
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func ioError(imp *ast.ImportDecl, path string, err error) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.IO, "I001", imp.Span(), "cannot load import %q: %s", path, err)
}

// Processor adapts Resolve into a pipeline.Processor, run between
// parsing and type inference. BaseDir anchors the entry program's own
// imports; nested imports resolve against each imported file's own
// directory (filepath.Dir of the resolved path, passed to loadImport's
// recursive resolveDecls call).
type Processor struct {
	BaseDir string
}

func (p Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog, ok := ctx.AST.(*ast.Program)
	if !ok || ctx.HasErrors() {
		return ctx
	}
	dir := p.BaseDir
	if dir == "" {
		if ctx.FilePath != "" {
			dir = filepath.Dir(ctx.FilePath)
		} else {
			dir, _ = os.Getwd()
		}
	}
	resolved, diags := Resolve(prog, dir)
	ctx.AST = resolved
	for _, d := range diags {
		ctx.AddError(d)
	}
	return ctx
}
