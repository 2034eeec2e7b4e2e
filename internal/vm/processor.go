package vm

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Processor adapts the compiler+VM pair into a pipeline.Processor,
// selected by `L --vm` in place of internal/evaluator's Processor (§6).
// It compiles the checked program once, then runs it, matching the
// tree-walking Processor's "compile/eval, turn an error into a
// Diagnostic" shape.
type Processor struct {
	VM     *VM
	Result interface{}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog, ok := ctx.AST.(*ast.Program)
	if !ok {
		return ctx
	}
	if ctx.HasErrors() {
		return ctx
	}

	c := NewCompiler()
	proto := c.CompileProgram(prog)
	for _, d := range c.Diagnostics() {
		ctx.AddError(d)
	}
	if ctx.HasErrors() {
		return ctx
	}

	if p.VM == nil {
		p.VM = New()
	}
	v, err := p.VM.Run(proto)
	if err != nil {
		ctx.AddError(runtimeDiagnostic(err))
		return ctx
	}
	p.Result = v
	return ctx
}

func runtimeDiagnostic(err error) *diagnostics.Diagnostic {
	re, ok := err.(*RuntimeError)
	if !ok {
		return diagnostics.New(diagnostics.Runtime, "R999", token.Span{}, "%s", err.Error())
	}
	d := diagnostics.New(diagnostics.Runtime, re.Code, re.Span, "%s", re.Message)
	if re.Suggestion != "" {
		d = d.WithSuggestion(re.Suggestion)
	}
	return d
}
