package evaluator

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Processor adapts an Evaluator into a pipeline.Processor, grounded on
// funvibe-funxy's EvaluatorProcessor.Process (build an Evaluator,
// register builtins, Eval the root, and turn an error result into a
// Diagnostic) but simplified for Lyra's error-is-error-value (not
// sentinel-object) convention.
type Processor struct {
	Eval   *Evaluator
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
	if p.Eval == nil {
		p.Eval = New()
	}
	v, err := p.Eval.EvalProgram(prog)
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
	d := diagnostics.New(diagnostics.Runtime, re.Code, spanOf(re.Span), "%s", re.Message)
	if re.Suggestion != "" {
		d = d.WithSuggestion(re.Suggestion)
	}
	return d
}

func spanOf(n ast.Node) token.Span {
	if n == nil {
		return token.Span{}
	}
	return n.Span()
}
