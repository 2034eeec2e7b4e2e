package types

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
)

// Processor adapts the inferencer into a pipeline.Processor: it builds a
// fresh Inferencer seeded with the stdlib Prelude, runs InferProgram over
// ctx.AST, and stores the resulting global Env in ctx.TypeEnv. No later
// stage reads it: the VM compiler doesn't need types post-inference, and
// the REPL's `:type` command (cmd/lyra) runs its own Inferencer.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog, ok := ctx.AST.(*ast.Program)
	if !ok {
		return ctx
	}
	inf := NewInferencer()
	env, diags := inf.InferProgram(prog, inf.Prelude())
	ctx.TypeEnv = env
	for _, d := range diags {
		ctx.AddError(d)
	}
	return ctx
}
