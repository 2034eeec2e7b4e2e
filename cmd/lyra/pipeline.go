package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/UmarbekFU/lyra-lang/internal/evaluator"
	"github.com/UmarbekFU/lyra-lang/internal/modules"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/types"
	"github.com/UmarbekFU/lyra-lang/internal/value"
	"github.com/UmarbekFU/lyra-lang/internal/vm"
)

func filepathAbs(path string) (string, error) {
	return filepath.Abs(path)
}

// run threads ctx through parsing, import resolution, type inference and
// the selected back end, returning whatever value the program's final
// declaration produced alongside the context diagnostics accumulated
// along the way.
func run(ctx *pipeline.Context, useVM bool) (value.Value, *pipeline.Context) {
	baseDir := filepath.Dir(ctx.FilePath)
	if ctx.FilePath == "" {
		baseDir, _ = os.Getwd()
	}

	stages := []pipeline.Processor{
		parser.Processor{},
		modules.Processor{BaseDir: baseDir},
		types.Processor{},
	}
	back := &evaluator.Processor{}
	var vmBack *vm.Processor
	if useVM {
		vmBack = &vm.Processor{}
		stages = append(stages, vmBack)
	} else {
		stages = append(stages, back)
	}

	ctx = pipeline.New(stages...).Run(ctx)
	if useVM {
		if v, ok := vmBack.Result.(value.Value); ok {
			return v, ctx
		}
		return nil, ctx
	}
	if v, ok := back.Result.(value.Value); ok {
		return v, ctx
	}
	return nil, ctx
}

func printDiagnostics(ctx *pipeline.Context) {
	color := isatty.IsTerminal(os.Stderr.Fd())
	for _, d := range ctx.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Render(ctx.Source, color))
	}
}
