package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var useVM bool

	cmd := &cobra.Command{
		Use:           "lyra [path]",
		Short:         "L, a small strict statically-typed functional language",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(useVM)
			}
			return runFile(args[0], useVM)
		},
	}
	cmd.Flags().BoolVar(&useVM, "vm", false, "run with the bytecode compiler + VM instead of the tree-walking evaluator")
	return cmd
}

// runFile executes the program at path end to end, exiting 1 and
// printing every diagnostic if any stage reports an error.
func runFile(path string, useVM bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	abs, err := filepathAbs(path)
	if err != nil {
		return err
	}

	ctx := &pipeline.Context{FilePath: abs, Source: string(src)}
	_, ctx = run(ctx, useVM)
	if ctx.HasErrors() {
		printDiagnostics(ctx)
		os.Exit(1)
	}
	return nil
}
