package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/parser"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/replstate"
	"github.com/UmarbekFU/lyra-lang/internal/types"
)

const (
	promptPrimary      = "L> "
	promptContinuation = "..> "
)

// runREPL drives the interactive loop: read a (possibly multi-line)
// declaration, evaluate it against every previously accepted
// declaration, and print either its result or its diagnostics.
// The "persistent top-level environment" (§6) is realized by re-running
// the full accumulated source on every accepted line rather than
// threading a live environment between pipeline runs — simpler, and it
// is exactly what letting the on-disk Session replay at startup needs
// anyway.
func runREPL(useVM bool) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	histPath, err := replstate.DefaultPath()
	if err != nil {
		return err
	}
	sess, err := replstate.Load(histPath)
	if err != nil {
		return err
	}
	history := append([]string{}, sess.Entries...)
	if len(history) > 0 {
		ctx := &pipeline.Context{Source: strings.Join(history, "\n")}
		if _, ctx := run(ctx, useVM); ctx.HasErrors() {
			fmt.Fprintln(os.Stderr, "warning: previous session history no longer evaluates cleanly:")
			printDiagnostics(ctx)
		}
	}

	if interactive {
		fmt.Println("L REPL — :help for commands, :quit to exit")
	}

	in := bufio.NewScanner(os.Stdin)
	var buffer strings.Builder

	prompt := func() {
		if !interactive {
			return
		}
		if buffer.Len() == 0 {
			fmt.Print(promptPrimary)
		} else {
			fmt.Print(promptContinuation)
		}
	}

	prompt()
	for in.Scan() {
		line := in.Text()
		if buffer.Len() == 0 {
			if handled, quit := handleCommand(strings.TrimSpace(line), &history, useVM); handled {
				if quit {
					return nil
				}
				prompt()
				continue
			}
		}
		buffer.WriteString(line)
		buffer.WriteByte('\n')

		if replstate.NeedsContinuation(buffer.String()) {
			prompt()
			continue
		}

		entry := strings.TrimRight(buffer.String(), "\n")
		buffer.Reset()
		if strings.TrimSpace(entry) != "" {
			evalEntry(entry, &history, histPath, sess, useVM)
		}
		prompt()
	}
	return in.Err()
}

// evalEntry runs history+entry through the full pipeline; on success
// entry joins history and is persisted, on failure its diagnostics are
// printed and history is left untouched.
func evalEntry(entry string, history *[]string, histPath string, sess *replstate.Session, useVM bool) {
	src := strings.Join(append(append([]string{}, *history...), entry), "\n")
	ctx := &pipeline.Context{Source: src}
	result, ctx := run(ctx, useVM)
	if ctx.HasErrors() {
		printDiagnostics(ctx)
		return
	}
	*history = append(*history, entry)
	if err := sess.Append(histPath, entry); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if result != nil {
		fmt.Println(result.Inspect())
	}
}

// handleCommand recognizes the REPL's `:`-prefixed commands. handled is
// false for ordinary input, which the caller should keep buffering.
func handleCommand(line string, history *[]string, useVM bool) (handled, quit bool) {
	switch {
	case line == ":quit", line == ":q":
		return true, true
	case line == ":help", line == ":h":
		printHelp()
		return true, false
	case strings.HasPrefix(line, ":type "):
		printType(strings.TrimPrefix(line, ":type "), *history)
		return true, false
	case strings.HasPrefix(line, ":load "):
		loadFile(strings.TrimPrefix(line, ":load "), history, useVM)
		return true, false
	default:
		return false, false
	}
}

func printHelp() {
	fmt.Println(`:quit, :q          exit the REPL
:help, :h          show this message
:type <expr>       print the inferred type of an expression
:load <file>       evaluate a file into the persistent environment`)
}

// printType infers exprSrc's type against the environment history's
// declarations produce, without adding exprSrc itself to history.
func printType(exprSrc string, history []string) {
	baseSrc := strings.Join(history, "\n")
	baseProg, diags := parser.ParseSource(baseSrc, "")
	if len(diags) > 0 {
		printRawDiagnostics(diags, baseSrc)
		return
	}
	inf := types.NewInferencer()
	env, diags := inf.InferProgram(baseProg, inf.Prelude())
	if len(diags) > 0 {
		printRawDiagnostics(diags, baseSrc)
		return
	}

	exprProg, ediags := parser.ParseSource(exprSrc, "")
	if len(ediags) > 0 {
		printRawDiagnostics(ediags, exprSrc)
		return
	}
	ed, ok := soleExprDecl(exprProg)
	if !ok {
		fmt.Fprintln(os.Stderr, "type: expected a single expression")
		return
	}
	t, _, diag := inf.InferExpr(env, ed.Expr)
	if diag != nil {
		printRawDiagnostics([]*diagnostics.Diagnostic{diag}, exprSrc)
		return
	}
	fmt.Println(exprSrc + " : " + t.String())
}

func printRawDiagnostics(diags []*diagnostics.Diagnostic, source string) {
	color := isatty.IsTerminal(os.Stderr.Fd())
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Render(source, color))
	}
}

func soleExprDecl(prog *ast.Program) (*ast.ExprDecl, bool) {
	if len(prog.Decls) != 1 {
		return nil, false
	}
	ed, ok := prog.Decls[0].(*ast.ExprDecl)
	return ed, ok
}

func loadFile(path string, history *[]string, useVM bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	entry := strings.TrimRight(string(data), "\n")
	src := strings.Join(append(append([]string{}, *history...), entry), "\n")
	ctx := &pipeline.Context{FilePath: path, Source: src}
	result, ctx := run(ctx, useVM)
	if ctx.HasErrors() {
		printDiagnostics(ctx)
		return
	}
	*history = append(*history, entry)
	if result != nil {
		fmt.Println(result.Inspect())
	}
}
