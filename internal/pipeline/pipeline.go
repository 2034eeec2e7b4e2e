// Package pipeline wires the lexer/parser/inferencer/back-end stages
// together as a sequence of processors, grounded on the staged-context
// shape from the teacher's own pipeline package.
package pipeline

import "github.com/UmarbekFU/lyra-lang/internal/diagnostics"

// Context threads through every stage. Each stage reads what earlier
// stages produced and appends whatever Diagnostics it found; stages run
// even after earlier diagnostics so a single pass can surface everything
// cheap to surface (the REPL and any future tooling want that), while
// §7's "first error aborts the declaration" rule is enforced one level
// down, inside the inferencer itself.
type Context struct {
	FilePath    string
	Source      string
	Diagnostics []*diagnostics.Diagnostic

	// Stage outputs, populated as the pipeline advances. Concrete types
	// come from internal/ast (AST, set by the parser stage) and
	// internal/types (TypeEnv), held as interface{} to avoid an import
	// cycle back into this package. No stage sets Tokens.
	Tokens  interface{}
	AST     interface{}
	TypeEnv interface{}
}

// HasErrors reports whether any error-severity diagnostic (as opposed to
// a warning) has been recorded.
func (c *Context) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// AddError appends d, stamping its File from the context if unset.
func (c *Context) AddError(d *diagnostics.Diagnostic) {
	if d.File == "" {
		d.File = c.FilePath
	}
	c.Diagnostics = append(c.Diagnostics, d)
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	stages []Processor
}

// New builds a Pipeline from stages, run in order.
func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order, threading ctx through each.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
