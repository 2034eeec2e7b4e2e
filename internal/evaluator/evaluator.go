// Package evaluator implements the tree-walking back end: direct
// recursion over the AST against the shared internal/value.Value model.
// Grounded on funvibe-funxy/internal/evaluator's overall shape (an
// Eval(node, env) dispatcher plus an EvaluatorProcessor pipeline stage)
// but stripped to exactly §4 and §5's evaluation rules — no traits, no
// witness parameters, no host/bytes/range/bigint value kinds.
package evaluator

import (
	"fmt"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// RuntimeError is the error type every evaluation failure returns,
// carrying enough to become a diagnostics.Diagnostic (kind=runtime,
// code, span) one layer up in processor.go.
type RuntimeError struct {
	Code       string
	Message    string
	Span       ast.Node
	Suggestion string
}

func (e *RuntimeError) Error() string { return e.Message }

func newErr(code string, span ast.Node, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}

// Evaluator holds everything shared across a program's evaluation: the
// global environment (prelude builtins plus top-level let bindings) and
// a recursion-depth counter standing in for a call-stack-overflow guard,
// since the tree evaluator has no explicit frame count the way the VM
// does (§5's "deeply recursive non-tail calls may exhaust the Go call
// stack" design note).
type Evaluator struct {
	Globals *value.Environment
	depth   int
}

const maxDepth = 10000

// New creates an Evaluator with globals pre-populated by RegisterBuiltins.
func New() *Evaluator {
	ev := &Evaluator{Globals: value.NewEnvironment()}
	RegisterBuiltins(ev.Globals)
	return ev
}

// NewWithGlobals creates an Evaluator over an already-populated globals
// environment, used by internal/vm to bridge a compiled call site to a
// tree-walking value.Closure without double-registering the Prelude
// (§3: both back ends read and write the very same global bindings).
func NewWithGlobals(globals *value.Environment) *Evaluator {
	return &Evaluator{Globals: globals}
}

// ApplyTop is the ApplyFunc handed to builtins (map, filter, fold, any,
// all): it is an ordinary method value, not ambient/thread-local state,
// per §9's explicit apply-boundary redesign note.
func (ev *Evaluator) ApplyTop(fn value.Value, args []value.Value) (value.Value, error) {
	return ev.apply(fn, args, nil)
}

// EvalProgram evaluates every declaration of prog in order against
// ev.Globals, returning the value of the final ExprDecl (or Unit if the
// program ends in a non-expression declaration).
func (ev *Evaluator) EvalProgram(prog *ast.Program) (value.Value, error) {
	var last value.Value = value.Unit{}
	for _, decl := range prog.Decls {
		v, err := ev.evalDecl(decl)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

func (ev *Evaluator) evalDecl(decl ast.Decl) (value.Value, error) {
	switch d := decl.(type) {
	case *ast.ImportDecl:
		// Imports are spliced in before evaluation reaches this stage
		// (internal/modules); nothing left to do here.
		return nil, nil
	case *ast.TypeDecl:
		registerConstructors(ev.Globals, d)
		return nil, nil
	case *ast.LetDecl:
		return nil, ev.evalLetDecl(d)
	case *ast.ExprDecl:
		return ev.Eval(d.Expr, ev.Globals)
	default:
		return nil, newErr("R000", decl, "unhandled declaration kind %T", decl)
	}
}

func (ev *Evaluator) evalLetDecl(d *ast.LetDecl) error {
	env := ev.Globals
	if d.Recursive {
		// Evaluate against a copy of the globals taken before the name is
		// bound, so the closure's captured Env never resolves its own name.
		env = value.NewEnvironment()
		for _, name := range ev.Globals.Names() {
			gv, _ := ev.Globals.Get(name)
			env.Set(name, gv)
		}
	}
	v, err := ev.Eval(d.Body, env)
	if err != nil {
		return err
	}
	if d.Recursive {
		if c, ok := v.(*value.Closure); ok {
			c.SelfName = d.Name
		}
	}
	ev.Globals.Set(d.Name, v)
	return nil
}

// registerConstructors binds every variant of d as a Builtin (for
// fields>0) or a bare Adt value (for fields==0) in env, per §3's
// "constructors are ordinary callable values" rule.
func registerConstructors(env *value.Environment, d *ast.TypeDecl) {
	for _, v := range d.Variants {
		name := v.Name
		arity := len(v.Fields)
		if arity == 0 {
			env.Set(name, value.Adt{Constructor: name})
			continue
		}
		env.Set(name, value.Builtin{
			Name:  name,
			Arity: arity,
			Fn: func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
				fields := make([]value.Value, len(args))
				copy(fields, args)
				return value.Adt{Constructor: name, Fields: fields}, nil
			},
		})
	}
}

// Eval evaluates a single expression in env.
func (ev *Evaluator) Eval(expr ast.Expr, env *value.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return value.Int{Value: e.Value}, nil
	case *ast.FloatLit:
		return value.Float{Value: e.Value}, nil
	case *ast.BoolLit:
		return value.Bool{Value: e.Value}, nil
	case *ast.StringLit:
		return value.String{Value: e.Value}, nil
	case *ast.UnitLit:
		return value.Unit{}, nil
	case *ast.Ident:
		return ev.evalIdent(e, env)
	case *ast.ListLit:
		return ev.evalList(e, env)
	case *ast.TupleLit:
		return ev.evalTuple(e, env)
	case *ast.RecordLit:
		return ev.evalRecord(e, env)
	case *ast.Lambda:
		return &value.Closure{Params: e.Params, Body: e.Body, Env: env}, nil
	case *ast.Apply:
		return ev.evalApply(e, env)
	case *ast.Binary:
		return ev.evalBinary(e, env)
	case *ast.Unary:
		return ev.evalUnary(e, env)
	case *ast.Pipe:
		return ev.evalPipe(e, env)
	case *ast.If:
		return ev.evalIf(e, env)
	case *ast.LetIn:
		return ev.evalLetIn(e, env)
	case *ast.Match:
		return ev.evalMatch(e, env)
	case *ast.Interp:
		return ev.evalInterp(e, env)
	case *ast.FieldAccess:
		return ev.evalFieldAccess(e, env)
	default:
		return nil, newErr("R000", expr, "unhandled expression kind %T", expr)
	}
}

func (ev *Evaluator) evalIdent(e *ast.Ident, env *value.Environment) (value.Value, error) {
	if v, ok := env.Get(e.Name); ok {
		return v, nil
	}
	err := newErr("R003", e, "undefined variable %q", e.Name)
	if s := suggestFrom(e.Name, env); s != "" {
		err.Suggestion = s
	}
	return nil, err
}

func (ev *Evaluator) evalList(e *ast.ListLit, env *value.Environment) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := ev.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.List{Elements: elems}, nil
}

func (ev *Evaluator) evalTuple(e *ast.TupleLit, env *value.Environment) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := ev.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.Tuple{Elements: elems}, nil
}

func (ev *Evaluator) evalRecord(e *ast.RecordLit, env *value.Environment) (value.Value, error) {
	fields := make([]value.RecordField, len(e.Fields))
	for i, f := range e.Fields {
		v, err := ev.Eval(f.Value, env)
		if err != nil {
			return nil, err
		}
		fields[i] = value.RecordField{Name: f.Name, Value: v}
	}
	return value.NewRecord(fields), nil
}

func (ev *Evaluator) evalApply(e *ast.Apply, env *value.Environment) (value.Value, error) {
	fn, err := ev.Eval(e.Fn, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.apply(fn, args, e)
}

func (ev *Evaluator) evalPipe(e *ast.Pipe, env *value.Environment) (value.Value, error) {
	lhs, err := ev.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	rhs, err := ev.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	return ev.apply(rhs, []value.Value{lhs}, e)
}

func (ev *Evaluator) evalIf(e *ast.If, env *value.Environment) (value.Value, error) {
	c, err := ev.Eval(e.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := c.(value.Bool)
	if !ok {
		return nil, newErr("R010", e, "if condition is not a Bool")
	}
	if b.Value {
		return ev.Eval(e.Then, env)
	}
	return ev.Eval(e.Else, env)
}

func (ev *Evaluator) evalLetIn(e *ast.LetIn, env *value.Environment) (value.Value, error) {
	v, err := ev.Eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	if e.Recursive {
		if c, ok := v.(*value.Closure); ok {
			c.SelfName = e.Name
		}
	}
	inner := env.Extend()
	inner.Set(e.Name, v)
	return ev.Eval(e.Body, inner)
}

func (ev *Evaluator) evalMatch(e *ast.Match, env *value.Environment) (value.Value, error) {
	scrutinee, err := ev.Eval(e.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range e.Arms {
		bindings := map[string]value.Value{}
		if matchPattern(arm.Pattern, scrutinee, bindings) {
			inner := env.Extend()
			for name, v := range bindings {
				inner.Set(name, v)
			}
			return ev.Eval(arm.Body, inner)
		}
	}
	return nil, newErr("R020", e, "match failed: no pattern matched the scrutinee")
}

func (ev *Evaluator) evalInterp(e *ast.Interp, env *value.Environment) (value.Value, error) {
	var b []byte
	for _, part := range e.Parts {
		if part.Expr == nil {
			b = append(b, part.Literal...)
			continue
		}
		v, err := ev.Eval(part.Expr, env)
		if err != nil {
			return nil, err
		}
		b = append(b, toDisplayString(v)...)
	}
	return value.String{Value: string(b)}, nil
}

func (ev *Evaluator) evalFieldAccess(e *ast.FieldAccess, env *value.Environment) (value.Value, error) {
	obj, err := ev.Eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	rec, ok := obj.(value.Record)
	if !ok {
		return nil, newErr("R011", e, "field access on non-record value")
	}
	v, ok := rec.Lookup(e.Field)
	if !ok {
		return nil, newErr("R012", e, "record has no field %q", e.Field)
	}
	return v, nil
}

func suggestFrom(name string, env *value.Environment) string {
	return diagnostics.Suggest(name, env.Names())
}
