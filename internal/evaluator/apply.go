package evaluator

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// apply calls fn with args, handling exact, partial, and over-application
// (§3's curried-application semantics — extra args are threaded into the
// result of a saturated call, one at a time). spanNode is nil when the
// call originates from a builtin's ApplyFunc rather than an Apply/Pipe
// AST node, in which case diagnostics fall back to a zero span.
func (ev *Evaluator) apply(fn value.Value, args []value.Value, spanNode ast.Node) (value.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > maxDepth {
		return nil, newErr("R030", spanNode, "stack overflow: recursion too deep")
	}

	switch f := fn.(type) {
	case *value.Closure:
		return ev.applyClosure(f, args, spanNode)
	case value.Builtin:
		return ev.applyArity(f.Arity, args, func(full []value.Value) (value.Value, error) {
			return f.Fn(ev.ApplyTop, full)
		}, func(partial []value.Value) value.Value {
			return value.PartialApp{Fn: f, AppliedArgs: partial}
		}, spanNode)
	case value.PartialApp:
		combined := append(append([]value.Value{}, f.AppliedArgs...), args...)
		return ev.apply(f.Fn, combined, spanNode)
	default:
		return nil, newErr("R013", spanNode, "value of kind %s is not callable", fn.Kind())
	}
}

func (ev *Evaluator) applyClosure(f *value.Closure, args []value.Value, spanNode ast.Node) (value.Value, error) {
	return ev.applyArity(len(f.Params), args, func(full []value.Value) (value.Value, error) {
		inner := f.Env.Extend()
		if f.SelfName != "" {
			inner.Set(f.SelfName, f)
		}
		for i, p := range f.Params {
			inner.Set(p.Name, full[i])
		}
		return ev.Eval(f.Body, inner)
	}, func(partial []value.Value) value.Value {
		return value.PartialApp{Fn: f, AppliedArgs: partial}
	}, spanNode)
}

// applyArity dispatches a call against a known arity: exact calls invoke
// full, under-applied calls build a PartialApp via partial, and
// over-applied calls invoke full on the first `arity` args and then
// re-apply the result to the remainder.
func (ev *Evaluator) applyArity(
	arity int,
	args []value.Value,
	full func([]value.Value) (value.Value, error),
	partial func([]value.Value) value.Value,
	spanNode ast.Node,
) (value.Value, error) {
	switch {
	case len(args) == arity:
		return full(args)
	case len(args) < arity:
		return partial(args), nil
	default:
		result, err := full(args[:arity])
		if err != nil {
			return nil, err
		}
		return ev.apply(result, args[arity:], spanNode)
	}
}
