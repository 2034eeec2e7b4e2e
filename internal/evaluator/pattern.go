package evaluator

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// matchPattern tests whether v matches pat, accumulating any bindings
// into bindings (so a failed match partway through a compound pattern
// doesn't leak partial bindings to the caller, which discards bindings
// on a false return and tries the next arm).
func matchPattern(pat ast.Pattern, v value.Value, bindings map[string]value.Value) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.VarPattern:
		bindings[p.Name] = v
		return true

	case *ast.LiteralPattern:
		return matchLiteral(p, v)

	case *ast.TuplePattern:
		tup, ok := v.(value.Tuple)
		if !ok || len(tup.Elements) != len(p.Elements) {
			return false
		}
		for i, sub := range p.Elements {
			if !matchPattern(sub, tup.Elements[i], bindings) {
				return false
			}
		}
		return true

	case *ast.ListPattern:
		lst, ok := v.(value.List)
		if !ok || len(lst.Elements) != len(p.Elements) {
			return false
		}
		for i, sub := range p.Elements {
			if !matchPattern(sub, lst.Elements[i], bindings) {
				return false
			}
		}
		return true

	case *ast.ConsPattern:
		lst, ok := v.(value.List)
		if !ok || len(lst.Elements) == 0 {
			return false
		}
		if !matchPattern(p.Head, lst.Elements[0], bindings) {
			return false
		}
		return matchPattern(p.Tail, value.List{Elements: lst.Elements[1:]}, bindings)

	case *ast.ConstructorPattern:
		adt, ok := v.(value.Adt)
		if !ok || adt.Constructor != p.Name || len(adt.Fields) != len(p.Args) {
			return false
		}
		for i, sub := range p.Args {
			if !matchPattern(sub, adt.Fields[i], bindings) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func matchLiteral(p *ast.LiteralPattern, v value.Value) bool {
	switch p.Kind {
	case ast.LitInt:
		iv, ok := v.(value.Int)
		return ok && iv.Value == p.Int
	case ast.LitFloat:
		fv, ok := v.(value.Float)
		return ok && fv.Value == p.Float
	case ast.LitString:
		sv, ok := v.(value.String)
		return ok && sv.Value == p.String
	case ast.LitBool:
		bv, ok := v.(value.Bool)
		return ok && bv.Value == p.Bool
	case ast.LitUnit:
		_, ok := v.(value.Unit)
		return ok
	default:
		return false
	}
}
