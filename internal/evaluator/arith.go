package evaluator

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

func (ev *Evaluator) evalBinary(e *ast.Binary, env *value.Environment) (value.Value, error) {
	// && and || short-circuit: the right operand is only evaluated when
	// the left doesn't already decide the result (§4's boolean operators).
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		l, err := ev.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(value.Bool)
		if !ok {
			return nil, newErr("R010", e, "operand of %s is not a Bool", e.Op)
		}
		if e.Op == ast.OpAnd && !lb.Value {
			return value.Bool{Value: false}, nil
		}
		if e.Op == ast.OpOr && lb.Value {
			return value.Bool{Value: true}, nil
		}
		r, err := ev.Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(value.Bool)
		if !ok {
			return nil, newErr("R010", e, "operand of %s is not a Bool", e.Op)
		}
		return rb, nil
	}

	l, err := ev.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := ev.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpEq:
		return value.Bool{Value: value.Equal(l, r)}, nil
	case ast.OpNotEq:
		return value.Bool{Value: !value.Equal(l, r)}, nil
	case ast.OpCons:
		lst, ok := r.(value.List)
		if !ok {
			return nil, newErr("R010", e, "right operand of :: is not a List")
		}
		elems := make([]value.Value, 0, len(lst.Elements)+1)
		elems = append(elems, l)
		elems = append(elems, lst.Elements...)
		return value.List{Elements: elems}, nil
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return compareValues(e, l, r)
	default:
		return arithValues(e, l, r)
	}
}

func compareValues(e *ast.Binary, l, r value.Value) (value.Value, error) {
	var cmp int
	switch lv := l.(type) {
	case value.Int:
		rv, ok := r.(value.Int)
		if !ok {
			return nil, newErr("R010", e, "comparison operands are not the same type")
		}
		cmp = cmpInt(lv.Value, rv.Value)
	case value.Float:
		rv, ok := r.(value.Float)
		if !ok {
			return nil, newErr("R010", e, "comparison operands are not the same type")
		}
		cmp = cmpFloat(lv.Value, rv.Value)
	case value.String:
		rv, ok := r.(value.String)
		if !ok {
			return nil, newErr("R010", e, "comparison operands are not the same type")
		}
		cmp = cmpString(lv.Value, rv.Value)
	default:
		return nil, newErr("R010", e, "value of kind %s is not ordered", l.Kind())
	}
	var b bool
	switch e.Op {
	case ast.OpLt:
		b = cmp < 0
	case ast.OpGt:
		b = cmp > 0
	case ast.OpLe:
		b = cmp <= 0
	case ast.OpGe:
		b = cmp >= 0
	}
	return value.Bool{Value: b}, nil
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// arithValues implements +, -, *, /, %. + also accepts String (the
// inferencer's addCandidates = [Int, Float, String], §4.2) meaning
// string concatenation; the others stay numeric only.
func arithValues(e *ast.Binary, l, r value.Value) (value.Value, error) {
	if e.Op == ast.Add {
		if ls, ok := l.(value.String); ok {
			rs, ok := r.(value.String)
			if !ok {
				return nil, newErr("R010", e, "operands of + are not the same type")
			}
			return value.String{Value: ls.Value + rs.Value}, nil
		}
	}
	switch lv := l.(type) {
	case value.Int:
		rv, ok := r.(value.Int)
		if !ok {
			return nil, newErr("R010", e, "operands of %s are not the same type", e.Op)
		}
		return intArith(e, lv.Value, rv.Value)
	case value.Float:
		rv, ok := r.(value.Float)
		if !ok {
			return nil, newErr("R010", e, "operands of %s are not the same type", e.Op)
		}
		return floatArith(e, lv.Value, rv.Value)
	default:
		return nil, newErr("R010", e, "value of kind %s does not support %s", l.Kind(), e.Op)
	}
}

func intArith(e *ast.Binary, a, b int64) (value.Value, error) {
	switch e.Op {
	case ast.Add:
		return value.Int{Value: a + b}, nil
	case ast.Sub:
		return value.Int{Value: a - b}, nil
	case ast.Mul:
		return value.Int{Value: a * b}, nil
	case ast.Div:
		if b == 0 {
			return nil, newErr("R040", e, "division by zero")
		}
		return value.Int{Value: a / b}, nil
	case ast.Mod:
		if b == 0 {
			return nil, newErr("R040", e, "division by zero")
		}
		return value.Int{Value: a % b}, nil
	default:
		return nil, newErr("R000", e, "unhandled integer operator %s", e.Op)
	}
}

func floatArith(e *ast.Binary, a, b float64) (value.Value, error) {
	switch e.Op {
	case ast.Add:
		return value.Float{Value: a + b}, nil
	case ast.Sub:
		return value.Float{Value: a - b}, nil
	case ast.Mul:
		return value.Float{Value: a * b}, nil
	case ast.Div:
		return value.Float{Value: a / b}, nil
	case ast.Mod:
		return nil, newErr("R010", e, "%% is not defined on Float")
	default:
		return nil, newErr("R000", e, "unhandled float operator %s", e.Op)
	}
}

func (ev *Evaluator) evalUnary(e *ast.Unary, env *value.Environment) (value.Value, error) {
	v, err := ev.Eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.Not:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, newErr("R010", e, "operand of ! is not a Bool")
		}
		return value.Bool{Value: !b.Value}, nil
	case ast.Neg:
		switch n := v.(type) {
		case value.Int:
			return value.Int{Value: -n.Value}, nil
		case value.Float:
			return value.Float{Value: -n.Value}, nil
		default:
			return nil, newErr("R010", e, "operand of unary - is not numeric")
		}
	default:
		return nil, newErr("R000", e, "unhandled unary operator")
	}
}
