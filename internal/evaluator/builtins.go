package evaluator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// RegisterBuiltins binds every stdlib entry named in internal/types's
// Prelude into env with a matching Go implementation and arity, so the
// inferred type of a call and its runtime arity never disagree.
func RegisterBuiltins(env *value.Environment) {
	def := func(name string, arity int, fn value.BuiltinFn) {
		env.Set(name, value.Builtin{Name: name, Arity: arity, Fn: fn})
	}

	def("print", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		fmt.Print(toDisplayString(args[0]))
		return value.Unit{}, nil
	})
	def("println", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		fmt.Println(toDisplayString(args[0]))
		return value.Unit{}, nil
	})
	def("to_string", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.String{Value: toDisplayString(args[0])}, nil
	})

	def("str_length", 1, str1(func(s string) value.Value { return value.Int{Value: int64(len([]rune(s)))} }))
	def("str_trim", 1, str1(func(s string) value.Value { return value.String{Value: strings.TrimSpace(s)} }))
	def("str_upper", 1, str1(func(s string) value.Value { return value.String{Value: strings.ToUpper(s)} }))
	def("str_lower", 1, str1(func(s string) value.Value { return value.String{Value: strings.ToLower(s)} }))
	def("str_chars", 1, str1(func(s string) value.Value {
		rs := []rune(s)
		out := make([]value.Value, len(rs))
		for i, r := range rs {
			out[i] = value.String{Value: string(r)}
		}
		return value.List{Elements: out}
	}))

	def("str_concat", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.String{Value: mustStr(args[0]) + mustStr(args[1])}, nil
	})
	def("str_contains", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.Bool{Value: strings.Contains(mustStr(args[0]), mustStr(args[1]))}, nil
	})
	def("str_split", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		parts := strings.Split(mustStr(args[0]), mustStr(args[1]))
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String{Value: p}
		}
		return value.List{Elements: out}, nil
	})
	def("str_replace", 3, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.String{Value: strings.ReplaceAll(mustStr(args[0]), mustStr(args[1]), mustStr(args[2]))}, nil
	})
	def("str_starts_with", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.Bool{Value: strings.HasPrefix(mustStr(args[0]), mustStr(args[1]))}, nil
	})
	def("str_ends_with", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.Bool{Value: strings.HasSuffix(mustStr(args[0]), mustStr(args[1]))}, nil
	})
	def("str_substring", 3, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		s := []rune(mustStr(args[0]))
		start, end := int(mustInt(args[1])), int(mustInt(args[2]))
		if start < 0 {
			start = 0
		}
		if end > len(s) {
			end = len(s)
		}
		if start > end {
			return nil, &RuntimeError{Code: "R041", Message: "str_substring: start past end"}
		}
		return value.String{Value: string(s[start:end])}, nil
	})

	def("length", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.Int{Value: int64(len(mustList(args[0])))}, nil
	})
	def("head", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		l := mustList(args[0])
		if len(l) == 0 {
			return nil, &RuntimeError{Code: "R042", Message: "head of empty list"}
		}
		return l[0], nil
	})
	def("tail", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		l := mustList(args[0])
		if len(l) == 0 {
			return nil, &RuntimeError{Code: "R042", Message: "tail of empty list"}
		}
		return value.List{Elements: l[1:]}, nil
	})
	def("reverse", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		l := mustList(args[0])
		out := make([]value.Value, len(l))
		for i, v := range l {
			out[len(l)-1-i] = v
		}
		return value.List{Elements: out}, nil
	})
	def("append", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		a, b := mustList(args[0]), mustList(args[1])
		out := make([]value.Value, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return value.List{Elements: out}, nil
	})
	def("range", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		lo, hi := mustInt(args[0]), mustInt(args[1])
		var out []value.Value
		for i := lo; i < hi; i++ {
			out = append(out, value.Int{Value: i})
		}
		return value.List{Elements: out}, nil
	})
	def("nth", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		l := mustList(args[0])
		i := mustInt(args[1])
		if i < 0 || int(i) >= len(l) {
			return nil, &RuntimeError{Code: "R043", Message: "nth: index out of range"}
		}
		return l[i], nil
	})
	def("take", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		n := int(mustInt(args[0]))
		l := mustList(args[1])
		if n > len(l) {
			n = len(l)
		}
		if n < 0 {
			n = 0
		}
		return value.List{Elements: append([]value.Value{}, l[:n]...)}, nil
	})
	def("drop", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		n := int(mustInt(args[0]))
		l := mustList(args[1])
		if n > len(l) {
			n = len(l)
		}
		if n < 0 {
			n = 0
		}
		return value.List{Elements: append([]value.Value{}, l[n:]...)}, nil
	})
	def("flatten", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		var out []value.Value
		for _, sub := range mustList(args[0]) {
			out = append(out, mustList(sub)...)
		}
		return value.List{Elements: out}, nil
	})
	def("sum", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		var total int64
		for _, v := range mustList(args[0]) {
			total += mustInt(v)
		}
		return value.Int{Value: total}, nil
	})
	def("product", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		total := int64(1)
		for _, v := range mustList(args[0]) {
			total *= mustInt(v)
		}
		return value.Int{Value: total}, nil
	})
	def("sort", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		l := append([]value.Value{}, mustList(args[0])...)
		var sortErr error
		sort.SliceStable(l, func(i, j int) bool {
			c, err := lessGeneric(l[i], l[j])
			if err != nil {
				sortErr = err
			}
			return c
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return value.List{Elements: l}, nil
	})

	def("abs", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		n := mustInt(args[0])
		if n < 0 {
			n = -n
		}
		return value.Int{Value: n}, nil
	})
	def("min", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		a, b := mustInt(args[0]), mustInt(args[1])
		if a < b {
			return value.Int{Value: a}, nil
		}
		return value.Int{Value: b}, nil
	})
	def("max", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		a, b := mustInt(args[0]), mustInt(args[1])
		if a > b {
			return value.Int{Value: a}, nil
		}
		return value.Int{Value: b}, nil
	})
	def("pow", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		base, exp := mustInt(args[0]), mustInt(args[1])
		result := int64(1)
		for i := int64(0); i < exp; i++ {
			result *= base
		}
		return value.Int{Value: result}, nil
	})
	def("float_of_int", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.Float{Value: float64(mustInt(args[0]))}, nil
	})
	def("int_of_float", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		f, ok := args[0].(value.Float)
		if !ok {
			return nil, &RuntimeError{Code: "R044", Message: "int_of_float: not a Float"}
		}
		return value.Int{Value: int64(f.Value)}, nil
	})
	def("string_to_int", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		n, err := strconv.ParseInt(mustStr(args[0]), 10, 64)
		if err != nil {
			return nil, &RuntimeError{Code: "R045", Message: "string_to_int: not a valid integer: " + mustStr(args[0])}
		}
		return value.Int{Value: n}, nil
	})
	def("int_to_string", 1, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return value.String{Value: strconv.FormatInt(mustInt(args[0]), 10)}, nil
	})

	def("map", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		f, l := args[0], mustList(args[1])
		out := make([]value.Value, len(l))
		for i, v := range l {
			r, err := apply(f, []value.Value{v})
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return value.List{Elements: out}, nil
	})
	def("filter", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		f, l := args[0], mustList(args[1])
		var out []value.Value
		for _, v := range l {
			r, err := apply(f, []value.Value{v})
			if err != nil {
				return nil, err
			}
			b, ok := r.(value.Bool)
			if !ok {
				return nil, &RuntimeError{Code: "R010", Message: "filter predicate did not return a Bool"}
			}
			if b.Value {
				out = append(out, v)
			}
		}
		return value.List{Elements: out}, nil
	})
	def("fold", 3, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		acc, f, l := args[0], args[1], mustList(args[2])
		for _, v := range l {
			next, err := apply(f, []value.Value{acc, v})
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	})
	def("zip", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		a, b := mustList(args[0]), mustList(args[1])
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		out := make([]value.Value, n)
		for i := 0; i < n; i++ {
			out[i] = value.Tuple{Elements: []value.Value{a[i], b[i]}}
		}
		return value.List{Elements: out}, nil
	})
	def("any", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		f, l := args[0], mustList(args[1])
		for _, v := range l {
			r, err := apply(f, []value.Value{v})
			if err != nil {
				return nil, err
			}
			if b, ok := r.(value.Bool); ok && b.Value {
				return value.Bool{Value: true}, nil
			}
		}
		return value.Bool{Value: false}, nil
	})
	def("all", 2, func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		f, l := args[0], mustList(args[1])
		for _, v := range l {
			r, err := apply(f, []value.Value{v})
			if err != nil {
				return nil, err
			}
			if b, ok := r.(value.Bool); !ok || !b.Value {
				return value.Bool{Value: false}, nil
			}
		}
		return value.Bool{Value: true}, nil
	})
}

func str1(f func(string) value.Value) value.BuiltinFn {
	return func(apply value.ApplyFunc, args []value.Value) (value.Value, error) {
		return f(mustStr(args[0])), nil
	}
}

func mustStr(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Value
	}
	return ""
}

func mustInt(v value.Value) int64 {
	if n, ok := v.(value.Int); ok {
		return n.Value
	}
	return 0
}

func mustList(v value.Value) []value.Value {
	if l, ok := v.(value.List); ok {
		return l.Elements
	}
	return nil
}

func lessGeneric(a, b value.Value) (bool, error) {
	switch av := a.(type) {
	case value.Int:
		bv, ok := b.(value.Int)
		if !ok {
			return false, &RuntimeError{Code: "R010", Message: "sort: mixed element types"}
		}
		return av.Value < bv.Value, nil
	case value.Float:
		bv, ok := b.(value.Float)
		if !ok {
			return false, &RuntimeError{Code: "R010", Message: "sort: mixed element types"}
		}
		return av.Value < bv.Value, nil
	case value.String:
		bv, ok := b.(value.String)
		if !ok {
			return false, &RuntimeError{Code: "R010", Message: "sort: mixed element types"}
		}
		return av.Value < bv.Value, nil
	default:
		return false, &RuntimeError{Code: "R010", Message: "sort: unorderable element kind " + a.Kind().String()}
	}
}

// toDisplayString renders v the way print/println/to_string/string
// interpolation present it: a String is its raw text, anything else is
// its Inspect form.
func toDisplayString(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Value
	}
	return v.Inspect()
}
