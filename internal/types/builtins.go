package types

// Prelude builds the global type environment for the stdlib surface named
// in §6. These schemes are shared by both back-ends: the tree evaluator
// and the VM register the same-named Builtin values (internal/evaluator's
// builtins.go), so a program's inferred types and its runtime behavior
// never disagree about arity.
//
// The language has no typeclasses or overloading (explicit Non-goal), so
// a handful of numeric builtins that would otherwise be generic across
// Int/Float (abs, min, max, pow, sum, product) are monomorphic over Int
// here; callers needing the Float form convert explicitly with
// float_of_int/int_of_float, consistent with §9's "mixed-type arithmetic
// is not supported" design note.
func (inf *Inferencer) Prelude() *Env {
	env := NewEnv()

	poly1 := func(build func(a Type) Type) Scheme {
		a := inf.Fresh().(Var)
		return Scheme{Vars: []int{a.ID}, Body: build(a)}
	}
	poly2 := func(build func(a, b Type) Type) Scheme {
		a := inf.Fresh().(Var)
		b := inf.Fresh().(Var)
		return Scheme{Vars: []int{a.ID, b.ID}, Body: build(a, b)}
	}

	env = env.Extend("print", poly1(func(a Type) Type { return Arrow{a, Unit} }))
	env = env.Extend("println", poly1(func(a Type) Type { return Arrow{a, Unit} }))
	env = env.Extend("to_string", poly1(func(a Type) Type { return Arrow{a, String} }))

	str1 := func(result Type) Scheme { return Mono(Arrow{String, result}) }
	env = env.Extend("str_length", str1(Int))
	env = env.Extend("str_trim", str1(String))
	env = env.Extend("str_upper", str1(String))
	env = env.Extend("str_lower", str1(String))
	env = env.Extend("str_chars", str1(List{Elem: String}))

	env = env.Extend("str_concat", Mono(Arrow{String, Arrow{String, String}}))
	env = env.Extend("str_contains", Mono(Arrow{String, Arrow{String, Bool}}))
	env = env.Extend("str_split", Mono(Arrow{String, Arrow{String, List{Elem: String}}}))
	env = env.Extend("str_replace", Mono(Arrow{String, Arrow{String, Arrow{String, String}}}))
	env = env.Extend("str_starts_with", Mono(Arrow{String, Arrow{String, Bool}}))
	env = env.Extend("str_ends_with", Mono(Arrow{String, Arrow{String, Bool}}))
	env = env.Extend("str_substring", Mono(Arrow{String, Arrow{Int, Arrow{Int, String}}}))

	env = env.Extend("length", poly1(func(a Type) Type { return Arrow{List{Elem: a}, Int} }))
	env = env.Extend("head", poly1(func(a Type) Type { return Arrow{List{Elem: a}, a} }))
	env = env.Extend("tail", poly1(func(a Type) Type { return Arrow{List{Elem: a}, List{Elem: a}} }))
	env = env.Extend("reverse", poly1(func(a Type) Type { return Arrow{List{Elem: a}, List{Elem: a}} }))
	env = env.Extend("append", poly1(func(a Type) Type {
		return Arrow{List{Elem: a}, Arrow{List{Elem: a}, List{Elem: a}}}
	}))
	env = env.Extend("range", Mono(Arrow{Int, Arrow{Int, List{Elem: Int}}}))
	env = env.Extend("nth", poly1(func(a Type) Type { return Arrow{List{Elem: a}, Arrow{Int, a}} }))
	env = env.Extend("take", poly1(func(a Type) Type { return Arrow{Int, Arrow{List{Elem: a}, List{Elem: a}}} }))
	env = env.Extend("drop", poly1(func(a Type) Type { return Arrow{Int, Arrow{List{Elem: a}, List{Elem: a}}} }))
	env = env.Extend("flatten", poly1(func(a Type) Type {
		return Arrow{List{Elem: List{Elem: a}}, List{Elem: a}}
	}))
	env = env.Extend("sum", Mono(Arrow{List{Elem: Int}, Int}))
	env = env.Extend("product", Mono(Arrow{List{Elem: Int}, Int}))
	env = env.Extend("sort", poly1(func(a Type) Type { return Arrow{List{Elem: a}, List{Elem: a}} }))

	env = env.Extend("abs", Mono(Arrow{Int, Int}))
	env = env.Extend("min", Mono(Arrow{Int, Arrow{Int, Int}}))
	env = env.Extend("max", Mono(Arrow{Int, Arrow{Int, Int}}))
	env = env.Extend("pow", Mono(Arrow{Int, Arrow{Int, Int}}))
	env = env.Extend("float_of_int", Mono(Arrow{Int, Float}))
	env = env.Extend("int_of_float", Mono(Arrow{Float, Int}))
	env = env.Extend("string_to_int", Mono(Arrow{String, Int}))
	env = env.Extend("int_to_string", Mono(Arrow{Int, String}))

	env = env.Extend("map", poly2(func(a, b Type) Type {
		return Arrow{Arrow{a, b}, Arrow{List{Elem: a}, List{Elem: b}}}
	}))
	env = env.Extend("filter", poly1(func(a Type) Type {
		return Arrow{Arrow{a, Bool}, Arrow{List{Elem: a}, List{Elem: a}}}
	}))
	env = env.Extend("fold", poly2(func(a, b Type) Type {
		return Arrow{b, Arrow{Arrow{b, Arrow{a, b}}, Arrow{List{Elem: a}, b}}}
	}))
	env = env.Extend("zip", poly2(func(a, b Type) Type {
		return Arrow{List{Elem: a}, Arrow{List{Elem: b}, List{Elem: Tuple{Elems: []Type{a, b}}}}}
	}))
	env = env.Extend("any", poly1(func(a Type) Type {
		return Arrow{Arrow{a, Bool}, Arrow{List{Elem: a}, Bool}}
	}))
	env = env.Extend("all", poly1(func(a Type) Type {
		return Arrow{Arrow{a, Bool}, Arrow{List{Elem: a}, Bool}}
	}))

	return env
}
