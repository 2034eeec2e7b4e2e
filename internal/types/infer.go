package types

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// ConstructorInfo is built exactly once per variant at type-decl
// registration (§3).
type ConstructorInfo struct {
	OwningType    string
	TypeParams    []string
	TypeParamVars []int // the owning type's declared parameter Var ids, in declaration order
	Fields        []Type
}

// Inferencer holds the whole-session state: the variable-id counter (ids
// must be globally unique within a session, §3), the constructor registry,
// and the per-ADT variant list exhaustiveness needs.
type Inferencer struct {
	nextID       int
	Constructors map[string]ConstructorInfo
	Variants     map[string][]string // ADT name -> constructor names, in declaration order
	Warnings     []*diagnostics.Diagnostic
}

// NewInferencer builds an Inferencer with an empty constructor registry.
func NewInferencer() *Inferencer {
	return &Inferencer{
		Constructors: map[string]ConstructorInfo{},
		Variants:     map[string][]string{},
	}
}

// Fresh allocates a new, session-unique type variable.
func (inf *Inferencer) Fresh() Type {
	v := Var{ID: inf.nextID}
	inf.nextID++
	return v
}

// InferProgram type-checks every declaration in prog against baseEnv (the
// prelude/stdlib environment), returning the final environment (for REPL
// persistence) and every diagnostic produced. Per §7, a unification
// failure aborts only the declaration it occurred in; inference continues
// with the next declaration using the environment as of the last success.
func (inf *Inferencer) InferProgram(prog *ast.Program, baseEnv *Env) (*Env, []*diagnostics.Diagnostic) {
	env := baseEnv
	var diags []*diagnostics.Diagnostic
	for _, decl := range prog.Decls {
		var d *diagnostics.Diagnostic
		env, d = inf.inferDecl(env, decl)
		if d != nil {
			diags = append(diags, d)
		}
	}
	diags = append(diags, inf.Warnings...)
	return env, diags
}

func (inf *Inferencer) inferDecl(env *Env, decl ast.Decl) (*Env, *diagnostics.Diagnostic) {
	switch d := decl.(type) {
	case *ast.ImportDecl:
		// Imports are spliced by internal/modules before inference ever
		// runs; by the time a Program reaches the inferencer no
		// ImportDecl should remain live, but tolerate a stray one as a
		// no-op rather than erroring the whole file.
		return env, nil

	case *ast.TypeDecl:
		return inf.registerTypeDecl(env, d)

	case *ast.LetDecl:
		return inf.inferLetDecl(env, d)

	case *ast.ExprDecl:
		_, _, err := inf.InferExpr(env, d.Expr)
		if err != nil {
			return env, err
		}
		return env, nil

	default:
		return env, nil
	}
}

func (inf *Inferencer) inferLetDecl(env *Env, d *ast.LetDecl) (*Env, *diagnostics.Diagnostic) {
	if d.Recursive {
		placeholder := inf.Fresh()
		recEnv := env.Extend(d.Name, Mono(placeholder))
		bodyT, s, err := inf.InferExpr(recEnv, d.Body)
		if err != nil {
			return env, err
		}
		s2, err := Unify(placeholder.Apply(s), bodyT, d.Body.Span())
		if err != nil {
			return env, err
		}
		final := bodyT.Apply(s2)
		scheme := Generalize(env, final)
		return env.Extend(d.Name, scheme), nil
	}

	bodyT, _, err := inf.InferExpr(env, d.Body)
	if err != nil {
		return env, err
	}
	scheme := Generalize(env, bodyT)
	return env.Extend(d.Name, scheme), nil
}

// registerTypeDecl builds the curried constructor scheme for each variant
// and stores its ConstructorInfo, per §4.2's "Type-decl registration".
func (inf *Inferencer) registerTypeDecl(env *Env, d *ast.TypeDecl) (*Env, *diagnostics.Diagnostic) {
	paramVars := make([]Type, len(d.TypeParams))
	paramIDs := make([]int, len(d.TypeParams))
	paramEnv := map[string]Type{}
	for i, name := range d.TypeParams {
		v := inf.Fresh().(Var)
		paramVars[i] = v
		paramIDs[i] = v.ID
		paramEnv[name] = v
	}

	var names []string
	for _, variant := range d.Variants {
		fields := make([]Type, len(variant.Fields))
		for i, f := range variant.Fields {
			fields[i] = inf.resolveSurfaceType(f, paramEnv)
		}
		inf.Constructors[variant.Name] = ConstructorInfo{
			OwningType:    d.Name,
			TypeParams:    d.TypeParams,
			TypeParamVars: paramIDs,
			Fields:        fields,
		}
		names = append(names, variant.Name)

		resultType := Con{Name: d.Name, Args: paramVars}
		ctorType := CurryArrow(fields, resultType)
		scheme := Scheme{Vars: paramIDs, Body: ctorType}
		env = env.Extend(variant.Name, scheme)
	}
	inf.Variants[d.Name] = names
	return env, nil
}

// resolveSurfaceType turns a surface ast.TypeAnnotation into a MonoType,
// resolving type-parameter names against paramEnv and ADT names against
// the constructor registry's owning types.
func (inf *Inferencer) resolveSurfaceType(ann ast.TypeAnnotation, paramEnv map[string]Type) Type {
	switch t := ann.(type) {
	case *ast.NamedType:
		switch t.Name {
		case "Int":
			return Int
		case "Float":
			return Float
		case "Bool":
			return Bool
		case "String":
			return String
		case "Unit":
			return Unit
		default:
			return Con{Name: t.Name}
		}
	case *ast.VarType:
		if v, ok := paramEnv[t.Name]; ok {
			return v
		}
		v := inf.Fresh()
		paramEnv[t.Name] = v
		return v
	case *ast.ArrowType:
		return Arrow{From: inf.resolveSurfaceType(t.From, paramEnv), To: inf.resolveSurfaceType(t.To, paramEnv)}
	case *ast.AppType:
		head := inf.resolveSurfaceType(t.Head, paramEnv)
		con, ok := head.(Con)
		if !ok {
			return head
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = inf.resolveSurfaceType(a, paramEnv)
		}
		return Con{Name: con.Name, Args: args}
	case *ast.TupleType:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = inf.resolveSurfaceType(e, paramEnv)
		}
		return Tuple{Elems: elems}
	case *ast.ListType:
		return List{Elem: inf.resolveSurfaceType(t.Element, paramEnv)}
	case *ast.UnitType:
		return Unit
	default:
		return inf.Fresh()
	}
}

// ---- expression typing ----

// InferExpr implements §4.2's expression typing rules, returning the
// expression's type and the substitution accumulated while inferring it.
func (inf *Inferencer) InferExpr(env *Env, expr ast.Expr) (Type, Subst, *diagnostics.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return Int, Subst{}, nil
	case *ast.FloatLit:
		return Float, Subst{}, nil
	case *ast.BoolLit:
		return Bool, Subst{}, nil
	case *ast.StringLit:
		return String, Subst{}, nil
	case *ast.UnitLit:
		return Unit, Subst{}, nil

	case *ast.Ident:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nil, undefinedVariable(e.Name, e.Tok.Span, env.Names())
		}
		return inf.Instantiate(scheme), Subst{}, nil

	case *ast.ListLit:
		return inf.inferList(env, e)
	case *ast.TupleLit:
		return inf.inferTuple(env, e)
	case *ast.RecordLit:
		return inf.inferRecord(env, e)
	case *ast.Lambda:
		return inf.inferLambda(env, e)
	case *ast.Apply:
		return inf.inferApply(env, e)
	case *ast.Binary:
		return inf.inferBinary(env, e)
	case *ast.Unary:
		return inf.inferUnary(env, e)
	case *ast.Pipe:
		return inf.inferPipe(env, e)
	case *ast.If:
		return inf.inferIf(env, e)
	case *ast.LetIn:
		return inf.inferLetIn(env, e)
	case *ast.Match:
		return inf.inferMatch(env, e)
	case *ast.Interp:
		return inf.inferInterp(env, e)
	case *ast.FieldAccess:
		return inf.inferFieldAccess(env, e)

	default:
		return inf.Fresh(), Subst{}, nil
	}
}

func (inf *Inferencer) inferList(env *Env, e *ast.ListLit) (Type, Subst, *diagnostics.Diagnostic) {
	if len(e.Elements) == 0 {
		return List{Elem: inf.Fresh()}, Subst{}, nil
	}
	firstT, acc, err := inf.InferExpr(env, e.Elements[0])
	if err != nil {
		return nil, nil, err
	}
	for _, elem := range e.Elements[1:] {
		t, s, err := inf.InferExpr(env, elem)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
		u, err := Unify(firstT.Apply(acc), t.Apply(acc), elem.Span())
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(u, acc)
	}
	return List{Elem: firstT.Apply(acc)}, acc, nil
}

func (inf *Inferencer) inferTuple(env *Env, e *ast.TupleLit) (Type, Subst, *diagnostics.Diagnostic) {
	acc := Subst{}
	elems := make([]Type, len(e.Elements))
	for i, elem := range e.Elements {
		t, s, err := inf.InferExpr(env, elem)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
		elems[i] = t
	}
	for i, t := range elems {
		elems[i] = t.Apply(acc)
	}
	return Tuple{Elems: elems}, acc, nil
}

func (inf *Inferencer) inferRecord(env *Env, e *ast.RecordLit) (Type, Subst, *diagnostics.Diagnostic) {
	acc := Subst{}
	fields := make([]RecordField, len(e.Fields))
	for i, f := range e.Fields {
		t, s, err := inf.InferExpr(env, f.Value)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
		fields[i] = RecordField{Name: f.Name, Type: t}
	}
	for i, f := range fields {
		fields[i] = RecordField{Name: f.Name, Type: f.Type.Apply(acc)}
	}
	return NewRecord(fields), acc, nil
}

func (inf *Inferencer) inferLambda(env *Env, e *ast.Lambda) (Type, Subst, *diagnostics.Diagnostic) {
	paramTypes := make([]Type, len(e.Params))
	bodyEnv := env
	for i, p := range e.Params {
		v := inf.Fresh()
		paramTypes[i] = v
		bodyEnv = bodyEnv.Extend(p.Name, Mono(v))
	}
	bodyT, s, err := inf.InferExpr(bodyEnv, e.Body)
	if err != nil {
		return nil, nil, err
	}
	for i, t := range paramTypes {
		paramTypes[i] = t.Apply(s)
	}
	return CurryArrow(paramTypes, bodyT), s, nil
}

func (inf *Inferencer) inferApply(env *Env, e *ast.Apply) (Type, Subst, *diagnostics.Diagnostic) {
	fnT, acc, err := inf.InferExpr(env, e.Fn)
	if err != nil {
		return nil, nil, err
	}
	for _, arg := range e.Args {
		argT, s, err := inf.InferExpr(env, arg)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
		ret := inf.Fresh()
		expected := Arrow{From: argT.Apply(acc), To: ret}
		u, err := Unify(fnT.Apply(acc), expected, arg.Span())
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(u, acc)
		fnT = ret.Apply(acc)
	}
	return fnT, acc, nil
}

var arithCandidates = []Type{Int, Float}
var addCandidates = []Type{Int, Float, String}

func (inf *Inferencer) inferBinary(env *Env, e *ast.Binary) (Type, Subst, *diagnostics.Diagnostic) {
	lt, s1, err := inf.InferExpr(env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	rt, s2, err := inf.InferExpr(env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	acc := Compose(s2, s1)

	switch e.Op {
	case ast.OpAnd, ast.OpOr:
		u1, err := Unify(lt.Apply(acc), Bool, e.Left.Span())
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(u1, acc)
		u2, err := Unify(rt.Apply(acc), Bool, e.Right.Span())
		if err != nil {
			return nil, nil, err
		}
		return Bool, Compose(u2, acc), nil

	case ast.OpCons:
		expected := List{Elem: lt.Apply(acc)}
		u, err := Unify(rt.Apply(acc), expected, e.Span())
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(u, acc)
		return expected.Apply(acc), acc, nil
	}

	u, err := Unify(lt.Apply(acc), rt.Apply(acc), e.Span())
	if err != nil {
		return nil, nil, err
	}
	acc = Compose(u, acc)
	opT := lt.Apply(acc)

	switch e.Op {
	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return Bool, acc, nil

	case ast.Add:
		return inf.resolveNumericOrString(opT, addCandidates, acc, e.Span())
	case ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return inf.resolveNumericOrString(opT, arithCandidates, acc, e.Span())
	}
	return opT, acc, nil
}

// resolveNumericOrString implements §4.2's "unify the unified operand type
// against Int, falling back to Float" preference (extended to String for
// `+`, since that operator also supports runtime concatenation).
func (inf *Inferencer) resolveNumericOrString(opT Type, candidates []Type, acc Subst, span token.Span) (Type, Subst, *diagnostics.Diagnostic) {
	for _, cand := range candidates {
		if s, err := Unify(opT, cand, span); err == nil {
			return cand, Compose(s, acc), nil
		}
	}
	return nil, nil, diagnostics.New(diagnostics.Type, "T001", span,
		"type mismatch: expected Int or Float, found %s", opT.String())
}

func (inf *Inferencer) inferUnary(env *Env, e *ast.Unary) (Type, Subst, *diagnostics.Diagnostic) {
	t, s, err := inf.InferExpr(env, e.Operand)
	if err != nil {
		return nil, nil, err
	}
	if e.Op == ast.Not {
		u, err := Unify(t.Apply(s), Bool, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return Bool, Compose(u, s), nil
	}
	return inf.resolveNumericOrString(t.Apply(s), arithCandidates, s, e.Span())
}

func (inf *Inferencer) inferPipe(env *Env, e *ast.Pipe) (Type, Subst, *diagnostics.Diagnostic) {
	// Pipe types as application of rhs to lhs (§4.2): `lhs |> rhs` ~ `rhs(lhs)`.
	rt, s1, err := inf.InferExpr(env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	lt, s2, err := inf.InferExpr(env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	acc := Compose(s2, s1)
	ret := inf.Fresh()
	expected := Arrow{From: lt.Apply(acc), To: ret}
	u, err := Unify(rt.Apply(acc), expected, e.Span())
	if err != nil {
		return nil, nil, err
	}
	acc = Compose(u, acc)
	return ret.Apply(acc), acc, nil
}

func (inf *Inferencer) inferIf(env *Env, e *ast.If) (Type, Subst, *diagnostics.Diagnostic) {
	condT, s1, err := inf.InferExpr(env, e.Cond)
	if err != nil {
		return nil, nil, err
	}
	u0, err := Unify(condT.Apply(s1), Bool, e.Cond.Span())
	if err != nil {
		return nil, nil, err
	}
	acc := Compose(u0, s1)

	thenT, s2, err := inf.InferExpr(env, e.Then)
	if err != nil {
		return nil, nil, err
	}
	acc = Compose(s2, acc)

	elseT, s3, err := inf.InferExpr(env, e.Else)
	if err != nil {
		return nil, nil, err
	}
	acc = Compose(s3, acc)

	u, err := Unify(thenT.Apply(acc), elseT.Apply(acc), e.Span())
	if err != nil {
		return nil, nil, err
	}
	acc = Compose(u, acc)
	return thenT.Apply(acc), acc, nil
}

func (inf *Inferencer) inferLetIn(env *Env, e *ast.LetIn) (Type, Subst, *diagnostics.Diagnostic) {
	if e.Recursive {
		placeholder := inf.Fresh()
		recEnv := env.Extend(e.Name, Mono(placeholder))
		valueT, s, err := inf.InferExpr(recEnv, e.Value)
		if err != nil {
			return nil, nil, err
		}
		u, err := Unify(placeholder.Apply(s), valueT, e.Value.Span())
		if err != nil {
			return nil, nil, err
		}
		acc := Compose(u, s)
		scheme := Generalize(env, valueT.Apply(acc))
		bodyT, s2, err := inf.InferExpr(env.Extend(e.Name, scheme), e.Body)
		if err != nil {
			return nil, nil, err
		}
		return bodyT, Compose(s2, acc), nil
	}

	valueT, s, err := inf.InferExpr(env, e.Value)
	if err != nil {
		return nil, nil, err
	}
	scheme := Generalize(env, valueT.Apply(s))
	bodyT, s2, err := inf.InferExpr(env.Extend(e.Name, scheme), e.Body)
	if err != nil {
		return nil, nil, err
	}
	return bodyT, Compose(s2, s), nil
}

func (inf *Inferencer) inferMatch(env *Env, e *ast.Match) (Type, Subst, *diagnostics.Diagnostic) {
	scrutT, acc, err := inf.InferExpr(env, e.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	resultT := inf.Fresh()

	for _, arm := range e.Arms {
		armEnv, s, err := inf.InferPattern(env, arm.Pattern, scrutT.Apply(acc))
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
		bodyT, s2, err := inf.InferExpr(armEnv, arm.Body)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s2, acc)
		u, err := Unify(resultT.Apply(acc), bodyT.Apply(acc), arm.Body.Span())
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(u, acc)
	}

	patterns := make([]ast.Pattern, len(e.Arms))
	for i, arm := range e.Arms {
		patterns[i] = arm.Pattern
	}
	inf.checkExhaustiveness(scrutT.Apply(acc), patterns, e.Span())

	return resultT.Apply(acc), acc, nil
}

func (inf *Inferencer) inferInterp(env *Env, e *ast.Interp) (Type, Subst, *diagnostics.Diagnostic) {
	acc := Subst{}
	for _, part := range e.Parts {
		if part.Expr == nil {
			continue
		}
		_, s, err := inf.InferExpr(env, part.Expr)
		if err != nil {
			return nil, nil, err
		}
		acc = Compose(s, acc)
	}
	return String, acc, nil
}

func (inf *Inferencer) inferFieldAccess(env *Env, e *ast.FieldAccess) (Type, Subst, *diagnostics.Diagnostic) {
	objT, s, err := inf.InferExpr(env, e.Object)
	if err != nil {
		return nil, nil, err
	}
	fieldT := inf.Fresh()
	expected := Record{Fields: []RecordField{{Name: e.Field, Type: fieldT}}}
	u, err := Unify(objT.Apply(s), expected, e.Span())
	if err != nil {
		return nil, nil, err
	}
	acc := Compose(u, s)
	return fieldT.Apply(acc), acc, nil
}

// ---- pattern typing ----

// InferPattern types pat against the expected scrutinee type T, returning
// the environment extended with the pattern's bindings (§4.2).
func (inf *Inferencer) InferPattern(env *Env, pat ast.Pattern, t Type) (*Env, Subst, *diagnostics.Diagnostic) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return env, Subst{}, nil

	case *ast.VarPattern:
		return env.Extend(p.Name, Mono(t)), Subst{}, nil

	case *ast.LiteralPattern:
		var lt Type
		switch p.Kind {
		case ast.LitInt:
			lt = Int
		case ast.LitFloat:
			lt = Float
		case ast.LitString:
			lt = String
		case ast.LitBool:
			lt = Bool
		case ast.LitUnit:
			lt = Unit
		}
		s, err := Unify(t, lt, p.Span())
		if err != nil {
			return nil, nil, err
		}
		return env, s, nil

	case *ast.TuplePattern:
		elemVars := make([]Type, len(p.Elements))
		for i := range elemVars {
			elemVars[i] = inf.Fresh()
		}
		s0, err := Unify(t, Tuple{Elems: elemVars}, p.Span())
		if err != nil {
			return nil, nil, err
		}
		acc := s0
		cur := env
		for i, elemPat := range p.Elements {
			var s Subst
			var err *diagnostics.Diagnostic
			cur, s, err = inf.InferPattern(cur, elemPat, elemVars[i].Apply(acc))
			if err != nil {
				return nil, nil, err
			}
			acc = Compose(s, acc)
		}
		return cur, acc, nil

	case *ast.ListPattern:
		elemVar := inf.Fresh()
		s0, err := Unify(t, List{Elem: elemVar}, p.Span())
		if err != nil {
			return nil, nil, err
		}
		acc := s0
		cur := env
		for _, elemPat := range p.Elements {
			var s Subst
			var err *diagnostics.Diagnostic
			cur, s, err = inf.InferPattern(cur, elemPat, elemVar.Apply(acc))
			if err != nil {
				return nil, nil, err
			}
			acc = Compose(s, acc)
		}
		return cur, acc, nil

	case *ast.ConsPattern:
		elemVar := inf.Fresh()
		s0, err := Unify(t, List{Elem: elemVar}, p.Span())
		if err != nil {
			return nil, nil, err
		}
		headEnv, s1, err := inf.InferPattern(env, p.Head, elemVar.Apply(s0))
		if err != nil {
			return nil, nil, err
		}
		acc := Compose(s1, s0)
		tailEnv, s2, err := inf.InferPattern(headEnv, p.Tail, List{Elem: elemVar}.Apply(acc))
		if err != nil {
			return nil, nil, err
		}
		return tailEnv, Compose(s2, acc), nil

	case *ast.ConstructorPattern:
		return inf.inferConstructorPattern(env, p, t)

	default:
		return env, Subst{}, nil
	}
}

func (inf *Inferencer) inferConstructorPattern(env *Env, p *ast.ConstructorPattern, t Type) (*Env, Subst, *diagnostics.Diagnostic) {
	info, ok := inf.Constructors[p.Name]
	if !ok {
		var names []string
		for name := range inf.Constructors {
			names = append(names, name)
		}
		return nil, nil, diagnostics.New(diagnostics.Type, "T004", p.Tok.Span,
			"undefined constructor: %s", p.Name).WithSuggestion(diagnostics.Suggest(p.Name, names))
	}
	if len(p.Args) != len(info.Fields) {
		return nil, nil, diagnostics.New(diagnostics.Type, "T005", p.Span(),
			"constructor %s expects %d argument(s), found %d", p.Name, len(info.Fields), len(p.Args))
	}

	sub := make(Subst, len(info.TypeParamVars))
	freshArgs := make([]Type, len(info.TypeParamVars))
	for i, id := range info.TypeParamVars {
		fresh := inf.Fresh()
		sub[id] = fresh
		freshArgs[i] = fresh
	}

	builtType := Con{Name: info.OwningType, Args: freshArgs}
	s0, err := Unify(t, builtType, p.Span())
	if err != nil {
		return nil, nil, err
	}

	acc := s0
	cur := env
	for i, argPat := range p.Args {
		fieldType := info.Fields[i].Apply(sub).Apply(acc)
		var s Subst
		var perr *diagnostics.Diagnostic
		cur, s, perr = inf.InferPattern(cur, argPat, fieldType)
		if perr != nil {
			return nil, nil, perr
		}
		acc = Compose(s, acc)
	}
	return cur, acc, nil
}

func undefinedVariable(name string, span token.Span, candidates []string) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.Type, "T003", span, "undefined variable: %s", name).
		WithSuggestion(diagnostics.Suggest(name, candidates))
}
