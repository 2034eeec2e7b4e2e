package types

import (
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Unify computes the most general substitution equating t1 and t2, per
// §4.2. On failure it returns a TypeMismatch or InfiniteType diagnostic
// pointing at span.
func Unify(t1, t2 Type, span token.Span) (Subst, *diagnostics.Diagnostic) {
	switch a := t1.(type) {
	case Var:
		if b, ok := t2.(Var); ok && a.ID == b.ID {
			return Subst{}, nil
		}
		return bindVar(a, t2, span)
	}
	if b, ok := t2.(Var); ok {
		return bindVar(b, t1, span)
	}

	switch a := t1.(type) {
	case Prim:
		b, ok := t2.(Prim)
		if !ok || a.Kind != b.Kind {
			return nil, mismatch(t1, t2, span)
		}
		return Subst{}, nil

	case Arrow:
		b, ok := t2.(Arrow)
		if !ok {
			return nil, mismatch(t1, t2, span)
		}
		s1, err := Unify(a.From, b.From, span)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(a.To.Apply(s1), b.To.Apply(s1), span)
		if err != nil {
			return nil, err
		}
		return Compose(s2, s1), nil

	case List:
		b, ok := t2.(List)
		if !ok {
			return nil, mismatch(t1, t2, span)
		}
		return Unify(a.Elem, b.Elem, span)

	case Tuple:
		b, ok := t2.(Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return nil, mismatch(t1, t2, span)
		}
		return unifySeq(a.Elems, b.Elems, span)

	case Con:
		b, ok := t2.(Con)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, mismatch(t1, t2, span)
		}
		return unifySeq(a.Args, b.Args, span)

	case Record:
		b, ok := t2.(Record)
		if !ok {
			return nil, mismatch(t1, t2, span)
		}
		return unifyRecords(a, b, span)
	}

	return nil, mismatch(t1, t2, span)
}

// unifySeq unifies two equal-length type slices pairwise, left to right,
// threading the accumulated substitution through each subsequent pair.
func unifySeq(as, bs []Type, span token.Span) (Subst, *diagnostics.Diagnostic) {
	acc := Subst{}
	for i := range as {
		s, err := Unify(as[i].Apply(acc), bs[i].Apply(acc), span)
		if err != nil {
			return nil, err
		}
		acc = Compose(s, acc)
	}
	return acc, nil
}

// unifyRecords unifies over the intersection of field names; a field
// present in only one side is accepted without complaint — this is the
// permissive structural subtyping rule of §9, not full row polymorphism.
func unifyRecords(a, b Record, span token.Span) (Subst, *diagnostics.Diagnostic) {
	acc := Subst{}
	for _, fa := range a.Fields {
		fb, ok := b.Lookup(fa.Name)
		if !ok {
			continue
		}
		s, err := Unify(fa.Type.Apply(acc), fb.Apply(acc), span)
		if err != nil {
			return nil, err
		}
		acc = Compose(s, acc)
	}
	return acc, nil
}

// bindVar binds v to t after an occurs-check, per §4.2.
func bindVar(v Var, t Type, span token.Span) (Subst, *diagnostics.Diagnostic) {
	if occurs(v.ID, t) {
		return nil, diagnostics.New(diagnostics.Type, "T002", span,
			"infinite type: %s occurs in %s", v.String(), t.String())
	}
	return Subst{v.ID: t}, nil
}

func occurs(id int, t Type) bool {
	if tv, ok := t.(Var); ok {
		return tv.ID == id
	}
	return t.FreeVars()[id]
}

func mismatch(t1, t2 Type, span token.Span) *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.Type, "T001", span,
		"type mismatch: expected %s, found %s", t1.String(), t2.String())
}
