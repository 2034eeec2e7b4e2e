// Package types implements the Damas-Milner type inferencer: substitution,
// most-general unification with occurs-check, let-generalization, and
// instantiation, grounded on the Type interface shape of
// funvibe-funxy/internal/typesystem/types.go but trimmed to exactly the
// MonoType forms the language needs — no Kind, TForall, TUnion, row
// polymorphism, or trait Constraints, since overloading/typeclasses and row
// polymorphism beyond the one permissive-record rule are out of scope.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a monomorphic type. Every concrete form below implements it.
type Type interface {
	String() string
	Apply(s Subst) Type
	FreeVars() map[int]bool
}

// Var is an as-yet-unresolved type variable, identified by a session-unique
// id.
type Var struct{ ID int }

func (t Var) String() string { return fmt.Sprintf("t%d", t.ID) }

func (t Var) Apply(s Subst) Type {
	if bound, ok := s[t.ID]; ok {
		return bound.Apply(s)
	}
	return t
}

func (t Var) FreeVars() map[int]bool { return map[int]bool{t.ID: true} }

// PrimKind enumerates the five built-in primitive types.
type PrimKind int

const (
	IntKind PrimKind = iota
	FloatKind
	BoolKind
	StringKind
	UnitKind
)

func (k PrimKind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case FloatKind:
		return "Float"
	case BoolKind:
		return "Bool"
	case StringKind:
		return "String"
	case UnitKind:
		return "Unit"
	default:
		return "?"
	}
}

// Prim is one of the five primitive monotypes.
type Prim struct{ Kind PrimKind }

func (t Prim) String() string         { return t.Kind.String() }
func (t Prim) Apply(s Subst) Type     { return t }
func (t Prim) FreeVars() map[int]bool { return nil }

var (
	Int    = Prim{IntKind}
	Float  = Prim{FloatKind}
	Bool   = Prim{BoolKind}
	String = Prim{StringKind}
	Unit   = Prim{UnitKind}
)

// Arrow is a function type `From -> To`.
type Arrow struct{ From, To Type }

func (t Arrow) String() string { return parenIfArrow(t.From) + " -> " + t.To.String() }

func parenIfArrow(t Type) string {
	if _, ok := t.(Arrow); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func (t Arrow) Apply(s Subst) Type {
	return Arrow{From: t.From.Apply(s), To: t.To.Apply(s)}
}

func (t Arrow) FreeVars() map[int]bool {
	return union(t.From.FreeVars(), t.To.FreeVars())
}

// CurryArrow builds `params[0] -> params[1] -> … -> result`.
func CurryArrow(params []Type, result Type) Type {
	t := result
	for i := len(params) - 1; i >= 0; i-- {
		t = Arrow{From: params[i], To: t}
	}
	return t
}

// List is a homogeneous list type.
type List struct{ Elem Type }

func (t List) String() string         { return "[" + t.Elem.String() + "]" }
func (t List) Apply(s Subst) Type     { return List{Elem: t.Elem.Apply(s)} }
func (t List) FreeVars() map[int]bool { return t.Elem.FreeVars() }

// Tuple is a fixed-arity heterogeneous product.
type Tuple struct{ Elems []Type }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) Apply(s Subst) Type {
	out := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		out[i] = e.Apply(s)
	}
	return Tuple{Elems: out}
}

func (t Tuple) FreeVars() map[int]bool {
	var fv map[int]bool
	for _, e := range t.Elems {
		fv = union(fv, e.FreeVars())
	}
	return fv
}

// Con is a declared ADT applied to its type arguments, e.g. `Option Int`.
type Con struct {
	Name string
	Args []Type
}

func (t Con) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + " " + strings.Join(parts, " ")
}

func (t Con) Apply(s Subst) Type {
	out := make([]Type, len(t.Args))
	for i, a := range t.Args {
		out[i] = a.Apply(s)
	}
	return Con{Name: t.Name, Args: out}
}

func (t Con) FreeVars() map[int]bool {
	var fv map[int]bool
	for _, a := range t.Args {
		fv = union(fv, a.FreeVars())
	}
	return fv
}

// RecordField is one (name, type) entry of a Record, kept sorted by Name so
// two structurally equal records always print and compare identically.
type RecordField struct {
	Name string
	Type Type
}

// Record is a field-name-indexed product, sorted lexicographically by field
// name per §3's determinism invariant.
type Record struct{ Fields []RecordField }

// NewRecord builds a Record from possibly-unsorted fields, sorting them.
func NewRecord(fields []RecordField) Record {
	out := make([]RecordField, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return Record{Fields: out}
}

func (t Record) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t Record) Apply(s Subst) Type {
	out := make([]RecordField, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = RecordField{Name: f.Name, Type: f.Type.Apply(s)}
	}
	return Record{Fields: out}
}

func (t Record) FreeVars() map[int]bool {
	var fv map[int]bool
	for _, f := range t.Fields {
		fv = union(fv, f.Type.FreeVars())
	}
	return fv
}

// Lookup returns the field's type and whether it is present.
func (t Record) Lookup(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func union(a, b map[int]bool) map[int]bool {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[int]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

// Subst is a finite map from type-variable id to the type it has been bound
// to. Apply chases a variable's binding transitively (Var.Apply above
// recurses through s), matching §4.2's "apply chases transitively" rule.
type Subst map[int]Type

// Compose returns `s1 ∘ s2`: s1 applied to every range value of s2, unioned
// with s1's own non-overlapping entries (§4.2).
func Compose(s1, s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for id, t := range s2 {
		out[id] = t.Apply(s1)
	}
	for id, t := range s1 {
		if _, exists := out[id]; !exists {
			out[id] = t
		}
	}
	return out
}
