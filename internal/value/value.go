// Package value defines the single runtime Value representation shared by
// the tree-walking evaluator and the bytecode VM (§3's "Value (runtime,
// shared by both back-ends)"). Keeping one Value type in its own package
// (rather than funxy's two-object-system split — a tree `evaluator.Object`
// and a separate `vm.Value`) is the one structural place Lyra departs from
// funxy's package layout, and it does so because §3 requires it: "The two
// back-ends must agree on observable results" is only checkable at all if
// they compute over the same data.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Kind tags a Value's runtime shape, mirroring funxy's ObjectType string
// constants (funvibe-funxy/internal/evaluator/object.go) but trimmed to
// exactly the variants §3 lists.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindUnit
	KindList
	KindTuple
	KindRecord
	KindClosure     // tree-walking closure
	KindBuiltin
	KindPartialApp
	KindAdt
	KindFunction    // compiled, no upvalues
	KindClosureVal  // compiled, with upvalues
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindUnit:
		return "Unit"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindRecord:
		return "Record"
	case KindClosure, KindFunction, KindClosureVal:
		return "Function"
	case KindBuiltin:
		return "Builtin"
	case KindPartialApp:
		return "PartialApplication"
	case KindAdt:
		return "Adt"
	default:
		return "?"
	}
}

// Value is the shared runtime value. Every concrete form below implements
// it.
type Value interface {
	Kind() Kind
	Inspect() string
}

type Int struct{ Value int64 }

func (Int) Kind() Kind          { return KindInt }
func (v Int) Inspect() string   { return fmt.Sprintf("%d", v.Value) }

type Float struct{ Value float64 }

func (Float) Kind() Kind        { return KindFloat }
func (v Float) Inspect() string { return fmt.Sprintf("%g", v.Value) }

type Bool struct{ Value bool }

func (Bool) Kind() Kind        { return KindBool }
func (v Bool) Inspect() string { return fmt.Sprintf("%t", v.Value) }

type String struct{ Value string }

func (String) Kind() Kind        { return KindString }
func (v String) Inspect() string { return v.Value }

type Unit struct{}

func (Unit) Kind() Kind        { return KindUnit }
func (Unit) Inspect() string   { return "()" }

type List struct{ Elements []Value }

func (List) Kind() Kind { return KindList }
func (v List) Inspect() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type Tuple struct{ Elements []Value }

func (Tuple) Kind() Kind { return KindTuple }
func (v Tuple) Inspect() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordField is one (name, value) entry of a Record, kept in a
// lexicographically ordered slice per §3's "ordered map" invariant.
type RecordField struct {
	Name  string
	Value Value
}

type Record struct{ Fields []RecordField }

// NewRecord sorts fields by name, since construction order is not
// semantically meaningful once built (field lookups are by name).
func NewRecord(fields []RecordField) Record {
	out := make([]RecordField, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return Record{Fields: out}
}

func (Record) Kind() Kind { return KindRecord }
func (v Record) Inspect() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name + ": " + f.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Lookup returns the named field and whether it exists.
func (v Record) Lookup(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Environment is the tree-walking back end's lexical scope chain:
// name -> Value frames, child shadows parent, writes land in the youngest
// frame. Grounded on funvibe-funxy/internal/evaluator/environment.go's
// `{store, outer}` chain, but without its `sync.RWMutex` — §5 makes
// execution strictly single-threaded, so there is nothing to guard.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates an empty top-level environment.
func NewEnvironment() *Environment {
	return &Environment{store: map[string]Value{}}
}

// Extend creates a child scope of e.
func (e *Environment) Extend() *Environment {
	return &Environment{store: map[string]Value{}, outer: e}
}

// Get walks the chain from youngest to oldest.
func (e *Environment) Get(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.outer {
		if v, ok := cur.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in the youngest (current) frame.
func (e *Environment) Set(name string, v Value) {
	e.store[name] = v
}

// Names collects every bound name reachable from e, for Levenshtein
// suggestion candidates on an UndefinedVariable runtime error.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var out []string
	for cur := e; cur != nil; cur = cur.outer {
		for name := range cur.store {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Closure is a tree-walking function value: its parameters, body, the
// environment captured at creation, and an optional self-name so a
// recursive call can re-bind its own name without creating a cycle in the
// value graph (§9's "recursive closures" redesign note).
type Closure struct {
	Params  []ast.Param
	Body    ast.Expr
	Env     *Environment
	SelfName string // "" if not a named/recursive binding
}

func (Closure) Kind() Kind        { return KindClosure }
func (c Closure) Inspect() string { return fmt.Sprintf("<closure/%d>", len(c.Params)) }

// BuiltinFn is a builtin's Go implementation. It receives an ApplyFunc so
// higher-order builtins (map, filter, fold, any, all, zip-with-style
// callers) can invoke a user-supplied function value without the builtin
// package needing to import the evaluator or VM — see apply.go.
type BuiltinFn func(apply ApplyFunc, args []Value) (Value, error)

// ApplyFunc is the explicit apply-boundary parameter described in §9: no
// ambient/thread-local VM-globals handoff, just an ordinary function
// value threaded wherever a builtin needs to call back into user code.
type ApplyFunc func(fn Value, args []Value) (Value, error)

type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFn
}

func (Builtin) Kind() Kind        { return KindBuiltin }
func (b Builtin) Inspect() string { return "<builtin " + b.Name + ">" }

// PartialApp holds a callable value together with the arguments already
// supplied to it, short of its full arity.
type PartialApp struct {
	Fn          Value
	AppliedArgs []Value
}

func (PartialApp) Kind() Kind        { return KindPartialApp }
func (p PartialApp) Inspect() string { return fmt.Sprintf("<partial %d args>", len(p.AppliedArgs)) }

// Adt is a constructed algebraic-data-type value.
type Adt struct {
	Constructor string
	Fields      []Value
}

func (Adt) Kind() Kind { return KindAdt }
func (v Adt) Inspect() string {
	if len(v.Fields) == 0 {
		return v.Constructor
	}
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Inspect()
	}
	return v.Constructor + "(" + strings.Join(parts, ", ") + ")"
}

// UpvalueRef describes how a compiled closure captures one upvalue slot:
// from the enclosing frame's locals (IsLocal=true) or from the enclosing
// frame's own upvalues (IsLocal=false), deduplicated by (IsLocal, Index)
// at compile time (§4.3).
type UpvalueRef struct {
	IsLocal bool
	Index   int
}

// Chunk is one function's compiled code: an ordered opcode byte stream,
// an append-only constants pool (which may itself hold *FunctionProto
// values for nested functions — the only place function code appears as
// data, §9), and source spans aligned 1:1 with Code for diagnostics.
type Chunk struct {
	Code      []byte
	Constants []Value
	Spans     []token.Span
}

// FunctionProto is a compiled function's static description (§3).
//
// NumLocals is the peak local-slot count the compiler assigned this
// function's body (params plus every let/match-introduced binding
// live at once at the deepest point). The VM uses it to size a
// per-frame array of *Value cells — see internal/vm's DESIGN.md entry
// for why locals are boxed cells here rather than slots shared with the
// operand stack: it lets a closure capture an enclosing local by a
// stable pointer without aliasing into a stack slice that may
// reallocate as it grows.
//
// SelfSlot is the local-cell index a `let rec` binding's own name
// resolves to inside its own body, or -1 if this function is not such a
// binding. The VM fills that cell with the closure being invoked at the
// start of every call (pushFrame/dispatchCall in internal/vm), not at
// closure-construction time — see ClosureVal's doc comment for why.
type FunctionProto struct {
	Name         string
	Arity        int
	Chunk        *Chunk
	NumLocals    int
	UpvalueCount int
	UpvalueRefs  []UpvalueRef
	SelfSlot     int
}

func (*FunctionProto) Kind() Kind { return KindFunction }
func (p *FunctionProto) Inspect() string {
	if p.Name == "" {
		return "<fn>"
	}
	return "<fn " + p.Name + ">"
}

// ClosureVal is a compiled function together with the upvalues captured
// at its creation. Each upvalue is a shared *Value cell (not a plain
// Value copy), letting a nested closure capture an enclosing local by a
// stable pointer.
//
// A ClosureVal never has an upvalue that can end up pointing back at a
// cell holding itself: `let rec` self-reference is resolved through
// FunctionProto.SelfSlot instead, a plain per-call local the VM
// populates with the closure argument to pushFrame/dispatchCall before
// the body runs. Upvalues are fixed once at OpClosure time from the
// *enclosing* frame's already-existing cells and are never rewritten
// afterward, the compiled-back-end equivalent of the tree-walking
// Closure's SelfName-resolved-at-call-time design (§9).
type ClosureVal struct {
	Proto    *FunctionProto
	Upvalues []*Value
}

func (ClosureVal) Kind() Kind { return KindClosureVal }
func (c ClosureVal) Inspect() string {
	return "<closure " + c.Proto.Inspect() + ">"
}

// Equal is structural equality on data carriers; function-valued variants
// are never equal, even to themselves (§3).
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Int:
		return av.Value == b.(Int).Value
	case Float:
		// Native float64 ==: IEEE 754 comparison, so NaN != NaN and
		// -0.0 == 0.0. See DESIGN.md's Open Question resolution.
		return av.Value == b.(Float).Value
	case Bool:
		return av.Value == b.(Bool).Value
	case String:
		return av.Value == b.(String).Value
	case Unit:
		return true
	case List:
		bv := b.(List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case Tuple:
		bv := b.(Tuple)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case Record:
		bv := b.(Record)
		if len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name {
				return false
			}
			if !Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case Adt:
		bv := b.(Adt)
		if av.Constructor != bv.Constructor || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !Equal(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true
	default:
		// Closure, Builtin, PartialApp, FunctionProto, ClosureVal: function
		// equality is always false (§3).
		return false
	}
}
