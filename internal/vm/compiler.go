package vm

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/token"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

type local struct {
	name  string
	depth int
	slot  int
}

type upvalRef struct {
	index   uint8
	isLocal bool
}

// funcScope is one compiler frame, grounded on §4.3's "compiler frame
// tracks an append-only locals[] ... and upvalues[]". Unlike the spec's
// literal description (locals sharing the same physical stack as
// temporaries), this compiler assigns each local its own numbered cell
// slot in a per-frame array separate from the VM's operand stack — see
// FunctionProto.NumLocals's doc comment for why.
type funcScope struct {
	parent     *funcScope
	chunk      *value.Chunk
	locals     []local
	upvalues   []upvalRef
	scopeDepth int
	nextSlot   int
	maxSlots   int
	arity      int
	name       string
}

func newFuncScope(parent *funcScope, name string, arity int) *funcScope {
	return &funcScope{parent: parent, chunk: newChunk(), arity: arity, name: name}
}

func (s *funcScope) beginScope() { s.scopeDepth++ }

// endScope drops every local declared at or below the current depth and
// returns how many were dropped (the compiler's own bookkeeping; no
// runtime stack cleanup is needed since locals live in a boxed per-frame
// array, not the operand stack — see funcScope's doc comment).
func (s *funcScope) endScope() int {
	n := 0
	for len(s.locals) > 0 && s.locals[len(s.locals)-1].depth >= s.scopeDepth {
		s.locals = s.locals[:len(s.locals)-1]
		n++
	}
	s.scopeDepth--
	return n
}

func (s *funcScope) addLocal(name string) int {
	slot := s.nextSlot
	s.nextSlot++
	if s.nextSlot > s.maxSlots {
		s.maxSlots = s.nextSlot
	}
	s.locals = append(s.locals, local{name: name, depth: s.scopeDepth, slot: slot})
	return slot
}

func resolveLocal(s *funcScope, name string) int {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].name == name {
			return s.locals[i].slot
		}
	}
	return -1
}

func resolveUpvalue(s *funcScope, name string) int {
	if s.parent == nil {
		return -1
	}
	if slot := resolveLocal(s.parent, name); slot != -1 {
		return addUpvalue(s, uint8(slot), true)
	}
	if idx := resolveUpvalue(s.parent, name); idx != -1 {
		return addUpvalue(s, uint8(idx), false)
	}
	return -1
}

func addUpvalue(s *funcScope, index uint8, isLocal bool) int {
	for i, u := range s.upvalues {
		if u.index == index && u.isLocal == isLocal {
			return i
		}
	}
	s.upvalues = append(s.upvalues, upvalRef{index: index, isLocal: isLocal})
	return len(s.upvalues) - 1
}

// Compiler lowers a checked *ast.Program into a root *value.FunctionProto
// (the synthetic `<main>`), per §4.3.
type Compiler struct {
	scope        *funcScope
	diags        []*diagnostics.Diagnostic
	variantArity map[string]int
}

// NewCompiler returns a ready Compiler.
func NewCompiler() *Compiler {
	return &Compiler{variantArity: map[string]int{}}
}

// Diagnostics returns every error recorded while compiling.
func (c *Compiler) Diagnostics() []*diagnostics.Diagnostic { return c.diags }

func (c *Compiler) errorf(span token.Span, code, format string, args ...interface{}) {
	c.diags = append(c.diags, diagnostics.New(diagnostics.Runtime, code, span, format, args...))
}

// CompileProgram compiles every declaration of prog into the body of a
// synthetic zero-arity `<main>` function, per §4.3's "Top-level program"
// rule.
func (c *Compiler) CompileProgram(prog *ast.Program) *value.FunctionProto {
	c.scope = newFuncScope(nil, "<main>", 0)

	lastWasExpr := false
	for i, decl := range prog.Decls {
		lastWasExpr = false
		switch d := decl.(type) {
		case *ast.ImportDecl:
			// already spliced/inlined before this stage.
		case *ast.TypeDecl:
			c.compileTypeDecl(d)
		case *ast.LetDecl:
			c.compileTopLevelLet(d)
		case *ast.ExprDecl:
			isLast := i == len(prog.Decls)-1
			c.compileExpr(d.Expr, false)
			if !isLast {
				emitOp(c.scope.chunk, OpPop, d.Expr.Span())
			} else {
				lastWasExpr = true
			}
		}
	}
	if !lastWasExpr {
		emitOp(c.scope.chunk, OpUnit, token.Span{})
	}
	emitOp(c.scope.chunk, OpReturn, token.Span{})

	root := c.scope
	return &value.FunctionProto{
		Name:      "<main>",
		Arity:     0,
		Chunk:     root.chunk,
		NumLocals: root.maxSlots,
		SelfSlot:  -1,
	}
}

func (c *Compiler) compileTopLevelLet(d *ast.LetDecl) {
	// Recursive and non-recursive top-level lets compile identically: a
	// recursive reference inside the value resolves via GetGlobal at call
	// time, by which point DefineGlobal below has already run (globals are
	// looked up dynamically, not captured at closure-creation time the way
	// a local upvalue would be).
	c.compileExpr(d.Body, false)
	nameIdx := addConstant(c.scope.chunk, value.String{Value: d.Name})
	emitOp(c.scope.chunk, OpDefineGlobal, d.Span())
	emitU16(c.scope.chunk, nameIdx, d.Span())
}

func (c *Compiler) compileTypeDecl(d *ast.TypeDecl) {
	for _, variant := range d.Variants {
		c.variantArity[variant.Name] = len(variant.Fields)
		if len(variant.Fields) == 0 {
			tagIdx := addConstant(c.scope.chunk, value.String{Value: variant.Name})
			emitOp(c.scope.chunk, OpMakeAdt, variant.Tok.Span)
			emitU16(c.scope.chunk, tagIdx, variant.Tok.Span)
			emitU8(c.scope.chunk, 0, variant.Tok.Span)
			nameIdx := addConstant(c.scope.chunk, value.String{Value: variant.Name})
			emitOp(c.scope.chunk, OpDefineGlobal, variant.Tok.Span)
			emitU16(c.scope.chunk, nameIdx, variant.Tok.Span)
			continue
		}
		c.compileConstructorWrapper(variant)
	}
}

// compileConstructorWrapper builds a tiny arity-N function `fn(a0..aN) ->
// MakeAdt(tag, N)` and binds it as a global, the compiled-back-end
// equivalent of internal/evaluator's registerConstructors.
func (c *Compiler) compileConstructorWrapper(v ast.Variant) {
	arity := len(v.Fields)
	parent := c.scope
	c.scope = newFuncScope(parent, v.Name, arity)
	for i := 0; i < arity; i++ {
		c.scope.addLocal(argName(i))
		emitOp(c.scope.chunk, OpGetLocal, v.Tok.Span)
		emitU8(c.scope.chunk, uint8(i), v.Tok.Span)
	}
	tagIdx := addConstant(c.scope.chunk, value.String{Value: v.Name})
	emitOp(c.scope.chunk, OpMakeAdt, v.Tok.Span)
	emitU16(c.scope.chunk, tagIdx, v.Tok.Span)
	emitU8(c.scope.chunk, uint8(arity), v.Tok.Span)
	emitOp(c.scope.chunk, OpReturn, v.Tok.Span)

	proto := &value.FunctionProto{Name: v.Name, Arity: arity, Chunk: c.scope.chunk, NumLocals: c.scope.maxSlots, SelfSlot: -1}
	c.scope = parent

	k := addConstant(c.scope.chunk, proto)
	emitOp(c.scope.chunk, OpClosure, v.Tok.Span)
	emitU16(c.scope.chunk, k, v.Tok.Span)
	emitU8(c.scope.chunk, 0, v.Tok.Span)

	nameIdx := addConstant(c.scope.chunk, value.String{Value: v.Name})
	emitOp(c.scope.chunk, OpDefineGlobal, v.Tok.Span)
	emitU16(c.scope.chunk, nameIdx, v.Tok.Span)
}

func argName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(letters[i%len(letters)]) + itoa(i/len(letters))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}
