package vm

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// compileExpr lowers e into c.scope's chunk. tail reports whether e sits
// in tail position of its enclosing function body (§4.3's "tail-position
// propagation"): only *ast.Apply reacts to it directly (TailCall vs
// Call); If/LetIn/Match forward it into their branches/bodies.
func (c *Compiler) compileExpr(e ast.Expr, tail bool) {
	ch := c.scope.chunk
	switch ex := e.(type) {
	case *ast.IntLit:
		k := addConstant(ch, value.Int{Value: ex.Value})
		emitOp(ch, OpConstant, ex.Span())
		emitU16(ch, k, ex.Span())
	case *ast.FloatLit:
		k := addConstant(ch, value.Float{Value: ex.Value})
		emitOp(ch, OpConstant, ex.Span())
		emitU16(ch, k, ex.Span())
	case *ast.BoolLit:
		if ex.Value {
			emitOp(ch, OpTrue, ex.Span())
		} else {
			emitOp(ch, OpFalse, ex.Span())
		}
	case *ast.StringLit:
		k := addConstant(ch, value.String{Value: ex.Value})
		emitOp(ch, OpConstant, ex.Span())
		emitU16(ch, k, ex.Span())
	case *ast.UnitLit:
		emitOp(ch, OpUnit, ex.Span())
	case *ast.Ident:
		c.compileIdent(ex)
	case *ast.ListLit:
		for _, el := range ex.Elements {
			c.compileExpr(el, false)
		}
		emitOp(ch, OpMakeList, ex.Span())
		emitU8(ch, uint8(len(ex.Elements)), ex.Span())
	case *ast.TupleLit:
		for _, el := range ex.Elements {
			c.compileExpr(el, false)
		}
		emitOp(ch, OpMakeTuple, ex.Span())
		emitU8(ch, uint8(len(ex.Elements)), ex.Span())
	case *ast.RecordLit:
		names := make([]uint16, len(ex.Fields))
		for i, f := range ex.Fields {
			c.compileExpr(f.Value, false)
			names[i] = addConstant(ch, value.String{Value: f.Name})
		}
		emitOp(ch, OpMakeRecord, ex.Span())
		emitU8(ch, uint8(len(ex.Fields)), ex.Span())
		for _, n := range names {
			emitU16(ch, n, ex.Span())
		}
	case *ast.Lambda:
		c.compileLambda(ex)
	case *ast.Apply:
		c.compileApply(ex, tail)
	case *ast.Binary:
		c.compileBinary(ex)
	case *ast.Unary:
		c.compileUnary(ex)
	case *ast.Pipe:
		c.compilePipe(ex, tail)
	case *ast.If:
		c.compileIf(ex, tail)
	case *ast.LetIn:
		c.compileLetIn(ex, tail)
	case *ast.Match:
		c.compileMatch(ex, tail)
	case *ast.Interp:
		c.compileInterp(ex)
	case *ast.FieldAccess:
		c.compileExpr(ex.Object, false)
		nameIdx := addConstant(ch, value.String{Value: ex.Field})
		emitOp(ch, OpGetField, ex.Span())
		emitU16(ch, nameIdx, ex.Span())
	default:
		c.errorf(e.Span(), "C000", "unhandled expression kind %T", e)
	}
}

func (c *Compiler) compileIdent(e *ast.Ident) {
	ch := c.scope.chunk
	if slot := resolveLocal(c.scope, e.Name); slot != -1 {
		emitOp(ch, OpGetLocal, e.Span())
		emitU8(ch, uint8(slot), e.Span())
		return
	}
	if idx := resolveUpvalue(c.scope, e.Name); idx != -1 {
		emitOp(ch, OpGetUpvalue, e.Span())
		emitU8(ch, uint8(idx), e.Span())
		return
	}
	nameIdx := addConstant(ch, value.String{Value: e.Name})
	emitOp(ch, OpGetGlobal, e.Span())
	emitU16(ch, nameIdx, e.Span())
}

func (c *Compiler) compileLambda(e *ast.Lambda) *value.FunctionProto {
	return c.compileLambdaNamed(e, "")
}

// compileLambdaNamed compiles e as a function value. When selfName is
// non-empty (e is the right-hand side of a `let rec`/`let rec ... in`),
// a reference to selfName inside e's own body resolves to a dedicated
// local slot (FunctionProto.SelfSlot) that the VM fills with the
// closure being invoked at the start of every call, not to an upvalue
// captured when the closure was built. That is what lets the body call
// itself without the closure's own Upvalues array ever holding a cell
// that in turn holds the closure — §9's "should not create cycles in
// the value graph", mirrored here for the compiled back end the same
// way internal/evaluator resolves SelfName only at apply time.
func (c *Compiler) compileLambdaNamed(e *ast.Lambda, selfName string) *value.FunctionProto {
	parent := c.scope
	c.scope = newFuncScope(parent, "", len(e.Params))
	selfSlot := -1
	if selfName != "" {
		selfSlot = c.scope.addLocal(selfName)
	}
	for _, p := range e.Params {
		c.scope.addLocal(p.Name)
	}
	c.compileExpr(e.Body, true)
	emitOp(c.scope.chunk, OpReturn, e.Body.Span())

	proto := &value.FunctionProto{
		Name:         "",
		Arity:        len(e.Params),
		Chunk:        c.scope.chunk,
		NumLocals:    c.scope.maxSlots,
		UpvalueCount: len(c.scope.upvalues),
		SelfSlot:     selfSlot,
	}
	for _, u := range c.scope.upvalues {
		proto.UpvalueRefs = append(proto.UpvalueRefs, value.UpvalueRef{IsLocal: u.isLocal, Index: int(u.index)})
	}
	upvals := c.scope.upvalues
	c.scope = parent

	ch := c.scope.chunk
	k := addConstant(ch, proto)
	emitOp(ch, OpClosure, e.Span())
	emitU16(ch, k, e.Span())
	emitU8(ch, uint8(len(upvals)), e.Span())
	for _, u := range upvals {
		if u.isLocal {
			emitU8(ch, 1, e.Span())
		} else {
			emitU8(ch, 0, e.Span())
		}
		emitU8(ch, u.index, e.Span())
	}
	return proto
}

func (c *Compiler) compileApply(e *ast.Apply, tail bool) {
	ch := c.scope.chunk
	c.compileExpr(e.Fn, false)
	for _, a := range e.Args {
		c.compileExpr(a, false)
	}
	if tail {
		emitOp(ch, OpTailCall, e.Span())
	} else {
		emitOp(ch, OpCall, e.Span())
	}
	emitU8(ch, uint8(len(e.Args)), e.Span())
}

func (c *Compiler) compilePipe(e *ast.Pipe, tail bool) {
	ch := c.scope.chunk
	// `a |> f` means f(a): push f, then a, then Call(1)/TailCall(1).
	c.compileExpr(e.Right, false)
	c.compileExpr(e.Left, false)
	if tail {
		emitOp(ch, OpTailCall, e.Span())
	} else {
		emitOp(ch, OpCall, e.Span())
	}
	emitU8(ch, 1, e.Span())
}

func (c *Compiler) compileIf(e *ast.If, tail bool) {
	ch := c.scope.chunk
	c.compileExpr(e.Cond, false)
	emitOp(ch, OpJumpIfFalse, e.Span())
	l1 := emitPlaceholder(ch, e.Span())
	emitOp(ch, OpPop, e.Span())
	c.compileExpr(e.Then, tail)
	emitOp(ch, OpJump, e.Span())
	l2 := emitPlaceholder(ch, e.Span())
	patchJumpHere(ch, l1)
	emitOp(ch, OpPop, e.Span())
	c.compileExpr(e.Else, tail)
	patchJumpHere(ch, l2)
}

// compileLetIn compiles `let [rec] name = value in body`. The value is
// always fully compiled and evaluated before name is bound to anything
// (addLocal+OpSetLocal happen last, after the value is on the stack),
// exactly as the non-recursive case already did — there is no placeholder
// cell that a self-reference aliases and that is later overwritten with
// the closure itself. A recursive binding whose value is a lambda
// instead resolves its own self-reference through compileLambdaNamed's
// SelfSlot mechanism, scoped to the lambda's own body.
func (c *Compiler) compileLetIn(e *ast.LetIn, tail bool) {
	ch := c.scope.chunk
	c.scope.beginScope()
	if e.Recursive {
		if lam, ok := e.Value.(*ast.Lambda); ok {
			c.compileLambdaNamed(lam, e.Name)
		} else {
			c.compileExpr(e.Value, false)
		}
	} else {
		c.compileExpr(e.Value, false)
	}
	slot := c.scope.addLocal(e.Name)
	emitOp(ch, OpSetLocal, e.Span())
	emitU8(ch, uint8(slot), e.Span())
	emitOp(ch, OpPop, e.Span())
	c.compileExpr(e.Body, tail)
	c.scope.endScope()
}

func (c *Compiler) compileInterp(e *ast.Interp) {
	ch := c.scope.chunk
	if len(e.Parts) == 0 {
		k := addConstant(ch, value.String{Value: ""})
		emitOp(ch, OpConstant, e.Span())
		emitU16(ch, k, e.Span())
		return
	}
	for i, part := range e.Parts {
		if part.Expr == nil {
			k := addConstant(ch, value.String{Value: part.Literal})
			emitOp(ch, OpConstant, e.Span())
			emitU16(ch, k, e.Span())
		} else {
			c.compileExpr(part.Expr, false)
			emitOp(ch, OpToString, e.Span())
		}
		if i > 0 {
			emitOp(ch, OpStringConcat, e.Span())
		}
	}
}

func (c *Compiler) compileBinary(e *ast.Binary) {
	ch := c.scope.chunk
	if e.Op == ast.OpAnd {
		c.compileExpr(e.Left, false)
		emitOp(ch, OpJumpIfFalse, e.Span())
		end := emitPlaceholder(ch, e.Span())
		emitOp(ch, OpPop, e.Span())
		c.compileExpr(e.Right, false)
		patchJumpHere(ch, end)
		return
	}
	if e.Op == ast.OpOr {
		c.compileExpr(e.Left, false)
		emitOp(ch, OpJumpIfFalse, e.Span())
		toElse := emitPlaceholder(ch, e.Span())
		emitOp(ch, OpJump, e.Span())
		end := emitPlaceholder(ch, e.Span())
		patchJumpHere(ch, toElse)
		emitOp(ch, OpPop, e.Span())
		c.compileExpr(e.Right, false)
		patchJumpHere(ch, end)
		return
	}

	c.compileExpr(e.Left, false)
	c.compileExpr(e.Right, false)
	switch e.Op {
	case ast.Add:
		emitOp(ch, OpAdd, e.Span())
	case ast.Sub:
		emitOp(ch, OpSub, e.Span())
	case ast.Mul:
		emitOp(ch, OpMul, e.Span())
	case ast.Div:
		emitOp(ch, OpDiv, e.Span())
	case ast.Mod:
		emitOp(ch, OpMod, e.Span())
	case ast.OpEq:
		emitOp(ch, OpEqual, e.Span())
	case ast.OpNotEq:
		emitOp(ch, OpNotEqual, e.Span())
	case ast.OpLt:
		emitOp(ch, OpLess, e.Span())
	case ast.OpGt:
		emitOp(ch, OpGreater, e.Span())
	case ast.OpLe:
		emitOp(ch, OpLessEqual, e.Span())
	case ast.OpGe:
		emitOp(ch, OpGreaterEqual, e.Span())
	case ast.OpCons:
		emitOp(ch, OpCons, e.Span())
	default:
		c.errorf(e.Span(), "C000", "unhandled binary operator %s", e.Op)
	}
}

func (c *Compiler) compileUnary(e *ast.Unary) {
	ch := c.scope.chunk
	c.compileExpr(e.Operand, false)
	switch e.Op {
	case ast.Not:
		emitOp(ch, OpNot, e.Span())
	case ast.Neg:
		emitOp(ch, OpNegate, e.Span())
	}
}

// emitPlaceholder emits a zero u16 operand and returns its byte offset,
// to be overwritten once the jump target is known.
func emitPlaceholder(ch *value.Chunk, span token.Span) int {
	pos := len(ch.Code)
	emitU16(ch, 0, span)
	return pos
}

// patchJumpHere patches the placeholder at pos with the forward distance
// from just after the placeholder to the current end of the chunk.
func patchJumpHere(ch *value.Chunk, pos int) {
	offset := len(ch.Code) - (pos + 2)
	patchU16(ch, pos, uint16(offset))
}
