package vm

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// compileMatch lowers a match expression per §4.3's match-lowering rules,
// with one deliberate simplification from the literal "peek, leave
// residue on failure, clean up next arm" description: every Test*
// opcode here pops its tested value on BOTH the pass and fail path (see
// opcodes.go's doc comment on the VM side), so a failure jump from any
// nesting depth never leaves pattern-dependent garbage on the operand
// stack to account for. This is behaviorally equivalent — both designs
// discard the same values by the time the next arm runs — but avoids a
// whole class of stack-accounting mistakes that would be unverifiable
// without running the VM.
func (c *Compiler) compileMatch(e *ast.Match, tail bool) {
	ch := c.scope.chunk
	c.scope.beginScope()
	c.compileExpr(e.Scrutinee, false)
	scrutSlot := c.scope.addLocal("__scrutinee")
	emitOp(ch, OpSetLocal, e.Span())
	emitU8(ch, uint8(scrutSlot), e.Span())
	emitOp(ch, OpPop, e.Span())

	fetchScrut := func() {
		emitOp(ch, OpGetLocal, e.Span())
		emitU8(ch, uint8(scrutSlot), e.Span())
	}

	var endJumps []int
	for i, arm := range e.Arms {
		c.scope.beginScope()
		var failJumps []int
		c.bindOrTest(arm.Pattern, fetchScrut, &failJumps)
		c.compileExpr(arm.Body, tail)
		c.scope.endScope()
		emitOp(ch, OpJump, arm.Body.Span())
		endJumps = append(endJumps, emitPlaceholder(ch, arm.Body.Span()))
		for _, pos := range failJumps {
			patchJumpHere(ch, pos)
		}
		if i == len(e.Arms)-1 {
			emitOp(ch, OpMatchFail, e.Span())
		}
	}
	for _, pos := range endJumps {
		patchJumpHere(ch, pos)
	}
	c.scope.endScope()
}

// bindOrTest compiles pat against the value fetch() leaves on top of the
// stack, recording every Test* opcode's fail-offset placeholder into
// *failJumps (all patched to the same "next arm" address by the caller),
// and binding any variable sub-patterns as new locals in the arm's scope.
func (c *Compiler) bindOrTest(pat ast.Pattern, fetch func(), failJumps *[]int) {
	ch := c.scope.chunk
	span := pat.Span()

	switch p := pat.(type) {
	case *ast.WildcardPattern:
		// matches unconditionally; the value is never even fetched.

	case *ast.VarPattern:
		fetch()
		slot := c.scope.addLocal(p.Name)
		emitOp(ch, OpSetLocal, span)
		emitU8(ch, uint8(slot), span)
		emitOp(ch, OpPop, span)

	case *ast.LiteralPattern:
		fetch()
		switch p.Kind {
		case ast.LitInt:
			k := addConstant(ch, value.Int{Value: p.Int})
			emitOp(ch, OpTestInt, span)
			emitU16(ch, k, span)
		case ast.LitFloat:
			k := addConstant(ch, value.Float{Value: p.Float})
			emitOp(ch, OpTestInt, span) // same opcode as LitInt: VM tests value.Equal against the constant
			emitU16(ch, k, span)
		case ast.LitString:
			k := addConstant(ch, value.String{Value: p.String})
			emitOp(ch, OpTestString, span)
			emitU16(ch, k, span)
		case ast.LitBool:
			emitOp(ch, OpTestBool, span)
			if p.Bool {
				emitU8(ch, 1, span)
			} else {
				emitU8(ch, 0, span)
			}
		case ast.LitUnit:
			emitOp(ch, OpTestUnit, span)
		}
		*failJumps = append(*failJumps, emitPlaceholder(ch, span))

	case *ast.TuplePattern:
		fetch()
		emitOp(ch, OpTestTuple, span)
		emitU8(ch, uint8(len(p.Elements)), span)
		*failJumps = append(*failJumps, emitPlaceholder(ch, span))
		for i, sub := range p.Elements {
			idx := i
			c.bindOrTest(sub, c.fetchTupleField(fetch, idx, span), failJumps)
		}

	case *ast.ListPattern:
		c.bindListElements(p.Elements, fetch, failJumps, span)

	case *ast.ConsPattern:
		fetch()
		emitOp(ch, OpTestCons, span)
		*failJumps = append(*failJumps, emitPlaceholder(ch, span))
		c.bindOrTest(p.Head, c.fetchListHead(fetch, span), failJumps)
		c.bindOrTest(p.Tail, c.fetchListTail(fetch, span), failJumps)

	case *ast.ConstructorPattern:
		fetch()
		tagIdx := addConstant(ch, value.String{Value: p.Name})
		emitOp(ch, OpTestTag, span)
		emitU16(ch, tagIdx, span)
		*failJumps = append(*failJumps, emitPlaceholder(ch, span))
		for i, sub := range p.Args {
			idx := i
			c.bindOrTest(sub, c.fetchAdtField(fetch, idx, span), failJumps)
		}
	}
}

func (c *Compiler) bindListElements(elements []ast.Pattern, fetch func(), failJumps *[]int, span token.Span) {
	ch := c.scope.chunk
	if len(elements) == 0 {
		fetch()
		emitOp(ch, OpTestEmptyList, span)
		*failJumps = append(*failJumps, emitPlaceholder(ch, span))
		return
	}
	fetch()
	emitOp(ch, OpTestCons, span)
	*failJumps = append(*failJumps, emitPlaceholder(ch, span))
	c.bindOrTest(elements[0], c.fetchListHead(fetch, span), failJumps)
	c.bindListElements(elements[1:], c.fetchListTail(fetch, span), failJumps, span)
}

// fetchField reads parentFetch's value, applies an accessor that peeks-
// and-pushes its component, then normalizes the stack to hold only the
// component (Swap;Pop discards the parent copy underneath).
func (c *Compiler) fetchField(parentFetch func(), emitAccessor func(*value.Chunk, token.Span), span token.Span) func() {
	ch := c.scope.chunk
	return func() {
		parentFetch()
		emitAccessor(ch, span)
		emitOp(ch, OpSwap, span)
		emitOp(ch, OpPop, span)
	}
}

func (c *Compiler) fetchTupleField(parentFetch func(), index int, span token.Span) func() {
	return c.fetchField(parentFetch, func(ch *value.Chunk, sp token.Span) {
		emitOp(ch, OpGetTupleField, sp)
		emitU8(ch, uint8(index), sp)
	}, span)
}

func (c *Compiler) fetchAdtField(parentFetch func(), index int, span token.Span) func() {
	return c.fetchField(parentFetch, func(ch *value.Chunk, sp token.Span) {
		emitOp(ch, OpGetAdtField, sp)
		emitU8(ch, uint8(index), sp)
	}, span)
}

func (c *Compiler) fetchListHead(parentFetch func(), span token.Span) func() {
	return c.fetchField(parentFetch, func(ch *value.Chunk, sp token.Span) {
		emitOp(ch, OpGetListHead, sp)
	}, span)
}

func (c *Compiler) fetchListTail(parentFetch func(), span token.Span) func() {
	return c.fetchField(parentFetch, func(ch *value.Chunk, sp token.Span) {
		emitOp(ch, OpGetListTail, sp)
	}, span)
}
