package vm

import (
	"fmt"

	"github.com/UmarbekFU/lyra-lang/internal/evaluator"
	"github.com/UmarbekFU/lyra-lang/internal/token"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// RuntimeError mirrors internal/evaluator's RuntimeError, but carries a
// token.Span directly: a running frame has no ast.Node, only the Chunk's
// parallel Spans slice indexed by the failing instruction's offset.
type RuntimeError struct {
	Code       string
	Message    string
	Span       token.Span
	Suggestion string
}

func (e *RuntimeError) Error() string { return e.Message }

const maxFrames = 256

// CallFrame is one activation of a compiled function: its code position,
// its captured upvalue cells, and its own boxed local-variable cells
// (see value.FunctionProto's doc comment for why locals are boxed cells
// here rather than slots shared with the operand stack).
type CallFrame struct {
	proto     *value.FunctionProto
	upvalues  []*value.Value
	locals    []*value.Value
	ip        int
	stackBase int
}

// VM is the frame-based bytecode interpreter (§4.4). Its operand stack
// holds only expression temporaries; call-frame locals live separately
// in each CallFrame's boxed cell array.
type VM struct {
	Globals *value.Environment
	stack   []value.Value
	frames  []*CallFrame

	// bridge lazily interops with the tree-walking back end for any
	// value.Closure/value.Builtin/value.PartialApp reaching a Call
	// opcode — both back ends share Globals, so a global defined by one
	// is visible to a call originating in the other (§3).
	bridge *evaluator.Evaluator
}

// New returns a VM with the shared Prelude builtins registered in
// Globals, exactly as internal/evaluator.New does (§3: "the two
// back-ends must agree on observable results", starting from the same
// builtin implementations).
func New() *VM {
	globals := value.NewEnvironment()
	evaluator.RegisterBuiltins(globals)
	return &VM{Globals: globals}
}

func (vm *VM) err(code string, span token.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack = vm.stack[:n]
	return v
}

func (vm *VM) peek(fromTop int) value.Value {
	return vm.stack[len(vm.stack)-1-fromTop]
}

func (vm *VM) currentSpan(f *CallFrame) token.Span {
	if f.ip >= 0 && f.ip < len(f.proto.Chunk.Spans) {
		return f.proto.Chunk.Spans[f.ip]
	}
	return token.Span{}
}

// Run executes proto (the synthetic `<main>` function produced by
// Compiler.CompileProgram) to completion and returns its result.
func (vm *VM) Run(proto *value.FunctionProto) (value.Value, error) {
	return vm.callValue(value.ClosureVal{Proto: proto}, nil)
}

// ApplyTop is the ApplyFunc handed to shared Prelude builtins (map,
// filter, fold, any, all) so a higher-order builtin can invoke a
// compiled function value without importing internal/vm itself — the
// same apply-boundary shape as evaluator.Evaluator.ApplyTop (§9).
func (vm *VM) ApplyTop(fn value.Value, args []value.Value) (value.Value, error) {
	return vm.callValue(fn, args)
}

// callValue invokes any callable Value. ClosureVal/*FunctionProto run on
// this VM's own frame stack; everything else (tree Closure, Builtin,
// PartialApp) is handled by whichever back end understands it.
func (vm *VM) callValue(fn value.Value, args []value.Value) (value.Value, error) {
	switch f := fn.(type) {
	case value.ClosureVal:
		return vm.callClosure(f, args, token.Span{})
	case *value.FunctionProto:
		return vm.callClosure(value.ClosureVal{Proto: f}, args, token.Span{})
	case value.Builtin:
		return vm.applyArity(fn, f.Arity, args, func(full []value.Value) (value.Value, error) {
			return f.Fn(vm.ApplyTop, full)
		}, token.Span{})
	case value.PartialApp:
		combined := append(append([]value.Value{}, f.AppliedArgs...), args...)
		return vm.callValue(f.Fn, combined)
	case *value.Closure:
		return vm.bridgeEvaluator().ApplyTop(f, args)
	default:
		return nil, vm.err("R013", token.Span{}, "value of kind %s is not callable", fn.Kind())
	}
}

func (vm *VM) bridgeEvaluator() *evaluator.Evaluator {
	if vm.bridge == nil {
		vm.bridge = evaluator.NewWithGlobals(vm.Globals)
	}
	return vm.bridge
}

// applyArity mirrors internal/evaluator/apply.go's curried-application
// dispatch for values (Builtin, etc.) that aren't ClosureVals with their
// own frame to push — exact arity invokes full, under-arity builds a
// PartialApp, over-arity saturates then re-applies the remainder.
func (vm *VM) applyArity(fn value.Value, arity int, args []value.Value, full func([]value.Value) (value.Value, error), span token.Span) (value.Value, error) {
	switch {
	case len(args) == arity:
		return full(args)
	case len(args) < arity:
		return value.PartialApp{Fn: fn, AppliedArgs: append([]value.Value{}, args...)}, nil
	default:
		result, err := full(args[:arity])
		if err != nil {
			return nil, err
		}
		return vm.callValue(result, args[arity:])
	}
}

// callClosure pushes a new frame for f and runs until that frame (and
// any frames it pushes) return, yielding the single result value left on
// the operand stack.
func (vm *VM) callClosure(f value.ClosureVal, args []value.Value, span token.Span) (value.Value, error) {
	if f.Proto.Arity != len(args) {
		// Curried under/over-application of a compiled function, same
		// as the tree-walking back end (§3).
		return vm.applyArity(f, f.Proto.Arity, args, func(full []value.Value) (value.Value, error) {
			return vm.callClosure(f, full, span)
		}, span)
	}
	if len(vm.frames) >= maxFrames {
		return nil, vm.err("R030", span, "stack overflow: recursion too deep")
	}
	frame := vm.pushFrame(f, args)
	target := len(vm.frames) - 1
	result, err := vm.run(target)
	if err != nil {
		return nil, err
	}
	_ = frame
	return result, nil
}

// newCallFrame builds a fresh activation of f over args, with its boxed
// local cells sized and defaulted per f.Proto, then — if f.Proto is a
// `let rec` binding's own function (SelfSlot >= 0) — fills that one
// slot with f itself. That fill happens here, once per call, against a
// cell that belongs to this activation alone; it never touches f's own
// Upvalues, which is what keeps a recursive ClosureVal free of any cell
// that holds the ClosureVal back (value.ClosureVal's doc comment).
func (vm *VM) newCallFrame(f value.ClosureVal, args []value.Value, stackBase int) *CallFrame {
	locals := make([]*value.Value, f.Proto.NumLocals)
	// compileLambdaNamed allocates the self slot before the parameters,
	// so the parameters start right after it when there is one.
	first := 0
	if f.Proto.SelfSlot >= 0 {
		first = f.Proto.SelfSlot + 1
	}
	for i := range locals {
		u := value.Value(value.Unit{})
		locals[i] = &u
	}
	for i, a := range args {
		v := a
		locals[first+i] = &v
	}
	if slot := f.Proto.SelfSlot; slot >= 0 {
		self := value.Value(f)
		locals[slot] = &self
	}
	return &CallFrame{
		proto:     f.Proto,
		upvalues:  f.Upvalues,
		locals:    locals,
		ip:        0,
		stackBase: stackBase,
	}
}

func (vm *VM) pushFrame(f value.ClosureVal, args []value.Value) *CallFrame {
	frame := vm.newCallFrame(f, args, len(vm.stack))
	vm.frames = append(vm.frames, frame)
	return frame
}

// run executes instructions until the frame at index `target` (and
// everything above it) has returned, then yields the value left on the
// operand stack. Ordinary (non-tail) Call opcodes push a new frame and
// the same loop keeps going — no Go-level recursion for compiled-to-
// compiled calls, which is what lets TailCall reuse a frame in place
// instead of growing anything.
func (vm *VM) run(target int) (value.Value, error) {
	for {
		frame := vm.frames[len(vm.frames)-1]
		ch := frame.proto.Chunk
		op := Opcode(ch.Code[frame.ip])
		frame.ip++

		switch op {
		case OpConstant:
			k := vm.readU16(frame)
			vm.push(ch.Constants[k])
		case OpUnit:
			vm.push(value.Unit{})
		case OpTrue:
			vm.push(value.Bool{Value: true})
		case OpFalse:
			vm.push(value.Bool{Value: false})
		case OpPop:
			vm.pop()
		case OpDup:
			vm.push(vm.peek(0))
		case OpSwap:
			a := vm.pop()
			b := vm.pop()
			vm.push(a)
			vm.push(b)
		case OpPopUnder:
			n := int(vm.readU8(frame))
			top := vm.pop()
			vm.stack = vm.stack[:len(vm.stack)-n]
			vm.push(top)

		case OpGetLocal:
			slot := vm.readU8(frame)
			vm.push(*frame.locals[slot])
		case OpSetLocal:
			slot := vm.readU8(frame)
			v := vm.peek(0)
			cell := frame.locals[slot]
			*cell = v
		case OpGetUpvalue:
			idx := vm.readU8(frame)
			vm.push(*frame.upvalues[idx])
		case OpGetGlobal:
			k := vm.readU16(frame)
			name := ch.Constants[k].(value.String).Value
			v, ok := vm.Globals.Get(name)
			if !ok {
				return nil, vm.err("R003", vm.currentSpan(frame), "undefined variable %q", name)
			}
			vm.push(v)
		case OpDefineGlobal:
			k := vm.readU16(frame)
			name := ch.Constants[k].(value.String).Value
			vm.Globals.Set(name, vm.pop())

		case OpAdd, OpSub, OpMul, OpDiv, OpMod:
			if err := vm.binaryArith(op, frame); err != nil {
				return nil, err
			}
		case OpNegate:
			if err := vm.unaryNegate(frame); err != nil {
				return nil, err
			}
		case OpNot:
			b, ok := vm.pop().(value.Bool)
			if !ok {
				return nil, vm.err("R010", vm.currentSpan(frame), "not is not defined on this value")
			}
			vm.push(value.Bool{Value: !b.Value})
		case OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool{Value: value.Equal(a, b)})
		case OpNotEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool{Value: !value.Equal(a, b)})
		case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
			if err := vm.compare(op, frame); err != nil {
				return nil, err
			}

		case OpJump:
			offset := vm.readU16(frame)
			frame.ip += int(offset)
		case OpJumpIfFalse:
			offset := vm.readU16(frame)
			b, ok := vm.peek(0).(value.Bool)
			if !ok {
				return nil, vm.err("R010", vm.currentSpan(frame), "condition is not a Bool")
			}
			if !b.Value {
				frame.ip += int(offset)
			}
		case OpLoop:
			offset := vm.readU16(frame)
			frame.ip -= int(offset)

		case OpCall, OpTailCall:
			argc := int(vm.readU8(frame))
			args := make([]value.Value, argc)
			copy(args, vm.stack[len(vm.stack)-argc:])
			vm.stack = vm.stack[:len(vm.stack)-argc]
			fn := vm.pop()
			// A ClosureVal tail call replaces frame in place and the loop
			// simply continues; anything else is invoked synchronously
			// and its result pushed, to be picked up by the OpReturn that
			// a tail-position Apply is always immediately followed by.
			if err := vm.dispatchCall(fn, args, op == OpTailCall, frame); err != nil {
				return nil, err
			}
		case OpReturn:
			result := vm.pop()
			vm.stack = vm.stack[:frame.stackBase]
			vm.frames = vm.frames[:len(vm.frames)-1]
			vm.push(result)
			if len(vm.frames) <= target {
				return result, nil
			}

		case OpClosure:
			k := vm.readU16(frame)
			proto := ch.Constants[k].(*value.FunctionProto)
			n := int(vm.readU8(frame))
			upvals := make([]*value.Value, n)
			for i := 0; i < n; i++ {
				isLocal := vm.readU8(frame) == 1
				idx := vm.readU8(frame)
				if isLocal {
					upvals[i] = frame.locals[idx]
				} else {
					upvals[i] = frame.upvalues[idx]
				}
			}
			vm.push(value.ClosureVal{Proto: proto, Upvalues: upvals})

		case OpMakeList:
			n := int(vm.readU8(frame))
			elems := make([]value.Value, n)
			copy(elems, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			vm.push(value.List{Elements: elems})
		case OpMakeTuple:
			n := int(vm.readU8(frame))
			elems := make([]value.Value, n)
			copy(elems, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			vm.push(value.Tuple{Elements: elems})
		case OpCons:
			tail := vm.pop()
			head := vm.pop()
			lst, ok := tail.(value.List)
			if !ok {
				return nil, vm.err("R010", vm.currentSpan(frame), "cons (::) right-hand side is not a List")
			}
			elems := make([]value.Value, 0, len(lst.Elements)+1)
			elems = append(elems, head)
			elems = append(elems, lst.Elements...)
			vm.push(value.List{Elements: elems})
		case OpMakeAdt:
			k := vm.readU16(frame)
			tag := ch.Constants[k].(value.String).Value
			n := int(vm.readU8(frame))
			fields := make([]value.Value, n)
			copy(fields, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			vm.push(value.Adt{Constructor: tag, Fields: fields})
		case OpMakeRecord:
			n := int(vm.readU8(frame))
			names := make([]uint16, n)
			for i := 0; i < n; i++ {
				names[i] = vm.readU16(frame)
			}
			vals := make([]value.Value, n)
			copy(vals, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			fields := make([]value.RecordField, n)
			for i := 0; i < n; i++ {
				fields[i] = value.RecordField{Name: ch.Constants[names[i]].(value.String).Value, Value: vals[i]}
			}
			vm.push(value.NewRecord(fields))

		case OpTestTag:
			if err := vm.testTag(frame); err != nil {
				return nil, err
			}
		case OpTestInt:
			if err := vm.testEqualConstant(frame); err != nil {
				return nil, err
			}
		case OpTestBool:
			want := vm.readU8(frame) == 1
			offset := vm.readU16(frame)
			v := vm.pop()
			b, ok := v.(value.Bool)
			if !ok || b.Value != want {
				frame.ip += int(offset)
			}
		case OpTestString:
			if err := vm.testEqualConstant(frame); err != nil {
				return nil, err
			}
		case OpTestUnit:
			offset := vm.readU16(frame)
			v := vm.pop()
			if _, ok := v.(value.Unit); !ok {
				frame.ip += int(offset)
			}
		case OpTestEmptyList:
			offset := vm.readU16(frame)
			v := vm.pop()
			lst, ok := v.(value.List)
			if !ok || len(lst.Elements) != 0 {
				frame.ip += int(offset)
			}
		case OpTestCons:
			offset := vm.readU16(frame)
			v := vm.pop()
			lst, ok := v.(value.List)
			if !ok || len(lst.Elements) == 0 {
				frame.ip += int(offset)
			}
		case OpTestTuple:
			arity := int(vm.readU8(frame))
			offset := vm.readU16(frame)
			v := vm.pop()
			tup, ok := v.(value.Tuple)
			if !ok || len(tup.Elements) != arity {
				frame.ip += int(offset)
			}

		case OpGetAdtField:
			idx := int(vm.readU8(frame))
			v := vm.peek(0)
			adt, ok := v.(value.Adt)
			if !ok || idx >= len(adt.Fields) {
				return nil, vm.err("R010", vm.currentSpan(frame), "not a constructed value with that field")
			}
			vm.push(adt.Fields[idx])
		case OpGetListHead:
			v := vm.peek(0)
			lst, ok := v.(value.List)
			if !ok || len(lst.Elements) == 0 {
				return nil, vm.err("R010", vm.currentSpan(frame), "list has no head")
			}
			vm.push(lst.Elements[0])
		case OpGetListTail:
			v := vm.peek(0)
			lst, ok := v.(value.List)
			if !ok || len(lst.Elements) == 0 {
				return nil, vm.err("R010", vm.currentSpan(frame), "list has no tail")
			}
			vm.push(value.List{Elements: lst.Elements[1:]})
		case OpGetTupleField:
			idx := int(vm.readU8(frame))
			v := vm.peek(0)
			tup, ok := v.(value.Tuple)
			if !ok || idx >= len(tup.Elements) {
				return nil, vm.err("R010", vm.currentSpan(frame), "not a tuple with that field")
			}
			vm.push(tup.Elements[idx])
		case OpGetField:
			k := vm.readU16(frame)
			name := ch.Constants[k].(value.String).Value
			v := vm.pop()
			rec, ok := v.(value.Record)
			if !ok {
				return nil, vm.err("R011", vm.currentSpan(frame), "field access on non-record value")
			}
			fv, ok := rec.Lookup(name)
			if !ok {
				return nil, vm.err("R012", vm.currentSpan(frame), "record has no field %q", name)
			}
			vm.push(fv)

		case OpToString:
			v := vm.pop()
			vm.push(value.String{Value: toDisplayString(v)})
		case OpStringConcat:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.String{Value: a.(value.String).Value + b.(value.String).Value})

		case OpPrint:
			fmt.Print(toDisplayString(vm.pop()))
			vm.push(value.Unit{})
		case OpPrintRaw:
			fmt.Println(toDisplayString(vm.pop()))
			vm.push(value.Unit{})

		case OpMatchFail:
			return nil, vm.err("R020", vm.currentSpan(frame), "match failed: no pattern matched the scrutinee")

		default:
			return nil, vm.err("R000", vm.currentSpan(frame), "unhandled opcode %s", op)
		}
	}
}

// dispatchCall handles one Call/TailCall opcode's callee. A ClosureVal
// callee either gets a brand-new frame (ordinary Call) or, in tail
// position, replaces the current frame in place (TailCall — §4.4's
// "tail-call frame reuse": the Go call stack never grows for a self- or
// mutually-recursive tail call). Any other callable kind is invoked
// synchronously through callValue and its result pushed directly, since
// there is no bytecode frame to give it.
func (vm *VM) dispatchCall(fn value.Value, args []value.Value, tail bool, frame *CallFrame) error {
	closure, ok := fn.(value.ClosureVal)
	if !ok {
		if proto, ok := fn.(*value.FunctionProto); ok {
			closure = value.ClosureVal{Proto: proto}
		} else {
			result, err := vm.callValue(fn, args)
			if err != nil {
				return err
			}
			vm.push(result)
			return nil
		}
	}
	if closure.Proto.Arity != len(args) {
		result, err := vm.applyArity(closure, closure.Proto.Arity, args, func(full []value.Value) (value.Value, error) {
			return vm.callClosure(closure, full, vm.currentSpan(frame))
		}, vm.currentSpan(frame))
		if err != nil {
			return err
		}
		vm.push(result)
		return nil
	}
	if !tail {
		if len(vm.frames) >= maxFrames {
			return vm.err("R030", vm.currentSpan(frame), "stack overflow: recursion too deep")
		}
		vm.pushFrame(closure, args)
		return nil
	}
	// Tail call: reuse the current frame's slot instead of growing
	// vm.frames. The caller's own locals are discarded (nothing below
	// them survives a tail call by definition).
	vm.stack = vm.stack[:frame.stackBase]
	vm.frames[len(vm.frames)-1] = vm.newCallFrame(closure, args, frame.stackBase)
	return nil
}

func (vm *VM) readU8(f *CallFrame) uint8 {
	v := f.proto.Chunk.Code[f.ip]
	f.ip++
	return v
}

func (vm *VM) readU16(f *CallFrame) uint16 {
	v := readU16(f.proto.Chunk, f.ip)
	f.ip += 2
	return v
}

// testTag pops its operand whether it matches or not: every sub-pattern
// under a constructor pattern re-fetches the field it needs from its own
// independent fetch closure (see compile_match.go), so nothing needs to
// survive on the stack past a passing test.
func (vm *VM) testTag(frame *CallFrame) error {
	k := vm.readU16(frame)
	offset := vm.readU16(frame)
	wantTag := frame.proto.Chunk.Constants[k].(value.String).Value
	v := vm.pop()
	adt, ok := v.(value.Adt)
	if !ok || adt.Constructor != wantTag {
		frame.ip += int(offset)
	}
	return nil
}

func (vm *VM) testEqualConstant(frame *CallFrame) error {
	k := vm.readU16(frame)
	offset := vm.readU16(frame)
	want := frame.proto.Chunk.Constants[k]
	v := vm.pop()
	if v.Kind() != want.Kind() || !value.Equal(v, want) {
		frame.ip += int(offset)
	}
	return nil
}

func (vm *VM) binaryArith(op Opcode, frame *CallFrame) error {
	b := vm.pop()
	a := vm.pop()
	if as, ok := a.(value.String); ok && op == OpAdd {
		bs, ok := b.(value.String)
		if !ok {
			return vm.err("R010", vm.currentSpan(frame), "+ requires two Strings")
		}
		vm.push(value.String{Value: as.Value + bs.Value})
		return nil
	}
	ai, aIsInt := a.(value.Int)
	bi, bIsInt := b.(value.Int)
	if aIsInt && bIsInt {
		v, err := intArith(op, ai.Value, bi.Value, vm, frame)
		if err != nil {
			return err
		}
		vm.push(v)
		return nil
	}
	af, aIsFloat := a.(value.Float)
	bf, bIsFloat := b.(value.Float)
	if aIsFloat && bIsFloat {
		v, err := floatArith(op, af.Value, bf.Value, vm, frame)
		if err != nil {
			return err
		}
		vm.push(v)
		return nil
	}
	return vm.err("R010", vm.currentSpan(frame), "arithmetic requires two Ints or two Floats of the same type")
}

func intArith(op Opcode, a, b int64, vm *VM, frame *CallFrame) (value.Value, error) {
	switch op {
	case OpAdd:
		return value.Int{Value: a + b}, nil
	case OpSub:
		return value.Int{Value: a - b}, nil
	case OpMul:
		return value.Int{Value: a * b}, nil
	case OpDiv:
		if b == 0 {
			return nil, vm.err("R040", vm.currentSpan(frame), "division by zero")
		}
		return value.Int{Value: a / b}, nil
	case OpMod:
		if b == 0 {
			return nil, vm.err("R040", vm.currentSpan(frame), "division by zero")
		}
		return value.Int{Value: a % b}, nil
	}
	return nil, vm.err("R000", vm.currentSpan(frame), "unreachable int arith op")
}

func floatArith(op Opcode, a, b float64, vm *VM, frame *CallFrame) (value.Value, error) {
	switch op {
	case OpAdd:
		return value.Float{Value: a + b}, nil
	case OpSub:
		return value.Float{Value: a - b}, nil
	case OpMul:
		return value.Float{Value: a * b}, nil
	case OpDiv:
		return value.Float{Value: a / b}, nil
	case OpMod:
		return nil, vm.err("R010", vm.currentSpan(frame), "%% is not defined on Float")
	}
	return nil, vm.err("R000", vm.currentSpan(frame), "unreachable float arith op")
}

func (vm *VM) unaryNegate(frame *CallFrame) error {
	v := vm.pop()
	switch n := v.(type) {
	case value.Int:
		vm.push(value.Int{Value: -n.Value})
	case value.Float:
		vm.push(value.Float{Value: -n.Value})
	default:
		return vm.err("R010", vm.currentSpan(frame), "unary - is not defined on %s", v.Kind())
	}
	return nil
}

func (vm *VM) compare(op Opcode, frame *CallFrame) error {
	b := vm.pop()
	a := vm.pop()
	var cmp int
	switch av := a.(type) {
	case value.Int:
		bv, ok := b.(value.Int)
		if !ok {
			return vm.err("R010", vm.currentSpan(frame), "comparison requires matching types")
		}
		cmp = cmp3Int(av.Value, bv.Value)
	case value.Float:
		bv, ok := b.(value.Float)
		if !ok {
			return vm.err("R010", vm.currentSpan(frame), "comparison requires matching types")
		}
		cmp = cmp3Float(av.Value, bv.Value)
	case value.String:
		bv, ok := b.(value.String)
		if !ok {
			return vm.err("R010", vm.currentSpan(frame), "comparison requires matching types")
		}
		cmp = cmp3String(av.Value, bv.Value)
	default:
		return vm.err("R010", vm.currentSpan(frame), "%s is not orderable", a.Kind())
	}
	var result bool
	switch op {
	case OpLess:
		result = cmp < 0
	case OpGreater:
		result = cmp > 0
	case OpLessEqual:
		result = cmp <= 0
	case OpGreaterEqual:
		result = cmp >= 0
	}
	vm.push(value.Bool{Value: result})
	return nil
}

func cmp3Int(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmp3Float(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmp3String(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// toDisplayString mirrors internal/evaluator/builtins.go's helper of the
// same name: bare strings, Inspect for everything else.
func toDisplayString(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Value
	}
	return v.Inspect()
}
