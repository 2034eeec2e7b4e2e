// Package vm implements the bytecode compiler and the frame-based
// virtual machine described in §4.3/§4.4: a single linear opcode stream
// per function, compiled against the shared internal/value.Value model,
// executed by a growable-stack, frame-capped VM with upvalue closures
// and tail-call frame reuse. Grounded on funvibe-funxy/internal/vm's
// chunk/opcode/frame shape, trimmed to exactly this spec's opcode set —
// no trait dispatch, record-extension, async, or spread opcodes.
package vm

// Opcode is a single byte instruction tag. Operands (when present)
// follow the opcode byte in a chunk's Code stream, encoded as described
// per opcode below.
type Opcode byte

const (
	// Stack
	OpConstant  Opcode = iota // u16 constant index
	OpUnit                    // -
	OpTrue                    // -
	OpFalse                   // -
	OpPop                     // -
	OpDup                     // -
	OpSwap                    // -
	OpPopUnder                // u8 n

	// Variables
	OpGetLocal    // u8 slot
	OpSetLocal    // u8 slot
	OpGetUpvalue  // u8 index
	OpGetGlobal   // u16 name-constant index
	OpDefineGlobal // u16 name-constant index

	// Arithmetic / logic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNegate
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpNot

	// Control
	OpJump        // u16 forward offset
	OpJumpIfFalse // u16 forward offset, peeks
	OpLoop        // u16 backward offset

	// Functions
	OpCall     // u8 argc
	OpTailCall // u8 argc
	OpReturn   // -
	OpClosure  // u16 proto-constant index, u8 nUpvalues, then nUpvalues*(u8 isLocal, u8 index)

	// Data
	OpMakeList   // u8 n
	OpMakeTuple  // u8 n
	OpCons       // -
	OpMakeAdt    // u16 tag-constant index, u8 n
	OpMakeRecord // u8 n, then n * u16 field-name-constant index

	// Match tests: pop the tested value on both the pass and the fail path,
	// and jump forward by the fail offset when the test fails.
	OpTestTag       // u16 tag-constant index, u16 fail offset
	OpTestInt       // u16 constant index (Int or Float), u16 fail offset; tests value.Equal
	OpTestBool      // u8 want (0/1), u16 fail offset
	OpTestString    // u16 string-constant index, u16 fail offset
	OpTestUnit      // u16 fail offset
	OpTestEmptyList // u16 fail offset
	OpTestCons      // u16 fail offset
	OpTestTuple     // u8 arity, u16 fail offset

	// Accessors: peek, push component
	OpGetAdtField   // u8 index
	OpGetListHead   // -
	OpGetListTail   // -
	OpGetTupleField // u8 index
	OpGetField      // u16 name-constant index

	// Strings
	OpToString
	OpStringConcat

	// Debug
	OpPrint
	OpPrintRaw

	// OpMatchFail raises MatchFailure. Emitted once, after the last match
	// arm's fail target, to implement the resolved Open Question ("emit a
	// runtime MatchFailure if all arms fail" rather than silently falling
	// through) — the one opcode this compiler adds beyond §4.3's literal
	// enumeration, since nothing in that list represents "trap here".
	OpMatchFail
)

// OpcodeNames is the disassembler's name table.
var OpcodeNames = map[Opcode]string{
	OpConstant:      "Constant",
	OpUnit:          "Unit",
	OpTrue:          "True",
	OpFalse:         "False",
	OpPop:           "Pop",
	OpDup:           "Dup",
	OpSwap:          "Swap",
	OpPopUnder:      "PopUnder",
	OpGetLocal:      "GetLocal",
	OpSetLocal:      "SetLocal",
	OpGetUpvalue:    "GetUpvalue",
	OpGetGlobal:     "GetGlobal",
	OpDefineGlobal:  "DefineGlobal",
	OpAdd:           "Add",
	OpSub:           "Sub",
	OpMul:           "Mul",
	OpDiv:           "Div",
	OpMod:           "Mod",
	OpNegate:        "Negate",
	OpEqual:         "Equal",
	OpNotEqual:      "NotEqual",
	OpLess:          "Less",
	OpGreater:       "Greater",
	OpLessEqual:     "LessEqual",
	OpGreaterEqual:  "GreaterEqual",
	OpNot:           "Not",
	OpJump:          "Jump",
	OpJumpIfFalse:   "JumpIfFalse",
	OpLoop:          "Loop",
	OpCall:          "Call",
	OpTailCall:      "TailCall",
	OpReturn:        "Return",
	OpClosure:       "Closure",
	OpMakeList:      "MakeList",
	OpMakeTuple:     "MakeTuple",
	OpCons:          "Cons",
	OpMakeAdt:       "MakeAdt",
	OpMakeRecord:    "MakeRecord",
	OpTestTag:       "TestTag",
	OpTestInt:       "TestInt",
	OpTestBool:      "TestBool",
	OpTestString:    "TestString",
	OpTestUnit:      "TestUnit",
	OpTestEmptyList: "TestEmptyList",
	OpTestCons:      "TestCons",
	OpTestTuple:     "TestTuple",
	OpGetAdtField:   "GetAdtField",
	OpGetListHead:   "GetListHead",
	OpGetListTail:   "GetListTail",
	OpGetTupleField: "GetTupleField",
	OpGetField:      "GetField",
	OpToString:      "ToString",
	OpStringConcat:  "StringConcat",
	OpPrint:         "Print",
	OpPrintRaw:      "PrintRaw",
	OpMatchFail:     "MatchFail",
}

func (op Opcode) String() string {
	if s, ok := OpcodeNames[op]; ok {
		return s
	}
	return "UNKNOWN"
}
