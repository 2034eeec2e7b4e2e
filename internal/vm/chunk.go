package vm

import (
	"encoding/binary"

	"github.com/UmarbekFU/lyra-lang/internal/token"
	"github.com/UmarbekFU/lyra-lang/internal/value"
)

// newChunk returns an empty chunk ready for emission.
func newChunk() *value.Chunk {
	return &value.Chunk{}
}

// emitByte appends a raw byte, recording span for the disassembler/runtime
// error reporter (§7's "every non-I/O error carries a source Span").
func emitByte(c *value.Chunk, b byte, span token.Span) {
	c.Code = append(c.Code, b)
	c.Spans = append(c.Spans, span)
}

func emitOp(c *value.Chunk, op Opcode, span token.Span) {
	emitByte(c, byte(op), span)
}

func emitU8(c *value.Chunk, v uint8, span token.Span) {
	emitByte(c, v, span)
}

func emitU16(c *value.Chunk, v uint16, span token.Span) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	emitByte(c, buf[0], span)
	emitByte(c, buf[1], span)
}

func readU8(c *value.Chunk, ip int) uint8 {
	return c.Code[ip]
}

func readU16(c *value.Chunk, ip int) uint16 {
	return binary.BigEndian.Uint16(c.Code[ip : ip+2])
}

// patchU16 overwrites the u16 operand at byte offset pos (used to back-patch
// forward-jump offsets once the jump target is known).
func patchU16(c *value.Chunk, pos int, v uint16) {
	binary.BigEndian.PutUint16(c.Code[pos:pos+2], v)
}

// addConstant interns v by insertion order, returning its index. Compile-
// time constant pools are small (per-function), so linear equality-by-
// identity on literal values is not attempted — every literal gets its own
// slot, matching funxy's simpler insertion-order interning.
func addConstant(c *value.Chunk, v value.Value) uint16 {
	c.Constants = append(c.Constants, v)
	return uint16(len(c.Constants) - 1)
}
