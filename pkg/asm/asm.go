// Package asm is the runtime support of generated encoders: operand value types and the
// buffer instruction words are emitted to.
package asm

import (
	"encoding/binary"
)

// General purpose register operand, holding the register number
type Register uint32

// Register shifted by another register (so_reg_reg), already packed in its operand encoding
type ShiftRegister uint32

// Register shifted by an immediate (so_reg_imm), already packed in its operand encoding
type ShiftImmediate uint32

// Immediate operand, already packed in its operand encoding
type Immediate uint32

func (r Register) Value() uint32       { return uint32(r) }
func (s ShiftRegister) Value() uint32  { return uint32(s) }
func (s ShiftImmediate) Value() uint32 { return uint32(s) }
func (i Immediate) Value() uint32      { return uint32(i) }

// Any operand value
type Operand interface {
	Value() uint32
}

// Collects emitted instruction words in emission order
type Assembler struct {
	words []uint32
}

// Appends an instruction word
func (a *Assembler) Emit(word uint32) {
	a.words = append(a.words, word)
}

// Returns the emitted words
func (a *Assembler) Words() []uint32 {
	return a.words
}

// Number of emitted bytes
func (a *Assembler) Size() int {
	return len(a.words) * 4
}

// Returns the emitted words serialized with the given byte order
func (a *Assembler) Bytes(order binary.AppendByteOrder) []byte {
	bytes := make([]byte, 0, a.Size())

	for _, word := range a.words {
		bytes = order.AppendUint32(bytes, word)
	}

	return bytes
}

// Discards all emitted words
func (a *Assembler) Reset() {
	a.words = a.words[:0]
}
