package isa

import "fmt"

// One position of an instruction bit template.
//
// The set of implementations is closed: [Constant], [Named] and [Unknown].
type BitSlot interface {
	fmt.Stringer
	isBitSlot()
}

// A bit fixed by the opcode
type Constant struct {
	Bit uint8
}

// A bit carrying part of the value of a named operand
type Named struct {
	Operand string
}

// An indeterminate bit
type Unknown struct{}

func (Constant) isBitSlot() {}
func (Named) isBitSlot()    {}
func (Unknown) isBitSlot()  {}

func (c Constant) String() string {
	if c.Bit == 0 {
		return "0"
	}

	return "1"
}

func (n Named) String() string {
	return n.Operand
}

func (Unknown) String() string {
	return "?"
}

// Shorthands used by loaders and tests
var (
	Zero BitSlot = Constant{Bit: 0}
	One  BitSlot = Constant{Bit: 1}
	Any  BitSlot = Unknown{}
)

// Returns the slot naming the given operand
func Operand(name string) BitSlot {
	return Named{Operand: name}
}
