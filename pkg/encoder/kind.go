package encoder

import (
	"fmt"
	"strings"
)

// Runtime kind of an operand value
type OperandKind uint

const (
	OperandKind_Register OperandKind = iota
	OperandKind_ShiftRegister
	OperandKind_ShiftImmediate
	OperandKind_Immediate
)

var OperandKinds = []OperandKind{
	OperandKind_Register,
	OperandKind_ShiftRegister,
	OperandKind_ShiftImmediate,
	OperandKind_Immediate,
}

func (k OperandKind) String() string {
	switch k {
	case OperandKind_Register:
		return "Register"
	case OperandKind_ShiftRegister:
		return "ShiftRegister"
	case OperandKind_ShiftImmediate:
		return "ShiftImmediate"
	case OperandKind_Immediate:
		return "Immediate"
	}

	panic("unreachable")
}

// Parses an operand kind name (case insensitive)
func ParseOperandKind(name string) (OperandKind, error) {
	for _, kind := range OperandKinds {
		if strings.EqualFold(kind.String(), name) {
			return kind, nil
		}
	}

	return OperandKind_Register, fmt.Errorf("unknown operand kind '%v' (expected one of %v)", name, OperandKinds)
}

func (k OperandKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OperandKind) UnmarshalText(text []byte) error {
	kind, err := ParseOperandKind(string(text))
	if err != nil {
		return err
	}

	*k = kind
	return nil
}
