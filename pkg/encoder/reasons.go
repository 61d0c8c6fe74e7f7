package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// Why an instruction was not synthesized
type Reason uint

const (
	Reason_UnsupportedNamePrefix Reason = iota
	Reason_NotPartOfInstructionSet
	Reason_MissingOrIncompleteTemplate
	Reason_UnsupportedWidth
	Reason_UnsupportedOperandKind
	Reason_UnnamedOperand
	Reason_CCOutOperand
	Reason_DuplicateOperand
	Reason_WidthMismatch
	Reason_Overflow
)

var Reasons = []Reason{
	Reason_UnsupportedNamePrefix,
	Reason_NotPartOfInstructionSet,
	Reason_MissingOrIncompleteTemplate,
	Reason_UnsupportedWidth,
	Reason_UnsupportedOperandKind,
	Reason_UnnamedOperand,
	Reason_CCOutOperand,
	Reason_DuplicateOperand,
	Reason_WidthMismatch,
	Reason_Overflow,
}

var (
	ErrUnsupportedNamePrefix       = errors.New("unsupported name prefix")
	ErrNotPartOfInstructionSet     = errors.New("not part of the instruction set")
	ErrMissingOrIncompleteTemplate = errors.New("missing or incomplete encoding template")
	ErrUnsupportedWidth            = errors.New("unsupported encoding width")
	ErrUnsupportedOperandKind      = errors.New("unsupported operand kind")
	ErrUnnamedOperand              = errors.New("unnamed operand")
	ErrCCOutOperand                = errors.New("condition code output operand")
	ErrDuplicateOperand            = errors.New("duplicate operand")
	ErrWidthMismatch               = errors.New("operand width mismatch")
	ErrOverflow                    = errors.New("operand exceeds the instruction word")
)

func (r Reason) String() string {
	switch r {
	case Reason_UnsupportedNamePrefix:
		return "UnsupportedNamePrefix"
	case Reason_NotPartOfInstructionSet:
		return "NotPartOfInstructionSet"
	case Reason_MissingOrIncompleteTemplate:
		return "MissingOrIncompleteTemplate"
	case Reason_UnsupportedWidth:
		return "UnsupportedWidth"
	case Reason_UnsupportedOperandKind:
		return "UnsupportedOperandKind"
	case Reason_UnnamedOperand:
		return "UnnamedOperand"
	case Reason_CCOutOperand:
		return "CCOutOperand"
	case Reason_DuplicateOperand:
		return "DuplicateOperand"
	case Reason_WidthMismatch:
		return "WidthMismatch"
	case Reason_Overflow:
		return "Overflow"
	}

	panic("unreachable")
}

// Returns the sentinel error wrapped by rejections with this reason
func (r Reason) Err() error {
	switch r {
	case Reason_UnsupportedNamePrefix:
		return ErrUnsupportedNamePrefix
	case Reason_NotPartOfInstructionSet:
		return ErrNotPartOfInstructionSet
	case Reason_MissingOrIncompleteTemplate:
		return ErrMissingOrIncompleteTemplate
	case Reason_UnsupportedWidth:
		return ErrUnsupportedWidth
	case Reason_UnsupportedOperandKind:
		return ErrUnsupportedOperandKind
	case Reason_UnnamedOperand:
		return ErrUnnamedOperand
	case Reason_CCOutOperand:
		return ErrCCOutOperand
	case Reason_DuplicateOperand:
		return ErrDuplicateOperand
	case Reason_WidthMismatch:
		return ErrWidthMismatch
	case Reason_Overflow:
		return ErrOverflow
	}

	panic("unreachable")
}

// Returns a human readable explanation of the reason, used in documentation
func (r Reason) Description() string {
	switch r {
	case Reason_UnsupportedNamePrefix:
		return "The instruction name matches one of the exclusion patterns (filter.exclude)."
	case Reason_NotPartOfInstructionSet:
		return "The record lives in an excluded namespace (filter.namespaces) or is flagged pseudo, asm parser only or codegen only."
	case Reason_MissingOrIncompleteTemplate:
		return "The record has no encoding template, or none of its bits is known."
	case Reason_UnsupportedWidth:
		return "The encoding template is not 32 bits wide."
	case Reason_UnsupportedOperandKind:
		return "An input operand has a type that cannot be encoded (operands.unsupported)."
	case Reason_UnnamedOperand:
		return "An operand has no name, so it cannot be matched against the template."
	case Reason_CCOutOperand:
		return "An input is the optional condition code output flag (operands.cc_out)."
	case Reason_DuplicateOperand:
		return "Two operands share the same name."
	case Reason_WidthMismatch:
		return "The template bits of an operand do not add up to its declared width (layout.widths: strict)."
	case Reason_Overflow:
		return "An operand placed at its first template bit would not fit in the 32 bit word."
	}

	panic("unreachable")
}

// Returns true if the reason excludes the instruction before its layout is resolved
func (r Reason) IsExclusion() bool {
	return r < Reason_WidthMismatch
}

// Returns true if the reason means the instruction template could not be turned into a valid layout
func (r Reason) IsBrokenEncoding() bool {
	return r == Reason_WidthMismatch || r == Reason_Overflow
}

// Describes why an instruction descriptor could not be turned into an encoder
type Rejection struct {
	// Name of the rejected instruction
	Instruction string
	Reason      Reason
	// Implicated operand, if any
	Operand string
	// Offending segment, if any
	Segment *Segment
	// Width found in the template and width expected for the operand, when relevant
	Detected int
	Expected int
	// Free form details
	Detail string
}

func (r *Rejection) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%v: %v", r.Instruction, r.Reason.Err())

	if r.Operand != "" {
		fmt.Fprintf(&builder, " (operand '%v'", r.Operand)

		if r.Segment != nil {
			fmt.Fprintf(&builder, ", segment %v", r.Segment)
		}

		if r.Detected != 0 || r.Expected != 0 {
			fmt.Fprintf(&builder, ", detected %v bits versus expected %v", r.Detected, r.Expected)
		}

		builder.WriteString(")")
	}

	if r.Detail != "" {
		fmt.Fprintf(&builder, ": %v", r.Detail)
	}

	return builder.String()
}

func (r *Rejection) Unwrap() error {
	return r.Reason.Err()
}

func reject(d string, reason Reason, detail string, args ...any) *Rejection {
	return &Rejection{
		Instruction: d,
		Reason:      reason,
		Detail:      fmt.Sprintf(detail, args...),
	}
}

// Returns the rejection carried by err, if any
func AsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	ok := errors.As(err, &rejection)
	return rejection, ok
}
