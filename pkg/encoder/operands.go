package encoder

import (
	"fmt"

	"github.com/Manu343726/encgen/pkg/isa"
)

// Encoding-relevant description of an instruction operand
type OperandSpec struct {
	// Operand name, unique within the instruction
	Name string
	Kind OperandKind
	// Declared width in bits, 0 if unknown
	Width    int
	IsOutput bool
}

func (o OperandSpec) WidthKnown() bool {
	return o.Width > 0
}

func (o OperandSpec) String() string {
	direction := "in"
	if o.IsOutput {
		direction = "out"
	}

	width := "?"
	if o.WidthKnown() {
		width = fmt.Sprint(o.Width)
	}

	return fmt.Sprintf("%v %v:%v (%v)", direction, o.Name, width, o.Kind)
}

type ClassifierOptions struct {
	// Input operand type tokens with a kind other than register
	Kinds map[string]OperandKind
	// Input operand type tokens that cannot be encoded
	Unsupported []string
	// Name of the condition code output operand. Empty allows it
	CCOut string
	// Operand names always encoded in a single bit
	SingleBit []string
}

func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		Kinds: map[string]OperandKind{
			"so_reg_reg": OperandKind_ShiftRegister,
			"so_reg_imm": OperandKind_ShiftImmediate,
			"mod_imm":    OperandKind_Immediate,
		},
		Unsupported: []string{"QPR"},
		CCOut:       "s",
		SingleBit:   []string{"lane"},
	}
}

// Turns the operand lists of instruction descriptors into operand specs
type Classifier struct {
	kinds       map[string]OperandKind
	unsupported map[string]bool
	singleBit   map[string]bool
	ccOut       string
}

func NewClassifier(opts ClassifierOptions) *Classifier {
	c := &Classifier{
		kinds:       make(map[string]OperandKind, len(opts.Kinds)),
		unsupported: make(map[string]bool, len(opts.Unsupported)),
		singleBit:   make(map[string]bool, len(opts.SingleBit)),
		ccOut:       opts.CCOut,
	}

	for token, kind := range opts.Kinds {
		c.kinds[token] = kind
	}

	for _, token := range opts.Unsupported {
		c.unsupported[token] = true
	}

	for _, name := range opts.SingleBit {
		c.singleBit[name] = true
	}

	return c
}

func (c *Classifier) declaredWidth(d *isa.Descriptor, name string) int {
	if c.singleBit[name] {
		return 1
	}

	if width, ok := d.FieldWidth(name); ok {
		return width
	}

	return 0
}

// Returns one operand spec per argument of the descriptor, outputs first.
//
// Outputs are always registers. Inputs are classified by their type token. On failure the
// returned error is a [*Rejection].
func (c *Classifier) Classify(d *isa.Descriptor) ([]OperandSpec, error) {
	operands := make([]OperandSpec, 0, len(d.Outs)+len(d.Ins))
	seen := make(map[string]bool, cap(operands))

	add := func(op OperandSpec) error {
		if seen[op.Name] {
			return &Rejection{Instruction: d.Name, Reason: Reason_DuplicateOperand, Operand: op.Name}
		}

		seen[op.Name] = true
		operands = append(operands, op)
		return nil
	}

	for i, out := range d.Outs {
		if out.Name == "" {
			return nil, reject(d.Name, Reason_UnnamedOperand, "output #%v of type '%v'", i, out.Type)
		}

		err := add(OperandSpec{
			Name:     out.Name,
			Kind:     OperandKind_Register,
			Width:    c.declaredWidth(d, out.Name),
			IsOutput: true,
		})
		if err != nil {
			return nil, err
		}
	}

	for i, in := range d.Ins {
		if in.Name == "" {
			return nil, reject(d.Name, Reason_UnnamedOperand, "input #%v of type '%v'", i, in.Type)
		}

		if c.ccOut != "" && in.Name == c.ccOut {
			return nil, &Rejection{Instruction: d.Name, Reason: Reason_CCOutOperand, Operand: in.Name}
		}

		if c.unsupported[in.Type] {
			return nil, &Rejection{Instruction: d.Name, Reason: Reason_UnsupportedOperandKind, Operand: in.Name, Detail: in.Type}
		}

		kind, ok := c.kinds[in.Type]
		if !ok {
			kind = OperandKind_Register
		}

		err := add(OperandSpec{
			Name:  in.Name,
			Kind:  kind,
			Width: c.declaredWidth(d, in.Name),
		})
		if err != nil {
			return nil, err
		}
	}

	return operands, nil
}
