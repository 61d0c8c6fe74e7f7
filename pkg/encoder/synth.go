package encoder

import (
	"fmt"

	"github.com/Manu343726/encgen/pkg/utils"
)

// Parameter of an encoder function
type Param struct {
	Name     string
	Kind     OperandKind
	IsOutput bool
}

// Places one slice of a parameter value into the instruction word:
//
//	((value >> Offset) & Mask()) << Start
type Step struct {
	// Name of the encoded operand
	Operand string
	// Index of the operand parameter
	Param int
	// First bit of the operand value taken by this step
	Offset int
	// Number of bits taken
	Width int
	// First bit of the instruction word written by this step
	Start int
}

func (s Step) Mask() uint32 {
	return utils.AllOnes[uint32](s.Width)
}

// Returns the bits of the instruction word this step contributes for the given operand value
func (s Step) Apply(value uint32) uint32 {
	return ((value >> s.Offset) & s.Mask()) << s.Start
}

// Function packing operand values into an instruction word
type Encoder struct {
	// Instruction name
	Name   string
	Params []Param
	// Initial value of the instruction word (opcode bits)
	Constant uint32
	// Steps, grouped by parameter in parameter order, segments in ascending order within each group
	Steps []Step
}

// Returns the non output parameters of the encoder
func (e *Encoder) Inputs() []Param {
	inputs := []Param{}

	for _, p := range e.Params {
		if !p.IsOutput {
			inputs = append(inputs, p)
		}
	}

	return inputs
}

// Returns the steps encoding the given parameter
func (e *Encoder) StepsOf(param int) []Step {
	steps := []Step{}

	for _, s := range e.Steps {
		if s.Param == param {
			steps = append(steps, s)
		}
	}

	return steps
}

// Evaluates the encoder. Values are given in parameter order
func (e *Encoder) Pack(values []uint32) uint32 {
	if len(values) != len(e.Params) {
		panic(fmt.Errorf("mismatched operand values, %v takes %v operands, we have %v values", e.Name, len(e.Params), len(values)))
	}

	word := e.Constant
	view := utils.CreateBitView(&word)

	for _, s := range e.Steps {
		view.Write(values[s.Param]>>s.Offset, s.Start, s.Width)
	}

	return view.Value()
}

// Same as [Encoder.Pack] but taking the values by parameter name. Missing values are zero
func (e *Encoder) PackNamed(values map[string]uint32) uint32 {
	return e.Pack(utils.Map(e.Params, func(p Param) uint32 {
		return values[p.Name]
	}))
}

// Builds the encoder of an instruction from its encoding plan
func Synthesize(name string, plan *Plan) *Encoder {
	e := &Encoder{
		Name:     name,
		Params:   make([]Param, len(plan.Operands)),
		Constant: plan.Constant,
	}

	for i := range plan.Operands {
		layout := &plan.Operands[i]

		e.Params[i] = Param{
			Name:     layout.Operand.Name,
			Kind:     layout.Operand.Kind,
			IsOutput: layout.Operand.IsOutput,
		}

		offset := 0

		for _, segment := range layout.Segments {
			e.Steps = append(e.Steps, Step{
				Operand: layout.Operand.Name,
				Param:   i,
				Offset:  offset,
				Width:   segment.Width(),
				Start:   segment.Start,
			})

			offset += segment.Width()
		}
	}

	return e
}
