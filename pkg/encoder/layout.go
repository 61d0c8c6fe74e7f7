package encoder

import (
	"fmt"
	"strings"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

// Contiguous range of template bits holding part of an operand value. Start and End are inclusive
type Segment struct {
	Start int
	End   int
}

func (s Segment) Width() int {
	return s.End - s.Start + 1
}

func (s Segment) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("[%v]", s.Start)
	}

	return fmt.Sprintf("[%v..%v]", s.Start, s.End)
}

// Resolved placement of an operand within the instruction word
type OperandLayout struct {
	Operand OperandSpec
	// Resolved operand width
	Width int
	// True if the width was not declared and had to be taken from the template
	Inferred bool
	// Segments in ascending start order. The first one holds the low order bits of the value
	Segments []Segment
}

// Total number of bits covered by the operand segments
func (l *OperandLayout) SegmentWidth() int {
	return utils.Accumulate(l.Segments, Segment.Width)
}

func (l *OperandLayout) String() string {
	return fmt.Sprintf("%v -> %v", l.Operand.Name, utils.FormatSlice(l.Segments, " "))
}

// Encoding plan of an instruction: the constant opcode bits plus where each operand goes
type Plan struct {
	Constant uint32
	// One entry per operand, in operand order
	Operands []OperandLayout
}

// Returns the layout of the given operand, nil if the instruction has no such operand
func (p *Plan) Operand(name string) *OperandLayout {
	for i := range p.Operands {
		if p.Operands[i].Operand.Name == name {
			return &p.Operands[i]
		}
	}

	return nil
}

func (p *Plan) String() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "constant 0x%08x", p.Constant)

	for i := range p.Operands {
		fmt.Fprintf(&builder, ", %v", &p.Operands[i])
	}

	return builder.String()
}

// How strictly template widths are reconciled with declared operand widths
type LayoutMode uint

const (
	// Template widths must match declared widths exactly
	LayoutMode_Strict LayoutMode = iota
	// Declared widths are only used to detect overflows, the template wins otherwise
	LayoutMode_Relaxed
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutMode_Strict:
		return "strict"
	case LayoutMode_Relaxed:
		return "relaxed"
	}

	panic("unreachable")
}

func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return LayoutMode_Strict, nil
	case "relaxed":
		return LayoutMode_Relaxed, nil
	}

	return LayoutMode_Strict, fmt.Errorf("unknown layout mode '%v' (expected strict or relaxed)", s)
}

// Reconstructs the bit layout of instruction operands from encoding templates
type Resolver struct {
	mode LayoutMode
}

func NewResolver(mode LayoutMode) *Resolver {
	return &Resolver{mode: mode}
}

// Scans the descriptor template from the least significant bit, accumulating constant bits and
// grouping runs of operand bits into segments. On failure the returned error is a [*Rejection].
func (r *Resolver) Resolve(d *isa.Descriptor, operands []OperandSpec) (*Plan, error) {
	if d.Template.Width() != utils.WordBits {
		return nil, reject(d.Name, Reason_UnsupportedWidth, "%v bit template", d.Template.Width())
	}

	plan := &Plan{
		Operands: make([]OperandLayout, len(operands)),
	}

	index := make(map[string]int, len(operands))

	for i, op := range operands {
		plan.Operands[i] = OperandLayout{Operand: op, Width: op.Width}
		index[op.Name] = i
	}

	constant := utils.CreateBitView(&plan.Constant)
	template := d.Template

	for i := 0; i < len(template); {
		switch slot := template[i].(type) {
		case isa.Constant:
			if slot.Bit == 1 {
				constant.SetBit(i)
			}

			i++
		case isa.Named:
			j, known := index[slot.Operand]
			if !known {
				i++
				continue
			}

			z := i + 1
			for z < len(template) && template[z] == slot {
				z++
			}

			if err := r.addSegment(d, &plan.Operands[j], Segment{Start: i, End: z - 1}); err != nil {
				return nil, err
			}

			i = z
		default:
			i++
		}
	}

	for i := range plan.Operands {
		layout := &plan.Operands[i]
		if len(layout.Segments) == 0 {
			continue
		}

		accumulated := layout.SegmentWidth()

		if r.mode == LayoutMode_Relaxed {
			layout.Width = accumulated
		} else if accumulated < layout.Width {
			return nil, &Rejection{
				Instruction: d.Name,
				Reason:      Reason_WidthMismatch,
				Operand:     layout.Operand.Name,
				Segment:     &layout.Segments[len(layout.Segments)-1],
				Detected:    accumulated,
				Expected:    layout.Width,
			}
		}
	}

	return plan, nil
}

func (r *Resolver) addSegment(d *isa.Descriptor, layout *OperandLayout, segment Segment) error {
	layout.Segments = append(layout.Segments, segment)

	if layout.Width == 0 {
		layout.Width = segment.Width()
		layout.Inferred = true
	}

	accumulated := layout.SegmentWidth()

	rejection := func(reason Reason) error {
		return &Rejection{
			Instruction: d.Name,
			Reason:      reason,
			Operand:     layout.Operand.Name,
			Segment:     &segment,
			Detected:    accumulated,
			Expected:    layout.Width,
		}
	}

	if layout.Segments[0].Start+max(layout.Width, accumulated) > utils.WordBits {
		return rejection(Reason_Overflow)
	}

	if r.mode == LayoutMode_Strict && accumulated > layout.Width {
		return rejection(Reason_WidthMismatch)
	}

	return nil
}
