package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

var (
	nameColor  = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.Faint)
)

// Returns the fields of the instruction word diagram of a plan: constant bit runs and operand segments,
// sorted by position
func LayoutFields(template isa.Template, plan *encoder.Plan) []utils.AsciiFrameField {
	fields := []utils.AsciiFrameField{}

	for i := range plan.Operands {
		layout := &plan.Operands[i]
		offset := 0

		for _, segment := range layout.Segments {
			name := layout.Operand.Name
			if len(layout.Segments) > 1 {
				name = fmt.Sprintf("%v[%v:%v]", name, offset+segment.Width()-1, offset)
			}

			fields = append(fields, utils.AsciiFrameField{Name: name, Begin: segment.Start, Width: segment.Width()})
			offset += segment.Width()
		}
	}

	for i := 0; i < len(template); {
		if _, ok := template[i].(isa.Constant); !ok {
			i++
			continue
		}

		j := i
		var bits []string

		for ; j < len(template); j++ {
			c, ok := template[j].(isa.Constant)
			if !ok {
				break
			}

			bits = append(bits, c.String())
		}

		slices.Reverse(bits)
		fields = append(fields, utils.AsciiFrameField{Name: strings.Join(bits, ""), Begin: i, Width: j - i})
		i = j
	}

	slices.SortFunc(fields, func(a, b utils.AsciiFrameField) int { return a.Begin - b.Begin })
	return fields
}

// Writes a human readable description of a result: operands, encoding plan, bit layout and generated code.
// The code section is skipped if g is nil.
func Describe(w io.Writer, result *encoder.Result, g *codegen.Generator) error {
	d := result.Descriptor

	var b strings.Builder

	nameColor.Fprintln(&b, d.Name)

	section := func(label string, format string, args ...any) {
		text := fmt.Sprintf(format, args...)
		if text != "" {
			text = " " + text
		}

		fmt.Fprintf(&b, "  %v%v\n", labelColor.Sprint(label+":"), text)
	}

	if d.Template != nil {
		section("template", "%v", d.Template)
	}

	if !result.Ok() {
		section("rejected", "%v", result.Rejection.Reason)
		section("details", "%v", result.Rejection.Error())

		_, err := io.WriteString(w, b.String())
		return err
	}

	section("operands", "")
	for _, op := range result.Operands {
		fmt.Fprintf(&b, "    %v\n", op)
	}

	section("constant", "%v (%v)", utils.FormatUintHex(uint64(result.Plan.Constant), 8), utils.FormatWordNibbles(result.Plan.Constant))

	section("segments", "")
	for i := range result.Plan.Operands {
		fmt.Fprintf(&b, "    %v\n", &result.Plan.Operands[i])
	}

	diagram, err := utils.AsciiFrame(LayoutFields(d.Template, result.Plan), utils.WordBits, "bits", utils.AsciiFrameUnitLayout_RightToLeft, 4)
	if err != nil {
		return err
	}

	section("layout", "")
	b.WriteString(diagram)

	if g != nil {
		code, err := g.GenerateMethod(result)
		if err != nil {
			return err
		}

		section("code", "")
		for _, line := range strings.Split(strings.TrimRight(string(code), "\n"), "\n") {
			fmt.Fprintf(&b, "    %v\n", utils.Highlight(line, g.Backend().Language()))
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}
