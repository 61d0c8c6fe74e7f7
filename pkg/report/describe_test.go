package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

func movti16() *isa.Descriptor {
	return &isa.Descriptor{
		Name:      "MOVTi16",
		Namespace: "ARM",
		Template:  isa.MustParseTemplate("1110 0011 0100 imm:4 Rd:4 imm:12"),
		Outs:      []isa.Argument{{Name: "Rd", Type: "GPR"}},
		Ins:       []isa.Argument{{Name: "imm", Type: "imm0_65535"}},
		Fields:    map[string]isa.Field{"Rd": {Width: 4}, "imm": {Width: 16}},
		Size:      4,
	}
}

func process(t *testing.T, d *isa.Descriptor) *encoder.Result {
	pipeline, err := encoder.NewPipeline(encoder.DefaultOptions())
	require.NoError(t, err)

	result := pipeline.Process(d)
	return &result
}

func TestLayoutFields(t *testing.T) {
	result := process(t, movti16())
	require.True(t, result.Ok())

	assert.Equal(t, []utils.AsciiFrameField{
		{Name: "imm[11:0]", Begin: 0, Width: 12},
		{Name: "Rd", Begin: 12, Width: 4},
		{Name: "imm[15:12]", Begin: 16, Width: 4},
		{Name: "111000110100", Begin: 20, Width: 12},
	}, LayoutFields(result.Descriptor.Template, result.Plan))
}

func TestDescribe(t *testing.T) {
	color.NoColor = true

	g, err := codegen.NewGenerator(codegen.DefaultOptions())
	require.NoError(t, err)

	t.Run("Synthesized", func(t *testing.T) {
		var buffer bytes.Buffer
		require.NoError(t, Describe(&buffer, process(t, movti16()), g))

		text := buffer.String()
		assert.Contains(t, text, "MOVTi16\n")
		assert.Contains(t, text, "constant: 0xe3400000 (1110_0011_0100_0000_0000_0000_0000_0000)")
		assert.Contains(t, text, "imm[15:12]")
		assert.Contains(t, text, "func (a *Assembler) MOVTi16(")
	})

	t.Run("WithoutGenerator", func(t *testing.T) {
		var buffer bytes.Buffer
		require.NoError(t, Describe(&buffer, process(t, movti16()), nil))
		assert.NotContains(t, buffer.String(), "code:")
	})

	t.Run("Rejected", func(t *testing.T) {
		d := movti16()
		d.Name = "tMOVTi16"

		var buffer bytes.Buffer
		require.NoError(t, Describe(&buffer, process(t, d), g))

		text := buffer.String()
		assert.Contains(t, text, "rejected: UnsupportedNamePrefix")
		assert.NotContains(t, text, "layout:")
	})
}
