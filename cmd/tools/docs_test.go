package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa"
)

func TestTemplateDoc(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, supportedModules["template"](&buffer))
	assert.Contains(t, buffer.String(), "unknown bits left at 0")

	pipeline, err := encoder.NewPipeline(encoder.DefaultOptions())
	require.NoError(t, err)

	process := func(template string) encoder.Result {
		return pipeline.Process(&isa.Descriptor{
			Name:      "MOVr",
			Namespace: "ARM",
			Template:  isa.MustParseTemplate(template),
			Outs:      []isa.Argument{{Name: "Rd", Type: "GPR"}},
			Fields:    map[string]isa.Field{"Rd": {Width: 4}},
		})
	}

	t.Run("PartiallyUnknownIsEncoded", func(t *testing.T) {
		result := process("1110 ???? 0000 0000 0000 0000 0000 Rd:4")
		require.True(t, result.Ok(), "%v", result.Rejection)
		assert.Equal(t, uint32(0xe0000000), result.Plan.Constant)
	})

	t.Run("AllUnknownIsRejected", func(t *testing.T) {
		result := process(strings.Repeat("?", 32))
		require.False(t, result.Ok())
		assert.Equal(t, encoder.Reason_MissingOrIncompleteTemplate, result.Rejection.Reason)
	})
}

func TestDocsModules(t *testing.T) {
	assert.Equal(t, []string{"reasons", "template"}, moduleNames)

	var buffer bytes.Buffer
	require.NoError(t, supportedModules["reasons"](&buffer))
	assert.Contains(t, buffer.String(), "WidthMismatch")
}
