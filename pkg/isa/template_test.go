package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Template
	}{
		{
			name:     "empty",
			text:     "",
			expected: Template{},
		},
		{
			name:     "constants are msb first",
			text:     "10?",
			expected: Template{Any, Zero, One},
		},
		{
			name:     "single slot operand",
			text:     "1 s 0",
			expected: Template{Zero, Operand("s"), One},
		},
		{
			name:     "operand run",
			text:     "Rd:3 01",
			expected: Template{One, Zero, Operand("Rd"), Operand("Rd"), Operand("Rd")},
		},
		{
			name:     "split operand",
			text:     "imm:2 1 imm:2",
			expected: Template{Operand("imm"), Operand("imm"), One, Operand("imm"), Operand("imm")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseTemplate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	for _, text := range []string{"1x0", "Rd:0", "Rd:-1", "9Rd", "Rd:3:4"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseTemplate(text)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestTemplate_String(t *testing.T) {
	template := MustParseTemplate("1110 001 0100 s Rn:4 Rd:4 imm:12")
	require.Equal(t, 32, template.Width())

	assert.Equal(t, "11100010100 s Rn:4 Rd:4 imm:12", template.String())
}

func TestTemplate_StringRoundTrip(t *testing.T) {
	template := Template{One, Operand("a"), Any, Operand("b"), Operand("b"), Zero, Operand("a")}

	parsed, err := ParseTemplate(template.String())
	require.NoError(t, err)
	assert.Equal(t, template, parsed)
}

func TestTemplate_IsIncomplete(t *testing.T) {
	assert.True(t, Template{}.IsIncomplete())
	assert.True(t, MustParseTemplate("????").IsIncomplete())
	assert.False(t, MustParseTemplate("??1?").IsIncomplete())
	assert.False(t, MustParseTemplate("?? Rd ?").IsIncomplete())
}

func TestTemplate_Operands(t *testing.T) {
	template := MustParseTemplate("imm:4 Rd:4 imm:4 Rn:4")
	assert.Equal(t, []string{"Rn", "imm", "Rd"}, template.Operands())
}
