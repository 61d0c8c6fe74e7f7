package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/isa"
)

func TestFilter_Check(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *isa.Descriptor)
		reason *Reason
	}{
		{
			name:   "encodable",
			modify: func(d *isa.Descriptor) {},
		},
		{
			name:   "thumb prefix",
			modify: func(d *isa.Descriptor) { d.Name = "tADDi8" },
			reason: ptr(Reason_UnsupportedNamePrefix),
		},
		{
			name:   "s prefix",
			modify: func(d *isa.Descriptor) { d.Name = "sysLDMIA" },
			reason: ptr(Reason_UnsupportedNamePrefix),
		},
		{
			name:   "target opcode",
			modify: func(d *isa.Descriptor) { d.Namespace = "TargetOpcode" },
			reason: ptr(Reason_NotPartOfInstructionSet),
		},
		{
			name:   "pseudo",
			modify: func(d *isa.Descriptor) { d.Flags.Pseudo = true },
			reason: ptr(Reason_NotPartOfInstructionSet),
		},
		{
			name:   "asm parser only",
			modify: func(d *isa.Descriptor) { d.Flags.AsmParserOnly = true },
			reason: ptr(Reason_NotPartOfInstructionSet),
		},
		{
			name:   "codegen only",
			modify: func(d *isa.Descriptor) { d.Flags.CodeGenOnly = true },
			reason: ptr(Reason_NotPartOfInstructionSet),
		},
		{
			name:   "no template",
			modify: func(d *isa.Descriptor) { d.Template = nil },
			reason: ptr(Reason_MissingOrIncompleteTemplate),
		},
		{
			name:   "all bits unknown",
			modify: func(d *isa.Descriptor) { d.Template = isa.MustParseTemplate("????????????????????????????????") },
			reason: ptr(Reason_MissingOrIncompleteTemplate),
		},
		{
			name:   "16 bit template",
			modify: func(d *isa.Descriptor) { d.Template = isa.MustParseTemplate("00110 Rdn:3 imm8:8") },
			reason: ptr(Reason_UnsupportedWidth),
		},
		{
			name: "name check comes first",
			modify: func(d *isa.Descriptor) {
				d.Name = "t2LDRpci"
				d.Namespace = "TargetOpcode"
				d.Template = nil
			},
			reason: ptr(Reason_UnsupportedNamePrefix),
		},
	}

	filter, err := NewFilter(DefaultFilterOptions())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := addri()
			tt.modify(d)

			err := filter.Check(d)
			if tt.reason == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.reason.Err())
		})
	}
}

func TestFilter_CustomPatterns(t *testing.T) {
	filter, err := NewFilter(FilterOptions{Exclude: []string{"VLD{1,2}*", "*_POST"}})
	require.NoError(t, err)

	for name, excluded := range map[string]bool{
		"VLD1d8":     true,
		"VLD2d8":     true,
		"VLD3d8":     false,
		"LDR_POST":   true,
		"tADDi8":     false,
		"ADDri":      false,
		"LDR_POST_X": false,
	} {
		d := addri()
		d.Name = name

		if excluded {
			assert.ErrorIs(t, filter.Check(d), ErrUnsupportedNamePrefix, name)
		} else {
			assert.NoError(t, filter.Check(d), name)
		}
	}
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	_, err := NewFilter(FilterOptions{Exclude: []string{"[a-"}})
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
