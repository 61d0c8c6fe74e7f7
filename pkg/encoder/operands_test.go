package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/isa"
)

func TestClassify(t *testing.T) {
	d := descriptor("ORRrsi", "0",
		[]isa.Argument{out("Rd")},
		[]isa.Argument{
			in("Rn", "GPR"),
			in("shift", "so_reg_imm"),
			in("Rs", "so_reg_reg"),
			in("imm", "mod_imm"),
			in("lane", "nohash_imm"),
			in("p", "pred"),
		},
		map[string]int{"Rd": 4, "Rn": 4, "shift": 12, "imm": 12})

	operands, err := NewClassifier(DefaultClassifierOptions()).Classify(d)
	require.NoError(t, err)

	assert.Equal(t, []OperandSpec{
		{Name: "Rd", Kind: OperandKind_Register, Width: 4, IsOutput: true},
		{Name: "Rn", Kind: OperandKind_Register, Width: 4},
		{Name: "shift", Kind: OperandKind_ShiftImmediate, Width: 12},
		{Name: "Rs", Kind: OperandKind_ShiftRegister},
		{Name: "imm", Kind: OperandKind_Immediate, Width: 12},
		{Name: "lane", Kind: OperandKind_Register, Width: 1},
		{Name: "p", Kind: OperandKind_Register},
	}, operands)
}

func TestClassify_OutputsFirst(t *testing.T) {
	d := descriptor("LDRD", "0",
		[]isa.Argument{out("Rt"), out("Rt2")},
		[]isa.Argument{in("addr", "addrmode3")},
		nil)

	operands, err := NewClassifier(DefaultClassifierOptions()).Classify(d)
	require.NoError(t, err)

	require.Len(t, operands, 3)
	assert.True(t, operands[0].IsOutput)
	assert.True(t, operands[1].IsOutput)
	assert.False(t, operands[2].IsOutput)
	assert.Equal(t, "addr", operands[2].Name)
}

func TestClassify_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		outs    []isa.Argument
		ins     []isa.Argument
		reason  Reason
		operand string
	}{
		{
			name:    "quad register input",
			ins:     []isa.Argument{in("Vn", "QPR")},
			reason:  Reason_UnsupportedOperandKind,
			operand: "Vn",
		},
		{
			name:   "unnamed input",
			ins:    []isa.Argument{in("Rn", "GPR"), in("", "variable_ops")},
			reason: Reason_UnnamedOperand,
		},
		{
			name:   "unnamed output",
			outs:   []isa.Argument{{Type: "GPR"}},
			reason: Reason_UnnamedOperand,
		},
		{
			name:    "condition code output",
			ins:     []isa.Argument{in("Rn", "GPR"), in("s", "cc_out")},
			reason:  Reason_CCOutOperand,
			operand: "s",
		},
		{
			name:    "duplicate name",
			outs:    []isa.Argument{out("Rd")},
			ins:     []isa.Argument{in("Rd", "GPR")},
			reason:  Reason_DuplicateOperand,
			operand: "Rd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := descriptor("INSTR", "0", tt.outs, tt.ins, nil)

			operands, err := NewClassifier(DefaultClassifierOptions()).Classify(d)
			assert.Nil(t, operands)
			assert.ErrorIs(t, err, tt.reason.Err())

			rejection, ok := AsRejection(err)
			require.True(t, ok)
			assert.Equal(t, "INSTR", rejection.Instruction)
			assert.Equal(t, tt.operand, rejection.Operand)
		})
	}
}

func TestClassify_CustomOptions(t *testing.T) {
	opts := ClassifierOptions{
		Kinds:       map[string]OperandKind{"imm0_255": OperandKind_Immediate},
		Unsupported: []string{"DPR"},
	}

	classifier := NewClassifier(opts)

	operands, err := classifier.Classify(descriptor("ADDS", "0", nil,
		[]isa.Argument{in("s", "cc_out"), in("imm", "imm0_255"), in("lane", "nohash_imm"), in("Rs", "so_reg_reg")}, nil))
	require.NoError(t, err)

	assert.Equal(t, OperandKind_Register, operands[0].Kind)
	assert.Equal(t, OperandKind_Immediate, operands[1].Kind)
	assert.Equal(t, 0, operands[2].Width)
	assert.Equal(t, OperandKind_Register, operands[3].Kind)

	_, err = classifier.Classify(descriptor("VADD", "0", nil, []isa.Argument{in("Dn", "DPR")}, nil))
	assert.ErrorIs(t, err, ErrUnsupportedOperandKind)
}

func TestParseOperandKind(t *testing.T) {
	for _, kind := range OperandKinds {
		parsed, err := ParseOperandKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	kind, err := ParseOperandKind("shiftimmediate")
	require.NoError(t, err)
	assert.Equal(t, OperandKind_ShiftImmediate, kind)

	_, err = ParseOperandKind("Label")
	assert.Error(t, err)
}
