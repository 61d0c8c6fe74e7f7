package isa

// Argument of an instruction as declared in its operand lists
type Argument struct {
	// Operand name. Empty if the declaration left it unnamed
	Name string `yaml:"name" json:"name"`
	// Operand type token (register class or operand definition, e.g. "GPR", "so_reg_imm")
	Type string `yaml:"type" json:"type"`
}

// Fixed width value field declared on an instruction record
type Field struct {
	Width int `yaml:"width" json:"width"`
}

// Instruction record flags relevant to encoding
type Flags struct {
	Pseudo        bool `yaml:"pseudo" json:"pseudo"`
	AsmParserOnly bool `yaml:"asm_parser_only" json:"asm_parser_only"`
	CodeGenOnly   bool `yaml:"codegen_only" json:"codegen_only"`
}

// Returns true if any of the flags marks the instruction as not directly encodable
func (f Flags) Any() bool {
	return f.Pseudo || f.AsmParserOnly || f.CodeGenOnly
}

// Declarative description of an instruction, as read from an instruction set definition
type Descriptor struct {
	// Instruction (record) name
	Name string
	// Record namespace (e.g. "ARM", "TargetOpcode")
	Namespace string
	// Encoding template, nil if the record declares none
	Template Template
	// Output operands, in declaration order
	Outs []Argument
	// Input operands, in declaration order
	Ins []Argument
	// Value fields declared on the record by name
	Fields map[string]Field
	Flags  Flags
	// Declared instruction size in bytes, 0 if unknown
	Size int
}

// Returns the declared width of a value field, and whether the field exists
func (d *Descriptor) FieldWidth(name string) (int, bool) {
	field, ok := d.Fields[name]
	return field.Width, ok
}
