package encoder

import (
	"github.com/Manu343726/encgen/pkg/isa"
)

// Parses a msb first template, filling the missing high bits with zeros up to 32 bits
func template32(text string) isa.Template {
	t := isa.MustParseTemplate(text)

	for len(t) < 32 {
		t = append(t, isa.Zero)
	}

	return t
}

func in(name, typ string) isa.Argument {
	return isa.Argument{Name: name, Type: typ}
}

func out(name string) isa.Argument {
	return isa.Argument{Name: name, Type: "GPR"}
}

func descriptor(name string, template string, outs []isa.Argument, ins []isa.Argument, fields map[string]int) *isa.Descriptor {
	d := &isa.Descriptor{
		Name:      name,
		Namespace: "ARM",
		Template:  template32(template),
		Outs:      outs,
		Ins:       ins,
		Fields:    map[string]isa.Field{},
		Size:      4,
	}

	for field, width := range fields {
		d.Fields[field] = isa.Field{Width: width}
	}

	return d
}

// ADD Rd, Rn, #imm with a 12 bit modified immediate
func addri() *isa.Descriptor {
	return descriptor("ADDri", "1110 001 0100 0 Rn:4 Rd:4 imm:12",
		[]isa.Argument{out("Rd")},
		[]isa.Argument{in("Rn", "GPR"), in("imm", "mod_imm")},
		map[string]int{"Rd": 4, "Rn": 4, "imm": 12})
}

// MOVT Rd, #imm16 with the immediate split in two fields
func movti16() *isa.Descriptor {
	return descriptor("MOVTi16", "1110 0011 0100 imm:4 Rd:4 imm:12",
		[]isa.Argument{out("Rd")},
		[]isa.Argument{in("imm", "imm0_65535")},
		map[string]int{"Rd": 4, "imm": 16})
}
