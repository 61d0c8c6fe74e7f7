package loader

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

type yamlFile struct {
	Instructions []yamlInstruction `yaml:"instructions"`
}

type yamlInstruction struct {
	Name      string         `yaml:"name"`
	Namespace string         `yaml:"namespace"`
	Template  *string        `yaml:"template"`
	Outs      []isa.Argument `yaml:"outs"`
	Ins       []isa.Argument `yaml:"ins"`
	// Field widths by name
	Fields map[string]int `yaml:"fields"`
	Flags  isa.Flags      `yaml:"flags"`
	Size   int            `yaml:"size"`
}

func (i *yamlInstruction) descriptor() (*isa.Descriptor, error) {
	d := &isa.Descriptor{
		Name:      i.Name,
		Namespace: i.Namespace,
		Outs:      i.Outs,
		Ins:       i.Ins,
		Fields:    make(map[string]isa.Field, len(i.Fields)),
		Flags:     i.Flags,
		Size:      i.Size,
	}

	if d.Name == "" {
		return nil, utils.MakeError(ErrMalformedDescriptor, "instruction without name")
	}

	if i.Template != nil {
		template, err := isa.ParseTemplate(*i.Template)
		if err != nil {
			return nil, utils.MakeError(ErrMalformedDescriptor, "instruction '%v': %w", i.Name, err)
		}

		d.Template = template
	}

	for name, width := range i.Fields {
		if width <= 0 {
			return nil, utils.MakeError(ErrMalformedDescriptor, "instruction '%v': field '%v' has non-positive width %v", i.Name, name, width)
		}

		d.Fields[name] = isa.Field{Width: width}
	}

	return d, nil
}

// Reads hand-written YAML instruction descriptors. Descriptors are returned in file order.
//
//	instructions:
//	  - name: ADDri
//	    namespace: ARM
//	    template: "1110 001 0100 s Rn:4 Rd:4 imm:12"
//	    outs: [{name: Rd, type: GPR}]
//	    ins: [{name: Rn, type: GPR}, {name: imm, type: mod_imm}]
//	    fields: {Rd: 4, Rn: 4, imm: 12}
func ReadYAML(r io.Reader) ([]*isa.Descriptor, error) {
	var file yamlFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, utils.MakeError(ErrMalformedDescriptor, "invalid yaml descriptors: %w", err)
	}

	descriptors := make([]*isa.Descriptor, 0, len(file.Instructions))

	for i := range file.Instructions {
		d, err := file.Instructions[i].descriptor()
		if err != nil {
			return nil, err
		}

		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}
