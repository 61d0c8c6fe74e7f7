package loader

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/utils"
)

const instructionClass = "Instruction"

type tblgenRecord map[string]json.RawMessage

// Element of a bits<N> value in the dump. Either a literal bit, null (unset) or an object
type tblgenBit struct {
	literal *int
	varbit  string
}

func (b *tblgenBit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var literal int
	if err := json.Unmarshal(data, &literal); err == nil {
		b.literal = &literal
		return nil
	}

	var object struct {
		Kind string `json:"kind"`
		Var  string `json:"var"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	// a single bit value referenced whole is dumped as "var"
	if object.Kind == "varbit" || object.Kind == "var" {
		b.varbit = object.Var
	}

	return nil
}

func (b *tblgenBit) slot() isa.BitSlot {
	switch {
	case b.literal != nil && *b.literal == 0:
		return isa.Zero
	case b.literal != nil && *b.literal == 1:
		return isa.One
	case b.varbit != "":
		return isa.Operand(b.varbit)
	}

	return isa.Any
}

// (outs ...) / (ins ...) dag
type tblgenDag struct {
	Args [][2]json.RawMessage `json:"args"`
}

type tblgenDef struct {
	Def string `json:"def"`
}

func (d *tblgenDag) arguments() ([]isa.Argument, error) {
	args := make([]isa.Argument, 0, len(d.Args))

	for _, arg := range d.Args {
		var def tblgenDef
		if err := json.Unmarshal(arg[0], &def); err != nil {
			return nil, err
		}

		var name *string
		if len(arg[1]) > 0 {
			if err := json.Unmarshal(arg[1], &name); err != nil {
				return nil, err
			}
		}

		argument := isa.Argument{Type: def.Def}
		if name != nil {
			argument.Name = *name
		}

		args = append(args, argument)
	}

	return args, nil
}

// Decodes a record value if present, leaving out untouched otherwise
func (r tblgenRecord) get(key string, out any) error {
	raw, ok := r[key]
	if !ok || string(raw) == "null" {
		return nil
	}

	return json.Unmarshal(raw, out)
}

func (r tblgenRecord) descriptor(name string) (*isa.Descriptor, error) {
	d := &isa.Descriptor{
		Name:   name,
		Fields: map[string]isa.Field{},
	}

	fail := func(key string, err error) (*isa.Descriptor, error) {
		return nil, utils.MakeError(ErrMalformedDescriptor, "record '%v', value '%v': %w", name, key, err)
	}

	if err := r.get("Namespace", &d.Namespace); err != nil {
		return fail("Namespace", err)
	}

	if _, ok := r["Inst"]; ok {
		var bits []tblgenBit
		if err := r.get("Inst", &bits); err != nil {
			return fail("Inst", err)
		}

		d.Template = make(isa.Template, len(bits))
		for i := range bits {
			d.Template[i] = bits[i].slot()
		}
	}

	for key, out := range map[string]*[]isa.Argument{"OutOperandList": &d.Outs, "InOperandList": &d.Ins} {
		var dag tblgenDag
		if err := r.get(key, &dag); err != nil {
			return fail(key, err)
		}

		args, err := dag.arguments()
		if err != nil {
			return fail(key, err)
		}

		*out = args
	}

	for key, out := range map[string]*bool{"isPseudo": &d.Flags.Pseudo, "isAsmParserOnly": &d.Flags.AsmParserOnly, "isCodeGenOnly": &d.Flags.CodeGenOnly} {
		var bit int
		if err := r.get(key, &bit); err != nil {
			return fail(key, err)
		}

		*out = bit != 0
	}

	if err := r.get("Size", &d.Size); err != nil {
		return fail("Size", err)
	}

	// Only values named like an operand are relevant as fields
	for _, arg := range slices.Concat(d.Outs, d.Ins) {
		if width, ok := r.fieldWidth(arg.Name); ok {
			d.Fields[arg.Name] = isa.Field{Width: width}
		}
	}

	return d, nil
}

// bits<N> values are dumped as N element arrays, bit values as a plain 0 or 1
func (r tblgenRecord) fieldWidth(name string) (int, bool) {
	raw, ok := r[name]
	if !ok || name == "" {
		return 0, false
	}

	var bits []tblgenBit
	if err := json.Unmarshal(raw, &bits); err == nil {
		return len(bits), len(bits) > 0
	}

	var bit int
	if err := json.Unmarshal(raw, &bit); err == nil && (bit == 0 || bit == 1) {
		return 1, true
	}

	return 0, false
}

// Reads the instruction records of an llvm-tblgen --dump-json output.
//
// Descriptors are returned sorted by record name.
func ReadTblgen(r io.Reader) ([]*isa.Descriptor, error) {
	var dump map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, utils.MakeError(ErrMalformedDescriptor, "invalid tablegen json dump: %w", err)
	}

	var instanceOf map[string][]string
	if raw, ok := dump["!instanceof"]; ok {
		if err := json.Unmarshal(raw, &instanceOf); err != nil {
			return nil, utils.MakeError(ErrMalformedDescriptor, "invalid !instanceof table: %w", err)
		}
	}

	names := slices.Clone(instanceOf[instructionClass])
	slices.Sort(names)

	descriptors := make([]*isa.Descriptor, 0, len(names))

	for _, name := range names {
		raw, ok := dump[name]
		if !ok {
			return nil, utils.MakeError(ErrMalformedDescriptor, "record '%v' listed as an instruction but not defined", name)
		}

		var record tblgenRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, utils.MakeError(ErrMalformedDescriptor, "record '%v': %w", name, err)
		}

		d, err := record.descriptor(name)
		if err != nil {
			return nil, err
		}

		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}
