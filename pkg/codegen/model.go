package codegen

import (
	"fmt"

	"github.com/Manu343726/encgen/pkg/encoder"
)

type param struct {
	Name string
	Type string
}

// Rendered encoder step
type step struct {
	Param  string
	Offset int
	Width  int
	Mask   uint32
	Start  int
}

type method struct {
	Name        string
	Instruction string
	// Bit template of the instruction, msb first
	Layout   string
	Params   []param
	Constant uint32
	Steps    []step
}

type annotation struct {
	Instruction string
	Reason      string
	Message     string
}

// Either a method or an annotation
type entry struct {
	Method     *method
	Annotation *annotation
}

type summary struct {
	Total   int
	Emitted int
	Broken  int
}

type unit struct {
	Source    string
	Package   string
	AsmImport string
	Digest    string
	Annotate  bool
	Entries   []entry
	Summary   summary
}

func (g *Generator) newMethodNamer() *namer {
	if g.opts.Backend == Backend_Go {
		return newNamer(goPromotedMethods...)
	}

	return newNamer()
}

func (g *Generator) methodName(e *encoder.Encoder) string {
	if g.opts.Backend == Backend_Go {
		return goMethodName(e.Name)
	}

	// name_ followed by the initials of the input operands
	name := identifier(e.Name)
	inputs := e.Inputs()

	if len(inputs) > 0 {
		name += "_"

		for _, p := range inputs {
			name += string([]rune(p.Name)[0])
		}
	}

	return cppIdentifier(name)
}

func (g *Generator) paramType(kind encoder.OperandKind) string {
	if g.opts.Backend == Backend_Go {
		return fmt.Sprintf("%v.%v", goAsmPackage, kind)
	}

	return kind.String()
}

func (g *Generator) method(e *encoder.Encoder, result *encoder.Result, methods *namer) *method {
	m := &method{
		Name:        methods.unique(g.methodName(e)),
		Instruction: e.Name,
		Constant:    e.Constant,
		Params:      make([]param, len(e.Params)),
	}

	if result.Descriptor != nil {
		m.Layout = result.Descriptor.Template.String()
	}

	params := newNamer()

	for i, p := range e.Params {
		name := hotspotParamName(p.Name)
		if g.opts.Backend == Backend_Go {
			name = goParamName(p.Name)
		}

		m.Params[i] = param{
			Name: params.unique(name),
			Type: g.paramType(p.Kind),
		}
	}

	for _, s := range e.Steps {
		m.Steps = append(m.Steps, step{
			Param:  m.Params[s.Param].Name,
			Offset: s.Offset,
			Width:  s.Width,
			Mask:   s.Mask(),
			Start:  s.Start,
		})
	}

	return m
}

func (g *Generator) unit(results []encoder.Result) *unit {
	report := encoder.NewReport(results)
	methods := g.newMethodNamer()

	u := &unit{
		Source:    g.opts.Source,
		Package:   g.opts.Package,
		AsmImport: g.opts.AsmImport,
		Digest:    Digest(results),
		Annotate:  g.opts.Annotate,
		Entries:   make([]entry, 0, len(results)),
		Summary: summary{
			Total:   report.Total,
			Emitted: report.Synthesized,
			Broken:  report.BrokenEncodings(),
		},
	}

	for i := range results {
		r := &results[i]

		if r.Ok() {
			u.Entries = append(u.Entries, entry{Method: g.method(r.Encoder, r, methods)})
		} else if g.opts.Annotate {
			u.Entries = append(u.Entries, entry{Annotation: &annotation{
				Instruction: r.Descriptor.Name,
				Reason:      r.Rejection.Reason.String(),
				Message:     r.Rejection.Error(),
			}})
		}
	}

	return u
}
