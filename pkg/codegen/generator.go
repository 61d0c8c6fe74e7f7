// Package codegen renders synthesized encoders as source code.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/cespare/xxhash/v2"

	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/utils"
)

//go:embed templates
var Templates embed.FS

// Target language of the generated code
type Backend string

const (
	// Go methods on an assembler type embedding asm.Assembler
	Backend_Go Backend = "go"
	// C++ Assembler:: methods for the HotSpot JVM assembler
	Backend_Hotspot Backend = "hotspot"
)

var Backends = []Backend{Backend_Go, Backend_Hotspot}

func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends {
		if strings.EqualFold(string(b), s) {
			return b, nil
		}
	}

	return "", fmt.Errorf("unknown backend '%v' (expected one of %v)", s, Backends)
}

// Language of the generated code, for syntax highlighting
func (b Backend) Language() utils.Language {
	if b == Backend_Hotspot {
		return utils.LanguageCpp
	}

	return utils.LanguageGo
}

type Options struct {
	Backend Backend
	// Package clause of generated Go code
	Package string
	// Import path of the asm runtime package
	AsmImport string
	// Emit a comment per rejected instruction plus a trailing summary
	Annotate bool
	// Name of the descriptor file the code is generated from, for the header
	Source string
}

func DefaultOptions() Options {
	return Options{
		Backend:   Backend_Go,
		Package:   "isa",
		AsmImport: "github.com/Manu343726/encgen/pkg/asm",
	}
}

type Generator struct {
	opts     Options
	template *template.Template
}

func NewGenerator(opts Options) (*Generator, error) {
	if _, err := ParseBackend(string(opts.Backend)); err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"Hex": func(value uint32) string {
			return fmt.Sprintf("0x%x", value)
		},
		"Word": func(value uint32) string {
			return utils.FormatUintHex(uint64(value), 8)
		},
	}

	t, err := template.New(string(opts.Backend)).Funcs(funcs).
		ParseFS(Templates, fmt.Sprintf("templates/%v.tmpl", opts.Backend))

	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:     opts,
		template: t,
	}, nil
}

func (g *Generator) Backend() Backend {
	return g.opts.Backend
}

func (g *Generator) render(name string, data any) ([]byte, error) {
	var buffer bytes.Buffer

	if err := g.template.ExecuteTemplate(&buffer, name, data); err != nil {
		return nil, err
	}

	if g.opts.Backend != Backend_Go {
		return buffer.Bytes(), nil
	}

	formatted, err := format.Source(buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated go code does not parse: %w", err)
	}

	return formatted, nil
}

// Renders a source file with one method per synthesized result, in result order
func (g *Generator) Generate(results []encoder.Result) ([]byte, error) {
	return g.render("unit", g.unit(results))
}

func (g *Generator) GenerateTo(writer io.Writer, results []encoder.Result) error {
	code, err := g.Generate(results)
	if err != nil {
		return err
	}

	_, err = writer.Write(code)
	return err
}

// Renders the method of a single synthesized result
func (g *Generator) GenerateMethod(result *encoder.Result) ([]byte, error) {
	if !result.Ok() {
		return nil, fmt.Errorf("cannot generate code for rejected instruction: %w", result.Rejection)
	}

	return g.render("method", g.method(result.Encoder, result, g.newMethodNamer()))
}

// Returns a digest of the encoders of a batch, stable across runs and backends
func Digest(results []encoder.Result) string {
	hash := xxhash.New()

	for i := range results {
		e := results[i].Encoder
		if e == nil {
			continue
		}

		fmt.Fprintf(hash, "%v:%08x", e.Name, e.Constant)

		for _, s := range e.Steps {
			fmt.Fprintf(hash, ":%v/%v/%v/%v", s.Param, s.Offset, s.Width, s.Start)
		}

		hash.Write([]byte{'\n'})
	}

	return fmt.Sprintf("%016x", hash.Sum64())
}
