package codegen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/Manu343726/encgen/pkg/utils"
)

// Replaces every rune not valid in an identifier with '_'
func identifier(name string) string {
	var builder strings.Builder

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			builder.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			builder.WriteRune(r)
		case unicode.IsDigit(r):
			builder.WriteRune('_')
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}

	if builder.Len() == 0 {
		return "_"
	}

	return builder.String()
}

// Hands out unique identifiers, numbering repeated names in request order
type namer struct {
	used map[string]bool
}

func newNamer(reserved ...string) *namer {
	n := &namer{used: make(map[string]bool)}

	for _, name := range reserved {
		n.used[name] = true
	}

	return n
}

func (n *namer) unique(name string) string {
	candidate := name

	for i := 2; n.used[candidate]; i++ {
		candidate = fmt.Sprintf("%v_%v", name, i)
	}

	n.used[candidate] = true
	return candidate
}

// Identifiers the generated Go code declares itself
const (
	goReceiver    = "a"
	goAccumulator = "enc"
	goAsmPackage  = "asm"
)

// Name of the embedded asm.Assembler field plus the methods it promotes
var goPromotedMethods = []string{"Assembler", "Emit", "Words", "Bytes", "Size", "Reset"}

// Exported Go method name for an instruction
func goMethodName(instruction string) string {
	name := []rune(identifier(instruction))

	if !unicode.IsLetter(name[0]) {
		return "I" + string(name)
	}

	name[0] = unicode.ToUpper(name[0])
	return string(name)
}

// Go parameter name for an operand, renamed if it would clash with keywords or generated identifiers
func goParamName(operand string) string {
	name := identifier(operand)

	if token.IsKeyword(name) || name == goReceiver || name == goAccumulator || name == goAsmPackage || name == "uint32" {
		return name + "_"
	}

	return name
}

// Local of the generated hotspot methods
const hotspotAccumulator = "instr_enc"

// C++ parameter name for an operand, renamed if it would clash with keywords, types or generated identifiers
func hotspotParamName(operand string) string {
	return cppIdentifier(identifier(operand))
}

func cppIdentifier(name string) string {
	if utils.LanguageCpp.Keywords[name] || utils.LanguageCpp.Types[name] || name == hotspotAccumulator {
		return name + "_"
	}

	return name
}
