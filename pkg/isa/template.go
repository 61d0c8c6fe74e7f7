package isa

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Manu343726/encgen/pkg/utils"
)

var ErrInvalidTemplate = errors.New("invalid bit template")

// Encoding template of an instruction, one slot per bit. Index 0 is the least significant bit.
type Template []BitSlot

// Number of slots of the template
func (t Template) Width() int {
	return len(t)
}

// Returns true if no slot of the template is known (empty templates included)
func (t Template) IsIncomplete() bool {
	for _, slot := range t {
		if _, unknown := slot.(Unknown); !unknown {
			return false
		}
	}

	return true
}

// Returns the distinct operand names referenced by the template, in LSB to MSB order of first appearance
func (t Template) Operands() []string {
	seen := make(map[string]bool)
	names := []string{}

	for _, slot := range t {
		if named, ok := slot.(Named); ok && !seen[named.Operand] {
			seen[named.Operand] = true
			names = append(names, named.Operand)
		}
	}

	return names
}

// Formats the template with the textual syntax accepted by [ParseTemplate], most significant bit first
func (t Template) String() string {
	tokens := []string{}

	for i := len(t) - 1; i >= 0; {
		switch slot := t[i].(type) {
		case Named:
			j := i
			for j >= 0 && t[j] == slot {
				j--
			}

			if i-j == 1 {
				tokens = append(tokens, slot.Operand)
			} else {
				tokens = append(tokens, fmt.Sprintf("%v:%v", slot.Operand, i-j))
			}

			i = j
		default:
			var run strings.Builder

			for ; i >= 0; i-- {
				if _, named := t[i].(Named); named {
					break
				}

				run.WriteString(t[i].String())
			}

			tokens = append(tokens, run.String())
		}
	}

	return strings.Join(tokens, " ")
}

var (
	constantTokenPattern = regexp.MustCompile(`^[01?]+$`)
	namedTokenPattern    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?::([0-9]+))?$`)
)

// Parses a textual bit template, most significant bit first.
//
// The text is a sequence of whitespace separated tokens:
//
//   - A run of '0', '1' and '?' characters, one slot per character ('?' being an unknown bit)
//   - An operand name, taking one slot
//   - An operand name followed by ':N', taking N consecutive slots
//
// For example "1110 001 0100 s:1 Rn:4 Rd:4 imm:12" describes a 32 bit template.
func ParseTemplate(text string) (Template, error) {
	msbFirst := Template{}

	for _, token := range strings.Fields(text) {
		if constantTokenPattern.MatchString(token) {
			for _, c := range token {
				switch c {
				case '0':
					msbFirst = append(msbFirst, Zero)
				case '1':
					msbFirst = append(msbFirst, One)
				default:
					msbFirst = append(msbFirst, Any)
				}
			}

			continue
		}

		match := namedTokenPattern.FindStringSubmatch(token)
		if match == nil {
			return nil, utils.MakeError(ErrInvalidTemplate, "unexpected token '%v'", token)
		}

		width := 1
		if match[2] != "" {
			var err error
			if width, err = strconv.Atoi(match[2]); err != nil || width <= 0 {
				return nil, utils.MakeError(ErrInvalidTemplate, "invalid width in token '%v'", token)
			}
		}

		for range width {
			msbFirst = append(msbFirst, Operand(match[1]))
		}
	}

	result := make(Template, len(msbFirst))
	for i, slot := range msbFirst {
		result[len(msbFirst)-i-1] = slot
	}

	return result, nil
}

// Same as [ParseTemplate] but panics on error. Intended for tests and static tables
func MustParseTemplate(text string) Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}

	return t
}
