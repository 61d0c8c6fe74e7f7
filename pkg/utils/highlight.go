package utils

import (
	"regexp"
	"slices"
	"strings"

	"github.com/fatih/color"
)

var (
	keywordColor  = color.New(color.FgMagenta, color.Bold)
	typeColor     = color.New(color.FgCyan)
	stringColor   = color.New(color.FgGreen)
	numberColor   = color.New(color.FgYellow)
	commentColor  = color.New(color.FgHiBlack)
	operatorColor = color.New(color.FgRed)
	functionColor = color.New(color.FgHiYellow)
)

// Keyword and type sets of a language that generated encoders are written in
type Language struct {
	Name     string
	Keywords map[string]bool
	Types    map[string]bool
}

func wordSet(words ...string) map[string]bool {
	return MapMap(GenMap(words, func(w string) string { return w }), func(w, _ string) (string, bool) {
		return w, true
	})
}

var (
	LanguageGo = Language{
		Name: "go",
		Keywords: wordSet(
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var",
		),
		Types: wordSet(
			"bool", "byte", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"error", "any", "nil", "true", "false",
		),
	}

	LanguageCpp = Language{
		Name: "c++",
		Keywords: wordSet(
			"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor",
			"break", "case", "catch", "class", "compl", "concept", "const", "consteval",
			"constexpr", "constinit", "const_cast", "continue", "co_await", "co_return",
			"co_yield", "decltype", "default", "delete", "do", "dynamic_cast", "else",
			"enum", "explicit", "export", "extern", "for", "friend", "goto", "if",
			"inline", "mutable", "namespace", "new", "noexcept", "not", "not_eq",
			"operator", "or", "or_eq", "private", "protected", "public", "register",
			"reinterpret_cast", "requires", "return", "sizeof", "static",
			"static_assert", "static_cast", "struct", "switch", "template", "this",
			"thread_local", "throw", "try", "typedef", "typeid", "typename", "union",
			"using", "virtual", "volatile", "while", "xor", "xor_eq",
		),
		Types: wordSet(
			"void", "char", "short", "int", "long", "float", "double", "signed",
			"unsigned", "bool", "uint32", "uint32_t", "int32_t", "size_t",
			"Register", "ShiftRegister", "ShiftImmediate", "Immediate",
			"NULL", "nullptr", "true", "false",
		),
	}
)

var (
	stringPattern       = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|` + "`[^`]*`")
	charPattern         = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)
	lineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
	numberPattern       = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|[0-9]+)[uUlL]*\b`)
	identifierPattern   = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	functionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
	operatorPattern     = regexp.MustCompile(`<<|>>|&&|\|\||[+\-*/%&|^!~<>=]+`)
)

type token struct {
	color *color.Color
	start int
	end   int
}

type tokenizer struct {
	code   string
	tokens []token
}

func (t *tokenizer) overlaps(start, end int) bool {
	for _, tok := range t.tokens {
		if start < tok.end && end > tok.start {
			return true
		}
	}

	return false
}

func (t *tokenizer) add(start, end int, c *color.Color) {
	if c != nil && !t.overlaps(start, end) {
		t.tokens = append(t.tokens, token{color: c, start: start, end: end})
	}
}

func (t *tokenizer) addAll(pattern *regexp.Regexp, c *color.Color) {
	for _, match := range pattern.FindAllStringIndex(t.code, -1) {
		t.add(match[0], match[1], c)
	}
}

func (t *tokenizer) String() string {
	slices.SortFunc(t.tokens, func(a, b token) int { return a.start - b.start })

	var result strings.Builder
	pos := 0

	for _, tok := range t.tokens {
		result.WriteString(t.code[pos:tok.start])
		result.WriteString(tok.color.Sprint(t.code[tok.start:tok.end]))
		pos = tok.end
	}

	result.WriteString(t.code[pos:])
	return result.String()
}

// Applies terminal syntax highlighting to a snippet of generated code
func Highlight(code string, lang Language) string {
	if code == "" {
		return ""
	}

	t := tokenizer{code: code}

	// strings and comments first so nothing inside them gets highlighted
	t.addAll(stringPattern, stringColor)
	t.addAll(charPattern, stringColor)
	t.addAll(lineCommentPattern, commentColor)
	t.addAll(numberPattern, numberColor)

	for _, match := range functionCallPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[match[2]:match[3]]
		if !lang.Keywords[name] && !lang.Types[name] {
			t.add(match[2], match[3], functionColor)
		}
	}

	for _, match := range identifierPattern.FindAllStringIndex(code, -1) {
		word := code[match[0]:match[1]]

		switch {
		case lang.Keywords[word]:
			t.add(match[0], match[1], keywordColor)
		case lang.Types[word]:
			t.add(match[0], match[1], typeColor)
		}
	}

	t.addAll(operatorPattern, operatorColor)

	return t.String()
}
