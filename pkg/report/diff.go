package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
	hunkColor    = color.New(color.FgCyan)
)

type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
	// Line number in the old text, 0 for inserted lines
	Old int
	// Line number in the new text, 0 for deleted lines
	New int
}

func (l DiffLine) Changed() bool {
	return l.Op != diffmatchpatch.DiffEqual
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Returns the line by line diff of two texts
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	result := []DiffLine{}
	oldLine, newLine := 1, 1

	for _, diff := range diffs {
		for _, line := range splitLines(diff.Text) {
			l := DiffLine{Op: diff.Type, Text: strings.TrimSuffix(line, "\n")}

			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				l.Old, l.New = oldLine, newLine
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				l.Old = oldLine
				oldLine++
			case diffmatchpatch.DiffInsert:
				l.New = newLine
				newLine++
			}

			result = append(result, l)
		}
	}

	return result
}

// Returns the number of changed lines of a diff
func Changes(lines []DiffLine) int {
	changes := 0

	for _, l := range lines {
		if l.Changed() {
			changes++
		}
	}

	return changes
}

// Writes the changed lines of a diff surrounded by the given number of unchanged context lines
func WriteDiff(w io.Writer, lines []DiffLine, context int) error {
	var b strings.Builder
	last := -1

	for i, l := range lines {
		if !near(lines, i, context) {
			continue
		}

		if i != last+1 {
			hunkColor.Fprintf(&b, "@@ -%v +%v @@\n", l.Old, l.New)
		}

		switch l.Op {
		case diffmatchpatch.DiffEqual:
			fmt.Fprintf(&b, " %v\n", l.Text)
		case diffmatchpatch.DiffDelete:
			removedColor.Fprintf(&b, "-%v\n", l.Text)
		case diffmatchpatch.DiffInsert:
			addedColor.Fprintf(&b, "+%v\n", l.Text)
		}

		last = i
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Whether line i is changed or within context lines of a changed line
func near(lines []DiffLine, i int, context int) bool {
	for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
		if lines[j].Changed() {
			return true
		}
	}

	return false
}
