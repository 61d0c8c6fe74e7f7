// Package report renders the outcome counters of a generation run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/Manu343726/encgen/pkg/encoder"
)

type Format string

const (
	Format_Text Format = "text"
	Format_YAML Format = "yaml"
	Format_None Format = "none"
)

var Formats = []Format{Format_Text, Format_YAML, Format_None}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}

	return Format_None, fmt.Errorf("unknown report format '%v' (expected one of %v)", s, Formats)
}

// Serializable view of a report
type Summary struct {
	Total           int            `yaml:"total"`
	Synthesized     int            `yaml:"synthesized"`
	Excluded        int            `yaml:"excluded"`
	BrokenEncodings int            `yaml:"broken_encodings"`
	Rejected        map[string]int `yaml:"rejected,omitempty"`
}

func NewSummary(r *encoder.Report) Summary {
	s := Summary{
		Total:           r.Total,
		Synthesized:     r.Synthesized,
		Excluded:        r.Excluded(),
		BrokenEncodings: r.BrokenEncodings(),
	}

	for reason, count := range r.Rejected {
		if count == 0 {
			continue
		}

		if s.Rejected == nil {
			s.Rejected = make(map[string]int)
		}

		s.Rejected[reason.String()] = count
	}

	return s
}

var (
	titleColor  = color.New(color.Bold)
	okColor     = color.New(color.FgGreen)
	brokenColor = color.New(color.FgRed)
	skipColor   = color.New(color.FgYellow)
)

func category(reason encoder.Reason) string {
	if reason.IsBrokenEncoding() {
		return brokenColor.Sprint("broken encoding")
	}

	return skipColor.Sprint("excluded")
}

// Writes the report as a table with one row per rejection reason
func WriteText(w io.Writer, r *encoder.Report) error {
	if _, err := titleColor.Fprintf(w, "%v instruction records, %v synthesized\n", r.Total, okColor.Sprint(r.Synthesized)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Reason", "Category", "Count"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, reason := range encoder.Reasons {
		if count := r.Rejected[reason]; count > 0 {
			table.Append([]string{reason.String(), category(reason), fmt.Sprint(count)})
		}
	}

	table.SetFooter([]string{"", "rejected", fmt.Sprint(r.RejectedTotal())})
	table.Render()

	return nil
}

func WriteYAML(w io.Writer, r *encoder.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(NewSummary(r)); err != nil {
		return err
	}

	return enc.Close()
}

func Write(w io.Writer, r *encoder.Report, format Format) error {
	switch format {
	case Format_Text:
		return WriteText(w, r)
	case Format_YAML:
		return WriteYAML(w, r)
	case Format_None:
		return nil
	}

	return fmt.Errorf("unknown report format '%v'", format)
}

// Writes a table describing every rejection reason
func WriteReasons(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Reason", "Category", "Description"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, reason := range encoder.Reasons {
		table.Append([]string{reason.String(), category(reason), reason.Description()})
	}

	table.Render()
	return nil
}
