package mc

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/report"
)

var inspectFlags = map[string]string{
	"emit.backend": "backend",
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// Returns the descriptors whose name matches any of the patterns, and the patterns that matched nothing
func selectDescriptors(descriptors []*isa.Descriptor, patterns []string) ([]*isa.Descriptor, []string, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, nil, err
		}

		globs = append(globs, g)
	}

	matched := make([]bool, len(patterns))
	selected := []*isa.Descriptor{}

	for _, d := range descriptors {
		found := false

		for i, g := range globs {
			if g.Match(d.Name) {
				matched[i] = true
				found = true
			}
		}

		if found {
			selected = append(selected, d)
		}
	}

	unmatched := []string{}
	for i, pattern := range patterns {
		if !matched[i] {
			unmatched = append(unmatched, pattern)
		}
	}

	return selected, unmatched, nil
}

var InspectCmd = &cobra.Command{
	Use:   "inspect NAME...",
	Short: "Show how instructions are encoded",
	Long: `Shows, for every instruction whose name matches one of the given patterns, its operands,
encoding plan, bit layout and generated method, or why it was rejected.

Patterns are globs: 'ADD*' matches ADDri, ADDrr, etc.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, inspectFlags)
		defer s.Close()

		descriptors, unmatched, err := selectDescriptors(s.load(), args)
		if err != nil {
			s.fail(1, "Error: invalid instruction pattern: %v", err)
		}

		if len(unmatched) > 0 {
			s.fail(2, "Error: no instruction matches %v", unmatched)
		}

		g := s.generator()
		dump, _ := cmd.Flags().GetBool("dump")

		for i, result := range s.process(descriptors) {
			if i > 0 {
				os.Stdout.WriteString("\n")
			}

			if err := report.Describe(os.Stdout, &result, g); err != nil {
				s.fail(2, "Error describing %v: %v", result.Descriptor.Name, err)
			}

			if dump {
				dumper.Fdump(os.Stdout, result)
			}
		}
	},
}

func init() {
	addCommonFlags(InspectCmd)
	InspectCmd.Flags().StringP("backend", "b", "", "Code generation backend of the shown methods (go, hotspot)")
	InspectCmd.Flags().Bool("dump", false, "Also dump the raw operand specs, plan and encoder")
}
