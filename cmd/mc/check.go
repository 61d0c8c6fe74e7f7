package mc

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/Manu343726/encgen/pkg/report"
)

var checkFlags = map[string]string{
	"emit.backend":  "backend",
	"emit.package":  "package",
	"emit.annotate": "annotate",
}

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a generated file is up to date",
	Long: `Regenerates the encoder methods of the input file and compares them with an existing
generated file. Exits with status 3 and prints the differences if they do not match.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, checkFlags)
		defer s.Close()

		against, _ := cmd.Flags().GetString("against")
		if against == "" {
			s.fail(1, "Error: missing --against file")
		}

		existing, err := os.ReadFile(against)
		if err != nil {
			s.fail(1, "Error reading generated file: %v", err)
		}

		var generated bytes.Buffer
		if err := s.generator().GenerateTo(&generated, s.process(s.load())); err != nil {
			s.fail(2, "Error generating code: %v", err)
		}

		lines := report.LineDiff(string(existing), generated.String())
		changes := report.Changes(lines)

		if changes == 0 {
			s.logger.Info("generated file is up to date", "file", against)
			return
		}

		context, _ := cmd.Flags().GetInt("context")
		if err := report.WriteDiff(os.Stdout, lines, context); err != nil {
			s.fail(2, "Error writing diff: %v", err)
		}

		s.fail(3, "%v is out of date (%v changed lines)", against, changes)
	},
}

func init() {
	addCommonFlags(CheckCmd)
	CheckCmd.Flags().String("against", "", "Previously generated file")
	CheckCmd.Flags().Int("context", 3, "Unchanged lines shown around each difference")
	CheckCmd.Flags().StringP("backend", "b", "", "Code generation backend (go, hotspot)")
	CheckCmd.Flags().String("package", "", "Package of the generated Go file")
	CheckCmd.Flags().Bool("annotate", false, "Annotate generated methods with the bit layout and a summary of the run")
}
