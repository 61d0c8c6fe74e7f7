package mc

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/report"
)

var generateFlags = map[string]string{
	"output":        "output",
	"report":        "report",
	"emit.backend":  "backend",
	"emit.package":  "package",
	"emit.annotate": "annotate",
}

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate encoder methods for every encodable instruction of a descriptor file",
	Long: `Loads the instruction descriptors of the input file, synthesizes an encoder for every
instruction that can be encoded and writes the generated methods to the output file (stdout if omitted).

Rejected instructions are counted in a report written to stderr. Use -v to log every rejection.

Backends:
  go       a Go source file with an Assembler type, one method per instruction
  hotspot  C++ method bodies for the HotSpot ARM assembler`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, generateFlags)
		defer s.Close()

		reportFormat, err := s.config.ReportFormat()
		if err != nil {
			s.fail(1, "Error: %v", err)
		}

		g := s.generator()
		results := s.process(s.load())

		code, err := g.Generate(results)
		if err != nil {
			s.fail(2, "Error generating code: %v", err)
		}

		if err := writeOutput(s.config.Output, code); err != nil {
			s.fail(1, "Error writing output file: %v", err)
		}

		if err := report.Write(os.Stderr, encoder.NewReport(results), reportFormat); err != nil {
			s.fail(2, "Error writing report: %v", err)
		}
	},
}

// Writes generated code to path, or to stdout if path is empty. The file is only touched once the code is ready
func writeOutput(path string, code []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(code)
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := file.Write(code); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func init() {
	addCommonFlags(GenerateCmd)
	GenerateCmd.Flags().StringP("output", "o", "", "Output file. If omitted, the generated code is written to stdout")
	GenerateCmd.Flags().String("report", "", "Report format (text, yaml, none)")
	GenerateCmd.Flags().StringP("backend", "b", "", "Code generation backend (go, hotspot)")
	GenerateCmd.Flags().String("package", "", "Package of the generated Go file")
	GenerateCmd.Flags().Bool("annotate", false, "Annotate generated methods with the bit layout and a summary of the run")
}
