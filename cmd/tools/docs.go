package tools

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Manu343726/encgen/pkg/report"
	"github.com/Manu343726/encgen/pkg/utils"
)

const templateDoc = `Instruction templates

A template lists the 32 bits of an instruction word, most significant bit first. Each bit is
either a constant, a bit of an operand or unknown. Tokens are separated by spaces:

  0, 1      constant bits. Runs like 1110 are allowed
  ?         unknown bits. Runs like ???? are allowed
  name      one bit of operand 'name'
  name:N    N consecutive bits of operand 'name'

Operand bits are numbered from the least significant one up, so in

  1110 0011 0100 imm:4 Rd:4 imm:12

imm[11:0] is stored at bits 0 to 11 and imm[15:12] at bits 16 to 19.

Templates whose bits are all unknown cannot be encoded. Templates with only some unknown
bits are encoded with the unknown bits left at 0.`

var supportedModules = map[string]func(io.Writer) error{
	"reasons": report.WriteReasons,
	"template": func(w io.Writer) error {
		_, err := fmt.Fprintln(w, templateDoc)
		return err
	},
}

var moduleNames = func() []string {
	names := utils.Keys(supportedModules)
	slices.Sort(names)
	return names
}()

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show encgen documentation",
	Long: `Dumps the documentation of the specified encgen module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(moduleNames, func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames,
	Run: func(cmd *cobra.Command, args []string) {
		var output io.Writer = os.Stdout

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
				os.Exit(1)
			}
			defer file.Close()

			output = file
		}

		if err := supportedModules[args[0]](output); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing documentation: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
