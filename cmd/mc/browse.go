package mc

import (
	"github.com/spf13/cobra"

	"github.com/Manu343726/encgen/pkg/browser"
)

var BrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse the encoding of every instruction",
	Long: `Opens a terminal browser listing every instruction of the input file. Selecting an
instruction shows its operands, encoding plan, bit layout and generated method, or why it was rejected.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openSession(cmd, map[string]string{"emit.backend": "backend"})
		defer s.Close()

		g := s.generator()
		b := browser.New(s.process(s.load()), g, s.logger)

		if err := b.Run(); err != nil {
			s.fail(2, "Error running browser: %v", err)
		}
	},
}

func init() {
	addCommonFlags(BrowseCmd)
	BrowseCmd.Flags().StringP("backend", "b", "", "Code generation backend of the shown methods (go, hotspot)")
}
