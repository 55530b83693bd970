package commands

import (
	"fmt"

	"github.com/mrled/suns/titlesym/internal/symmetry"
	"github.com/spf13/cobra"
)

// demoTitles are the sample titles shown by the demo command
var demoTitles = []string{
	"A Santa at NASA",
	"Social Media",
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "demo",
		Short:   "Print the verdict for two sample titles",
		GroupID: "check",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, title := range demoTitles {
				fmt.Fprintln(cmd.OutOrStdout(), symmetry.IsSymmetrical(title))
			}
			return nil
		},
	}
}
