package shroud

import (
	"github.com/spf13/cobra"

	"github.com/shroud/shroud/internal/manifest"
	"github.com/shroud/shroud/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Show what a manifest records",
		Long:  "Inspect renders the stages, alphabet, shuffle parameters, and checksums recorded in a manifest. The key and seed values themselves are not printed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			return report.PrintManifest(cmd.OutOrStdout(), m)
		},
	}
	rootCmd.AddCommand(cmd)
}
