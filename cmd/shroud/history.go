package shroud

import (
	"github.com/spf13/cobra"

	"github.com/shroud/shroud/internal/audit"
	"github.com/shroud/shroud/internal/report"
)

var (
	flagHistoryDir   string
	flagHistoryLimit int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded obfuscation runs",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHistoryDir, "dir", "d", ".", "directory whose run log to read")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most this many runs (0 = all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	recs, err := audit.NewRunLog(flagHistoryDir).LoadHistory()
	if err != nil {
		// a missing log just means nothing has been recorded yet
		return report.PrintHistory(cmd.OutOrStdout(), nil)
	}
	if flagHistoryLimit > 0 && len(recs) > flagHistoryLimit {
		recs = recs[:flagHistoryLimit]
	}
	return report.PrintHistory(cmd.OutOrStdout(), recs)
}
