package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/config"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show current totals of all tracked addresses",
	Long: `Resolves the current balance of every tracked address and shows the total
overall and per chain. Nothing is written to the history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.Context(), appUI, env)
	},
}

func runSummary(ctx context.Context, u ui.UI, e *environment) error {
	stop := func() {}
	if !config.JSONOutput {
		stop = u.Spinner("Resolving balances...")
	}
	s, err := e.monitor.Summary(ctx)
	stop()
	if err != nil {
		return err
	}
	return render(u, util.BuildSummaryDisplay(s, e.chains), util.PrintSummaryDisplay)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
