package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/config"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the balance of every tracked address and record it",
	Long: `Resolves the current USDC balance of every tracked address, one after another,
shows the change since the previous check and appends the result to the history.
An alert is shown for every address whose balance is below its threshold.

A failure on one address is reported and the check goes on with the next one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), appUI, env)
	},
}

func runCheck(ctx context.Context, u ui.UI, e *environment) error {
	stop := func() {}
	if !config.JSONOutput {
		stop = u.Spinner("Checking balances...")
	}
	report, err := e.monitor.Check(ctx)
	stop()
	if err != nil {
		return err
	}
	return render(u, util.BuildCheckDisplay(report, e.chains), util.PrintCheckDisplay)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
