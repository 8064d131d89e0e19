package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
	"github.com/tranvictor/balancewatch/util/monitor"
)

var historyCmd = &cobra.Command{
	Use:   "history <address|name> <chain> [limit]",
	Short: "Show the recorded balances of an address, newest first",
	Long: `Shows the last records of an address on a chain. limit defaults to 10. The
address can also be given by the name it was added with.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(appUI, env, args)
	},
}

func runHistory(u ui.UI, e *environment, args []string) error {
	limit := monitor.DefaultHistoryLimit
	if len(args) == 3 {
		var err error
		if limit, err = parseLimit(args[2]); err != nil {
			return err
		}
	}
	tracked, err := e.monitor.Lookup(args[0], args[1])
	if err != nil {
		return err
	}
	records, err := e.monitor.History(tracked.Address, tracked.Chain, limit)
	if errors.Is(err, monitor.ErrNoHistory) {
		u.Warn("No history found for %s on %s. Run balancewatch check first.", tracked.Address, tracked.Chain)
		return nil
	}
	if err != nil {
		return err
	}
	return render(u, util.BuildHistoryDisplay(tracked, records, e.chains), util.PrintHistoryDisplay)
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
