package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <address|name> <chain>",
	Aliases: []string{"rm"},
	Short:   "Stop tracking an address on a chain",
	Long: `Removes the address from the tracked list. Its history is kept.
A name must match a tracked display name exactly (case is ignored).`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(appUI, env, args)
	},
}

func runRemove(u ui.UI, e *environment, args []string) error {
	tracked, err := e.monitor.Resolve(args[0], args[1])
	if err != nil {
		return err
	}
	res, err := e.monitor.RemoveAddress(tracked.Address, tracked.Chain)
	if err != nil {
		return err
	}
	if res.Removed == 0 {
		u.Warn("%s is not tracked on %s.", tracked.Address, tracked.Chain)
		return nil
	}
	u.Success("Removed %s (%s) from %s. %d address(es) still tracked.", tracked.Label(), tracked.Address, tracked.Chain, res.Remaining)
	return nil
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
