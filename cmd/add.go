package cmd

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util/monitor"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <address> <chain> [threshold]",
	Short: "Start tracking an address on a chain",
	Long: `Adds an address to the tracked list. name is a label used in reports and can be
used instead of the address in the remove and history commands. threshold is
in USDC; when it is greater than 0 every check alerts while the balance is
below it.

Example:
	balancewatch add treasury 0x9642b23Ed1E01Df1092B92641051881a322F5D4E base 250.5`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(appUI, env, args)
	},
}

func runAdd(u ui.UI, e *environment, args []string) error {
	threshold := decimal.Zero
	if len(args) == 4 {
		var err error
		if threshold, err = parseThreshold(args[3]); err != nil {
			return err
		}
	}
	chain, err := e.chains.GetChain(args[2])
	if err != nil {
		return err
	}
	tracked := common.TrackedAddress{
		Name:      args[0],
		Address:   args[1],
		Chain:     chain.Name,
		Threshold: threshold,
	}
	err = e.monitor.AddAddress(tracked)
	if errors.Is(err, monitor.ErrAlreadyTracked) {
		u.Warn("%s is already tracked on %s.", tracked.Address, tracked.Chain)
		return nil
	}
	if err != nil {
		return err
	}
	u.Success("Tracking %s (%s) on %s.", tracked.Label(), tracked.Address, tracked.Chain)
	if tracked.HasThreshold() {
		u.Info("Alert threshold: %s %s", common.FormatAmount(threshold), chain.TokenSymbol)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Long += "\n\nSupported chains: " + networks.SupportedNames(networks.Default())
}
