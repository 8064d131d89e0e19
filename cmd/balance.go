package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address> [chain]",
	Short: "Query the USDC balance of any address once",
	Long: `Reads the current USDC balance of an address without tracking it or
writing history. chain defaults to ` + networks.DefaultChain + `.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBalance(cmd.Context(), appUI, env, args)
	},
}

func runBalance(ctx context.Context, u ui.UI, e *environment, args []string) error {
	name := networks.DefaultChain
	if len(args) == 2 {
		name = args[1]
	}
	chain, err := e.chains.GetChain(name)
	if err != nil {
		return err
	}
	balance, err := e.monitor.Balance(ctx, args[0], chain.Name)
	if err != nil {
		return err
	}
	d := util.BuildBalanceDisplay(args[0], chain.Name, balance, e.chains)
	return render(u, d, util.PrintBalanceDisplay)
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
