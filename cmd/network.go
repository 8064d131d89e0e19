package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
)

var chainsCmd = &cobra.Command{
	Use:     "chains",
	Aliases: []string{"networks"},
	Short:   "List supported chains and the RPC endpoints in use",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChains(appUI, env)
	},
}

func runChains(u ui.UI, e *environment) error {
	return render(u, util.BuildChainDisplays(e.chains), util.PrintChainDisplays)
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}
