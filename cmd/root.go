// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tranvictor/balancewatch/config"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/ui"
)

var appUI ui.UI = ui.NewTerminalUI()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "balancewatch",
	Short: "Check and monitor USDC balances on Ethereum, Base and Polygon test networks",
	Long: fmt.Sprintf(`balancewatch reads USDC balances of your addresses straight from the chains'
JSON-RPC nodes, keeps a local history of every check and tells you when a
balance falls below the threshold you set.

Supported chains: %s.

Data (tracked addresses, balance history, settings) lives in %s by default.
Use --data-dir or the %s env var to keep it somewhere else.

By default balancewatch uses public RPC nodes. You can point a chain to your
own node with the following env vars, or with an "endpoints" block in
settings.yaml inside the data dir:
	1. ethereum: %s
	2. base: %s
	3. polygon: %s

Env vars can also be put in a .env file in the current dir or the data dir.
Variables already set in the environment are never overridden.`,
		networks.SupportedNames(networks.Default()),
		"~/"+config.DefaultDirName,
		config.HomeVariableName,
		networks.EthereumSepolia.NodeVariableName,
		networks.BaseSepolia.NodeVariableName,
		networks.PolygonAmoy.NodeVariableName,
	),
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  preprocess,
	PersistentPostRunE: postprocess,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.DataDir, "data-dir", "D", "", "directory holding config.json, history.json and settings.yaml. Default: $"+config.HomeVariableName+" or ~/"+config.DefaultDirName)
	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().DurationVarP(&config.RPCTimeout, "timeout", "t", config.DefaultRPCTimeout, "timeout of each JSON-RPC request. Overrides rpc_timeout in settings.yaml")
	rootCmd.PersistentFlags().BoolVar(&config.JSONOutput, "json", false, "print results as JSON instead of tables")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		appUI.Error("%s", err)
		stop()
		os.Exit(1)
	}
}
