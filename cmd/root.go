package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mselser95/cowtrader/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "cowtrader",
	Short: "CoW Protocol order submission CLI",
	Long: `cowtrader reads a limit-order definition file, quotes it against the
CoW Protocol order book, applies slippage protection, executes any
required token approvals, and submits the order.

Three account models are supported: a plain EOA signing EIP-712 orders,
a Safe authorizing via on-chain pre-signature through the Safe
transaction service, and a Safe intended for EIP-1271 off-chain
validation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(types.ExitRuntimeFail)
	}
}
