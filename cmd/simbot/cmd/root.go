package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simbot",
	Short: "A simulated FX trading bot with a synthetic price feed",
	Long: `Simbot runs a self-contained trading simulation: a synthetic random-walk
price feed, RSI plus moving-average crossover signals, and a simple P/L
ledger, served over HTTP.

It provides tools for:
  - Running the live simulation loop with status and trade endpoints
  - Fast offline backtests over the synthetic feed
  - Journaling trades and equity to CSV or SQLite
  - Generating and validating configuration files`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "path to config file (YAML or JSON)")
}
