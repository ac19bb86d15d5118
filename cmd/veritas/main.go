package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	debug       bool
	inputPath   string
	tradesTable bool
	analyze     bool
)

var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "VERITAS - backtest result verification",
	Long: `VERITAS recomputes per-trade P&L from a serialized backtest result,
cross-checks the reported aggregates against the recomputed values, and
flags results that look statistically implausible.

Reads a JSON result record on stdin unless --input names a file or an
s3://bucket/key object. Findings are informational: the exit status is 0
no matter how many mismatches the report contains.`,
	Args:         cobra.NoArgs,
	RunE:         runVerify,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input location (file path or s3://bucket/key, default stdin)")
	rootCmd.Flags().BoolVar(&tradesTable, "trades-table", false, "append a table of every trade to the report")
	rootCmd.Flags().BoolVar(&analyze, "analyze", false, "ask the configured LLM for commentary on the findings")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
