package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockmaster",
	Short: "Learn to read stock charts in your terminal",
	Long: "StockMaster is a terminal trainer for chart patterns, indicators and trading calls.\n" +
		"Practice by topic, race the clock, swipe BUY or SELL, and follow the daily lessons.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STOCKMASTER_DB)")
	rootCmd.PersistentFlags().StringSlice("bank", nil, "External question bank file(s), YAML or JSON (overrides STOCKMASTER_BANK)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
