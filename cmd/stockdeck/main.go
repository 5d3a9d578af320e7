package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "stockdeck",
	Short: "stockdeck - stock dashboard backend",
	Long: `stockdeck serves live quotes, intraday charts, symbol search and a
persistent watchlist for a browser dashboard. It covers the US, Indian, UK,
Japanese, Chinese and German markets.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
