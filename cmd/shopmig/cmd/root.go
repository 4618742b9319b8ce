package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopmig",
	Short: "Shopify Migration Terminal",
	Long: color.New(color.FgCyan, color.Bold).Sprint(`
      _                                _
  ___| |__   ___  _ __  _ __ ___  (_) __ _
 / __| '_ \ / _ \| '_ \| '_ ' _ \ | |/ _' |
 \__ \ | | | (_) | |_) | | | | | || | (_| |
 |___/_| |_|\___/| .__/|_| |_| |_||_|\__, |
                 |_|                 |___/
`) + `
Shopify Migration Terminal - Product catalog migration toolkit

Turn a flat e-commerce export into structured Shopify import CSVs with
grouped variants, consolidated images, and a full error report.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
}
