package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/config"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/migration"
)

var analyzeSource string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a source export before migrating",
	Long: `Group the source rows and report how the catalog will migrate:
product counts, variant groups, and rows that will be dropped.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSource, "source", "s", "", "Source CSV file (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	header.Println("\n  ANALYZING SOURCE FILE")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Yellow("  Warning: Could not load config, using defaults")
		cfg = config.DefaultConfig()
	}
	sourcePath := cfg.Files.Source
	if analyzeSource != "" {
		sourcePath = analyzeSource
	}

	src, err := csvio.Read(sourcePath)
	if err != nil {
		color.Red("  Error reading source: %v", err)
		return err
	}

	summary := migration.Analyze(src.Records, grouping.NewDefault())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Count"})
	table.SetBorder(false)
	table.Append([]string{"Source rows", fmt.Sprintf("%d", summary.TotalRows)})
	table.Append([]string{"Product groups", fmt.Sprintf("%d", summary.TotalGroups)})
	table.Append([]string{"Single products", fmt.Sprintf("%d", summary.SingleRecord)})
	table.Append([]string{"Variant groups", fmt.Sprintf("%d", summary.MultiRecord)})
	table.Append([]string{"Groups without images", color.RedString("%d", summary.NoImageGroups)})
	table.Append([]string{"Rows without prices", color.YellowString("%d", summary.NoPriceRows)})
	table.Render()
	fmt.Println()

	if len(summary.Largest) > 0 {
		header.Println("  LARGEST GROUPS")
		fmt.Println("  " + strings.Repeat("─", 50))
		fmt.Println()

		top := tablewriter.NewWriter(os.Stdout)
		top.SetHeader([]string{"Product", "Records"})
		top.SetBorder(false)
		for _, g := range summary.Largest {
			top.Append([]string{g.BaseName, fmt.Sprintf("%d", g.Records)})
		}
		top.Render()
		fmt.Println()
	}
	return nil
}
