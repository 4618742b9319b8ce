package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/batch"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/config"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
)

var (
	batchSource    string
	batchCount     int
	batchOutputDir string
	batchPrefix    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Split a source export into smaller batches",
	Long:  `Split a flat export into upload-sized CSV files without cutting product groups.`,
}

var batchSplitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the source file into batch CSVs",
	Long:  `Partition the source rows into batches, keeping every product group whole.`,
	RunE:  runBatchSplit,
}

func init() {
	batchSplitCmd.Flags().StringVarP(&batchSource, "source", "s", "", "Source CSV file (overrides config)")
	batchSplitCmd.Flags().IntVarP(&batchCount, "count", "n", 0, "Number of batches (overrides config)")
	batchSplitCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "", "Output directory (overrides config)")
	batchSplitCmd.Flags().StringVar(&batchPrefix, "prefix", "", "Batch file prefix (overrides config)")

	batchCmd.AddCommand(batchSplitCmd)
}

func runBatchSplit(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  SPLITTING SOURCE FILE")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Yellow("  Warning: Could not load config, using defaults")
		cfg = config.DefaultConfig()
	}
	sourcePath := cfg.Files.Source
	if batchSource != "" {
		sourcePath = batchSource
	}
	outputDir := cfg.Files.OutputDir
	if batchOutputDir != "" {
		outputDir = batchOutputDir
	}
	count := cfg.Batch.Count
	if batchCount > 0 {
		count = batchCount
	}
	prefix := cfg.Batch.Prefix
	if batchPrefix != "" {
		prefix = batchPrefix
	}

	src, err := csvio.Read(sourcePath)
	if err != nil {
		color.Red("  Error reading source: %v", err)
		return err
	}
	color.Yellow("  Source: %s (%d rows)\n", sourcePath, len(src.Records))
	color.Yellow("  Batches: %d\n\n", count)

	batches := batch.Split(src.Records, grouping.NewDefault(), count)
	if len(batches) == 0 {
		color.Yellow("  Nothing to split: source has no rows")
		return nil
	}

	paths, err := batch.WriteAll(outputDir, prefix, src.Header, batches)
	if err != nil {
		color.Red("  Error writing batches: %v", err)
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Batch", "Groups", "Rows", "File"})
	table.SetBorder(false)
	for i, b := range batches {
		table.Append([]string{
			fmt.Sprintf("%d", b.Index),
			fmt.Sprintf("%d", b.Groups),
			fmt.Sprintf("%d", len(b.Records)),
			paths[i],
		})
	}
	table.Render()
	fmt.Println()

	success.Printf("  ✓ Wrote %d batch files to %s\n\n", len(paths), outputDir)
	return nil
}
