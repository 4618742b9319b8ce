package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/config"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/mapping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/migration"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/report"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/state"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/taxonomy"
)

var (
	migrateSource     string
	migrateMapping    string
	migrateTaxonomy   string
	migrateOutputDir  string
	migrateStateFile  string
	migrateSample     int
	migrateResume     bool
	migrateDryRun     bool
	migrateNoProgress bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a flat export to Shopify import CSVs",
	Long: `Read a flat product export, group rows into products, and emit a
structured Shopify import CSV plus an error report.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateSource, "source", "s", "", "Source CSV file (overrides config)")
	migrateCmd.Flags().StringVar(&migrateMapping, "mapping", "", "Field mapping YAML (default: built-in WooCommerce mapping)")
	migrateCmd.Flags().StringVar(&migrateTaxonomy, "taxonomy", "", "Category taxonomy YAML (default: pass categories through)")
	migrateCmd.Flags().StringVarP(&migrateOutputDir, "output", "o", "", "Output directory (overrides config)")
	migrateCmd.Flags().StringVar(&migrateStateFile, "state", "", "Idempotency ledger file (overrides config)")
	migrateCmd.Flags().IntVar(&migrateSample, "sample", 0, "Process at most N source rows (0 = all)")
	migrateCmd.Flags().BoolVar(&migrateResume, "skip-migrated", false, "Skip groups already on the ledger")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Run the pipeline without writing output files")
	migrateCmd.Flags().BoolVar(&migrateNoProgress, "no-progress", false, "Disable the progress bar")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  MIGRATING PRODUCTS")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Yellow("  Warning: Could not load config, using defaults")
		cfg = config.DefaultConfig()
	}
	sourcePath := cfg.Files.Source
	if migrateSource != "" {
		sourcePath = migrateSource
	}
	outputDir := cfg.Files.OutputDir
	if migrateOutputDir != "" {
		outputDir = migrateOutputDir
	}
	mappingPath := cfg.Files.Mapping
	if migrateMapping != "" {
		mappingPath = migrateMapping
	}
	taxonomyPath := cfg.Files.Taxonomy
	if migrateTaxonomy != "" {
		taxonomyPath = migrateTaxonomy
	}
	statePath := cfg.Files.StateFile
	if migrateStateFile != "" {
		statePath = migrateStateFile
	}
	if statePath == "" {
		statePath = filepath.Join(outputDir, state.DefaultLedgerFile)
	}

	src, err := csvio.Read(sourcePath)
	if err != nil {
		color.Red("  Error reading source: %v", err)
		return err
	}
	color.Yellow("  Source: %s (%d rows)\n", sourcePath, len(src.Records))

	mapCfg := mapping.Default()
	if mappingPath != "" {
		if mapCfg, err = mapping.Load(mappingPath); err != nil {
			color.Red("  Error loading mapping: %v", err)
			return err
		}
		color.Yellow("  Mapping: %s\n", mappingPath)
	} else {
		color.Yellow("  Mapping: built-in WooCommerce ruleset\n")
	}

	tax := taxonomy.PassThrough()
	if taxonomyPath != "" {
		if tax, err = taxonomy.Load(taxonomyPath); err != nil {
			color.Red("  Error loading taxonomy: %v", err)
			return err
		}
		color.Yellow("  Taxonomy: %s (%d categories)\n", taxonomyPath, len(tax.Categories))
	}
	if s := cfg.Migration.CategoryFallback; s != "" {
		tax.FallbackStrategy = taxonomy.Strategy(s)
	}
	if migrateDryRun {
		color.Yellow("  Mode: DRY RUN\n")
	}
	fmt.Println()

	orch := migration.New(mapCfg, tax, grouping.NewDefault())

	ledger := state.NewLedger(statePath)
	if err := ledger.Load(); err != nil {
		color.Yellow("  Warning: Could not load ledger: %v", err)
	}
	orch.SetLedger(ledger)

	opts := migration.Options{
		SampleSize:   migrateSample,
		SkipMigrated: migrateResume,
		Progress:     !migrateNoProgress,
	}
	if opts.SampleSize == 0 {
		opts.SampleSize = cfg.Migration.SampleSize
	}

	result, err := orch.Run(src.Records, opts)
	if err != nil {
		if errors.Is(err, migration.ErrNoRowsEmitted) {
			color.Red("\n  Error: %v", err)
			writeErrorReport(result, outputDir)
			report.PrintSummary(result.Stats)
			return err
		}
		color.Red("  Error: %v", err)
		return err
	}

	if migrateDryRun {
		color.Yellow("  Dry run: skipping output files\n")
	} else {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			color.Red("  Error creating output directory: %v", err)
			return err
		}
		outPath := filepath.Join(outputDir, fmt.Sprintf("shopify_products_%s.csv", time.Now().Format("20060102_150405")))
		if err := csvio.Write(outPath, result.Rows); err != nil {
			color.Red("  Error writing output: %v", err)
			return err
		}
		success.Printf("  ✓ Wrote %d rows to %s\n", len(result.Rows), outPath)

		writeErrorReport(result, outputDir)

		if err := ledger.Save(); err != nil {
			color.Yellow("  Warning: Could not save ledger: %v", err)
		}
	}

	report.PrintSummary(result.Stats)
	return nil
}

func writeErrorReport(result *migration.Result, outputDir string) {
	if result == nil || (len(result.Stats.Errors) == 0 && len(result.Stats.Warnings) == 0) {
		return
	}
	rep := report.New()
	rep.Add(result.Stats.Errors...)
	rep.AddWarnings(result.Stats.Warnings...)
	path, err := rep.WriteCSV(outputDir)
	if err != nil {
		color.Yellow("  Warning: Could not write error report: %v", err)
		return
	}
	if path != "" {
		color.Yellow("  Error report: %s\n", path)
	}
}
