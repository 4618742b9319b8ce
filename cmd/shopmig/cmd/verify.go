package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/migration"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Verify a generated import CSV",
	Long: `Audit an already-generated import CSV against the structural rules:
one parent per handle, positive prices on sellable rows, unique SKUs.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  VERIFYING IMPORT FILE")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	src, err := csvio.Read(args[0])
	if err != nil {
		color.Red("  Error reading file: %v", err)
		return err
	}
	color.Yellow("  File: %s (%d rows)\n\n", args[0], len(src.Records))

	parents, variants, images := 0, 0, 0
	for _, rec := range src.Records {
		switch {
		case rec.Get("Title") != "":
			parents++
		case rec.Get("Option1 Value") != "":
			variants++
		default:
			images++
		}
	}
	fmt.Printf("  Parent rows:  %d\n", parents)
	fmt.Printf("  Variant rows: %d\n", variants)
	fmt.Printf("  Image rows:   %d\n\n", images)

	problems := migration.Verify(src.Records)
	if len(problems) == 0 {
		success.Println("  ✓ No structural problems found")
		fmt.Println()
		return nil
	}

	color.Red("  Found %d problems:\n", len(problems))
	for _, p := range problems {
		fmt.Printf("    • %s\n", p)
	}
	fmt.Println()
	return fmt.Errorf("verification failed: %d problems", len(problems))
}
