// Package report writes the error-report artifact and prints run summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Report accumulates errors and warnings for one run. It is a side
// artifact: writing it never blocks the main output.
type Report struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Errors    []models.ErrorRecord
	Warnings  []models.Warning
}

// New creates a report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
}

// Add appends error records.
func (r *Report) Add(errs ...models.ErrorRecord) {
	r.Errors = append(r.Errors, errs...)
}

// AddWarnings appends warnings.
func (r *Report) AddWarnings(warns ...models.Warning) {
	r.Warnings = append(r.Warnings, warns...)
}

// WriteCSV writes the error report next to the migration output. Returns
// the written path, or "" when there was nothing to report.
func (r *Report) WriteCSV(dir string) (string, error) {
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("error_report_%s.csv", r.StartedAt.Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create error report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"run_id", "group", "row_number", "kind", "messages"}); err != nil {
		return "", err
	}
	for _, e := range r.Errors {
		line := ""
		if e.Line > 0 {
			line = strconv.Itoa(e.Line)
		}
		if err := w.Write([]string{
			r.RunID.String(), e.GroupID, line, string(e.Kind), strings.Join(e.Messages, "; "),
		}); err != nil {
			return "", err
		}
	}
	for _, warn := range r.Warnings {
		line := ""
		if warn.Line > 0 {
			line = strconv.Itoa(warn.Line)
		}
		if err := w.Write([]string{
			r.RunID.String(), warn.GroupID, line, "warning", warn.Message,
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// PrintSummary renders the run statistics table.
func PrintSummary(stats models.Stats) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Count"})
	table.SetBorder(false)

	table.Append([]string{"Source rows", strconv.Itoa(stats.TotalRows)})
	table.Append([]string{"Product groups", strconv.Itoa(stats.TotalGroups)})
	table.Append([]string{"Parent rows", strconv.Itoa(stats.ParentRows)})
	table.Append([]string{"Variant rows", strconv.Itoa(stats.VariantRows)})
	table.Append([]string{"Image rows", strconv.Itoa(stats.ImageRows)})
	table.Append([]string{"Rows emitted", strconv.Itoa(stats.EmittedRows)})

	skipped := strconv.Itoa(stats.SkippedGroups)
	if stats.SkippedGroups > 0 {
		skipped = color.RedString(skipped)
	}
	table.Append([]string{"Groups skipped", skipped})

	dropped := strconv.Itoa(stats.DroppedVariants)
	if stats.DroppedVariants > 0 {
		dropped = color.YellowString(dropped)
	}
	table.Append([]string{"Variants dropped", dropped})
	table.Append([]string{"Warnings", strconv.Itoa(len(stats.Warnings))})

	table.Render()
}
