package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Write emits the assembled row set as the destination CSV: the rename
// table and the allow-list are applied here, immediately before output, so
// rows carry template names all the way through assembly.
func Write(path string, rows []models.EmittedRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := models.OutputColumns()
	if err := w.Write(header); err != nil {
		return err
	}

	// Reverse lookup from destination name to template name.
	toTemplate := make(map[string]string, len(header))
	for _, col := range models.TemplateColumns {
		name := col
		if renamed, ok := models.ColumnRename[col]; ok {
			name = renamed
		}
		toTemplate[name] = col
	}

	for _, row := range rows {
		out := make([]string, len(header))
		for i, name := range header {
			out[i] = row[toTemplate[name]]
		}
		if err := w.Write(out); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRaw writes raw records back out with their original header, used by
// the batch splitter.
func WriteRaw(path string, header []string, records []models.RawRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create batch file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = rec.Fields[col]
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
