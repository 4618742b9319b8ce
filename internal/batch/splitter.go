// Package batch splits a source export into smaller upload files without
// ever cutting a product group across two files.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Batch is one split-out slice of the source file.
type Batch struct {
	Index   int
	Groups  int
	Records []models.RawRecord
}

// Split partitions the source rows into at most count batches. Groups stay
// whole and keep their first-seen order, so batch 1 always holds the
// earliest products in the file. Every source row lands in exactly one
// batch.
func Split(records []models.RawRecord, g *grouping.Grouper, count int) []Batch {
	if count < 1 {
		count = 1
	}
	groups := g.Partition(records)
	if len(groups) == 0 {
		return nil
	}
	if count > len(groups) {
		count = len(groups)
	}

	// Ceil division keeps batch sizes within one group of each other.
	perBatch := (len(groups) + count - 1) / count

	var batches []Batch
	for start := 0; start < len(groups); start += perBatch {
		end := start + perBatch
		if end > len(groups) {
			end = len(groups)
		}
		b := Batch{Index: len(batches) + 1, Groups: end - start}
		for _, grp := range groups[start:end] {
			b.Records = append(b.Records, grp.Records...)
		}
		batches = append(batches, b)
	}
	return batches
}

// WriteAll writes each batch as its own CSV under dir, named
// <prefix>_<index>.csv, and returns the written paths.
func WriteAll(dir, prefix string, header []string, batches []Batch) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create batch directory: %w", err)
	}

	paths := make([]string, 0, len(batches))
	for _, b := range batches {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.csv", prefix, b.Index))
		if err := csvio.WriteRaw(path, header, b.Records); err != nil {
			return paths, fmt.Errorf("failed to write batch %d: %w", b.Index, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
