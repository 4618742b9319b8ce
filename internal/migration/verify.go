package migration

import (
	"fmt"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/transform"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// destination column names as written to the import CSV.
var (
	dstHandle  = models.ColumnRename[models.ColHandle]
	dstOption1 = models.ColumnRename[models.ColOption1Value]
	dstPrice   = models.ColumnRename[models.ColPrice]
	dstSKU     = models.ColumnRename[models.ColSKU]
	dstQty     = models.ColumnRename[models.ColQuantity]
	dstTracker = models.ColumnRename[models.ColTracker]
)

// Verify audits an already-written import CSV against the structural
// rules: one parent per handle, no sellable parent above variants, no
// non-positive prices, no duplicate SKUs, tracking on for stocked rows.
func Verify(records []models.RawRecord) []string {
	var problems []string

	parents := map[string]int{}
	variants := map[string]int{}
	seen := map[string]bool{}
	order := []string{}
	skuSeen := map[string]int{}

	for _, rec := range records {
		h := rec.Get(dstHandle)
		if h == "" {
			problems = append(problems, fmt.Sprintf("row %d: empty handle", rec.Line))
			continue
		}
		if !seen[h] {
			seen[h] = true
			order = append(order, h)
		}
		title := rec.Get("Title")
		opt := rec.Get(dstOption1)
		price := rec.Get(dstPrice)
		qty := rec.Get(dstQty)

		switch {
		case title != "":
			parents[h]++
		case opt != "":
			variants[h]++
		}

		// Any row carrying an option value sells; image rows and structural
		// parents do not.
		if opt != "" {
			if d, ok := transform.PriceValue(price); !ok || !d.IsPositive() {
				problems = append(problems, fmt.Sprintf("row %d (%s): sellable row with non-positive price %q", rec.Line, h, price))
			}
		}
		if q, ok := transform.QuantityValue(qty); ok && q > 0 && rec.Get(dstTracker) != "shopify" {
			problems = append(problems, fmt.Sprintf("row %d (%s): stocked row without shopify tracker", rec.Line, h))
		}
		if sku := rec.Get(dstSKU); sku != "" {
			skuSeen[sku]++
		}
	}

	for _, h := range order {
		switch {
		case parents[h] == 0:
			problems = append(problems, fmt.Sprintf("handle %s: no parent row", h))
		case parents[h] > 1:
			problems = append(problems, fmt.Sprintf("handle %s: %d parent rows", h, parents[h]))
		}
	}
	for sku, n := range skuSeen {
		if n > 1 {
			problems = append(problems, fmt.Sprintf("SKU %s appears %d times", sku, n))
		}
	}
	return problems
}
