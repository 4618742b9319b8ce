package migration

import (
	"fmt"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/transform"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// variantFields are the per-variant columns a parent row must not carry
// once real variant rows exist under its handle.
var variantFields = []string{
	models.ColOption1Value,
	models.ColSKU,
	models.ColPrice,
	models.ColCompareAtPrice,
	models.ColQuantity,
	models.ColTracker,
	models.ColPolicy,
	models.ColFulfillment,
}

// enforceInvariants runs the structural passes over the assembled row set:
// parents with variants carry no variant fields, positive stock always
// tracks, and no sellable row leaves with a non-positive price.
func (o *Orchestrator) enforceInvariants(result *Result) {
	byHandle := map[string][]int{}
	order := []string{}
	for i, row := range result.Rows {
		h := row[models.ColHandle]
		if _, ok := byHandle[h]; !ok {
			order = append(order, h)
		}
		byHandle[h] = append(byHandle[h], i)
	}

	for _, h := range order {
		idxs := byHandle[h]
		parentIdx := -1
		variantCount := 0
		for _, i := range idxs {
			row := result.Rows[i]
			switch {
			case row[models.ColTitle] != "":
				parentIdx = i
			case row[models.ColOption1Value] != "":
				variantCount++
			}
		}
		// A parent with at least one variant row is purely structural:
		// everything sellable lives on the variants.
		if parentIdx >= 0 && variantCount > 0 {
			for _, f := range variantFields {
				result.Rows[parentIdx][f] = ""
			}
		}
	}

	// Positive stock forces the shopify tracker, whatever the mapping said.
	for _, row := range result.Rows {
		if q, ok := transform.QuantityValue(row[models.ColQuantity]); ok && q > 0 {
			row[models.ColTracker] = "shopify"
		}
	}

	o.dropUnsellable(result, byHandle, order)
}

// dropUnsellable is the terminal price safety net: any sellable row that
// still lacks a positive price is removed, and a handle whose parent was
// its only sellable row falls entirely.
func (o *Orchestrator) dropUnsellable(result *Result, byHandle map[string][]int, order []string) {
	removed := map[int]bool{}

	for _, h := range order {
		idxs := byHandle[h]
		parentIdx := -1
		var variantIdxs []int
		for _, i := range idxs {
			row := result.Rows[i]
			switch {
			case row[models.ColTitle] != "":
				parentIdx = i
			case row[models.ColOption1Value] != "":
				variantIdxs = append(variantIdxs, i)
			}
		}

		kept := 0
		for _, i := range variantIdxs {
			if sellablePrice(result.Rows[i]) {
				kept++
				continue
			}
			removed[i] = true
			result.Stats.DroppedVariants++
			result.Stats.Errors = append(result.Stats.Errors, models.ErrorRecord{
				GroupID: h, Kind: models.ErrZeroPriceVariant,
				Messages: []string{fmt.Sprintf("variant %q dropped with non-positive price", result.Rows[i][models.ColOption1Value])},
			})
		}

		// The parent sells directly only when no variant rows remain.
		if parentIdx >= 0 && kept == 0 && !sellablePrice(result.Rows[parentIdx]) {
			for _, i := range idxs {
				removed[i] = true
			}
			result.Stats.SkippedGroups++
			result.Stats.Errors = append(result.Stats.Errors, models.ErrorRecord{
				GroupID: h, Kind: models.ErrMissingPrice,
				Messages: []string{"no sellable row left under handle"},
			})
		}
	}

	if len(removed) == 0 {
		return
	}
	rows := result.Rows[:0]
	for i, row := range result.Rows {
		if !removed[i] {
			rows = append(rows, row)
		}
	}
	result.Rows = rows
}

func sellablePrice(row models.EmittedRow) bool {
	d, ok := transform.PriceValue(row[models.ColPrice])
	return ok && d.IsPositive()
}

// dedupeSKUs suffixes repeated variant SKUs so the destination's uniqueness
// check cannot reject the import.
func (o *Orchestrator) dedupeSKUs(result *Result) {
	seen := map[string]int{}
	for _, row := range result.Rows {
		sku := row[models.ColSKU]
		if sku == "" {
			continue
		}
		n := seen[sku]
		seen[sku] = n + 1
		if n == 0 {
			continue
		}
		fixed := fmt.Sprintf("%s-%d", sku, n)
		row[models.ColSKU] = fixed
		result.Stats.Warnings = append(result.Stats.Warnings, models.Warning{
			GroupID: row[models.ColHandle],
			Message: fmt.Sprintf("duplicate SKU %s renamed to %s", sku, fixed),
		})
	}
}
