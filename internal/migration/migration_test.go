package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/mapping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/migration"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/state"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/taxonomy"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

var sourceHeader = []string{"Name", "SKU", "Price", "Regular price", "Sale price", "Images", "Stock", "Categories", "Description"}

func row(line int, values map[string]string) models.RawRecord {
	fields := make(map[string]string, len(sourceHeader))
	for _, col := range sourceHeader {
		fields[col] = values[col]
	}
	return models.RawRecord{Line: line, Header: sourceHeader, Fields: fields}
}

func newOrchestrator(tax *taxonomy.Table) *migration.Orchestrator {
	return migration.New(mapping.Default(), tax, grouping.NewDefault())
}

func run(t *testing.T, o *migration.Orchestrator, records []models.RawRecord) *migration.Result {
	t.Helper()
	result, err := o.Run(records, migration.Options{})
	require.NoError(t, err)
	return result
}

func rowsByKind(rows []models.EmittedRow) (parents, variants, images []models.EmittedRow) {
	for _, r := range rows {
		switch {
		case r[models.ColTitle] != "":
			parents = append(parents, r)
		case r[models.ColOption1Value] != "":
			variants = append(variants, r)
		default:
			images = append(images, r)
		}
	}
	return
}

func TestSuffixGroupedVariants(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Classic Tee - Small", "SKU": "TEE-S", "Price": "10",
			"Images": "https://cdn.example.com/tee1.jpg, https://cdn.example.com/tee2.jpg",
			"Stock":  "5",
		}),
		row(3, map[string]string{
			"Name": "Classic Tee - Medium", "SKU": "TEE-M", "Price": "12", "Stock": "0",
		}),
	})

	parents, variants, images := rowsByKind(result.Rows)
	require.Len(t, parents, 1)
	require.Len(t, variants, 2)
	require.Len(t, images, 1)

	parent := parents[0]
	assert.Equal(t, "classic-tee", parent[models.ColHandle])
	assert.Equal(t, "Size", parent[models.ColOption1Name])

	// A parent over real variants carries no variant data of its own.
	assert.Empty(t, parent[models.ColOption1Value])
	assert.Empty(t, parent[models.ColPrice])
	assert.Empty(t, parent[models.ColSKU])
	assert.Empty(t, parent[models.ColQuantity])

	small, medium := variants[0], variants[1]
	assert.Equal(t, "Small", small[models.ColOption1Value])
	assert.Equal(t, "10.00", small[models.ColPrice])
	assert.Equal(t, "TEE-S", small[models.ColSKU])
	assert.Equal(t, "5", small[models.ColQuantity])
	assert.Equal(t, "shopify", small[models.ColTracker])

	assert.Equal(t, "Medium", medium[models.ColOption1Value])
	assert.Equal(t, "12.00", medium[models.ColPrice])
	// No image of its own: inherits the parent's first.
	assert.Equal(t, "https://cdn.example.com/tee1.jpg", medium[models.ColVariantImageURL])

	for _, v := range variants {
		assert.Equal(t, "classic-tee", v[models.ColHandle])
		assert.Equal(t, "manual", v[models.ColFulfillment])
	}

	img := images[0]
	assert.Equal(t, "classic-tee", img[models.ColHandle])
	assert.Equal(t, "https://cdn.example.com/tee2.jpg", img[models.ColImageURL])
	assert.Equal(t, "2", img[models.ColImagePosition])
	assert.Empty(t, img[models.ColTitle])

	assert.Equal(t, 1, result.Stats.ParentRows)
	assert.Equal(t, 2, result.Stats.VariantRows)
	assert.Equal(t, 1, result.Stats.ImageRows)
}

func TestSingleProduct(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Ceramic Mug", "SKU": "MUG-1", "Price": "14.50",
			"Images": "https://cdn.example.com/mug.jpg", "Stock": "3",
			"Description": "A mug.",
		}),
	})

	require.Len(t, result.Rows, 1)
	parent := result.Rows[0]

	// No phantom default variant: the single row is complete in itself.
	assert.Equal(t, "Ceramic Mug", parent[models.ColTitle])
	assert.Equal(t, "ceramic-mug", parent[models.ColHandle])
	assert.Equal(t, "Title", parent[models.ColOption1Name])
	assert.Equal(t, "Default Title", parent[models.ColOption1Value])
	assert.Equal(t, "14.50", parent[models.ColPrice])
	assert.Equal(t, "MUG-1", parent[models.ColSKU])
	assert.Equal(t, "3", parent[models.ColQuantity])
	assert.Equal(t, "shopify", parent[models.ColTracker])
	assert.Equal(t, "deny", parent[models.ColPolicy])
	assert.Equal(t, "manual", parent[models.ColFulfillment])
	assert.Contains(t, parent[models.ColDescription], "<h3>Overview</h3>")

	assert.Equal(t, 1, result.Stats.ParentRows)
	assert.Equal(t, 0, result.Stats.VariantRows)
}

func TestMissingImageSkipsGroup(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{"Name": "No Image Product", "SKU": "NI-1", "Price": "10"}),
		row(3, map[string]string{
			"Name": "Good Product", "SKU": "GP-1", "Price": "10",
			"Images": "https://cdn.example.com/good.jpg",
		}),
	})

	parents, _, _ := rowsByKind(result.Rows)
	require.Len(t, parents, 1)
	assert.Equal(t, "Good Product", parents[0][models.ColTitle])

	assert.Equal(t, 1, result.Stats.SkippedGroups)
	require.NotEmpty(t, result.Stats.Errors)
	assert.Equal(t, models.ErrMissingImage, result.Stats.Errors[0].Kind)
}

func TestMissingPriceSkipsSingleProduct(t *testing.T) {
	o := newOrchestrator(nil)
	result, err := o.Run([]models.RawRecord{
		row(2, map[string]string{
			"Name": "Free Product", "SKU": "FP-1",
			"Images": "https://cdn.example.com/x.jpg",
		}),
	}, migration.Options{})

	assert.ErrorIs(t, err, migration.ErrNoRowsEmitted)
	assert.Empty(t, result.Rows)
	require.NotEmpty(t, result.Stats.Errors)
	assert.Equal(t, models.ErrMissingPrice, result.Stats.Errors[0].Kind)
}

func TestZeroPriceVariantDropped(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Hat - Small", "SKU": "HAT-S", "Price": "8",
			"Images": "https://cdn.example.com/hat.jpg",
		}),
		row(3, map[string]string{"Name": "Hat - Medium", "SKU": "HAT-M", "Price": "0"}),
		row(4, map[string]string{"Name": "Hat - Large", "SKU": "HAT-L", "Price": "9"}),
	})

	_, variants, _ := rowsByKind(result.Rows)
	require.Len(t, variants, 2)
	for _, v := range variants {
		assert.NotEqual(t, "Medium", v[models.ColOption1Value])
	}

	assert.Equal(t, 1, result.Stats.DroppedVariants)
	found := false
	for _, e := range result.Stats.Errors {
		if e.Kind == models.ErrZeroPriceVariant {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVariantExtraImagesEmitted(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Boot - Small", "SKU": "B-S", "Price": "50",
			"Images": "https://cdn.example.com/boot-s.jpg",
		}),
		row(3, map[string]string{
			"Name": "Boot - Large", "SKU": "B-L", "Price": "55",
			"Images": "https://cdn.example.com/boot-l1.jpg, https://cdn.example.com/boot-l2.jpg",
		}),
	})

	_, variants, images := rowsByKind(result.Rows)
	require.Len(t, variants, 2)

	// Only images of rows that were actually emitted become image rows: the
	// Large variant's first image rides on its own row, its second becomes
	// one extra-image row.
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/boot-l2.jpg", images[0][models.ColImageURL])
	assert.Equal(t, "2", images[0][models.ColImagePosition])
}

func TestUnlabeledVariantKeptAsDefault(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Plain Tee", "Price": "10",
			"Images": "https://cdn.example.com/p.jpg",
		}),
		row(3, map[string]string{"Name": "Plain Tee", "Price": "12"}),
	})

	_, variants, _ := rowsByKind(result.Rows)
	require.Len(t, variants, 1)
	assert.Equal(t, "Default", variants[0][models.ColOption1Value])
	assert.Equal(t, "12.00", variants[0][models.ColPrice])

	assert.Equal(t, 0, result.Stats.DroppedVariants)
	assert.NotEmpty(t, result.Stats.Warnings)
}

func TestTaxonomyResolution(t *testing.T) {
	table := &taxonomy.Table{
		Categories: map[string]string{
			"Apparel > Shirts": "Apparel & Accessories > Clothing > Shirts & Tops",
		},
		FallbackStrategy: taxonomy.StrategyClear,
	}
	o := newOrchestrator(table)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Mapped Shirt", "SKU": "MS-1", "Price": "10",
			"Images": "https://cdn.example.com/s.jpg", "Categories": "Apparel > Shirts",
		}),
		row(3, map[string]string{
			"Name": "Odd Gadget", "SKU": "OG-1", "Price": "10",
			"Images": "https://cdn.example.com/g.jpg", "Categories": "Gadgets > Odd",
		}),
	})

	parents, _, _ := rowsByKind(result.Rows)
	require.Len(t, parents, 2)
	assert.Equal(t, "Apparel & Accessories > Clothing > Shirts & Tops", parents[0][models.ColCategory])
	// Unmapped category under the clear strategy: present but empty.
	v, present := parents[1][models.ColCategory]
	assert.True(t, present)
	assert.Empty(t, v)
}

func TestTaxonomyPassThroughByDefault(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Thing", "SKU": "T-1", "Price": "10",
			"Images": "https://cdn.example.com/t.jpg", "Categories": "Stuff>Things",
		}),
	})
	parents, _, _ := rowsByKind(result.Rows)
	require.Len(t, parents, 1)
	assert.Equal(t, "Stuff > Things", parents[0][models.ColCategory])
}

func TestHandleUniqueness(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Lamp Deluxe!", "SKU": "L-1", "Price": "10",
			"Images": "https://cdn.example.com/1.jpg",
		}),
		row(3, map[string]string{
			"Name": "Lamp Deluxe?", "SKU": "L-2", "Price": "12",
			"Images": "https://cdn.example.com/2.jpg",
		}),
	})

	parents, _, _ := rowsByKind(result.Rows)
	require.Len(t, parents, 2)
	assert.Equal(t, "lamp-deluxe", parents[0][models.ColHandle])
	assert.Equal(t, "lamp-deluxe-2", parents[1][models.ColHandle])
}

func TestDuplicateSKUsSuffixed(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "First Widget", "SKU": "W-1", "Price": "10",
			"Images": "https://cdn.example.com/1.jpg",
		}),
		row(3, map[string]string{
			"Name": "Second Widget", "SKU": "W-1", "Price": "12",
			"Images": "https://cdn.example.com/2.jpg",
		}),
	})

	parents, _, _ := rowsByKind(result.Rows)
	require.Len(t, parents, 2)
	assert.Equal(t, "W-1", parents[0][models.ColSKU])
	assert.Equal(t, "W-1-1", parents[1][models.ColSKU])
	assert.NotEmpty(t, result.Stats.Warnings)
}

func TestEveryRowCoversAllColumns(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Tee - Small", "SKU": "T-S", "Price": "10",
			"Images": "https://cdn.example.com/t.jpg",
		}),
		row(3, map[string]string{"Name": "Tee - Medium", "SKU": "T-M", "Price": "11"}),
	})

	for _, r := range result.Rows {
		for _, col := range models.TemplateColumns {
			_, present := r[col]
			assert.True(t, present, "column %q missing", col)
		}
	}
}

func TestSampleSizeLimitsRows(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{"Name": "A", "SKU": "A-1", "Price": "10", "Images": "https://cdn.example.com/a.jpg"}),
		row(3, map[string]string{"Name": "B", "SKU": "B-1", "Price": "10", "Images": "https://cdn.example.com/b.jpg"}),
	})
	require.Len(t, result.Rows, 2)

	limited, err := o.Run([]models.RawRecord{
		row(2, map[string]string{"Name": "A", "SKU": "A-1", "Price": "10", "Images": "https://cdn.example.com/a.jpg"}),
		row(3, map[string]string{"Name": "B", "SKU": "B-1", "Price": "10", "Images": "https://cdn.example.com/b.jpg"}),
	}, migration.Options{SampleSize: 1})
	require.NoError(t, err)
	assert.Len(t, limited.Rows, 1)
	assert.Equal(t, 1, limited.Stats.TotalRows)
}

func TestLedgerSkipsMigratedGroups(t *testing.T) {
	records := []models.RawRecord{
		row(2, map[string]string{
			"Name": "Repeat Product", "SKU": "RP-1", "Price": "10",
			"Images": "https://cdn.example.com/r.jpg",
		}),
	}

	o := newOrchestrator(nil)
	ledger := state.NewLedger(t.TempDir() + "/ledger.json")
	o.SetLedger(ledger)

	first, err := o.Run(records, migration.Options{SkipMigrated: true})
	require.NoError(t, err)
	require.Len(t, first.Rows, 1)
	assert.Equal(t, 1, ledger.Count())

	second, err := o.Run(records, migration.Options{SkipMigrated: true})
	assert.ErrorIs(t, err, migration.ErrNoRowsEmitted)
	assert.Empty(t, second.Rows)
	assert.Equal(t, 1, second.Stats.SkippedGroups)
}

func TestEmptyInput(t *testing.T) {
	o := newOrchestrator(nil)
	result, err := o.Run(nil, migration.Options{})
	assert.ErrorIs(t, err, migration.ErrNoRowsEmitted)
	assert.Equal(t, 0, result.Stats.TotalGroups)
}

func TestVerify(t *testing.T) {
	o := newOrchestrator(nil)
	result := run(t, o, []models.RawRecord{
		row(2, map[string]string{
			"Name": "Tee - Small", "SKU": "T-S", "Price": "10",
			"Images": "https://cdn.example.com/t.jpg",
		}),
		row(3, map[string]string{"Name": "Tee - Medium", "SKU": "T-M", "Price": "11"}),
	})

	// Round-trip the emitted rows through the destination column names the
	// way the writer does.
	var out []models.RawRecord
	header := models.OutputColumns()
	for i, r := range result.Rows {
		fields := map[string]string{}
		for _, col := range models.TemplateColumns {
			name := col
			if renamed, ok := models.ColumnRename[col]; ok {
				name = renamed
			}
			fields[name] = r[col]
		}
		out = append(out, models.RawRecord{Line: i + 2, Header: header, Fields: fields})
	}

	assert.Empty(t, migration.Verify(out))
}
