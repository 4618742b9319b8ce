package migration

import (
	"fmt"
	"strings"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/taxonomy"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/transform"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/validator"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// member is one group record after mapping and per-field formatting.
type member struct {
	rec    models.RawRecord
	fields models.MappedRecord
	images []string
}

// variant is a usable variant candidate: it has an option label and a
// positive price of its own.
type variant struct {
	member
	label     string
	price     string
	compareAt string
}

func (o *Orchestrator) assemble(group models.ProductGroup, seenHandles map[string]int, stats *models.Stats) ([]models.EmittedRow, bool) {
	members := make([]member, 0, len(group.Records))
	for _, rec := range group.Records {
		if rec.Empty() {
			continue
		}
		mapped := o.mapper.Map(rec)
		fields := make(models.MappedRecord, len(mapped))
		for k, v := range mapped {
			fields[k] = transform.Apply(k, v)
		}
		members = append(members, member{
			rec:    rec,
			fields: fields,
			images: transform.ImageList(fields[models.ColImageURL]),
		})
	}
	if len(members) == 0 {
		stats.Errors = append(stats.Errors, models.ErrorRecord{
			GroupID: group.ID, Kind: models.ErrValidation,
			Messages: []string{"group has no non-empty records"},
		})
		return nil, false
	}

	parent := selectParent(members)
	p := members[parent]

	// Image consolidation: the parent's list, else the first non-empty list
	// anywhere in the group. The image is the one hard requirement.
	images := p.images
	if len(images) == 0 {
		for _, m := range members {
			if len(m.images) > 0 {
				images = m.images
				break
			}
		}
	}
	if len(images) == 0 {
		stats.Errors = append(stats.Errors, models.ErrorRecord{
			GroupID: group.ID, Line: p.rec.Line, Kind: models.ErrMissingImage,
			Messages: []string{"no resolvable image anywhere in group"},
		})
		return nil, false
	}

	// Description consolidation.
	desc := p.fields[models.ColDescription]
	if desc == "" {
		for _, m := range members {
			if m.fields[models.ColDescription] != "" {
				desc = m.fields[models.ColDescription]
				break
			}
		}
	}

	// Category resolution, once per parent. The value is always present on
	// the parent row, empty when unresolved.
	rawCategory := p.fields[models.ColCategory]
	category, matched := o.taxonomy.Resolve(rawCategory)
	if !matched && rawCategory != "" && len(o.taxonomy.Categories) > 0 && o.taxonomy.FallbackStrategy == taxonomy.StrategyWarn {
		stats.Warnings = append(stats.Warnings, models.Warning{
			GroupID: group.ID, Line: p.rec.Line,
			Message: fmt.Sprintf("unmapped category passed through: %s", rawCategory),
		})
	}

	title := p.fields[models.ColTitle]
	if title == "" {
		title = o.grouper.Name(p.rec)
	}
	handle := o.uniqueHandle(group, title, seenHandles)
	if handle == "" {
		stats.Errors = append(stats.Errors, models.ErrorRecord{
			GroupID: group.ID, Line: p.rec.Line, Kind: models.ErrValidation,
			Messages: []string{"cannot derive a handle"},
		})
		return nil, false
	}

	variants := o.collectVariants(group, members, parent, stats)

	parentRow := models.EmittedRow{
		models.ColTitle:          title,
		models.ColHandle:         handle,
		models.ColDescription:    desc,
		models.ColVendor:         p.fields[models.ColVendor],
		models.ColType:           p.fields[models.ColType],
		models.ColTags:           p.fields[models.ColTags],
		models.ColCategory:       category,
		models.ColPublished:      p.fields[models.ColPublished],
		models.ColStatus:         p.fields[models.ColStatus],
		models.ColRequiresShip:   p.fields[models.ColRequiresShip],
		models.ColChargeTax:      p.fields[models.ColChargeTax],
		models.ColSEOTitle:       p.fields[models.ColSEOTitle],
		models.ColSEODescription: p.fields[models.ColSEODescription],
		models.ColImageURL:       images[0],
		models.ColImagePosition:  "1",
		models.ColImageAlt:       title,
	}

	var rows []models.EmittedRow
	var emitted []variant

	if len(variants) == 0 {
		// Single-product case: the parent row is the product and carries
		// its own variant fields. No positive price means no product.
		price, compareAt, ok := o.resolvePrice(p.rec, p.fields)
		if !ok {
			stats.Errors = append(stats.Errors, models.ErrorRecord{
				GroupID: group.ID, Line: p.rec.Line, Kind: models.ErrMissingPrice,
				Messages: []string{"no positive price for single product"},
			})
			return nil, false
		}
		qty := transform.InventoryQuantity(p.fields[models.ColQuantity])
		parentRow[models.ColPrice] = price
		parentRow[models.ColCompareAtPrice] = compareAt
		parentRow[models.ColSKU] = p.fields[models.ColSKU]
		parentRow[models.ColQuantity] = qty
		parentRow[models.ColTracker] = trackerFor(qty, p.fields[models.ColTracker])
		parentRow[models.ColPolicy] = policyFor(p.fields[models.ColPolicy])
		parentRow[models.ColFulfillment] = "manual"
		parentRow[models.ColOption1Name] = "Title"
		parentRow[models.ColOption1Value] = "Default Title"

		pad(parentRow)
		if !o.validateParent(parentRow, group, p.rec.Line, stats) {
			return nil, false
		}
		rows = append(rows, parentRow)
	} else {
		optionName := grouping.ClassifyOption(variants[0].label)
		parentRow[models.ColOption1Name] = optionName
		pad(parentRow)
		if !o.validateParent(parentRow, group, p.rec.Line, stats) {
			return nil, false
		}
		rows = append(rows, parentRow)

		formatChecker := validator.New(nil)
		for _, v := range variants {
			qty := transform.InventoryQuantity(v.fields[models.ColQuantity])
			row := models.EmittedRow{
				models.ColHandle:         handle,
				models.ColOption1Name:    optionName,
				models.ColOption1Value:   v.label,
				models.ColPrice:          v.price,
				models.ColCompareAtPrice: v.compareAt,
				models.ColSKU:            v.fields[models.ColSKU],
				models.ColQuantity:       qty,
				models.ColTracker:        trackerFor(qty, v.fields[models.ColTracker]),
				models.ColPolicy:         policyFor(v.fields[models.ColPolicy]),
				models.ColFulfillment:    "manual",
			}
			// A variant without its own image inherits the parent's first.
			if len(v.images) > 0 {
				row[models.ColVariantImageURL] = v.images[0]
			} else {
				row[models.ColVariantImageURL] = images[0]
			}
			pad(row)
			if ok, errs, warns := formatChecker.Validate(row); !ok {
				stats.Errors = append(stats.Errors, models.ErrorRecord{
					GroupID: group.ID, Line: v.rec.Line, Kind: models.ErrValidation, Messages: errs,
				})
				stats.DroppedVariants++
				continue
			} else {
				for _, w := range warns {
					stats.Warnings = append(stats.Warnings, models.Warning{GroupID: group.ID, Line: v.rec.Line, Message: w})
				}
			}
			rows = append(rows, row)
			emitted = append(emitted, v)
		}
		// Everything dropped at validation: the group has no sellable rows.
		if len(rows) == 1 {
			return nil, false
		}
	}

	// Every additional image, from the parent or a variant, becomes its own
	// extra-image row under the same handle.
	position := 1
	addImage := func(url string) {
		position++
		row := models.EmittedRow{
			models.ColHandle:        handle,
			models.ColImageURL:      url,
			models.ColImagePosition: fmt.Sprintf("%d", position),
		}
		pad(row)
		rows = append(rows, row)
	}
	for _, url := range images[1:] {
		addImage(url)
	}
	for _, v := range emitted {
		// The parent record may double as a variant; its images are the
		// consolidated list already handled above.
		if v.rec.Line == p.rec.Line || len(v.images) == 0 {
			continue
		}
		for _, url := range v.images[1:] {
			addImage(url)
		}
	}

	return rows, true
}

// selectParent prefers a record carrying usable image data and no own price
// (the classic parent signal), then the first record with an image, then
// the first record.
func selectParent(members []member) int {
	for i, m := range members {
		if len(m.images) > 0 && !hasOwnPrice(m.rec) {
			return i
		}
	}
	for i, m := range members {
		if len(m.images) > 0 {
			return i
		}
	}
	return 0
}

// collectVariants gathers usable variant rows. Records other than the
// parent that lack a positive price are dropped individually; if any other
// record survives, the parent record itself is also offered as a variant so
// suffix-grouped products keep their first option.
func (o *Orchestrator) collectVariants(group models.ProductGroup, members []member, parent int, stats *models.Stats) []variant {
	var others []variant
	for i, m := range members {
		if i == parent {
			continue
		}
		label := o.grouper.VariantLabel(m.rec, group.BaseName)
		price, compareAt, ok := o.resolvePrice(m.rec, m.fields)
		if !ok {
			stats.Errors = append(stats.Errors, models.ErrorRecord{
				GroupID: group.ID, Line: m.rec.Line, Kind: models.ErrZeroPriceVariant,
				Messages: []string{fmt.Sprintf("variant %q has no positive price", o.grouper.Name(m.rec))},
			})
			stats.DroppedVariants++
			continue
		}
		if label == "" {
			// A priced row stays sellable under a generic label.
			label = "Default"
			stats.Warnings = append(stats.Warnings, models.Warning{
				GroupID: group.ID, Line: m.rec.Line,
				Message: "variant has no derivable option label; using Default",
			})
		}
		others = append(others, variant{member: m, label: label, price: price, compareAt: compareAt})
	}
	if len(others) == 0 {
		return nil
	}

	p := members[parent]
	if price, compareAt, ok := o.resolvePrice(p.rec, p.fields); ok {
		if label := o.grouper.VariantLabel(p.rec, group.BaseName); label != "" {
			return append([]variant{{member: p, label: label, price: price, compareAt: compareAt}}, others...)
		}
	}
	return others
}

// resolvePrice applies the canonical precedence: sale price wins if
// positive, else regular price, else any other price-like source field.
func (o *Orchestrator) resolvePrice(rec models.RawRecord, fields models.MappedRecord) (price, compareAt string, ok bool) {
	sale, saleOK := transform.PriceValue(fields[models.ColPrice])
	regular, regOK := transform.PriceValue(fields[models.ColCompareAtPrice])

	if saleOK && sale.IsPositive() {
		if regOK && regular.GreaterThan(sale) {
			return sale.StringFixed(2), regular.StringFixed(2), true
		}
		return sale.StringFixed(2), "", true
	}
	if regOK && regular.IsPositive() {
		return regular.StringFixed(2), "", true
	}
	for _, col := range rec.Header {
		if !strings.Contains(strings.ToLower(col), "price") {
			continue
		}
		if d, found := transform.PriceValue(rec.Get(col)); found && d.IsPositive() {
			return d.StringFixed(2), "", true
		}
	}
	return "", "", false
}

// hasOwnPrice reports whether any price-like source field of the record is
// positive.
func hasOwnPrice(rec models.RawRecord) bool {
	for _, col := range rec.Header {
		if !strings.Contains(strings.ToLower(col), "price") {
			continue
		}
		if d, ok := transform.PriceValue(rec.Get(col)); ok && d.IsPositive() {
			return true
		}
	}
	return false
}

// uniqueHandle slugs the group's base name (falling back to the title) and
// disambiguates collisions across distinct groups with a numeric suffix.
func (o *Orchestrator) uniqueHandle(group models.ProductGroup, title string, seen map[string]int) string {
	src := group.BaseName
	if src == "" {
		src = title
	}
	h := transform.Handle(src)
	if h == "" {
		return ""
	}
	n := seen[h]
	seen[h] = n + 1
	if n > 0 {
		return fmt.Sprintf("%s-%d", h, n+1)
	}
	return h
}

func (o *Orchestrator) validateParent(row models.EmittedRow, group models.ProductGroup, line int, stats *models.Stats) bool {
	ok, errs, warns := o.validator.Validate(row)
	for _, w := range warns {
		stats.Warnings = append(stats.Warnings, models.Warning{GroupID: group.ID, Line: line, Message: w})
	}
	if !ok {
		stats.Errors = append(stats.Errors, models.ErrorRecord{
			GroupID: group.ID, Line: line, Kind: models.ErrValidation, Messages: errs,
		})
		return false
	}
	return true
}

func trackerFor(qty, mapped string) string {
	if qty != "" && qty != "0" {
		return "shopify"
	}
	return transform.InventoryTracker(mapped)
}

func policyFor(mapped string) string {
	return transform.InventoryPolicy(mapped)
}

// pad fills every template column so no field is ever absent from an
// emitted row.
func pad(row models.EmittedRow) {
	for _, col := range models.TemplateColumns {
		if _, ok := row[col]; !ok {
			row[col] = ""
		}
	}
}
