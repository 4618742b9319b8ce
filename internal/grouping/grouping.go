// Package grouping clusters raw source rows into logical products. Every
// record maps to exactly one group key; records sharing a key are the same
// product.
package grouping

import (
	"strings"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Grouper derives group keys and partitions records. Key derivation is
// deterministic and pure.
type Grouper struct {
	rules []Rule

	// Source field names, matched exactly.
	ParentLinkField string
	TypeField       string
	SKUField        string
	NameField       string
}

// New creates a grouper with the given suffix-stripping rules.
func New(rules []Rule) *Grouper {
	return &Grouper{
		rules:           rules,
		ParentLinkField: "Parent",
		TypeField:       "Type",
		SKUField:        "SKU",
		NameField:       "Name",
	}
}

// NewDefault creates a grouper with the stock rule list.
func NewDefault() *Grouper {
	return New(DefaultRules())
}

// Name returns the record's product name, falling back to the first column.
func (g *Grouper) Name(rec models.RawRecord) string {
	if v := rec.Get(g.NameField); v != "" {
		return v
	}
	return rec.First()
}

// BaseName returns the record's name with variant suffixes stripped.
func (g *Grouper) BaseName(rec models.RawRecord) string {
	return NormalizeBaseName(g.Name(rec), g.rules)
}

// Key derives the ProductGroupID. Priority: explicit parent linkage, then
// SKU for rows typed as a concrete product or variant, then the normalized
// base name, then the raw name.
func (g *Grouper) Key(rec models.RawRecord) string {
	if parent := rec.Get(g.ParentLinkField); parent != "" && parent != "0" {
		return "parent:" + parent
	}
	if typed(rec.Get(g.TypeField)) {
		if sku := rec.Get(g.SKUField); sku != "" {
			return "sku:" + sku
		}
	}
	if base := g.BaseName(rec); base != "" {
		return "name:" + strings.ToLower(base)
	}
	return "raw:" + strings.ToLower(g.Name(rec))
}

func typed(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "simple", "standalone", "variation", "variant":
		return true
	}
	return false
}

// Partition groups records by key, preserving first-seen order of both
// groups and their members. The order is a contract: batch splitting
// downstream relies on reproducible group order across runs.
func (g *Grouper) Partition(records []models.RawRecord) []models.ProductGroup {
	index := map[string]int{}
	var groups []models.ProductGroup

	for _, rec := range records {
		key := g.Key(rec)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			base := g.BaseName(rec)
			if base == "" {
				base = g.Name(rec)
			}
			groups = append(groups, models.ProductGroup{ID: key, BaseName: base})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}

// VariantLabel derives the option label distinguishing a record inside its
// group: the name's suffix relative to the base name, else the trailing SKU
// segment, else the SKU itself.
func (g *Grouper) VariantLabel(rec models.RawRecord, baseName string) string {
	name := g.Name(rec)
	if baseName != "" && len(name) > len(baseName) &&
		strings.EqualFold(name[:len(baseName)], baseName) {
		suffix := strings.TrimSpace(name[len(baseName):])
		suffix = strings.Trim(suffix, "-/() ")
		if suffix != "" {
			return suffix
		}
	}
	sku := rec.Get(g.SKUField)
	if i := strings.LastIndexAny(sku, "-_"); i >= 0 && i < len(sku)-1 {
		return sku[i+1:]
	}
	return sku
}
