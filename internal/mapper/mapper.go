// Package mapper applies the declarative mapping rules to one raw record at
// a time, producing destination field names with raw values. Formatting is
// the transformer's job; the orchestrator re-applies it per destination
// field after mapping.
package mapper

import (
	"strconv"
	"strings"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/mapping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/transform"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Mapper translates raw records using a rule configuration.
type Mapper struct {
	cfg *mapping.Config
}

// New creates a mapper over the given rule configuration.
func New(cfg *mapping.Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// Map applies, in order: direct renames, concatenations, conditional rules,
// and default fills, then merges the description-like source fields.
func (m *Mapper) Map(rec models.RawRecord) models.MappedRecord {
	out := models.MappedRecord{}

	for src, dest := range m.cfg.Mappings.Direct.Fields {
		if v := rec.Get(src); v != "" {
			out[dest] = v
		}
	}

	for _, rule := range m.cfg.Mappings.Concatenate.Fields {
		var parts []string
		for _, f := range rule.Fields {
			if v := rec.Get(f); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			sep := rule.Separator
			if sep == "" {
				sep = " "
			}
			out[rule.Target] = strings.Join(parts, sep)
		}
	}

	for _, rule := range m.cfg.Mappings.Conditional.Fields {
		cond := rule.Condition
		if cond.Field == "" {
			continue
		}
		if _, present := rec.Fields[cond.Field]; !present {
			continue
		}
		if evaluate(rec.Get(cond.Field), cond.Operator, cond.Value) {
			out[rule.Target] = cond.Then
		} else {
			out[rule.Target] = cond.Else
		}
	}

	for field, def := range m.cfg.Mappings.Default.Fields {
		if _, set := out[field]; !set {
			out[field] = def
		}
	}

	m.mergeDescription(rec, out)
	return out
}

// mergeDescription picks the first non-empty description-like field and
// appends any specification text behind the transformer's section marker.
func (m *Mapper) mergeDescription(rec models.RawRecord, out models.MappedRecord) {
	desc := out[models.ColDescription]
	if desc == "" {
		for _, f := range m.cfg.DescriptionSources {
			if v := rec.Get(f); v != "" {
				desc = v
				break
			}
		}
	}
	var specs string
	for _, f := range m.cfg.SpecificationSources {
		if v := rec.Get(f); v != "" {
			specs = v
			break
		}
	}
	switch {
	case desc == "" && specs == "":
		return
	case specs == "":
		out[models.ColDescription] = desc
	default:
		out[models.ColDescription] = desc + transform.SpecMarker + specs
	}
}

// evaluate runs one conditional comparison. Numeric operators on unparsable
// values evaluate false.
func evaluate(source, operator, compare string) bool {
	switch operator {
	case ">", "<", ">=", "<=":
		a, err1 := strconv.ParseFloat(strings.TrimSpace(source), 64)
		b, err2 := strconv.ParseFloat(strings.TrimSpace(compare), 64)
		if err1 != nil || err2 != nil {
			return false
		}
		switch operator {
		case ">":
			return a > b
		case "<":
			return a < b
		case ">=":
			return a >= b
		default:
			return a <= b
		}
	case "==":
		return source == compare
	case "!=":
		return source != compare
	case "contains":
		return strings.Contains(strings.ToLower(source), strings.ToLower(compare))
	case "empty":
		return strings.TrimSpace(source) == ""
	default:
		return false
	}
}
