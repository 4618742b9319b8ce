// Package taxonomy resolves source category values through a static lookup
// table into destination taxonomy values.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy selects what happens to a category missing from the table.
type Strategy string

const (
	StrategyClear   Strategy = "clear"   // drop the value
	StrategyDefault Strategy = "default" // substitute DefaultCategory
	StrategyWarn    Strategy = "warn"    // pass through verbatim
)

// Table is a flat source-category to destination-category lookup.
type Table struct {
	Categories       map[string]string `yaml:"categories"`
	FallbackStrategy Strategy          `yaml:"fallback_strategy"`
	DefaultCategory  string            `yaml:"default_category"`
}

// Load reads a taxonomy table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy table: %w", err)
	}
	if t.FallbackStrategy == "" {
		t.FallbackStrategy = StrategyClear
	}
	if t.Categories == nil {
		t.Categories = map[string]string{}
	}
	return &t, nil
}

// Empty returns a table with no entries and the clear strategy.
func Empty() *Table {
	return &Table{Categories: map[string]string{}, FallbackStrategy: StrategyClear}
}

// PassThrough returns a table with no entries that hands every normalized
// category through unchanged. Used when no taxonomy file is configured.
func PassThrough() *Table {
	return &Table{Categories: map[string]string{}, FallbackStrategy: StrategyWarn}
}

// Normalize takes the first comma-separated alternative and collapses
// duplicate '>' path segments.
func Normalize(raw string) string {
	first := raw
	if i := strings.Index(raw, ","); i >= 0 {
		first = raw[:i]
	}
	segments := strings.Split(first, ">")
	var out []string
	seen := map[string]bool{}
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" || seen[strings.ToLower(seg)] {
			continue
		}
		seen[strings.ToLower(seg)] = true
		out = append(out, seg)
	}
	return strings.Join(out, " > ")
}

// Resolve maps a raw category to its destination value, applying the
// fallback strategy when unmapped. ok reports whether the table had an
// explicit entry.
func (t *Table) Resolve(raw string) (value string, ok bool) {
	norm := Normalize(raw)
	if norm == "" {
		return "", false
	}
	if dest, found := t.lookup(norm); found {
		return dest, true
	}
	switch t.FallbackStrategy {
	case StrategyDefault:
		return t.DefaultCategory, false
	case StrategyWarn:
		return norm, false
	default:
		return "", false
	}
}

func (t *Table) lookup(norm string) (string, bool) {
	if dest, ok := t.Categories[norm]; ok {
		return dest, true
	}
	// Table keys may use tighter spacing around '>'.
	for src, dest := range t.Categories {
		if strings.EqualFold(Normalize(src), norm) {
			return dest, true
		}
	}
	return "", false
}
