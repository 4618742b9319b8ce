// Package transform holds the per-field formatting rules that turn raw
// source values into destination-format strings. Every function is stateless
// and total: the worst case is an empty string or a safe default.
package transform

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// SpecMarker separates merged description text from appended
// specification/feature text inside a mapped description value. The body
// builder consumes it when splitting into sections.
const SpecMarker = "\x1f"

const maxHandleLen = 255

var (
	priceStripRe    = regexp.MustCompile(`[^0-9.]`)
	handleInvalidRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	handleSepRe     = regexp.MustCompile(`[\s-]+`)
	scriptRe        = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
)

// Price strips currency symbols and separators and formats the value with
// exactly two decimal places. Unparsable values become "". Negative values
// are formatted as-is; the validator flags them later.
func Price(value string) string {
	s := priceStripRe.ReplaceAllString(strings.TrimSpace(value), "")
	if s == "" || s == "." {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(value), "-") {
		d = d.Neg()
	}
	return d.StringFixed(2)
}

// PriceValue parses a raw price and reports whether it is usable. The
// returned decimal is only meaningful when ok is true.
func PriceValue(value string) (decimal.Decimal, bool) {
	formatted := Price(value)
	if formatted == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(formatted)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// InventoryQuantity coerces a raw quantity to a non-negative integer string.
// Unparsable or negative values become "0".
func InventoryQuantity(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	switch s {
	case "", "not tracked", "not_tracked", "none", "n/a", "na":
		return "0"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return "0"
	}
	return strconv.Itoa(int(f))
}

// QuantityValue parses an already-normalized quantity string.
func QuantityValue(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// InventoryTracker normalizes to the two-valued tracker enum. Empty and
// unrecognized values default to "shopify" so inventory stays visible.
func InventoryTracker(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	switch s {
	case "0", "0.0":
		return "not tracked"
	case "1", "1.0":
		return "shopify"
	}
	if strings.Contains(s, "not tracked") {
		return "not tracked"
	}
	return "shopify"
}

// InventoryPolicy normalizes "continue selling when out of stock" to
// deny/continue. Unrecognized values fall back to deny.
func InventoryPolicy(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y", "continue", "allow":
		return "continue"
	default:
		return "deny"
	}
}

// Handle produces a URL-safe slug: lowercase, [a-z0-9-] only, single
// hyphens, capped length.
func Handle(value string) string {
	h := strings.ToLower(strings.TrimSpace(value))
	h = handleInvalidRe.ReplaceAllString(h, "")
	h = handleSepRe.ReplaceAllString(h, "-")
	h = strings.Trim(h, "-")
	if len(h) > maxHandleLen {
		h = strings.TrimRight(h[:maxHandleLen], "-")
	}
	return h
}

// Tags splits on ';' or ',', trims, drops empties, and rejoins with ','.
func Tags(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	var tags []string
	for _, t := range strings.Split(s, sep) {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ",")
}

// Boolean normalizes published-style flags to "True"/"False".
func Boolean(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRUE", "1", "YES", "Y", "ACTIVE", "PUBLISHED":
		return "True"
	default:
		return "False"
	}
}

// Status normalizes product status to "active"/"draft".
func Status(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRUE", "1", "YES", "Y", "ACTIVE", "PUBLISHED":
		return "active"
	default:
		return "draft"
	}
}

// SEO strips markup and caps the value at limit runes.
func SEO(value string, limit int) string {
	s := strings.TrimSpace(tagRe.ReplaceAllString(value, ""))
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		s = strings.TrimSpace(string([]rune(s)[:limit]))
	}
	return s
}

// ImageList splits a comma-separated image field into trimmed, non-empty
// URLs.
func ImageList(value string) []string {
	var urls []string
	for _, u := range strings.Split(value, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Apply dispatches a raw value to the formatter for the named destination
// field. Fields without a specific rule pass through trimmed.
func Apply(field, value string) string {
	switch field {
	case models.ColPrice, models.ColCompareAtPrice:
		return Price(value)
	case models.ColQuantity:
		return InventoryQuantity(value)
	case models.ColTracker:
		return InventoryTracker(value)
	case models.ColPolicy:
		return InventoryPolicy(value)
	case models.ColHandle:
		return Handle(value)
	case models.ColTags:
		return Tags(value)
	case models.ColDescription:
		return Body(value)
	case models.ColPublished, models.ColRequiresShip, models.ColChargeTax, models.ColGiftCard:
		return Boolean(value)
	case models.ColStatus:
		return Status(value)
	case models.ColImageURL, models.ColVariantImageURL:
		return strings.Join(ImageList(value), ",")
	case models.ColSEOTitle:
		return SEO(value, 70)
	case models.ColSEODescription:
		return SEO(value, 160)
	default:
		return strings.TrimSpace(value)
	}
}
