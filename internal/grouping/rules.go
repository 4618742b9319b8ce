package grouping

import (
	"regexp"
	"strings"
)

// Rule is one suffix-stripping step. Rules are applied in order, repeatedly,
// until the name stops changing, so mis-grouping is fixed by editing the
// rule list rather than the code.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

var colorTokens = []string{
	"Black", "White", "Red", "Blue", "Green", "Yellow", "Orange", "Pink", "Purple",
	"Brown", "Grey", "Gray", "Silver", "Gold", "Navy", "Teal", "Cyan", "Magenta",
	"Beige", "Tan", "Maroon", "Olive", "Lime", "Aqua", "Coral", "Salmon", "Khaki",
	"Burgundy", "Charcoal", "Cream", "Ivory", "Mint", "Peach", "Turquoise", "Violet",
	"Amber", "Bronze", "Copper", "Indigo", "Lavender", "Mauve", "Mustard", "Plum",
	"Rose", "Ruby", "Sage", "Scarlet", "Taupe", "Wine", "Azure", "Champagne",
}

var sizeTokens = []string{
	"Extra Small", "Extra Large", "XSmall", "XLarge", "XXXXL", "XXXL", "XXL", "XXS",
	"2XL", "3XL", "4XL", "5XL", "XL", "XS", "Small", "Medium", "Large",
	"Petite", "Regular", "Tall", "Short", "Plus", "Oversized", "S", "M", "L",
}

func alternation(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

// DefaultRules is the stock rule list: size tokens, color tokens, bare
// numbers, size/color pairs, short title-case words, and parenthetical
// notes, each anchored to the end of the name.
func DefaultRules() []Rule {
	sizes := alternation(sizeTokens)
	colors := alternation(colorTokens)
	return []Rule{
		{"size-color pair", regexp.MustCompile(`(?i)\s*-\s*(` + sizes + `)\s*/\s*(` + colors + `)\s*$`)},
		{"color-size pair", regexp.MustCompile(`(?i)\s*-\s*(` + colors + `)\s*/\s*(` + sizes + `)\s*$`)},
		{"size suffix", regexp.MustCompile(`(?i)\s*[-(\s]+(` + sizes + `)(\s*[/)]\s*[^,]+)?\s*[)\s]*$`)},
		{"color suffix", regexp.MustCompile(`(?i)\s*[-(\s]+(` + colors + `)(\s*[/)]\s*[^,]+)?\s*[)\s]*$`)},
		{"bare number", regexp.MustCompile(`\s*[-(\s]+(\d+\.?\d*)\s*[)\s]*$`)},
		{"title-case word", regexp.MustCompile(`\s*-\s*[A-Z][a-z]+(\s*/\s*[A-Z][a-z]+)?\s*$`)},
		{"parenthetical", regexp.MustCompile(`\s*\([^)]+\)\s*$`)},
	}
}

// NormalizeBaseName strips trailing variant markers from a product name by
// applying the rules to a fixed point. Used only as a grouping fallback,
// never as the emitted title.
func NormalizeBaseName(name string, rules []Rule) string {
	n := strings.TrimSpace(name)
	for {
		prev := n
		for _, r := range rules {
			n = r.Pattern.ReplaceAllString(n, "")
		}
		if n == prev {
			break
		}
	}
	n = strings.TrimSpace(n)
	n = strings.TrimSpace(strings.TrimRight(n, "-"))
	n = strings.TrimSpace(strings.TrimRight(n, "("))
	return n
}

var (
	sizeTokenRe  = regexp.MustCompile(`(?i)^(` + alternation(sizeTokens) + `)$`)
	colorTokenRe = regexp.MustCompile(`(?i)^(` + alternation(colorTokens) + `)$`)
)

// ClassifyOption names the option axis a variant label belongs to. Size is
// the conservative default the destination accepts for arbitrary labels.
func ClassifyOption(label string) string {
	l := strings.TrimSpace(label)
	switch {
	case IsSizeToken(l):
		return "Size"
	case colorTokenRe.MatchString(l):
		return "Color"
	default:
		return "Size"
	}
}

// IsSizeToken reports whether the label is a recognized size token.
func IsSizeToken(label string) bool {
	return sizeTokenRe.MatchString(strings.TrimSpace(label))
}
