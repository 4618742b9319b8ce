// Package validator checks assembled rows for required-field presence and
// per-field format validity. It reports; the orchestrator decides whether a
// finding excludes the row.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

var (
	handleRe = regexp.MustCompile(`^[a-z0-9-]+$`)
	urlRe    = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?(?:/?|[/?]\S+)$`)
)

// Validator validates emitted rows.
type Validator struct {
	Required []string
}

// New creates a validator with the given required destination fields.
func New(required []string) *Validator {
	return &Validator{Required: required}
}

// Validate checks one row. Errors make the row structurally invalid;
// warnings are advisory.
func (v *Validator) Validate(row models.EmittedRow) (ok bool, errs, warns []string) {
	for _, field := range v.Required {
		if strings.TrimSpace(row[field]) == "" {
			errs = append(errs, fmt.Sprintf("missing required field %q", field))
		}
	}

	for _, field := range []string{models.ColPrice, models.ColCompareAtPrice} {
		if val := row[field]; val != "" && !validPrice(val) {
			errs = append(errs, fmt.Sprintf("invalid price in %q: %s", field, val))
		}
	}

	if qty := row[models.ColQuantity]; qty != "" && !validQuantity(qty) {
		errs = append(errs, fmt.Sprintf("invalid inventory quantity: %s", qty))
	}

	if h := row[models.ColHandle]; h != "" && !handleRe.MatchString(h) {
		errs = append(errs, fmt.Sprintf("invalid handle: %s", h))
	}

	for _, field := range []string{models.ColImageURL, models.ColVariantImageURL} {
		for _, bad := range invalidURLs(row[field]) {
			warns = append(warns, fmt.Sprintf("invalid image URL in %q: %s", field, bad))
		}
	}

	if p := row[models.ColPublished]; p != "" && p != "True" && p != "False" {
		warns = append(warns, fmt.Sprintf("published should be True/False, got: %s", p))
	}
	if s := row[models.ColStatus]; s != "" && s != "active" && s != "draft" {
		warns = append(warns, fmt.Sprintf("status should be active/draft, got: %s", s))
	}
	if t := row[models.ColTracker]; t != "" && t != "shopify" && t != "not tracked" {
		errs = append(errs, fmt.Sprintf("invalid inventory tracker: %s", t))
	}
	if p := row[models.ColPolicy]; p != "" && p != "deny" && p != "continue" {
		errs = append(errs, fmt.Sprintf("invalid inventory policy: %s", p))
	}

	return len(errs) == 0, errs, warns
}

// validPrice accepts a non-negative number with at most two decimals.
func validPrice(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return false
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return false
	}
	return true
}

func validQuantity(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

func invalidURLs(field string) []string {
	var bad []string
	for _, u := range strings.Split(field, ",") {
		u = strings.TrimSpace(u)
		if u != "" && !urlRe.MatchString(u) {
			bad = append(bad, u)
		}
	}
	return bad
}
