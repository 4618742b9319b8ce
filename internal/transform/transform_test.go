package transform_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/transform"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "19.99", "19.99"},
		{"integer", "25", "25.00"},
		{"currency symbol", "$19.99", "19.99"},
		{"currency code and spaces", "NOK 1299", "1299.00"},
		{"one decimal", "10.5", "10.50"},
		{"negative preserved", "-5", "-5.00"},
		{"empty", "", ""},
		{"garbage", "call for price", ""},
		{"lone dot", ".", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transform.Price(tc.in))
		})
	}
}

func TestPriceValue(t *testing.T) {
	d, ok := transform.PriceValue("$12.50")
	require.True(t, ok)
	assert.Equal(t, "12.50", d.StringFixed(2))

	_, ok = transform.PriceValue("n/a")
	assert.False(t, ok)

	d, ok = transform.PriceValue("0")
	require.True(t, ok)
	assert.False(t, d.IsPositive())
}

func TestInventoryQuantity(t *testing.T) {
	assert.Equal(t, "10", transform.InventoryQuantity("10"))
	assert.Equal(t, "10", transform.InventoryQuantity("10.0"))
	assert.Equal(t, "0", transform.InventoryQuantity("-3"))
	assert.Equal(t, "0", transform.InventoryQuantity(""))
	assert.Equal(t, "0", transform.InventoryQuantity("not tracked"))
	assert.Equal(t, "0", transform.InventoryQuantity("unknown"))
}

func TestInventoryTracker(t *testing.T) {
	assert.Equal(t, "shopify", transform.InventoryTracker("1"))
	assert.Equal(t, "not tracked", transform.InventoryTracker("0"))
	assert.Equal(t, "not tracked", transform.InventoryTracker("Not Tracked"))
	assert.Equal(t, "shopify", transform.InventoryTracker(""))
	assert.Equal(t, "shopify", transform.InventoryTracker("anything"))
}

func TestInventoryPolicy(t *testing.T) {
	assert.Equal(t, "continue", transform.InventoryPolicy("1"))
	assert.Equal(t, "continue", transform.InventoryPolicy("yes"))
	assert.Equal(t, "deny", transform.InventoryPolicy("0"))
	assert.Equal(t, "deny", transform.InventoryPolicy(""))
}

func TestHandle(t *testing.T) {
	assert.Equal(t, "classic-tee", transform.Handle("Classic Tee"))
	assert.Equal(t, "blue-shirt-xl", transform.Handle("  Blue  Shirt / XL! "))
	assert.Equal(t, "a-b", transform.Handle("A --- B"))
	assert.Equal(t, "", transform.Handle("???"))

	long := strings.Repeat("a", 300)
	assert.Len(t, transform.Handle(long), 255)
}

func TestTags(t *testing.T) {
	assert.Equal(t, "a,b,c", transform.Tags("a; b ;c"))
	assert.Equal(t, "a,b", transform.Tags("a, b"))
	assert.Equal(t, "", transform.Tags("  "))
	assert.Equal(t, "solo", transform.Tags("solo"))
}

func TestBooleanAndStatus(t *testing.T) {
	assert.Equal(t, "True", transform.Boolean("yes"))
	assert.Equal(t, "True", transform.Boolean("1"))
	assert.Equal(t, "False", transform.Boolean("0"))
	assert.Equal(t, "False", transform.Boolean(""))

	assert.Equal(t, "active", transform.Status("published"))
	assert.Equal(t, "draft", transform.Status("hidden"))
}

func TestSEO(t *testing.T) {
	assert.Equal(t, "Plain title", transform.SEO("<b>Plain title</b>", 70))
	long := strings.Repeat("x", 200)
	assert.Len(t, transform.SEO(long, 160), 160)

	t.Run("multibyte truncates on rune boundary", func(t *testing.T) {
		got := transform.SEO(strings.Repeat("ø", 100), 70)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 70, utf8.RuneCountInString(got))

		got = transform.SEO(strings.Repeat("€", 100), 70)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 70, utf8.RuneCountInString(got))
	})

	t.Run("short multibyte untouched", func(t *testing.T) {
		assert.Equal(t, "Bøylehåndtak", transform.SEO("Bøylehåndtak", 70))
	})
}

func TestImageList(t *testing.T) {
	urls := transform.ImageList(" https://a/1.jpg , https://a/2.jpg ,, ")
	assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg"}, urls)
	assert.Nil(t, transform.ImageList(""))
}

func TestBody(t *testing.T) {
	t.Run("plain text becomes paragraphs", func(t *testing.T) {
		got := transform.Body("First line.\nSecond line.")
		assert.Equal(t, "<h3>Overview</h3>\n<p>First line.</p>\n<p>Second line.</p>", got)
	})

	t.Run("escaped newlines normalized", func(t *testing.T) {
		got := transform.Body(`One.\nTwo.`)
		assert.Contains(t, got, "<p>One.</p>")
		assert.Contains(t, got, "<p>Two.</p>")
	})

	t.Run("existing markup kept", func(t *testing.T) {
		got := transform.Body("<p>Already HTML</p>")
		assert.Equal(t, "<h3>Overview</h3>\n<p>Already HTML</p>", got)
	})

	t.Run("script blocks stripped", func(t *testing.T) {
		got := transform.Body("<p>Safe</p><script>alert(1)</script>")
		assert.NotContains(t, got, "script")
		assert.Contains(t, got, "Safe")
	})

	t.Run("specifications section", func(t *testing.T) {
		got := transform.Body("Desc." + transform.SpecMarker + "Weight: 2kg")
		assert.Contains(t, got, "<h3>Overview</h3>")
		assert.Contains(t, got, "<h3>Specifications</h3>")
		assert.Contains(t, got, "<p>Weight: 2kg</p>")
	})

	t.Run("specs only", func(t *testing.T) {
		got := transform.Body(transform.SpecMarker + "Weight: 2kg")
		assert.NotContains(t, got, "Overview")
		assert.Contains(t, got, "<h3>Specifications</h3>")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", transform.Body(""))
	})
}
