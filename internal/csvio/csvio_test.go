package csvio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/csvio"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestRead(t *testing.T) {
	path := writeFile(t, []byte("Name,SKU,Price\nTee,T-1,10\nMug,M-1,12\n"))

	src, err := csvio.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "SKU", "Price"}, src.Header)
	require.Len(t, src.Records, 2)

	assert.Equal(t, 2, src.Records[0].Line)
	assert.Equal(t, "Tee", src.Records[0].Get("Name"))
	assert.Equal(t, 3, src.Records[1].Line)
	assert.Equal(t, "M-1", src.Records[1].Get("SKU"))
}

func TestReadStripsBOM(t *testing.T) {
	path := writeFile(t, []byte("\xef\xbb\xbfName,SKU\nTee,T-1\n"))

	src, err := csvio.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Name", src.Header[0])
}

func TestReadWindows1252Fallback(t *testing.T) {
	// 0xE9 is 'é' in Windows-1252 and invalid as standalone UTF-8.
	path := writeFile(t, []byte("Name\nCaf\xe9\n"))

	src, err := csvio.Read(path)
	require.NoError(t, err)
	require.Len(t, src.Records, 1)
	assert.Equal(t, "Café", src.Records[0].Get("Name"))
}

func TestReadShortRows(t *testing.T) {
	path := writeFile(t, []byte("Name,SKU,Price\nTee\n"))

	src, err := csvio.Read(path)
	require.NoError(t, err)
	require.Len(t, src.Records, 1)
	assert.Equal(t, "Tee", src.Records[0].Get("Name"))
	assert.Equal(t, "", src.Records[0].Get("Price"))
}

func TestReadMissingFile(t *testing.T) {
	_, err := csvio.Read("/nonexistent.csv")
	assert.Error(t, err)
}

func TestWriteAppliesRenameAndAllowList(t *testing.T) {
	row := models.EmittedRow{
		models.ColTitle:  "Tee",
		models.ColHandle: "tee",
		models.ColPrice:  "10.00",
		models.ColSKU:    "T-1",
	}
	for _, col := range models.TemplateColumns {
		if _, ok := row[col]; !ok {
			row[col] = ""
		}
	}

	path := filepath.Join(t.TempDir(), "out", "products.csv")
	require.NoError(t, csvio.Write(path, []models.EmittedRow{row}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "Handle")
	assert.Contains(t, lines[0], "Variant Price")
	assert.Contains(t, lines[0], "Body (HTML)")
	assert.NotContains(t, lines[0], "URL handle")

	src, err := csvio.Read(path)
	require.NoError(t, err)
	require.Len(t, src.Records, 1)
	assert.Equal(t, "tee", src.Records[0].Get("Handle"))
	assert.Equal(t, "10.00", src.Records[0].Get("Variant Price"))
	assert.Equal(t, "T-1", src.Records[0].Get("Variant SKU"))
}

func TestWriteRawRoundTrip(t *testing.T) {
	header := []string{"Name", "SKU"}
	records := []models.RawRecord{
		{Line: 2, Header: header, Fields: map[string]string{"Name": "Tee", "SKU": "T-1"}},
		{Line: 3, Header: header, Fields: map[string]string{"Name": "Mug", "SKU": "M-1"}},
	}

	path := filepath.Join(t.TempDir(), "batch_1.csv")
	require.NoError(t, csvio.WriteRaw(path, header, records))

	src, err := csvio.Read(path)
	require.NoError(t, err)
	assert.Equal(t, header, src.Header)
	require.Len(t, src.Records, 2)
	assert.Equal(t, "Mug", src.Records[1].Get("Name"))
}
