// Package csvio reads source exports into raw records and writes the
// destination row set.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Source is a fully read source file: column order plus one RawRecord per
// data row.
type Source struct {
	Path    string
	Header  []string
	Records []models.RawRecord
}

// Read loads a source CSV. Handles BOM, lazy quoting, variable field
// counts, and falls back to Windows-1252 when the file is not valid UTF-8.
func Read(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	data = decode(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	src := &Source{Path: path, Header: header}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// Bad lines are skipped, not fatal.
			continue
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		src.Records = append(src.Records, models.RawRecord{
			Line:   line,
			Header: header,
			Fields: fields,
		})
	}
	return src, nil
}

// decode strips a UTF-8 BOM and re-decodes non-UTF-8 input as Windows-1252.
func decode(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}
