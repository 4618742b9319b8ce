package models

import "strings"

// RawRecord is a single row from the source export. Fields is an open mapping
// of source column name to raw value; Header preserves the source column
// order so the first column can serve as a name fallback.
type RawRecord struct {
	Line   int // 1-based source row number, header is row 1
	Header []string
	Fields map[string]string
}

// Get returns the trimmed value of a source field, or "" if absent.
func (r RawRecord) Get(name string) string {
	return strings.TrimSpace(r.Fields[name])
}

// First returns the trimmed value of the first source column.
func (r RawRecord) First() string {
	if len(r.Header) == 0 {
		return ""
	}
	return r.Get(r.Header[0])
}

// Empty reports whether every field of the record is blank.
func (r RawRecord) Empty() bool {
	for _, v := range r.Fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// MappedRecord is the result of applying the field mapper to one RawRecord:
// destination field name to formatted value.
type MappedRecord map[string]string

// EmittedRow is one line of final output, keyed by template column name.
// Missing columns are filled with "" before writing, never left absent.
type EmittedRow map[string]string

// Clone returns a shallow copy of the row.
func (e EmittedRow) Clone() EmittedRow {
	out := make(EmittedRow, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ProductGroup is the ordered set of raw records sharing one ProductGroupID.
type ProductGroup struct {
	ID       string
	BaseName string
	Records  []RawRecord
}

// ErrorKind classifies why a group, row, or variant was excluded or flagged.
type ErrorKind string

const (
	ErrMissingImage     ErrorKind = "missing_image"
	ErrMissingPrice     ErrorKind = "missing_price"
	ErrZeroPriceVariant ErrorKind = "zero_price_variant"
	ErrValidation       ErrorKind = "validation"
	ErrProcessing       ErrorKind = "processing_error"
)

// ErrorRecord describes one excluded or flagged group/row. Accumulated by the
// orchestrator and written to the error report; never aborts the run.
type ErrorRecord struct {
	GroupID  string
	Line     int
	Kind     ErrorKind
	Messages []string
}

// Warning is an advisory note attached to a row that was still emitted.
type Warning struct {
	GroupID string
	Line    int
	Message string
}

// Stats accumulates counters over one migration run.
type Stats struct {
	TotalRows       int
	TotalGroups     int
	SkippedGroups   int
	DroppedVariants int
	ParentRows      int
	VariantRows     int
	ImageRows       int
	EmittedRows     int
	Errors          []ErrorRecord
	Warnings        []Warning
}
