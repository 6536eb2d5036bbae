package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrNoTotalRows marks a document that had recognizable headers but no
// aggregate rows left after filtering. Skipped, never fatal.
var ErrNoTotalRows = errors.New("no total rows after filtering")

// totalTokens qualify a row as an aggregate row. Source files use both
// spellings, sometimes with internal spacing.
var totalTokens = []string{"합계", "총계"}

// NormalizeCategory removes all whitespace from a category cell so that
// irregular spacing ("총  계") cannot defeat the total-row filter.
func NormalizeCategory(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsTotalRow reports whether the row's category cell marks it as an
// aggregate row. Rows without a category column never qualify.
func IsTotalRow(mapping HeaderMapping, row []string) bool {
	col := mapping.Column(FieldWasteType)
	if col < 0 {
		return false
	}
	category := NormalizeCategory(cellAt(row, col))
	for _, token := range totalTokens {
		if strings.Contains(category, token) {
			return true
		}
	}
	return false
}

// BuildRegionalRecord converts one qualifying data row into a fixed-width
// canonical record. Measure columns the source omitted are zero-filled;
// present-but-empty cells stay nil so "unmeasured" survives to storage.
// A malformed numeric cell fails just this record.
func BuildRegionalRecord(year int, mapping HeaderMapping, row []string) (RegionalWasteRecord, error) {
	rec := RegionalWasteRecord{
		Year:      year,
		Sido:      strings.TrimSpace(cellAt(row, mapping.Column(FieldSido))),
		Sigungu:   strings.TrimSpace(cellAt(row, mapping.Column(FieldSigungu))),
		WasteType: FixedWasteCategory,
	}

	total, err := measureAt(mapping, row, FieldTotalAmount)
	if err != nil {
		return RegionalWasteRecord{}, err
	}
	rec.TotalAmount = total

	for _, col := range measureColumns {
		v, err := measureAt(mapping, row, col.field)
		if err != nil {
			return RegionalWasteRecord{}, err
		}
		*col.ptr(&rec) = v
	}
	return rec, nil
}

// measureAt resolves one numeric column: absent column → zero, empty or
// null-marker cell → nil, otherwise the parsed value.
func measureAt(mapping HeaderMapping, row []string, f Field) (*float64, error) {
	col := mapping.Column(f)
	if col < 0 {
		zero := 0.0
		return &zero, nil
	}
	v, err := parseAmount(cellAt(row, col))
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", f, err)
	}
	return v, nil
}

// parseAmount coerces a spreadsheet cell to a nullable number. Empty cells
// and the "-" marker mean unmeasured; thousands separators are stripped.
func parseAmount(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return &v, nil
}
