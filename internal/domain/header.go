package domain

import (
	"errors"
	"strings"
)

// ErrNoRecognizedHeaders marks a document whose flattened header matched
// nothing in the canonical table. The document is skipped, never fatal.
var ErrNoRecognizedHeaders = errors.New("no recognized header labels")

// canonicalLabels maps a synthesized header label to its canonical field.
// The total column is absent on purpose: its label embeds the data year and
// is matched by suffix in MapHeader instead.
var canonicalLabels = map[string]Field{
	"시도":     FieldSido,
	"시군구":    FieldSigungu,
	"폐기물 종류": FieldWasteType,

	"총계_재활용": FieldRecycleAmount,
	"총계_소각":  FieldIncinerationAmount,
	"총계_매립":  FieldLandfillAmount,
	"총계_기타":  FieldOtherAmount,

	"자가처리_재활용": FieldSelfRecycleAmount,
	"자가처리_소각":  FieldSelfIncinerationAmount,
	"자가처리_매립":  FieldSelfLandfillAmount,
	"자가처리_기타":  FieldSelfOtherAmount,

	"위탁처리_재활용": FieldConsignedRecycleAmount,
	"위탁처리_소각":  FieldConsignedIncinerationAmount,
	"위탁처리_매립":  FieldConsignedLandfillAmount,
	"위탁처리_기타":  FieldConsignedOtherAmount,

	"공공처리_재활용": FieldPublicRecycleAmount,
	"공공처리_소각":  FieldPublicIncinerationAmount,
	"공공처리_매립":  FieldPublicLandfillAmount,
	"공공처리_기타":  FieldPublicOtherAmount,
}

// totalColumnSuffix matches the year-prefixed generation-total column
// ("2022발생량", "2021발생량", …) whose prefix drifts between releases.
const totalColumnSuffix = "발생량"

// HeaderMapping is the flattened form of a document's stacked header:
// canonical fields resolved to column positions, plus the labels the
// canonical table did not recognize (drift candidates for cmd/validate).
type HeaderMapping struct {
	Columns      map[Field]int
	Unrecognized []string
}

// Recognized reports whether the header matched any canonical field at all.
func (m HeaderMapping) Recognized() bool { return len(m.Columns) > 0 }

// Column returns the position of a canonical field, or -1 when the source
// spreadsheet has no such column.
func (m HeaderMapping) Column(f Field) int {
	i, ok := m.Columns[f]
	if !ok {
		return -1
	}
	return i
}

// FlattenHeader synthesizes one label per column from the two stacked header
// rows. Non-empty trimmed components are joined with "_". A category cell
// merged across several sub-columns only carries text in its anchor column,
// so the last seen category is carried right while the sub row keeps
// producing values; a fully empty column ends the span.
func FlattenHeader(category, sub []string) []string {
	n := len(category)
	if len(sub) > n {
		n = len(sub)
	}

	labels := make([]string, n)
	carry := ""
	for i := 0; i < n; i++ {
		cat := strings.TrimSpace(cellAt(category, i))
		s := strings.TrimSpace(cellAt(sub, i))

		switch {
		case cat != "":
			carry = cat
		case s != "":
			cat = carry
		default:
			carry = ""
			continue
		}

		labels[i] = joinLabel(cat, s)
	}
	return labels
}

// MapHeader flattens the stacked header and resolves each label against the
// canonical table. Order-independent: columns are found by label, never by
// position. Duplicate labels keep their first occurrence.
func MapHeader(category, sub []string) HeaderMapping {
	m := HeaderMapping{Columns: make(map[Field]int)}

	for i, label := range FlattenHeader(category, sub) {
		if label == "" {
			continue
		}
		field, ok := canonicalLabels[label]
		if !ok && strings.HasSuffix(label, totalColumnSuffix) && !strings.Contains(label, "_") {
			field, ok = FieldTotalAmount, true
		}
		if !ok {
			m.Unrecognized = append(m.Unrecognized, label)
			continue
		}
		// A repeated label keeps its first column; the duplicate is
		// surfaced as drift so cmd/validate can flag the collision.
		if _, dup := m.Columns[field]; dup {
			m.Unrecognized = append(m.Unrecognized, label)
			continue
		}
		m.Columns[field] = i
	}
	return m
}

func joinLabel(category, sub string) string {
	switch {
	case category == "":
		return sub
	case sub == "":
		return category
	default:
		return category + "_" + sub
	}
}

// cellAt reads a cell from a possibly ragged row; spreadsheet readers trim
// trailing empties, so out-of-range means blank.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
