// Package domain models Korean regional waste statistics.
//
// # Data Sources
//
// Regional waste generation figures come from government-published
// spreadsheets (one workbook per province per year, converted from .xls by an
// external utility). Facility data comes from the public recycling-info
// registry API. Both feed the same canonical schema and are persisted with
// natural-key upserts, so re-running an import converges to the same state.
//
// # Spreadsheet Header Conventions
//
// The workbooks carry a two-row stacked header: a category row (row index 2)
// and a sub-category row (row index 3). Categories that span several
// sub-columns are merged cells, so only the anchor column carries the
// category text; [FlattenHeader] carries it right across the span. A column
// label is the category and sub-category joined with "_", blank components
// omitted:
//
//	"총계" / "재활용"  →  "총계_재활용"   (aggregate / recycled)
//	"시도" / ""        →  "시도"          (province)
//
// Labels map to canonical fields through a fixed lookup table; anything the
// table does not know is dropped. The total column is the exception: its
// label embeds the data year ("2022발생량", "2021발생량", …) and is matched
// by the "발생량" suffix instead, since the prefix drifts between releases.
//
// # Total Rows and Null Markers
//
// Only aggregate ("total") rows are loaded. A row qualifies when its
// category cell, with all whitespace removed, contains "합계" or "총계" —
// source files are inconsistent about both the token and its internal
// spacing ("총  계" appears in the wild).
//
// Empty numeric cells and the "-" marker mean "unmeasured" and stay null all
// the way to storage. A sub-category column missing from the workbook
// entirely means "no such disposal channel in this region" and is filled
// with zero, keeping every stored record fixed-width.
//
// # Natural Keys
//
// Regional records are keyed by (year, sido, sigungu); facility records by
// (year, facility name, address). The loader upserts on those keys, so the
// pipelines are safe to re-run over revised source data.
package domain
