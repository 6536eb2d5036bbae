package domain

import "fmt"

// Field identifies a canonical column of the regional waste schema,
// independent of how the source spreadsheet happens to word its headers.
type Field string

const (
	FieldSido        Field = "sido"
	FieldSigungu     Field = "sigungu"
	FieldWasteType   Field = "waste_type"
	FieldTotalAmount Field = "total_amount"

	FieldRecycleAmount      Field = "recycle_amount"
	FieldIncinerationAmount Field = "incineration_amount"
	FieldLandfillAmount     Field = "landfill_amount"
	FieldOtherAmount        Field = "other_amount"

	FieldSelfRecycleAmount      Field = "self_recycle_amount"
	FieldSelfIncinerationAmount Field = "self_incineration_amount"
	FieldSelfLandfillAmount     Field = "self_landfill_amount"
	FieldSelfOtherAmount        Field = "self_other_amount"

	FieldConsignedRecycleAmount      Field = "consigned_recycle_amount"
	FieldConsignedIncinerationAmount Field = "consigned_incineration_amount"
	FieldConsignedLandfillAmount     Field = "consigned_landfill_amount"
	FieldConsignedOtherAmount        Field = "consigned_other_amount"

	FieldPublicRecycleAmount      Field = "public_recycle_amount"
	FieldPublicIncinerationAmount Field = "public_incineration_amount"
	FieldPublicLandfillAmount     Field = "public_landfill_amount"
	FieldPublicOtherAmount        Field = "public_other_amount"
)

// FixedWasteCategory is the waste_type stored for every regional record this
// pipeline produces (household waste). The spreadsheets carry finer-grained
// type rows, but only their aggregate rows are loaded.
const FixedWasteCategory = "생활(가정)폐기물"

// RegionalWasteRecord is one row of waste_generation_by_region: the yearly
// household-waste figures for a (province, district) pair, broken down by
// disposal method and operator type. Nil measures mean "unmeasured" in the
// source; zero means a verified zero or a sub-category the source omitted.
type RegionalWasteRecord struct {
	Year      int    `db:"year"`
	Sido      string `db:"sido"`
	Sigungu   string `db:"sigungu"`
	WasteType string `db:"waste_type"`

	TotalAmount *float64 `db:"total_amount"`

	RecycleAmount      *float64 `db:"recycle_amount"`
	IncinerationAmount *float64 `db:"incineration_amount"`
	LandfillAmount     *float64 `db:"landfill_amount"`
	OtherAmount        *float64 `db:"other_amount"`

	SelfRecycleAmount      *float64 `db:"self_recycle_amount"`
	SelfIncinerationAmount *float64 `db:"self_incineration_amount"`
	SelfLandfillAmount     *float64 `db:"self_landfill_amount"`
	SelfOtherAmount        *float64 `db:"self_other_amount"`

	ConsignedRecycleAmount      *float64 `db:"consigned_recycle_amount"`
	ConsignedIncinerationAmount *float64 `db:"consigned_incineration_amount"`
	ConsignedLandfillAmount     *float64 `db:"consigned_landfill_amount"`
	ConsignedOtherAmount        *float64 `db:"consigned_other_amount"`

	PublicRecycleAmount      *float64 `db:"public_recycle_amount"`
	PublicIncinerationAmount *float64 `db:"public_incineration_amount"`
	PublicLandfillAmount     *float64 `db:"public_landfill_amount"`
	PublicOtherAmount        *float64 `db:"public_other_amount"`
}

// Key renders the record's natural key for logs and reports.
func (r RegionalWasteRecord) Key() string {
	return fmt.Sprintf("%d/%s/%s", r.Year, r.Sido, r.Sigungu)
}

// measureColumns binds each canonical measure field to its struct field.
// It is the single source of truth for the fixed-width shape: the row
// builder zero-fills through it and the store reads upsert arguments from it.
var measureColumns = []struct {
	field Field
	ptr   func(*RegionalWasteRecord) **float64
}{
	{FieldRecycleAmount, func(r *RegionalWasteRecord) **float64 { return &r.RecycleAmount }},
	{FieldIncinerationAmount, func(r *RegionalWasteRecord) **float64 { return &r.IncinerationAmount }},
	{FieldLandfillAmount, func(r *RegionalWasteRecord) **float64 { return &r.LandfillAmount }},
	{FieldOtherAmount, func(r *RegionalWasteRecord) **float64 { return &r.OtherAmount }},
	{FieldSelfRecycleAmount, func(r *RegionalWasteRecord) **float64 { return &r.SelfRecycleAmount }},
	{FieldSelfIncinerationAmount, func(r *RegionalWasteRecord) **float64 { return &r.SelfIncinerationAmount }},
	{FieldSelfLandfillAmount, func(r *RegionalWasteRecord) **float64 { return &r.SelfLandfillAmount }},
	{FieldSelfOtherAmount, func(r *RegionalWasteRecord) **float64 { return &r.SelfOtherAmount }},
	{FieldConsignedRecycleAmount, func(r *RegionalWasteRecord) **float64 { return &r.ConsignedRecycleAmount }},
	{FieldConsignedIncinerationAmount, func(r *RegionalWasteRecord) **float64 { return &r.ConsignedIncinerationAmount }},
	{FieldConsignedLandfillAmount, func(r *RegionalWasteRecord) **float64 { return &r.ConsignedLandfillAmount }},
	{FieldConsignedOtherAmount, func(r *RegionalWasteRecord) **float64 { return &r.ConsignedOtherAmount }},
	{FieldPublicRecycleAmount, func(r *RegionalWasteRecord) **float64 { return &r.PublicRecycleAmount }},
	{FieldPublicIncinerationAmount, func(r *RegionalWasteRecord) **float64 { return &r.PublicIncinerationAmount }},
	{FieldPublicLandfillAmount, func(r *RegionalWasteRecord) **float64 { return &r.PublicLandfillAmount }},
	{FieldPublicOtherAmount, func(r *RegionalWasteRecord) **float64 { return &r.PublicOtherAmount }},
}

// MeasureFields lists the sixteen sub-measure columns in storage order.
func MeasureFields() []Field {
	fields := make([]Field, len(measureColumns))
	for i, col := range measureColumns {
		fields[i] = col.field
	}
	return fields
}

// Measure returns the value of a sub-measure column by canonical field.
func (r *RegionalWasteRecord) Measure(f Field) *float64 {
	for _, col := range measureColumns {
		if col.field == f {
			return *col.ptr(r)
		}
	}
	return nil
}

// WasteFacilityRecord is one row of waste_company_by_region: a recycling
// facility as reported by the registry API for a given year, enriched with
// geocoded coordinates. Latitude/Longitude stay nil when the address could
// not be resolved.
type WasteFacilityRecord struct {
	Year           int    `db:"year"`
	Name           string `db:"entrps_nm"`
	Representative string `db:"rprsntv"`
	Address        string `db:"adres"`
	Phone          string `db:"telno"`
	EmployeeCount  int    `db:"empl_cnt"`
	Area           string `db:"area"`
	WasteHandled   string `db:"wste"`
	ProductName    string `db:"product_name"`
	ProcessMethod  string `db:"process_mth"`

	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`
}

// Key renders the record's natural key for logs and reports.
func (r WasteFacilityRecord) Key() string {
	return fmt.Sprintf("%d/%s/%s", r.Year, r.Name, r.Address)
}

// SourceDocument is the raw shape extracted from one spreadsheet: the two
// stacked header rows plus the data rows below them. It is transient; nothing
// is retained across documents.
type SourceDocument struct {
	Path        string
	CategoryRow []string
	SubRow      []string
	Rows        [][]string
}
