package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestIsTotalRow(t *testing.T) {
	mapping := MapHeader(
		[]string{"시도", "시군구", "폐기물 종류"},
		nil,
	)

	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{"plain total token", "합계", true},
		{"alternate token", "총계", true},
		{"irregular internal spacing", "총  계", true},
		{"token inside longer label", "소계(합계)", true},
		{"detail row", "재활용", false},
		{"empty category", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := []string{"서울", "중구", tt.category}
			assert.Equal(t, tt.want, IsTotalRow(mapping, row))
		})
	}

	t.Run("no category column never qualifies", func(t *testing.T) {
		m := MapHeader([]string{"시도"}, nil)
		assert.False(t, IsTotalRow(m, []string{"합계"}))
	})
}

func TestBuildRegionalRecord(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량", "총계", "", "", ""},
			[]string{"", "", "", "", "재활용", "소각", "매립", "기타"},
		)
		row := []string{"서울", "중구", "합계", "100.5", "60", "20", "15.5", "5"}

		rec, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)

		assert.Equal(t, 2022, rec.Year)
		assert.Equal(t, "서울", rec.Sido)
		assert.Equal(t, "중구", rec.Sigungu)
		assert.Equal(t, FixedWasteCategory, rec.WasteType)
		assert.Equal(t, ptr(100.5), rec.TotalAmount)
		assert.Equal(t, ptr(60.0), rec.RecycleAmount)
		assert.Equal(t, ptr(20.0), rec.IncinerationAmount)
		assert.Equal(t, ptr(15.5), rec.LandfillAmount)
		assert.Equal(t, ptr(5.0), rec.OtherAmount)
	})

	t.Run("missing columns are zero-filled", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량"},
			nil,
		)
		row := []string{"서울", "중구", "합계", "100"}

		rec, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)

		assert.Equal(t, ptr(100.0), rec.TotalAmount)
		for _, f := range MeasureFields() {
			v := rec.Measure(f)
			require.NotNil(t, v, "field %s must be filled, not null", f)
			assert.Equal(t, 0.0, *v, "field %s", f)
		}
	})

	t.Run("empty and null-marker cells stay null", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량", "총계", ""},
			[]string{"", "", "", "", "재활용", "소각"},
		)
		row := []string{"부산", "해운대구", "합계", "", "-", "12"}

		rec, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)

		assert.Nil(t, rec.TotalAmount)
		assert.Nil(t, rec.RecycleAmount)
		assert.Equal(t, ptr(12.0), rec.IncinerationAmount)
	})

	t.Run("thousands separators are stripped", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량"},
			nil,
		)
		row := []string{"경기", "수원시", "합계", "1,234.5"}

		rec, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)
		assert.Equal(t, ptr(1234.5), rec.TotalAmount)
	})

	t.Run("malformed numeric fails the record", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량"},
			nil,
		)
		row := []string{"서울", "중구", "합계", "n/a"}

		_, err := BuildRegionalRecord(2022, mapping, row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "total_amount")
	})

	t.Run("short row reads as blanks", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량"},
			nil,
		)
		row := []string{"서울"}

		rec, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)
		assert.Equal(t, "서울", rec.Sido)
		assert.Empty(t, rec.Sigungu)
		assert.Nil(t, rec.TotalAmount)
	})

	t.Run("identical rows build identical records", func(t *testing.T) {
		mapping := MapHeader(
			[]string{"시도", "시군구", "폐기물 종류", "2022발생량", "공공처리", ""},
			[]string{"", "", "", "", "재활용", "소각"},
		)
		row := []string{"대구", "중구", "합계", "50", "30", "20"}

		a, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)
		b, err := BuildRegionalRecord(2022, mapping, row)
		require.NoError(t, err)

		assert.Empty(t, cmp.Diff(a, b))
	})
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "합계", NormalizeCategory(" 합 계 "))
	assert.Equal(t, "총계", NormalizeCategory("총\t계"))
	assert.Equal(t, "", NormalizeCategory("   "))
}
