package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenHeader(t *testing.T) {
	t.Run("joins category and sub-category", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{"총계"},
			[]string{"재활용"},
		)
		assert.Equal(t, []string{"총계_재활용"}, labels)
	})

	t.Run("single populated row keeps its label", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{"시도", ""},
			[]string{"", "시도"},
		)
		assert.Equal(t, []string{"시도", "시도"}, labels)
	})

	t.Run("carries merged category across its span", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{"총계", "", "", ""},
			[]string{"재활용", "소각", "매립", "기타"},
		)
		assert.Equal(t, []string{"총계_재활용", "총계_소각", "총계_매립", "총계_기타"}, labels)
	})

	t.Run("fully empty column ends the span", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{"총계", "", "", ""},
			[]string{"재활용", "", "소각", ""},
		)
		assert.Equal(t, []string{"총계_재활용", "", "소각", ""}, labels)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{" 자가처리 "},
			[]string{" 매립 "},
		)
		assert.Equal(t, []string{"자가처리_매립"}, labels)
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		labels := FlattenHeader(
			[]string{"시도", "시군구", "총계"},
			[]string{"", "", "재활용", "소각"},
		)
		assert.Equal(t, []string{"시도", "시군구", "총계_재활용", "총계_소각"}, labels)
	})
}

func TestMapHeader(t *testing.T) {
	t.Run("maps labels by position-independent lookup", func(t *testing.T) {
		m := MapHeader(
			[]string{"폐기물 종류", "시군구", "시도", "총계"},
			[]string{"", "", "", "재활용"},
		)

		assert.Equal(t, 0, m.Column(FieldWasteType))
		assert.Equal(t, 1, m.Column(FieldSigungu))
		assert.Equal(t, 2, m.Column(FieldSido))
		assert.Equal(t, 3, m.Column(FieldRecycleAmount))
		assert.Empty(t, m.Unrecognized)
	})

	t.Run("year-prefixed total column matches by suffix", func(t *testing.T) {
		for _, label := range []string{"2022발생량", "2021발생량", "발생량"} {
			m := MapHeader([]string{label}, nil)
			assert.Equal(t, 0, m.Column(FieldTotalAmount), label)
		}
	})

	t.Run("sub-labeled generation column is not a total", func(t *testing.T) {
		m := MapHeader([]string{"총계"}, []string{"발생량"})
		assert.Equal(t, -1, m.Column(FieldTotalAmount))
		assert.Contains(t, m.Unrecognized, "총계_발생량")
	})

	t.Run("unknown labels are dropped and reported", func(t *testing.T) {
		m := MapHeader(
			[]string{"시도", "관리구역", "총계"},
			[]string{"", "", "재활용"},
		)

		require.True(t, m.Recognized())
		assert.Equal(t, -1, m.Column(Field("관리구역")))
		assert.Equal(t, []string{"관리구역"}, m.Unrecognized)
	})

	t.Run("empty category with known sub-category maps", func(t *testing.T) {
		m := MapHeader([]string{""}, []string{"시도"})
		assert.Equal(t, 0, m.Column(FieldSido))
	})

	t.Run("nothing recognized", func(t *testing.T) {
		m := MapHeader([]string{"이름", "주소"}, nil)
		assert.False(t, m.Recognized())
		assert.Len(t, m.Unrecognized, 2)
	})

	t.Run("duplicate labels keep first occurrence and report the rest", func(t *testing.T) {
		m := MapHeader([]string{"시도", "시도"}, nil)
		assert.Equal(t, 0, m.Column(FieldSido))
		assert.Equal(t, []string{"시도"}, m.Unrecognized)
	})

	t.Run("duplicate total column reported", func(t *testing.T) {
		m := MapHeader([]string{"시도", "2022발생량", "2021발생량"}, nil)
		assert.Equal(t, 1, m.Column(FieldTotalAmount))
		assert.Equal(t, []string{"2021발생량"}, m.Unrecognized)
	})
}
