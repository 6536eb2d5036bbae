package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	coords *Coordinates
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string) (*Coordinates, error) {
	m.calls++
	return m.coords, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichWithCoordinates_NilGeocoder(t *testing.T) {
	rec := WasteFacilityRecord{Name: "한국자원순환", Address: "서울 중구"}

	result := EnrichWithCoordinates(context.Background(), rec, nil, discardLogger())

	assert.Nil(t, result.Latitude)
	assert.Nil(t, result.Longitude)
}

func TestEnrichWithCoordinates_EmptyAddress(t *testing.T) {
	geo := &mockGeocoder{coords: &Coordinates{Lat: 37.5, Lon: 127.0}}
	rec := WasteFacilityRecord{Name: "무명업체", Address: ""}

	result := EnrichWithCoordinates(context.Background(), rec, geo, discardLogger())

	assert.Nil(t, result.Latitude)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichWithCoordinates_Success(t *testing.T) {
	geo := &mockGeocoder{coords: &Coordinates{Lat: 37.56667, Lon: 126.97806}}
	rec := WasteFacilityRecord{Name: "한국자원순환", Address: "서울 중구 세종대로 110"}

	result := EnrichWithCoordinates(context.Background(), rec, geo, discardLogger())

	require.NotNil(t, result.Latitude)
	assert.InDelta(t, 37.56667, *result.Latitude, 1e-9)
	require.NotNil(t, result.Longitude)
	assert.InDelta(t, 126.97806, *result.Longitude, 1e-9)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichWithCoordinates_LookupErrorDegrades(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("quota exceeded")}
	rec := WasteFacilityRecord{Name: "한국자원순환", Address: "서울 중구"}

	result := EnrichWithCoordinates(context.Background(), rec, geo, discardLogger())

	assert.Nil(t, result.Latitude)
	assert.Nil(t, result.Longitude)
}

func TestEnrichWithCoordinates_NotFoundDegrades(t *testing.T) {
	geo := &mockGeocoder{coords: nil}
	rec := WasteFacilityRecord{Name: "한국자원순환", Address: "어딘지 모를 곳"}

	result := EnrichWithCoordinates(context.Background(), rec, geo, discardLogger())

	assert.Nil(t, result.Latitude)
	assert.Nil(t, result.Longitude)
}
