package kakao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
)

type fakeGeocoder struct {
	coords *domain.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*domain.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

func TestPacedGeocoder_PausesAfterCall(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &fakeGeocoder{coords: &domain.Coordinates{Lat: 37.5, Lon: 127.0}}
	paced := NewPacedGeocoder(inner, 300*time.Millisecond, clock)

	done := make(chan struct{})
	go func() {
		defer close(done)
		coords, err := paced.Geocode(context.Background(), "서울")
		assert.NoError(t, err)
		assert.Equal(t, inner.coords, coords)
	}()

	// The geocoder must be waiting on the pacing timer before we advance.
	clock.BlockUntil(1)
	assert.Equal(t, 1, inner.calls)

	select {
	case <-done:
		t.Fatal("returned before the pacing interval elapsed")
	default:
	}

	clock.Advance(300 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for paced call to finish")
	}
}

func TestPacedGeocoder_PausesOnErrorToo(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &fakeGeocoder{err: errors.New("boom")}
	paced := NewPacedGeocoder(inner, 300*time.Millisecond, clock)

	done := make(chan error, 1)
	go func() {
		_, err := paced.Geocode(context.Background(), "서울")
		done <- err
	}()

	clock.BlockUntil(1)
	clock.Advance(300 * time.Millisecond)

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for paced call to finish")
	}
}

func TestPacedGeocoder_ZeroIntervalSkipsPause(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &fakeGeocoder{coords: &domain.Coordinates{Lat: 1, Lon: 2}}
	paced := NewPacedGeocoder(inner, 0, clock)

	coords, err := paced.Geocode(context.Background(), "부산")
	require.NoError(t, err)
	assert.NotNil(t, coords)
}

func TestPacedGeocoder_ContextCancelCutsPauseShort(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &fakeGeocoder{coords: &domain.Coordinates{Lat: 1, Lon: 2}}
	paced := NewPacedGeocoder(inner, time.Hour, clock)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = paced.Geocode(ctx, "서울")
	}()

	clock.BlockUntil(1)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not unblock the pacing pause")
	}
}
