package kakao

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
)

// PacedGeocoder wraps a Geocoder and pauses after every call so the
// upstream API's rate limit is never exceeded. The pause happens on
// errors and empty results too, since the quota was still spent.
type PacedGeocoder struct {
	inner    domain.Geocoder
	interval time.Duration
	clock    clockwork.Clock
}

// NewPacedGeocoder creates a pacing decorator around a geocoder.
func NewPacedGeocoder(inner domain.Geocoder, interval time.Duration, clock clockwork.Clock) *PacedGeocoder {
	return &PacedGeocoder{inner: inner, interval: interval, clock: clock}
}

// Geocode delegates to the wrapped geocoder, then sleeps for the
// configured interval. Context cancellation cuts the pause short.
func (p *PacedGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	coords, err := p.inner.Geocode(ctx, address)

	if p.interval > 0 {
		select {
		case <-p.clock.After(p.interval):
		case <-ctx.Done():
		}
	}

	return coords, err
}
