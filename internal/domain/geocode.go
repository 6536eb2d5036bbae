package domain

import (
	"context"
	"log/slog"
)

// EnrichWithCoordinates fills latitude/longitude on a facility record.
// Lookup errors and not-found results both leave the pair unresolved
// (graceful degradation): one bad address never stops the run.
func EnrichWithCoordinates(ctx context.Context, rec WasteFacilityRecord, geocoder Geocoder, logger *slog.Logger) WasteFacilityRecord {
	if geocoder == nil || rec.Address == "" {
		return rec
	}

	coords, err := geocoder.Geocode(ctx, rec.Address)
	if err != nil {
		logger.Warn("geocoding failed",
			"facility", rec.Name,
			"address", rec.Address,
			"error", err,
		)
		return rec
	}
	if coords == nil {
		return rec
	}

	rec.Latitude = &coords.Lat
	rec.Longitude = &coords.Lon
	return rec
}
