package domain

import "context"

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text address to coordinates. A nil result with a
// nil error means the service had no match for the address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}
