package domain

import "context"

// Geocoder resolves a normalized postcode to a Location.
// Zero results surface as ErrPostcodeNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, postcode string) (Location, error)
}

// PlacesSearcher runs one Nearby Search query around a coordinate.
// A provider-side non-OK status (other than zero results) surfaces as a
// ProviderStatusError; zero results is an empty slice and a nil error.
type PlacesSearcher interface {
	Nearby(ctx context.Context, lat, lng float64, radiusMeters int, q NearbyQuery) ([]PlaceCandidate, error)
}

// CrimeSource lists recent street-level crimes around a coordinate.
type CrimeSource interface {
	StreetCrimes(ctx context.Context, lat, lng float64) ([]CrimeReport, error)
}

// FloodSource lists active flood warnings within distKM of a coordinate.
type FloodSource interface {
	Warnings(ctx context.Context, lat, lng float64, distKM float64) ([]FloodWarning, error)
}

// Cache is the session memoization store. ttlSec 0 means no expiry.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
