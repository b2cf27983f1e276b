package geocode

import (
	"context"
	"math"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both coordinates are finite and in range.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Entry is one cached lookup result.
type Entry struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city"`
	CountryCode string  `json:"countryCode"`
}

// Point returns the entry's coordinates.
func (e Entry) Point() Point {
	return Point{Lat: e.Lat, Lng: e.Lng}
}

// Query is a single geocoding request.
type Query struct {
	City        string
	CountryCode string
}

// Outcome describes the result of Service.Lookup.
type Outcome struct {
	// Point holds the coordinates when Found is true.
	Point Point
	// Found is false when neither the cache nor the service had a result.
	Found bool
	// Cached is true when the result came from the cache without a network call.
	Cached bool
}

// Client is the external geocoding service.
type Client interface {
	// Search returns the single best match restricted to q.CountryCode,
	// or nil without error when the service has no result.
	Search(ctx context.Context, q Query) (*Point, error)
}

// Store persists lookup results keyed by normalize.PlaceKey.
type Store interface {
	// Get returns the entry stored under key.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Put records an entry under key.
	Put(ctx context.Context, key string, entry Entry) error
	// Flush persists pending writes.
	Flush(ctx context.Context) error
	// Len returns the number of cached entries.
	Len() int
}
