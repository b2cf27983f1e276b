package reconcile

import (
	"context"
	"math"

	"postcard-gallery/core/geocode"
	"postcard-gallery/core/normalize"
)

// TravelPoint is one persisted place marker of the registry.
type TravelPoint struct {
	// ID is the stable identifier, a slug of country code and city.
	ID string `json:"id"`
	// City is the display city name.
	City string `json:"city"`
	// CountryCode is the ISO 3166-1 alpha-2 code.
	CountryCode string `json:"countryCode"`
	// CountryName is the English country name.
	CountryName string `json:"countryName,omitempty"`
	// Lat and Lng are null until the place is geocoded.
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	// PostcardID links the point to a media host resource identifier.
	PostcardID  string `json:"postcardId,omitempty"`
	Description string `json:"description,omitempty"`
	// SourceFolder is the batch that created or last refreshed the point.
	// Empty for legacy, hand-curated points.
	SourceFolder string `json:"sourceFolder,omitempty"`
}

// HasCoordinates reports whether both coordinates are set and finite.
func (p TravelPoint) HasCoordinates() bool {
	if p.Lat == nil || p.Lng == nil {
		return false
	}
	return finite(*p.Lat) && finite(*p.Lng)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PlaceKey returns the "<CC>:<normalized city>" key of the point.
func (p TravelPoint) PlaceKey() string {
	return normalize.PlaceKey(p.CountryCode, p.City)
}

// CityKey returns the normalized city of the point.
func (p TravelPoint) CityKey() string {
	return normalize.CityKey(p.City)
}

func (p TravelPoint) equal(o TravelPoint) bool {
	return p.ID == o.ID &&
		p.City == o.City &&
		p.CountryCode == o.CountryCode &&
		p.CountryName == o.CountryName &&
		sameFloat(p.Lat, o.Lat) &&
		sameFloat(p.Lng, o.Lng) &&
		p.PostcardID == o.PostcardID &&
		p.Description == o.Description &&
		p.SourceFolder == o.SourceFolder
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b || (math.IsNaN(*a) && math.IsNaN(*b))
}

// Geocoder resolves a city to coordinates.
// *geocode.Service implements it.
type Geocoder interface {
	Lookup(ctx context.Context, city, countryCode string) (geocode.Outcome, error)
}

// Options controls one reconciliation run.
type Options struct {
	// BatchLabel is the provenance label of the batch, usually the folder argument.
	BatchLabel string
	// Limit caps the number of resources processed; zero means no cap.
	Limit int
	// NoGeocode disables coordinate lookups.
	NoGeocode bool
	// Prune removes stale batch points and superseded legacy points.
	Prune bool
	// Policy decides when a matched point is refreshed; nil means SameBatchRefresh.
	Policy RefreshPolicy
}

// MatchKind names the key that matched a resource to an existing point.
type MatchKind string

const (
	MatchNone       MatchKind = ""
	MatchPlaceID    MatchKind = "place_id"
	MatchPostcardID MatchKind = "postcard_id"
	MatchPlace      MatchKind = "place"
	MatchBatchCity  MatchKind = "batch_city"
)

// ChangeKind is the outcome for one point.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeUpdated   ChangeKind = "updated"
	ChangeUnchanged ChangeKind = "unchanged"
	ChangePruned    ChangeKind = "pruned"
	ChangeDropped   ChangeKind = "dropped"
)

// Change is one audit entry of a run.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	PointID    string     `json:"point_id"`
	PostcardID string     `json:"postcard_id,omitempty"`
	MatchedBy  MatchKind  `json:"matched_by,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// Stats are the counters of a run.
type Stats struct {
	// Processed counts resources considered (after the limit).
	Processed int `json:"processed"`
	// Added counts new points.
	Added int `json:"added"`
	// Updated counts resources matched to an existing point.
	Updated int `json:"updated"`
	// Skipped counts resources that produced no point.
	Skipped int `json:"skipped"`
	// Geocoded counts coordinates resolved through the geocoder.
	Geocoded int `json:"geocoded"`
	// CacheHits counts the geocoded coordinates served from the cache.
	CacheHits int `json:"cache_hits"`
	// Pruned counts points removed by pruning.
	Pruned int `json:"pruned"`
	// Dropped counts points removed for lacking coordinates.
	Dropped int `json:"dropped"`
}

// Result is the output of Reconcile.
type Result struct {
	Points   []TravelPoint `json:"points"`
	Stats    Stats         `json:"stats"`
	Warnings []string      `json:"warnings"`
	Changes  []Change      `json:"changes"`
}

// Modified reports whether the run changed the registry.
func (r *Result) Modified() bool {
	for _, c := range r.Changes {
		if c.Kind != ChangeUnchanged {
			return true
		}
	}
	return false
}
