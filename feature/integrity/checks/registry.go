package checks

import (
	"fmt"
	"regexp"

	"postcard-gallery/core/geocode"
	"postcard-gallery/core/place"
	"postcard-gallery/core/reconcile"
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// CheckRegistry validates the points of a registry on their own.
func CheckRegistry(points []reconcile.TravelPoint) []Issue {
	var issues []Issue
	ids := make(map[string]int, len(points))
	places := make(map[string]string, len(points))

	for _, p := range points {
		ids[p.ID]++
		if ids[p.ID] == 2 {
			issues = append(issues, Issue{Kind: KindDuplicateID, Subject: p.ID})
		}

		if !countryCodePattern.MatchString(p.CountryCode) || place.CountryName(p.CountryCode) == "" {
			issues = append(issues, Issue{Kind: KindInvalidCountry, Subject: p.ID, Detail: fmt.Sprintf("country code %q", p.CountryCode)})
		}

		switch {
		case !p.HasCoordinates():
			issues = append(issues, Issue{Kind: KindMissingCoords, Subject: p.ID})
		case !(geocode.Point{Lat: *p.Lat, Lng: *p.Lng}).Valid():
			issues = append(issues, Issue{Kind: KindInvalidCoords, Subject: p.ID, Detail: fmt.Sprintf("%g, %g", *p.Lat, *p.Lng)})
		}

		key := p.PlaceKey()
		if other, ok := places[key]; ok {
			issues = append(issues, Issue{Kind: KindDuplicatePlace, Subject: p.ID, Detail: fmt.Sprintf("%s already used by %s", key, other)})
		} else {
			places[key] = p.ID
		}
	}

	return issues
}
