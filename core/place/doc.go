// Package place derives a (country code, city) candidate from a postcard
// identifier.
//
// Identifiers follow the naming convention <CC>_<CityTokens...>_<suffix>, where
// the suffix is an opaque random string added by the media host. Only the
// final path segment of the identifier is considered.
//
//	c, err := place.Parse("postcards/Countries/US_NewYork_x1y2z3")
//	// c == Candidate{CountryCode: "US", City: "New York"}
package place
