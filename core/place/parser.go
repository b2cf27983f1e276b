package place

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"postcard-gallery/core/normalize"
)

// ErrInvalidIdentifier is returned when an identifier does not follow the
// <CC>_<city>_<suffix> convention.
var ErrInvalidIdentifier = errors.New("cannot parse place")

var (
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	camelBoundary      = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
)

// Candidate is the place parsed from one identifier.
type Candidate struct {
	// CountryCode is an uppercase ISO 3166-1 alpha-2 code, aliases resolved.
	CountryCode string
	// City is the human-readable city name, never empty.
	City string
}

// Key returns the registry/cache key for the candidate.
func (c Candidate) Key() string {
	return normalize.PlaceKey(c.CountryCode, c.City)
}

// Parse extracts a Candidate from the final path segment of identifier.
func Parse(identifier string) (Candidate, error) {
	segment := identifier
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}

	var tokens []string
	for _, tok := range strings.Split(segment, "_") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) < 2 {
		return Candidate{}, fmt.Errorf("%w: %q has fewer than 2 tokens", ErrInvalidIdentifier, identifier)
	}

	code := normalize.CountryCode(tokens[0])
	if !countryCodePattern.MatchString(code) {
		return Candidate{}, fmt.Errorf("%w: %q has invalid country code %q", ErrInvalidIdentifier, identifier, tokens[0])
	}

	// The last token is the media host's random suffix.
	city := cityFromTokens(tokens[1 : len(tokens)-1])
	if city == "" {
		return Candidate{}, fmt.Errorf("%w: %q has no city", ErrInvalidIdentifier, identifier)
	}

	return Candidate{CountryCode: code, City: city}, nil
}

// cityFromTokens turns "NewYork", "Saint-Malo" style tokens into words.
func cityFromTokens(tokens []string) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = camelBoundary.ReplaceAllString(tok, "$1 $2")
		tok = strings.ReplaceAll(tok, "-", " ")
		words = append(words, tok)
	}
	return strings.Join(strings.Fields(strings.Join(words, " ")), " ")
}
