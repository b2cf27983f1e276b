package place

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       Candidate
	}{
		{"Simple", "FR_Paris_ynppct", Candidate{CountryCode: "FR", City: "Paris"}},
		{"WithFolder", "postcards/Countries/FR_Paris_ynppct", Candidate{CountryCode: "FR", City: "Paris"}},
		{"LowercaseCode", "fr_Paris_abc", Candidate{CountryCode: "FR", City: "Paris"}},
		{"CamelCase", "US_NewYork_x1", Candidate{CountryCode: "US", City: "New York"}},
		{"Hyphen", "FR_Saint-Malo_x1", Candidate{CountryCode: "FR", City: "Saint Malo"}},
		{"MultipleTokens", "US_San_Francisco_x1", Candidate{CountryCode: "US", City: "San Francisco"}},
		{"AliasedCode", "UK_London_x1", Candidate{CountryCode: "GB", City: "London"}},
		{"EmptyTokensIgnored", "DE__Berlin__x1", Candidate{CountryCode: "DE", City: "Berlin"}},
		{"Unicode", "PT_São-Miguel_x1", Candidate{CountryCode: "PT", City: "São Miguel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.identifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got.City, "_")
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{"Empty", ""},
		{"SingleToken", "Paris"},
		{"OnlyCodeAndSuffix", "FR_ynppct"},
		{"ThreeLetterCode", "FRA_Paris_x1"},
		{"DigitCode", "F1_Paris_x1"},
		{"TrailingSlash", "postcards/Countries/"},
		{"CityOnlyHyphens", "FR_--_x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.identifier)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifier))
		})
	}
}

func TestParse_CountryCodeIsUppercasedInput(t *testing.T) {
	codes := []string{"fr", "De", "it", "JP", "br"}
	for _, code := range codes {
		got, err := Parse(code + "_Some-City_suffix")
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(code), got.CountryCode)
		assert.Equal(t, "Some City", got.City)
	}
}

func TestCandidate_Key(t *testing.T) {
	c, err := Parse("PT_Lisboa_x1")
	require.NoError(t, err)
	assert.Equal(t, "PT:lisbon", c.Key())
}

func TestCountryName(t *testing.T) {
	assert.Equal(t, "France", CountryName("FR"))
	assert.Equal(t, "Japan", CountryName("JP"))
	assert.Equal(t, "", CountryName("QQ1"))
	assert.Equal(t, "", CountryName(""))
}
