package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase", "PARIS", "paris"},
		{"Diacritics", "São Paulo", "sao paulo"},
		{"Cedilla", "Besançon", "besancon"},
		{"NonDecomposable", "Tromsø", "tromso"},
		{"Eszett", "Gießen", "giessen"},
		{"Ampersand", "Trinidad & Tobago", "trinidad and tobago"},
		{"PunctuationRuns", "  Saint--Malo!! ", "saint malo"},
		{"Apostrophe", "L'Aquila", "l aquila"},
		{"Digits", "Area 51", "area 51"},
		{"Empty", "", ""},
		{"OnlyPunctuation", "-_-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestCityKey_Aliases(t *testing.T) {
	assert.Equal(t, CityKey("Lisboa"), CityKey("lisbon"))
	assert.NotEqual(t, CityKey("Lisboa"), CityKey("Porto"))
	assert.Equal(t, "munich", CityKey("München"))
	assert.Equal(t, "the hague", CityKey("'s-Gravenhage"))
	assert.Equal(t, "copenhagen", CityKey("København"))
}

func TestCountryName(t *testing.T) {
	assert.Equal(t, "cote d ivoire", CountryName("Côte d'Ivoire"))
	assert.Equal(t, CountryName("BOSNIA & HERZEGOVINA"), CountryName("bosnia and herzegovina"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "fr-paris", Slugify("FR Paris"))
	assert.Equal(t, "sao-paulo", Slugify("São  Paulo"))
	assert.Equal(t, "rock-and-roll", Slugify("Rock & Roll"))
	assert.Equal(t, "", Slugify("!!"))
}

func TestCountryCode(t *testing.T) {
	assert.Equal(t, "FR", CountryCode(" fr "))
	assert.Equal(t, "GB", CountryCode("uk"))
	assert.Equal(t, "GR", CountryCode("EL"))
	assert.Equal(t, "XYZ", CountryCode("xyz"))
}

func TestPlaceKey(t *testing.T) {
	assert.Equal(t, "PT:lisbon", PlaceKey("pt", "Lisboa"))
	assert.Equal(t, PlaceKey("GB", "London"), PlaceKey("UK", "london"))
}

func TestFold_Deterministic(t *testing.T) {
	in := "Ærøskøbing & Co."
	first := Fold(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Fold(in))
	}
	assert.Equal(t, "aeroskobing and co", first)
}
