package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds covers letters that have no canonical decomposition.
var letterFolds = strings.NewReplacer(
	"ø", "o",
	"ł", "l",
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ı", "i",
)

// Fold lowercases s, strips diacritics, spells "&" as "and" and collapses
// every run of non-alphanumeric characters to a single space.
func Fold(s string) string {
	s = strings.ToLower(s)
	s = stripMarks(s)
	s = letterFolds.Replace(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// stripMarks decomposes s and drops combining marks ("é" -> "e").
func stripMarks(s string) string {
	// Transformers carry state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CountryName returns the comparison key for a country name.
func CountryName(s string) string {
	return Fold(s)
}

// CityKey returns the comparison key for a city name, resolving known
// alternate spellings to one form.
func CityKey(s string) string {
	key := Fold(s)
	if alias, ok := cityAliases[key]; ok {
		return alias
	}
	return key
}

// Slugify returns a hyphen-joined key suitable for identifiers.
func Slugify(s string) string {
	return strings.ReplaceAll(Fold(s), " ", "-")
}

// CountryCode trims and uppercases a country code and resolves legacy aliases.
// It does not validate the result.
func CountryCode(s string) string {
	code := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := countryAliases[code]; ok {
		return alias
	}
	return code
}

// PlaceKey joins a normalized country code and city key ("FR:paris").
func PlaceKey(countryCode, city string) string {
	return CountryCode(countryCode) + ":" + CityKey(city)
}
