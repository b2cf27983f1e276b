package normalize

// countryAliases maps legacy or non-ISO two-letter codes to ISO 3166-1 alpha-2.
var countryAliases = map[string]string{
	"UK": "GB",
	"EL": "GR",
}

// cityAliases maps folded local-language city names to their common English form.
// Keys and values are already folded.
var cityAliases = map[string]string{
	"lisboa":       "lisbon",
	"praha":        "prague",
	"wien":         "vienna",
	"munchen":      "munich",
	"koln":         "cologne",
	"roma":         "rome",
	"firenze":      "florence",
	"venezia":      "venice",
	"napoli":       "naples",
	"milano":       "milan",
	"torino":       "turin",
	"kobenhavn":    "copenhagen",
	"warszawa":     "warsaw",
	"bruxelles":    "brussels",
	"brussel":      "brussels",
	"sevilla":      "seville",
	"athina":       "athens",
	"moskva":       "moscow",
	"den haag":     "the hague",
	"s gravenhage": "the hague",
}
