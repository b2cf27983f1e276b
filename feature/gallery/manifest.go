package gallery

import (
	"time"

	"postcard-gallery/core/utils"
)

// Place is the location parsed from a postcard identifier.
type Place struct {
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName,omitempty"`
}

// Postcard is one visible gallery entry.
type Postcard struct {
	ID        string            `json:"id"`
	Album     string            `json:"album"`
	URL       string            `json:"url,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Place     *Place            `json:"place,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Count is a named counter.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Manifest is the gallery index.
type Manifest struct {
	Folder      string     `json:"folder"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Hidden      int        `json:"hidden"`
	Postcards   []Postcard `json:"postcards"`
	Albums      []Count    `json:"albums"`
	Tags        []Count    `json:"tags"`
}

// WriteManifest atomically writes m to path.
func WriteManifest(path string, m *Manifest) error {
	return utils.WriteJSONFile(path, m)
}
