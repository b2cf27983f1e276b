package media

import (
	"context"
	"errors"
	"strings"
	"time"

	"postcard-gallery/core/utils"
)

var (
	// ErrMissingCredentials is returned when the configured backend has no credentials.
	ErrMissingCredentials = errors.New("missing media host credentials")
	// ErrUnexpectedStatus is returned for non-2xx responses from the media host.
	ErrUnexpectedStatus = errors.New("unexpected media host status")
)

// TagHidden marks resources excluded from the public gallery.
const TagHidden = "hidden"

// MetadataPlaceID is the metadata key holding an explicit travel point id.
const MetadataPlaceID = "place_id"

// Resource is one image record of the media host.
type Resource struct {
	// PublicID is the host identifier, including its folder path.
	PublicID string
	// Folder is the folder path holding the image.
	Folder string
	// Tags are free-form labels.
	Tags []string
	// Metadata is free-form key/value context.
	Metadata map[string]string
	// CreatedAt is the upload time.
	CreatedAt time.Time
	// URL is the delivery URL, when the backend provides one.
	URL string
}

// HasTag reports whether the resource carries tag (case-insensitive).
func (r Resource) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Hidden reports whether the resource is tagged hidden or flagged hidden in metadata.
func (r Resource) Hidden() bool {
	return r.HasTag(TagHidden) || utils.ToBool(r.Metadata[TagHidden])
}

// Query selects the images of one folder.
type Query struct {
	// Folder is the full folder path (see FolderPath).
	Folder string
	// MaxResults is the page size; backends apply their own default when zero.
	MaxResults int
}

// Page is one page of search results.
type Page struct {
	Resources []Resource
	// NextCursor is empty on the last page.
	NextCursor string
}

// Source is the media host contract.
type Source interface {
	// Search returns the page of q starting at cursor ("" for the first page).
	Search(ctx context.Context, q Query, cursor string) (*Page, error)
}
