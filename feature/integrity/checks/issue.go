package checks

// Issue kinds.
const (
	KindDuplicateID      = "duplicate_id"
	KindDuplicatePlace   = "duplicate_place"
	KindInvalidCountry   = "invalid_country"
	KindMissingCoords    = "missing_coordinates"
	KindInvalidCoords    = "invalid_coordinates"
	KindOrphanPostcard   = "orphan_postcard"
	KindUnmappedPostcard = "unmapped_postcard"
)

// Issue is one integrity finding.
type Issue struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail,omitempty"`
}
