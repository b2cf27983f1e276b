package checks

import (
	"postcard-gallery/core/media"
	"postcard-gallery/core/place"
	"postcard-gallery/core/reconcile"
)

// CheckPostcards cross-checks the registry of a batch with its postcards.
// Only points owned by batch are expected to link to a postcard of the folder,
// and hidden postcards are never reported as unmapped.
func CheckPostcards(points []reconcile.TravelPoint, resources []media.Resource, batch string) []Issue {
	var issues []Issue

	present := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		present[r.PublicID] = struct{}{}
	}

	mapped := make(map[string]struct{}, len(points))
	for _, p := range points {
		mapped[p.PlaceKey()] = struct{}{}
		if p.PostcardID == "" || p.SourceFolder != batch {
			continue
		}
		if _, ok := present[p.PostcardID]; !ok {
			issues = append(issues, Issue{Kind: KindOrphanPostcard, Subject: p.ID, Detail: p.PostcardID})
		}
	}

	for _, r := range resources {
		if r.Hidden() {
			continue
		}
		cand, err := place.Parse(r.PublicID)
		if err != nil {
			continue
		}
		if _, ok := mapped[cand.Key()]; !ok {
			issues = append(issues, Issue{Kind: KindUnmappedPostcard, Subject: r.PublicID, Detail: cand.Key()})
		}
	}

	return issues
}
