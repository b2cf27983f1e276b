package reconcile

import "postcard-gallery/core/media"

// prune removes batch points whose postcard vanished from the batch and legacy
// points superseded by a surviving batch point of the same city. Membership is
// checked against every fetched resource, not only the processed ones.
func (r *run) prune(resources []media.Resource) {
	batch := r.opts.BatchLabel
	if batch == "" {
		return
	}

	present := make(map[string]struct{}, len(resources))
	for _, res := range resources {
		present[res.PublicID] = struct{}{}
	}

	reasons := make([]string, len(r.points))
	for i, p := range r.points {
		if p.SourceFolder != batch || p.PostcardID == "" {
			continue
		}
		if _, ok := present[p.PostcardID]; !ok {
			reasons[i] = "postcard " + p.PostcardID + " no longer in " + batch
		}
	}
	for i, p := range r.points {
		if p.SourceFolder != "" {
			continue
		}
		if by := r.supersededBy(i, reasons); by != "" {
			reasons[i] = "superseded by " + by
		}
	}

	kept := make([]TravelPoint, 0, len(r.points))
	for i, p := range r.points {
		if reasons[i] == "" {
			kept = append(kept, p)
			continue
		}
		r.result.Stats.Pruned++
		r.record(Change{Kind: ChangePruned, PointID: p.ID, PostcardID: p.PostcardID, Reason: reasons[i]})
	}

	r.points = kept
	r.reindex()
}

// supersededBy returns the id of a different, surviving batch point with the
// same city as the legacy point at i, or "".
func (r *run) supersededBy(i int, reasons []string) string {
	legacy := r.points[i]
	for _, j := range r.idx.byBatchCity[legacy.CityKey()] {
		if j != i && reasons[j] == "" && r.points[j].ID != legacy.ID {
			return r.points[j].ID
		}
	}
	return ""
}
