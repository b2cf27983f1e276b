package reconcile

// index maps the four lookup keys to positions in the working point list.
// It is rebuilt from scratch after every mutation.
type index struct {
	byID        map[string]int
	byPostcard  map[string]int
	byPlace     map[string]int
	byBatchCity map[string][]int
}

func buildIndex(points []TravelPoint, batch string) *index {
	idx := &index{
		byID:        make(map[string]int, len(points)),
		byPostcard:  make(map[string]int, len(points)),
		byPlace:     make(map[string]int, len(points)),
		byBatchCity: make(map[string][]int),
	}

	for i, p := range points {
		owned := batch != "" && p.SourceFolder == batch

		if _, ok := idx.byID[p.ID]; !ok && p.ID != "" {
			idx.byID[p.ID] = i
		}
		if _, ok := idx.byPostcard[p.PostcardID]; !ok && p.PostcardID != "" {
			idx.byPostcard[p.PostcardID] = i
		}

		key := p.PlaceKey()
		if prev, ok := idx.byPlace[key]; !ok {
			idx.byPlace[key] = i
		} else if owned && points[prev].SourceFolder != batch {
			idx.byPlace[key] = i
		}

		if owned {
			city := p.CityKey()
			idx.byBatchCity[city] = append(idx.byBatchCity[city], i)
		}
	}

	return idx
}
