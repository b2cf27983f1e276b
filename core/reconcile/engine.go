package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"postcard-gallery/core/media"
	"postcard-gallery/core/normalize"
	"postcard-gallery/core/place"
)

// maxConflictSamples bounds the identifiers listed per conflict warning.
const maxConflictSamples = 3

type parsedResource struct {
	resource  media.Resource
	candidate place.Candidate
	cityKey   string
	err       error
}

type pairing struct {
	identifier  string
	countryCode string
}

// run holds the working state of one Reconcile call.
type run struct {
	opts   Options
	policy RefreshPolicy
	geo    Geocoder

	points []TravelPoint
	before map[string]TravelPoint
	idx    *index

	pairings  map[string][]pairing
	ambiguous map[string]bool
	collided  map[string]bool
	changes   map[string]int

	result *Result
}

// Reconcile merges resources into existing and returns the new registry.
// geo may be nil when no lookups are possible.
func Reconcile(ctx context.Context, resources []media.Resource, existing []TravelPoint, geo Geocoder, opts Options) (*Result, error) {
	r := &run{
		opts:      opts,
		policy:    opts.Policy,
		geo:       geo,
		points:    make([]TravelPoint, len(existing)),
		before:    make(map[string]TravelPoint, len(existing)),
		pairings:  make(map[string][]pairing),
		ambiguous: make(map[string]bool),
		collided:  make(map[string]bool),
		changes:   make(map[string]int),
		result:    &Result{Warnings: []string{}, Changes: []Change{}},
	}
	if r.policy == nil {
		r.policy = SameBatchRefresh{}
	}
	copy(r.points, existing)

	r.checkDuplicateIDs()
	for _, p := range r.points {
		if _, ok := r.before[p.ID]; !ok {
			r.before[p.ID] = p
		}
	}
	r.reindex()

	batch := resources
	if opts.Limit > 0 && len(batch) > opts.Limit {
		batch = batch[:opts.Limit]
	}

	parsed := r.parseAll(batch)
	for _, pr := range parsed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.process(ctx, pr); err != nil {
			return nil, err
		}
	}

	r.reportConflicts()

	if opts.Prune {
		r.prune(resources)
	}

	r.finalize()
	return r.result, nil
}

func (r *run) reindex() {
	r.idx = buildIndex(r.points, r.opts.BatchLabel)
}

func (r *run) warnf(format string, args ...any) {
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf(format, args...))
}

// record adds or replaces the change entry of a point. An added point stays
// added; pruned and dropped always replace the entry. Updated and unchanged
// entries are settled against the starting state in settleChanges.
func (r *run) record(c Change) {
	i, ok := r.changes[c.PointID]
	if !ok {
		r.changes[c.PointID] = len(r.result.Changes)
		r.result.Changes = append(r.result.Changes, c)
		return
	}

	if r.result.Changes[i].Kind == ChangeAdded && c.Kind != ChangePruned && c.Kind != ChangeDropped {
		c.Kind = ChangeAdded
		c.MatchedBy = MatchNone
	}
	r.result.Changes[i] = c
}

// settleChanges compares every matched point with its starting state, so a
// point refreshed more than once and ending where it began is unchanged.
func (r *run) settleChanges(points []TravelPoint) {
	settled := make(map[string]bool, len(points))
	for _, p := range points {
		i, ok := r.changes[p.ID]
		if !ok || settled[p.ID] {
			continue
		}
		settled[p.ID] = true

		c := &r.result.Changes[i]
		if c.Kind != ChangeUpdated && c.Kind != ChangeUnchanged {
			continue
		}
		c.Kind = ChangeUpdated
		if prev, ok := r.before[p.ID]; ok && prev.equal(p) {
			c.Kind = ChangeUnchanged
		}
	}
}

func (r *run) checkDuplicateIDs() {
	seen := make(map[string]bool, len(r.points))
	for _, p := range r.points {
		if p.ID == "" {
			r.warnf("registry point without id: %s, %s", p.City, p.CountryCode)
			continue
		}
		if seen[p.ID] {
			r.warnf("duplicate point id in registry: %s", p.ID)
		}
		seen[p.ID] = true
	}
}

// parseAll parses every resource and records the city/country pairings of the
// batch before any matching happens.
func (r *run) parseAll(resources []media.Resource) []parsedResource {
	parsed := make([]parsedResource, 0, len(resources))
	for _, res := range resources {
		cand, err := place.Parse(res.PublicID)
		pr := parsedResource{resource: res, candidate: cand, err: err}
		if err == nil {
			pr.cityKey = normalize.CityKey(cand.City)
			r.pairings[pr.cityKey] = append(r.pairings[pr.cityKey], pairing{
				identifier:  res.PublicID,
				countryCode: cand.CountryCode,
			})
		}
		parsed = append(parsed, pr)
	}

	for city, pairs := range r.pairings {
		if len(distinctCodes(pairs)) > 1 {
			r.ambiguous[city] = true
		}
	}
	return parsed
}

func (r *run) process(ctx context.Context, pr parsedResource) error {
	r.result.Stats.Processed++
	res := pr.resource

	if pr.err != nil {
		r.result.Stats.Skipped++
		r.warnf("skipped %s: %v", res.PublicID, pr.err)
		return nil
	}

	cand := pr.candidate
	matched, kind := r.match(res, cand, pr.cityKey)

	var lat, lng *float64
	if matched >= 0 && r.points[matched].HasCoordinates() {
		lat, lng = r.points[matched].Lat, r.points[matched].Lng
	} else if !r.opts.NoGeocode && r.geo != nil {
		out, err := r.geo.Lookup(ctx, cand.City, cand.CountryCode)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			r.warnf("geocode failed for %s (%s, %s): %v", res.PublicID, cand.City, cand.CountryCode, err)
		case out.Found:
			la, ln := out.Point.Lat, out.Point.Lng
			lat, lng = &la, &ln
			r.result.Stats.Geocoded++
			if out.Cached {
				r.result.Stats.CacheHits++
			}
		default:
			r.warnf("no geocode result for %s (%s, %s)", res.PublicID, cand.City, cand.CountryCode)
		}
	}

	if lat == nil || lng == nil {
		r.result.Stats.Skipped++
		r.warnf("skipped %s: no coordinates for %s, %s", res.PublicID, cand.City, cand.CountryCode)
		return nil
	}

	if matched >= 0 {
		r.update(matched, kind, res, cand, lat, lng)
	} else {
		r.add(res, cand, lat, lng)
	}
	r.reindex()
	return nil
}

// match probes the four keys in priority order and returns -1 when nothing matches.
func (r *run) match(res media.Resource, cand place.Candidate, cityKey string) (int, MatchKind) {
	if id := strings.TrimSpace(res.Metadata[media.MetadataPlaceID]); id != "" {
		if i, ok := r.idx.byID[id]; ok {
			return i, MatchPlaceID
		}
		r.warnf("%s: place_id %q not found in registry", res.PublicID, id)
	}
	if i, ok := r.idx.byPostcard[res.PublicID]; ok {
		return i, MatchPostcardID
	}
	if i, ok := r.idx.byPlace[cand.Key()]; ok {
		return i, MatchPlace
	}

	if r.opts.BatchLabel == "" || r.ambiguous[cityKey] {
		return -1, MatchNone
	}
	owners := r.idx.byBatchCity[cityKey]
	switch {
	case len(owners) == 1:
		return owners[0], MatchBatchCity
	case len(owners) > 1 && !r.collided[cityKey]:
		r.collided[cityKey] = true
		ids := make([]string, 0, len(owners))
		for _, i := range owners {
			ids = append(ids, r.points[i].ID)
		}
		sort.Strings(ids)
		r.warnf("city %q matches %d points of batch %s (%s); country correction skipped for %s",
			cityKey, len(owners), r.opts.BatchLabel, strings.Join(ids, ", "), res.PublicID)
	}
	return -1, MatchNone
}

func (r *run) update(i int, kind MatchKind, res media.Resource, cand place.Candidate, lat, lng *float64) {
	p := r.points[i]

	if r.policy.AllowRefresh(p, r.opts.BatchLabel) {
		p.City = cand.City
		p.CountryCode = cand.CountryCode
		p.CountryName = place.CountryName(cand.CountryCode)
		p.PostcardID = res.PublicID
	}
	if !p.HasCoordinates() {
		p.Lat, p.Lng = lat, lng
	}
	if p.Description == "" {
		p.Description = res.Metadata["description"]
	}

	r.points[i] = p
	r.result.Stats.Updated++

	r.record(Change{Kind: ChangeUpdated, PointID: p.ID, PostcardID: res.PublicID, MatchedBy: kind})
}

func (r *run) add(res media.Resource, cand place.Candidate, lat, lng *float64) {
	p := TravelPoint{
		ID:           r.uniqueID(normalize.Slugify(cand.CountryCode + " " + cand.City)),
		City:         cand.City,
		CountryCode:  cand.CountryCode,
		CountryName:  place.CountryName(cand.CountryCode),
		Lat:          lat,
		Lng:          lng,
		PostcardID:   res.PublicID,
		Description:  res.Metadata["description"],
		SourceFolder: r.opts.BatchLabel,
	}
	r.points = append(r.points, p)
	r.result.Stats.Added++
	r.record(Change{Kind: ChangeAdded, PointID: p.ID, PostcardID: res.PublicID})
}

func (r *run) uniqueID(base string) string {
	if base == "" {
		base = "point"
	}
	if _, taken := r.idx.byID[base]; !taken {
		return base
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if _, taken := r.idx.byID[id]; !taken {
			return id
		}
	}
}

// reportConflicts warns about cities paired with more than one country code.
func (r *run) reportConflicts() {
	cities := make([]string, 0, len(r.ambiguous))
	for city := range r.ambiguous {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	for _, city := range cities {
		pairs := r.pairings[city]
		samples := make([]string, 0, maxConflictSamples)
		for _, p := range pairs {
			if len(samples) == maxConflictSamples {
				break
			}
			samples = append(samples, p.identifier)
		}
		sort.Strings(samples)
		r.warnf("city %q appears with country codes %s: %s",
			city, strings.Join(distinctCodes(pairs), ", "), strings.Join(samples, ", "))
	}
}

func distinctCodes(pairs []pairing) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, p := range pairs {
		if !seen[p.countryCode] {
			seen[p.countryCode] = true
			codes = append(codes, p.countryCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// finalize drops points without coordinates, sorts and validates the output.
func (r *run) finalize() {
	kept := make([]TravelPoint, 0, len(r.points))
	for _, p := range r.points {
		if !p.HasCoordinates() {
			r.result.Stats.Dropped++
			r.warnf("dropped %s (%s, %s): no coordinates", p.ID, p.City, p.CountryCode)
			r.record(Change{Kind: ChangeDropped, PointID: p.ID, PostcardID: p.PostcardID, Reason: "no coordinates"})
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.CountryCode != b.CountryCode {
			return a.CountryCode < b.CountryCode
		}
		ac, bc := strings.ToLower(a.City), strings.ToLower(b.City)
		if ac != bc {
			return ac < bc
		}
		return a.ID < b.ID
	})

	seen := make(map[string]string, len(kept))
	for _, p := range kept {
		key := p.PlaceKey()
		if first, dup := seen[key]; dup {
			r.warnf("duplicate place %s: %s and %s", key, first, p.ID)
			continue
		}
		seen[key] = p.ID
	}

	r.settleChanges(kept)
	r.result.Points = kept
}
