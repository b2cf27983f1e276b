// Package reconcile merges a batch of media host resources into the travel
// point registry.
//
// # Matching
//
// Every resource is parsed into a place candidate and matched against the
// registry by four keys, in priority order:
//
//  1. an explicit place id carried in the resource metadata ("place_id"),
//  2. the resource identifier, against each point's postcardId,
//  3. the "<CC>:<normalized city>" place key,
//  4. the normalized city alone, restricted to points owned by the batch.
//
// The city-only fallback lets a re-run correct a country code it got wrong
// earlier. It applies only when exactly one batch point has the city and the
// batch itself never pairs the city with two different country codes.
//
// # Provenance
//
// A point's SourceFolder records the batch that created it. Matched points keep
// their fields unless the RefreshPolicy allows a refresh; the default policy
// only refreshes points owned by the current batch, so manual edits to points
// from other batches always win.
//
// # Output
//
// Reconcile never mutates its inputs. It returns the new point list (sorted by
// country code, then city), counters, warnings and a per-point change log.
// Recoverable problems (unparseable identifiers, geocode misses, conflicting
// country codes) become warnings; only context cancellation aborts a run.
package reconcile
