// Package geocode resolves (city, country) pairs to coordinates.
//
// Lookups go through a persistent cache first. On a miss the Service calls the
// external geocoder, waiting a fixed delay between network calls to respect the
// provider's fair-use policy, and stores successful single-best-match results.
// Failed or empty lookups are never cached, so they are retried on the next run.
// Cache entries never expire; stale coordinates need a manual edit.
//
// # Stores
//
//   - FileStore: a JSON object keyed by "<CC>:<normalized city>", read once and
//     written once by Flush.
//   - DBStore: the same entries in a gorm-managed geocode_cache table.
//
// # Usage
//
//	store, _ := geocode.OpenFileStore("data/geocode-cache.json")
//	svc := geocode.NewService(geocode.NewNominatimClient(cfg), store, cfg.Delay(), logger)
//	out, err := svc.Lookup(ctx, "Paris", "FR")
//	_ = store.Flush(ctx)
package geocode
