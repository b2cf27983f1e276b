// Package normalize canonicalizes place text into comparison keys.
//
// Every key used to match a parsed place against the point registry or the
// geocode cache goes through this package, on both sides of the comparison.
// The functions are pure: the same input always yields the same key.
//
// # Keys
//
//   - Fold: lowercase, diacritics removed, "&" spelled "and", every run of
//     non-alphanumeric characters collapsed to one space.
//   - CityKey: Fold plus a fixed table of alternate city spellings.
//   - Slugify: Fold joined with hyphens, used for point identifiers.
//   - PlaceKey: "<CC>:<city key>", shared by the registry and the cache.
//
// # Usage
//
//	normalize.CityKey("Lisboa") == normalize.CityKey("lisbon") // true
//	normalize.Slugify("São Paulo")                             // "sao-paulo"
package normalize
