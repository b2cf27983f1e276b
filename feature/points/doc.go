// Package points maintains the travel point registry: a JSON array of
// TravelPoint records kept in sync with a media host folder.
//
// A run fetches the whole folder, loads the registry, reconciles and reports.
// The registry is written once at the end and only when the caller asked for
// it (Write without DryRun); a failed or interrupted run leaves it untouched.
// The geocode cache is flushed in every mode since it only holds lookups.
package points
