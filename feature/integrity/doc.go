// Package integrity provides health checks for the travel point registry and
// the postcard storage.
//
// Unlike the reconciler, which repairs what it can, this package only reports.
//
// # Checks Provided
//
//   - Registry: duplicate ids, duplicate places, invalid country codes and
//     points without usable coordinates.
//   - Postcards: registry links to postcards that no longer exist, and parsed
//     postcards whose place has no point yet.
//   - Structure: for the S3 backend, checks that the bucket and the postcard
//     folders exist (supports fixing by creating folder markers).
package integrity
