// Package gallery builds the public gallery manifest of a media host folder.
//
// Resources tagged "hidden" (or flagged hidden=true in metadata) are left out.
// The manifest lists postcards newest first, with the place parsed from the
// identifier when it follows the "<CC>_<City>_<suffix>" convention, plus album
// and tag counts sorted by name. It can be written to disk and published to the
// object storage bucket.
package gallery
