// Package media reads postcard image records from the media host.
//
// The reconciler and the gallery builder only depend on the Source contract:
// a paginated search over the images of one folder. Two backends implement it:
//
//   - CloudinaryClient: the Cloudinary Search API.
//   - S3Source: an S3-compatible bucket, where object user metadata and tags
//     carry the gallery fields.
//
// Pages are fetched sequentially by FetchAll, one request in flight at a time.
// Any transport or service error aborts the fetch.
package media
