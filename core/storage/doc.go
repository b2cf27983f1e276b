// Package storage wraps the MinIO Go client for S3-compatible object storage.
//
// It backs the "s3" media source (postcard images stored as objects whose user
// metadata and tags carry the gallery fields) and the optional publishing of
// the gallery manifest.
//
// # Client Interface
//
// The Client interface is the subset of *minio.Client the application uses,
// which keeps it easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	for obj := range client.ListObjects(ctx, cfg.Storage.Bucket, minio.ListObjectsOptions{Prefix: "postcards/"}) {
//	    ...
//	}
package storage
