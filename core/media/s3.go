package media

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"postcard-gallery/core/storage"

	"github.com/minio/minio-go/v7"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {}, ".avif": {}, ".heic": {},
}

// S3Source lists postcard images stored in an S3-compatible bucket.
// Object user metadata becomes Resource.Metadata and object tags Resource.Tags.
type S3Source struct {
	client storage.Client
	bucket string
}

// NewS3Source creates a source over bucket.
func NewS3Source(client storage.Client, bucket string) *S3Source {
	return &S3Source{client: client, bucket: bucket}
}

// Search implements Source. The cursor is the last key of the previous page.
func (s *S3Source) Search(ctx context.Context, q Query, cursor string) (*Page, error) {
	size := q.MaxResults
	if size <= 0 {
		size = defaultPageSize
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:       strings.Trim(q.Folder, "/") + "/",
		Recursive:    true,
		WithMetadata: true,
		StartAfter:   cursor,
	}

	page := &Page{}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", s.bucket, opts.Prefix, obj.Err)
		}
		if !isImage(obj.Key) {
			continue
		}
		page.Resources = append(page.Resources, resourceFromObject(obj))
		if len(page.Resources) == size {
			page.NextCursor = obj.Key
			break
		}
	}
	return page, nil
}

func isImage(key string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(key))]
	return ok
}

func resourceFromObject(obj minio.ObjectInfo) Resource {
	res := Resource{
		PublicID:  strings.TrimSuffix(obj.Key, path.Ext(obj.Key)),
		Folder:    path.Dir(obj.Key),
		Metadata:  make(map[string]string, len(obj.UserMetadata)),
		CreatedAt: obj.LastModified,
	}
	for k, v := range obj.UserMetadata {
		res.Metadata[metadataKey(k)] = v
	}
	for k := range obj.UserTags {
		res.Tags = append(res.Tags, k)
	}
	sort.Strings(res.Tags)
	return res
}

// metadataKey strips the x-amz-meta- header prefix and lowercases.
func metadataKey(k string) string {
	k = strings.ToLower(k)
	return strings.TrimPrefix(k, "x-amz-meta-")
}
