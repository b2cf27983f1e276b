package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"postcard-gallery/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStructure returns the folders of the bucket that hold no object.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:    folderPrefix(folder),
			Recursive: false,
			MaxKeys:   1,
		}

		found, err := anyObject(ctx, client, bucket, opts)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

func anyObject(ctx context.Context, client storage.Client, bucket string, opts minio.ListObjectsOptions) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", opts.Prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// FixStructure creates an empty marker object for each missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folderPrefix(folder), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}

func folderPrefix(folder string) string {
	return strings.Trim(folder, "/") + "/"
}
