package media

import (
	"fmt"

	"postcard-gallery/core/storage"
)

// NewSource creates the configured media source.
func NewSource(cfg Config, storageCfg storage.Config) (Source, error) {
	switch cfg.Backend {
	case "", BackendCloudinary:
		return NewCloudinaryClient(cfg.Cloudinary)
	case BackendS3:
		if !storageCfg.HasCredentials() {
			return nil, fmt.Errorf("s3: access_key and secret_key are required: %w", ErrMissingCredentials)
		}
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, err
		}
		return NewS3Source(client, storageCfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown media backend: %s", cfg.Backend)
	}
}
