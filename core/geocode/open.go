package geocode

import (
	"context"
	"fmt"

	"postcard-gallery/core/database"
)

// OpenStore opens the cache backend selected by cfg.CacheBackend.
func OpenStore(ctx context.Context, cfg Config, dbCfg database.Config) (Store, error) {
	switch cfg.CacheBackend {
	case "", BackendFile:
		return OpenFileStore(cfg.CachePath)
	case BackendDatabase:
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, err
		}
		store := NewDBStore(db)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown geocode cache backend: %s", cfg.CacheBackend)
	}
}
