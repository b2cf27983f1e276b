package geocode

import "time"

// Cache backends.
const (
	BackendFile     = "file"
	BackendDatabase = "database"
)

// Config holds configuration for the geocoder and its cache.
type Config struct {
	// Endpoint is the base URL of the Nominatim-compatible search service.
	Endpoint string `mapstructure:"endpoint" default:"https://nominatim.openstreetmap.org"`
	// UserAgent identifies this client to the service, which requires it.
	UserAgent string `mapstructure:"user_agent" default:"postcard-gallery/1.0 (travel map builder)"`
	// DelayMillis is the pause between two network lookups.
	DelayMillis int `mapstructure:"delay_ms" default:"1100"`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheBackend selects where cached coordinates live (file, database).
	CacheBackend string `mapstructure:"cache_backend" default:"file"`
	// CachePath is the JSON cache file used by the file backend.
	CachePath string `mapstructure:"cache_path" default:"data/geocode-cache.json"`
}

// Delay returns the configured inter-request delay.
func (c Config) Delay() time.Duration {
	if c.DelayMillis < 0 {
		return 0
	}
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// Timeout returns the per-request timeout, defaulting to 30 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
