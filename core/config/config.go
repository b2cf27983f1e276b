package config

import (
	"reflect"
	"strings"

	"postcard-gallery/core/database"
	"postcard-gallery/core/geocode"
	"postcard-gallery/core/logger"
	"postcard-gallery/core/media"
	"postcard-gallery/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Media holds configuration for the media host listing postcards.
	Media media.Config `mapstructure:"media"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Geocode holds configuration for the geocoding service and its cache.
	Geocode geocode.Config `mapstructure:"geocode"`
	// Database holds configuration for the database-backed geocode cache.
	Database database.Config `mapstructure:"database"`
	// Points holds configuration for the travel point registry.
	Points PointsConfig `mapstructure:"points"`
	// Gallery holds configuration for the gallery manifest.
	Gallery GalleryConfig `mapstructure:"gallery"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// PointsConfig holds configuration for the travel point registry.
type PointsConfig struct {
	// RegistryPath is the JSON registry file.
	RegistryPath string `mapstructure:"registry_path" default:"data/travel-points.json"`
	// DefaultFolder is the folder reconciled when none is given.
	DefaultFolder string `mapstructure:"default_folder" default:"Countries"`
}

// GalleryConfig holds configuration for the gallery manifest.
type GalleryConfig struct {
	// OutputPath is the manifest file written by "gallery build".
	OutputPath string `mapstructure:"output_path" default:"data/gallery.json"`
	// DefaultFolder is the folder listed when none is given.
	DefaultFolder string `mapstructure:"default_folder" default:"Countries"`
	// PublishKey, when set, is the object key the manifest is also uploaded to.
	PublishKey string `mapstructure:"publish_key" default:""`
}

// envAliases binds conventional variable names to nested keys.
var envAliases = map[string]string{
	"media.cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
	"media.cloudinary.api_key":    "CLOUDINARY_API_KEY",
	"media.cloudinary.api_secret": "CLOUDINARY_API_SECRET",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. GEOCODE_DELAY_MS -> geocode.delay_ms)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
