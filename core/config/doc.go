// Package config provides configuration management for postcard-gallery.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section, registered by reflection so that every key is visible to
// AutomaticEnv.
//
// # Configuration Structure
//
//   - Media: media host backend and Cloudinary credentials
//   - Storage: S3/MinIO credentials and bucket settings
//   - Geocode: geocoding endpoint, user agent, request delay and cache backend
//   - Database: connection for the database geocode cache
//   - Points: registry path and default folder
//   - Gallery: manifest output
//   - Log: Logging level and format
//
// The usual CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET
// variables are accepted next to MEDIA_CLOUDINARY_*.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Points.RegistryPath)
package config
