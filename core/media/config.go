package media

// Backends supported by NewSource.
const (
	BackendCloudinary = "cloudinary"
	BackendS3         = "s3"
)

// Config holds configuration for the media host.
type Config struct {
	// Backend selects the media host (cloudinary, s3).
	Backend string `mapstructure:"backend" default:"cloudinary"`
	// RootPrefix is prepended to folder arguments that contain no "/".
	RootPrefix string `mapstructure:"root_prefix" default:"postcards"`
	// PageSize is the number of resources requested per page.
	PageSize int `mapstructure:"page_size" default:"500"`
	// Cloudinary holds the Cloudinary account credentials.
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
}

// CloudinaryConfig holds Cloudinary API credentials.
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name" default:""`
	APIKey    string `mapstructure:"api_key" default:""`
	APISecret string `mapstructure:"api_secret" default:""`
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.cloudinary.com"`
	// TimeoutSeconds bounds a single search request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// HasCredentials reports whether every credential is set.
func (c CloudinaryConfig) HasCredentials() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}
