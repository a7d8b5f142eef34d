// Package am loads client configuration with Viper.
//
// Sources, in order of precedence (highest first):
//  1. Environment variables (VG_* prefix, e.g. VG_API_BASE_URL)
//  2. Project config (./vg.toml, searched upward from the working directory)
//  3. User config (~/.vg/config.toml)
//  4. Default values
package am

// Config represents the client configuration
type Config struct {
	API  APIConfig  `mapstructure:"api" json:"api" yaml:"api" toml:"api"`
	Data DataConfig `mapstructure:"data" json:"data" yaml:"data" toml:"data"`
	Log  LogConfig  `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// APIConfig configures access to the dataset service
type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url" json:"base_url" yaml:"base_url" toml:"base_url"`
	Retries           int     `mapstructure:"retries" json:"retries" yaml:"retries" toml:"retries"`                                     // extra attempts after a transport failure
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`     // 0 = no client timeout
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"` // 0 = unlimited
	MaxRedirects      int     `mapstructure:"max_redirects" json:"max_redirects" yaml:"max_redirects" toml:"max_redirects"`
	UserAgent         string  `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent" toml:"user_agent"`
}

// DataConfig configures where fetched records are written
type DataConfig struct {
	Dir string `mapstructure:"dir" json:"dir" yaml:"dir" toml:"dir"` // relative paths resolve against the working directory
}

// LogConfig configures logger output
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
}

// Defaults
const (
	DefaultBaseURL      = "http://visualgenome.org"
	DefaultRetries      = 5
	DefaultMaxRedirects = 10
	DefaultDataDir      = "data"
	DefaultUserAgent    = "visualgenome-go"

	// DefaultDirPermissions is used when creating the data and user config directories
	DefaultDirPermissions = 0o755
)
