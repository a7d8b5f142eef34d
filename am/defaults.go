package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.retries", DefaultRetries)
	v.SetDefault("api.timeout_seconds", 0)     // transport defaults only
	v.SetDefault("api.requests_per_second", 0) // unlimited
	v.SetDefault("api.max_redirects", DefaultMaxRedirects)
	v.SetDefault("api.user_agent", DefaultUserAgent)

	v.SetDefault("data.dir", DefaultDataDir)

	v.SetDefault("log.json", false)
}

// BindEnvVars binds the documented environment variables explicitly so they
// resolve even when no config file mentions the key
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "VG_API_BASE_URL")
	v.BindEnv("api.retries", "VG_API_RETRIES")
	v.BindEnv("api.timeout_seconds", "VG_API_TIMEOUT_SECONDS")
	v.BindEnv("api.requests_per_second", "VG_API_REQUESTS_PER_SECOND")
	v.BindEnv("data.dir", "VG_DATA_DIR")
	v.BindEnv("log.json", "VG_LOG_JSON")
}
