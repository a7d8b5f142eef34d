package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/project config files
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://visualgenome.org", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.Retries)
	assert.Equal(t, 0, cfg.API.TimeoutSeconds)
	assert.Equal(t, 0.0, cfg.API.RequestsPerSecond)
	assert.Equal(t, DefaultMaxRedirects, cfg.API.MaxRedirects)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vg.toml")
	content := `
[api]
base_url = "https://mirror.example.org"
retries = 2
requests_per_second = 4.5

[data]
dir = "/var/lib/vg"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.org", cfg.API.BaseURL)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, 4.5, cfg.API.RequestsPerSecond)
	assert.Equal(t, "/var/lib/vg", cfg.Data.Dir)
	// Untouched keys keep their defaults
	assert.Equal(t, DefaultMaxRedirects, cfg.API.MaxRedirects)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nretries = 2\n"), 0o644))
	t.Setenv("VG_API_RETRIES", "0")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.API.Retries)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nretries = -1\n"), 0o644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.retries")
}

func TestMergeConfigFiles_LaterWins(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(user, []byte("[api]\nretries = 1\nuser_agent = \"user\"\n"), 0o644))
	require.NoError(t, os.WriteFile(project, []byte("[api]\nretries = 3\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, []string{user, filepath.Join(dir, "absent.toml"), project})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.API.Retries)
	assert.Equal(t, "user", cfg.API.UserAgent)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{API: APIConfig{BaseURL: DefaultBaseURL, Retries: DefaultRetries}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero retries is valid (single attempt)", func(c *Config) { c.API.Retries = 0 }, false},
		{"negative retries", func(c *Config) { c.API.Retries = -1 }, true},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, true},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://visualgenome.org" }, true},
		{"base url without host", func(c *Config) { c.API.BaseURL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.API.TimeoutSeconds = -5 }, true},
		{"negative rate", func(c *Config) { c.API.RequestsPerSecond = -1 }, true},
		{"negative redirects", func(c *Config) { c.API.MaxRedirects = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	dir, err := DataDir(&Config{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data"), dir)

	dir, err = DataDir(&Config{Data: DataConfig{Dir: "cache/vg"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "cache", "vg"), dir)

	abs := filepath.Join(t.TempDir(), "vg")
	dir, err = DataDir(&Config{Data: DataConfig{Dir: abs}})
	require.NoError(t, err)
	assert.Equal(t, abs, dir)
}

func TestEnsureDataDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "data")

	dir, err := EnsureDataDir(&Config{Data: DataConfig{Dir: target}})
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
