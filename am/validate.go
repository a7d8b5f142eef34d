package am

import (
	"net/url"

	"github.com/teranos/visualgenome/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url cannot be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Newf("api.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.Newf("api.base_url %q has no host", c.API.BaseURL)
	}

	// Zero retries means a single attempt
	if c.API.Retries < 0 {
		return errors.Newf("api.retries must be >= 0, got %d", c.API.Retries)
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.Newf("api.timeout_seconds must be >= 0, got %d", c.API.TimeoutSeconds)
	}
	if c.API.RequestsPerSecond < 0 {
		return errors.Newf("api.requests_per_second must be >= 0, got %f", c.API.RequestsPerSecond)
	}
	if c.API.MaxRedirects < 0 {
		return errors.Newf("api.max_redirects must be >= 0, got %d", c.API.MaxRedirects)
	}

	return nil
}
