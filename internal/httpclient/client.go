package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teranos/visualgenome/errors"
)

// ErrBlocked marks requests and redirects refused by the client's own policy.
var ErrBlocked = errors.New("request blocked by client policy")

// Client wraps http.Client with a pooled transport, a redirect cap and a
// scheme allow-list. One Client is meant to be reused across requests.
type Client struct {
	*http.Client
	allowedSchemes []string
	maxRedirects   int
}

// Options customizes a Client. Zero values select the defaults.
type Options struct {
	Timeout        time.Duration // 0 = no overall request timeout
	MaxRedirects   *int          // Default: 10
	AllowedSchemes []string      // Default: ["http", "https"]
	Transport      http.RoundTripper
}

// New creates a Client over a keep-alive connection pool
func New(opts Options) *Client {
	maxRedirects := 10
	if opts.MaxRedirects != nil {
		maxRedirects = *opts.MaxRedirects
	}

	allowedSchemes := []string{"http", "https"}
	if opts.AllowedSchemes != nil {
		allowedSchemes = opts.AllowedSchemes
	}

	transport := opts.Transport
	if transport == nil {
		transport = newPooledTransport()
	}

	client := &Client{
		Client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		allowedSchemes: allowedSchemes,
		maxRedirects:   maxRedirects,
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Mark(errors.Newf("stopped after %d redirects", client.maxRedirects), ErrBlocked)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Mark(errors.Wrap(err, "redirect blocked"), ErrBlocked)
		}
		return nil
	}

	return client
}

// WrapClient wraps an existing http.Client, e.g. one from httptest.Server.
func WrapClient(client *http.Client) *Client {
	return &Client{
		Client:         client,
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   10,
	}
}

func newPooledTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// validateURL rejects schemes outside the allow-list and URLs without a host
func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, allowedScheme := range c.allowedSchemes {
		if scheme == allowedScheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	if u.Hostname() == "" {
		return errors.New("URL missing hostname")
	}
	return nil
}

// ValidateURL parses and validates a URL string before creating a request
func (c *Client) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}
	if err := c.validateURL(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Do executes an HTTP request after validating its URL
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "request blocked"), ErrBlocked)
	}
	return c.Client.Do(req)
}

// CloseIdleConnections releases pooled connections
func (c *Client) CloseIdleConnections() {
	c.Client.CloseIdleConnections()
}
