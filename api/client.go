// Package api retrieves Visual Genome annotations over HTTP.
//
// Fetch returns the decoded JSON document or a typed error: ErrNotFound when
// the service reports the resource missing, ErrTransport when no usable
// response arrived. Retrieve keeps the legacy contract and turns every
// failure into the {"detail": "Not found."} sentinel.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/visualgenome/am"
	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/internal/httpclient"
	"github.com/teranos/visualgenome/internal/util"
	"github.com/teranos/visualgenome/logger"
	"github.com/teranos/visualgenome/parse"
)

// notFoundDetail is the detail text the service uses for missing resources
const notFoundDetail = "Not found."

var notFoundSentinel = gjson.Parse(`{"detail": "Not found."}`)

// errNoRetry marks transport failures that repeating the request cannot fix
var errNoRetry = errors.New("not retryable")

// Config holds API client configuration
type Config struct {
	BaseURL           string        // "" = am.DefaultBaseURL
	Retries           *int          // extra attempts after a transport failure; nil = am.DefaultRetries
	Timeout           time.Duration // 0 = no overall request timeout
	RequestsPerSecond float64       // 0 = unlimited
	MaxRedirects      *int          // nil = 10
	UserAgent         string
	HTTPClient        *httpclient.Client // nil = pooled client built from the fields above
	Logger            *zap.SugaredLogger // nil = nop logger
}

// ConfigFromAM builds a client Config from loaded configuration
func ConfigFromAM(c *am.Config) Config {
	return Config{
		BaseURL:           c.API.BaseURL,
		Retries:           util.Ptr(c.API.Retries),
		Timeout:           time.Duration(c.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.API.RequestsPerSecond,
		MaxRedirects:      util.Ptr(c.API.MaxRedirects),
		UserAgent:         c.API.UserAgent,
	}
}

// Client issues GET requests against the dataset service. It is safe for
// sequential reuse; its connection pool is shared across calls.
type Client struct {
	baseURL    string
	retries    int
	userAgent  string
	httpClient *httpclient.Client
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
}

// NewClient creates a client, applying defaults for unset fields
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = am.DefaultBaseURL
	}

	retries := am.DefaultRetries
	if config.Retries != nil {
		retries = *config.Retries
	}
	if retries < 0 {
		retries = 0
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Options{
			Timeout:      config.Timeout,
			MaxRedirects: config.MaxRedirects,
		})
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		retries:    retries,
		userAgent:  config.UserAgent,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     log,
	}
}

// BaseURL returns the URL every request path is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle pooled connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Fetch performs GET baseURL+path and returns the decoded JSON body.
// Transport failures are retried up to the configured retry count.
func (c *Client) Fetch(ctx context.Context, path string) (gjson.Result, error) {
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromContext(ctx, c.logger)
	url := c.baseURL + path
	start := time.Now()

	doc, err := util.RetryWithContext(ctx, c.retries+1, retryable, func(ctx context.Context, attempt int) (gjson.Result, error) {
		if attempt > 1 {
			log.Warnw("Retrying request",
				logger.FieldPath, path,
				logger.FieldAttempt, attempt,
				logger.FieldRetries, c.retries)
		}
		return c.get(ctx, url, log)
	})

	durationMS := time.Since(start).Milliseconds()
	switch {
	case err == nil:
		return doc, nil
	case errors.IsNotFoundError(err):
		log.Debugw("Resource not found", logger.FieldPath, path, logger.FieldDurationMS, durationMS)
		return gjson.Result{}, err
	case errors.IsTransportError(err):
		log.Errorw("Request failed",
			logger.FieldPath, path,
			logger.FieldError, err.Error(),
			logger.FieldDurationMS, durationMS)
		return gjson.Result{}, err
	default:
		return gjson.Result{}, errors.Wrapf(err, "GET %s", path)
	}
}

// Retrieve is the legacy form of Fetch: any failure, transport or not
// found, yields the {"detail": "Not found."} sentinel instead of an error.
func (c *Client) Retrieve(ctx context.Context, path string) gjson.Result {
	doc, err := c.Fetch(ctx, path)
	if err != nil {
		return NotFoundSentinel()
	}
	return doc
}

// NotFoundSentinel returns the {"detail": "Not found."} document
func NotFoundSentinel() gjson.Result {
	return notFoundSentinel
}

// IsNotFound reports whether doc is the service's not-found payload,
// including the sentinel produced by Retrieve
func IsNotFound(doc gjson.Result) bool {
	if !doc.IsObject() {
		return false
	}
	detail := doc.Get("detail")
	return detail.Type == gjson.String && detail.Str == notFoundDetail && len(doc.Map()) == 1
}

func retryable(err error) bool {
	return errors.IsTransportError(err) && !errors.Is(err, errNoRetry)
}

func noRetry(err error) error {
	return errors.Mark(err, errNoRetry)
}

// get performs a single attempt
func (c *Client) get(ctx context.Context, url string, log *zap.SugaredLogger) (gjson.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return gjson.Result{}, ctx.Err()
			}
			return gjson.Result{}, noRetry(errors.WrapTransport(err, "rate limiter"))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, noRetry(errors.WrapTransport(err, "failed to build request"))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}
		if errors.Is(err, httpclient.ErrBlocked) {
			return gjson.Result{}, noRetry(errors.WrapTransport(err, "GET "+url))
		}
		return gjson.Result{}, errors.WrapTransport(err, "GET "+url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, errors.WrapTransport(err, "failed to read response body")
	}
	log.Debugw("Request completed",
		logger.FieldMethod, http.MethodGet,
		logger.FieldURL, url,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gjson.Result{}, errors.NewNotFoundError("GET %s: %d", url, resp.StatusCode)
	case resp.StatusCode >= 500:
		return gjson.Result{}, errors.NewTransportError("GET %s: server returned %d", url, resp.StatusCode)
	case resp.StatusCode >= 400:
		return gjson.Result{}, noRetry(errors.NewTransportError("GET %s: server returned %d", url, resp.StatusCode))
	}

	doc, err := parse.Bytes(body)
	if err != nil {
		return gjson.Result{}, noRetry(errors.WrapTransport(err, "GET "+url))
	}
	if IsNotFound(doc) {
		return gjson.Result{}, errors.NewNotFoundError("GET %s: %s", url, notFoundDetail)
	}
	return doc, nil
}
