// Package transport is the HTTP layer under the GitHub label store. It
// applies authentication and the common GitHub headers, retries transient
// failures, turns unexpected statuses into *errors.APIError values, and
// walks paginated collections.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/logging"
)

// Client sends authenticated requests to a REST API rooted at a base URL.
type Client struct {
	http      *retryablehttp.Client
	auth      Authenticator
	token     string
	baseURL   string
	userAgent string
}

type config struct {
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	userAgent    string
	logger       *zerolog.Logger
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*config)

// WithBaseURL sets the API root, e.g. a GitHub Enterprise "/api/v3" URL.
func WithBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times a transient failure is retried and the
// bounds of the backoff between attempts.
func WithRetries(retries int, waitMin, waitMax time.Duration) Option {
	return func(c *config) {
		c.maxRetries = retries
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger retry attempts are reported to.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHTTPClient replaces the pooled HTTP client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// New creates a client that authenticates with auth and token.
func New(auth Authenticator, token string, opts ...Option) *Client {
	cfg := &config{
		baseURL:      constants.DefaultEndpoint,
		timeout:      constants.DefaultHTTPTimeout,
		maxRetries:   constants.MaxRetries,
		retryWaitMin: constants.RetryWaitMin,
		retryWaitMax: constants.RetryWaitMax,
		userAgent:    constants.UserAgent,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if auth == nil {
		auth = &NoAuth{}
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = cleanhttp.DefaultPooledClient()
	}
	hc.Timeout = cfg.timeout

	rc := retryablehttp.NewClient()
	rc.HTTPClient = hc
	rc.RetryMax = cfg.maxRetries
	rc.RetryWaitMin = cfg.retryWaitMin
	rc.RetryWaitMax = cfg.retryWaitMax
	rc.Logger = logging.NewRetryLogger(cfg.logger)
	// Hand the final response back so its status can be reported.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:      rc,
		auth:      auth,
		token:     token,
		baseURL:   cfg.baseURL,
		userAgent: cfg.userAgent,
	}
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends method to path (relative to the base URL) with query and an
// optional JSON body. Transport failures are returned as *errors.APIError
// with a zero status; the caller must close the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var raw any
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		raw = data
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, raw)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+path, err)
	}

	req.Header.Set("Accept", constants.AcceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-GitHub-Api-Version", constants.APIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.Apply(req.Request, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &errors.APIError{
			Method:   method,
			Endpoint: path,
			Message:  err.Error(),
			Err:      err,
		}
	}
	return resp, nil
}

// Call sends a request and decodes the response into target, treating any
// status other than expected as an error.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body any, expected int, target any) error {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return DecodeResponse(resp, method, path, expected, target)
}

// Fetch downloads an absolute URL and returns its body. It shares the
// client's retry policy but sends no credentials, so it suits public
// documents hosted outside the API.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &errors.APIError{Method: http.MethodGet, Endpoint: rawURL, Message: err.Error(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Method:     http.MethodGet,
			Endpoint:   rawURL,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}
	return body, nil
}
