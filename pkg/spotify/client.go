// Package spotify is a client for the Spotify Web API player endpoints.
//
// Every call is a single request/response cycle: the request is built with a
// bearer token from the configured oauth2.TokenSource, sent, and either the
// JSON body is decoded into a model or the error body is decoded into one of
// the typed errors in this package (*PlayerError, *SpotifyError,
// *AuthenticationError, *RateLimitedError, *MalformedPayloadError). Transport
// errors are returned as the HTTP client produced them.
//
//	client := spotify.NewClient(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
//	devices, err := client.AvailableDevices(ctx)
package spotify

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/pkg/logging"
)

// DefaultBaseURL is the root of the Spotify Web API.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client calls the Spotify Web API. It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      oauth2.TokenSource
	logger      *zap.Logger
	maxRetries  int
	baseBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLogger replaces the logger derived from the global backend.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetry enables retries of transport errors, 429 and 5xx responses.
// maxAttempts counts the first attempt; values below 2 disable retrying.
func WithRetry(maxAttempts int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxAttempts
		c.baseBackoff = baseBackoff
	}
}

// NewClient constructs a client that authorizes requests with tokens from ts.
// It bootstraps the logging backend.
func NewClient(ts oauth2.TokenSource, opts ...Option) *Client {
	logging.Bootstrap()

	c := &Client{
		httpClient:  http.DefaultClient,
		baseURL:     DefaultBaseURL,
		tokens:      ts,
		logger:      zap.L().Named("SpotifyAPI"),
		maxRetries:  1,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
