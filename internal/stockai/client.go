package stockai

import (
	"net/http"
	"strings"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=stockai_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the StockAI backend. All three operations are plain
// GET request/response calls against the configured base address.
type Client struct {
	// baseURL is the base address of the backend, without trailing slash.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers sent with each request.
	header http.Header
}

// Option is a configuration option for the client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.header.Set("User-Agent", ua)
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, &ValidationError{Field: "base_url", Reason: "must not be empty"}
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// NormalizeSymbol trims and upper-cases a ticker symbol. The backend
// upper-cases symbols on its side; normalizing here keeps session state
// and cache keys consistent with what the backend resolves.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	return s, nil
}
