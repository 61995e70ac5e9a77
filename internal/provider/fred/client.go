// Package fred is a client for the FRED (Federal Reserve Economic Data)
// observations API, which serves the commodity price series.
//
// Requires a free API key, see
// https://fred.stlouisfed.org/docs/api/api_key.html
package fred

import (
	"net/http"
	"net/url"

	"tickerfeed/internal/retry"
)

const defaultBaseURL = "https://api.stlouisfed.org/fred"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=fred_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the FRED API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the HTTP requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains query parameters sent with each request, including the
	// API key and the response format.
	query url.Values
	// observationStart is the first date requested from each series.
	observationStart string
	// retryPolicy bounds reattempts of a failed fetch.
	retryPolicy retry.Policy
}

// Option is a configuration option for the FRED client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithObservationStart sets the first date requested from each series.
func WithObservationStart(date string) Option {
	return func(c *Client) {
		c.observationStart = date
	}
}

// WithRetry sets the retry policy applied to each fetch.
func WithRetry(p retry.Policy) Option {
	return func(c *Client) {
		c.retryPolicy = p
	}
}

// New creates a new FRED API client.
func New(key string, options ...Option) (*Client, error) {
	var client = &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	client.query.Add("file_type", "json")
	if key != "" {
		// FRED authenticates through a query parameter.
		// https://fred.stlouisfed.org/docs/api/fred/series_observations.html
		client.query.Add("api_key", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}
