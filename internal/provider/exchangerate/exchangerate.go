// Package exchangerate fetches the current currency conversion rate from
// the Frankfurter API, which serves ECB reference rates without an API key.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tickerfeed/internal/httpx"
	"tickerfeed/internal/provider"
	"tickerfeed/internal/retry"
)

const defaultBaseURL = "https://api.frankfurter.app/latest"

// Config controls the exchange rate provider behavior.
type Config struct {
	BaseURL  string  // latest-rates endpoint; defaults to the public Frankfurter API
	Base     string  // source currency, e.g. "USD"
	Symbol   string  // target currency, e.g. "EUR"
	Fallback float64 // rate used when the response lacks the symbol
	Retry    retry.Policy
}

// Client fetches the conversion rate between a fixed currency pair.
type Client struct {
	cfg  Config
	http *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, http: hc}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the current conversion rate from cfg.Base into cfg.Symbol.
// A response that omits the symbol yields the configured fallback rate,
// not an error.
func (c *Client) Rate(ctx context.Context) (float64, error) {
	query := url.Values{}
	query.Set("base", c.cfg.Base)
	query.Set("symbols", c.cfg.Symbol)
	requestURL := fmt.Sprintf("%s?%s", c.cfg.BaseURL, query.Encode())

	var out float64
	err := retry.Do(ctx, c.cfg.Retry, func(ctx context.Context) error {
		rate, err := c.fetchRate(ctx, requestURL)
		if err != nil {
			return err
		}
		out = rate
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rate %s/%s: %w", c.cfg.Base, c.cfg.Symbol, err)
	}
	return out, nil
}

func (c *Client) fetchRate(ctx context.Context, requestURL string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return 0, fmt.Errorf("GET %s -> %d", requestURL, res.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding rates response: %w", err)
	}

	rate, ok := body.Rates[c.cfg.Symbol]
	if !ok {
		// The API omits unknown symbols from the map instead of failing.
		return c.cfg.Fallback, nil
	}
	return rate, nil
}

var _ provider.RateSource = (*Client)(nil)
